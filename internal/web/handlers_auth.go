package web

import (
	"net/http"

	"github.com/ch1tg/GameTrackr-web/internal/api"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
	"github.com/ch1tg/GameTrackr-web/pkg/validator"
)

type loginData struct {
	baseData
	Identifier string
	Err        string
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", loginData{baseData: newBaseData(r)})
}

// LoginSubmit authenticates and redirects home. A failure re-renders the
// form with the server's message and the typed identifier preserved.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	identifier := r.PostFormValue("identifier")
	password := r.PostFormValue("password")

	if err := sess.Session.Login(r.Context(), identifier, password); err != nil {
		h.renderer.Render(w, apperrors.HTTPStatus(err), "login", loginData{
			baseData:   newBaseData(r),
			Identifier: identifier,
			Err:        apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type registerData struct {
	baseData
	Username string
	Email    string
	Err      string
}

// RegisterPage renders the sign-up form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "register", registerData{baseData: newBaseData(r)})
}

// RegisterSubmit validates the form locally, creates the account, and
// redirects home signed in.
func (h *Handler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	reg := api.Registration{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	data := registerData{
		baseData: newBaseData(r),
		Username: reg.Username,
		Email:    reg.Email,
	}

	if err := validator.Validate(reg); err != nil {
		data.Err = err.Error()
		h.renderer.Render(w, http.StatusBadRequest, "register", data)
		return
	}

	if err := sess.Session.Register(r.Context(), reg.Username, reg.Email, reg.Password); err != nil {
		data.Err = apperrors.UserMessage(err)
		h.renderer.Render(w, apperrors.HTTPStatus(err), "register", data)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session and returns to the home feed. The local session
// clears even when the upstream call fails.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	sess.Session.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

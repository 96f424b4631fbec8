package web

import (
	"net/http"

	"github.com/ch1tg/GameTrackr-web/internal/api"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

type settingsData struct {
	baseData
	Flash       string
	ProfileErr  string
	PasswordErr string
	DeleteErr   string
}

// SettingsPage renders the account settings forms. The page sits behind
// RequireAuth, so User is always present.
func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	data := settingsData{baseData: newBaseData(r)}
	switch r.URL.Query().Get("saved") {
	case "profile":
		data.Flash = "Profile updated"
	case "password":
		data.Flash = "Password changed"
	}
	h.renderer.Render(w, http.StatusOK, "settings", data)
}

// SettingsProfile updates username and/or email.
func (h *Handler) SettingsProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	update := api.ProfileUpdate{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	if err := sess.Session.UpdateProfile(r.Context(), update); err != nil {
		h.renderer.Render(w, apperrors.HTTPStatus(err), "settings", settingsData{
			baseData:   newBaseData(r),
			ProfileErr: apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/profile/edit?saved=profile", http.StatusSeeOther)
}

// SettingsPassword changes the account password.
func (h *Handler) SettingsPassword(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	err := sess.Session.ChangePassword(r.Context(),
		r.PostFormValue("old_password"),
		r.PostFormValue("new_password"),
	)
	if err != nil {
		h.renderer.Render(w, apperrors.HTTPStatus(err), "settings", settingsData{
			baseData:    newBaseData(r),
			PasswordErr: apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/profile/edit?saved=password", http.StatusSeeOther)
}

// SettingsDelete permanently removes the account. The confirmation phrase
// must match the username exactly; the store checks it before any request
// leaves the process.
func (h *Handler) SettingsDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	err := sess.Session.DeleteAccount(r.Context(),
		r.PostFormValue("confirmation"),
		r.PostFormValue("password"),
	)
	if err != nil {
		h.renderer.Render(w, apperrors.HTTPStatus(err), "settings", settingsData{
			baseData:  newBaseData(r),
			DeleteErr: apperrors.UserMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

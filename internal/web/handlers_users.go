package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

type profileData struct {
	baseData
	Profile *domain.PublicUser
	Err     string
}

// Profile renders another user's public page.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	username := chi.URLParam(r, "username")

	data := profileData{baseData: newBaseData(r)}

	profile, err := sess.API.UserByUsername(r.Context(), username)
	if err != nil {
		data.Err = apperrors.UserMessage(err)
		h.renderer.Render(w, apperrors.HTTPStatus(err), "profile", data)
		return
	}

	data.Profile = profile
	h.renderer.Render(w, http.StatusOK, "profile", data)
}

type wishlistData struct {
	baseData
	Username string
	IsOwner  bool
	Games    []gameCard
	HasMore  bool
	Err      string
	ResetErr string
}

// UserWishlist renders one user's public wishlist. A fresh page view
// restarts the list at page 1; scrolling grows it through the fragment
// endpoint.
func (h *Handler) UserWishlist(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	username := chi.URLParam(r, "username")

	view := sess.WishlistView(username)
	view.Load(r.Context())

	user := sess.Session.User()
	h.renderer.Render(w, http.StatusOK, "wishlist", wishlistData{
		baseData: newBaseData(r),
		Username: username,
		IsOwner:  user != nil && user.Username == username,
		Games:    cardsFor(sess, view.Games()),
		HasMore:  view.HasMore(),
		Err:      view.Err(),
		ResetErr: r.URL.Query().Get("reset_error"),
	})
}

// UserWishlistMore serves the next wishlist page as a card fragment.
func (h *Handler) UserWishlistMore(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	view := sess.WishlistView(chi.URLParam(r, "username"))

	before := len(view.Games())
	view.LoadMore(r.Context())

	h.writeCardsDelta(w, sess, view.Games(), before, view.HasMore())
}

// WishlistReset clears the signed-in user's wishlist after server
// confirmation, then reloads their wishlist page.
func (h *Handler) WishlistReset(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	username := chi.URLParam(r, "username")

	back := "/users/" + url.PathEscape(username) + "/wishlist"
	if err := sess.Session.ResetWishlist(r.Context()); err != nil {
		back += "?reset_error=" + url.QueryEscape(apperrors.UserMessage(err))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

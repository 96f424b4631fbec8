package web

import (
	"net/http"
)

// The guards run behind Ensure, which resolves the initial session probe
// before any handler executes, so they decide on settled identity alone.

// RequireAuth protects identity-mutating views: an unauthenticated request
// is redirected to the login view.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess.Session.User() == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnonymousOnly is the inverse guard for the login and registration views:
// an already-authenticated user is sent back to the home feed.
func AnonymousOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r.Context())
		if sess.Session.User() != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package web

import (
	"net/http"
	"strconv"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	"github.com/ch1tg/GameTrackr-web/internal/feed"
)

type searchData struct {
	baseData
	Term     string
	Tab      string
	AllUsers []domain.SearchedUser
	AllGames []gameCard
	Users    []domain.SearchedUser
	Games    []gameCard
	HasMore  bool
	Err      string
}

// Search renders the full results page. The term and tab come from the URL,
// so a change of either is a fresh page view and the store restarts its
// pagination from scratch.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	q := r.URL.Query()

	term := q.Get("q")
	sess.Search.SetQuery(r.Context(), term, feed.SearchTab(q.Get("tab")))

	data := searchData{
		baseData: newBaseData(r),
		Term:     sess.Search.Term(),
		Tab:      string(sess.Search.Tab()),
	}
	data.SearchTerm = term

	switch sess.Search.Tab() {
	case feed.TabGames:
		data.Games = cardsFor(sess, sess.Search.Games())
		data.HasMore = sess.Search.GamesHasMore()
		data.Err = sess.Search.GamesErr()
	case feed.TabUsers:
		data.Users = sess.Search.Users()
		data.HasMore = sess.Search.UsersHasMore()
		data.Err = sess.Search.UsersErr()
	default:
		allUsers, allGames := sess.Search.AllResults()
		data.AllUsers = allUsers
		data.AllGames = cardsFor(sess, allGames)
		data.Err = sess.Search.AllErr()
	}

	h.renderer.Render(w, http.StatusOK, "search", data)
}

// SearchMore serves the next page of the active tab as a fragment. The
// combined tab never paginates, so its response is always empty with no
// more pages.
func (h *Handler) SearchMore(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	switch sess.Search.Tab() {
	case feed.TabUsers:
		before := len(sess.Search.Users())
		sess.Search.LoadMore(r.Context())
		users := sess.Search.Users()
		if before > len(users) {
			before = len(users)
		}
		w.Header().Set("X-Has-More", strconv.FormatBool(sess.Search.UsersHasMore()))
		h.renderer.Render(w, http.StatusOK, "fragment/users", users[before:])
	case feed.TabGames:
		before := len(sess.Search.Games())
		sess.Search.LoadMore(r.Context())
		h.writeCardsDelta(w, sess, sess.Search.Games(), before, sess.Search.GamesHasMore())
	default:
		w.Header().Set("X-Has-More", "false")
		w.WriteHeader(http.StatusNoContent)
	}
}

// PreviewFragment serves the search-as-you-type dropdown. The browser
// debounces keystrokes; by the time a request arrives the term has settled,
// so the store's immediate path is used and its sequence guard drops any
// out-of-order resolution.
func (h *Handler) PreviewFragment(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	term := r.URL.Query().Get("q")
	sess.Preview.Search(r.Context(), term)

	h.renderer.Render(w, http.StatusOK, "fragment/preview", sess.Preview.Result())
}

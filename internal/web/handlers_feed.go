package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

// gameCard pairs one list game with the viewer's wishlist state for it, so
// every card can render the same tri-state star as the detail page.
type gameCard struct {
	domain.Game
	SignedIn      bool
	WishlistState int
}

func cardsFor(sess *AppSession, games []domain.Game) []gameCard {
	signedIn := sess.Session.User() != nil
	cards := make([]gameCard, len(games))
	for i, g := range games {
		cards[i] = gameCard{
			Game:          g,
			SignedIn:      signedIn,
			WishlistState: int(sess.Session.WishlistState(g.ID)),
		}
	}
	return cards
}

type homeData struct {
	baseData
	Games     []gameCard
	HasMore   bool
	Err       string
	Ordering  string
	Platform  string
	Orderings []OrderingOption
	Platforms []PlatformFilter
}

// Home renders the trending feed. Changing ordering or platform arrives as
// query parameters; the store resets itself when either differs from its
// current selection.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	q := r.URL.Query()

	sess.Trending.SetQuery(r.Context(), q.Get("ordering"), q.Get("platform"))

	h.renderer.Render(w, http.StatusOK, "home", homeData{
		baseData:  newBaseData(r),
		Games:     cardsFor(sess, sess.Trending.Games()),
		HasMore:   sess.Trending.HasMore(),
		Err:       sess.Trending.Err(),
		Ordering:  sess.Trending.Ordering(),
		Platform:  sess.Trending.Platform(),
		Orderings: orderingOptions,
		Platforms: platformFilters,
	})
}

// TrendingMore serves the next trending page as a card fragment. The
// response carries only the newly appended items; X-Has-More tells the
// client whether to keep observing.
func (h *Handler) TrendingMore(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	before := len(sess.Trending.Games())
	sess.Trending.LoadMore(r.Context())
	games := sess.Trending.Games()

	h.writeCardsDelta(w, sess, games, before, sess.Trending.HasMore())
}

// writeCardsDelta renders the items appended since before as a fragment.
func (h *Handler) writeCardsDelta(w http.ResponseWriter, sess *AppSession, games []domain.Game, before int, hasMore bool) {
	if before > len(games) {
		before = len(games)
	}
	w.Header().Set("X-Has-More", strconv.FormatBool(hasMore))
	h.renderer.Render(w, http.StatusOK, "fragment/cards", cardsFor(sess, games[before:]))
}

type gameData struct {
	baseData
	Game          *domain.GameDetail
	WishlistState int
	Err           string
	ToggleErr     string
}

// GameDetail renders one game's page with the tri-state wishlist control.
func (h *Handler) GameDetail(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := gameData{
		baseData:  newBaseData(r),
		ToggleErr: r.URL.Query().Get("toggle_error"),
	}

	detail, err := sess.API.GameDetails(r.Context(), gameID)
	if err != nil {
		data.Err = apperrors.UserMessage(err)
		h.renderer.Render(w, apperrors.HTTPStatus(err), "game", data)
		return
	}

	data.Game = detail
	data.WishlistState = int(sess.Session.WishlistState(gameID))
	h.renderer.Render(w, http.StatusOK, "game", data)
}

// WishlistToggle flips membership for one game and returns to its page. The
// store guarantees the server call is issued at most once per resolved
// toggle; an overlapping click surfaces as an error instead of a duplicate
// request.
func (h *Handler) WishlistToggle(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Cards toggle from list pages too; return wherever the form was
	// submitted from, falling back to the game's own page.
	back := "/games/" + strconv.FormatInt(gameID, 10)
	if ref, perr := url.Parse(r.Referer()); perr == nil && strings.HasPrefix(ref.Path, "/") {
		back = ref.Path
		if ref.RawQuery != "" {
			back += "?" + ref.RawQuery
		}
	}
	if err := sess.Session.ToggleWishlist(r.Context(), gameID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		sep := "?"
		if strings.Contains(back, "?") {
			sep = "&"
		}
		back += sep + "toggle_error=" + url.QueryEscape(apperrors.UserMessage(err))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

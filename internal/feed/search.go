package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

// SearchTab selects which slice of results the search page shows.
type SearchTab string

const (
	TabAll   SearchTab = "all"
	TabGames SearchTab = "games"
	TabUsers SearchTab = "users"
)

const (
	// The combined tab shows a fixed, non-paginated sample.
	searchAllUserLimit = 15
	searchAllGameLimit = 15

	// The games and users tabs page through full results.
	searchPageSize = 20
)

// SearchBackend is the slice of the API client the search store uses.
type SearchBackend interface {
	SearchAll(ctx context.Context, q string, userLimit, gameLimit int) (*domain.PreviewResult, error)
	SearchUsers(ctx context.Context, q string, page, limit int) (*domain.UserSearchPage, error)
	SearchGames(ctx context.Context, q string, page, limit int) (*domain.GameSearchPage, error)
}

// SearchStore drives the full search-results page: a term, an active tab,
// and per-tab result state. The games and users tabs page independently;
// the combined tab is a single fixed-size fetch. Changing the term or the
// tab discards the previous results entirely.
type SearchStore struct {
	backend SearchBackend
	logger  *slog.Logger

	mu   sync.Mutex
	term string
	tab  SearchTab

	allLoading bool
	allErr     string
	allUsers   []domain.SearchedUser
	allGames   []domain.Game

	users *Pager[domain.SearchedUser, string]
	games *Pager[domain.Game, int64]
}

// NewSearchStore creates an empty store on the combined tab.
func NewSearchStore(backend SearchBackend, logger *slog.Logger) *SearchStore {
	s := &SearchStore{
		backend: backend,
		logger:  logger,
		tab:     TabAll,
	}
	s.users = NewPager(s.fetchUserPage, func(u domain.SearchedUser) string { return u.Username }, logger)
	s.games = NewPager(s.fetchGamePage, gameKey, logger)
	return s
}

func (s *SearchStore) currentTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

func (s *SearchStore) fetchUserPage(ctx context.Context, page int) (Page[domain.SearchedUser], error) {
	result, err := s.backend.SearchUsers(ctx, s.currentTerm(), page, searchPageSize)
	if err != nil {
		return Page[domain.SearchedUser]{}, err
	}
	return Page[domain.SearchedUser]{Items: result.Users, HasMore: result.HasNext()}, nil
}

func (s *SearchStore) fetchGamePage(ctx context.Context, page int) (Page[domain.Game], error) {
	result, err := s.backend.SearchGames(ctx, s.currentTerm(), page, searchPageSize)
	if err != nil {
		return Page[domain.Game]{}, err
	}
	return Page[domain.Game]{Items: result.Games, HasMore: result.NextPage != nil}, nil
}

// SetQuery applies a term and tab. Any change of either resets all result
// state and fetches the active tab from scratch; an empty term clears the
// page without fetching.
func (s *SearchStore) SetQuery(ctx context.Context, term string, tab SearchTab) {
	switch tab {
	case TabAll, TabGames, TabUsers:
	default:
		tab = TabAll
	}

	s.mu.Lock()
	changed := s.term != term || s.tab != tab
	s.term = term
	s.tab = tab
	s.mu.Unlock()

	if !changed && !s.empty() {
		return
	}

	s.users.Reset()
	s.games.Reset()
	s.mu.Lock()
	s.allUsers = nil
	s.allGames = nil
	s.allErr = ""
	s.mu.Unlock()

	if term == "" {
		return
	}

	switch tab {
	case TabGames:
		s.games.Load(ctx)
	case TabUsers:
		s.users.Load(ctx)
	default:
		s.loadAll(ctx, term)
	}
}

// empty reports whether no tab holds any results or error.
func (s *SearchStore) empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allUsers) == 0 && len(s.allGames) == 0 && s.allErr == "" &&
		s.users.CurrentPage() == 0 && s.games.CurrentPage() == 0
}

func (s *SearchStore) loadAll(ctx context.Context, term string) {
	s.mu.Lock()
	if s.allLoading {
		s.mu.Unlock()
		return
	}
	s.allLoading = true
	s.mu.Unlock()

	result, err := s.backend.SearchAll(ctx, term, searchAllUserLimit, searchAllGameLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.allLoading = false
	if s.term != term {
		// The query moved on while this fetch was in flight.
		return
	}
	if err != nil {
		s.allErr = apperrors.UserMessage(err)
		return
	}
	s.allUsers = result.Users
	s.allGames = result.Games
}

// LoadMore advances the active tab's pager. The combined tab never
// paginates.
func (s *SearchStore) LoadMore(ctx context.Context) bool {
	s.mu.Lock()
	tab := s.tab
	s.mu.Unlock()

	switch tab {
	case TabGames:
		return s.games.LoadMore(ctx)
	case TabUsers:
		return s.users.LoadMore(ctx)
	default:
		return false
	}
}

// Term returns the active search term.
func (s *SearchStore) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Tab returns the active tab.
func (s *SearchStore) Tab() SearchTab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// AllResults returns the combined tab's users and games.
func (s *SearchStore) AllResults() ([]domain.SearchedUser, []domain.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allUsers, s.allGames
}

// AllErr returns the combined tab's error message, empty when none.
func (s *SearchStore) AllErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allErr
}

// IsLoading reports whether the active tab's initial fetch is in flight.
func (s *SearchStore) IsLoading() bool {
	s.mu.Lock()
	tab := s.tab
	loading := s.allLoading
	s.mu.Unlock()

	switch tab {
	case TabGames:
		return s.games.IsLoading()
	case TabUsers:
		return s.users.IsLoading()
	default:
		return loading
	}
}

// Users returns the users tab's accumulated results.
func (s *SearchStore) Users() []domain.SearchedUser { return s.users.Items() }

// Games returns the games tab's accumulated results.
func (s *SearchStore) Games() []domain.Game { return s.games.Items() }

// UsersHasMore reports whether more user-result pages exist.
func (s *SearchStore) UsersHasMore() bool { return s.users.HasMore() }

// GamesHasMore reports whether more game-result pages exist.
func (s *SearchStore) GamesHasMore() bool { return s.games.HasMore() }

// UsersErr returns the users tab's page-1 error message.
func (s *SearchStore) UsersErr() string { return s.users.Err() }

// GamesErr returns the games tab's page-1 error message.
func (s *SearchStore) GamesErr() string { return s.games.Err() }

// IsFetchingMore reports whether the active tab has a continuation in
// flight.
func (s *SearchStore) IsFetchingMore() bool {
	s.mu.Lock()
	tab := s.tab
	s.mu.Unlock()

	switch tab {
	case TabGames:
		return s.games.IsFetchingMore()
	case TabUsers:
		return s.users.IsFetchingMore()
	default:
		return false
	}
}

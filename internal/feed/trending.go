package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// TrendingBackend is the slice of the API client the trending store uses.
type TrendingBackend interface {
	TrendingGames(ctx context.Context, page int, ordering, platform string) (*domain.TrendingPage, error)
}

// TrendingStore drives the home feed: an accumulated game list plus the
// current ordering and platform filter. Changing either resets the list and
// reloads from page 1.
type TrendingStore struct {
	backend TrendingBackend
	pager   *Pager[domain.Game, int64]

	mu       sync.Mutex
	ordering string
	platform string
}

// NewTrendingStore creates a store with the default ordering and no
// platform filter.
func NewTrendingStore(backend TrendingBackend, logger *slog.Logger) *TrendingStore {
	s := &TrendingStore{
		backend:  backend,
		ordering: domain.OrderingAdded,
	}
	s.pager = NewPager(s.fetchPage, gameKey, logger)
	return s
}

func gameKey(g domain.Game) int64 { return g.ID }

func (s *TrendingStore) fetchPage(ctx context.Context, page int) (Page[domain.Game], error) {
	s.mu.Lock()
	ordering, platform := s.ordering, s.platform
	s.mu.Unlock()

	result, err := s.backend.TrendingGames(ctx, page, ordering, platform)
	if err != nil {
		return Page[domain.Game]{}, err
	}
	return Page[domain.Game]{Items: result.Games, HasMore: result.NextPage != nil}, nil
}

// SetQuery applies a new ordering/platform pair. When either differs from
// the current selection the list resets and page 1 reloads; an unchanged
// pair with a non-empty list is a no-op.
func (s *TrendingStore) SetQuery(ctx context.Context, ordering, platform string) {
	if ordering == "" {
		ordering = domain.OrderingAdded
	}

	s.mu.Lock()
	changed := s.ordering != ordering || s.platform != platform
	s.ordering = ordering
	s.platform = platform
	s.mu.Unlock()

	if changed || s.pager.CurrentPage() == 0 {
		s.pager.Reset()
		s.pager.Load(ctx)
	}
}

// LoadMore fetches the next trending page, subject to the pager's gating.
func (s *TrendingStore) LoadMore(ctx context.Context) bool {
	return s.pager.LoadMore(ctx)
}

// Ordering returns the active sort key.
func (s *TrendingStore) Ordering() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordering
}

// Platform returns the active platform filter, empty for all platforms.
func (s *TrendingStore) Platform() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform
}

// Games returns the accumulated list.
func (s *TrendingStore) Games() []domain.Game { return s.pager.Items() }

// HasMore reports whether another page may exist.
func (s *TrendingStore) HasMore() bool { return s.pager.HasMore() }

// IsLoading reports whether the initial page is loading.
func (s *TrendingStore) IsLoading() bool { return s.pager.IsLoading() }

// IsFetchingMore reports whether a continuation is in flight.
func (s *TrendingStore) IsFetchingMore() bool { return s.pager.IsFetchingMore() }

// Err returns the page-1 error message, empty when none.
func (s *TrendingStore) Err() string { return s.pager.Err() }

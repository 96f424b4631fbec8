package feed

import (
	"context"
	"log/slog"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// wishlistPageSize is the page size requested for public wishlist views.
const wishlistPageSize = 20

// WishlistBackend is the slice of the API client the wishlist view uses.
type WishlistBackend interface {
	UserWishlist(ctx context.Context, username string, page, limit int) (*domain.WishlistPage, error)
}

// WishlistViewStore drives the public wishlist page for one viewed
// username. Viewing a different username is a different store instance; the
// username is part of the list's identity.
type WishlistViewStore struct {
	username string
	pager    *Pager[domain.Game, int64]
}

// NewWishlistViewStore creates a store for one user's public wishlist.
func NewWishlistViewStore(backend WishlistBackend, username string, logger *slog.Logger) *WishlistViewStore {
	s := &WishlistViewStore{username: username}
	s.pager = NewPager(func(ctx context.Context, page int) (Page[domain.Game], error) {
		result, err := backend.UserWishlist(ctx, username, page, wishlistPageSize)
		if err != nil {
			return Page[domain.Game]{}, err
		}
		return Page[domain.Game]{Items: result.Games, HasMore: result.HasNextPage}, nil
	}, gameKey, logger)
	return s
}

// Username returns the viewed username.
func (s *WishlistViewStore) Username() string { return s.username }

// Load fetches page 1.
func (s *WishlistViewStore) Load(ctx context.Context) { s.pager.Load(ctx) }

// LoadMore fetches the next page, subject to the pager's gating.
func (s *WishlistViewStore) LoadMore(ctx context.Context) bool { return s.pager.LoadMore(ctx) }

// Games returns the accumulated list.
func (s *WishlistViewStore) Games() []domain.Game { return s.pager.Items() }

// HasMore reports whether another page may exist.
func (s *WishlistViewStore) HasMore() bool { return s.pager.HasMore() }

// IsLoading reports whether the initial page is loading.
func (s *WishlistViewStore) IsLoading() bool { return s.pager.IsLoading() }

// IsFetchingMore reports whether a continuation is in flight.
func (s *WishlistViewStore) IsFetchingMore() bool { return s.pager.IsFetchingMore() }

// Err returns the page-1 error message, empty when none.
func (s *WishlistViewStore) Err() string { return s.pager.Err() }

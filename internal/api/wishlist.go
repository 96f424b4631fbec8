package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

type wishlistAdd struct {
	RawgGameID int64 `json:"rawg_game_id"`
}

// Wishlist fetches the authenticated user's own wishlist items.
func (c *Client) Wishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	if err := c.getJSON(ctx, "/wishlist/", nil, &items, "failed to fetch wishlist"); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist adds a game by its RAWG ID. The request is issued exactly
// once; a transient failure surfaces to the caller rather than being retried.
func (c *Client) AddToWishlist(ctx context.Context, rawgGameID int64) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	if err := c.sendJSON(ctx, http.MethodPost, "/wishlist/", wishlistAdd{RawgGameID: rawgGameID}, &item, "failed to add game to wishlist"); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromWishlist removes a game, addressed by RAWG ID rather than the
// wishlist item ID.
func (c *Client) RemoveFromWishlist(ctx context.Context, rawgGameID int64) error {
	path := fmt.Sprintf("/wishlist/%d", rawgGameID)
	return c.sendJSON(ctx, http.MethodDelete, path, nil, nil, "failed to remove game from wishlist")
}

// ResetWishlist removes every item from the authenticated user's wishlist.
func (c *Client) ResetWishlist(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodDelete, "/wishlist/", nil, nil, "failed to reset wishlist")
}

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// UserByUsername fetches another user's public profile.
func (c *Client) UserByUsername(ctx context.Context, username string) (*domain.PublicUser, error) {
	var user domain.PublicUser
	path := "/users/" + url.PathEscape(username)
	if err := c.getJSON(ctx, path, nil, &user, "failed to load user profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWishlist fetches one page of a user's public wishlist. page and limit
// of zero let the server apply its defaults.
func (c *Client) UserWishlist(ctx context.Context, username string, page, limit int) (*domain.WishlistPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var result domain.WishlistPage
	path := "/users/" + url.PathEscape(username) + "/wishlist"
	if err := c.getJSON(ctx, path, query, &result, "failed to fetch wishlist"); err != nil {
		return nil, err
	}
	return &result, nil
}

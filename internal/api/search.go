package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// SearchAll runs the universal search returning at most userLimit users and
// gameLimit games, with no pagination.
func (c *Client) SearchAll(ctx context.Context, q string, userLimit, gameLimit int) (*domain.PreviewResult, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("user_limit", strconv.Itoa(userLimit))
	query.Set("game_limit", strconv.Itoa(gameLimit))

	var result domain.PreviewResult
	if err := c.getJSON(ctx, "/search", query, &result, "failed to fetch search results"); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchUsers fetches one page of user search results.
func (c *Client) SearchUsers(ctx context.Context, q string, page, limit int) (*domain.UserSearchPage, error) {
	var result domain.UserSearchPage
	if err := c.getJSON(ctx, "/search/users", searchQuery(q, page, limit), &result, "failed to fetch user search results"); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchGames fetches one page of game search results.
func (c *Client) SearchGames(ctx context.Context, q string, page, limit int) (*domain.GameSearchPage, error) {
	var result domain.GameSearchPage
	if err := c.getJSON(ctx, "/search/games", searchQuery(q, page, limit), &result, "failed to fetch game search results"); err != nil {
		return nil, err
	}
	return &result, nil
}

func searchQuery(q string, page, limit int) url.Values {
	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return query
}

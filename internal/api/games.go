package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

// GameDetails fetches the full record for one game. Responses are cached;
// game details are public and change rarely.
func (c *Client) GameDetails(ctx context.Context, gameID int64) (*domain.GameDetail, error) {
	var detail domain.GameDetail
	path := fmt.Sprintf("/games/%d", gameID)
	if err := c.getCached(ctx, path, nil, &detail, "failed to fetch game details"); err != nil {
		return nil, err
	}
	return &detail, nil
}

// TrendingGames fetches one page of the trending feed. platform is a RAWG
// parent-platform ID and may be empty for all platforms.
func (c *Client) TrendingGames(ctx context.Context, page int, ordering, platform string) (*domain.TrendingPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("ordering", ordering)
	if platform != "" {
		query.Set("platform", platform)
	}

	var result domain.TrendingPage
	if err := c.getCached(ctx, "/games/trending", query, &result, "failed to fetch trending games"); err != nil {
		return nil, err
	}
	return &result, nil
}

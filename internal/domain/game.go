package domain

// Game is the card-level representation used in every list view.
type Game struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	BackgroundImage string   `json:"background_image"`
	Metacritic      *int     `json:"metacritic"`
	ParentPlatforms []string `json:"parent_platforms"`
}

// GameDetail is the full representation served by /games/{id}.
type GameDetail struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Metacritic      *int     `json:"metacritic"`
	Released        string   `json:"released"`
	BackgroundImage string   `json:"background_image"`
	Website         string   `json:"website"`
	Genres          []string `json:"genres"`
	Platforms       []string `json:"platforms"`
}

// TrendingPage is one page of the trending feed. NextPage is nil on the
// last page.
type TrendingPage struct {
	Games    []Game `json:"games"`
	NextPage *int   `json:"nextPage"`
}

// Ordering keys accepted by the trending endpoint.
const (
	OrderingAdded      = "-added"
	OrderingMetacritic = "-metacritic"
	OrderingReleased   = "-released"
	OrderingRating     = "-rating"
)

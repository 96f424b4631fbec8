package domain

// WishlistItem is one saved game in the signed-in user's own wishlist.
type WishlistItem struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	RawgGameID int64  `json:"rawg_game_id"`
	AddedOn    string `json:"added_on"`
}

// WishlistPage is one page of another user's public wishlist.
type WishlistPage struct {
	Games       []Game `json:"games"`
	HasNextPage bool   `json:"hasNextPage"`
}

// WishlistState is the tri-state membership a view renders for a game:
// confirmed absent, confirmed present, or toggle in flight.
type WishlistState int

const (
	WishlistAbsent WishlistState = iota
	WishlistPresent
	WishlistPending
)

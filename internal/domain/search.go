package domain

// SearchedUser is the minimal user representation returned by search.
type SearchedUser struct {
	Username string `json:"username"`
}

// PreviewResult is the combined users+games set shown while typing.
type PreviewResult struct {
	Users []SearchedUser `json:"users"`
	Games []Game         `json:"games"`
}

// UserSearchPage is one page of the /search/users results.
type UserSearchPage struct {
	Users       []SearchedUser `json:"users"`
	TotalCount  int            `json:"total_count"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}

// HasNext reports whether more user-result pages exist.
func (p UserSearchPage) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// GameSearchPage is one page of the /search/games results. NextPage is nil
// on the last page.
type GameSearchPage struct {
	Games    []Game `json:"games"`
	NextPage *int   `json:"nextPage"`
}

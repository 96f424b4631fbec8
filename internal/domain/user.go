package domain

// User is the authenticated account identity returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PublicUser is the profile visible to anyone at /users/{username}.
type PublicUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	RegisteredOn string `json:"registered_on"`
}

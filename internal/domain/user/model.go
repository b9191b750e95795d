package user

// Principal identifies an authenticated manager on incoming requests.
type Principal struct {
	UserID string
	Email  string
}

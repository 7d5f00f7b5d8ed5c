package user

// Principal is the identity verified by the external identity provider.
type Principal struct {
	UserID string
	Email  string
}

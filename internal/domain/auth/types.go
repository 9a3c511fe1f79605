package auth

// Package auth contains domain-level types for authenticated principals.
// It is pure and free of transport/adapter concerns.

// Principal is the resolved identity attached to a request context after the
// bearer token has been validated and the user loaded from the store.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

// CanManage reports whether the principal may mutate a resource owned by the
// given user: admins always, owners for their own records.
func (p Principal) CanManage(ownerID string) bool {
	return p.Admin || p.UserID == ownerID
}

package services

import "storefront-service/internal/domain"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   domain.Role
}

func (a Actor) Admin() bool { return a.Role == domain.RoleAdmin }

// owns reports whether a may read or change a record belonging to userID.
func (a Actor) owns(userID string) bool {
	return a.Admin() || (a.UserID != "" && a.UserID == userID)
}

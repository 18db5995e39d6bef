package domain

// Role is the privilege level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Actor is the verified identity performing a request. It is built only from
// an authenticated token, never from request bodies.
type Actor struct {
	UserID int64
	Role   Role
}

// Authenticated reports whether the actor carries a usable identity.
func (a Actor) Authenticated() bool {
	return IsValidID(a.UserID) && a.Role.Valid()
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole reports whether the actor's role is one of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// Owns reports whether the actor is the owner identified by ownerID.
func (a Actor) Owns(ownerID int64) bool {
	return IsValidID(a.UserID) && a.UserID == ownerID
}

// CanModify is the ownership predicate with admin override.
func (a Actor) CanModify(ownerID int64) bool {
	return a.IsAdmin() || a.Owns(ownerID)
}

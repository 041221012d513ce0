package models

// Role is one of the closed set of authorization roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	// RoleArtist is never persisted; it is derived at session resolution
	// from the isArtist flag.
	RoleArtist Role = "ARTIST"
)

// RoleList is the set of roles carried by a user row or a session.
// Persisted as a JSON array via the GORM json serializer.
type RoleList []Role

// Has reports whether the list contains the given role.
func (r RoleList) Has(role Role) bool {
	for _, candidate := range r {
		if candidate == role {
			return true
		}
	}
	return false
}

// Intersects reports whether any of the given roles is present in the list.
func (r RoleList) Intersects(roles ...Role) bool {
	for _, role := range roles {
		if r.Has(role) {
			return true
		}
	}
	return false
}

package models

// Session is the resolved identity attached to a request after bearer token
// verification. Roles includes the derived ARTIST role when the token's
// isArtist claim was set.
type Session struct {
	UserID uint
	Roles  RoleList
	// JTI and ExpiresAt identify the token for revocation on logout.
	JTI       string
	ExpiresAt int64
}

// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the catalog. A user with IsArtist set owns
// songs; every user can own playlists, rate songs and keep genre preferences.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"userId"`
	Username        string     `gorm:"not null;uniqueIndex:idx_username_unique" json:"username"`
	Email           string     `gorm:"not null;uniqueIndex:idx_user_email_unique" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Roles           RoleList   `gorm:"not null;serializer:json" json:"roles"`
	BirthDate       *time.Time `json:"birthDate,omitempty"`
	IsArtist        bool       `gorm:"not null" json:"isArtist"`
	About           string     `gorm:"type:text" json:"about,omitempty"`
	PictureLocation string     `json:"pictureLocation,omitempty"`
}

// ArtistRef is the reduced artist representation embedded in song listings.
type ArtistRef struct {
	Username string `json:"username"`
	About    string `json:"about,omitempty"`
}

// Discography is the response shape for an artist's song catalog.
type Discography struct {
	Artist     *User  `json:"artist"`
	TotalSongs int    `json:"totalSongs"`
	Songs      []Song `json:"songs"`
}

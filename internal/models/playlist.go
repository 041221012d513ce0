package models

import "time"

// Playlist is a named collection of songs owned by a single user.
// Name is unique per owner (idx_playlist_name_and_owner_unique).
type Playlist struct {
	ID           uint      `gorm:"primaryKey" json:"playlistId"`
	OwnerID      uint      `gorm:"not null;uniqueIndex:idx_playlist_name_and_owner_unique,priority:1" json:"ownerId"`
	Owner        *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Name         string    `gorm:"not null;uniqueIndex:idx_playlist_name_and_owner_unique,priority:2" json:"name"`
	CreationDate time.Time `json:"creationDate"`

	// SongCount is computed at query time for the playlist listing.
	SongCount int `gorm:"->;-:migration" json:"songCount,omitempty"`
	// Songs is filled by the repository for the playlist detail view.
	Songs []Song `gorm:"-" json:"songs,omitempty"`
}

package models

import "time"

// Song is a track owned by an artist. Title is unique per artist, enforced
// by idx_song_title_and_artist_unique at the storage layer.
type Song struct {
	ID          uint      `gorm:"primaryKey" json:"songId"`
	ArtistID    uint      `gorm:"not null;uniqueIndex:idx_song_title_and_artist_unique,priority:1" json:"artistId"`
	Artist      *User     `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"not null;uniqueIndex:idx_song_title_and_artist_unique,priority:2" json:"title"`
	Length      string    `gorm:"size:8;not null" json:"length"`
	ReleaseDate time.Time `gorm:"not null" json:"releaseDate"`
	ArtLocation string    `gorm:"type:text" json:"artLocation,omitempty"`

	// Read-side fields assembled by the repository, never persisted.
	ArtistRef *ArtistRef `gorm:"-" json:"artist,omitempty"`
	Genres    []Genre    `gorm:"-" json:"genres,omitempty"`
	Playlists []Playlist `gorm:"-" json:"playlists,omitempty"`
	Rating    *int       `gorm:"-" json:"rating,omitempty"`
}

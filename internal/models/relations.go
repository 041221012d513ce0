package models

import "time"

// The many-to-many associations are modeled as first-class join records with
// composite primary keys rather than through implicit ORM relation graphs.
// All foreign keys cascade-delete with their parent row.

// PlaylistSong records membership of a song in a playlist.
type PlaylistSong struct {
	PlaylistID  uint      `gorm:"primaryKey;autoIncrement:false" json:"playlistId"`
	SongID      uint      `gorm:"primaryKey;autoIncrement:false" json:"songId"`
	AddedOnDate time.Time `gorm:"not null" json:"addedOnDate"`

	Playlist *Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	Song     *Song     `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"-"`
}

// SongGenre links a song to a genre.
type SongGenre struct {
	SongID  uint `gorm:"primaryKey;autoIncrement:false" json:"songId"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false" json:"genreId"`

	Song  *Song  `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"-"`
	Genre *Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserGenrePreference records a genre a user marked as preferred.
type UserGenrePreference struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false" json:"genreId"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Genre *Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSongRating records a user's 1-5 rating of a song. The composite primary
// key guarantees a user rates a song at most once.
type UserSongRating struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	SongID uint `gorm:"primaryKey;autoIncrement:false" json:"songId"`
	Rating int  `gorm:"not null" json:"rating"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Song *Song `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE" json:"-"`

	// ArtistName is the song artist's username, joined in for rating listings.
	ArtistName string `gorm:"-" json:"artist,omitempty"`
	SongView   *Song  `gorm:"-" json:"song,omitempty"`
}

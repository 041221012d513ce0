package models

// Genre is a globally unique music genre.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"genreId"`
	Name string `gorm:"not null;uniqueIndex:idx_genre_name_unique" json:"genreName"`

	// Songs is filled by the repository for the genre detail view.
	Songs []Song `gorm:"-" json:"songs,omitempty"`
}

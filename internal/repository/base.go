// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"basify/internal/models"

	"gorm.io/gorm"
)

// attachArtistRefs fills the ArtistRef view field of each song from the
// owning users' rows. includeAbout controls whether the artist bio is
// exposed (detail views only).
func attachArtistRefs(ctx context.Context, db *gorm.DB, songs []models.Song, includeAbout bool) error {
	if len(songs) == 0 {
		return nil
	}

	idSet := make(map[uint]struct{}, len(songs))
	ids := make([]uint, 0, len(songs))
	for _, song := range songs {
		if _, seen := idSet[song.ArtistID]; !seen {
			idSet[song.ArtistID] = struct{}{}
			ids = append(ids, song.ArtistID)
		}
	}

	var artists []models.User
	if err := db.WithContext(ctx).Select("id", "username", "about").Where("id IN ?", ids).Find(&artists).Error; err != nil {
		return models.NewInternalError(err)
	}

	refs := make(map[uint]*models.ArtistRef, len(artists))
	for _, artist := range artists {
		ref := &models.ArtistRef{Username: artist.Username}
		if includeAbout {
			ref.About = artist.About
		}
		refs[artist.ID] = ref
	}

	for i := range songs {
		songs[i].ArtistRef = refs[songs[i].ArtistID]
	}
	return nil
}

type songGenreRow struct {
	SongID  uint
	GenreID uint
	Name    string
}

// attachGenres fills the Genres view field of each song from the song_genres
// join table.
func attachGenres(ctx context.Context, db *gorm.DB, songs []models.Song) error {
	if len(songs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(songs))
	for _, song := range songs {
		ids = append(ids, song.ID)
	}

	var rows []songGenreRow
	err := db.WithContext(ctx).
		Table("song_genres").
		Select("song_genres.song_id AS song_id, genres.id AS genre_id, genres.name AS name").
		Joins("JOIN genres ON genres.id = song_genres.genre_id").
		Where("song_genres.song_id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	bySong := make(map[uint][]models.Genre)
	for _, row := range rows {
		bySong[row.SongID] = append(bySong[row.SongID], models.Genre{ID: row.GenreID, Name: row.Name})
	}

	for i := range songs {
		songs[i].Genres = bySong[songs[i].ID]
	}
	return nil
}

// attachRatings fills the caller's rating on each song, when one exists.
func attachRatings(ctx context.Context, db *gorm.DB, songs []models.Song, userID uint) error {
	if len(songs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(songs))
	for _, song := range songs {
		ids = append(ids, song.ID)
	}

	var ratings []models.UserSongRating
	err := db.WithContext(ctx).
		Where("user_id = ? AND song_id IN ?", userID, ids).
		Find(&ratings).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	bySong := make(map[uint]int, len(ratings))
	for _, rating := range ratings {
		bySong[rating.SongID] = rating.Rating
	}

	for i := range songs {
		if value, ok := bySong[songs[i].ID]; ok {
			rating := value
			songs[i].Rating = &rating
		}
	}
	return nil
}

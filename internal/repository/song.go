package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basify/internal/models"

	"gorm.io/gorm"
)

// SongUpdate carries the updatable song fields; nil means unchanged.
type SongUpdate struct {
	Title       *string
	ReleaseDate *time.Time
}

// SongRepository defines persistence operations for songs and their genre
// links.
type SongRepository interface {
	GetAll(ctx context.Context) ([]models.Song, error)
	// GetByID is the existence-only fetch used for ownership checks and
	// foreign key validation; it loads no associations.
	GetByID(ctx context.Context, id uint) (*models.Song, error)
	// GetDetail loads the song with its artist, genres, the caller's
	// playlists containing it and the caller's rating.
	GetDetail(ctx context.Context, songID, userID uint) (*models.Song, error)
	ListByArtist(ctx context.Context, artistID uint) ([]models.Song, error)
	Create(ctx context.Context, song *models.Song) error
	Update(ctx context.Context, id uint, update SongUpdate) (*models.Song, error)
	Delete(ctx context.Context, id uint) error
	AddGenre(ctx context.Context, link *models.SongGenre) error
	RemoveGenre(ctx context.Context, songID, genreID uint) error
}

type songRepository struct {
	db *gorm.DB
}

// NewSongRepository returns a new SongRepository implementation.
func NewSongRepository(db *gorm.DB) SongRepository {
	return &songRepository{db: db}
}

func songNotFound(id uint) error {
	return models.NewNotFoundError(
		fmt.Sprintf("No song with id %d exists", id),
		map[string]any{"songId": id},
	)
}

func (r *songRepository) GetAll(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.WithContext(ctx).Find(&songs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := attachArtistRefs(ctx, r.db, songs, false); err != nil {
		return nil, err
	}
	if err := attachGenres(ctx, r.db, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) GetByID(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	if err := r.db.WithContext(ctx).First(&song, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, songNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &song, nil
}

func (r *songRepository) GetDetail(ctx context.Context, songID, userID uint) (*models.Song, error) {
	song, err := r.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	view := []models.Song{*song}
	if err := attachArtistRefs(ctx, r.db, view, true); err != nil {
		return nil, err
	}
	if err := attachGenres(ctx, r.db, view); err != nil {
		return nil, err
	}
	if err := attachRatings(ctx, r.db, view, userID); err != nil {
		return nil, err
	}

	// SongCount has no backing column, so the join select must name the
	// real columns and compute the count itself.
	var playlists []models.Playlist
	err = r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Select("playlists.*, (SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = playlists.id) AS song_count").
		Joins("JOIN playlist_songs ON playlist_songs.playlist_id = playlists.id").
		Where("playlist_songs.song_id = ? AND playlists.owner_id = ?", songID, userID).
		Find(&playlists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	view[0].Playlists = playlists

	return &view[0], nil
}

func (r *songRepository) ListByArtist(ctx context.Context, artistID uint) ([]models.Song, error) {
	var songs []models.Song
	if err := r.db.WithContext(ctx).Where("artist_id = ?", artistID).Find(&songs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := attachGenres(ctx, r.db, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) Create(ctx context.Context, song *models.Song) error {
	if err := r.db.WithContext(ctx).Create(song).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *songRepository) Update(ctx context.Context, id uint, update SongUpdate) (*models.Song, error) {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.ReleaseDate != nil {
		fields["release_date"] = *update.ReleaseDate
	}
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&models.Song{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, translateDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, songNotFound(id)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *songRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Song{}, id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return songNotFound(id)
	}
	return nil
}

func (r *songRepository) AddGenre(ctx context.Context, link *models.SongGenre) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *songRepository) RemoveGenre(ctx context.Context, songID, genreID uint) error {
	result := r.db.WithContext(ctx).
		Where("song_id = ? AND genre_id = ?", songID, genreID).
		Delete(&models.SongGenre{})
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(
			fmt.Sprintf("No song with id %d exists or no genre with id %d exists", songID, genreID),
			map[string]any{"songId": songID, "genreId": genreID},
		)
	}
	return nil
}

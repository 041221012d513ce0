package repository

import (
	"context"
	"errors"
	"fmt"

	"basify/internal/models"

	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists and their
// song memberships.
type PlaylistRepository interface {
	// ListByOwner returns the owner's playlists with their song counts.
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error)
	// GetByID is the existence-only fetch; callers compare OwnerID for the
	// ownership-as-absence check.
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	// GetDetail loads the playlist's songs with artist, genres and the
	// owner's ratings.
	GetDetail(ctx context.Context, playlistID, userID uint) (*models.Playlist, error)
	Create(ctx context.Context, playlist *models.Playlist) error
	Rename(ctx context.Context, id uint, name string) (*models.Playlist, error)
	Delete(ctx context.Context, id uint) error
	AddSong(ctx context.Context, membership *models.PlaylistSong) error
	RemoveSong(ctx context.Context, playlistID, songID uint) error
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a new PlaylistRepository implementation.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func playlistNotFound(id uint) error {
	return models.NewNotFoundError(
		fmt.Sprintf("No playlist with id %d exists", id),
		map[string]any{"playlistId": id},
	)
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.WithContext(ctx).
		Model(&models.Playlist{}).
		Select("playlists.*, (SELECT COUNT(*) FROM playlist_songs WHERE playlist_songs.playlist_id = playlists.id) AS song_count").
		Where("owner_id = ?", ownerID).
		Find(&playlists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, playlistNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) GetDetail(ctx context.Context, playlistID, userID uint) (*models.Playlist, error) {
	playlist, err := r.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	err = r.db.WithContext(ctx).
		Joins("JOIN playlist_songs ON playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Find(&songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := attachArtistRefs(ctx, r.db, songs, true); err != nil {
		return nil, err
	}
	if err := attachGenres(ctx, r.db, songs); err != nil {
		return nil, err
	}
	if err := attachRatings(ctx, r.db, songs, userID); err != nil {
		return nil, err
	}

	playlist.Songs = songs
	playlist.SongCount = len(songs)
	return playlist, nil
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *playlistRepository) Rename(ctx context.Context, id uint, name string) (*models.Playlist, error) {
	result := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, playlistNotFound(id)
	}
	return r.GetByID(ctx, id)
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Playlist{}, id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return playlistNotFound(id)
	}
	return nil
}

func (r *playlistRepository) AddSong(ctx context.Context, membership *models.PlaylistSong) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *playlistRepository) RemoveSong(ctx context.Context, playlistID, songID uint) error {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Delete(&models.PlaylistSong{})
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(
			fmt.Sprintf("No playlist with id %d exists or no song with id %d could be found in the playlist", playlistID, songID),
			map[string]any{"playlistId": playlistID, "songId": songID},
		)
	}
	return nil
}

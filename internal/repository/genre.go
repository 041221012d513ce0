package repository

import (
	"context"
	"errors"
	"fmt"

	"basify/internal/models"

	"gorm.io/gorm"
)

// GenreRepository defines persistence operations for genres.
type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	// GetByID is the existence-only fetch used by other repositories to
	// validate a foreign key before relating; it loads no associations.
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	GetWithSongs(ctx context.Context, id uint) (*models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	Update(ctx context.Context, id uint, name string) (*models.Genre, error)
	Delete(ctx context.Context, id uint) error
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository returns a new GenreRepository implementation.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func genreNotFound(id uint) error {
	return models.NewNotFoundError(
		fmt.Sprintf("No genre with id %d exists", id),
		map[string]any{"genreId": id},
	)
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return genres, nil
}

func (r *genreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genreNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &genre, nil
}

func (r *genreRepository) GetWithSongs(ctx context.Context, id uint) (*models.Genre, error) {
	genre, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	err = r.db.WithContext(ctx).
		Joins("JOIN song_genres ON song_genres.song_id = songs.id").
		Where("song_genres.genre_id = ?", id).
		Find(&songs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := attachArtistRefs(ctx, r.db, songs, false); err != nil {
		return nil, err
	}

	genre.Songs = songs
	return genre, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *genreRepository) Update(ctx context.Context, id uint, name string) (*models.Genre, error) {
	result := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, genreNotFound(id)
	}
	return r.GetByID(ctx, id)
}

func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Genre{}, id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return genreNotFound(id)
	}
	return nil
}

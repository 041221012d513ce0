package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basify/internal/models"

	"gorm.io/gorm"
)

// UserUpdate carries the updatable profile fields; nil means unchanged.
type UserUpdate struct {
	Username  *string
	BirthDate *time.Time
	About     *string
}

// UserRepository defines persistence operations for users, their genre
// preferences and their song ratings.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail returns (nil, nil) when no such user exists so the caller
	// can produce a credentials error that does not reveal whether the
	// email is known.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uint) error

	ListPlaylists(ctx context.Context, userID uint) ([]models.Playlist, error)

	ListRatings(ctx context.Context, userID uint) ([]models.UserSongRating, error)
	GetRating(ctx context.Context, userID, songID uint) (*models.UserSongRating, error)
	AddRating(ctx context.Context, rating *models.UserSongRating) error
	UpdateRating(ctx context.Context, userID, songID uint, rating int) error
	DeleteRating(ctx context.Context, userID, songID uint) error

	ListGenrePreferences(ctx context.Context, userID uint) ([]models.Genre, error)
	AddGenrePreference(ctx context.Context, preference *models.UserGenrePreference) error
	DeleteGenrePreference(ctx context.Context, userID, genreID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func userNotFound(id uint) error {
	return models.NewNotFoundError(
		fmt.Sprintf("No user with id %d exists", id),
		map[string]any{"userId": id},
	)
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	fields := map[string]any{}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.BirthDate != nil {
		fields["birth_date"] = *update.BirthDate
	}
	if update.About != nil {
		fields["about"] = *update.About
	}
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, translateDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, userNotFound(id)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return userNotFound(id)
	}
	return nil
}

func (r *userRepository) ListPlaylists(ctx context.Context, userID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := r.db.WithContext(ctx).Where("owner_id = ?", userID).Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}

func (r *userRepository) ListRatings(ctx context.Context, userID uint) ([]models.UserSongRating, error) {
	var ratings []models.UserSongRating
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(ratings) == 0 {
		return ratings, nil
	}

	songIDs := make([]uint, 0, len(ratings))
	for _, rating := range ratings {
		songIDs = append(songIDs, rating.SongID)
	}

	var songs []models.Song
	if err := r.db.WithContext(ctx).Where("id IN ?", songIDs).Find(&songs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := attachArtistRefs(ctx, r.db, songs, false); err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Song, len(songs))
	for i := range songs {
		byID[songs[i].ID] = &songs[i]
	}
	for i := range ratings {
		if song, ok := byID[ratings[i].SongID]; ok {
			ratings[i].SongView = song
			if song.ArtistRef != nil {
				ratings[i].ArtistName = song.ArtistRef.Username
			}
		}
	}
	return ratings, nil
}

func (r *userRepository) GetRating(ctx context.Context, userID, songID uint) (*models.UserSongRating, error) {
	var rating models.UserSongRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ratingNotFound(userID, songID)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func ratingNotFound(userID, songID uint) error {
	return models.NewNotFoundError(
		fmt.Sprintf("No user with id %d exists or no song with id %d has a rating", userID, songID),
		map[string]any{"userId": userID, "songId": songID},
	)
}

func (r *userRepository) AddRating(ctx context.Context, rating *models.UserSongRating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *userRepository) UpdateRating(ctx context.Context, userID, songID uint, rating int) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserSongRating{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Update("rating", rating)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ratingNotFound(userID, songID)
	}
	return nil
}

func (r *userRepository) DeleteRating(ctx context.Context, userID, songID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&models.UserSongRating{})
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ratingNotFound(userID, songID)
	}
	return nil
}

func (r *userRepository) ListGenrePreferences(ctx context.Context, userID uint) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.WithContext(ctx).
		Joins("JOIN user_genre_preferences ON user_genre_preferences.genre_id = genres.id").
		Where("user_genre_preferences.user_id = ?", userID).
		Order("genres.name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return genres, nil
}

func (r *userRepository) AddGenrePreference(ctx context.Context, preference *models.UserGenrePreference) error {
	if err := r.db.WithContext(ctx).Create(preference).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

func (r *userRepository) DeleteGenrePreference(ctx context.Context, userID, genreID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND genre_id = ?", userID, genreID).
		Delete(&models.UserGenrePreference{})
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(
			fmt.Sprintf("No user with id %d exists or no genre with id %d in preferences", userID, genreID),
			map[string]any{"userId": userID, "genreId": genreID},
		)
	}
	return nil
}

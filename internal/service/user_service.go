// Package service contains the application's business logic, orchestrating
// repositories and enforcing the rules that sit above plain persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basify/internal/models"
	"basify/internal/observability"
	"basify/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// credentialMismatch is returned for both an unknown email and a wrong
// password so a caller cannot probe which emails are registered.
const credentialMismatch = "The given email and password do not match"

type UserService struct {
	userRepo  repository.UserRepository
	songRepo  repository.SongRepository
	genreRepo repository.GenreRepository
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	BirthDate *time.Time
	IsArtist  bool
	About     string
}

type UpdateUserInput struct {
	Username  *string
	BirthDate *time.Time
	About     *string
}

func NewUserService(userRepo repository.UserRepository, songRepo repository.SongRepository, genreRepo repository.GenreRepository) *UserService {
	return &UserService{userRepo: userRepo, songRepo: songRepo, genreRepo: genreRepo}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        models.RoleList{models.RoleUser},
		BirthDate:    in.BirthDate,
		IsArtist:     in.IsArtist,
		About:        in.About,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailuresTotal.WithLabelValues("unknown_email").Inc()
		return nil, models.NewUnauthorizedError(credentialMismatch)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		observability.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, models.NewUnauthorizedError(credentialMismatch)
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateByID(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	return s.userRepo.Update(ctx, id, repository.UserUpdate{
		Username:  in.Username,
		BirthDate: in.BirthDate,
		About:     in.About,
	})
}

func (s *UserService) DeleteByID(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// GetDiscography returns an artist's catalog. A missing user and a user who
// is not an artist both surface as an absent artist.
func (s *UserService) GetDiscography(ctx context.Context, artistID uint) (*models.Discography, error) {
	noArtist := models.NewNotFoundError(
		fmt.Sprintf("No artist with id %d exists", artistID),
		map[string]any{"artistId": artistID},
	)

	user, err := s.userRepo.GetByID(ctx, artistID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, noArtist
		}
		return nil, err
	}
	if !user.IsArtist {
		return nil, noArtist
	}

	songs, err := s.songRepo.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	return &models.Discography{Artist: user, TotalSongs: len(songs), Songs: songs}, nil
}

func (s *UserService) GetPlaylists(ctx context.Context, userID uint) ([]models.Playlist, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListPlaylists(ctx, userID)
}

func (s *UserService) ListRatings(ctx context.Context, userID uint) ([]models.UserSongRating, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListRatings(ctx, userID)
}

func (s *UserService) AddRating(ctx context.Context, userID, songID uint, rating int) (*models.UserSongRating, error) {
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, err
	}
	record := &models.UserSongRating{UserID: userID, SongID: songID, Rating: rating}
	if err := s.userRepo.AddRating(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *UserService) UpdateRating(ctx context.Context, userID, songID uint, rating int) (*models.UserSongRating, error) {
	if err := s.userRepo.UpdateRating(ctx, userID, songID, rating); err != nil {
		return nil, err
	}
	return s.userRepo.GetRating(ctx, userID, songID)
}

func (s *UserService) DeleteRating(ctx context.Context, userID, songID uint) error {
	return s.userRepo.DeleteRating(ctx, userID, songID)
}

func (s *UserService) ListGenrePreferences(ctx context.Context, userID uint) ([]models.Genre, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListGenrePreferences(ctx, userID)
}

func (s *UserService) AddGenrePreference(ctx context.Context, userID, genreID uint) (*models.UserGenrePreference, error) {
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		return nil, err
	}
	preference := &models.UserGenrePreference{UserID: userID, GenreID: genreID}
	if err := s.userRepo.AddGenrePreference(ctx, preference); err != nil {
		return nil, err
	}
	return preference, nil
}

func (s *UserService) DeleteGenrePreference(ctx context.Context, userID, genreID uint) error {
	return s.userRepo.DeleteGenrePreference(ctx, userID, genreID)
}

package service

import (
	"context"
	"fmt"
	"time"

	"basify/internal/models"
	"basify/internal/repository"
)

type SongService struct {
	songRepo  repository.SongRepository
	genreRepo repository.GenreRepository
}

type CreateSongInput struct {
	ArtistID    uint
	Title       string
	Length      string
	ReleaseDate time.Time
	ArtLocation string
}

type UpdateSongInput struct {
	Title       *string
	ReleaseDate *time.Time
}

func NewSongService(songRepo repository.SongRepository, genreRepo repository.GenreRepository) *SongService {
	return &SongService{songRepo: songRepo, genreRepo: genreRepo}
}

func (s *SongService) GetAll(ctx context.Context) ([]models.Song, error) {
	return s.songRepo.GetAll(ctx)
}

func (s *SongService) GetByID(ctx context.Context, songID, userID uint) (*models.Song, error) {
	return s.songRepo.GetDetail(ctx, songID, userID)
}

func (s *SongService) Create(ctx context.Context, in CreateSongInput) (*models.Song, error) {
	song := &models.Song{
		ArtistID:    in.ArtistID,
		Title:       in.Title,
		Length:      in.Length,
		ReleaseDate: in.ReleaseDate,
		ArtLocation: in.ArtLocation,
	}
	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// requireOwned fetches the song and hides it from non-owners: a caller who
// did not publish the song gets the same absent-song error as for an id that
// does not exist at all.
func (s *SongService) requireOwned(ctx context.Context, songID, callerID uint) (*models.Song, error) {
	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song.ArtistID != callerID {
		return nil, models.NewNotFoundError(
			fmt.Sprintf("No song with id %d exists", songID),
			map[string]any{"songId": songID},
		)
	}
	return song, nil
}

func (s *SongService) Update(ctx context.Context, songID, callerID uint, in UpdateSongInput) (*models.Song, error) {
	if _, err := s.requireOwned(ctx, songID, callerID); err != nil {
		return nil, err
	}
	return s.songRepo.Update(ctx, songID, repository.SongUpdate{
		Title:       in.Title,
		ReleaseDate: in.ReleaseDate,
	})
}

func (s *SongService) Delete(ctx context.Context, songID, callerID uint) error {
	if _, err := s.requireOwned(ctx, songID, callerID); err != nil {
		return err
	}
	return s.songRepo.Delete(ctx, songID)
}

func (s *SongService) AddGenre(ctx context.Context, songID, genreID, callerID uint) (*models.SongGenre, error) {
	if _, err := s.requireOwned(ctx, songID, callerID); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		return nil, err
	}
	link := &models.SongGenre{SongID: songID, GenreID: genreID}
	if err := s.songRepo.AddGenre(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *SongService) RemoveGenre(ctx context.Context, songID, genreID, callerID uint) error {
	if _, err := s.requireOwned(ctx, songID, callerID); err != nil {
		return err
	}
	return s.songRepo.RemoveGenre(ctx, songID, genreID)
}

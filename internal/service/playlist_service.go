package service

import (
	"context"
	"fmt"
	"time"

	"basify/internal/models"
	"basify/internal/repository"
)

// PlaylistService scopes every operation to the calling owner. A playlist
// owned by someone else is reported as absent, never as forbidden.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	songRepo     repository.SongRepository
}

type CreatePlaylistInput struct {
	OwnerID      uint
	Name         string
	CreationDate time.Time
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, songRepo repository.SongRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, songRepo: songRepo}
}

func (s *PlaylistService) GetAll(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, ownerID)
}

func (s *PlaylistService) requireOwned(ctx context.Context, playlistID, ownerID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, models.NewNotFoundError(
			fmt.Sprintf("No playlist with id %d exists", playlistID),
			map[string]any{"playlistId": playlistID},
		)
	}
	return playlist, nil
}

func (s *PlaylistService) GetByID(ctx context.Context, playlistID, ownerID uint) (*models.Playlist, error) {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetDetail(ctx, playlistID, ownerID)
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	playlist := &models.Playlist{
		OwnerID:      in.OwnerID,
		Name:         in.Name,
		CreationDate: in.CreationDate,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Rename(ctx context.Context, playlistID, ownerID uint, name string) (*models.Playlist, error) {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}
	return s.playlistRepo.Rename(ctx, playlistID, name)
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, ownerID uint) error {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *PlaylistService) AddSong(ctx context.Context, playlistID, songID, ownerID uint) (*models.PlaylistSong, error) {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.songRepo.GetByID(ctx, songID); err != nil {
		return nil, err
	}
	membership := &models.PlaylistSong{
		PlaylistID:  playlistID,
		SongID:      songID,
		AddedOnDate: time.Now().UTC(),
	}
	if err := s.playlistRepo.AddSong(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *PlaylistService) RemoveSong(ctx context.Context, playlistID, songID, ownerID uint) error {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.playlistRepo.RemoveSong(ctx, playlistID, songID)
}

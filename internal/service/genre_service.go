package service

import (
	"context"

	"basify/internal/models"
	"basify/internal/repository"
)

type GenreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) *GenreService {
	return &GenreService{genreRepo: genreRepo}
}

func (s *GenreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.GetAll(ctx)
}

func (s *GenreService) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.genreRepo.GetWithSongs(ctx, id)
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	genre := &models.Genre{Name: name}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id uint, name string) (*models.Genre, error) {
	return s.genreRepo.Update(ctx, id, name)
}

func (s *GenreService) Delete(ctx context.Context, id uint) error {
	return s.genreRepo.Delete(ctx, id)
}

package server

import (
	"basify/internal/models"
	"basify/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllGenres handles GET /api/genres (public).
func (s *Server) GetAllGenres(c *fiber.Ctx) error {
	if err := validation.RequireNoQuery(c); err != nil {
		return models.RespondWithError(c, err)
	}

	genres, err := s.genreService.GetAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": genres, "count": len(genres)})
}

// GetGenreByID handles GET /api/genres/:id (public), returning the genre with
// its songs.
func (s *Server) GetGenreByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	genre, err := s.genreService.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(genre)
}

// CreateGenre handles POST /api/genres.
func (s *Server) CreateGenre(c *fiber.Ctx) error {
	var req struct {
		GenreName string `json:"genreName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateGenreName(req.GenreName); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	genre, err := s.genreService.Create(c.Context(), req.GenreName)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(genre)
}

// UpdateGenre handles PUT /api/genres/:id.
func (s *Server) UpdateGenre(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		GenreName string `json:"genreName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateGenreName(req.GenreName); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	genre, err := s.genreService.Update(c.Context(), id, req.GenreName)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(genre)
}

// DeleteGenre handles DELETE /api/genres/:id.
func (s *Server) DeleteGenre(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.genreService.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"basify/internal/models"
	"basify/internal/service"
	"basify/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllSongs handles GET /api/songs (public).
func (s *Server) GetAllSongs(c *fiber.Ctx) error {
	if err := validation.RequireNoQuery(c); err != nil {
		return models.RespondWithError(c, err)
	}

	songs, err := s.songService.GetAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": songs, "count": len(songs)})
}

// GetSongByID handles GET /api/songs/:id. The detail view is caller-aware:
// it includes the caller's rating and the caller's playlists containing the
// song.
func (s *Server) GetSongByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	song, err := s.songService.GetByID(c.Context(), id, session.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(song)
}

// CreateSong handles POST /api/songs. The artist is always the caller; the
// body cannot attribute a song to someone else.
func (s *Server) CreateSong(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Length      string `json:"length"`
		ReleaseDate string `json:"releaseDate"`
		ArtLocation string `json:"artLocation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateName("title", req.Title); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateSongLength(req.Length); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	releaseDate, err := parseDate("releaseDate", req.ReleaseDate)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := validation.ValidateNotFuture("releaseDate", releaseDate); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	session := sessionFrom(c)
	song, err := s.songService.Create(c.Context(), service.CreateSongInput{
		ArtistID:    session.UserID,
		Title:       req.Title,
		Length:      req.Length,
		ReleaseDate: releaseDate,
		ArtLocation: req.ArtLocation,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(song)
}

// UpdateSong handles PUT /api/songs/:id.
func (s *Server) UpdateSong(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Title       *string `json:"title"`
		ReleaseDate *string `json:"releaseDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateSongInput{Title: req.Title}
	if req.Title != nil {
		if err := validation.ValidateName("title", *req.Title); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
	}
	if req.ReleaseDate != nil {
		parsed, err := parseDate("releaseDate", *req.ReleaseDate)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if err := validation.ValidateNotFuture("releaseDate", parsed); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		in.ReleaseDate = &parsed
	}

	session := sessionFrom(c)
	song, err := s.songService.Update(c.Context(), id, session.UserID, in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(song)
}

// DeleteSong handles DELETE /api/songs/:id.
func (s *Server) DeleteSong(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	if err := s.songService.Delete(c.Context(), id, session.UserID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddSongGenre handles POST /api/songs/:id/genres.
func (s *Server) AddSongGenre(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		GenreID uint `json:"genreId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.GenreID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("genreId must be a positive integer"))
	}

	session := sessionFrom(c)
	link, err := s.songService.AddGenre(c.Context(), id, req.GenreID, session.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// RemoveSongGenre handles DELETE /api/songs/:id/genres/:genreId.
func (s *Server) RemoveSongGenre(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	genreID, err := validation.ParseIDParam(c, "genreId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	if err := s.songService.RemoveGenre(c.Context(), id, genreID, session.UserID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

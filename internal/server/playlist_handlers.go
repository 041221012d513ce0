package server

import (
	"time"

	"basify/internal/models"
	"basify/internal/service"
	"basify/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllPlaylists handles GET /api/playlists, listing the caller's playlists
// with their song counts.
func (s *Server) GetAllPlaylists(c *fiber.Ctx) error {
	if err := validation.RequireNoQuery(c); err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	playlists, err := s.playlistService.GetAll(c.Context(), session.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": playlists, "count": len(playlists)})
}

// GetPlaylistByID handles GET /api/playlists/:id.
func (s *Server) GetPlaylistByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	playlist, err := s.playlistService.GetByID(c.Context(), id, session.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(playlist)
}

// CreatePlaylist handles POST /api/playlists.
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name         string `json:"name"`
		CreationDate string `json:"creationDate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateName("name", req.Name); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	creationDate := time.Now().UTC()
	if req.CreationDate != "" {
		parsed, err := parseDate("creationDate", req.CreationDate)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if err := validation.ValidateNotFuture("creationDate", parsed); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		creationDate = parsed
	}

	session := sessionFrom(c)
	playlist, err := s.playlistService.Create(c.Context(), service.CreatePlaylistInput{
		OwnerID:      session.UserID,
		Name:         req.Name,
		CreationDate: creationDate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(playlist)
}

// UpdatePlaylist handles PUT /api/playlists/:id (rename).
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateName("name", req.Name); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	session := sessionFrom(c)
	playlist, err := s.playlistService.Rename(c.Context(), id, session.UserID, req.Name)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(playlist)
}

// DeletePlaylist handles DELETE /api/playlists/:id.
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	if err := s.playlistService.Delete(c.Context(), id, session.UserID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPlaylistSong handles POST /api/playlists/:id/songs.
func (s *Server) AddPlaylistSong(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		SongID uint `json:"songId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.SongID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("songId must be a positive integer"))
	}

	session := sessionFrom(c)
	membership, err := s.playlistService.AddSong(c.Context(), id, req.SongID, session.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// RemovePlaylistSong handles DELETE /api/playlists/:id/songs/:songId.
func (s *Server) RemovePlaylistSong(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	songID, err := validation.ParseIDParam(c, "songId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	session := sessionFrom(c)
	if err := s.playlistService.RemoveSong(c.Context(), id, songID, session.UserID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

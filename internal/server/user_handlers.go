package server

import (
	"fmt"
	"time"

	"basify/internal/models"
	"basify/internal/service"
	"basify/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parseDate accepts the two date shapes clients send: a bare calendar date
// or a full RFC 3339 timestamp.
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, models.NewValidationError(
		fmt.Sprintf("%s must be a valid date", field))
}

// GetAllUsers handles GET /api/users (admin only).
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	if err := validation.RequireNoQuery(c); err != nil {
		return models.RespondWithError(c, err)
	}

	users, err := s.userService.GetAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": users, "count": len(users)})
}

// GetUserByID handles GET /api/users/:id.
func (s *Server) GetUserByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// UpdateUserByID handles PUT /api/users/:id.
func (s *Server) UpdateUserByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Username  *string `json:"username"`
		BirthDate *string `json:"birthDate"`
		About     *string `json:"about"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateUserInput{Username: req.Username, About: req.About}
	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
	}
	if req.About != nil {
		if err := validation.ValidateAbout(*req.About); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
	}
	if req.BirthDate != nil {
		parsed, err := parseDate("birthDate", *req.BirthDate)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if err := validation.ValidateNotFuture("birthDate", parsed); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		in.BirthDate = &parsed
	}

	user, err := s.userService.UpdateByID(c.Context(), id, in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// DeleteUserByID handles DELETE /api/users/:id.
func (s *Server) DeleteUserByID(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.DeleteByID(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDiscography handles GET /api/users/:id/songs (public).
func (s *Server) GetDiscography(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	discography, err := s.userService.GetDiscography(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(discography)
}

// GetUserPlaylists handles GET /api/users/:id/playlists.
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	playlists, err := s.userService.GetPlaylists(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": playlists, "count": len(playlists)})
}

// GetUserRatings handles GET /api/users/:id/ratings.
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	ratings, err := s.userService.ListRatings(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": ratings, "count": len(ratings)})
}

// AddUserRating handles POST /api/users/:id/ratings.
func (s *Server) AddUserRating(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		SongID uint `json:"songId"`
		Rating int  `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.SongID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("songId must be a positive integer"))
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	rating, err := s.userService.AddRating(c.Context(), id, req.SongID, req.Rating)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// UpdateUserRating handles PUT /api/users/:id/ratings/:songId.
func (s *Server) UpdateUserRating(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	songID, err := validation.ParseIDParam(c, "songId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	rating, err := s.userService.UpdateRating(c.Context(), id, songID, req.Rating)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(rating)
}

// DeleteUserRating handles DELETE /api/users/:id/ratings/:songId.
func (s *Server) DeleteUserRating(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	songID, err := validation.ParseIDParam(c, "songId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.DeleteRating(c.Context(), id, songID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserGenrePreferences handles GET /api/users/:id/genres.
func (s *Server) GetUserGenrePreferences(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	genres, err := s.userService.ListGenrePreferences(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"items": genres, "count": len(genres)})
}

// AddUserGenrePreference handles POST /api/users/:id/genres.
func (s *Server) AddUserGenrePreference(c *fiber.Ctx) error {
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

	preference, err := s.userService.AddGenrePreference(c.Context(), id, req.GenreID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(preference)
}

// DeleteUserGenrePreference handles DELETE /api/users/:id/genres/:genreId.
func (s *Server) DeleteUserGenrePreference(c *fiber.Ctx) error {
	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	genreID, err := validation.ParseIDParam(c, "genreId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.DeleteGenrePreference(c.Context(), id, genreID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

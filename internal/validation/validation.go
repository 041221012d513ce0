// Package validation provides input validation utilities for request
// parameters and bodies. All checks run before the service layer.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"basify/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	songLengthRegex = regexp.MustCompile(`^\d{2}:[0-5]\d:[0-5]\d$`)
)

// ParseIDParam reads a positive-integer path parameter, failing with a
// validation error naming the offending parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		appErr := models.NewValidationError(fmt.Sprintf("Parameter %q must be a positive integer", name))
		appErr.Details = map[string]any{name: raw}
		return 0, appErr
	}
	return uint(id), nil
}

// RequireNoQuery rejects requests carrying query parameters on endpoints
// that accept none.
func RequireNoQuery(c *fiber.Ctx) error {
	queries := c.Queries()
	if len(queries) == 0 {
		return nil
	}
	params := make([]string, 0, len(queries))
	for name := range queries {
		params = append(params, name)
	}
	appErr := models.NewValidationError("Unknown query parameters are not allowed")
	appErr.Details = map[string]any{"params": params}
	return appErr
}

// ValidateUsername checks username bounds (1-50).
func ValidateUsername(username string) error {
	if len(username) < 1 || len(username) > 50 {
		return fmt.Errorf("username must be between 1 and 50 characters")
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// ValidatePassword checks password bounds (8-32).
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 32 {
		return fmt.Errorf("password must be between 8 and 32 characters")
	}
	return nil
}

// ValidateAbout checks the bio length cap.
func ValidateAbout(about string) error {
	if len(about) > 420 {
		return fmt.Errorf("about must not exceed 420 characters")
	}
	return nil
}

// ValidateGenreName checks genre name bounds (1-25).
func ValidateGenreName(name string) error {
	if len(name) < 1 || len(name) > 25 {
		return fmt.Errorf("genreName must be between 1 and 25 characters")
	}
	return nil
}

// ValidateName checks song title and playlist name bounds (1-100).
func ValidateName(field, value string) error {
	if len(value) < 1 || len(value) > 100 {
		return fmt.Errorf("%s must be between 1 and 100 characters", field)
	}
	return nil
}

// ValidateSongLength requires the exact HH:MM:SS form (8 characters).
func ValidateSongLength(length string) error {
	if len(length) != 8 || !songLengthRegex.MatchString(length) {
		return fmt.Errorf("length must be in HH:MM:SS format")
	}
	return nil
}

// ValidateRating checks the 1-5 rating bounds.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be an integer between 1 and 5")
	}
	return nil
}

// ValidateNotFuture rejects dates after the current time.
func ValidateNotFuture(field string, value time.Time) error {
	if value.After(time.Now()) {
		return fmt.Errorf("%s must not be in the future", field)
	}
	return nil
}

package server

import (
	"strconv"
	"time"

	"basify/internal/models"
	"basify/internal/service"
	"basify/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Register handles POST /api/users/register. A successful registration logs
// the user in immediately, returning the same payload as Login.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		BirthDate string `json:"birthDate"`
		IsArtist  bool   `json:"isArtist"`
		About     string `json:"about"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateAbout(req.About); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := parseDate("birthDate", req.BirthDate)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if err := validation.ValidateNotFuture("birthDate", parsed); err != nil {
			return models.RespondWithError(c, models.NewValidationError(err.Error()))
		}
		birthDate = &parsed
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
		IsArtist:  req.IsArtist,
		About:     req.About,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/users/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /api/users/logout, revoking the presented token by
// blacklisting its jti until its natural expiry.
func (s *Server) Logout(c *fiber.Ctx) error {
	session := sessionFrom(c)
	if session != nil && session.JTI != "" && s.redis != nil {
		ttl := time.Until(time.Unix(session.ExpiresAt, 0))
		if ttl > 0 {
			s.redis.Set(c.Context(), "blacklist:"+session.JTI, "1", ttl)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// generateToken creates a signed bearer token carrying the user's identity,
// persisted roles and artist flag.
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"roles":    user.Roles,
		"isArtist": user.IsArtist,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(s.config.TokenTTL()).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

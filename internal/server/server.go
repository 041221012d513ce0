// Package server contains the HTTP handlers and middleware gates for the
// application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"basify/internal/cache"
	"basify/internal/config"
	"basify/internal/database"
	"basify/internal/middleware"
	"basify/internal/models"
	"basify/internal/observability"
	"basify/internal/repository"
	"basify/internal/service"
	"basify/internal/validation"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "basify-api"
	tokenAudience = "basify-client"

	sessionKey = "session"
)

var (
	promOnce    sync.Once
	promMetrics *fiberprometheus.FiberPrometheus
)

// requestMetrics returns the process-wide Prometheus request middleware.
// fiberprometheus registers its collectors globally, so it is created once
// even when tests build many servers.
func requestMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMetrics = fiberprometheus.New("basify-api")
	})
	return promMetrics
}

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	songRepo     repository.SongRepository
	genreRepo    repository.GenreRepository
	playlistRepo repository.PlaylistRepository

	userService     *service.UserService
	songService     *service.SongService
	genreService    *service.GenreService
	playlistService *service.PlaylistService
}

// NewServer creates a server instance, establishing its own database and
// Redis connections from the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and no Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	songRepo := repository.NewSongRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: requestMetrics(),
		userRepo:       userRepo,
		songRepo:       songRepo,
		genreRepo:      genreRepo,
		playlistRepo:   playlistRepo,
	}
	server.userService = service.NewUserService(userRepo, songRepo, genreRepo)
	server.songService = service.NewSongService(songRepo, genreRepo)
	server.genreService = service.NewGenreService(genreRepo)
	server.playlistService = service.NewPlaylistService(playlistRepo, songRepo)

	return server, nil
}

// SetupMiddleware configures the global middleware stack.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so browser clients
	// still receive CORS headers on error responses.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	auth := s.RequireAuth()
	adminOnly := s.RequireRoles(models.RoleAdmin)
	adminOrArtist := s.RequireRoles(models.RoleAdmin, models.RoleArtist)

	// User routes. Specific /:id/:resource routes are registered before the
	// generic /:id routes.
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/logout", auth, s.Logout)
	users.Get("/", auth, adminOnly, s.GetAllUsers)

	users.Get("/:id/songs", s.GetDiscography)
	users.Get("/:id/playlists", auth, s.CheckUserID, s.GetUserPlaylists)
	users.Get("/:id/ratings", auth, s.CheckUserID, s.GetUserRatings)
	users.Post("/:id/ratings", auth, s.CheckUserID, s.AddUserRating)
	users.Put("/:id/ratings/:songId", auth, s.CheckUserID, s.UpdateUserRating)
	users.Delete("/:id/ratings/:songId", auth, s.CheckUserID, s.DeleteUserRating)
	users.Get("/:id/genres", auth, s.CheckUserID, s.GetUserGenrePreferences)
	users.Post("/:id/genres", auth, s.CheckUserID, s.AddUserGenrePreference)
	users.Delete("/:id/genres/:genreId", auth, s.CheckUserID, s.DeleteUserGenrePreference)

	users.Get("/:id", auth, s.CheckUserID, s.GetUserByID)
	users.Put("/:id", auth, s.CheckUserID, s.UpdateUserByID)
	users.Delete("/:id", auth, s.CheckUserID, s.DeleteUserByID)

	// Song routes. The listing is public; everything caller-specific is not.
	songs := api.Group("/songs")
	songs.Get("/", s.GetAllSongs)
	songs.Post("/", auth, adminOrArtist, s.CreateSong)
	songs.Post("/:id/genres", auth, adminOrArtist, s.AddSongGenre)
	songs.Delete("/:id/genres/:genreId", auth, adminOrArtist, s.RemoveSongGenre)
	songs.Get("/:id", auth, adminOrArtist, s.GetSongByID)
	songs.Put("/:id", auth, adminOrArtist, s.UpdateSong)
	songs.Delete("/:id", auth, adminOrArtist, s.DeleteSong)

	// Playlist routes, always scoped to the authenticated owner.
	playlists := api.Group("/playlists", auth)
	playlists.Get("/", s.GetAllPlaylists)
	playlists.Post("/", s.CreatePlaylist)
	playlists.Post("/:id/songs", s.AddPlaylistSong)
	playlists.Delete("/:id/songs/:songId", s.RemovePlaylistSong)
	playlists.Get("/:id", s.GetPlaylistByID)
	playlists.Put("/:id", s.UpdatePlaylist)
	playlists.Delete("/:id", s.DeletePlaylist)

	// Genre routes. Reads are public, writes are privileged.
	genres := api.Group("/genres")
	genres.Get("/", s.GetAllGenres)
	genres.Post("/", auth, adminOrArtist, s.CreateGenre)
	genres.Get("/:id", s.GetGenreByID)
	genres.Put("/:id", auth, adminOnly, s.UpdateGenre)
	genres.Delete("/:id", auth, adminOnly, s.DeleteGenre)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional; without it rate limits are skipped and tokens
	// cannot be revoked, but the API stays up.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RequireAuth returns the authentication middleware. It verifies the bearer
// token, derives the ARTIST role from the isArtist claim and attaches the
// resolved session to the request.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			observability.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("You need to be signed in"))
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			observability.AuthFailuresTotal.WithLabelValues("bad_scheme").Inc()
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid authentication token"))
		}

		session, err := s.verifyToken(c.Context(), tokenString)
		if err != nil {
			observability.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			middleware.Logger.WarnContext(c.UserContext(),
				"token verification failed", slog.String("error", err.Error()))
			return models.RespondWithError(c, err)
		}

		c.Locals(sessionKey, session)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, session.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// verifyToken parses and validates a bearer token and resolves it into a
// session. All failures surface as 401 domain errors.
func (s *Server) verifyToken(ctx context.Context, tokenString string) (*models.Session, error) {
	invalid := models.NewUnauthorizedError("Invalid authentication token")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil || !token.Valid {
		return nil, invalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, invalid
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, invalid
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, invalid
	}

	roles := models.RoleList{}
	if rawRoles, ok := claims["roles"].([]any); ok {
		for _, raw := range rawRoles {
			if role, ok := raw.(string); ok {
				roles = append(roles, models.Role(role))
			}
		}
	}
	if isArtist, ok := claims["isArtist"].(bool); ok && isArtist {
		roles = append(roles, models.RoleArtist)
	}

	session := &models.Session{UserID: uint(userID), Roles: roles}
	if jti, ok := claims["jti"].(string); ok {
		session.JTI = jti
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Unix()
	}

	if session.JTI != "" && s.redis != nil {
		revoked, err := s.redis.Exists(ctx, "blacklist:"+session.JTI).Result()
		if err == nil && revoked > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	return session, nil
}

// RequireRoles returns middleware rejecting sessions whose roles do not
// intersect the given set. Must run after RequireAuth.
func (s *Server) RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := sessionFrom(c)
		if session == nil || !session.Roles.Intersects(roles...) {
			return models.RespondWithError(c,
				models.NewForbiddenError("You are not allowed to view this part of the application"))
		}
		return c.Next()
	}
}

// CheckUserID guards user-scoped routes: the path id must match the session's
// user unless the caller is an admin. The outcome never depends on whether
// the target user exists.
func (s *Server) CheckUserID(c *fiber.Ctx) error {
	session := sessionFrom(c)
	if session == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("You need to be signed in"))
	}

	id, err := validation.ParseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if id != session.UserID && !session.Roles.Has(models.RoleAdmin) {
		return models.RespondWithError(c,
			models.NewForbiddenError("You are not allowed to view this user's information"))
	}
	return c.Next()
}

// sessionFrom returns the session attached by RequireAuth, or nil.
func sessionFrom(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionKey).(*models.Session)
	return session
}

// Start builds the fiber app, wires middleware and routes and begins serving.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Basify API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}

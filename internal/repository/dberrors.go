package repository

import (
	"errors"
	"strings"

	"basify/internal/models"
	"basify/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint violations are classified structurally (SQLSTATE class plus the
// violated constraint's name) and resolved against the declarative tables
// below, defined once next to the schema rather than scattered per operation.

// uniqueMessages maps unique index and primary key names to the message of
// the VALIDATION_FAILED error they translate to.
var uniqueMessages = map[string]string{
	"idx_username_unique":                "A user with this name already exists",
	"idx_user_email_unique":              "There is already a user with this email address",
	"idx_genre_name_unique":              "A genre with this name already exists",
	"idx_song_title_and_artist_unique":   "A song with this title already exists",
	"idx_playlist_name_and_owner_unique": "A playlist with this name already exists",
	"playlist_songs_pkey":                "This song has already been added to the playlist",
	"user_song_ratings_pkey":             "This song has already been rated",
	"user_genre_preferences_pkey":        "This genre has already been added to the preferences",
	"song_genres_pkey":                   "This genre has already been added to the song",
}

// foreignKeyMessages maps foreign key constraint names to the message of the
// NOT_FOUND error they translate to.
var foreignKeyMessages = map[string]string{
	"fk_songs_artist":                 "This artist does not exist",
	"fk_playlists_owner":              "This user does not exist",
	"fk_playlist_songs_playlist":      "This playlist does not exist",
	"fk_playlist_songs_song":          "This song does not exist",
	"fk_song_genres_song":             "This song does not exist",
	"fk_song_genres_genre":            "This genre does not exist",
	"fk_user_genre_preferences_user":  "This user does not exist",
	"fk_user_genre_preferences_genre": "This genre does not exist",
	"fk_user_song_ratings_user":       "This user does not exist",
	"fk_user_song_ratings_song":       "This song does not exist",
}

// sqliteUniqueMessages resolves SQLite unique violations, which report
// "table.column" instead of a constraint name. Composite keys are resolved
// by their first column.
var sqliteUniqueMessages = map[string]string{
	"users.username":                "A user with this name already exists",
	"users.email":                   "There is already a user with this email address",
	"genres.name":                   "A genre with this name already exists",
	"songs.artist_id":               "A song with this title already exists",
	"playlists.owner_id":            "A playlist with this name already exists",
	"playlist_songs.playlist_id":    "This song has already been added to the playlist",
	"user_song_ratings.user_id":     "This song has already been rated",
	"user_genre_preferences.user_id": "This genre has already been added to the preferences",
	"song_genres.song_id":           "This genre has already been added to the song",
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateDBError converts storage-layer constraint violations into domain
// errors with constraint-specific messages. Errors of any other kind pass
// through unchanged. Every mutating repository operation routes its DB error
// through here, never inline per call site.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			observability.ConstraintViolationsTotal.WithLabelValues(pgErr.ConstraintName).Inc()
			if msg, ok := uniqueMessages[pgErr.ConstraintName]; ok {
				return models.NewValidationError(msg)
			}
			return models.NewValidationError("This item already exists")
		case pgForeignKeyViolation:
			observability.ConstraintViolationsTotal.WithLabelValues(pgErr.ConstraintName).Inc()
			if msg, ok := foreignKeyMessages[pgErr.ConstraintName]; ok {
				return models.NewNotFoundError(msg, nil)
			}
		}
		return err
	}

	// SQLite (used by the in-memory test setup) reports violations in the
	// error text rather than a structured constraint name.
	msg := err.Error()
	if idx := strings.Index(msg, "UNIQUE constraint failed: "); idx >= 0 {
		rest := msg[idx+len("UNIQUE constraint failed: "):]
		first := rest
		if cut := strings.IndexAny(rest, ", ("); cut >= 0 {
			first = rest[:cut]
		}
		first = strings.TrimSpace(first)
		observability.ConstraintViolationsTotal.WithLabelValues(first).Inc()
		if translated, found := sqliteUniqueMessages[first]; found {
			return models.NewValidationError(translated)
		}
		return models.NewValidationError("This item already exists")
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		observability.ConstraintViolationsTotal.WithLabelValues("foreign_key").Inc()
		return models.NewNotFoundError("This item does not exist", nil)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewValidationError("This item already exists")
	}

	return err
}

package repository

import (
	"errors"
	"fmt"
	"testing"

	"basify/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestTranslateDBError_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		message    string
	}{
		{"idx_username_unique", "A user with this name already exists"},
		{"idx_user_email_unique", "There is already a user with this email address"},
		{"idx_genre_name_unique", "A genre with this name already exists"},
		{"idx_song_title_and_artist_unique", "A song with this title already exists"},
		{"idx_playlist_name_and_owner_unique", "A playlist with this name already exists"},
		{"playlist_songs_pkey", "This song has already been added to the playlist"},
		{"user_song_ratings_pkey", "This song has already been rated"},
		{"user_genre_preferences_pkey", "This genre has already been added to the preferences"},
		{"song_genres_pkey", "This genre has already been added to the song"},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := translateDBError(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: tt.constraint,
			})
			assertAppError(t, err, models.CodeValidationFailed, tt.message)
		})
	}
}

func TestTranslateDBError_UnknownUniqueConstraint(t *testing.T) {
	err := translateDBError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_something_else"})
	assertAppError(t, err, models.CodeValidationFailed, "This item already exists")
}

func TestTranslateDBError_ForeignKeyViolations(t *testing.T) {
	tests := []struct {
		constraint string
		message    string
	}{
		{"fk_songs_artist", "This artist does not exist"},
		{"fk_playlists_owner", "This user does not exist"},
		{"fk_playlist_songs_song", "This song does not exist"},
		{"fk_song_genres_genre", "This genre does not exist"},
		{"fk_user_song_ratings_song", "This song does not exist"},
		{"fk_user_genre_preferences_genre", "This genre does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := translateDBError(&pgconn.PgError{
				Code:           "23503",
				ConstraintName: tt.constraint,
			})
			assertAppError(t, err, models.CodeNotFound, tt.message)
		})
	}
}

func TestTranslateDBError_UnknownForeignKeyPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_unknown"}
	err := translateDBError(pgErr)

	var appErr *models.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Equal(t, pgErr, err)
}

func TestTranslateDBError_WrappedPgError(t *testing.T) {
	wrapped := fmt.Errorf("create failed: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_genre_name_unique",
	})
	assertAppError(t, translateDBError(wrapped),
		models.CodeValidationFailed, "A genre with this name already exists")
}

func TestTranslateDBError_SQLiteUnique(t *testing.T) {
	err := translateDBError(errors.New("UNIQUE constraint failed: genres.name"))
	assertAppError(t, err, models.CodeValidationFailed, "A genre with this name already exists")

	err = translateDBError(errors.New("UNIQUE constraint failed: songs.artist_id, songs.title"))
	assertAppError(t, err, models.CodeValidationFailed, "A song with this title already exists")

	err = translateDBError(errors.New("UNIQUE constraint failed: mystery.column"))
	assertAppError(t, err, models.CodeValidationFailed, "This item already exists")
}

func TestTranslateDBError_SQLiteForeignKey(t *testing.T) {
	err := translateDBError(errors.New("FOREIGN KEY constraint failed"))
	assertAppError(t, err, models.CodeNotFound, "This item does not exist")
}

func TestTranslateDBError_PassThrough(t *testing.T) {
	assert.NoError(t, translateDBError(nil))

	plain := errors.New("connection timeout")
	assert.Equal(t, plain, translateDBError(plain))

	otherPg := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, otherPg, translateDBError(otherPg))
}

package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"basify/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "lisa", "lisa@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("lisa@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "lisa@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "lisa", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown email yields nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("ghost@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error surfaces as internal", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("lisa@example.com", 1).
			WillReturnError(errors.New("connection timeout"))

		_, err := repo.GetByEmail(ctx, "lisa@example.com")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInternal, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetAll_OrdersByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(2, "anna").
		AddRow(1, "zoe")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" ORDER BY username ASC`)).
		WillReturnRows(rows)

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "anna", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteRating(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_song_ratings" WHERE user_id = $1 AND song_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteRating(ctx, 1, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent rating names both ids", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_song_ratings" WHERE user_id = $1 AND song_id = $2`)).
			WithArgs(1, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.DeleteRating(ctx, 1, 99)
		assertAppError(t, err, models.CodeNotFound, "No user with id 1 exists or no song with id 99 has a rating")

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, uint(1), appErr.Details["userId"])
		assert.Equal(t, uint(99), appErr.Details["songId"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_AddRating_DuplicateTranslated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "user_song_ratings" ("user_id","song_id","rating") VALUES ($1,$2,$3)`)).
		WithArgs(1, 2, 5).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "user_song_ratings_pkey"})
	mock.ExpectRollback()

	err := repo.AddRating(context.Background(), &models.UserSongRating{UserID: 1, SongID: 2, Rating: 5})
	assertAppError(t, err, models.CodeValidationFailed, "This song has already been rated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

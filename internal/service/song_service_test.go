package service

import (
	"context"
	"testing"
	"time"

	"basify/internal/models"
	"basify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedSongRepo() *songRepoStub {
	repo := noopSongRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Song, error) {
		return &models.Song{ID: id, ArtistID: 1, Title: "Owned"}, nil
	}
	return repo
}

func TestSongService_Create(t *testing.T) {
	var created *models.Song
	songRepo := noopSongRepo()
	songRepo.createFn = func(_ context.Context, song *models.Song) error {
		created = song
		song.ID = 5
		return nil
	}
	svc := NewSongService(songRepo, noopGenreRepo())

	release := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	song, err := svc.Create(context.Background(), CreateSongInput{
		ArtistID:    1,
		Title:       "First Light",
		Length:      "00:04:20",
		ReleaseDate: release,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(5), song.ID)
	assert.Equal(t, uint(1), song.ArtistID)
	assert.Equal(t, release, song.ReleaseDate)
}

func TestSongService_Update_OwnershipHiddenAsAbsence(t *testing.T) {
	svc := NewSongService(ownedSongRepo(), noopGenreRepo())
	ctx := context.Background()
	title := "Renamed"

	t.Run("owner can update", func(t *testing.T) {
		_, err := svc.Update(ctx, 3, 1, UpdateSongInput{Title: &title})
		assert.NoError(t, err)
	})

	t.Run("non-owner gets not found, not forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, 3, 2, UpdateSongInput{Title: &title})
		appErr := assertAppErrorCode(t, err, models.CodeNotFound)
		assert.Equal(t, "No song with id 3 exists", appErr.Message)
	})
}

func TestSongService_Delete_NonOwner(t *testing.T) {
	deleted := false
	songRepo := ownedSongRepo()
	songRepo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	svc := NewSongService(songRepo, noopGenreRepo())

	err := svc.Delete(context.Background(), 3, 2)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.False(t, deleted)
}

func TestSongService_AddGenre(t *testing.T) {
	ctx := context.Background()

	t.Run("links owner's song to existing genre", func(t *testing.T) {
		var linked *models.SongGenre
		songRepo := ownedSongRepo()
		songRepo.addGenreFn = func(_ context.Context, link *models.SongGenre) error {
			linked = link
			return nil
		}
		svc := NewSongService(songRepo, noopGenreRepo())

		link, err := svc.AddGenre(ctx, 3, 9, 1)
		require.NoError(t, err)
		assert.Equal(t, &models.SongGenre{SongID: 3, GenreID: 9}, link)
		assert.Equal(t, link, linked)
	})

	t.Run("missing genre propagates", func(t *testing.T) {
		genreRepo := noopGenreRepo()
		genreRepo.getByIDFn = func(_ context.Context, id uint) (*models.Genre, error) {
			return nil, models.NewNotFoundError("No genre with id 9 exists", nil)
		}
		svc := NewSongService(ownedSongRepo(), genreRepo)

		_, err := svc.AddGenre(ctx, 3, 9, 1)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestSongService_Update_PartialFields(t *testing.T) {
	var gotUpdate repository.SongUpdate
	songRepo := ownedSongRepo()
	songRepo.updateFn = func(_ context.Context, id uint, update repository.SongUpdate) (*models.Song, error) {
		gotUpdate = update
		return &models.Song{ID: id}, nil
	}
	svc := NewSongService(songRepo, noopGenreRepo())

	title := "Only Title"
	_, err := svc.Update(context.Background(), 3, 1, UpdateSongInput{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, gotUpdate.Title)
	assert.Equal(t, "Only Title", *gotUpdate.Title)
	assert.Nil(t, gotUpdate.ReleaseDate)
}

package service

import (
	"context"
	"testing"

	"basify/internal/models"
	"basify/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppErrorCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getAllFn                func(context.Context) ([]models.User, error)
	getByIDFn               func(context.Context, uint) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	createFn                func(context.Context, *models.User) error
	updateFn                func(context.Context, uint, repository.UserUpdate) (*models.User, error)
	deleteFn                func(context.Context, uint) error
	listPlaylistsFn         func(context.Context, uint) ([]models.Playlist, error)
	listRatingsFn           func(context.Context, uint) ([]models.UserSongRating, error)
	getRatingFn             func(context.Context, uint, uint) (*models.UserSongRating, error)
	addRatingFn             func(context.Context, *models.UserSongRating) error
	updateRatingFn          func(context.Context, uint, uint, int) error
	deleteRatingFn          func(context.Context, uint, uint) error
	listGenrePreferencesFn  func(context.Context, uint) ([]models.Genre, error)
	addGenrePreferenceFn    func(context.Context, *models.UserGenrePreference) error
	deleteGenrePreferenceFn func(context.Context, uint, uint) error
}

func (s *userRepoStub) GetAll(ctx context.Context) ([]models.User, error) { return s.getAllFn(ctx) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, id uint, update repository.UserUpdate) (*models.User, error) {
	return s.updateFn(ctx, id, update)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) ListPlaylists(ctx context.Context, userID uint) ([]models.Playlist, error) {
	return s.listPlaylistsFn(ctx, userID)
}
func (s *userRepoStub) ListRatings(ctx context.Context, userID uint) ([]models.UserSongRating, error) {
	return s.listRatingsFn(ctx, userID)
}
func (s *userRepoStub) GetRating(ctx context.Context, userID, songID uint) (*models.UserSongRating, error) {
	return s.getRatingFn(ctx, userID, songID)
}
func (s *userRepoStub) AddRating(ctx context.Context, rating *models.UserSongRating) error {
	return s.addRatingFn(ctx, rating)
}
func (s *userRepoStub) UpdateRating(ctx context.Context, userID, songID uint, rating int) error {
	return s.updateRatingFn(ctx, userID, songID, rating)
}
func (s *userRepoStub) DeleteRating(ctx context.Context, userID, songID uint) error {
	return s.deleteRatingFn(ctx, userID, songID)
}
func (s *userRepoStub) ListGenrePreferences(ctx context.Context, userID uint) ([]models.Genre, error) {
	return s.listGenrePreferencesFn(ctx, userID)
}
func (s *userRepoStub) AddGenrePreference(ctx context.Context, preference *models.UserGenrePreference) error {
	return s.addGenrePreferenceFn(ctx, preference)
}
func (s *userRepoStub) DeleteGenrePreference(ctx context.Context, userID, genreID uint) error {
	return s.deleteGenrePreferenceFn(ctx, userID, genreID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getAllFn:     func(context.Context) ([]models.User, error) { return nil, nil },
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn: func(_ context.Context, id uint, _ repository.UserUpdate) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn:        func(context.Context, uint) error { return nil },
		listPlaylistsFn: func(context.Context, uint) ([]models.Playlist, error) { return nil, nil },
		listRatingsFn:   func(context.Context, uint) ([]models.UserSongRating, error) { return nil, nil },
		getRatingFn: func(_ context.Context, userID, songID uint) (*models.UserSongRating, error) {
			return &models.UserSongRating{UserID: userID, SongID: songID}, nil
		},
		addRatingFn:             func(context.Context, *models.UserSongRating) error { return nil },
		updateRatingFn:          func(context.Context, uint, uint, int) error { return nil },
		deleteRatingFn:          func(context.Context, uint, uint) error { return nil },
		listGenrePreferencesFn:  func(context.Context, uint) ([]models.Genre, error) { return nil, nil },
		addGenrePreferenceFn:    func(context.Context, *models.UserGenrePreference) error { return nil },
		deleteGenrePreferenceFn: func(context.Context, uint, uint) error { return nil },
	}
}

// songRepoStub is a stub for repository.SongRepository.
type songRepoStub struct {
	getAllFn       func(context.Context) ([]models.Song, error)
	getByIDFn      func(context.Context, uint) (*models.Song, error)
	getDetailFn    func(context.Context, uint, uint) (*models.Song, error)
	listByArtistFn func(context.Context, uint) ([]models.Song, error)
	createFn       func(context.Context, *models.Song) error
	updateFn       func(context.Context, uint, repository.SongUpdate) (*models.Song, error)
	deleteFn       func(context.Context, uint) error
	addGenreFn     func(context.Context, *models.SongGenre) error
	removeGenreFn  func(context.Context, uint, uint) error
}

func (s *songRepoStub) GetAll(ctx context.Context) ([]models.Song, error) { return s.getAllFn(ctx) }
func (s *songRepoStub) GetByID(ctx context.Context, id uint) (*models.Song, error) {
	return s.getByIDFn(ctx, id)
}
func (s *songRepoStub) GetDetail(ctx context.Context, songID, userID uint) (*models.Song, error) {
	return s.getDetailFn(ctx, songID, userID)
}
func (s *songRepoStub) ListByArtist(ctx context.Context, artistID uint) ([]models.Song, error) {
	return s.listByArtistFn(ctx, artistID)
}
func (s *songRepoStub) Create(ctx context.Context, song *models.Song) error {
	return s.createFn(ctx, song)
}
func (s *songRepoStub) Update(ctx context.Context, id uint, update repository.SongUpdate) (*models.Song, error) {
	return s.updateFn(ctx, id, update)
}
func (s *songRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *songRepoStub) AddGenre(ctx context.Context, link *models.SongGenre) error {
	return s.addGenreFn(ctx, link)
}
func (s *songRepoStub) RemoveGenre(ctx context.Context, songID, genreID uint) error {
	return s.removeGenreFn(ctx, songID, genreID)
}

func noopSongRepo() *songRepoStub {
	return &songRepoStub{
		getAllFn:  func(context.Context) ([]models.Song, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Song, error) { return &models.Song{ID: id}, nil },
		getDetailFn: func(_ context.Context, songID, _ uint) (*models.Song, error) {
			return &models.Song{ID: songID}, nil
		},
		listByArtistFn: func(context.Context, uint) ([]models.Song, error) { return nil, nil },
		createFn:       func(context.Context, *models.Song) error { return nil },
		updateFn: func(_ context.Context, id uint, _ repository.SongUpdate) (*models.Song, error) {
			return &models.Song{ID: id}, nil
		},
		deleteFn:      func(context.Context, uint) error { return nil },
		addGenreFn:    func(context.Context, *models.SongGenre) error { return nil },
		removeGenreFn: func(context.Context, uint, uint) error { return nil },
	}
}

// genreRepoStub is a stub for repository.GenreRepository.
type genreRepoStub struct {
	getAllFn       func(context.Context) ([]models.Genre, error)
	getByIDFn      func(context.Context, uint) (*models.Genre, error)
	getWithSongsFn func(context.Context, uint) (*models.Genre, error)
	createFn       func(context.Context, *models.Genre) error
	updateFn       func(context.Context, uint, string) (*models.Genre, error)
	deleteFn       func(context.Context, uint) error
}

func (s *genreRepoStub) GetAll(ctx context.Context) ([]models.Genre, error) { return s.getAllFn(ctx) }
func (s *genreRepoStub) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.getByIDFn(ctx, id)
}
func (s *genreRepoStub) GetWithSongs(ctx context.Context, id uint) (*models.Genre, error) {
	return s.getWithSongsFn(ctx, id)
}
func (s *genreRepoStub) Create(ctx context.Context, genre *models.Genre) error {
	return s.createFn(ctx, genre)
}
func (s *genreRepoStub) Update(ctx context.Context, id uint, name string) (*models.Genre, error) {
	return s.updateFn(ctx, id, name)
}
func (s *genreRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopGenreRepo() *genreRepoStub {
	return &genreRepoStub{
		getAllFn:  func(context.Context) ([]models.Genre, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Genre, error) { return &models.Genre{ID: id}, nil },
		getWithSongsFn: func(_ context.Context, id uint) (*models.Genre, error) {
			return &models.Genre{ID: id}, nil
		},
		createFn: func(context.Context, *models.Genre) error { return nil },
		updateFn: func(_ context.Context, id uint, name string) (*models.Genre, error) {
			return &models.Genre{ID: id, Name: name}, nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	listByOwnerFn func(context.Context, uint) ([]models.Playlist, error)
	getByIDFn     func(context.Context, uint) (*models.Playlist, error)
	getDetailFn   func(context.Context, uint, uint) (*models.Playlist, error)
	createFn      func(context.Context, *models.Playlist) error
	renameFn      func(context.Context, uint, string) (*models.Playlist, error)
	deleteFn      func(context.Context, uint) error
	addSongFn     func(context.Context, *models.PlaylistSong) error
	removeSongFn  func(context.Context, uint, uint) error
}

func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) GetDetail(ctx context.Context, playlistID, userID uint) (*models.Playlist, error) {
	return s.getDetailFn(ctx, playlistID, userID)
}
func (s *playlistRepoStub) Create(ctx context.Context, playlist *models.Playlist) error {
	return s.createFn(ctx, playlist)
}
func (s *playlistRepoStub) Rename(ctx context.Context, id uint, name string) (*models.Playlist, error) {
	return s.renameFn(ctx, id, name)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *playlistRepoStub) AddSong(ctx context.Context, membership *models.PlaylistSong) error {
	return s.addSongFn(ctx, membership)
}
func (s *playlistRepoStub) RemoveSong(ctx context.Context, playlistID, songID uint) error {
	return s.removeSongFn(ctx, playlistID, songID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		listByOwnerFn: func(context.Context, uint) ([]models.Playlist, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Playlist, error) {
			return &models.Playlist{ID: id, OwnerID: 1}, nil
		},
		getDetailFn: func(_ context.Context, playlistID, _ uint) (*models.Playlist, error) {
			return &models.Playlist{ID: playlistID, OwnerID: 1}, nil
		},
		createFn: func(context.Context, *models.Playlist) error { return nil },
		renameFn: func(_ context.Context, id uint, name string) (*models.Playlist, error) {
			return &models.Playlist{ID: id, Name: name}, nil
		},
		deleteFn:     func(context.Context, uint) error { return nil },
		addSongFn:    func(context.Context, *models.PlaylistSong) error { return nil },
		removeSongFn: func(context.Context, uint, uint) error { return nil },
	}
}

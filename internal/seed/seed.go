// Package seed creates development and demo data. It is never invoked by the
// server itself; cmd/seed and tests drive it explicitly.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"basify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "12345678"

// Options sizes a seeding run.
type Options struct {
	Artists        int
	Listeners      int
	SongsPerArtist int
	Playlists      int
}

// DefaultOptions is a small but fully connected data set.
var DefaultOptions = Options{
	Artists:        5,
	Listeners:      20,
	SongsPerArtist: 8,
	Playlists:      15,
}

// Seeder populates the database with fake catalog data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll removes all rows, children first so the cascades never fire.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"user_song_ratings", "user_genre_preferences", "playlist_songs",
		"song_genres", "playlists", "songs", "genres", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

var genreNames = []string{
	"Rock", "Pop", "Jazz", "Blues", "Hip Hop", "Electronic", "Classical",
	"Metal", "Folk", "Funk", "Soul", "Ambient",
}

// Run populates genres, users, songs, playlists, ratings and preferences.
func (s *Seeder) Run(opts Options) error {
	genres, err := s.SeedGenres()
	if err != nil {
		return err
	}

	if _, err := s.CreateAdmin(); err != nil {
		return err
	}

	var artists []*models.User
	for i := 0; i < opts.Artists; i++ {
		artist, err := s.CreateUser(true)
		if err != nil {
			return err
		}
		artists = append(artists, artist)
	}

	var listeners []*models.User
	for i := 0; i < opts.Listeners; i++ {
		listener, err := s.CreateUser(false)
		if err != nil {
			return err
		}
		listeners = append(listeners, listener)
	}

	var songs []*models.Song
	for _, artist := range artists {
		for i := 0; i < opts.SongsPerArtist; i++ {
			song, err := s.CreateSong(artist)
			if err != nil {
				return err
			}
			genre := genres[s.rand.Intn(len(genres))]
			link := &models.SongGenre{SongID: song.ID, GenreID: genre.ID}
			if err := s.db.Create(link).Error; err != nil {
				return fmt.Errorf("linking song genre: %w", err)
			}
			songs = append(songs, song)
		}
	}

	for i := 0; i < opts.Playlists; i++ {
		owner := listeners[s.rand.Intn(len(listeners))]
		if err := s.CreatePlaylist(owner, songs); err != nil {
			return err
		}
	}

	for _, listener := range listeners {
		for _, song := range songs {
			if s.rand.Intn(4) != 0 {
				continue
			}
			rating := &models.UserSongRating{
				UserID: listener.ID,
				SongID: song.ID,
				Rating: 1 + s.rand.Intn(5),
			}
			if err := s.db.Create(rating).Error; err != nil {
				return fmt.Errorf("seeding rating: %w", err)
			}
		}
		genre := genres[s.rand.Intn(len(genres))]
		preference := &models.UserGenrePreference{UserID: listener.ID, GenreID: genre.ID}
		if err := s.db.Create(preference).Error; err != nil {
			return fmt.Errorf("seeding genre preference: %w", err)
		}
	}

	return nil
}

// SeedGenres inserts the fixed genre catalog.
func (s *Seeder) SeedGenres() ([]*models.Genre, error) {
	var genres []*models.Genre
	for _, name := range genreNames {
		genre := &models.Genre{Name: name}
		if err := s.db.Create(genre).Error; err != nil {
			return nil, fmt.Errorf("seeding genre %q: %w", name, err)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

// CreateAdmin creates the well-known admin account.
func (s *Seeder) CreateAdmin() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.User{
		Username:     "admin",
		Email:        "admin@basify.dev",
		PasswordHash: string(hash),
		Roles:        models.RoleList{models.RoleAdmin, models.RoleUser},
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("seeding admin: %w", err)
	}
	return admin, nil
}

// CreateUser creates a listener, or an artist with a bio when isArtist is set.
func (s *Seeder) CreateUser(isArtist bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	birthDate := gofakeit.DateRange(
		time.Now().AddDate(-60, 0, 0), time.Now().AddDate(-14, 0, 0))
	user := &models.User{
		Username:     gofakeit.Username(),
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
		Roles:        models.RoleList{models.RoleUser},
		BirthDate:    &birthDate,
		IsArtist:     isArtist,
	}
	if isArtist {
		user.About = gofakeit.Sentence(12)
		user.PictureLocation = fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID())
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding user: %w", err)
	}
	return user, nil
}

// CreateSong creates a song owned by the given artist.
func (s *Seeder) CreateSong(artist *models.User) (*models.Song, error) {
	length := fmt.Sprintf("00:%02d:%02d", 1+s.rand.Intn(9), s.rand.Intn(60))
	song := &models.Song{
		ArtistID:    artist.ID,
		Title:       gofakeit.HipsterSentence(3),
		Length:      length,
		ReleaseDate: gofakeit.DateRange(time.Now().AddDate(-30, 0, 0), time.Now()),
		ArtLocation: fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
	}
	if err := s.db.Create(song).Error; err != nil {
		return nil, fmt.Errorf("seeding song: %w", err)
	}
	return song, nil
}

// CreatePlaylist creates a playlist for the owner and fills it with a few
// random songs.
func (s *Seeder) CreatePlaylist(owner *models.User, songs []*models.Song) error {
	playlist := &models.Playlist{
		OwnerID:      owner.ID,
		Name:         fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounAbstract()),
		CreationDate: gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()),
	}
	if err := s.db.Create(playlist).Error; err != nil {
		// Name collisions happen with fake data; skip rather than fail.
		return nil
	}

	seen := map[uint]struct{}{}
	for i := 0; i < 1+s.rand.Intn(10); i++ {
		song := songs[s.rand.Intn(len(songs))]
		if _, dup := seen[song.ID]; dup {
			continue
		}
		seen[song.ID] = struct{}{}
		membership := &models.PlaylistSong{
			PlaylistID:  playlist.ID,
			SongID:      song.ID,
			AddedOnDate: gofakeit.DateRange(playlist.CreationDate, time.Now()),
		}
		if err := s.db.Create(membership).Error; err != nil {
			return fmt.Errorf("seeding playlist song: %w", err)
		}
	}
	return nil
}

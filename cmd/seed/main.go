// Command main runs the database seeder for Basify.
package main

import (
	"flag"
	"log"

	"basify/internal/config"
	"basify/internal/database"
	"basify/internal/seed"
)

func main() {
	artists := flag.Int("artists", seed.DefaultOptions.Artists, "Number of artists to create")
	listeners := flag.Int("listeners", seed.DefaultOptions.Listeners, "Number of listeners to create")
	songs := flag.Int("songs", seed.DefaultOptions.SongsPerArtist, "Songs per artist")
	playlists := flag.Int("playlists", seed.DefaultOptions.Playlists, "Number of playlists to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		Artists:        *artists,
		Listeners:      *listeners,
		SongsPerArtist: *songs,
		Playlists:      *playlists,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d artists, %d listeners, %d songs per artist, %d playlists",
		*artists, *listeners, *songs, *playlists)
}

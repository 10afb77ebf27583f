package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"jokebox/internal/config"
	"jokebox/internal/db"
	"jokebox/internal/model"
	"jokebox/internal/repository"
)

// SeedJokeData represents one joke in the seed source.
type SeedJokeData struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func main() {
	source := flag.String("source", "jokes.json", "seed source: a local JSON file or an http(s) URL")
	flag.Parse()

	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Joke{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Printf("Loading jokes from: %s", *source)
	jokes, err := loadJokes(*source)
	if err != nil {
		log.Fatalf("Failed to load jokes: %v", err)
	}
	log.Printf("Loaded %d jokes from source", len(jokes))

	jokeRepo := repository.NewJokeRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding jokes into database...")
	seeded, updated, err := seedJokes(ctx, jokeRepo, jokes)
	if err != nil {
		log.Fatalf("Failed to seed jokes: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New jokes created: %d", seeded)
	log.Printf("  - Existing jokes updated: %d", updated)
	log.Printf("  - Total jokes processed: %d", seeded+updated)
}

// loadJokes reads seed data from a local file or an http(s) URL.
func loadJokes(source string) ([]SeedJokeData, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from URL: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("source returned status code: %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		body, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	var jokes []SeedJokeData
	if err := json.Unmarshal(body, &jokes); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return jokes, nil
}

// seedJokes upserts jokes, creating new records or refreshing content of
// existing ones. Entries without an id are always created.
func seedJokes(ctx context.Context, repo repository.JokeRepository, jokes []SeedJokeData) (seeded int, updated int, err error) {
	for _, item := range jokes {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}

		if item.ID == "" {
			if err := repo.Create(ctx, &model.Joke{Content: item.Content}); err != nil {
				return seeded, updated, fmt.Errorf("error creating joke: %w", err)
			}
			seeded++
			continue
		}

		existing, err := repo.FindByID(ctx, item.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking joke %s: %w", item.ID, err)
		}

		if existing != nil {
			existing.Content = item.Content
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating joke %s: %w", item.ID, err)
			}
			updated++
		} else {
			if err := repo.Create(ctx, &model.Joke{ID: item.ID, Content: item.Content}); err != nil {
				return seeded, updated, fmt.Errorf("error creating joke %s: %w", item.ID, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}

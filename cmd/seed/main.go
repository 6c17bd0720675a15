// Package main provides a tool to seed the database with sample data.
//
// It creates a handful of users, books, and reviews so the API has
// something to serve during development.
//
// Usage:
//
//	DATA_PATH=~/Inkwell/data go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

var password = flag.String("password", "inkwell-dev", "Password for seeded users")

type seedUser struct {
	name  string
	email string
}

type seedBook struct {
	title       string
	author      string
	year        int
	genre       string
	description string
}

var users = []seedUser{
	{"Margaret Hale", "margaret@example.com"},
	{"John Thornton", "john@example.com"},
	{"Dorothea Brooke", "dorothea@example.com"},
}

var books = []seedBook{
	{"The Left Hand of Darkness", "Ursula K. Le Guin", 1969, "Science Fiction", "An envoy alone on a glacial world."},
	{"Middlemarch", "George Eliot", 1871, "Classic", "A study of provincial life."},
	{"The Remains of the Day", "Kazuo Ishiguro", 1989, "Literary Fiction", ""},
	{"Piranesi", "Susanna Clarke", 2020, "Fantasy", "The house is kind to those who live in it."},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", 1968, "Fantasy", ""},
	{"Beloved", "Toni Morrison", 1987, "Literary Fiction", ""},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Inkwell/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	created := make([]*domain.User, 0, len(users))
	for _, su := range users {
		user := &domain.User{
			Record:       domain.Record{ID: id.MustNew(id.PrefixUser)},
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
		}
		user.InitTimestamps()

		if err := s.CreateUser(ctx, user); err != nil {
			fmt.Printf("Skipping user %s: %v\n", su.email, err)
			continue
		}
		fmt.Printf("Created user %s (%s)\n", user.Name, user.Email)
		created = append(created, user)
	}

	if len(created) == 0 {
		log.Fatal("No users created. Is the database already seeded?")
	}

	seeded := make([]*domain.Book, 0, len(books))
	for i, sb := range books {
		owner := created[i%len(created)]
		book := &domain.Book{
			Record:      domain.Record{ID: id.MustNew(id.PrefixBook)},
			Title:       sb.title,
			Author:      sb.author,
			Year:        sb.year,
			Genre:       sb.genre,
			Description: sb.description,
			AddedBy:     owner.ID,
		}
		book.InitTimestamps()
		// Spread creation times so the listing order is stable.
		book.CreatedAt = book.CreatedAt.Add(-time.Duration(len(books)-i) * time.Minute)
		book.UpdatedAt = book.CreatedAt

		if err := s.CreateBook(ctx, book); err != nil {
			log.Fatalf("Failed to create book %q: %v", sb.title, err)
		}
		fmt.Printf("Created book %q by %s\n", book.Title, book.Author)
		seeded = append(seeded, book)
	}

	reviewsCreated := 0
	for _, book := range seeded {
		for _, user := range created {
			// Owners skip their own books, others review with ~70% chance.
			if book.AddedBy == user.ID || rng.Float32() > 0.7 {
				continue
			}

			review := &domain.Review{
				Record:     domain.Record{ID: id.MustNew(id.PrefixReview)},
				BookID:     book.ID,
				UserID:     user.ID,
				Rating:     1 + rng.Intn(5),
				ReviewText: sampleReviewText(rng),
			}
			review.InitTimestamps()

			if err := s.CreateReview(ctx, review); err != nil {
				fmt.Printf("Skipping review for %q by %s: %v\n", book.Title, user.Name, err)
				continue
			}
			reviewsCreated++
		}
	}

	fmt.Printf("\nSeeded %d users, %d books, %d reviews\n", len(created), len(seeded), reviewsCreated)
}

var reviewPhrases = []string{
	"Couldn't put it down.",
	"A slow start but worth the patience.",
	"Not for me, though the prose is lovely.",
	"Read it twice already.",
	"",
}

func sampleReviewText(rng *rand.Rand) string {
	return reviewPhrases[rng.Intn(len(reviewPhrases))]
}

// Package testutil spins up an in-process Redis (miniredis) and seeds
// fixtures for the voting tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/moviepulse/awards-voting-api/internal/models"
	"github.com/moviepulse/awards-voting-api/internal/store"
	"github.com/moviepulse/awards-voting-api/internal/utils"
)

// TestPassword is the plaintext behind every seeded user's hash.
const TestPassword = "correct-horse-battery"

// NewStore returns a Store backed by a fresh miniredis instance that is torn
// down with the test.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.New(rdb)
}

// SeedCategory creates a category with a voting window that is currently
// open, returning the category and its auto-created "Other" nominee.
func SeedCategory(t *testing.T, st *store.Store, industry, name string) (*models.Category, *models.Nominee) {
	t.Helper()

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(30 * 24 * time.Hour)
	cat, other, err := st.CreateCategory(context.Background(), industry, name, start, end, "seed")
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return cat, other
}

// SeedClosedCategory creates a category whose voting window already ended.
func SeedClosedCategory(t *testing.T, st *store.Store, industry, name string) (*models.Category, *models.Nominee) {
	t.Helper()

	start := time.Now().Add(-48 * time.Hour)
	end := time.Now().Add(-24 * time.Hour)
	cat, other, err := st.CreateCategory(context.Background(), industry, name, start, end, "seed")
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return cat, other
}

// SeedCelebrity adds a celebrity record to the display catalog.
func SeedCelebrity(t *testing.T, st *store.Store, name string) *models.Celebrity {
	t.Helper()

	cel, err := st.PutCelebrity(context.Background(), name, "https://img.example/"+name+".jpg")
	if err != nil {
		t.Fatalf("Failed to seed celebrity: %v", err)
	}
	return cel
}

// SeedMovie adds a movie record to the display catalog.
func SeedMovie(t *testing.T, st *store.Store, title string) *models.Movie {
	t.Helper()

	mov, err := st.PutMovie(context.Background(), title, "https://img.example/"+title+".jpg")
	if err != nil {
		t.Fatalf("Failed to seed movie: %v", err)
	}
	return mov
}

// SeedNominee creates a nominee backed by a fresh celebrity (and movie when
// movieTitle is non-empty).
func SeedNominee(t *testing.T, st *store.Store, categoryID, celebrityName, movieTitle string) *models.Nominee {
	t.Helper()

	cel := SeedCelebrity(t, st, celebrityName)
	movieID := ""
	if movieTitle != "" {
		movieID = SeedMovie(t, st, movieTitle).ID
	}
	nom, err := st.CreateNominee(context.Background(), categoryID, cel.ID, movieID)
	if err != nil {
		t.Fatalf("Failed to seed nominee: %v", err)
	}
	return nom
}

// SeedUser registers a user with TestPassword.
func SeedUser(t *testing.T, st *store.Store, username, role string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user, err := st.CreateUser(context.Background(), username, hash, role)
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/moview/internal/config"
	"github.com/tomtom215/moview/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO calls
// from many in-memory databases can hang under CI resource pressure, so the
// semaphore is held for the whole test, not just while opening.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func createTestUser(t *testing.T, db *DB, id, username string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$hash",
	}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return u
}

func fixedLabel(label string) SentimentFunc {
	return func(context.Context, string) (string, error) { return label, nil }
}

const (
	aliceID = "11111111-1111-1111-1111-111111111111"
	bobID   = "22222222-2222-2222-2222-222222222222"
)

func TestMigrations(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.GetCurrentSchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}

	// Re-running is a no-op.
	if err := db.runVersionedMigrations(); err != nil {
		t.Fatalf("second runVersionedMigrations() error = %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, aliceID, "alice")
	if alice.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	tests := []struct {
		name    string
		user    models.User
		wantErr error
	}{
		{"email taken", models.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h"}, ErrEmailTaken},
		{"username taken", models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"}, ErrUsernameTaken},
		{"generated id", models.User{Username: "carol", Email: "carol@example.com", PasswordHash: "h"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			err := db.CreateUser(ctx, &u)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && len(u.ID) != 36 {
				t.Errorf("generated ID = %q, want a UUID", u.ID)
			}
		})
	}

	got, err := db.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != aliceID || got.PasswordHash != "$2a$04$hash" {
		t.Errorf("GetUserByEmail() = %+v", got)
	}

	if _, err := db.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID(missing) error = %v, want ErrNotFound", err)
	}

	exists, err := db.UserExists(ctx, aliceID)
	if err != nil || !exists {
		t.Errorf("UserExists(alice) = %v, %v", exists, err)
	}
	exists, err = db.UserExists(ctx, bobID)
	if err != nil || exists {
		t.Errorf("UserExists(bob) = %v, %v", exists, err)
	}
}

func TestCreateReview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, aliceID, "alice")

	review, err := db.CreateReview(ctx, &models.NewReview{
		UserID:  aliceID,
		MovieID: 27205,
		Content: "An absolute masterpiece, loved every minute",
		Rating:  5.0,
	}, fixedLabel(models.SentimentPositive))
	if err != nil {
		t.Fatalf("CreateReview() error = %v", err)
	}

	if review.ID == "" || review.Sentiment == nil || *review.Sentiment != models.SentimentPositive {
		t.Errorf("CreateReview() = %+v", review)
	}
	if review.Username == nil || *review.Username != "alice" {
		t.Errorf("Username = %v, want alice", review.Username)
	}

	listed, err := db.ListReviewsByUser(ctx, aliceID)
	if err != nil {
		t.Fatalf("ListReviewsByUser() error = %v", err)
	}
	if len(listed) != 1 || listed[0].ID != review.ID || listed[0].Rating != 5.0 {
		t.Fatalf("ListReviewsByUser() = %+v", listed)
	}
	if *listed[0].Sentiment != models.SentimentPositive || *listed[0].Username != "alice" {
		t.Errorf("listed review = %+v", listed[0])
	}
}

func TestCreateReview_DuplicateWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, aliceID, "alice")

	in := &models.NewReview{UserID: aliceID, MovieID: 550, Content: "Great twist and great cast", Rating: 4.5}
	if _, err := db.CreateReview(ctx, in, fixedLabel(models.SentimentPositive)); err != nil {
		t.Fatalf("first CreateReview() error = %v", err)
	}

	labelled := false
	second := &models.NewReview{UserID: aliceID, MovieID: 550, Content: "Changed my mind, boring", Rating: 2.0}
	_, err := db.CreateReview(ctx, second, func(context.Context, string) (string, error) {
		labelled = true
		return models.SentimentNegative, nil
	})
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("second CreateReview() error = %v, want ErrDuplicateReview", err)
	}
	if labelled {
		t.Error("sentiment computed for a rejected duplicate")
	}

	n, err := db.CountReviews(ctx)
	if err != nil {
		t.Fatalf("CountReviews() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountReviews() = %d, want 1", n)
	}
	reviews, _ := db.ListReviewsByUser(ctx, aliceID)
	if len(reviews) != 1 || reviews[0].Rating != 4.5 {
		t.Errorf("stored reviews = %+v, want the original only", reviews)
	}
}

func TestCreateReview_UnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreateReview(context.Background(), &models.NewReview{
		UserID: bobID, MovieID: 1, Content: "Nobody wrote this", Rating: 3,
	}, nil)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("CreateReview() error = %v, want ErrUserNotFound", err)
	}
}

func TestCreateReview_SentimentFailureStoresNeutral(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, aliceID, "alice")

	labels := []struct {
		name  string
		label SentimentFunc
	}{
		{"error", func(context.Context, string) (string, error) { return "", errors.New("classifier down") }},
		{"panic", func(context.Context, string) (string, error) { panic("boom") }},
		{"unknown label", fixedLabel("ecstatic")},
		{"nil func", nil},
	}

	for i, tt := range labels {
		t.Run(tt.name, func(t *testing.T) {
			review, err := db.CreateReview(ctx, &models.NewReview{
				UserID: aliceID, MovieID: 100 + i, Content: "Some thoughts on this one", Rating: 3,
			}, tt.label)
			if err != nil {
				t.Fatalf("CreateReview() error = %v", err)
			}
			if *review.Sentiment != models.SentimentNeutral {
				t.Errorf("Sentiment = %q, want neutral", *review.Sentiment)
			}
		})
	}

	n, _ := db.CountReviews(ctx)
	if n != int64(len(labels)) {
		t.Errorf("CountReviews() = %d, want %d", n, len(labels))
	}
}

func TestCreateReview_RatingOutOfRangeRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, aliceID, "alice")

	_, err := db.CreateReview(ctx, &models.NewReview{
		UserID: aliceID, MovieID: 9, Content: "Bypassed request validation", Rating: 7,
	}, nil)
	if err == nil {
		t.Fatal("CreateReview() accepted rating 7")
	}
	if errors.Is(err, ErrDuplicateReview) || errors.Is(err, ErrUserNotFound) {
		t.Errorf("CreateReview() error = %v, want a constraint failure", err)
	}

	n, _ := db.CountReviews(ctx)
	if n != 0 {
		t.Errorf("CountReviews() = %d after failed insert, want 0", n)
	}
}

func TestListReviewsByMovieAndStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, aliceID, "alice")
	createTestUser(t, db, bobID, "bob")

	for _, in := range []models.NewReview{
		{UserID: aliceID, MovieID: 13, Content: "Run Forrest, run! Lovely.", Rating: 4.5},
		{UserID: bobID, MovieID: 13, Content: "Too sentimental for me.", Rating: 3.0},
		{UserID: bobID, MovieID: 14, Content: "Different movie entirely", Rating: 1.0},
	} {
		if _, err := db.CreateReview(ctx, &in, nil); err != nil {
			t.Fatalf("CreateReview() error = %v", err)
		}
	}

	reviews, err := db.ListReviewsByMovie(ctx, 13)
	if err != nil {
		t.Fatalf("ListReviewsByMovie() error = %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("ListReviewsByMovie() returned %d reviews, want 2", len(reviews))
	}
	names := map[string]bool{}
	for _, r := range reviews {
		names[*r.Username] = true
	}
	if !names["alice"] || !names["bob"] {
		t.Errorf("usernames = %v", names)
	}

	stats, err := db.MovieRatingStats(ctx, 13)
	if err != nil {
		t.Fatalf("MovieRatingStats() error = %v", err)
	}
	if stats.AverageRating != 3.8 || stats.TotalReviews != 2 {
		t.Errorf("MovieRatingStats(13) = %+v, want 3.8 over 2", stats)
	}

	empty, err := db.MovieRatingStats(ctx, 999)
	if err != nil {
		t.Fatalf("MovieRatingStats(999) error = %v", err)
	}
	if empty.AverageRating != 0 || empty.TotalReviews != 0 {
		t.Errorf("MovieRatingStats(999) = %+v, want zeros", empty)
	}

	none, err := db.ListReviewsByMovie(ctx, 999)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("ListReviewsByMovie(999) = %#v, %v; want empty non-nil", none, err)
	}
}

func TestSeedDemoUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := db.SeedDemoUser(ctx, "$2a$04$demo")
	if err != nil || !created {
		t.Fatalf("SeedDemoUser() = %v, %v; want created", created, err)
	}
	created, err = db.SeedDemoUser(ctx, "$2a$04$demo")
	if err != nil || created {
		t.Fatalf("second SeedDemoUser() = %v, %v; want no-op", created, err)
	}

	u, err := db.GetUserByID(ctx, models.DemoUserID)
	if err != nil {
		t.Fatalf("GetUserByID(demo) error = %v", err)
	}
	if u.Username != DemoUsername || u.Email != DemoEmail {
		t.Errorf("demo user = %+v", u)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New(`Constraint Error: Duplicate key "id: 1" violates primary key constraint`), true},
		{errors.New("violates unique constraint"), true},
		{errors.New("Catalog Error: Table with name x does not exist"), false},
	}
	for _, tt := range tests {
		if got := isUniqueViolation(tt.err); got != tt.want {
			name := "<nil>"
			if tt.err != nil {
				name = tt.err.Error()
			}
			t.Errorf("isUniqueViolation(%s) = %v, want %v", strings.TrimSpace(name), got, tt.want)
		}
	}
}

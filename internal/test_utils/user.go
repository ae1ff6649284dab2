package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InsertUser stores a driver account directly in the database and returns its id, so repository
// tests can satisfy the user foreign keys.
func InsertUser(t *testing.T, db *pgxpool.Pool, email string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO users (uid, email, name) VALUES ($1, $2, $3) RETURNING id",
		uuid.New(), email, "Test Driver",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	return id
}

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/migrations"
	"taskboard/internal/repository"
)

// openDB migrates the database named by DATABASE_URL and returns a pool.
// Tests create uniquely named rows and never truncate, so they can share a
// database with a running server.
func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	logger.Init("warn", false)

	if err := migrations.Up(dsn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func createPerson(t *testing.T, repo *repository.PersonRepository, name string) *domain.Person {
	t.Helper()
	p := &domain.Person{ID: uuid.NewString(), Name: name}
	if err := repo.Create(context.Background(), p, ""); err != nil {
		t.Fatalf("create person %s: %v", name, err)
	}
	return p
}

package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/database"
)

// domainTables lists every table the migrations create, children first.
var domainTables = []string{"photos", "reports", "hospitals", "users"}

type TestDB struct {
	Pool      *pgxpool.Pool
	Container testcontainers.Container
}

// SetupTestDB starts a PostGIS container and applies the migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgis/postgis:18-3.6-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgis container: %v", err)
	}
	db := &TestDB{Container: container}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		db.Cleanup(t)
		t.Fatalf("failed to get connection string: %v", err)
	}

	db.Pool, err = pgxpool.New(ctx, connString)
	if err != nil {
		db.Cleanup(t)
		t.Fatalf("failed to create pool: %v", err)
	}

	if err := database.RunMigrations(ctx, db.Pool, getMigrationsPath()); err != nil {
		db.Cleanup(t)
		t.Fatalf("failed to run migrations: %v", err)
	}
	if _, err := database.PostGISVersion(ctx, db.Pool); err != nil {
		db.Cleanup(t)
		t.Fatalf("postgis unavailable: %v", err)
	}

	return db
}

func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		if err := db.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// Truncate empties the given tables, or every domain table when none are
// named.
func (db *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		tables = domainTables
	}
	query := "TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE"
	if _, err := db.Pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("failed to truncate %v: %v", tables, err)
	}
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	repoDir := filepath.Dir(filename)
	return filepath.Join(repoDir, "..", "..", "..", "..", "migrations")
}

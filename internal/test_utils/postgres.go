package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/driverledger/driverledger/internal/config"
	"github.com/driverledger/driverledger/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const snapshotName = "driverledger-test-snapshot"

var (
	startOnce sync.Once
	container *postgres.PostgresContainer
	dbConfig  config.Database
	startErr  error
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	return postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase("driverledger"),
		postgres.WithUsername("test_driverledger"),
		postgres.WithPassword("test_driverledger"),
		postgres.BasicWaitStrategies(),
	)
}

// startDatabase runs one container per test binary, migrates it and snapshots the empty schema.
func startDatabase() {
	ctx := context.Background()

	container, startErr = preparePostgresContainer(ctx)
	if startErr != nil {
		return
	}

	host, err := container.Host(ctx)
	if err != nil {
		startErr = err
		return
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		startErr = err
		return
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	dbConfig = config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   "test_driverledger",
		Pass:   "test_driverledger",
		Name:   "driverledger",
		Schema: "driverledger",
	}

	if startErr = database.Migrate(dbConfig); startErr != nil {
		return
	}
	startErr = container.Snapshot(ctx, postgres.WithSnapshotName(snapshotName))
}

// SetupTestDB returns a pool connected to a freshly migrated, empty database. The database is
// restored to its post-migration snapshot when the test ends.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	startOnce.Do(startDatabase)
	if startErr != nil {
		t.Fatalf("failed to start postgres: %v", startErr)
	}

	ctx := context.Background()
	pool, err := database.Open(ctx, dbConfig)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := container.Restore(ctx, postgres.WithSnapshotName(snapshotName)); err != nil {
			t.Errorf("failed to restore database snapshot: %v", err)
		}
	})
	return pool
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

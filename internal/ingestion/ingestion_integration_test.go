//go:build integration
// +build integration

package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/guttosm/b3rank/internal/export"
	"github.com/guttosm/b3rank/internal/metadata"
	"github.com/guttosm/b3rank/internal/ranking"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "b3rank",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=b3rank sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "b3rank")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/ingestion → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRunner_EndToEnd_FileSource(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	dir := t.TempDir()
	input := filepath.Join(dir, "screener.csv")
	if err := os.WriteFile(input, []byte(screenerExport), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	now := func() time.Time { return runNow }
	merger := metadata.NewMerger(fakeMetadata{}, metadata.Cache{}, 2)
	p := ranking.NewPipeline(merger)
	p.Now = now

	jsonSink := export.NewJSONSink(dir)
	jsonSink.Now = now
	r := NewRunner(NewFileSource(input), p, db, jsonSink)
	r.Merger = merger
	r.CacheStore = metadata.NewFileStore(filepath.Join(dir, "ticker.json"))
	r.Now = now

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := r.Run(ctx, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Rows != 2 || res.RunID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	var cnt int
	if err := db.QueryRow("SELECT COUNT(*) FROM company_rankings WHERE run_id=$1", res.RunID).Scan(&cnt); err != nil {
		t.Fatalf("count rankings: %v", err)
	}
	if cnt != 2 {
		t.Fatalf("expected 2 rows, got %d", cnt)
	}
	if _, err := os.Stat(filepath.Join(dir, "json", "latest.json")); err != nil {
		t.Fatalf("latest.json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ticker.json")); err != nil {
		t.Fatalf("metadata cache: %v", err)
	}

	// Same business day again: skipped without force, replaced with force.
	again, err := r.Run(ctx, false)
	if err != nil || !again.Skipped {
		t.Fatalf("expected skip, got %+v err=%v", again, err)
	}
	forced, err := r.Run(ctx, true)
	if err != nil || forced.RunID == res.RunID {
		t.Fatalf("expected a new run, got %+v err=%v", forced, err)
	}
	var runs int
	if err := db.QueryRow("SELECT COUNT(*) FROM ranking_runs WHERE snapshot_date=$1", runDay).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected a single run for the day, got %d", runs)
	}
}

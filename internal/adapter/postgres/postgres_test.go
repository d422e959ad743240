package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"proteinflip/internal/domain"
)

// Runs against a real database when TEST_DATABASE_URL is set.
func TestLedgerRoundTrip(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(connStr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close() //nolint:errcheck
	ctx := context.Background()

	if _, err := db.sql.ExecContext(ctx, "TRUNCATE daily_totals; DELETE FROM settings WHERE key = 'goal';"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if err := db.SaveDay(ctx, "2024-01-05", 80); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if err := db.SaveDay(ctx, "2024-01-05", 30); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if err := db.SaveGoal(ctx, 130); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}

	l, err := db.LoadLedger(ctx)
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if l.Entries["2024-01-05"] != 30 || len(l.Entries) != 1 {
		t.Errorf("unexpected entries %v", l.Entries)
	}
	if l.Goal != 130 {
		t.Errorf("expected goal 130, got %d", l.Goal)
	}
}

func TestCheckVersion(t *testing.T) {
	d := &DB{version: domain.SchemaVersion + 1}
	if err := d.checkVersion(); !errors.Is(err, domain.ErrUnsupportedSchema) {
		t.Fatalf("expected ErrUnsupportedSchema, got %v", err)
	}
	if _, err := d.LoadLedger(context.Background()); !errors.Is(err, domain.ErrUnsupportedSchema) {
		t.Fatalf("expected ErrUnsupportedSchema, got %v", err)
	}
	d.version = domain.SchemaVersion
	if err := d.checkVersion(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpen_BadConnString(t *testing.T) {
	_, err := Open("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestLoadLedger_CorruptGoalKeepsDaily(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(connStr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close() //nolint:errcheck
	ctx := context.Background()

	if _, err := db.sql.ExecContext(ctx, "TRUNCATE daily_totals; DELETE FROM settings WHERE key = 'goal';"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := db.SaveDay(ctx, "2024-01-05", 80); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if _, err := db.sql.ExecContext(ctx, "INSERT INTO settings(key, value) VALUES('goal', 'lots');"); err != nil {
		t.Fatalf("corrupt goal: %v", err)
	}

	l, err := db.LoadLedger(ctx)
	if !errors.Is(err, domain.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if l.Goal != 0 {
		t.Errorf("expected goal 0, got %d", l.Goal)
	}
	if l.Entries["2024-01-05"] != 80 {
		t.Errorf("daily totals lost: %v", l.Entries)
	}
}

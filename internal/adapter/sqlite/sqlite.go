// Package sqlite stores the ledger in a local SQLite file using a small
// key-value table:
//
//	schema_version  integer, currently 1
//	goal            integer
//	daily           JSON object of day key to amount
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"proteinflip/internal/domain"
)

const (
	keySchemaVersion = "schema_version"
	keyGoal          = "goal"
	keyDaily         = "daily"
)

// DB wraps a *sql.DB and implements domain.LedgerRepository.
type DB struct {
	sql     *sql.DB
	path    string
	version int
}

var _ domain.LedgerRepository = (*DB)(nil)

// Open opens or creates the database at path and runs migrations. Failures
// wrap domain.ErrStorageUnavailable.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, unavailable("create directory", err)
		}
	}

	s, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, unavailable("open", err)
	}
	// One writer; every mutation is a single small transaction.
	s.SetMaxOpenConns(1)

	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, unavailable("ping", err)
	}

	d := &DB{sql: s, path: path}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) migrate(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);"); err != nil {
		return unavailable("migrate", err)
	}

	raw, ok, err := d.get(ctx, d.sql, keySchemaVersion)
	if err != nil {
		return unavailable("migrate: read schema version", err)
	}
	if !ok {
		if err := d.put(ctx, d.sql, keySchemaVersion, strconv.Itoa(domain.SchemaVersion)); err != nil {
			return unavailable("migrate: write schema version", err)
		}
		d.version = domain.SchemaVersion
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// An unreadable version marker is rewritten; the data keys are
		// validated on load.
		v = domain.SchemaVersion
		if err := d.put(ctx, d.sql, keySchemaVersion, strconv.Itoa(v)); err != nil {
			return unavailable("migrate: write schema version", err)
		}
	}
	d.version = v
	return nil
}

// SchemaVersion returns the version recorded in the database.
func (d *DB) SchemaVersion() int {
	return d.version
}

func (d *DB) checkVersion() error {
	if d.version > domain.SchemaVersion {
		return fmt.Errorf("%w: database has %d, this build supports %d",
			domain.ErrUnsupportedSchema, d.version, domain.SchemaVersion)
	}
	return nil
}

// LoadLedger reads the goal and daily totals.
func (d *DB) LoadLedger(ctx context.Context) (domain.Ledger, error) {
	if err := d.checkVersion(); err != nil {
		return domain.Ledger{}, err
	}
	l := domain.NewLedger()
	var corrupt []error

	goal, ok, err := d.get(ctx, d.sql, keyGoal)
	if err != nil {
		return domain.Ledger{}, unavailable("load goal", err)
	}
	if ok {
		g, err := strconv.Atoi(goal)
		if err != nil || g < 0 {
			corrupt = append(corrupt, fmt.Errorf("%w: goal %q", domain.ErrCorruptState, goal))
		} else {
			l.Goal = g
		}
	}

	raw, ok, err := d.get(ctx, d.sql, keyDaily)
	if err != nil {
		return domain.Ledger{}, unavailable("load daily", err)
	}
	if ok {
		entries, err := decodeDaily(raw)
		if err != nil {
			corrupt = append(corrupt, err)
		} else {
			l.Entries = entries
		}
	}
	// Each key is read on its own; the readable ones are returned alongside
	// the error.
	return l, errors.Join(corrupt...)
}

// SaveDay rewrites the daily mapping with day set to amount.
func (d *DB) SaveDay(ctx context.Context, day string, amount int) error {
	if err := d.checkVersion(); err != nil {
		return err
	}
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("save day: begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	entries := make(map[string]int)
	raw, ok, err := d.get(ctx, tx, keyDaily)
	if err != nil {
		return unavailable("save day: read", err)
	}
	if ok {
		// Unreadable data is replaced, matching how it is treated on load.
		if decoded, err := decodeDaily(raw); err == nil {
			entries = decoded
		}
	}
	entries[day] = amount

	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("save day: encode: %w", err)
	}
	if err := d.put(ctx, tx, keyDaily, string(b)); err != nil {
		return unavailable("save day: write", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("save day: commit", err)
	}
	return nil
}

// SaveGoal stores the goal.
func (d *DB) SaveGoal(ctx context.Context, goal int) error {
	if err := d.checkVersion(); err != nil {
		return err
	}
	if err := d.put(ctx, d.sql, keyGoal, strconv.Itoa(goal)); err != nil {
		return unavailable("save goal", err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (d *DB) get(ctx context.Context, q querier, key string) (string, bool, error) {
	var v string
	err := q.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?;", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (d *DB) put(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;",
		key, value)
	return err
}

// decodeDaily parses the daily mapping, dropping keys that are not valid days
// and clamping negative amounts to zero.
func decodeDaily(raw string) (map[string]int, error) {
	var decoded map[string]int
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: daily: %v", domain.ErrCorruptState, err)
	}
	entries := make(map[string]int, len(decoded))
	for day, amount := range decoded {
		if _, err := domain.ParseDay(day); err != nil {
			continue
		}
		entries[day] = max(0, amount)
	}
	return entries, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

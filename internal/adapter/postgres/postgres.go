// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"

	"proteinflip/internal/domain"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql     *sql.DB
	version int
}

var _ domain.LedgerRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, unavailable("open", err)
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, unavailable("ping", err)
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS daily_totals (day TEXT PRIMARY KEY, amount BIGINT NOT NULL CHECK(amount >= 0), updated_at TIMESTAMPTZ NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return unavailable("migrate", err)
		}
	}

	// Record the schema version once; later builds compare against it.
	if _, err := d.sql.ExecContext(ctx,
		"INSERT INTO settings(key, value) VALUES('schema_version', $1) ON CONFLICT (key) DO NOTHING;",
		strconv.Itoa(domain.SchemaVersion)); err != nil {
		return unavailable("migrate: schema version", err)
	}
	var raw string
	if err := d.sql.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'schema_version';").Scan(&raw); err != nil {
		return unavailable("migrate: read schema version", err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: schema_version %q", domain.ErrCorruptState, raw)
	}
	d.version = v
	return nil
}

func (d *DB) checkVersion() error {
	if d.version > domain.SchemaVersion {
		return fmt.Errorf("%w: database has %d, this build supports %d",
			domain.ErrUnsupportedSchema, d.version, domain.SchemaVersion)
	}
	return nil
}

// LoadLedger reads the goal and all daily totals.
func (d *DB) LoadLedger(ctx context.Context) (domain.Ledger, error) {
	if err := d.checkVersion(); err != nil {
		return domain.Ledger{}, err
	}
	l := domain.NewLedger()
	var corrupt error

	var goal string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'goal';").Scan(&goal)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return domain.Ledger{}, unavailable("load goal", err)
	default:
		g, err := strconv.Atoi(goal)
		if err != nil || g < 0 {
			// Daily totals are still loaded and returned with the error.
			corrupt = fmt.Errorf("%w: goal %q", domain.ErrCorruptState, goal)
		} else {
			l.Goal = g
		}
	}

	rows, err := d.sql.QueryContext(ctx, "SELECT day, amount FROM daily_totals ORDER BY day;")
	if err != nil {
		return domain.Ledger{}, unavailable("load daily", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var day string
		var amount int
		if err := rows.Scan(&day, &amount); err != nil {
			return domain.Ledger{}, unavailable("load daily", err)
		}
		l.Entries[day] = amount
	}
	if err := rows.Err(); err != nil {
		return domain.Ledger{}, unavailable("load daily", err)
	}
	return l, corrupt
}

// SaveDay upserts the total for a day.
func (d *DB) SaveDay(ctx context.Context, day string, amount int) error {
	if err := d.checkVersion(); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO daily_totals(day, amount, updated_at) VALUES($1, $2, $3) ON CONFLICT (day) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at;",
		day, amount, time.Now().UTC(),
	)
	if err != nil {
		return unavailable("save day", err)
	}
	return nil
}

// SaveGoal upserts the goal setting.
func (d *DB) SaveGoal(ctx context.Context, goal int) error {
	if err := d.checkVersion(); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO settings(key, value) VALUES('goal', $1) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;",
		strconv.Itoa(goal),
	)
	if err != nil {
		return unavailable("save goal", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proteinflip/internal/adapter/sqlite"
	"proteinflip/internal/app"
	"proteinflip/internal/domain"
)

func openTemp(t *testing.T) (*sqlite.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

// rawExec writes directly to the kv table to simulate other writers.
func rawExec(t *testing.T, path, query string, args ...any) {
	t.Helper()
	s, err := sql.Open("sqlite", "file:"+path)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck
	_, err = s.Exec(query, args...)
	require.NoError(t, err)
}

func TestOpen_FreshDatabase(t *testing.T) {
	db, _ := openTemp(t)
	ctx := context.Background()

	assert.Equal(t, domain.SchemaVersion, db.SchemaVersion())
	l, err := db.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, l.Entries)
	assert.NotNil(t, l.Entries)
	assert.Zero(t, l.Goal)
}

func TestSaveAndReload(t *testing.T) {
	db, path := openTemp(t)
	ctx := context.Background()

	require.NoError(t, db.SaveDay(ctx, "2024-01-05", 80))
	require.NoError(t, db.SaveDay(ctx, "2024-01-06", 40))
	require.NoError(t, db.SaveDay(ctx, "2024-01-06", 70))
	require.NoError(t, db.SaveGoal(ctx, 130))
	require.NoError(t, db.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck

	l, err := reopened.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-01-05": 80, "2024-01-06": 70}, l.Entries)
	assert.Equal(t, 130, l.Goal)
}

func TestLoad_CorruptDaily(t *testing.T) {
	db, path := openTemp(t)
	ctx := context.Background()
	require.NoError(t, db.SaveGoal(ctx, 120))
	rawExec(t, path, "INSERT INTO kv(key, value) VALUES('daily', '{not json');")

	l, err := db.LoadLedger(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptState)
	assert.Empty(t, l.Entries)
	assert.Equal(t, 120, l.Goal, "the goal is still readable")

	// A write replaces the unreadable blob.
	require.NoError(t, db.SaveDay(ctx, "2024-01-06", 10))
	l, err = db.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-01-06": 10}, l.Entries)
}

func TestLoad_SkipsInvalidKeys(t *testing.T) {
	db, path := openTemp(t)
	rawExec(t, path, "INSERT INTO kv(key, value) VALUES('daily', ?);",
		`{"2024-01-05": 80, "yesterday": 5, "2024-01-06": -3}`)

	l, err := db.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-01-05": 80, "2024-01-06": 0}, l.Entries)
}

func TestLoad_CorruptGoal(t *testing.T) {
	db, path := openTemp(t)
	ctx := context.Background()
	require.NoError(t, db.SaveDay(ctx, "2024-01-05", 80))
	rawExec(t, path, "INSERT INTO kv(key, value) VALUES('goal', 'lots');")

	l, err := db.LoadLedger(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptState)
	assert.Zero(t, l.Goal)
	assert.Equal(t, map[string]int{"2024-01-05": 80}, l.Entries, "daily totals are still readable")

	store := app.NewLedgerStore(ctx, db, app.WithClock(func() time.Time {
		return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	}))
	snap := store.Snapshot()
	assert.False(t, snap.Degraded)
	assert.Equal(t, 80, snap.Total)
	assert.Zero(t, snap.Goal)
	v, ok := store.Amount("2024-01-05")
	assert.True(t, ok)
	assert.Equal(t, 80, v)
}

func TestNewerSchemaIsNotTouched(t *testing.T) {
	db, path := openTemp(t)
	ctx := context.Background()
	require.NoError(t, db.SaveGoal(ctx, 100))
	require.NoError(t, db.Close())
	rawExec(t, path, "UPDATE kv SET value = '99' WHERE key = 'schema_version';")

	future, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer future.Close() //nolint:errcheck

	_, err = future.LoadLedger(ctx)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSchema)
	assert.ErrorIs(t, future.SaveGoal(ctx, 5), domain.ErrUnsupportedSchema)
	assert.ErrorIs(t, future.SaveDay(ctx, "2024-01-01", 5), domain.ErrUnsupportedSchema)
}

func TestOpen_Unavailable(t *testing.T) {
	// A directory cannot be opened as a database file.
	dir := t.TempDir()
	_, err := sqlite.Open(context.Background(), dir)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

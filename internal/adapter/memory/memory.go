// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"

	"proteinflip/internal/domain"
)

// DB implements an in-memory ledger storage.
type DB struct {
	mu      sync.Mutex
	entries map[string]int
	goal    int

	writes int
}

// New creates a new, empty in-memory database.
func New() *DB {
	return &DB{entries: make(map[string]int)}
}

// NewWithLedger creates an in-memory database pre-populated with l.
func NewWithLedger(l domain.Ledger) *DB {
	db := New()
	for day, amount := range l.Entries {
		db.entries[day] = amount
	}
	db.goal = l.Goal
	return db
}

// Ensure interfaces are met.
var _ domain.LedgerRepository = (*DB)(nil)

// LoadLedger returns a copy of the stored ledger.
func (db *DB) LoadLedger(ctx context.Context) (domain.Ledger, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	l := domain.NewLedger()
	for day, amount := range db.entries {
		l.Entries[day] = amount
	}
	l.Goal = db.goal
	return l, nil
}

// SaveDay stores the total for a day.
func (db *DB) SaveDay(ctx context.Context, day string, amount int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries[day] = amount
	db.writes++
	return nil
}

// SaveGoal stores the goal.
func (db *DB) SaveGoal(ctx context.Context, goal int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goal = goal
	db.writes++
	return nil
}

// Writes returns how many saves have been made, for tests asserting
// write-through behaviour.
func (db *DB) Writes() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.writes
}

// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DayLayout is the layout of a day key.
const DayLayout = "2006-01-02"

var (
	// ErrStorageUnavailable indicates that the backing store could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrCorruptState indicates that persisted ledger data could not be decoded.
	ErrCorruptState = errors.New("corrupt ledger state")
	// ErrUnsupportedSchema indicates persisted data written by a newer schema version.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
	// ErrNegativeAmount indicates an amount or goal below zero.
	ErrNegativeAmount = errors.New("amount must be >= 0")
	// ErrInvalidDay indicates a malformed day key.
	ErrInvalidDay = errors.New("day must be formatted YYYY-MM-DD")
)

// SchemaVersion is the persisted ledger layout version written by this build.
const SchemaVersion = 1

// Ledger is the persisted state: per-day totals keyed by day and the daily goal.
type Ledger struct {
	Entries map[string]int `json:"entries"`
	Goal    int            `json:"goal"`
}

// NewLedger returns an empty ledger with no goal configured.
func NewLedger() Ledger {
	return Ledger{Entries: make(map[string]int)}
}

// DayEntry is a single day's total.
type DayEntry struct {
	Day    string `json:"day"`
	Amount int    `json:"amount"`
}

// LedgerRepository is the port for ledger persistence.
//
// LoadLedger returns an empty ledger, not an error, when nothing has been
// stored yet. When only part of the stored state is unreadable it returns the
// readable part together with an error wrapping ErrCorruptState.
type LedgerRepository interface {
	LoadLedger(ctx context.Context) (Ledger, error)
	SaveDay(ctx context.Context, day string, amount int) error
	SaveGoal(ctx context.Context, goal int) error
}

// DayKey returns the day key of t in the reference timezone (UTC).
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay parses a day key into midnight UTC of that day.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	return t, nil
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

package memory

import (
	"context"
	"fmt"

	"proteinflip/internal/domain"
)

// Unavailable is a repository that fails every call with cause. It stands in
// for a store that could not be opened, so the ledger runs in memory for the
// session and reports itself degraded.
type Unavailable struct {
	cause error
}

// NewUnavailable returns an Unavailable repository for cause.
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{cause: cause}
}

var _ domain.LedgerRepository = (*Unavailable)(nil)

func (u *Unavailable) err() error {
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, u.cause)
}

// LoadLedger always fails.
func (u *Unavailable) LoadLedger(context.Context) (domain.Ledger, error) {
	return domain.Ledger{}, u.err()
}

// SaveDay always fails.
func (u *Unavailable) SaveDay(context.Context, string, int) error {
	return u.err()
}

// SaveGoal always fails.
func (u *Unavailable) SaveGoal(context.Context, int) error {
	return u.err()
}

// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"proteinflip/internal/domain"
)

// Clock returns the current time. It is injected so tests can move across
// day boundaries.
type Clock func() time.Time

// Snapshot is a read-only view of the ledger for presentation layers.
type Snapshot struct {
	Today    string          `json:"today"`
	Total    int             `json:"total"`
	Goal     int             `json:"goal"`
	Progress domain.Progress `json:"progress"`
	// Degraded is set once persistence has failed; changes are kept in
	// memory for the rest of the session.
	Degraded bool `json:"degraded"`
}

// Option configures a LedgerStore.
type Option func(*LedgerStore)

// WithClock overrides the wall clock used to derive today's day key.
func WithClock(c Clock) Option {
	return func(s *LedgerStore) { s.clock = c }
}

// WithLogger sets the logger used to report storage problems.
func WithLogger(l *zap.Logger) Option {
	return func(s *LedgerStore) { s.log = l }
}

type addition struct {
	day    string
	amount int
}

// LedgerStore owns the day→amount ledger and the goal. It is the single
// source of truth for presentation layers, and writes through to the
// repository synchronously after every mutation.
type LedgerStore struct {
	repo  domain.LedgerRepository
	clock Clock
	log   *zap.Logger

	mu       sync.Mutex
	entries  map[string]int
	goal     int
	day      string // day key the cached total belongs to
	total    int
	last     *addition
	degraded bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewLedgerStore loads persisted state from repo. Missing state starts an
// empty ledger; unreadable parts of the state are discarded while readable
// ones are kept; an unreachable repository leaves the store running in
// memory only.
func NewLedgerStore(ctx context.Context, repo domain.LedgerRepository, opts ...Option) *LedgerStore {
	s := &LedgerStore{
		repo:    repo,
		clock:   time.Now,
		log:     zap.NewNop(),
		entries: make(map[string]int),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}

	ledger, err := repo.LoadLedger(context.WithoutCancel(ctx))
	switch {
	case err == nil:
		for day, amount := range ledger.Entries {
			s.entries[day] = amount
		}
		s.goal = ledger.Goal
	case errors.Is(err, domain.ErrCorruptState):
		// Whatever the repository could still read is kept.
		for day, amount := range ledger.Entries {
			s.entries[day] = amount
		}
		s.goal = ledger.Goal
		s.log.Warn("discarding unreadable ledger state", zap.Error(err))
	default:
		s.degraded = true
		s.log.Error("ledger storage unavailable, continuing in memory", zap.Error(err))
	}

	s.day = s.today()
	s.total = s.entries[s.day]
	s.log.Debug("ledger loaded",
		zap.Int("days", len(s.entries)),
		zap.Int("goal", s.goal),
		zap.String("today", s.day),
		zap.Int("total", s.total))
	return s
}

// Today returns the day key for the current moment.
func (s *LedgerStore) Today() string {
	return s.today()
}

func (s *LedgerStore) today() string {
	return domain.DayKey(s.clock())
}

// RolloverIfNeeded makes sure today's entry exists and that the cached total
// reflects it. It is idempotent and must run whenever the app becomes active.
func (s *LedgerStore) RolloverIfNeeded(ctx context.Context) Snapshot {
	s.mu.Lock()
	changed := s.rolloverLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return snap
}

// rolloverLocked reports whether visible state changed.
func (s *LedgerStore) rolloverLocked(ctx context.Context) bool {
	today := s.today()
	prevDay, prevTotal := s.day, s.total
	if s.last != nil && s.last.day != today {
		s.last = nil
	}
	s.day = today

	if stored, ok := s.entries[today]; ok {
		s.total = stored
		return prevDay != today || prevTotal != stored
	}
	s.entries[today] = 0
	s.total = 0
	s.persistDayLocked(ctx, today, 0)
	return true
}

// Add rolls over if needed, adds amount to today's total and returns the new
// total.
func (s *LedgerStore) Add(ctx context.Context, amount int) (int, error) {
	snap, err := s.AddSnapshot(ctx, amount)
	return snap.Total, err
}

// AddSnapshot is Add returning the snapshot taken together with the
// mutation, so concurrent callers each see the state their own addition
// produced.
func (s *LedgerStore) AddSnapshot(ctx context.Context, amount int) (Snapshot, error) {
	if amount < 0 {
		return Snapshot{}, domain.ErrNegativeAmount
	}

	s.mu.Lock()
	s.rolloverLocked(ctx)
	s.total += amount
	s.entries[s.day] = s.total
	s.persistDayLocked(ctx, s.day, s.total)
	s.last = &addition{day: s.day, amount: amount}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return snap, nil
}

// Set overwrites the total for day. Setting today also replaces the cached
// total.
func (s *LedgerStore) Set(ctx context.Context, day string, amount int) error {
	if amount < 0 {
		return domain.ErrNegativeAmount
	}
	if _, err := domain.ParseDay(day); err != nil {
		return err
	}

	s.mu.Lock()
	s.setLocked(ctx, day, amount)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *LedgerStore) setLocked(ctx context.Context, day string, amount int) {
	s.entries[day] = amount
	s.persistDayLocked(ctx, day, amount)
	if day == s.today() {
		s.day = day
		s.total = amount
		// An overwrite of today supersedes the last addition.
		s.last = nil
	}
}

// UndoLast removes the most recent addition made today, clamping the total at
// zero. It reports whether anything was undone along with today's total.
func (s *LedgerStore) UndoLast(ctx context.Context) (bool, int) {
	s.mu.Lock()
	s.rolloverLocked(ctx)
	if s.last == nil {
		total := s.total
		s.mu.Unlock()
		return false, total
	}
	newTotal := max(0, s.total-s.last.amount)
	s.setLocked(ctx, s.day, newTotal)
	s.last = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, newTotal
}

// SetGoal replaces the daily goal. Zero clears it.
func (s *LedgerStore) SetGoal(ctx context.Context, goal int) error {
	if goal < 0 {
		return domain.ErrNegativeAmount
	}

	s.mu.Lock()
	s.goal = goal
	if !s.degraded {
		if err := s.repo.SaveGoal(context.WithoutCancel(ctx), goal); err != nil {
			s.markDegradedLocked("save goal", err)
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// MonthData returns every day of the month containing referenceDay in
// ascending order, with zero for days that have no entry.
func (s *LedgerStore) MonthData(referenceDay string) ([]domain.DayEntry, error) {
	ref, err := domain.ParseDay(referenceDay)
	if err != nil {
		return nil, err
	}
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	n := domain.DaysInMonth(first)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DayEntry, 0, n)
	for i := 0; i < n; i++ {
		day := first.AddDate(0, 0, i).Format(domain.DayLayout)
		out = append(out, domain.DayEntry{Day: day, Amount: s.entries[day]})
	}
	return out, nil
}

// Amount returns the stored total for day and whether it has been
// materialized.
func (s *LedgerStore) Amount(day string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[day]
	return v, ok
}

// Entries returns a copy of all materialized days, ascending.
func (s *LedgerStore) Entries() []domain.DayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DayEntry, 0, len(s.entries))
	for day, amount := range s.entries {
		out = append(out, domain.DayEntry{Day: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Goal returns the configured goal.
func (s *LedgerStore) Goal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goal
}

// Total returns the cached total for the current day.
func (s *LedgerStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Snapshot returns the current view of the ledger.
func (s *LedgerStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *LedgerStore) snapshotLocked() Snapshot {
	return Snapshot{
		Today:    s.day,
		Total:    s.total,
		Goal:     s.goal,
		Progress: domain.ProgressOf(s.total, s.goal),
		Degraded: s.degraded,
	}
}

// Subscribe registers fn to receive a snapshot after every change. Callbacks
// run on the mutating goroutine after the store lock is released. The
// returned func removes the subscription.
func (s *LedgerStore) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *LedgerStore) notify(snap Snapshot) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// persistDayLocked writes through to the repository. The write ignores
// cancellation of ctx: only a failing repository degrades the store.
func (s *LedgerStore) persistDayLocked(ctx context.Context, day string, amount int) {
	if s.degraded {
		return
	}
	if err := s.repo.SaveDay(context.WithoutCancel(ctx), day, amount); err != nil {
		s.markDegradedLocked("save day", err)
	}
}

func (s *LedgerStore) markDegradedLocked(op string, err error) {
	s.degraded = true
	s.log.Error("ledger storage unavailable, continuing in memory",
		zap.String("op", op),
		zap.Error(err))
}

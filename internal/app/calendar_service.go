package app

import (
	"time"

	"proteinflip/internal/domain"
)

// CalendarService builds month grids for the history view.
type CalendarService struct {
	ledger *LedgerStore
}

// NewCalendarService creates a CalendarService reading from the given ledger.
func NewCalendarService(ledger *LedgerStore) *CalendarService {
	return &CalendarService{ledger: ledger}
}

// CalendarDay is a single cell of a month grid.
type CalendarDay struct {
	Day        string        `json:"day"`
	DayOfMonth int           `json:"dayOfMonth"`
	Amount     int           `json:"amount"`
	Status     domain.Status `json:"status"`
	IsToday    bool          `json:"isToday"`
}

// CalendarMonth is a Monday-first month grid. LeadingBlanks is the number of
// empty cells before the first day.
type CalendarMonth struct {
	Title         string        `json:"title"`
	Month         string        `json:"month"`
	Goal          int           `json:"goal"`
	LeadingBlanks int           `json:"leadingBlanks"`
	Days          []CalendarDay `json:"days"`
	Prev          string        `json:"prev"`
	Next          string        `json:"next"`
}

// Month returns the grid for the month containing ref. Every cell is
// classified against the current goal.
func (s *CalendarService) Month(ref string) (CalendarMonth, error) {
	entries, err := s.ledger.MonthData(ref)
	if err != nil {
		return CalendarMonth{}, err
	}
	refDay, _ := domain.ParseDay(ref)
	first := time.Date(refDay.Year(), refDay.Month(), 1, 0, 0, 0, 0, time.UTC)

	goal := s.ledger.Goal()
	today := s.ledger.Today()

	m := CalendarMonth{
		Title:         first.Format("January 2006"),
		Month:         first.Format("2006-01"),
		Goal:          goal,
		LeadingBlanks: MondayOffset(first.Weekday()),
		Days:          make([]CalendarDay, 0, len(entries)),
		Prev:          first.AddDate(0, -1, 0).Format(domain.DayLayout),
		Next:          first.AddDate(0, 1, 0).Format(domain.DayLayout),
	}
	for i, e := range entries {
		m.Days = append(m.Days, CalendarDay{
			Day:        e.Day,
			DayOfMonth: i + 1,
			Amount:     e.Amount,
			Status:     domain.Classify(e.Amount, goal),
			IsToday:    e.Day == today,
		})
	}
	return m, nil
}

// MondayOffset returns the column of wd in a week that starts on Monday.
func MondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

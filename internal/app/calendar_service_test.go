package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proteinflip/internal/app"
	"proteinflip/internal/domain"
)

func TestCalendarMonth(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t, "2024-01-06")
	require.NoError(t, s.SetGoal(ctx, 100))
	require.NoError(t, s.Set(ctx, "2024-01-05", 80))
	require.NoError(t, s.Set(ctx, "2024-01-04", 100))
	require.NoError(t, s.Set(ctx, "2024-01-03", 59))
	_, err := s.Add(ctx, 60)
	require.NoError(t, err)

	m, err := app.NewCalendarService(s).Month("2024-01-20")
	require.NoError(t, err)

	assert.Equal(t, "January 2024", m.Title)
	assert.Equal(t, "2024-01", m.Month)
	assert.Equal(t, 0, m.LeadingBlanks, "1 January 2024 is a Monday")
	assert.Equal(t, "2023-12-01", m.Prev)
	assert.Equal(t, "2024-02-01", m.Next)
	require.Len(t, m.Days, 31)

	want := []app.CalendarDay{
		{Day: "2024-01-02", DayOfMonth: 2, Amount: 0, Status: domain.StatusLow},
		{Day: "2024-01-03", DayOfMonth: 3, Amount: 59, Status: domain.StatusLow},
		{Day: "2024-01-04", DayOfMonth: 4, Amount: 100, Status: domain.StatusHit},
		{Day: "2024-01-05", DayOfMonth: 5, Amount: 80, Status: domain.StatusNear},
		{Day: "2024-01-06", DayOfMonth: 6, Amount: 60, Status: domain.StatusNear, IsToday: true},
	}
	if diff := cmp.Diff(want, m.Days[1:6]); diff != "" {
		t.Errorf("calendar cells mismatch (-want +got):\n%s", diff)
	}
}

func TestCalendarMonth_CellsMatchLiveProgress(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t, "2024-01-06")
	require.NoError(t, s.SetGoal(ctx, 130))
	_, err := s.Add(ctx, 100)
	require.NoError(t, err)

	m, err := app.NewCalendarService(s).Month(s.Today())
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot().Progress.Status, m.Days[5].Status)
}

func TestCalendarMonth_NoGoal(t *testing.T) {
	s, _, _ := newStore(t, "2024-02-10")
	m, err := app.NewCalendarService(s).Month("2024-02-10")
	require.NoError(t, err)

	assert.Equal(t, 3, m.LeadingBlanks, "1 February 2024 is a Thursday")
	assert.Len(t, m.Days, 29)
	for _, d := range m.Days {
		assert.Equal(t, domain.StatusUnset, d.Status)
	}
}

func TestCalendarMonth_InvalidRef(t *testing.T) {
	s, _, _ := newStore(t, "2024-02-10")
	_, err := app.NewCalendarService(s).Month("2024-02")
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestMondayOffset(t *testing.T) {
	assert.Equal(t, 0, app.MondayOffset(time.Monday))
	assert.Equal(t, 5, app.MondayOffset(time.Saturday))
	assert.Equal(t, 6, app.MondayOffset(time.Sunday))
}

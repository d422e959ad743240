package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proteinflip/internal/app"
	"proteinflip/internal/domain"
)

func TestGoalService_ApplySuggested(t *testing.T) {
	s, db, _ := newStore(t, "2024-01-06")
	svc := app.NewGoalService(s)

	goal, err := svc.ApplySuggested(context.Background(), 80, "kg")
	require.NoError(t, err)
	assert.Equal(t, 136, goal)
	assert.Equal(t, 136, s.Goal())

	persisted, _ := db.LoadLedger(context.Background())
	assert.Equal(t, 136, persisted.Goal)
}

func TestGoalService_BadUnitLeavesGoal(t *testing.T) {
	s, _, _ := newStore(t, "2024-01-06")
	require.NoError(t, s.SetGoal(context.Background(), 120))
	svc := app.NewGoalService(s)

	_, err := svc.ApplySuggested(context.Background(), 80, "stones")
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	assert.Equal(t, 120, s.Goal())

	got, err := svc.Suggest(176, "lb")
	require.NoError(t, err)
	assert.Equal(t, 136, got)
	assert.Equal(t, 120, s.Goal(), "Suggest does not apply")
}

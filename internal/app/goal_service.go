package app

import (
	"context"

	"proteinflip/internal/domain"
)

// GoalService encapsulates goal-setting use cases.
type GoalService struct {
	ledger *LedgerStore
}

// NewGoalService creates a GoalService backed by the given ledger.
func NewGoalService(ledger *LedgerStore) *GoalService {
	return &GoalService{ledger: ledger}
}

// Suggest returns the goal the weight helper would set, without applying it.
func (s *GoalService) Suggest(weight float64, unit string) (int, error) {
	return domain.SuggestGoal(weight, unit)
}

// ApplySuggested computes a goal from body weight and stores it, returning
// the new goal.
func (s *GoalService) ApplySuggested(ctx context.Context, weight float64, unit string) (int, error) {
	goal, err := domain.SuggestGoal(weight, unit)
	if err != nil {
		return 0, err
	}
	if err := s.ledger.SetGoal(ctx, goal); err != nil {
		return 0, err
	}
	return goal, nil
}

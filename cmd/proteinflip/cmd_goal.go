package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"proteinflip/internal/domain"
)

func (c *cli) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal [GRAMS]",
		Short: "Show or set the daily goal (0 clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.services(cmd.Context())
			defer svc.close()

			if len(args) == 1 {
				goal, err := parseGrams(args[0])
				if err != nil {
					return err
				}
				if err := svc.ledger.SetGoal(cmd.Context(), goal); err != nil {
					return err
				}
			}
			if goal := svc.ledger.Goal(); goal > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal: %d g\n", goal)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No goal set")
			}
			warnDegraded(svc.ledger.Snapshot(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.AddCommand(c.goalSuggestCmd())
	return cmd
}

func (c *cli) goalSuggestCmd() *cobra.Command {
	var (
		weight float64
		unit   string
		apply  bool
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: fmt.Sprintf("Suggest a goal of %.1f g per kg of body weight", domain.GramsPerKg),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.services(cmd.Context())
			defer svc.close()

			var (
				goal int
				err  error
			)
			if apply {
				goal, err = svc.goals.ApplySuggested(cmd.Context(), weight, unit)
			} else {
				goal, err = svc.goals.Suggest(weight, unit)
			}
			if err != nil {
				return err
			}
			if apply {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal set to %d g\n", goal)
				warnDegraded(svc.ledger.Snapshot(), cmd.ErrOrStderr())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Suggested goal: %d g\n", goal)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "body weight")
	cmd.Flags().StringVar(&unit, "unit", domain.UnitKg, "weight unit: kg or lb")
	cmd.Flags().BoolVar(&apply, "apply", false, "store the suggestion as the goal")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

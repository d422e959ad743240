package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"proteinflip/internal/app"
	"proteinflip/internal/domain"
)

func (c *cli) todayCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's total and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.services(cmd.Context())
			defer svc.close()

			snap := svc.ledger.RolloverIfNeeded(cmd.Context())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			warnDegraded(snap, cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add GRAMS",
		Short: "Add grams to today's total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := parseGrams(args[0])
			if err != nil {
				return err
			}
			svc := c.services(cmd.Context())
			defer svc.close()

			before := svc.ledger.RolloverIfNeeded(cmd.Context())
			if _, err := svc.ledger.Add(cmd.Context(), grams); err != nil {
				return err
			}
			snap := svc.ledger.Snapshot()
			printSnapshot(cmd.OutOrStdout(), snap)
			if snap.Goal > 0 && before.Total < snap.Goal && snap.Total >= snap.Goal {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal hit!")
			}
			warnDegraded(snap, cmd.ErrOrStderr())
			return nil
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set DAY GRAMS",
		Short: "Overwrite the total for a day (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := parseGrams(args[1])
			if err != nil {
				return err
			}
			svc := c.services(cmd.Context())
			defer svc.close()

			if err := svc.ledger.Set(cmd.Context(), args[0], grams); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %d g\n", args[0], grams)
			warnDegraded(svc.ledger.Snapshot(), cmd.ErrOrStderr())
			return nil
		},
	}
}

func (c *cli) monthCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "month [DAY]",
		Short: "List every day of a month (default: this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.services(cmd.Context())
			defer svc.close()

			day := svc.ledger.Today()
			if len(args) == 1 {
				day = args[0]
			}
			month, err := svc.calendar.Month(day)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), month)
			}
			printMonth(cmd.OutOrStdout(), month)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func parseGrams(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("grams must be a whole number, got %q", s)
	}
	if n < 0 {
		return 0, domain.ErrNegativeAmount
	}
	return n, nil
}

func printSnapshot(w io.Writer, s app.Snapshot) {
	if !s.Progress.Configured() {
		fmt.Fprintf(w, "%s  %d g  (no goal set)\n", s.Today, s.Total)
		return
	}
	fmt.Fprintf(w, "%s  %d / %d g  %s (%d%%)\n",
		s.Today, s.Total, s.Goal, s.Progress.Status.Label(), int(s.Progress.Ratio*100))
}

func printMonth(w io.Writer, m app.CalendarMonth) {
	fmt.Fprintln(w, m.Title)
	for _, d := range m.Days {
		marker := " "
		if d.IsToday {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s  %4d g", marker, d.Day, d.Amount)
		if d.Status != domain.StatusUnset {
			line += "  " + d.Status.Label()
		}
		fmt.Fprintln(w, line)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

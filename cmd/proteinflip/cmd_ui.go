package main

import (
	"github.com/spf13/cobra"

	"proteinflip/internal/tui"
)

func (c *cli) runUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	svc := c.services(ctx)
	defer svc.close()

	m := tui.New(ctx, svc.ledger, svc.calendar, svc.goals, tui.OptionsFromConfig(c.cfg.UI), c.logger)
	return tui.Run(ctx, m)
}

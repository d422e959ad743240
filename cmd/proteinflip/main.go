// Command proteinflip tracks daily protein intake against a goal. Run it
// without arguments for the terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proteinflip/internal/config"
	"proteinflip/internal/logging"
)

// cli holds global flags and the state PersistentPreRunE prepares for every
// command.
type cli struct {
	configPath string
	dbPath     string
	verbose    bool
	ephemeral  bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "proteinflip",
		Short: "Track daily protein against a goal",
		Long: `proteinflip keeps one total per day and compares it with a daily goal.

Run without arguments to open the terminal UI. The subcommands read and
change the same ledger from scripts, and serve exposes it over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&c.dbPath, "db", "", "sqlite database file (overrides storage settings)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&c.ephemeral, "ephemeral", false, "keep the ledger in memory only")

	root.AddCommand(
		c.todayCmd(),
		c.addCmd(),
		c.setCmd(),
		c.monthCmd(),
		c.goalCmd(),
		c.serveCmd(),
		c.hashPasswordCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = c.dbPath
	}
	if c.ephemeral {
		cfg.Storage.Driver = config.DriverMemory
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.cfg = cfg

	// stdout belongs to the UI when no subcommand runs.
	if cmd.Root() == cmd {
		c.logger, err = logging.ForUI(cfg.Logging.Level, cfg.Logging.File)
	} else {
		c.logger, err = logging.New(cfg.Logging.Level, cfg.Logging.File)
	}
	return err
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

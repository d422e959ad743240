package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"proteinflip/internal/adapter/memory"
	"proteinflip/internal/adapter/postgres"
	"proteinflip/internal/adapter/sqlite"
	"proteinflip/internal/app"
	"proteinflip/internal/config"
	"proteinflip/internal/domain"
)

type services struct {
	ledger   *app.LedgerStore
	calendar *app.CalendarService
	goals    *app.GoalService
	close    func()
}

// openRepository opens the configured storage. When it cannot be opened the
// ledger still runs, in memory, for this session.
func openRepository(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (domain.LedgerRepository, func()) {
	var (
		repo interface {
			domain.LedgerRepository
			Close() error
		}
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), func() {}
	case config.DriverPostgres:
		repo, err = postgres.Open(cfg.DSN)
	default:
		repo, err = sqlite.Open(ctx, cfg.Path)
	}
	if err != nil {
		log.Error("storage open failed, continuing in memory",
			zap.String("driver", cfg.Driver),
			zap.Error(err))
		return memory.NewUnavailable(err), func() {}
	}
	log.Debug("storage opened", zap.String("driver", cfg.Driver))
	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn("storage close failed", zap.Error(err))
		}
	}
}

func (c *cli) services(ctx context.Context) *services {
	repo, closeRepo := openRepository(ctx, c.cfg.Storage, c.logger)
	ledger := app.NewLedgerStore(ctx, repo, app.WithLogger(c.logger))
	return &services{
		ledger:   ledger,
		calendar: app.NewCalendarService(ledger),
		goals:    app.NewGoalService(ledger),
		close:    closeRepo,
	}
}

// warnDegraded tells the user that a change was not saved.
func warnDegraded(s app.Snapshot, out io.Writer) {
	if s.Degraded {
		fmt.Fprintln(out, "warning: storage unavailable, changes are not saved")
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/cli"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/config"
	"github.com/alexanderramin/wordplan/internal/db"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/alexanderramin/wordplan/internal/service"
	"github.com/mattn/go-isatty"
)

// silent sits above every level the use-case observer logs at.
const silent = slog.LevelError + 4

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Display.Color || !isatty.IsTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	// Open database
	database, err := db.OpenDB(cfg.ResolvedDBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	dayRepo := repository.NewSQLitePlanDayRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging stays silent unless enabled in config or by --verbose.
	level := new(slog.LevelVar)
	level.Set(silent)
	if cfg.Logging.UseCases {
		level.Set(slog.LevelInfo)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := service.NewSlogUseCaseObserver(logger)

	alloc := allocator.New(allocator.WithMaxDays(cfg.Allocation.MaxDays))

	app := &cli.App{
		Plans:      service.NewPlanService(planRepo, dayRepo, uow, alloc, observer),
		Preview:    service.NewPreviewService(alloc, observer),
		Progress:   service.NewProgressService(uow, observer),
		Stats:      service.NewStatsService(planRepo, dayRepo, observer),
		Imports:    service.NewImportService(planRepo, dayRepo, uow, alloc, observer),
		Config:     cfg,
		ConfigPath: config.Path(),
		LogLevel:   level,
	}

	// Forms only prompt on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

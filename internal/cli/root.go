package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/config"
	"github.com/alexanderramin/wordplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Plans    service.PlanService
	Preview  service.PreviewService
	Progress service.ProgressService
	Stats    service.StatsService
	Imports  service.ImportService

	Config     config.Config
	ConfigPath string

	// LogLevel gates use-case logging; --verbose lowers it to Info.
	LogLevel *slog.LevelVar

	// IsInteractive reports whether forms may prompt on stdin.
	IsInteractive func() bool
	// Today is overridable so output is reproducible in tests.
	Today func() calendar.Date
}

func (a *App) today() calendar.Date {
	if a.Today != nil {
		return a.Today()
	}
	return calendar.Today()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) weekStart() time.Weekday {
	return formatter.WeekStart(a.Config.Display.WeekBegins)
}

// NewRootCmd creates the top-level "wordplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "wordplan",
		Short:         "Writing goal planner with daily word targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.LogLevel != nil {
				app.LogLevel.Set(slog.LevelInfo)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each use case to stderr")

	root.AddCommand(
		newPreviewCmd(app),
		newPlanCmd(app),
		newProgressCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
	)

	return root
}

func (a *App) configPath() string {
	if a.ConfigPath != "" {
		return a.ConfigPath
	}
	return config.Path()
}

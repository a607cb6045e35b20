package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/export"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"plans"},
		Short:   "Manage writing plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanScheduleCmd(app),
		newPlanUpdateCmd(app),
		newPlanArchiveCmd(app),
		newPlanUnarchiveCmd(app),
		newPlanDeleteCmd(app),
		newPlanExportCmd(app),
		newPlanImportCmd(app),
		newPlanDumpCmd(app),
	)

	return cmd
}

// planFlags are the editable plan fields shared by add and update.
type planFlags struct {
	name         string
	goal         int
	start        string
	end          string
	strategy     string
	intensity    string
	weekends     string
	contentType  string
	activityType string
	color        string
	weekBegins   string
}

func (f *planFlags) register(fs *pflag.FlagSet, app *App) {
	alloc := app.Config.Allocation
	fs.StringVar(&f.name, "name", "", "Plan name")
	fs.IntVar(&f.goal, "goal", 0, "Goal amount (words)")
	fs.StringVar(&f.start, "start", "", "First day (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "Last day, inclusive (YYYY-MM-DD)")
	fs.StringVar(&f.strategy, "strategy", alloc.DefaultStrategy, "Strategy: "+joinNames(domain.Strategies))
	fs.StringVar(&f.intensity, "intensity", alloc.DefaultIntensity, "Intensity: "+joinNames(domain.Intensities))
	fs.StringVar(&f.weekends, "weekends", alloc.DefaultWeekendRule, "Weekend rule: "+joinNames(domain.WeekendRules))
	fs.StringVar(&f.contentType, "content-type", "", "What is being written (novel, thesis, ...)")
	fs.StringVar(&f.activityType, "activity-type", "", "Kind of work (writing, editing, ...)")
	fs.StringVar(&f.color, "color", "", "Display color for the plan")
	fs.StringVar(&f.weekBegins, "week-begins", "", "Calendar week start for this plan: monday or sunday")
}

// apply copies flag values onto p. When changed is non-nil only flags the
// user set are applied.
func (f *planFlags) apply(p *domain.Plan, changed func(string) bool) error {
	set := func(name string) bool { return changed == nil || changed(name) }

	if set("name") {
		p.Name = f.name
	}
	if set("goal") {
		p.GoalAmount = f.goal
	}
	if set("start") {
		d, err := calendar.Parse(f.start)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		p.StartDate = d
	}
	if set("end") {
		d, err := calendar.Parse(f.end)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		p.EndDate = d
	}
	if set("strategy") {
		p.Strategy = domain.ParseStrategy(f.strategy)
	}
	if set("intensity") {
		p.Intensity = domain.ParseIntensity(f.intensity)
	}
	if set("weekends") {
		p.WeekendRule = domain.ParseWeekendRule(f.weekends)
	}
	if set("content-type") {
		p.ContentType = f.contentType
	}
	if set("activity-type") {
		p.ActivityType = f.activityType
	}

	display := domain.DisplaySettings{}
	if f.color != "" && set("color") {
		display["color"] = f.color
	}
	if f.weekBegins != "" && set("week-begins") {
		switch f.weekBegins {
		case "monday", "sunday":
		default:
			return fmt.Errorf("week-begins must be monday or sunday (got %q)", f.weekBegins)
		}
		display["weekBegins"] = f.weekBegins
	}
	if len(display) > 0 {
		p.DisplaySettings = p.DisplaySettings.Merge(display)
	}
	return nil
}

func (f *planFlags) missing() bool {
	return f.name == "" || f.start == "" || f.end == ""
}

// fillFromForm prompts for the plan fields and copies the answers back.
func (f *planFlags) fillFromForm() error {
	v := planFormValues{
		Name:        f.name,
		Start:       f.start,
		End:         f.end,
		Strategy:    string(domain.ParseStrategy(f.strategy)),
		Intensity:   string(domain.ParseIntensity(f.intensity)),
		WeekendRule: string(domain.ParseWeekendRule(f.weekends)),
	}
	if f.goal > 0 {
		v.Goal = strconv.Itoa(f.goal)
	}
	if err := planForm(&v).Run(); err != nil {
		return err
	}

	f.name, f.start, f.end = v.Name, v.Start, v.End
	f.strategy, f.intensity, f.weekends = v.Strategy, v.Intensity, v.WeekendRule
	if v.Goal != "" {
		n, err := strconv.Atoi(v.Goal)
		if err != nil {
			return fmt.Errorf("invalid goal %q: %w", v.Goal, err)
		}
		f.goal = n
	}
	return nil
}

func newPlanAddCmd(app *App) *cobra.Command {
	var f planFlags
	var showCalendar bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a plan and store its daily schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.missing() {
				if !app.interactive() {
					return fmt.Errorf("--name, --start and --end are required")
				}
				if err := f.fillFromForm(); err != nil {
					return err
				}
			}

			p := &domain.Plan{
				OwnerID:         app.Config.General.Owner,
				Status:          domain.PlanActive,
				DisplaySettings: app.Config.DisplaySettings(),
			}
			if err := f.apply(p, nil); err != nil {
				return err
			}

			days, err := app.Plans.Create(context.Background(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created plan %s [%s]: %s words over %d days\n",
				p.Name, p.DisplayID(), formatter.Count(p.GoalAmount), len(days))
			if showCalendar {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderCalendar(
					formatter.PlanCalendarDays(days), p.DisplaySettings.WeekBegins(), app.today()))
			}
			return nil
		},
	}

	f.register(cmd.Flags(), app)
	cmd.Flags().BoolVar(&showCalendar, "calendar", false, "Show the schedule after saving")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			plans, err := app.Plans.List(context.Background(), repository.PlanFilter{
				OwnerID:         app.Config.General.Owner,
				IncludeArchived: all,
			})
			if err != nil {
				return err
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), plans)
			}
			if len(plans) == 0 {
				printLine(cmd, "No plans found. Create one with: wordplan plan add")
				return nil
			}
			printLine(cmd, formatter.FormatPlanList(plans, app.today()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived plans")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

func newPlanInspectCmd(app *App) *cobra.Command {
	var showCalendar bool

	cmd := &cobra.Command{
		Use:   "inspect PLAN",
		Short: "Show a plan with its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			days, err := app.Plans.Schedule(ctx, p.ID)
			if err != nil {
				return err
			}

			printLine(cmd, formatter.FormatPlanInspect(formatter.PlanInspectData{
				Plan:       p,
				Days:       days,
				Today:      app.today(),
				WeekStart:  planWeekStart(app, p),
				ShowMonths: showCalendar,
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCalendar, "calendar", false, "Include the month calendar")

	return cmd
}

func newPlanScheduleCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schedule PLAN",
		Short: "Show the day-by-day schedule of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			days, err := app.Plans.Schedule(ctx, p.ID)
			if err != nil {
				return err
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), days)
			}
			printLine(cmd, formatter.Header(p.Name))
			printLine(cmd, formatter.FormatSchedule(days, app.today()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "update PLAN",
		Short: "Change a plan and regenerate its schedule",
		Long: `Change a plan and regenerate its schedule.

Only the flags given are changed. Progress logged on days that stay in
range is kept; days that fall outside the new range are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := f.apply(p, cmd.Flags().Changed); err != nil {
				return err
			}

			days, err := app.Plans.Update(ctx, p)
			if err != nil {
				return err
			}
			var logged int
			for _, d := range days {
				logged += d.Logged
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated plan %s [%s]: %s words over %d days, %s already logged\n",
				p.Name, p.DisplayID(), formatter.Count(p.GoalAmount), len(days), formatter.Count(logged))
			return nil
		},
	}

	f.register(cmd.Flags(), app)

	return cmd
}

func newPlanArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive PLAN",
		Short: "Archive a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Archive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived plan %s\n", p.Name)
			return nil
		},
	}
}

func newPlanUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive PLAN",
		Short: "Restore an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Unarchive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived plan %s\n", p.Name)
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete PLAN",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete a plan and its schedule",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the plan is not archived")

	return cmd
}

func newPlanExportCmd(app *App) *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "export PLAN",
		Short: "Export a plan's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pdfPath == "" {
				return errors.New("--pdf is required")
			}
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			days, err := app.Plans.Schedule(ctx, p.ID)
			if err != nil {
				return err
			}
			if err := export.SavePDF(export.Schedule{Plan: p, Days: days, IncludeLogged: true}, pdfPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.Name, pdfPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write the schedule to this PDF file")

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a plan with its logged progress from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Imports.ImportPlan(context.Background(), args[0], app.Config.General.Owner)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported plan %s [%s]: %d days, %s words logged on %d days\n",
				res.Plan.Name, res.Plan.DisplayID(), res.DayCount, formatter.Count(res.LoggedTotal), res.ProgressDays)
			return nil
		},
	}
}

func newPlanDumpCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dump PLAN",
		Short: "Write a plan and its logged progress as importable JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			schema, err := app.Imports.Dump(ctx, p.ID)
			if err != nil {
				return err
			}
			if file == "" {
				return writeJSON(cmd.OutOrStdout(), schema)
			}

			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating %s: %w", file, err)
			}
			if err := writeJSONAndClose(f, schema); err != nil {
				return fmt.Errorf("writing %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")

	return cmd
}

// planWeekStart prefers the plan's own setting over the config default.
func planWeekStart(app *App, p *domain.Plan) time.Weekday {
	if p.DisplaySettings.String("weekBegins") != "" {
		return p.DisplaySettings.WeekBegins()
	}
	return app.weekStart()
}

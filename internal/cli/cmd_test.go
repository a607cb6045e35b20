package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/config"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/repository"
	"github.com/alexanderramin/wordplan/internal/service"
	"github.com/alexanderramin/wordplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	formatter.DisableColor()
	os.Exit(m.Run())
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	planRepo := repository.NewSQLitePlanRepo(database)
	dayRepo := repository.NewSQLitePlanDayRepo(database)
	uow := testutil.NewTestUoW(database)
	alloc := allocator.New()

	cfg := config.DefaultConfig()
	cfg.General.Owner = "user-1"

	return &App{
		Plans:      service.NewPlanService(planRepo, dayRepo, uow, alloc),
		Preview:    service.NewPreviewService(alloc),
		Progress:   service.NewProgressService(uow),
		Stats:      service.NewStatsService(planRepo, dayRepo),
		Imports:    service.NewImportService(planRepo, dayRepo, uow, alloc),
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		LogLevel:   new(slog.LevelVar),
		Today:      func() calendar.Date { return calendar.MustParse("2024-11-10") },
	}
}

// seedPlan stores a November 2024 plan through the service.
func seedPlan(t *testing.T, app *App, name string, opts ...testutil.PlanOption) *domain.Plan {
	t.Helper()
	p := testutil.NewTestPlan(name, opts...)
	_, err := app.Plans.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- preview ---

func TestPreviewCmd_Text(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "preview",
		"--total", "30000", "--start", "2024-11-01", "--end", "2024-11-30")
	require.NoError(t, err)
	assert.Contains(t, out, "PREVIEW")
	assert.Contains(t, out, "30,000")
	assert.Contains(t, out, "November 2024")
}

func TestPreviewCmd_JSONOutput(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "preview", "-o", "json",
		"--total", "1000", "--start", "2024-01-01", "--end", "2024-01-07",
		"--strategy", "rising", "--weekends", "weekends-off")
	require.NoError(t, err)

	var resp contract.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 7)
	assert.Equal(t, 1000, allocator.Sum(resp.Data))
	// 2024-01-06 and 2024-01-07 are a weekend.
	assert.Zero(t, resp.Data[5].Target)
	assert.Zero(t, resp.Data[6].Target)
}

func TestPreviewCmd_JSONRequestFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "req.json")
	body := `{"total_word_count": 500, "start_date": "2024-03-01", "end_date": "2024-03-05", "algorithm_type": "steady"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := executeCmd(t, app, "preview", "--json", path, "-o", "json")
	require.NoError(t, err)

	var resp contract.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 5)
	for _, d := range resp.Data {
		assert.Equal(t, 100, d.Target)
	}
}

func TestPreviewCmd_UnknownStrategy(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "preview", "-o", "json",
		"--total", "100", "--start", "2024-01-01", "--end", "2024-01-02", "--strategy", "sideways")
	require.Error(t, err)
	assert.ErrorIs(t, err, allocator.ErrUnknownStrategy)

	var resp contract.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, contract.ErrCodeUnknownStrategy, resp.Code)
	assert.Empty(t, resp.Data)
}

func TestPreviewCmd_InvalidRange(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "preview",
		"--total", "100", "--start", "2024-01-10", "--end", "2024-01-01")
	assert.ErrorIs(t, err, allocator.ErrInvalidRange)
}

func TestPreviewCmd_WritesPDF(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "preview.pdf")

	out, err := executeCmd(t, app, "preview", "--table", "--pdf", path,
		"--total", "700", "--start", "2024-01-01", "--end", "2024-01-07")
	require.NoError(t, err)
	assert.Contains(t, out, "CUM TARGET")
	assert.FileExists(t, path)
}

func TestPreviewCmd_BadOutputFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "preview", "-o", "yaml",
		"--total", "100", "--start", "2024-01-01", "--end", "2024-01-02")
	assert.ErrorContains(t, err, "unknown output format")
}

// --- plan ---

func TestPlanAddCmd_PersistsSchedule(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "add",
		"--name", "NaNoWriMo", "--goal", "50000",
		"--start", "2024-11-01", "--end", "2024-11-30",
		"--strategy", "mountain", "--intensity", "gentle", "--color", "#ff8800")
	require.NoError(t, err)
	assert.Contains(t, out, "Created plan NaNoWriMo")
	assert.Contains(t, out, "50,000 words over 30 days")

	plans, err := app.Plans.List(context.Background(), repository.PlanFilter{OwnerID: "user-1"})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	p := plans[0]
	assert.Equal(t, domain.StrategyMountain, p.Strategy)
	assert.Equal(t, domain.IntensityGentle, p.Intensity)
	assert.Equal(t, "#ff8800", p.DisplaySettings.String("color"))
	assert.Equal(t, "monday", p.DisplaySettings.String("weekBegins"))

	days, err := app.Plans.Schedule(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, days, 30)
	var sum int
	for _, d := range days {
		sum += d.Target
	}
	assert.Equal(t, 50000, sum)
}

func TestPlanAddCmd_RequiresFlagsWhenNotInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add", "--goal", "100")
	assert.ErrorContains(t, err, "--name, --start and --end are required")
}

func TestPlanAddCmd_RejectsUnknownWeekendRule(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add", "--name", "X", "--goal", "100",
		"--start", "2024-01-01", "--end", "2024-01-31", "--weekends", "sometimes")
	assert.ErrorIs(t, err, allocator.ErrUnknownWeekendRule)
}

func TestPlanListCmd(t *testing.T) {
	app := testApp(t)
	seedPlan(t, app, "Active Novel")
	archived := seedPlan(t, app, "Old Thesis")
	require.NoError(t, app.Plans.Archive(context.Background(), archived.ID))

	out, err := executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Active Novel")
	assert.NotContains(t, out, "Old Thesis")

	out, err = executeCmd(t, app, "plan", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Old Thesis")
	assert.Contains(t, out, "Archived")
}

func TestPlanListCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans found")
}

func TestPlanInspectCmd_ByPrefix(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Inspect Me")

	out, err := executeCmd(t, app, "plan", "inspect", p.ID[:8], "--calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "Inspect Me")
	assert.Contains(t, out, "30,000")
	assert.Contains(t, out, "November 2024")
}

func TestPlanInspectCmd_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "inspect", "deadbeef")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanScheduleCmd_JSON(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Schedule")

	out, err := executeCmd(t, app, "plan", "schedule", p.ID, "-o", "json")
	require.NoError(t, err)

	var days []domain.PlanDay
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	require.Len(t, days, 30)
	assert.Equal(t, "2024-11-01", days[0].Date.String())
	assert.Equal(t, 1000, days[0].Target)
}

func TestPlanUpdateCmd_KeepsLoggedProgress(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Update")

	_, err := executeCmd(t, app, "progress", "log", p.ID, "800", "--date", "2024-11-05")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "plan", "update", p.ID, "--goal", "60000", "--end", "2024-11-20")
	require.NoError(t, err)
	assert.Contains(t, out, "60,000 words over 20 days")
	assert.Contains(t, out, "800 already logged")

	updated, err := app.Plans.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Update", updated.Name)
	assert.Equal(t, domain.StrategySteady, updated.Strategy)
}

func TestPlanDeleteCmd_RequiresArchive(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Delete")

	_, err := executeCmd(t, app, "plan", "delete", p.ID)
	assert.ErrorContains(t, err, "must be archived")

	_, err = executeCmd(t, app, "plan", "archive", p.ID)
	require.NoError(t, err)
	out, err := executeCmd(t, app, "plan", "delete", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted plan Delete")

	_, err = app.Plans.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanDeleteCmd_Force(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Forced")

	_, err := executeCmd(t, app, "plan", "rm", p.ID, "--force")
	require.NoError(t, err)
}

func TestPlanUnarchiveCmd(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Back Again")

	_, err := executeCmd(t, app, "plan", "archive", p.ID)
	require.NoError(t, err)
	out, err := executeCmd(t, app, "plan", "unarchive", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Unarchived plan Back Again")

	got, err := app.Plans.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanActive, got.Status)
}

func TestPlanExportCmd(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Export")
	path := filepath.Join(t.TempDir(), "plan.pdf")

	_, err := executeCmd(t, app, "plan", "export", p.ID)
	assert.ErrorContains(t, err, "--pdf is required")

	out, err := executeCmd(t, app, "plan", "export", p.ID, "--pdf", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Export")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPlanDumpAndImportCmd(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Backup")
	_, err := executeCmd(t, app, "progress", "log", p.ID, "1234", "--date", "2024-11-04")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	out, err := executeCmd(t, app, "plan", "dump", p.ID[:8], "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	out, err = executeCmd(t, app, "plan", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported plan Backup")
	assert.Contains(t, out, "30 days, 1,234 words logged on 1 days")

	plans, err := app.Plans.List(context.Background(), repository.PlanFilter{OwnerID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestPlanDumpCmd_Stdout(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "To Stdout")

	out, err := executeCmd(t, app, "plan", "dump", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "To Stdout"`)
	assert.Contains(t, out, `"goal_amount": 30000`)
}

// --- progress ---

func TestProgressLogCmd(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Progress")

	out, err := executeCmd(t, app, "progress", "log", p.ID, "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "1,200 / 1,000")
	assert.Contains(t, out, "target met")

	out, err = executeCmd(t, app, "progress", "log", p.ID, "300", "--date", "2024-11-09", "-o", "json")
	require.NoError(t, err)
	var resp contract.ProgressResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 300, resp.Logged)
	assert.False(t, resp.Met)
}

func TestProgressLogCmd_AddAccumulates(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Adding")

	_, err := executeCmd(t, app, "progress", "log", p.ID, "400")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "progress", "log", p.ID, "700", "--add")
	require.NoError(t, err)
	assert.Contains(t, out, "1,100")
}

func TestProgressLogCmd_Rejects(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Bounds")

	_, err := executeCmd(t, app, "progress", "log", p.ID, "100", "--date", "2024-12-01")
	assert.ErrorContains(t, err, "outside plan range")

	_, err = executeCmd(t, app, "progress", "log", p.ID, "-5")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "progress", "log", p.ID, "lots")
	assert.ErrorContains(t, err, "invalid count")
}

// --- stats ---

func TestStatsCmd_Plan(t *testing.T) {
	app := testApp(t)
	p := seedPlan(t, app, "Stats")
	for _, date := range []string{"2024-11-08", "2024-11-09", "2024-11-10"} {
		_, err := executeCmd(t, app, "progress", "log", p.ID, "1000", "--date", date)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, app, "stats", p.ID, "-o", "json")
	require.NoError(t, err)
	var st contract.PlanStats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 3000, st.TotalLogged)
	assert.Equal(t, 27000, st.Remaining)
	assert.Equal(t, 3, st.DaysMet)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.InDelta(t, 10.0, st.CompletionPct, 0.001)

	out, err = executeCmd(t, app, "stats", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "STATS")
	assert.Contains(t, out, "3,000 of 30,000")
}

func TestStatsCmd_Global(t *testing.T) {
	app := testApp(t)
	a := seedPlan(t, app, "First")
	seedPlan(t, app, "Second", testutil.WithGoal(10000))
	_, err := executeCmd(t, app, "progress", "log", a.ID, "5000", "--date", "2024-11-02")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats", "-o", "json")
	require.NoError(t, err)
	var gs contract.GlobalStats
	require.NoError(t, json.Unmarshal([]byte(out), &gs))
	assert.Equal(t, 2, gs.ActivePlans)
	assert.Equal(t, 40000, gs.GoalAmount)
	assert.Equal(t, 5000, gs.TotalLogged)

	out, err = executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 active")
	assert.Contains(t, out, "Second")
}

// --- config ---

func TestConfigCmd_InitShowPath(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, app.ConfigPath, strings.TrimSpace(out))

	_, err = executeCmd(t, app, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, app.ConfigPath)

	_, err = executeCmd(t, app, "config", "init")
	assert.ErrorContains(t, err, "already exists")
	_, err = executeCmd(t, app, "config", "init", "--force")
	require.NoError(t, err)

	loaded, err := config.LoadFile(app.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	out, err = executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[allocation]")
	assert.Contains(t, out, `owner = "user-1"`)
}

func TestRootCmd_VerboseLowersLogLevel(t *testing.T) {
	app := testApp(t)
	app.LogLevel.Set(slog.LevelError + 4)

	_, err := executeCmd(t, app, "--verbose", "plan", "list")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, app.LogLevel.Level())
}

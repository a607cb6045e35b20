package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var (
		asOfStr string
		recent  int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "stats [PLAN]",
		Short: "Show progress statistics",
		Long: `Show progress statistics for one plan, or across all active plans
when no plan is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			req := contract.StatsRequest{OwnerID: app.Config.General.Owner, AsOf: app.today()}
			if asOfStr != "" {
				d, err := calendar.Parse(asOfStr)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				req.AsOf = d
			}

			ctx := context.Background()
			if len(args) == 0 {
				gs, err := app.Stats.GlobalStats(ctx, req)
				if err != nil {
					return err
				}
				if output == outputJSON {
					return writeJSON(cmd.OutOrStdout(), gs)
				}
				printLine(cmd, formatter.FormatGlobalStats(*gs))
				return nil
			}

			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			req.PlanID = p.ID
			st, err := app.Stats.PlanStats(ctx, req)
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			printLine(cmd, formatter.FormatPlanStats(*st, recent))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "Compute as of this day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&recent, "days", 7, "Number of recent days to list")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

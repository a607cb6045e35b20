package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/alexanderramin/wordplan/internal/export"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	var (
		req      contract.PreviewRequest
		jsonPath string
		output   string
		table    bool
		pdfPath  string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute a daily schedule without saving it",
		Long: `Compute a daily schedule without saving it.

The request comes from flags, or from a JSON body via --json FILE
(use - for stdin) with the fields total_word_count, start_date,
end_date, algorithm_type, strategy_intensity and weekend_rule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			if jsonPath != "" {
				decoded, err := readPreviewRequest(cmd, jsonPath)
				if err != nil {
					return err
				}
				req = decoded
			}

			resp, err := app.Preview.Preview(context.Background(), req)
			if output == outputJSON {
				if jerr := writeJSON(cmd.OutOrStdout(), resp); jerr != nil {
					return jerr
				}
				return err
			}
			if err != nil {
				return err
			}

			areq, err := req.ToAllocation()
			if err != nil {
				return err
			}
			if table {
				printLine(cmd, formatter.FormatSchedule(targetDays(resp.Data), app.today()))
			} else {
				printLine(cmd, formatter.FormatPreview(areq, resp.Data, app.weekStart(), app.today()))
			}

			if pdfPath != "" {
				plan := &domain.Plan{
					Name:        "Schedule preview",
					StartDate:   areq.Start,
					EndDate:     areq.End,
					GoalAmount:  areq.Total,
					Strategy:    areq.Strategy,
					Intensity:   areq.Intensity,
					WeekendRule: areq.WeekendRule,
				}
				if err := export.SavePDF(export.Schedule{Plan: plan, Days: targetDays(resp.Data)}, pdfPath); err != nil {
					return err
				}
				printLine(cmd, formatter.Dim("Wrote "+pdfPath))
			}
			return nil
		},
	}

	alloc := app.Config.Allocation
	cmd.Flags().IntVar(&req.TotalWordCount, "total", 0, "Goal amount to distribute")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "Last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.AlgorithmType, "strategy", alloc.DefaultStrategy, "Strategy: "+joinNames(domain.Strategies))
	cmd.Flags().StringVar(&req.StrategyIntensity, "intensity", alloc.DefaultIntensity, "Intensity: "+joinNames(domain.Intensities))
	cmd.Flags().StringVar(&req.WeekendRule, "weekends", alloc.DefaultWeekendRule, "Weekend rule: "+joinNames(domain.WeekendRules))
	cmd.Flags().StringVar(&jsonPath, "json", "", "Read the request from a JSON file (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")
	cmd.Flags().BoolVar(&table, "table", false, "Show a day-by-day table instead of the calendar")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the schedule to a PDF file")
	cmd.MarkFlagsMutuallyExclusive("json", "total")

	return cmd
}

func readPreviewRequest(cmd *cobra.Command, path string) (contract.PreviewRequest, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return contract.PreviewRequest{}, fmt.Errorf("opening request: %w", err)
		}
		defer f.Close()
		r = f
	}
	return contract.DecodePreviewRequest(r)
}

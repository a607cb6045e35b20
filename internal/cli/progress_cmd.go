package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/wordplan/internal/calendar"
	"github.com/alexanderramin/wordplan/internal/cli/formatter"
	"github.com/alexanderramin/wordplan/internal/contract"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Record words written",
	}

	cmd.AddCommand(newProgressLogCmd(app))

	return cmd
}

func newProgressLogCmd(app *App) *cobra.Command {
	var (
		dateStr string
		add     bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "log PLAN COUNT",
		Short: "Set the words written on a day",
		Long: `Set the words written on a day of a plan.

COUNT replaces the amount already logged for that day unless --add is
given, in which case it is added to it. The day defaults to today.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[1], err)
			}
			date := app.today()
			if dateStr != "" {
				date, err = calendar.Parse(dateStr)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
			}

			ctx := context.Background()
			p, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}

			req := contract.NewProgressRequest(p.ID, count)
			req.Date = date
			req.Add = add
			resp, err := app.Progress.Log(ctx, req)
			if err != nil {
				return err
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			status := formatter.Dim(fmt.Sprintf("%s to go", formatter.Count(resp.Target-resp.Logged)))
			if resp.Met {
				status = formatter.StyleGreen.Render("target met")
			} else if resp.Target == 0 {
				status = formatter.Dim("rest day")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s / %s  %s\n",
				p.Name, formatter.RelativeDay(resp.Date, app.today()),
				formatter.Bold(formatter.Count(resp.Logged)), formatter.Count(resp.Target), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&add, "add", false, "Add to the day's amount instead of replacing it")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

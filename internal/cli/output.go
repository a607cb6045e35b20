package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/wordplan/internal/allocator"
	"github.com/alexanderramin/wordplan/internal/domain"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text or json)", format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// writeJSONAndClose closes wc even when encoding fails and reports the close
// error, since a failed flush means the file is incomplete.
func writeJSONAndClose(wc io.WriteCloser, v any) error {
	if err := writeJSON(wc, v); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func printLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// targetDays turns preview targets into unsaved day rows for the shared
// schedule renderers.
func targetDays(targets []allocator.DailyTarget) []domain.PlanDay {
	days := make([]domain.PlanDay, len(targets))
	for i, t := range targets {
		days[i] = domain.PlanDay{Date: t.Date, Target: t.Target}
	}
	return days
}

func joinNames[T ~string](vals []T) string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

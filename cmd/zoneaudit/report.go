package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/landscan/zoneaudit/internal/report"
	"github.com/landscan/zoneaudit/internal/services"
	"github.com/landscan/zoneaudit/internal/zoning"
)

type reportFlags struct {
	analysis string
	kind     string
	out      string
}

func newReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a text report from an analysis result",
		Long:  "Report reads an analysis result JSON file and renders one of the plain-text\nreports: the full zoning analysis, the single-family vs multi-family\ncomparison, or the infrastructure burden analysis.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.analysis, "analysis", "analysis.json", "Analysis result JSON file")
	f.StringVar(&flags.kind, "type", "full", "Report type: full, comparison, or infrastructure")
	f.StringVar(&flags.out, "out", "", "Write the report to a file instead of stdout")

	return cmd
}

func runReport(flags reportFlags) error {
	data, err := os.ReadFile(flags.analysis)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", flags.analysis, err)
	}

	var result services.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse %s: %w", flags.analysis, err)
	}

	rules := zoning.DefaultRules()

	var text string
	switch flags.kind {
	case "full":
		text = report.Full(&result, rules)
	case "comparison":
		text = report.Comparative(&result, rules)
	case "infrastructure":
		text = report.Infrastructure(&result, rules)
	default:
		return fmt.Errorf("unknown report type %q (expected full, comparison, or infrastructure)", flags.kind)
	}

	if flags.out == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(flags.out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.out, err)
	}
	return nil
}

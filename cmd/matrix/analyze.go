package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

const barWidth = 20

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the analysis of the active seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			seed, err := loadSeed(cfg)
			if err != nil {
				return err
			}
			return writeAnalysis(cmd.OutOrStdout(), seed, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func writeAnalysis(w io.Writer, criteria []scoring.Criterion, format string) error {
	a := scoring.Analyze(criteria)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "text":
		return renderText(w, a, scoring.ParetoFrontier(criteria))
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

func renderText(w io.Writer, a scoring.Analysis, frontier []scoring.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "OPTION\tSCORE\tPERCENT\t\tTOP FACTORS\n")
	for _, r := range a.Options {
		marker := ""
		switch {
		case r.Best:
			marker = " (best)"
		case r.Worst:
			marker = " (worst)"
		}
		fmt.Fprintf(tw, "%s%s\t%d/%d\t%5.1f%%\t%s\t%s\n",
			r.Option, marker, r.Score, r.MaxPossible, r.Percent, bar(r.Percent), factors(r.TopContributors))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\ncriteria: %d  total weight: %d\n", a.Criteria, a.TotalWeight)
	if len(a.Dominated) > 0 {
		fmt.Fprintf(w, "dominated: %s\n", joinOptions(a.Dominated))
	}
	_, err := fmt.Fprintf(w, "frontier: %s\n", joinOptions(frontier))
	return err
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func factors(cs []scoring.Contribution) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, fmt.Sprintf("%s (+%d)", c.Name, c.Value))
	}
	return strings.Join(parts, ", ")
}

func joinOptions(opts []scoring.Option) string {
	s := make([]string, len(opts))
	for i, o := range opts {
		s[i] = string(o)
	}
	return strings.Join(s, ", ")
}

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/report"
)

var (
	contFrom   string
	contTo     string
	contJSON   bool
	contOutput string
)

var continuousCmd = &cobra.Command{
	Use:   "continuous",
	Short: "Cumulative statistics after each round date",
	Long: `Print one cumulative snapshot per distinct round date: the statistics as they
stood once every round up to and including that date was counted.`,
	Args: cobra.NoArgs,
	RunE: runContinuous,
}

func init() {
	continuousCmd.Flags().StringVar(&contFrom, "from", "", "first date to include (YYYY-MM-DD or unix seconds)")
	continuousCmd.Flags().StringVar(&contTo, "to", "", "last date to include (YYYY-MM-DD or unix seconds)")
	continuousCmd.Flags().BoolVar(&contJSON, "json", false, "print every snapshot as JSON")
	continuousCmd.Flags().StringVarP(&contOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(continuousCmd)
}

func runContinuous(cmd *cobra.Command, _ []string) error {
	from, err := parseDate(contFrom, false)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseDate(contTo, true)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	ms, err := loadSelected(cmd.Context())
	if err != nil {
		return err
	}
	// Earlier rounds still count toward the totals; only the listing is windowed.
	var entries []aggregator.Entry
	for _, e := range aggregator.Continuous(ms) {
		if (from == 0 || e.Date >= from) && (to == 0 || e.Date <= to) {
			entries = append(entries, e)
		}
	}

	return withOutput(contOutput, func(w io.Writer) error {
		if contJSON {
			return report.WriteJSON(w, report.NewContinuousView(entries))
		}
		report.PrintContinuous(w, entries)
		return nil
	})
}

// parseDate accepts unix seconds or YYYY-MM-DD (UTC). With endOfDay a plain
// date means the last second of that day. Empty is 0, an open bound.
func parseDate(s string, endOfDay bool) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("%q is neither YYYY-MM-DD nor unix seconds", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t.Unix(), nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every round in the data directory, genuine or not",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	rounds, err := db.ListRounds()
	if err != nil {
		return fmt.Errorf("list rounds: %w", err)
	}
	if len(rounds) == 0 {
		fmt.Fprintf(os.Stdout, "No rounds found in %s.\n", cfg.DataDir)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-16s  %-16s  %7s  %-8s  %s\n",
		"ID", "DATE", "MAP", "LENGTH", "WINNER", "GENUINE")
	fmt.Fprintf(os.Stdout, "%-5s  %-16s  %-16s  %7s  %-8s  %s\n",
		"─────", "────────────────", "────────────────", "───────", "────────", "───────")
	for _, r := range rounds {
		genuine := "no"
		if r.Genuine {
			genuine = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-16s  %-16s  %7s  %-8s  %s\n",
			r.ID, report.FormatDate(r.RoundDate), r.MapName, report.FormatLength(r.RoundLength), r.WinningTeam, genuine)
	}
	return nil
}

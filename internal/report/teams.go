package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/ranking"
	"github.com/pable/ns2-stats/internal/teams"
)

// PrintSuggestions prints each candidate split, most even first. name maps ids
// to display names.
func PrintSuggestions(w io.Writer, suggestions []teams.Assignment, name func(model.PlayerID) string) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No valid split.")
		return
	}
	table := newTable(w)
	table.Header("#", "MARINES", "ALIENS", "DIFF")
	for i, a := range suggestions {
		table.Append(
			fmt.Sprintf("%d", i+1),
			joinNames(a.GroupA, name),
			joinNames(a.GroupB, name),
			fmt.Sprintf("%+.3f", a.SignedSum),
		)
	}
	table.Render()
}

func joinNames(ids []model.PlayerID, name func(model.PlayerID) string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = name(id)
	}
	return strings.Join(names, ", ")
}

// PrintPastGames prints earlier rounds with the same roster and commanders.
func PrintPastGames(w io.Writer, games []model.GameSummary) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No earlier round with this roster and these commanders.")
		return
	}
	for _, g := range games {
		fmt.Fprintf(w, "\nMarines: %s\n", teamList(g.Marines))
		fmt.Fprintf(w, "Aliens:  %s\n", teamList(g.Aliens))
		fmt.Fprintf(w, "(%.3f min, winner: %s)\n", g.RoundLength/60, g.WinningTeam)
	}
}

// PrintRanking prints players by descending weight.
func PrintRanking(w io.Writer, ranked []ranking.Ranked) {
	table := newTable(w)
	table.Header("#", "NAME", "WEIGHT")
	for i, r := range ranked {
		table.Append(fmt.Sprintf("%d", i+1), r.Name, fmt.Sprintf("%.4f", r.Weight))
	}
	table.Render()
}

package teams

import (
	"sort"

	"github.com/pable/ns2-stats/internal/model"
)

// PastGames returns earlier rounds played by exactly this roster with the given
// commanders (empty means nobody commanded), longest round first.
func PastGames(summaries []model.GameSummary, roster []string, marineCommander, alienCommander string) []model.GameSummary {
	var out []model.GameSummary
	for _, g := range summaries {
		if len(roster) != len(g.Marines.Players)+len(g.Aliens.Players) {
			continue
		}
		if g.Marines.Commander != marineCommander || g.Aliens.Commander != alienCommander {
			continue
		}
		all := true
		for _, name := range roster {
			if !g.Marines.Has(name) && !g.Aliens.Has(name) {
				all = false
				break
			}
		}
		if all {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RoundLength > out[j].RoundLength })
	return out
}

package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/model"
)

// DefaultMinCount is the kills and deaths a player needs to appear in the
// players table.
const DefaultMinCount = 50

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// ratio formats f with format, or "—" when f is NaN or infinite.
func ratio(format string, f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "—"
	}
	return fmt.Sprintf(format, f)
}

func pct(f float64) string {
	return ratio("%.2f%%", f*100)
}

func u32(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// PrintOverview prints the round count and the overall marine win rate.
func PrintOverview(w io.Writer, s model.Snapshot) {
	if s.TotalGames == 0 {
		fmt.Fprintln(w, "No genuine rounds found.")
		return
	}
	fmt.Fprintf(w, "TOTAL GAMES: %d  |  MARINE WR: %s  |  MARINE %d – ALIEN %d\n",
		s.TotalGames, pct(s.MarineWinRate()), s.MarineWins, s.AlienWins)
}

// FilterPlayers keeps players with more than minCount total kills and deaths,
// ordered by K/D descending (undefined K/D last), then name.
func FilterPlayers(s model.Snapshot, minCount uint32) []model.PlayerAggregate {
	var out []model.PlayerAggregate
	for _, p := range s.SortedPlayers() {
		if p.Kills.Total > minCount && p.Deaths.Total > minCount {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].KD().Total, out[j].KD().Total
		if math.IsNaN(ki) != math.IsNaN(kj) {
			return !math.IsNaN(ki)
		}
		if ki != kj {
			return ki > kj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PrintPlayerTable prints one row per player with totals over both sides.
func PrintPlayerTable(w io.Writer, players []model.PlayerAggregate) {
	table := newTable(w)
	table.Header("NAME", "GAMES", "WR", "COMM", "KILLS", "ASSISTS", "DEATHS", "KD", "KDA", "ACC", "SCORE/G")
	for _, p := range players {
		table.Append(
			p.Name,
			u32(p.Games.Total),
			pct(p.WinRate().Total),
			u32(p.Commander.Total),
			u32(p.Kills.Total),
			u32(p.Assists.Total),
			u32(p.Deaths.Total),
			ratio("%.2f", p.KD().Total),
			ratio("%.2f", p.KDA().Total),
			pct(p.Accuracy().Total),
			ratio("%.1f", p.ScorePerGame().Total),
		)
	}
	table.Render()
}

// PrintMapTable prints every map ordered by marine win rate, highest first.
func PrintMapTable(w io.Writer, s model.Snapshot) {
	names := make([]string, 0, len(s.Maps))
	for name := range s.Maps {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := s.Maps[names[i]].MarineWinRate(), s.Maps[names[j]].MarineWinRate()
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})

	table := newTable(w)
	table.Header("MAP", "MARINE WR", "MARINE", "ALIEN", "ROUNDS")
	for _, name := range names {
		m := s.Maps[name]
		table.Append(name, pct(m.MarineWinRate()), u32(m.MarineWins), u32(m.AlienWins), u32(m.TotalGames))
	}
	table.Render()
}

// PrintStats prints the overview, the filtered players table and the maps table.
func PrintStats(w io.Writer, s model.Snapshot, minCount uint32) {
	PrintOverview(w, s)
	if s.TotalGames == 0 {
		return
	}
	fmt.Fprintln(w)
	players := FilterPlayers(s, minCount)
	if len(players) == 0 {
		fmt.Fprintf(w, "No player with more than %d kills and deaths.\n", minCount)
	} else {
		PrintPlayerTable(w, players)
	}
	fmt.Fprintln(w)
	PrintMapTable(w, s)
}

// PrintPlayerDetail prints one player's counters and ratios split by side.
func PrintPlayerDetail(w io.Writer, p model.PlayerAggregate) {
	fmt.Fprintf(w, "\n%s  (id %d)\n\n", p.Name, p.ID)

	table := newTable(w)
	table.Header("SIDE", "GAMES", "WINS", "WR", "COMM", "K", "A", "D", "KD", "KDA", "ACC", "SCORE/G")
	for _, side := range []model.Team{model.TeamMarines, model.TeamAliens, model.TeamNone} {
		label := side.String()
		if side == model.TeamNone {
			label = "Total"
		}
		table.Append(
			label,
			u32(p.Games.Get(side)),
			u32(p.Wins.Get(side)),
			pct(p.WinRate().Get(side)),
			u32(p.Commander.Get(side)),
			u32(p.Kills.Get(side)),
			u32(p.Assists.Get(side)),
			u32(p.Deaths.Get(side)),
			ratio("%.2f", p.KD().Get(side)),
			ratio("%.2f", p.KDA().Get(side)),
			pct(p.Accuracy().Get(side)),
			ratio("%.1f", p.ScorePerGame().Get(side)),
		)
	}
	table.Render()
}

// PrintGames lists round summaries, commanders in brackets.
func PrintGames(w io.Writer, games []model.GameSummary) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No rounds.")
		return
	}
	table := newTable(w)
	table.Header("DATE", "MAP", "LENGTH", "WINNER", "MARINES", "ALIENS")
	for _, g := range games {
		table.Append(
			FormatDate(g.RoundDate),
			g.MapName,
			FormatLength(g.RoundLength),
			g.WinningTeam.String(),
			teamList(g.Marines),
			teamList(g.Aliens),
		)
	}
	table.Render()
}

func teamList(t model.TeamSummary) string {
	names := make([]string, len(t.Players))
	for i, p := range t.Players {
		if p == t.Commander {
			p = "[" + p + "]"
		}
		names[i] = p
	}
	return strings.Join(names, ", ")
}

// PrintSQL prints the result of a raw query.
func PrintSQL(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

// PrintContinuous prints one line per cumulative snapshot.
func PrintContinuous(w io.Writer, entries []aggregator.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No rounds in range.")
		return
	}
	table := newTable(w)
	table.Header("DATE", "GAMES", "MARINE", "ALIEN", "MARINE WR", "PLAYERS")
	for _, e := range entries {
		s := e.Stats
		table.Append(
			FormatDate(e.Date),
			u32(s.TotalGames),
			u32(s.MarineWins),
			u32(s.AlienWins),
			pct(s.MarineWinRate()),
			strconv.Itoa(len(s.Players)),
		)
	}
	table.Render()
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/ranking"
	"github.com/pable/ns2-stats/internal/report"
	"github.com/pable/ns2-stats/internal/storage"
	"github.com/pable/ns2-stats/internal/teams"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Load the data directory once and explore it interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// session is the data a shell works on; reload replaces it wholesale.
type session struct {
	all      []model.MatchRecord
	selected []model.MatchRecord
	snap     model.Snapshot
	db       *storage.DB
}

func openSession(ctx context.Context) (*session, error) {
	all, err := loadRounds(ctx)
	if err != nil {
		return nil, err
	}
	db, err := newStore(all)
	if err != nil {
		return nil, err
	}
	selected := all
	if !allRounds {
		selected = games.Genuine(all)
	}
	return &session{all: all, selected: selected, snap: aggregator.Compute(selected), db: db}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { sess.Close() }()

	cGreeting.Println("ns2stat shell")
	cMuted.Printf("%d rounds loaded from %s, %d counted. type 'help' or 'exit'\n",
		len(sess.all), cfg.DataDir, len(sess.selected))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("ns2stat")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		command, args := tokens[0], tokens[1:]

		switch command {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "stats":
			minCount := cfg.MinCount
			if len(args) > 0 {
				n, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					cError.Fprintln(os.Stderr, "usage: stats [min-kills-and-deaths]")
					continue
				}
				minCount = uint32(n)
			}
			report.PrintStats(os.Stdout, sess.snap, minCount)
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name|id> [...]")
				continue
			}
			shellPlayer(sess, args)
		case "teams":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: teams <name|id> [...]")
				continue
			}
			shellTeams(sess, args)
		case "rank":
			shellRank(sess)
		case "games":
			n := 10
			if len(args) > 0 {
				if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
					cError.Fprintln(os.Stderr, "usage: games [count]")
					continue
				}
			}
			summaries := games.SummarizeAll(sess.selected)
			if len(summaries) > n {
				summaries = summaries[len(summaries)-n:]
			}
			report.PrintGames(os.Stdout, summaries)
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			cols, rows, err := sess.db.QueryRaw(strings.Join(args, " "))
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			report.PrintSQL(os.Stdout, cols, rows)
		case "schema":
			fmt.Println(schemaHelp)
		case "reload":
			next, err := openSession(ctx)
			if err != nil {
				cError.Fprintf(os.Stderr, "reload failed, keeping previous data: %v\n", err)
				continue
			}
			sess.Close()
			sess = next
			cMuted.Printf("%d rounds loaded, %d counted\n", len(sess.all), len(sess.selected))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", command)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"stats [min]", "overview, players and maps tables"},
		{"player <name|id> [...]", "per-side breakdown for players"},
		{"teams <name|id> [...]", "balanced split suggestions by K/D"},
		{"rank", "head-to-head ranking"},
		{"games [count]", "most recent round summaries (default 10)"},
		{"sql <query>", "raw SQL against the in-memory database"},
		{"schema", "show the SQL tables"},
		{"reload", "re-read the data directory"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellPlayer(sess *session, args []string) {
	ids, err := sess.snap.Resolve(args)
	if err != nil {
		printLookupError(err)
		return
	}
	for _, id := range ids {
		report.PrintPlayerDetail(os.Stdout, sess.snap.Players[id])
	}
}

func shellTeams(sess *session, args []string) {
	got, err := teams.Suggest(sess.snap, args, teams.MetricKD, teams.Options{MaxSuggestions: 4, Workers: cfg.Workers})
	if err != nil {
		printLookupError(err)
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	warnFewGames(sess.snap, args)
	warnSubstituted(sess.snap, got.Substituted, teams.MetricKD)
	cHeader.Println("--- Team suggestions ---")
	report.PrintSuggestions(os.Stdout, got.Assignments, sess.snap.Name)
}

func shellRank(sess *session) {
	ranked, err := ranking.Rank(sess.all, ranking.Options{
		MinEncounters:     cfg.MinEncounters,
		MinPairEncounters: cfg.MinPairEncounters,
	})
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintRanking(os.Stdout, ranked)
}

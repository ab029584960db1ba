package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/model"
	"github.com/pable/go-nhl-lineup/internal/report"
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
	Long:  "Open a persistent session against one import. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds the league loaded once for the whole session.
type shellSession struct {
	teams []model.Team
	sel   *lineup.Selector
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	teams, imp, err := loadLeague(db, importPrefix)
	db.Close()
	if err != nil {
		return err
	}
	s := &shellSession{teams: teams, sel: newSelector()}

	cGreeting.Println("nhllineup shell")
	cMuted.Printf("import %s  |  %d teams  |  %d players\n", imp.Hash[:12], imp.Teams, imp.Players)
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("nhllineup")
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
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "teams":
			report.PrintTeamList(os.Stdout, s.teams)
		case "roster":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: roster <team>")
				continue
			}
			s.roster(args[0])
		case "lineup":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: lineup <team> <target player>")
				continue
			}
			s.lineup(args[0], strings.Join(args[1:], " "))
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			s.player(strings.Join(args, " "))
		case "top":
			n := 10
			if len(args) > 0 {
				if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
					n = v
				}
			}
			report.PrintEfficiencyTable(os.Stdout, loader.TopByEfficiency(s.teams, n))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q; type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"teams", "list teams with roster sizes"},
		{"roster <team>", "rank a team's skaters by composite score"},
		{"lineup <team> <target>", "best defensive lineup against a player"},
		{"player <name>", "show a player's stats and team"},
		{"top [n]", "best takeaway efficiency league-wide"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *shellSession) findTeam(name string) (model.Team, bool) {
	t, ok := loader.FindTeam(s.teams, name)
	if !ok {
		cError.Fprintf(os.Stderr, "team %q not found\n", name)
	}
	return t, ok
}

func (s *shellSession) roster(name string) {
	team, ok := s.findTeam(name)
	if !ok {
		return
	}
	res := s.sel.Select(team, "", nil)
	report.PrintRosterTable(os.Stdout, team, s.sel, res)
}

func (s *shellSession) lineup(teamName, target string) {
	team, ok := s.findTeam(teamName)
	if !ok {
		return
	}
	res := s.sel.Select(team, target, lineup.League(s.teams))
	if res.Target == nil {
		cWarn.Fprintf(os.Stderr, "%q not found; building without a threat boost\n", target)
	}
	report.PrintLineupSummary(os.Stdout, team.Name, target, res)
	report.PrintLineupTable(os.Stdout, res)
}

func (s *shellSession) player(name string) {
	p, ok := loader.FindPlayer(s.teams, name)
	if !ok {
		cError.Fprintf(os.Stderr, "no player named %q\n", name)
		return
	}
	b := s.sel.Score(p, 0)
	cHeader.Printf("%s", p.Name)
	fmt.Printf("  %s  %s\n", loader.TeamNameForPlayer(s.teams, p.Name), p.NormalizedPosition())
	fmt.Printf("  GP %d  TOI %.0f  xGA/60 %.2f  hits %d  blocks %d  TK %d  GV %d\n",
		p.GamesPlayed, p.IceTime, b.XGAPer60, p.Hits, p.BlockedShots, p.Takeaways, p.Giveaways)
	fmt.Printf("  G %d  P %d  HDxG %.2f  rebounds %d  eff %.3f\n",
		p.Goals, p.Points, p.HighDangerXGoals, p.ReboundGoals, p.TakeawayEfficiency)
	eligible := "eligible"
	if !s.sel.Eligible(p) {
		eligible = "not eligible"
	}
	cMuted.Printf("  score %.2f (def %.2f, off %.2f), %s, threat boost as target %.2f\n",
		b.Composite, b.DefScore, b.OffScore, eligible, s.sel.ThreatBoost(p))
}

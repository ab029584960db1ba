package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-lineup/internal/lineup"
	"github.com/pable/go-nhl-lineup/internal/loader"
	"github.com/pable/go-nhl-lineup/internal/model"
	"github.com/pable/go-nhl-lineup/internal/report"
)

const analyzeSystemPrompt = `You are an NHL matchup analyst. You are given the output of a lineup tool
that picks two defensemen and one left wing, centre and right wing to shut down
a named opposing player, together with every score component, and a question
from a coach.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and practical.

Metrics glossary (every constant is in the "formula" object of the data):
- xga_per60: individual expected goals against per 60 minutes. Lower is better.
- possession: formula.possession * (takeaways - formula.giveaway_penalty * giveaways).
- def_score: formula.xga_per60 * xga_per60 + formula.hits * hits
  + formula.blocked_shots * blocks + possession.
- threat_boost: min((target high-danger xG + target goals) / formula.threat_scale, formula.threat_cap).
- matchup_multiplier: 1 + formula.matchup * threat_boost, applied to def_score only.
- off_score: formula.goals * goals + formula.points * points
  + formula.high_danger_xgoals * high-danger xG + formula.rebound_goals * rebound goals.
- composite: formula.def_weight * matchup def_score + formula.off_weight * off_score.
- Players need at least formula.min_games_played games and must not be goalies.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeBench  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzeLineupCmd = &cobra.Command{
	Use:   "lineup <team> <target player> <question>",
	Short: "Ask about a defensive lineup",
	Args:  cobra.ExactArgs(3),
	RunE:  runAnalyzeLineup,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (default from config)")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeLineupCmd.Flags().IntVar(&analyzeBench, "bench", 5, "also send the N best eligible players left out")

	analyzeCmd.AddCommand(analyzeLineupCmd)
}

func runAnalyzeLineup(cmd *cobra.Command, args []string) error {
	teamName, target, question := args[0], args[1], args[2]

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	teams, imp, err := loadLeague(db, importPrefix)
	if err != nil {
		return err
	}
	team, ok := loader.FindTeam(teams, teamName)
	if !ok {
		return fmt.Errorf("team %q not found", teamName)
	}

	res := newSelector().Select(team, target, lineup.League(teams))
	if len(res.Lineup) == 0 {
		return fmt.Errorf("no lineup could be generated for %s", team.Name)
	}

	contextJSON, err := buildLineupContext(imp, team.Name, target, res, analyzeBench)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	modelID := analyzeModel
	if modelID == "" {
		modelID = cfg.AnalyzeModel
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, modelID, contextJSON, question)
}

type playerEntry struct {
	Slot       string  `json:"slot,omitempty"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Games      int     `json:"games_played"`
	IceTime    float64 `json:"ice_time_min"`
	XGAPer60   float64 `json:"xga_per60"`
	Hits       int     `json:"hits"`
	Blocks     int     `json:"blocked_shots"`
	Takeaways  int     `json:"takeaways"`
	Giveaways  int     `json:"giveaways"`
	Goals      int     `json:"goals"`
	Points     int     `json:"points"`
	Possession float64 `json:"possession"`
	DefScore   float64 `json:"def_score"`
	Multiplier float64 `json:"matchup_multiplier"`
	OffScore   float64 `json:"off_score"`
	Composite  float64 `json:"composite"`
}

func newPlayerEntry(slot string, r lineup.Ranked) playerEntry {
	p := r.Player
	return playerEntry{
		Slot:       slot,
		Name:       p.Name,
		Position:   p.NormalizedPosition(),
		Games:      p.GamesPlayed,
		IceTime:    round2(p.IceTime),
		XGAPer60:   round2(r.XGAPer60),
		Hits:       p.Hits,
		Blocks:     p.BlockedShots,
		Takeaways:  p.Takeaways,
		Giveaways:  p.Giveaways,
		Goals:      p.Goals,
		Points:     p.Points,
		Possession: round2(r.PossessionScore),
		DefScore:   round2(r.DefScore),
		Multiplier: round2(r.MatchupMultiplier),
		OffScore:   round2(r.OffScore),
		Composite:  round2(r.Composite),
	}
}

// buildLineupContext serialises a selection into compact JSON.
func buildLineupContext(imp *model.ImportSummary, team, target string, res lineup.Result, bench int) (string, error) {
	byPlayer := make(map[*model.Player]lineup.Ranked, len(res.Ranked))
	for _, r := range res.Ranked {
		byPlayer[r.Player] = r
	}
	labels := report.SlotLabels(res.Lineup)
	picked := make([]playerEntry, 0, len(res.Lineup))
	inLineup := make(map[*model.Player]bool, len(res.Lineup))
	for i, p := range res.Lineup {
		picked = append(picked, newPlayerEntry(labels[i], byPlayer[p]))
		inLineup[p] = true
	}

	var left []playerEntry
	for _, r := range res.Ranked {
		if len(left) >= bench {
			break
		}
		if !inLineup[r.Player] {
			left = append(left, newPlayerEntry("", r))
		}
	}

	targetDoc := map[string]interface{}{"name": target, "found": false}
	if t := res.Target; t != nil {
		targetDoc = map[string]interface{}{
			"name":               t.Name,
			"found":              true,
			"team":               t.Team,
			"position":           t.NormalizedPosition(),
			"goals":              t.Goals,
			"points":             t.Points,
			"high_danger_xgoals": round2(t.HighDangerXGoals),
		}
	}

	doc := map[string]interface{}{
		"subject":          "defensive_lineup",
		"season":           imp.Season,
		"situation":        imp.Situation,
		"team":             team,
		"target":           targetDoc,
		"threat_boost":     round2(res.ThreatBoost),
		"eligible_players": len(res.Ranked),
		"lineup":           picked,
		"best_left_out":    left,
		"formula":          formulaDoc(),
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// formulaDoc describes the scoring settings in effect, so the model reads the
// same constants that produced the scores.
func formulaDoc() map[string]interface{} {
	co := cfg.Coefficients
	return map[string]interface{}{
		"def_weight":         cfg.DefWeight,
		"off_weight":         cfg.OffWeight,
		"threat_scale":       cfg.ThreatScale,
		"threat_cap":         cfg.ThreatCap,
		"min_games_played":   cfg.MinGamesPlayed,
		"xga_per60":          co.XGAPer60,
		"hits":               co.Hits,
		"blocked_shots":      co.BlockedShots,
		"possession":         co.Possession,
		"giveaway_penalty":   co.GiveawayPenalty,
		"matchup":            co.Matchup,
		"goals":              co.Goals,
		"points":             co.Points,
		"high_danger_xgoals": co.HighDangerXGoals,
		"rebound_goals":      co.ReboundGoals,
	}
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}

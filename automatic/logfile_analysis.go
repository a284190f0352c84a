package automatic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/quarto/stats"
)

// LogAnalysis is what AnalyzeLog recovers from a YAML round log.
type LogAnalysis struct {
	Matches int
	Rounds  int
	Draws   int
	// Wins is keyed by player name.
	Wins map[string]int
	// Lines counts winning lines by name ("row 1", "diagonal", ...).
	Lines map[string]int
	// FirstMoverWins is 1 for a round won by whoever placed first, 0.5 for
	// a draw and 0 otherwise.
	FirstMoverWins stats.Statistic
	Placements     stats.Statistic

	placements []float64
}

// AnalyzeLog reads a round log as written by GameRunner.
func AnalyzeLog(r io.Reader) (*LogAnalysis, error) {
	var entries []RoundLog
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	a := &LogAnalysis{
		Wins:  map[string]int{},
		Lines: map[string]int{},
	}
	matches := map[int]struct{}{}
	for _, e := range entries {
		matches[e.Match] = struct{}{}
		a.Rounds++
		a.Placements.Push(float64(e.Placements))
		a.placements = append(a.placements, float64(e.Placements))
		if e.Winner == "draw" {
			a.Draws++
			a.FirstMoverWins.Push(0.5)
			continue
		}
		a.Wins[e.Winner]++
		a.Lines[e.Line]++
		if e.Winner == e.FirstMover {
			a.FirstMoverWins.Push(1)
		} else {
			a.FirstMoverWins.Push(0)
		}
	}
	a.Matches = len(matches)
	return a, nil
}

func (a *LogAnalysis) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matches played: %d\n", a.Matches)
	fmt.Fprintf(&sb, "Rounds played: %d (draws %d)\n", a.Rounds, a.Draws)
	names := lo.Keys(a.Wins)
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(&sb, "%s round wins: %d\n", n, a.Wins[n])
	}
	if a.Rounds > 0 {
		lo95, hi95 := a.FirstMoverWins.ConfidenceInterval(95)
		fmt.Fprintf(&sb, "First placer score: %.3f (95%% CI %.3f-%.3f)\n",
			a.FirstMoverWins.Mean(), lo95, hi95)
		fmt.Fprintf(&sb, "Placements per round: %.2f ± %.2f\n",
			a.Placements.Mean(), a.Placements.Stdev())
	}
	if len(a.placements) > 0 {
		sb.WriteString("Placements per round histogram:\n")
		a.writeHistogram(&sb)
	}
	lines := lo.Keys(a.Lines)
	slices.Sort(lines)
	for _, l := range lines {
		fmt.Fprintf(&sb, "Won on %s: %d\n", l, a.Lines[l])
	}
	return sb.String()
}

// writeHistogram plots placements per round with one bucket per
// placement count between the shortest and longest round.
func (a *LogAnalysis) writeHistogram(w io.Writer) {
	shortest, longest := a.placements[0], a.placements[0]
	for _, p := range a.placements {
		shortest, longest = min(shortest, p), max(longest, p)
	}
	bins := max(int(longest-shortest), 1)
	hist := histogram.Hist(bins, a.placements)
	histogram.Fprintf(w, hist, histogram.Linear(20), func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	})
}

// AnalyzeLogFile analyzes the round log at filepath and returns a report.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	a, err := AnalyzeLog(file)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

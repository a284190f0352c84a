// Package automatic plays computer-vs-computer Quarto matches and collects
// statistics about them.
package automatic

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/quarto/game"
	"github.com/domino14/quarto/piece"
	"github.com/domino14/quarto/stats"
	"github.com/domino14/quarto/turnplayer"
)

// RoundLog is one entry of the YAML round log.
type RoundLog struct {
	Match      int      `yaml:"match"`
	Round      int      `yaml:"round"`
	FirstMover string   `yaml:"first"`
	Winner     string   `yaml:"winner"`
	Line       string   `yaml:"line,omitempty"`
	Placements int      `yaml:"placements"`
	Moves      []string `yaml:"moves,flow"`
}

// Summary aggregates the results of every match a Runner played.
type Summary struct {
	Names     [2]string
	Matches   int
	MatchWins [2]int
	RoundWins [2]int
	Draws     int
	// RoundLength counts placements per round.
	RoundLength stats.Statistic
	// FirstSeatWins is 1 for every round seat 0 won and 0 otherwise.
	FirstSeatWins stats.Statistic
}

func (s *Summary) Rounds() int {
	return s.RoundWins[0] + s.RoundWins[1] + s.Draws
}

func (s *Summary) merge(o *Summary) {
	s.Matches += o.Matches
	for i := 0; i < 2; i++ {
		s.MatchWins[i] += o.MatchWins[i]
		s.RoundWins[i] += o.RoundWins[i]
	}
	s.Draws += o.Draws
	s.RoundLength.Merge(&o.RoundLength)
	s.FirstSeatWins.Merge(&o.FirstSeatWins)
}

// String renders a short human-readable report.
func (s *Summary) String() string {
	lo95, hi95 := s.FirstSeatWins.ConfidenceInterval(95)
	return fmt.Sprintf(
		"matches: %d (%s %d, %s %d)\nrounds: %d (%s %d, %s %d, draws %d)\n"+
			"placements per round: %.2f ± %.2f\n%s round win rate: %.3f (95%% CI %.3f-%.3f)\n",
		s.Matches, s.Names[0], s.MatchWins[0], s.Names[1], s.MatchWins[1],
		s.Rounds(), s.Names[0], s.RoundWins[0], s.Names[1], s.RoundWins[1], s.Draws,
		s.RoundLength.Mean(), s.RoundLength.Stdev(),
		s.Names[0], s.FirstSeatWins.Mean(), lo95, hi95)
}

// GameRunner plays automated matches across a number of worker threads.
type GameRunner struct {
	numMatches   int
	threads      int
	winThreshold int
	// seed 0 means every match gets an entropy-seeded source.
	seed      uint64
	names     [2]string
	logStream io.Writer
}

func NewGameRunner(numMatches, threads int) *GameRunner {
	return &GameRunner{
		numMatches:   numMatches,
		threads:      max(threads, 1),
		winThreshold: game.DefaultWinThreshold,
		names:        [2]string{"p1", "p2"},
	}
}

// SetSeed makes runs reproducible: match i is seeded with seed+i.
func (r *GameRunner) SetSeed(seed uint64) {
	r.seed = seed
}

func (r *GameRunner) SetWinThreshold(n int) {
	r.winThreshold = n
}

func (r *GameRunner) SetNames(p1, p2 string) {
	r.names = [2]string{p1, p2}
}

// SetLogStream makes the runner write a YAML list of RoundLog entries to w.
func (r *GameRunner) SetLogStream(w io.Writer) {
	r.logStream = w
}

func (r *GameRunner) source(matchIdx int) piece.Source {
	if r.seed == 0 {
		return piece.NewSource()
	}
	return piece.NewSeededSource(r.seed + uint64(matchIdx))
}

// playMatch plays a single match and returns its partial summary.
func (r *GameRunner) playMatch(ctx context.Context, matchIdx int, logChan chan<- []byte) (*Summary, error) {
	src := r.source(matchIdx)
	players := [2]game.Player{
		turnplayer.NewAutomated(r.names[0], src),
		turnplayer.NewAutomated(r.names[1], src),
	}
	sum := &Summary{Names: r.names, Matches: 1}
	var logErr error
	m := game.NewMatch(players,
		game.WithSource(src),
		game.WithWinThreshold(r.winThreshold),
		game.WithRoundEnd(func(rd *game.Round, res game.Result, s game.Scores) {
			sum.RoundLength.Push(float64(res.Turns))
			if res.Drawn {
				sum.Draws++
				sum.FirstSeatWins.Push(0)
			} else {
				sum.RoundWins[res.Winner]++
				sum.FirstSeatWins.Push(float64(1 - res.Winner))
			}
			if logChan == nil || logErr != nil {
				return
			}
			out, err := yaml.Marshal([]RoundLog{r.roundLog(matchIdx, s.Rounds(), rd, res)})
			if err != nil {
				logErr = err
				return
			}
			logChan <- out
		}),
	)
	res, err := m.Play(ctx)
	if err != nil {
		return nil, err
	}
	if logErr != nil {
		return nil, logErr
	}
	if res.Winner >= 0 {
		sum.MatchWins[res.Winner]++
	}
	log.Debug().Int("match", matchIdx).Str("result", res.String()).
		Str("scores", res.ScoreLine()).Msg("match-done")
	return sum, nil
}

func (r *GameRunner) roundLog(matchIdx, roundNum int, rd *game.Round, res game.Result) RoundLog {
	hist := rd.History()
	entry := RoundLog{
		Match:      matchIdx,
		Round:      roundNum,
		FirstMover: r.names[hist[0].Placer],
		Winner:     "draw",
		Placements: len(hist),
		Moves:      lo.Map(hist, func(t game.Turn, _ int) string { return t.ShortDescription() }),
	}
	if !res.Drawn {
		entry.Winner = r.names[res.Winner]
		entry.Line = res.Line.String()
	}
	return entry
}

// Run plays every match and returns the combined summary.
func (r *GameRunner) Run(ctx context.Context) (*Summary, error) {
	log.Debug().Int("matches", r.numMatches).Int("threads", r.threads).Msg("starting-autoplay")

	var logChan chan []byte
	writer := errgroup.Group{}
	if r.logStream != nil {
		logChan = make(chan []byte, 64)
		writer.Go(func() error {
			for out := range logChan {
				if _, err := r.logStream.Write(out); err != nil {
					// keep draining so workers never block
					for range logChan {
					}
					return err
				}
			}
			return nil
		})
	}

	jobs := make(chan int)
	total := &Summary{Names: r.names}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < r.numMatches; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for t := 0; t < r.threads; t++ {
		t := t
		g.Go(func() error {
			for idx := range jobs {
				sum, err := r.playMatch(gctx, idx, logChan)
				if err != nil {
					log.Err(err).Int("thread", t).Int("match", idx).Msg("autoplay-error")
					return err
				}
				mu.Lock()
				total.merge(sum)
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
		if werr := writer.Wait(); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("matches", total.Matches).Int("rounds", total.Rounds()).Msg("autoplay-done")
	return total, nil
}

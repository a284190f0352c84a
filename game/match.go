package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quarto/piece"
)

// DefaultWinThreshold is the number of round wins that takes the match.
const DefaultWinThreshold = 3

// Scores are the match counters. Draws never count toward the threshold.
type Scores struct {
	Wins  [2]int
	Draws int
}

// Rounds is the number of rounds recorded.
func (s Scores) Rounds() int {
	return s.Wins[0] + s.Wins[1] + s.Draws
}

// ContinueFunc is asked between rounds whether to keep playing, as long as
// nobody has reached the threshold yet.
type ContinueFunc func(ctx context.Context, s Scores) (bool, error)

// RoundEndFunc is called after every finished round with the scores already
// updated.
type RoundEndFunc func(r *Round, res Result, s Scores)

type MatchOption func(*Match)

func WithWinThreshold(n int) MatchOption {
	return func(m *Match) {
		m.threshold = n
	}
}

// WithSource sets the random source used to shuffle pieces and pick who
// places first in each round.
func WithSource(src piece.Source) MatchOption {
	return func(m *Match) {
		m.src = src
	}
}

func WithContinue(fn ContinueFunc) MatchOption {
	return func(m *Match) {
		m.cont = fn
	}
}

func WithEventListener(fn func(*Round, Event)) MatchOption {
	return func(m *Match) {
		m.onEvent = fn
	}
}

func WithRoundEnd(fn RoundEndFunc) MatchOption {
	return func(m *Match) {
		m.onRoundEnd = fn
	}
}

// Match plays rounds between two players until one of them reaches the win
// threshold or the continue hook says stop.
type Match struct {
	players    [2]Player
	threshold  int
	src        piece.Source
	cont       ContinueFunc
	onEvent    func(*Round, Event)
	onRoundEnd RoundEndFunc

	scores Scores
}

func NewMatch(players [2]Player, opts ...MatchOption) *Match {
	m := &Match{players: players, threshold: DefaultWinThreshold}
	for _, o := range opts {
		o(m)
	}
	if m.threshold < 1 {
		m.threshold = DefaultWinThreshold
	}
	if m.src == nil {
		m.src = piece.NewSource()
	}
	return m
}

func (m *Match) Scores() Scores {
	return m.scores
}

func (m *Match) Threshold() int {
	return m.threshold
}

// Record adds a finished round to the scores.
func (m *Match) Record(res Result) {
	if res.Drawn {
		m.scores.Draws++
		return
	}
	m.scores.Wins[res.Winner]++
}

// Over reports whether a player has reached the win threshold.
func (m *Match) Over() bool {
	return m.scores.Wins[0] >= m.threshold || m.scores.Wins[1] >= m.threshold
}

// NewRound deals a fresh board and piece set. The first placer is picked at
// random.
func (m *Match) NewRound() *Round {
	r := NewRound(m.players, m.src.Intn(2), piece.NewSet(m.src))
	if m.onEvent != nil {
		r.SetListener(m.onEvent)
	}
	return r
}

// PlayRound plays one round to the end and records it.
func (m *Match) PlayRound(ctx context.Context) (Result, error) {
	r := m.NewRound()
	log.Debug().Str("first-placer", m.players[r.ActivePlayer()].Name()).
		Int("round", m.scores.Rounds()+1).Msg("new-round")
	res, err := r.Play(ctx)
	if err != nil {
		return Result{}, err
	}
	m.Record(res)
	if m.onRoundEnd != nil {
		m.onRoundEnd(r, res, m.scores)
	}
	return res, nil
}

// Play runs the match to completion.
func (m *Match) Play(ctx context.Context) (MatchResult, error) {
	for !m.Over() {
		if _, err := m.PlayRound(ctx); err != nil {
			return MatchResult{}, err
		}
		if m.Over() || m.cont == nil {
			continue
		}
		keepGoing, err := m.cont(ctx, m.scores)
		if err != nil {
			return MatchResult{}, err
		}
		if !keepGoing {
			log.Debug().Msg("match stopped early")
			break
		}
	}
	return m.Result(), nil
}

// Result summarizes the match so far.
func (m *Match) Result() MatchResult {
	res := MatchResult{
		Scores: m.scores,
		Names:  [2]string{m.players[0].Name(), m.players[1].Name()},
		Winner: -1,
	}
	switch {
	case m.scores.Wins[0] > m.scores.Wins[1]:
		res.Winner = 0
	case m.scores.Wins[1] > m.scores.Wins[0]:
		res.Winner = 1
	}
	return res
}

type MatchResult struct {
	Scores Scores
	Names  [2]string
	// Winner is the index of the player with more round wins, or -1.
	Winner int
}

func (r MatchResult) String() string {
	if r.Winner < 0 {
		return "The game is a draw"
	}
	return fmt.Sprintf("%s wins the game", r.Names[r.Winner])
}

// ScoreLine renders the scores, e.g. "Human: 2, Computer: 1, Draws: 0".
func (r MatchResult) ScoreLine() string {
	return fmt.Sprintf("%s: %d, %s: %d, Draws: %d", r.Names[0], r.Scores.Wins[0],
		r.Names[1], r.Scores.Wins[1], r.Scores.Draws)
}

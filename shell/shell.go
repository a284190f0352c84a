// Package shell runs an interactive Quarto match between a human at the
// terminal and the computer.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quarto/config"
	"github.com/domino14/quarto/game"
	"github.com/domino14/quarto/piece"
	"github.com/domino14/quarto/turnplayer"
)

const (
	humanSeat    = 0
	computerSeat = 1
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// readlineReader adapts a readline instance to turnplayer.LineReader.
type readlineReader struct {
	l *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.l.SetPrompt(prompt)
	line, err := r.l.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", fmt.Errorf("interrupted: %w", io.EOF)
	}
	return line, err
}

type ShellController struct {
	cfg *config.Config
	l   *readline.Instance

	in  turnplayer.LineReader
	out io.Writer
	src piece.Source
}

// NewShellController sets up a readline-backed session on the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		HistoryFile:     cfg.GetString(config.ConfigReadlineHistory),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := NewController(cfg, &readlineReader{l}, l.Stdout())
	sc.l = l
	return sc, nil
}

// NewController builds a session on arbitrary input and output.
func NewController(cfg *config.Config, in turnplayer.LineReader, out io.Writer) *ShellController {
	var src piece.Source
	if seed := cfg.GetUint64(config.ConfigSeed); seed != 0 {
		log.Info().Uint64("seed", seed).Msg("using seeded random source")
		src = piece.NewSeededSource(seed)
	} else {
		src = piece.NewSource()
	}
	return &ShellController{cfg: cfg, in: in, out: out, src: src}
}

func (sc *ShellController) players() [2]game.Player {
	var players [2]game.Player
	players[humanSeat] = turnplayer.NewInteractive(
		sc.cfg.GetString(config.ConfigHumanName), sc.in, sc.out)
	players[computerSeat] = turnplayer.NewAutomated(
		sc.cfg.GetString(config.ConfigComputerName), sc.src)
	return players
}

func (sc *ShellController) onEvent(names [2]string) func(*game.Round, game.Event) {
	return func(r *game.Round, e game.Event) {
		switch e.Type {
		case game.PieceSelected:
			if e.Player == computerSeat {
				showMessage(fmt.Sprintf("%s selects piece: %v", names[computerSeat], e.Piece), sc.out)
			} else {
				showMessage(fmt.Sprintf("%s gives %v to %s", names[humanSeat], e.Piece,
					names[computerSeat]), sc.out)
			}
		case game.PiecePlaced:
			if e.Player == computerSeat {
				showMessage(fmt.Sprintf("%s placed piece at %v", names[computerSeat], e.Cell), sc.out)
			}
			if !r.Over() {
				io.WriteString(sc.out, r.ToDisplayText(names))
			}
		}
	}
}

func (sc *ShellController) onRoundEnd(names [2]string) game.RoundEndFunc {
	return func(r *game.Round, res game.Result, s game.Scores) {
		io.WriteString(sc.out, r.Board().ToDisplayText())
		if res.Drawn {
			showMessage("It's a draw.", sc.out)
		} else {
			showMessage(fmt.Sprintf("%s wins the round!", names[res.Winner]), sc.out)
		}
		showMessage("Scores: "+game.MatchResult{Scores: s, Names: names}.ScoreLine(), sc.out)
	}
}

func (sc *ShellController) askContinue(ctx context.Context, s game.Scores) (bool, error) {
	keepGoing, err := turnplayer.AskYesNo(ctx, sc.in, sc.out, "Play another round? (y/n): ")
	if err != nil {
		return false, err
	}
	if keepGoing {
		showMessage("\nNew Round\n", sc.out)
	}
	return keepGoing, nil
}

// Loop plays one match and prints the outcome.
func (sc *ShellController) Loop(ctx context.Context) (game.MatchResult, error) {
	players := sc.players()
	names := [2]string{players[0].Name(), players[1].Name()}
	m := game.NewMatch(players,
		game.WithWinThreshold(sc.cfg.GetInt(config.ConfigWinThreshold)),
		game.WithSource(sc.src),
		game.WithEventListener(sc.onEvent(names)),
		game.WithRoundEnd(sc.onRoundEnd(names)),
		game.WithContinue(sc.askContinue),
	)
	showMessage("\nNew Round\n", sc.out)
	res, err := m.Play(ctx)
	if err != nil {
		return res, err
	}
	showMessage("Game Over", sc.out)
	showMessage(res.ScoreLine(), sc.out)
	showMessage(res.String(), sc.out)
	log.Info().Str("result", res.String()).Int("rounds", res.Scores.Rounds()).Msg("match-over")
	return res, nil
}

func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}

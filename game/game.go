// Package game runs Quarto rounds and matches. A Round is the turn engine:
// it alternates two Players through piece selection and placement until
// someone completes a quarto or the board fills up. It doesn't care how its
// players decide; interactive and automated players live elsewhere.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

var ErrRoundOver = errors.New("round is already over")

type Phase int

const (
	AwaitingSelection Phase = iota
	AwaitingPlacement
	RoundWon
	RoundDrawn
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting-selection"
	case AwaitingPlacement:
		return "awaiting-placement"
	case RoundWon:
		return "won"
	case RoundDrawn:
		return "drawn"
	}
	return "unknown"
}

// Result is the outcome of a finished round.
type Result struct {
	Drawn bool
	// Winner is the index of the winning player, or -1 for a draw.
	Winner int
	// Line is the winning line; unset for a draw.
	Line  board.Line
	Turns int
}

// Round holds the state of a single round. It is not safe for concurrent
// use.
type Round struct {
	board   *board.Board
	pieces  *piece.Set
	players [2]Player

	// placer is the player who places the next piece; the other one
	// selects it.
	placer   int
	inHand   piece.Piece
	phase    Phase
	winLine  board.Line
	history  []Turn
	listener func(*Round, Event)
}

// NewRound sets up a round on an empty board. firstPlacer is the index of
// the player who places the first piece; the other player selects it.
func NewRound(players [2]Player, firstPlacer int, set *piece.Set) *Round {
	return &Round{
		board:   board.NewBoard(),
		pieces:  set,
		players: players,
		placer:  firstPlacer % 2,
		phase:   AwaitingSelection,
		history: make([]Turn, 0, board.NumCells),
	}
}

// SetListener registers fn to be called after every transition.
func (r *Round) SetListener(fn func(*Round, Event)) {
	r.listener = fn
}

func (r *Round) emit(e Event) {
	if r.listener != nil {
		r.listener(r, e)
	}
}

func (r *Round) Board() *board.Board {
	return r.board
}

func (r *Round) Pieces() *piece.Set {
	return r.pieces
}

func (r *Round) Phase() Phase {
	return r.phase
}

// ActivePlayer is the player who places the current or next piece.
func (r *Round) ActivePlayer() int {
	return r.placer
}

// Selector is the player who hands over the next piece.
func (r *Round) Selector() int {
	return otherPlayer(r.placer)
}

// InHand returns the piece waiting to be placed, if any.
func (r *Round) InHand() (piece.Piece, bool) {
	return r.inHand, r.phase == AwaitingPlacement
}

func (r *Round) History() []Turn {
	return r.history
}

func (r *Round) Over() bool {
	return r.phase == RoundWon || r.phase == RoundDrawn
}

// Result returns the outcome of the round; ok is false while the round is
// still being played.
func (r *Round) Result() (Result, bool) {
	switch r.phase {
	case RoundWon:
		return Result{Winner: r.placer, Line: r.winLine, Turns: len(r.history)}, true
	case RoundDrawn:
		return Result{Drawn: true, Winner: -1, Turns: len(r.history)}, true
	}
	return Result{}, false
}

// Step performs a single transition: a selection or a placement.
func (r *Round) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch r.phase {
	case AwaitingSelection:
		return r.selectPiece(ctx)
	case AwaitingPlacement:
		return r.placePiece(ctx)
	}
	return ErrRoundOver
}

func (r *Round) selectPiece(ctx context.Context) error {
	selector := r.Selector()
	p := r.players[selector]
	idx, err := p.SelectPiece(ctx, r.pieces.Pieces())
	if err != nil {
		return err
	}
	drawn, err := r.pieces.Draw(idx)
	if err != nil {
		return fmt.Errorf("%s selected an unavailable piece: %w", p.Name(), err)
	}
	log.Debug().Str("selector", p.Name()).Str("piece", drawn.Code()).
		Int("remaining", r.pieces.Len()).Msg("piece-selected")
	r.inHand = drawn
	r.phase = AwaitingPlacement
	r.emit(Event{Type: PieceSelected, Player: selector, Piece: drawn})
	return nil
}

func (r *Round) placePiece(ctx context.Context) error {
	p := r.players[r.placer]
	// Players get a copy so they can't touch the real board.
	row, col, err := p.PlacePiece(ctx, r.board.Copy(), r.inHand)
	if err != nil {
		return err
	}
	if err := r.board.Place(r.inHand, row, col); err != nil {
		return fmt.Errorf("%s made an illegal placement: %w", p.Name(), err)
	}
	cell := board.Coord{Row: row, Col: col}
	r.history = append(r.history, Turn{
		Selector: r.Selector(), Placer: r.placer, Piece: r.inHand, Cell: cell})
	log.Debug().Str("placer", p.Name()).Str("piece", r.inHand.Code()).
		Int("row", row).Int("col", col).Msg("piece-placed")
	placed := Event{Type: PiecePlaced, Player: r.placer, Piece: r.inHand, Cell: cell}

	if line, ok := r.board.WinningLine(); ok {
		r.winLine = line
		r.phase = RoundWon
		log.Debug().Str("winner", p.Name()).Str("line", line.String()).Msg("round-won")
	} else if r.board.IsFull() {
		r.phase = RoundDrawn
		log.Debug().Msg("round-drawn")
	} else {
		r.placer = otherPlayer(r.placer)
		r.phase = AwaitingSelection
	}
	r.emit(placed)
	return nil
}

// Play steps the round until it is over.
func (r *Round) Play(ctx context.Context) (Result, error) {
	for !r.Over() {
		if err := r.Step(ctx); err != nil {
			return Result{}, err
		}
	}
	res, _ := r.Result()
	return res, nil
}

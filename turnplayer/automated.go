package turnplayer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

// Automated is the computer player. It hands over a random piece and
// places on the first empty cell in row-major order; there is no strategy.
type Automated struct {
	name string
	src  piece.Source
}

func NewAutomated(name string, src piece.Source) *Automated {
	if src == nil {
		src = piece.NewSource()
	}
	return &Automated{name: name, src: src}
}

func (a *Automated) Name() string {
	return a.name
}

func (a *Automated) SelectPiece(ctx context.Context, available []piece.Piece) (int, error) {
	if len(available) == 0 {
		return 0, piece.ErrOutOfRange
	}
	idx := a.src.Intn(len(available))
	log.Debug().Str("player", a.name).Str("piece", available[idx].Code()).
		Int("of", len(available)).Msg("auto-select")
	return idx, nil
}

func (a *Automated) PlacePiece(ctx context.Context, b *board.Board, p piece.Piece) (int, int, error) {
	c, ok := FirstEmptyCell(b)
	if !ok {
		// A round never asks for a placement on a full board.
		panic("automated player asked to place on a full board")
	}
	return c.Row, c.Col, nil
}

// FirstEmptyCell returns the first free cell in row-major order.
func FirstEmptyCell(b *board.Board) (board.Coord, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return board.Coord{}, false
	}
	return empty[0], true
}

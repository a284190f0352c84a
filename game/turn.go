package game

import (
	"fmt"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

type EventType int

const (
	PieceSelected EventType = iota
	PiecePlaced
)

func (e EventType) String() string {
	switch e {
	case PieceSelected:
		return "selected"
	case PiecePlaced:
		return "placed"
	}
	return "unknown"
}

// An Event is emitted after every transition of a round.
type Event struct {
	Type   EventType
	Player int
	Piece  piece.Piece
	// Cell is only set for PiecePlaced.
	Cell board.Coord
}

func (e Event) String() string {
	if e.Type == PiecePlaced {
		return fmt.Sprintf("player %d placed %v at %v", e.Player, e.Piece, e.Cell)
	}
	return fmt.Sprintf("player %d selected %v", e.Player, e.Piece)
}

// A Turn records one half-turn: a piece handed over by Selector and put
// down by Placer.
type Turn struct {
	Selector int
	Placer   int
	Piece    piece.Piece
	Cell     board.Coord
}

// ShortDescription is used in logs, e.g. "WRTO@r2c3".
func (t Turn) ShortDescription() string {
	return fmt.Sprintf("%s@r%dc%d", t.Piece.Code(), t.Cell.Row+1, t.Cell.Col+1)
}

package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

func TestEventString(t *testing.T) {
	is := is.New(t)
	p := piece.New(piece.Black, piece.Square, piece.Short, piece.Hollow)

	sel := Event{Type: PieceSelected, Player: 1, Piece: p}
	is.Equal(sel.String(), "player 1 selected black square short hollow")
	is.Equal(sel.Type.String(), "selected")

	pl := Event{Type: PiecePlaced, Player: 0, Piece: p, Cell: board.Coord{Row: 3, Col: 0}}
	is.Equal(pl.String(), "player 0 placed black square short hollow at (4, 1)")
	is.Equal(EventType(7).String(), "unknown")
}

func TestTurnShortDescription(t *testing.T) {
	is := is.New(t)
	tn := Turn{
		Selector: 1,
		Placer:   0,
		Piece:    piece.New(piece.White, piece.Round, piece.Tall, piece.Solid),
		Cell:     board.Coord{Row: 1, Col: 2},
	}
	is.Equal(tn.ShortDescription(), "WRTO@r2c3")
}

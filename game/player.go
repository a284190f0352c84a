package game

import (
	"context"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

// A Player makes the two decisions a round asks for. The round never
// retries: a Player must resolve bad input itself and only return answers
// the board will accept.
type Player interface {
	Name() string
	// SelectPiece picks, from the available pieces, the one the opponent
	// must place next. It returns a 0-based index into available.
	SelectPiece(ctx context.Context, available []piece.Piece) (int, error)
	// PlacePiece chooses an empty cell for p. The board must not be
	// modified.
	PlacePiece(ctx context.Context, b *board.Board, p piece.Piece) (row, col int, err error)
}

func otherPlayer(idx int) int {
	return (idx + 1) % 2
}

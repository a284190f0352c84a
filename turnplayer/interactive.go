package turnplayer

import (
	"context"
	"fmt"
	"io"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

// Interactive is a human at a terminal. Prompts are 1-based; answers are
// converted to 0-based indexes before they reach the round.
type Interactive struct {
	name string
	in   LineReader
	out  io.Writer
}

func NewInteractive(name string, in LineReader, out io.Writer) *Interactive {
	return &Interactive{name: name, in: in, out: out}
}

func (h *Interactive) Name() string {
	return h.name
}

func (h *Interactive) SelectPiece(ctx context.Context, available []piece.Piece) (int, error) {
	if len(available) == 0 {
		return 0, piece.ErrOutOfRange
	}
	io.WriteString(h.out, "Available pieces:\n")
	io.WriteString(h.out, board.PieceListText(available))
	n, err := AskInt(ctx, h.in, h.out,
		fmt.Sprintf("Select a piece to give (1-%d): ", len(available)), 1, len(available))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func (h *Interactive) PlacePiece(ctx context.Context, b *board.Board, p piece.Piece) (int, int, error) {
	io.WriteString(h.out, b.ToDisplayText())
	fmt.Fprintf(h.out, "%s, place %v\n", h.name, p)
	c, err := ask(ctx, h.out, func() (board.Coord, error) {
		row, err := AskInt(ctx, h.in, h.out, "Select row (1-4) to place piece: ", 1, board.Size)
		if err != nil {
			return board.Coord{}, err
		}
		col, err := AskInt(ctx, h.in, h.out, "Select column (1-4) to place piece: ", 1, board.Size)
		if err != nil {
			return board.Coord{}, err
		}
		c := board.Coord{Row: row - 1, Col: col - 1}
		return c, b.CanPlace(c.Row, c.Col)
	})
	if err != nil {
		return 0, 0, err
	}
	return c.Row, c.Col, nil
}

package board

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/quarto/piece"
)

type LineKind uint8

const (
	RowLine LineKind = iota
	ColumnLine
	DiagonalLine
	AntiDiagonalLine
)

// A Line is one of the ten candidate winning lines: a row, a column or one
// of the two diagonals.
type Line struct {
	Kind   LineKind
	Index  int
	Coords [Size]Coord
}

func (l Line) String() string {
	switch l.Kind {
	case RowLine:
		return fmt.Sprintf("row %d", l.Index+1)
	case ColumnLine:
		return fmt.Sprintf("column %d", l.Index+1)
	case DiagonalLine:
		return "diagonal"
	case AntiDiagonalLine:
		return "anti-diagonal"
	}
	return "unknown line"
}

// Contains reports whether c is one of the line's cells.
func (l Line) Contains(c Coord) bool {
	return lo.Contains(l.Coords[:], c)
}

// Lines returns the ten candidate lines: four rows, four columns and the two
// diagonals.
func Lines() []Line {
	lines := make([]Line, 0, 2*Size+2)
	for i := 0; i < Size; i++ {
		row := Line{Kind: RowLine, Index: i}
		col := Line{Kind: ColumnLine, Index: i}
		for j := 0; j < Size; j++ {
			row.Coords[j] = Coord{i, j}
			col.Coords[j] = Coord{j, i}
		}
		lines = append(lines, row, col)
	}
	diag := Line{Kind: DiagonalLine}
	anti := Line{Kind: AntiDiagonalLine}
	for i := 0; i < Size; i++ {
		diag.Coords[i] = Coord{i, i}
		anti.Coords[i] = Coord{i, Size - 1 - i}
	}
	return append(lines, diag, anti)
}

// SharedAttributes returns the dimensions on which every piece agrees. It
// returns nil for an empty slice.
func SharedAttributes(pieces []piece.Piece) []piece.Dimension {
	if len(pieces) == 0 {
		return nil
	}
	return lo.Filter(piece.Dimensions(), func(d piece.Dimension, _ int) bool {
		first := pieces[0].Attribute(d)
		return lo.EveryBy(pieces, func(p piece.Piece) bool {
			return p.Attribute(d) == first
		})
	})
}

// linePieces returns the pieces on l, and false if any of its cells is empty.
func (b *Board) linePieces(l Line) ([]piece.Piece, bool) {
	pieces := make([]piece.Piece, 0, Size)
	for _, c := range l.Coords {
		cl := b.cells[c.Row][c.Col]
		if !cl.occupied {
			return nil, false
		}
		pieces = append(pieces, cl.piece)
	}
	return pieces, true
}

// IsWinning reports whether l is fully occupied by pieces sharing at least
// one attribute.
func (b *Board) IsWinning(l Line) bool {
	pieces, full := b.linePieces(l)
	if !full {
		return false
	}
	return len(SharedAttributes(pieces)) > 0
}

// WinningLine returns the first winning line found.
func (b *Board) WinningLine() (Line, bool) {
	// Nothing can be complete before four pieces are down.
	if b.numPieces < Size {
		return Line{}, false
	}
	return lo.Find(Lines(), b.IsWinning)
}

// HasQuarto reports whether any line on the board is a quarto.
func (b *Board) HasQuarto() bool {
	_, ok := b.WinningLine()
	return ok
}

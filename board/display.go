package board

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/domino14/quarto/piece"
)

const (
	// EmptyCellMarker stands in for an empty cell in text renderings.
	EmptyCellMarker = "____"

	cellWidth        = len("black square short hollow")
	compactCellWidth = piece.NumDimensions
)

func (b *Board) cellText(r, c int, compact bool) string {
	cl := b.cells[r][c]
	if !cl.occupied {
		return EmptyCellMarker
	}
	if compact {
		return cl.piece.Code()
	}
	return cl.piece.String()
}

func (b *Board) toText(width int, compact bool) string {
	var sb strings.Builder
	headers := lo.Map(lo.Range(Size), func(c int, _ int) string {
		return fmt.Sprintf("%-*d", width, c+1)
	})
	sb.WriteString("    " + strings.TrimRight(strings.Join(headers, "   "), " ") + "\n")
	rule := "   " + strings.Repeat("-", Size*width+(Size-1)*3+1)
	for r := 0; r < Size; r++ {
		cells := lo.Map(lo.Range(Size), func(c int, _ int) string {
			return fmt.Sprintf("%-*s", width, b.cellText(r, c, compact))
		})
		sb.WriteString(fmt.Sprintf("%d   %s\n", r+1,
			strings.TrimRight(strings.Join(cells, " | "), " ")))
		sb.WriteString(rule + "\n")
	}
	if l, ok := b.WinningLine(); ok {
		pieces, _ := b.linePieces(l)
		shared := lo.Map(SharedAttributes(pieces), func(d piece.Dimension, _ int) string {
			return d.String()
		})
		sb.WriteString(fmt.Sprintf("Quarto on %v (shared %s)\n", l, strings.Join(shared, ", ")))
	}
	return sb.String()
}

// ToDisplayText renders the board one text row per board row, with each
// occupied cell shown as its attribute tuple.
func (b *Board) ToDisplayText() string {
	return b.toText(cellWidth, false)
}

// ToCompactText renders the board with four-letter piece codes.
func (b *Board) ToCompactText() string {
	return b.toText(compactCellWidth, true)
}

// PieceListText renders a 1-based numbered listing of pieces, one per line.
func PieceListText(pieces []piece.Piece) string {
	caser := cases.Title(language.English)
	var sb strings.Builder
	for i, p := range pieces {
		sb.WriteString(fmt.Sprintf("%2d: %s\n", i+1, caser.String(p.String())))
	}
	return sb.String()
}

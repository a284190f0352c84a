package board

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/quarto/piece"
)

// Size is the length of a board side.
const Size = 4

// NumCells is the number of cells on the board.
const NumCells = Size * Size

var (
	ErrOutOfBounds  = errors.New("coordinates out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
)

// A Coord is a 0-based (row, column) position on the board.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row+1, c.Col+1)
}

// InBounds reports whether c lies on the board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// A cell is either empty or holds exactly one piece. Once filled it never
// changes.
type cell struct {
	piece    piece.Piece
	occupied bool
}

// A Board is the 4x4 Quarto grid.
type Board struct {
	cells     [Size][Size]cell
	numPieces int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// CanPlace validates a placement at (row, col) without touching the board.
func (b *Board) CanPlace(row, col int) error {
	c := Coord{row, col}
	if !c.InBounds() {
		return fmt.Errorf("%w: %d, %d", ErrOutOfBounds, row, col)
	}
	if b.cells[row][col].occupied {
		return fmt.Errorf("%w: %v", ErrCellOccupied, c)
	}
	return nil
}

// Place puts p at (row, col). A rejected placement leaves the board as it
// was.
func (b *Board) Place(p piece.Piece, row, col int) error {
	if err := b.CanPlace(row, col); err != nil {
		return err
	}
	b.cells[row][col] = cell{piece: p, occupied: true}
	b.numPieces++
	return nil
}

// Get returns the piece at (row, col), if any. Out of bounds coordinates
// are reported as empty.
func (b *Board) Get(row, col int) (piece.Piece, bool) {
	if !(Coord{row, col}).InBounds() {
		return piece.Piece{}, false
	}
	c := b.cells[row][col]
	return c.piece, c.occupied
}

// IsEmptyAt reports whether (row, col) is a free cell on the board.
func (b *Board) IsEmptyAt(row, col int) bool {
	return b.CanPlace(row, col) == nil
}

func (b *Board) NumPieces() int {
	return b.numPieces
}

func (b *Board) IsFull() bool {
	return b.numPieces == NumCells
}

// Coords returns every cell on the board in row-major order.
func Coords() []Coord {
	coords := make([]Coord, 0, NumCells)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			coords = append(coords, Coord{r, c})
		}
	}
	return coords
}

// EmptyCells returns the free cells in row-major order.
func (b *Board) EmptyCells() []Coord {
	return lo.Filter(Coords(), func(c Coord, _ int) bool {
		return !b.cells[c.Row][c.Col].occupied
	})
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

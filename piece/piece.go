// Package piece contains the sixteen Quarto pieces and the pool they are
// drawn from during a round.
package piece

import (
	"errors"
	"fmt"
	"strings"
)

// A Dimension is one of the four binary attributes every piece carries.
type Dimension uint8

const (
	Color Dimension = iota
	Shape
	Height
	Density
)

// NumDimensions is the number of attribute dimensions.
const NumDimensions = 4

// NumPieces is the number of distinct pieces, 2^NumDimensions.
const NumPieces = 1 << NumDimensions

var dimensionNames = [NumDimensions]string{"color", "shape", "height", "density"}

func (d Dimension) String() string {
	if int(d) < len(dimensionNames) {
		return dimensionNames[d]
	}
	return "unknown"
}

// Dimensions returns all attribute dimensions in order.
func Dimensions() []Dimension {
	return []Dimension{Color, Shape, Height, Density}
}

type (
	ColorValue   uint8
	ShapeValue   uint8
	HeightValue  uint8
	DensityValue uint8
)

const (
	White ColorValue = iota
	Black
)

const (
	Round ShapeValue = iota
	Square
)

const (
	Tall HeightValue = iota
	Short
)

const (
	Solid DensityValue = iota
	Hollow
)

// attribute names, indexed by dimension and then by value (0 or 1).
var valueNames = [NumDimensions][2]string{
	{"white", "black"},
	{"round", "square"},
	{"tall", "short"},
	{"solid", "hollow"},
}

var valueCodes = [NumDimensions][2]byte{
	{'W', 'B'},
	{'R', 'Q'},
	{'T', 'S'},
	{'O', 'H'},
}

var ErrBadPieceCode = errors.New("bad piece code")

// A Piece is an immutable Quarto piece. The zero value is the white, round,
// tall, solid piece. Pieces are comparable with ==.
type Piece struct {
	Color   ColorValue
	Shape   ShapeValue
	Height  HeightValue
	Density DensityValue
}

// New creates a piece from its four attribute values.
func New(c ColorValue, s ShapeValue, h HeightValue, d DensityValue) Piece {
	return Piece{Color: c, Shape: s, Height: h, Density: d}
}

// Attribute returns the value of the piece along dimension d as a bit.
func (p Piece) Attribute(d Dimension) uint8 {
	switch d {
	case Color:
		return uint8(p.Color)
	case Shape:
		return uint8(p.Shape)
	case Height:
		return uint8(p.Height)
	case Density:
		return uint8(p.Density)
	}
	panic(fmt.Sprintf("unknown dimension %d", d))
}

// Bits packs the four attributes into the low nibble; each piece has a
// unique value in [0, 16).
func (p Piece) Bits() uint8 {
	var b uint8
	for _, d := range Dimensions() {
		b |= p.Attribute(d) << d
	}
	return b
}

func fromBits(b uint8) Piece {
	return Piece{
		Color:   ColorValue(b & 1),
		Shape:   ShapeValue((b >> Shape) & 1),
		Height:  HeightValue((b >> Height) & 1),
		Density: DensityValue((b >> Density) & 1),
	}
}

// String returns the attribute tuple, e.g. "white round tall solid".
func (p Piece) String() string {
	parts := make([]string, NumDimensions)
	for _, d := range Dimensions() {
		parts[d] = valueNames[d][p.Attribute(d)]
	}
	return strings.Join(parts, " ")
}

// Code returns a compact four-letter code such as "WRTO". Color is W/B,
// shape R(ound)/Q(square), height T/S, density O (solid)/H (hollow).
func (p Piece) Code() string {
	var sb strings.Builder
	for _, d := range Dimensions() {
		sb.WriteByte(valueCodes[d][p.Attribute(d)])
	}
	return sb.String()
}

// ParsePiece is the inverse of Code. It is case-insensitive.
func ParsePiece(code string) (Piece, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != NumDimensions {
		return Piece{}, fmt.Errorf("%w: %q", ErrBadPieceCode, code)
	}
	var b uint8
	for _, d := range Dimensions() {
		switch code[d] {
		case valueCodes[d][0]:
		case valueCodes[d][1]:
			b |= 1 << d
		default:
			return Piece{}, fmt.Errorf("%w: %q has bad %v", ErrBadPieceCode, code, d)
		}
	}
	return fromBits(b), nil
}

// All returns the sixteen distinct pieces, the Cartesian product of the
// attribute domains. The order carries no meaning.
func All() []Piece {
	pieces := make([]Piece, NumPieces)
	for b := 0; b < NumPieces; b++ {
		pieces[b] = fromBits(uint8(b))
	}
	return pieces
}

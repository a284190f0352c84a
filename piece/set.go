package piece

import (
	"encoding/binary"
	"errors"
	"fmt"

	"lukechampine.com/frand"
)

var ErrOutOfRange = errors.New("piece index out of range")

// Source is the randomness a Set and the automated player need. Both
// *frand.RNG and *math/rand.Rand satisfy it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a generator seeded from the system entropy source.
func NewSource() Source {
	return frand.New()
}

// NewSeededSource returns a deterministic generator; the same seed always
// produces the same sequence.
func NewSeededSource(seed uint64) Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// A Set is the pool of pieces that have not been handed out yet this round.
type Set struct {
	pieces []Piece
}

// NewSet returns all sixteen pieces in an order chosen by src. A nil src
// leaves them in the order All returns.
func NewSet(src Source) *Set {
	pieces := All()
	if src != nil {
		src.Shuffle(len(pieces), func(i, j int) {
			pieces[i], pieces[j] = pieces[j], pieces[i]
		})
	}
	return &Set{pieces: pieces}
}

// Draw removes and returns the piece at idx.
func (s *Set) Draw(idx int) (Piece, error) {
	if idx < 0 || idx >= len(s.pieces) {
		return Piece{}, fmt.Errorf("%w: tried to draw %d, set has %d",
			ErrOutOfRange, idx, len(s.pieces))
	}
	p := s.pieces[idx]
	// Keep the remaining order stable; players see a numbered listing.
	s.pieces = append(s.pieces[:idx], s.pieces[idx+1:]...)
	return p, nil
}

func (s *Set) Len() int {
	return len(s.pieces)
}

func (s *Set) IsEmpty() bool {
	return len(s.pieces) == 0
}

// Pieces returns a copy of the undrawn pieces in their current order.
func (s *Set) Pieces() []Piece {
	ret := make([]Piece, len(s.pieces))
	copy(ret, s.pieces)
	return ret
}

package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/quarto/board"
	"github.com/domino14/quarto/piece"
)

// simplePlayer always hands over the first available piece and places on
// the first empty cell.
type simplePlayer struct {
	name        string
	selectCalls int
	placeCalls  int
}

func (p *simplePlayer) Name() string { return p.name }

func (p *simplePlayer) SelectPiece(ctx context.Context, available []piece.Piece) (int, error) {
	p.selectCalls++
	return 0, nil
}

func (p *simplePlayer) PlacePiece(ctx context.Context, b *board.Board, pc piece.Piece) (int, int, error) {
	p.placeCalls++
	c := b.EmptyCells()[0]
	return c.Row, c.Col, nil
}

// plannedMove is a piece and where it goes.
type plannedMove struct {
	bits uint8
	cell board.Coord
}

// planPlayer follows a plan shared with its opponent.
type planPlayer struct {
	name string
	plan []plannedMove
	next *int
}

func (p *planPlayer) Name() string { return p.name }

func (p *planPlayer) SelectPiece(ctx context.Context, available []piece.Piece) (int, error) {
	want := piece.All()[p.plan[*p.next].bits]
	for i, a := range available {
		if a == want {
			return i, nil
		}
	}
	return -1, errors.New("planned piece is gone")
}

func (p *planPlayer) PlacePiece(ctx context.Context, b *board.Board, pc piece.Piece) (int, int, error) {
	c := p.plan[*p.next].cell
	*p.next++
	return c.Row, c.Col, nil
}

func planPlayers(plan []plannedMove) [2]Player {
	next := 0
	return [2]Player{
		&planPlayer{name: "p1", plan: plan, next: &next},
		&planPlayer{name: "p2", plan: plan, next: &next},
	}
}

// A full board with no quarto anywhere, as piece bit patterns.
var drawnBoard = [board.Size][board.Size]uint8{
	{2, 3, 6, 9},
	{0, 15, 1, 5},
	{10, 4, 11, 14},
	{7, 12, 8, 13},
}

// A full board whose only quarto is the diagonal through the last cell,
// (4, 4). All four diagonal pieces are square.
var lastCellWinBoard = [board.Size][board.Size]uint8{
	{15, 14, 9, 3},
	{4, 2, 11, 5},
	{1, 13, 6, 12},
	{8, 0, 10, 7},
}

// rowMajorPlan fills the board row by row with the given pieces.
func rowMajorPlan(layout [board.Size][board.Size]uint8) []plannedMove {
	plan := []plannedMove{}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			plan = append(plan, plannedMove{layout[r][c], board.Coord{Row: r, Col: c}})
		}
	}
	return plan
}

func drawPlan() []plannedMove {
	return rowMajorPlan(drawnBoard)
}

func TestRoundAlternatesPlayers(t *testing.T) {
	is := is.New(t)
	p1 := &simplePlayer{name: "p1"}
	p2 := &simplePlayer{name: "p2"}
	r := NewRound([2]Player{p1, p2}, 0, piece.NewSet(nil))

	events := []Event{}
	r.SetListener(func(_ *Round, e Event) { events = append(events, e) })

	is.Equal(r.Phase(), AwaitingSelection)
	is.Equal(r.ActivePlayer(), 0)
	is.Equal(r.Selector(), 1)

	res, err := r.Play(context.Background())
	is.NoErr(err)

	// Unshuffled pieces 0..3 fill row 1 first-empty style; they are all
	// tall, so the fourth placement wins. Placers go 0,1,0,1.
	is.True(!res.Drawn)
	is.Equal(res.Winner, 1)
	is.Equal(res.Turns, 4)
	is.Equal(res.Line.Kind, board.RowLine)
	is.Equal(r.Phase(), RoundWon)

	is.Equal(len(events), 8)
	for i := 0; i < len(events); i += 2 {
		sel, pl := events[i], events[i+1]
		is.Equal(sel.Type, PieceSelected)
		is.Equal(pl.Type, PiecePlaced)
		is.Equal(sel.Piece, pl.Piece)
		// whoever selects does not place
		is.True(sel.Player != pl.Player)
		if i > 0 {
			is.True(pl.Player != events[i-1].Player)
			is.True(sel.Player != events[i-2].Player)
		}
	}
	is.Equal(p1.selectCalls, 2)
	is.Equal(p2.selectCalls, 2)
	is.Equal(p1.placeCalls, 2)
	is.Equal(p2.placeCalls, 2)

	hist := r.History()
	is.Equal(len(hist), 4)
	is.Equal(hist[0].Placer, 0)
	is.Equal(hist[0].Selector, 1)
	is.Equal(hist[3].ShortDescription(), piece.All()[3].Code()+"@r1c4")
}

func TestRoundStepPhases(t *testing.T) {
	is := is.New(t)
	r := NewRound([2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}}, 1,
		piece.NewSet(nil))
	ctx := context.Background()

	_, ok := r.InHand()
	is.True(!ok)
	is.NoErr(r.Step(ctx))
	is.Equal(r.Phase(), AwaitingPlacement)
	inHand, ok := r.InHand()
	is.True(ok)
	is.Equal(inHand, piece.All()[0])
	is.Equal(r.Pieces().Len(), piece.NumPieces-1)
	is.Equal(r.Board().NumPieces(), 0)

	is.NoErr(r.Step(ctx))
	is.Equal(r.Phase(), AwaitingSelection)
	is.Equal(r.Board().NumPieces(), 1)
	is.Equal(r.ActivePlayer(), 0)

	_, over := r.Result()
	is.True(!over)
}

func TestRoundDrawnOnFullBoard(t *testing.T) {
	is := is.New(t)
	r := NewRound(planPlayers(drawPlan()), 0, piece.NewSet(piece.NewSeededSource(9)))
	ctx := context.Background()
	for !r.Over() {
		is.NoErr(r.Step(ctx))
		is.True(!r.Board().HasQuarto())
	}
	res, ok := r.Result()
	is.True(ok)
	is.True(res.Drawn)
	is.Equal(res.Winner, -1)
	is.Equal(res.Turns, board.NumCells)
	is.True(r.Board().IsFull())
	is.True(r.Pieces().IsEmpty())
	is.Equal(r.Phase(), RoundDrawn)
	is.True(errors.Is(r.Step(ctx), ErrRoundOver))
}

func TestRoundWonOnLastPlacement(t *testing.T) {
	is := is.New(t)
	r := NewRound(planPlayers(rowMajorPlan(lastCellWinBoard)), 0,
		piece.NewSet(piece.NewSeededSource(11)))
	ctx := context.Background()
	for r.Board().NumPieces() < board.NumCells-1 {
		is.NoErr(r.Step(ctx))
		is.True(!r.Board().HasQuarto())
	}
	res, err := r.Play(ctx)
	is.NoErr(err)
	is.True(r.Board().IsFull())
	is.True(!res.Drawn)
	// placers alternate from seat 0, so seat 1 places the 16th piece
	is.Equal(res.Winner, 1)
	is.Equal(res.Winner, r.History()[board.NumCells-1].Placer)
	is.Equal(res.Turns, board.NumCells)
	is.Equal(res.Line.Kind, board.DiagonalLine)
	is.Equal(r.Phase(), RoundWon)
}

type badPlayer struct {
	simplePlayer
	selectIdx int
	cell      board.Coord
	err       error
}

func (p *badPlayer) SelectPiece(ctx context.Context, available []piece.Piece) (int, error) {
	return p.selectIdx, p.err
}

func (p *badPlayer) PlacePiece(ctx context.Context, b *board.Board, pc piece.Piece) (int, int, error) {
	return p.cell.Row, p.cell.Col, p.err
}

func TestRoundPlayerDefects(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	// selector hands over an index past the end of the set
	bad := &badPlayer{simplePlayer: simplePlayer{name: "bad"}, selectIdx: 99}
	r := NewRound([2]Player{&simplePlayer{name: "ok"}, bad}, 0, piece.NewSet(nil))
	err := r.Step(ctx)
	is.True(errors.Is(err, piece.ErrOutOfRange))
	is.Equal(r.Phase(), AwaitingSelection)

	// placer answers off the board
	bad = &badPlayer{simplePlayer: simplePlayer{name: "bad"}, cell: board.Coord{Row: 4, Col: 0}}
	r = NewRound([2]Player{bad, &simplePlayer{name: "ok"}}, 0, piece.NewSet(nil))
	is.NoErr(r.Step(ctx))
	err = r.Step(ctx)
	is.True(errors.Is(err, board.ErrOutOfBounds))
	is.Equal(r.Board().NumPieces(), 0)
	is.Equal(r.Phase(), AwaitingPlacement)

	// input closed
	bad = &badPlayer{simplePlayer: simplePlayer{name: "bad"}, err: io.EOF}
	r = NewRound([2]Player{&simplePlayer{name: "ok"}, bad}, 0, piece.NewSet(nil))
	_, err = r.Play(ctx)
	is.Equal(err, io.EOF)
}

func TestRoundCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRound([2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}}, 0,
		piece.NewSet(nil))
	_, err := r.Play(ctx)
	is.True(errors.Is(err, context.Canceled))
}

func TestPlayersCannotTouchBoard(t *testing.T) {
	is := is.New(t)
	sneaky := &sneakyPlayer{}
	r := NewRound([2]Player{sneaky, &simplePlayer{name: "b"}}, 0, piece.NewSet(nil))
	ctx := context.Background()
	is.NoErr(r.Step(ctx))
	is.NoErr(r.Step(ctx))
	// only the real placement landed
	is.Equal(r.Board().NumPieces(), 1)
}

type sneakyPlayer struct{ simplePlayer }

func (p *sneakyPlayer) PlacePiece(ctx context.Context, b *board.Board, pc piece.Piece) (int, int, error) {
	_ = b.Place(pc, 3, 3)
	return 0, 0, nil
}

func TestHumanWinsMatchAfterDraws(t *testing.T) {
	is := is.New(t)
	m := NewMatch([2]Player{&simplePlayer{name: "Human"}, &simplePlayer{name: "Computer"}})
	is.Equal(m.Threshold(), DefaultWinThreshold)

	rounds := []Result{
		{Winner: 0},
		{Drawn: true, Winner: -1},
		{Winner: 1},
		{Drawn: true, Winner: -1},
		{Drawn: true, Winner: -1},
		{Winner: 0},
		{Winner: 1},
	}
	for _, r := range rounds {
		m.Record(r)
		is.True(!m.Over())
	}
	m.Record(Result{Winner: 0})
	is.True(m.Over())

	res := m.Result()
	is.Equal(res.Winner, 0)
	is.Equal(res.String(), "Human wins the game")
	assert.Equal(t, Scores{Wins: [2]int{3, 2}, Draws: 3}, res.Scores)
	is.Equal(res.Scores.Rounds(), 8)
	is.Equal(res.ScoreLine(), "Human: 3, Computer: 2, Draws: 3")
}

func TestDrawsNeverReachThreshold(t *testing.T) {
	is := is.New(t)
	m := NewMatch([2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}})
	for i := 0; i < 10; i++ {
		m.Record(Result{Drawn: true, Winner: -1})
	}
	is.True(!m.Over())
	is.Equal(m.Result().String(), "The game is a draw")
}

func TestMatchPlaysToThreshold(t *testing.T) {
	is := is.New(t)
	roundsSeen := 0
	m := NewMatch(
		[2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}},
		WithSource(piece.NewSeededSource(11)),
		WithContinue(func(ctx context.Context, s Scores) (bool, error) {
			return true, nil
		}),
		WithRoundEnd(func(r *Round, res Result, s Scores) {
			roundsSeen++
			is.True(r.Over())
			is.Equal(s.Rounds(), roundsSeen)
		}),
	)
	res, err := m.Play(context.Background())
	is.NoErr(err)
	is.True(m.Over())
	is.True(res.Winner >= 0)
	is.Equal(res.Scores.Wins[res.Winner], DefaultWinThreshold)
	is.True(res.Scores.Wins[1-res.Winner] < DefaultWinThreshold)
	is.Equal(res.Scores.Rounds(), roundsSeen)
}

func TestMatchIgnoresNonPositiveThreshold(t *testing.T) {
	for _, n := range []int{0, -2} {
		is := is.New(t)
		m := NewMatch(
			[2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}},
			WithSource(piece.NewSeededSource(21)),
			WithWinThreshold(n),
			WithContinue(func(ctx context.Context, s Scores) (bool, error) {
				return true, nil
			}),
		)
		is.Equal(m.Threshold(), DefaultWinThreshold)
		is.True(!m.Over())

		res, err := m.Play(context.Background())
		is.NoErr(err)
		is.True(res.Scores.Rounds() >= DefaultWinThreshold)
		is.Equal(res.Scores.Wins[res.Winner], DefaultWinThreshold)
	}
}

func TestMatchStopsWhenAsked(t *testing.T) {
	is := is.New(t)
	asked := 0
	m := NewMatch(
		[2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}},
		WithSource(piece.NewSeededSource(5)),
		WithWinThreshold(2),
		WithContinue(func(ctx context.Context, s Scores) (bool, error) {
			asked++
			return false, nil
		}),
	)
	res, err := m.Play(context.Background())
	is.NoErr(err)
	is.Equal(asked, 1)
	is.Equal(res.Scores.Rounds(), 1)
}

func TestMatchEventListener(t *testing.T) {
	is := is.New(t)
	events := 0
	m := NewMatch(
		[2]Player{&simplePlayer{name: "a"}, &simplePlayer{name: "b"}},
		WithSource(piece.NewSeededSource(1)),
		WithEventListener(func(r *Round, e Event) { events++ }),
	)
	res, err := m.PlayRound(context.Background())
	is.NoErr(err)
	is.Equal(events, 2*res.Turns)
}

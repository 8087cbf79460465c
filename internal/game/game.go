// Package game drives turn sequencing and termination detection on
// top of the board engine. External layers (CLI, network, rendering)
// interact with a position only through Game.
package game

import (
	"fmt"

	"github.com/luckwei/chess/internal/board"
)

// Status describes where a game stands.
type Status int

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	DrawFiftyMove
	DrawInsufficientMaterial
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "draw by fifty-move rule"
	case DrawInsufficientMaterial:
		return "draw by insufficient material"
	default:
		return "unknown"
	}
}

// Terminal returns true for statuses that end the game.
func (s Status) Terminal() bool {
	return s != InProgress
}

// Game owns a Position exclusively and sequences moves on it. It is
// not safe for concurrent use; callers evaluating positions in
// parallel must work on independent copies.
type Game struct {
	pos      *board.Position
	startFEN string
	moves    []board.Move
	status   Status
	mated    board.Color
}

// New starts a game from the standard initial position.
func New() *Game {
	g := &Game{
		pos:      board.NewPosition(),
		startFEN: board.StartFEN,
		mated:    board.NoColor,
	}
	g.updateStatus()
	return g
}

// NewFromFEN starts a game from an arbitrary position descriptor.
func NewFromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("unplayable position: %w", err)
	}
	g := &Game{
		pos:      pos,
		startFEN: pos.ToFEN(),
		mated:    board.NoColor,
	}
	g.updateStatus()
	return g, nil
}

// Status returns the current game status.
func (g *Game) Status() Status {
	return g.status
}

// Mated returns the checkmated color, or NoColor when the status is
// not Checkmate.
func (g *Game) Mated() board.Color {
	return g.mated
}

// Winner returns the winning color, or NoColor for ongoing or drawn
// games.
func (g *Game) Winner() board.Color {
	if g.status != Checkmate {
		return board.NoColor
	}
	return g.mated.Other()
}

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.pos.SideToMove
}

// InCheck returns true if the side to move is in check.
func (g *Game) InCheck() bool {
	return g.pos.InCheck()
}

// LegalMoves returns the legal moves for the side to move. The slice
// is the caller's to keep.
func (g *Game) LegalMoves() []board.Move {
	ml := g.pos.GenerateLegalMoves()
	out := make([]board.Move, ml.Len())
	copy(out, ml.Slice())
	return out
}

// LegalMovesFor returns the legal moves the given color would have if
// it were on move.
func (g *Game) LegalMovesFor(c board.Color) []board.Move {
	ml := g.pos.GenerateLegalMovesFor(c)
	out := make([]board.Move, ml.Len())
	copy(out, ml.Slice())
	return out
}

// ApplyMove plays a move for the side to move. It returns ErrGameOver
// when the game already ended and ErrIllegalMove when the move is not
// in the legal move set; in both cases the position is left untouched.
func (g *Game) ApplyMove(m board.Move) error {
	if g.status.Terminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}
	if !g.pos.GenerateLegalMoves().Contains(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	g.pos.MakeMove(m)
	g.moves = append(g.moves, m)
	g.updateStatus()
	return nil
}

// ApplyUCI parses a move in UCI notation and plays it.
func (g *Game) ApplyUCI(s string) error {
	m, err := board.ParseMove(s, g.pos)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return g.ApplyMove(m)
}

// ApplySAN parses a move in Standard Algebraic Notation and plays it.
func (g *Game) ApplySAN(s string) error {
	m, err := board.ParseSAN(s, g.pos)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return g.ApplyMove(m)
}

// Snapshot returns a read-only copy of the square occupancy for
// rendering layers.
func (g *Game) Snapshot() [64]board.Piece {
	return g.pos.Squares
}

// FEN exports the current position.
func (g *Game) FEN() string {
	return g.pos.ToFEN()
}

// StartFEN returns the descriptor the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	out := make([]board.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Board returns a copy of the underlying position, for display code
// that wants the full state rather than bare occupancy.
func (g *Game) Board() *board.Position {
	return g.pos.Copy()
}

// updateStatus recomputes the status after every applied move:
// no legal moves means checkmate or stalemate depending on check,
// then the draw rules are consulted.
func (g *Game) updateStatus() {
	switch {
	case !g.pos.HasLegalMoves():
		if g.pos.InCheck() {
			g.status = Checkmate
			g.mated = g.pos.SideToMove
		} else {
			g.status = Stalemate
		}
	case g.pos.HalfMoveClock >= 100:
		g.status = DrawFiftyMove
	case g.pos.IsInsufficientMaterial():
		g.status = DrawInsufficientMaterial
	default:
		g.status = InProgress
	}
}

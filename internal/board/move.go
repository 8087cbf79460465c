package board

import "fmt"

// MoveFlag marks the bookkeeping a move carries beyond the piece
// displacement itself.
type MoveFlag uint8

const (
	FlagNone MoveFlag = iota
	FlagEnPassantTargetSet // double pawn push, sets the en passant target
	FlagEnPassantCapture
	FlagCastleKingside
	FlagCastleQueenside
	FlagLoseKingRights // non-castling king move
	FlagLoseRookRights // rook move
	FlagPromotion
)

// String returns a short name for the flag.
func (f MoveFlag) String() string {
	switch f {
	case FlagEnPassantTargetSet:
		return "ep-target"
	case FlagEnPassantCapture:
		return "ep-capture"
	case FlagCastleKingside:
		return "castle-kingside"
	case FlagCastleQueenside:
		return "castle-queenside"
	case FlagLoseKingRights:
		return "king-moved"
	case FlagLoseRookRights:
		return "rook-moved"
	case FlagPromotion:
		return "promotion"
	default:
		return "none"
	}
}

// Move is an origin/destination pair plus the flag describing any
// special handling. Promo is the chosen piece for FlagPromotion moves
// and NoPieceType otherwise, so Move values compare with ==.
type Move struct {
	From, To Square
	Flag     MoveFlag
	Promo    PieceType
}

// NoMove represents an invalid or null move.
var NoMove = Move{}

// NewMove creates a plain move with no flag.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promo: NoPieceType}
}

// NewFlaggedMove creates a move carrying a non-promotion flag.
func NewFlaggedMove(from, to Square, flag MoveFlag) Move {
	return Move{From: from, To: to, Flag: flag, Promo: NoPieceType}
}

// NewPromotion creates a promotion move for the chosen piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move{From: from, To: to, Flag: FlagPromotion, Promo: promo}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag == FlagPromotion
}

// IsCastling returns true if this is a castling move (either side).
func (m Move) IsCastling() bool {
	return m.Flag == FlagCastleKingside || m.Flag == FlagCastleQueenside
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag == FlagEnPassantCapture
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To)
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From.String() + m.To.String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promo-Knight])
	}

	return s
}

// ParseMove parses a UCI format move string against a position,
// recovering the flag the move generator would have attached. A pawn
// reaching the back rank without a promotion suffix promotes to a
// queen.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	// Promotion suffix
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	switch pt {
	case Pawn:
		if to.Rank() == piece.Color().Other().BackRank() {
			return NewPromotion(from, to, Queen), nil
		}
		if to == pos.EnPassant && from.File() != to.File() {
			return NewFlaggedMove(from, to, FlagEnPassantCapture), nil
		}
		if abs(to.Rank()-from.Rank()) == 2 {
			return NewFlaggedMove(from, to, FlagEnPassantTargetSet), nil
		}
	case Rook:
		return NewFlaggedMove(from, to, FlagLoseRookRights), nil
	case King:
		if abs(to.File()-from.File()) == 2 {
			if to.File() > from.File() {
				return NewFlaggedMove(from, to, FlagCastleKingside), nil
			}
			return NewFlaggedMove(from, to, FlagCastleQueenside), nil
		}
		return NewFlaggedMove(from, to, FlagLoseKingRights), nil
	}

	return NewMove(from, to), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

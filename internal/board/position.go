package board

import "fmt"

// CastlingRights represents the available castling options.
// Rights only ever decrease once a position is constructed; MakeMove
// clears bits and nothing re-sets them.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// rightsOf returns both castling rights bits belonging to a color.
func rightsOf(c Color) CastlingRights {
	if c == White {
		return WhiteKingSideCastle | WhiteQueenSideCastle
	}
	return BlackKingSideCastle | BlackQueenSideCastle
}

// Position represents a complete chess position.
// The board is a flat array indexed rank*8+file; every square is
// always present, NoPiece where unoccupied.
type Position struct {
	Squares [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square for en passant, NoSquare if none
	HalfMoveClock  int    // moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // full move counter, starts at 1
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Squares[sq] == NoPiece
}

// setPiece places a piece on a square.
func (p *Position) setPiece(piece Piece, sq Square) {
	p.Squares[sq] = piece
}

// KingSquare returns the square of the given color's king, or
// NoSquare if the king is absent.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if p.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for sq := A1; sq <= H8; sq++ {
		p.Squares[sq] = NoPiece
	}
}

// MakeMove applies a move to the position in place. The move must be
// pseudo-legal for the side to move; legality filtering happens in
// GenerateLegalMoves. Exactly one of the following happens per flag:
// en passant removes the bypassed pawn, castling displaces the rook,
// promotion replaces the pawn, rights flags clear castling bits. The
// en passant target is cleared unless this move sets a new one, the
// clocks advance per the standard counting rules, and the side to
// move flips.
func (p *Position) MakeMove(m Move) {
	us := p.SideToMove
	piece := p.Squares[m.From]
	captured := p.Squares[m.To]

	p.Squares[m.From] = NoPiece
	p.Squares[m.To] = piece

	epCapture := false
	switch m.Flag {
	case FlagEnPassantCapture:
		// The captured pawn sits beside the origin, on the
		// destination file.
		p.Squares[NewSquare(m.To.File(), m.From.Rank())] = NoPiece
		epCapture = true
	case FlagCastleKingside:
		rank := us.BackRank()
		p.Squares[NewSquare(5, rank)] = p.Squares[NewSquare(7, rank)]
		p.Squares[NewSquare(7, rank)] = NoPiece
		p.CastlingRights &^= rightsOf(us)
	case FlagCastleQueenside:
		rank := us.BackRank()
		p.Squares[NewSquare(3, rank)] = p.Squares[NewSquare(0, rank)]
		p.Squares[NewSquare(0, rank)] = NoPiece
		p.CastlingRights &^= rightsOf(us)
	case FlagLoseKingRights:
		p.CastlingRights &^= rightsOf(us)
	case FlagPromotion:
		p.Squares[m.To] = NewPiece(m.Promo, us)
	}

	// Any move touching a rook home corner clears the matching right.
	// Covers FlagLoseRookRights origins and rook captures alike.
	if m.From == A1 || m.To == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	// En passant target lives for exactly one half-move.
	if m.Flag == FlagEnPassantTargetSet {
		p.EnPassant = Square((int(m.From) + int(m.To)) / 2)
	} else {
		p.EnPassant = NoSquare
	}

	if piece.Type() == Pawn || captured != NoPiece || epCapture {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = us.Other()
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}

// Validate checks if the position is playable.
func (p *Position) Validate() error {
	var whiteKings, blackKings int
	for sq := A1; sq <= H8; sq++ {
		switch p.Squares[sq] {
		case WhiteKing:
			whiteKings++
		case BlackKing:
			blackKings++
		case WhitePawn, BlackPawn:
			if r := sq.Rank(); r == 0 || r == 7 {
				return fmt.Errorf("pawn on back rank at %s", sq)
			}
		}
	}
	if whiteKings != 1 {
		return fmt.Errorf("white must have exactly one king, has %d", whiteKings)
	}
	if blackKings != 1 {
		return fmt.Errorf("black must have exactly one king, has %d", blackKings)
	}
	return nil
}

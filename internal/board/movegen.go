package board

// moveGenerator emits the pseudo-legal moves of the piece standing on
// from. Pseudo-legal moves obey piece movement rules but may leave the
// mover's own king attacked.
type moveGenerator func(p *Position, from Square, ml *MoveList)

// moveGenerators dispatches by PieceType. A tagged-union lookup table
// instead of interface dispatch keeps Piece a plain value type.
var moveGenerators = [7]moveGenerator{
	Pawn:        generatePawnMoves,
	Knight:      generateKnightMoves,
	Bishop:      generateBishopMoves,
	Rook:        generateRookMoves,
	Queen:       generateQueenMoves,
	King:        generateKingMoves,
	NoPieceType: generateNoMoves,
}

var (
	knightDeltas = []Delta{{2, 1}, {2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {-2, 1}, {-2, -1}}
	kingDeltas   = []Delta{{1, -1}, {1, 0}, {1, 1}, {0, -1}, {0, 1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs     = []Delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs   = []Delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs    = append(append([]Delta{}, rookDirs...), bishopDirs...)
)

// GeneratePseudoLegalMoves generates all pseudo-legal moves for the
// side to move, scanning origin squares in row-major order so the
// output is deterministic for identical input.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	return p.GeneratePseudoLegalMovesFor(p.SideToMove)
}

// GeneratePseudoLegalMovesFor generates all pseudo-legal moves for the
// given color.
func (p *Position) GeneratePseudoLegalMovesFor(c Color) *MoveList {
	ml := NewMoveList()
	for sq := A1; sq <= H8; sq++ {
		piece := p.Squares[sq]
		if piece.Color() != c {
			continue
		}
		moveGenerators[piece.Type()](p, sq, ml)
	}
	return ml
}

// GenerateLegalMoves generates all legal moves for the side to move.
// Each pseudo-legal move is applied to a scratch copy of the position
// and discarded if it leaves the mover's king attacked. Castling moves
// are additionally rejected when the king is currently in check or
// passes through an attacked square; the landing square is covered by
// the simulation.
func (p *Position) GenerateLegalMoves() *MoveList {
	us := p.SideToMove
	them := us.Other()
	pseudo := p.GeneratePseudoLegalMoves()
	legal := NewMoveList()

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)

		if m.IsCastling() {
			if p.InCheck() {
				continue
			}
			var passed Square
			if m.Flag == FlagCastleKingside {
				passed = NewSquare(5, us.BackRank())
			} else {
				passed = NewSquare(3, us.BackRank())
			}
			if p.IsSquareAttacked(passed, them) {
				continue
			}
		}

		scratch := *p
		scratch.MakeMove(m)
		if scratch.IsSquareAttacked(scratch.KingSquare(us), them) {
			continue
		}
		legal.Add(m)
	}

	return legal
}

// GenerateLegalMovesFor generates all legal moves the given color
// would have if it were on move.
func (p *Position) GenerateLegalMovesFor(c Color) *MoveList {
	if c == p.SideToMove {
		return p.GenerateLegalMoves()
	}
	scratch := *p
	scratch.SideToMove = c
	scratch.EnPassant = NoSquare // the target belongs to the side on move
	return scratch.GenerateLegalMoves()
}

func generateNoMoves(*Position, Square, *MoveList) {}

// generatePawnMoves emits pushes, double pushes, diagonal captures,
// en passant captures and promotions.
func generatePawnMoves(p *Position, from Square, ml *MoveList) {
	us := p.Squares[from].Color()
	dir := us.Direction()
	promoRank := us.Other().BackRank()

	// Forward pushes, blocked by any occupancy.
	if to, ok := from.Offset(Delta{Rank: dir}); ok && p.IsEmpty(to) {
		if to.Rank() == promoRank {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to))
		}

		if from.Rank() == us.PawnRank() {
			if to2, ok := from.Offset(Delta{Rank: 2 * dir}); ok && p.IsEmpty(to2) {
				ml.Add(NewFlaggedMove(from, to2, FlagEnPassantTargetSet))
			}
		}
	}

	// Diagonal captures, only onto enemy pieces or the en passant target.
	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(Delta{Rank: dir, File: df})
		if !ok {
			continue
		}
		target := p.Squares[to]
		switch {
		case target != NoPiece && target.Color() == us.Other():
			if to.Rank() == promoRank {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to))
			}
		case target == NoPiece && to == p.EnPassant:
			ml.Add(NewFlaggedMove(from, to, FlagEnPassantCapture))
		}
	}
}

// addPromotions adds all four promotion moves, queen first.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func generateKnightMoves(p *Position, from Square, ml *MoveList) {
	us := p.Squares[from].Color()
	for _, to := range FilterInBounds(from, knightDeltas) {
		if p.Squares[to].Color() != us {
			ml.Add(NewMove(from, to))
		}
	}
}

func generateBishopMoves(p *Position, from Square, ml *MoveList) {
	p.slide(from, bishopDirs, FlagNone, ml)
}

func generateRookMoves(p *Position, from Square, ml *MoveList) {
	p.slide(from, rookDirs, FlagLoseRookRights, ml)
}

func generateQueenMoves(p *Position, from Square, ml *MoveList) {
	p.slide(from, queenDirs, FlagNone, ml)
}

// slide walks each direction until blocked. The first occupied square
// ends the ray: included as a capture when enemy, excluded when own.
func (p *Position) slide(from Square, dirs []Delta, flag MoveFlag, ml *MoveList) {
	us := p.Squares[from].Color()
	for _, d := range dirs {
		to := from
		for {
			next, ok := to.Offset(d)
			if !ok {
				break
			}
			to = next
			target := p.Squares[to]
			if target == NoPiece {
				ml.Add(NewFlaggedMove(from, to, flag))
				continue
			}
			if target.Color() != us {
				ml.Add(NewFlaggedMove(from, to, flag))
			}
			break
		}
	}
}

// generateKingMoves emits the adjacent squares plus castling
// candidates when the rights are intact and the path is unobstructed.
// Attack constraints on castling are enforced in GenerateLegalMoves.
func generateKingMoves(p *Position, from Square, ml *MoveList) {
	us := p.Squares[from].Color()
	for _, to := range FilterInBounds(from, kingDeltas) {
		if p.Squares[to].Color() != us {
			ml.Add(NewFlaggedMove(from, to, FlagLoseKingRights))
		}
	}

	rank := us.BackRank()
	if from != NewSquare(4, rank) {
		return
	}

	if p.CastlingRights.CanCastle(us, true) &&
		p.IsEmpty(NewSquare(5, rank)) && p.IsEmpty(NewSquare(6, rank)) {
		ml.Add(NewFlaggedMove(from, NewSquare(6, rank), FlagCastleKingside))
	}
	if p.CastlingRights.CanCastle(us, false) &&
		p.IsEmpty(NewSquare(1, rank)) && p.IsEmpty(NewSquare(2, rank)) && p.IsEmpty(NewSquare(3, rank)) {
		ml.Add(NewFlaggedMove(from, NewSquare(2, rank), FlagCastleQueenside))
	}
}

// IsSquareAttacked returns true if any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}

	// Pawns attack sq from the rank behind it, seen from by's side.
	pawn := NewPiece(Pawn, by)
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Offset(Delta{Rank: -by.Direction(), File: df}); ok && p.Squares[from] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightDeltas {
		if from, ok := sq.Offset(d); ok && p.Squares[from] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingDeltas {
		if from, ok := sq.Offset(d); ok && p.Squares[from] == king {
			return true
		}
	}

	rook := NewPiece(Rook, by)
	bishop := NewPiece(Bishop, by)
	queen := NewPiece(Queen, by)

	if p.rayHits(sq, rookDirs, rook, queen) {
		return true
	}
	return p.rayHits(sq, bishopDirs, bishop, queen)
}

// rayHits reports whether the first occupied square along any of the
// directions holds one of the two given pieces.
func (p *Position) rayHits(sq Square, dirs []Delta, a, b Piece) bool {
	for _, d := range dirs {
		to := sq
		for {
			next, ok := to.Offset(d)
			if !ok {
				break
			}
			to = next
			target := p.Squares[to]
			if target == NoPiece {
				continue
			}
			if target == a || target == b {
				return true
			}
			break
		}
	}
	return false
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.SideToMove), p.SideToMove.Other())
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial returns true if neither side can checkmate:
// bare kings, or king plus a single minor piece against a bare king.
func (p *Position) IsInsufficientMaterial() bool {
	var minors [2]int
	for sq := A1; sq <= H8; sq++ {
		piece := p.Squares[sq]
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight, Bishop:
			minors[piece.Color()]++
		}
	}

	if minors[White]+minors[Black] == 0 {
		return true
	}
	if minors[White] <= 1 && minors[Black] == 0 {
		return true
	}
	return minors[Black] <= 1 && minors[White] == 0
}

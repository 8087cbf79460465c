package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == NoPiece {
		return m.String() // fallback to UCI
	}

	if m.Flag == FlagCastleKingside {
		return "O-O" + checkSuffix(pos, m)
	}
	if m.Flag == FlagCastleQueenside {
		return "O-O-O" + checkSuffix(pos, m)
	}

	var sb strings.Builder
	pt := piece.Type()

	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(getDisambiguation(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promo])
	}

	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// checkSuffix returns "#", "+" or "" depending on what the move does
// to the opponent.
func checkSuffix(pos *Position, m Move) string {
	next := pos.Copy()
	next.MakeMove(m)
	if next.IsCheckmate() {
		return "#"
	}
	if next.InCheck() {
		return "+"
	}
	return ""
}

// getDisambiguation returns the disambiguation string needed for a move.
func getDisambiguation(pos *Position, m Move, pt PieceType) string {
	var candidates []Square

	allMoves := pos.GenerateLegalMoves()
	for i := 0; i < allMoves.Len(); i++ {
		other := allMoves.Get(i)
		if other.To != m.To || other.From == m.From {
			continue
		}
		if pos.PieceAt(other.From).Type() == pt {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string('a' + byte(m.From.File()))
	}
	if !sameRank {
		return string('1' + byte(m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN parses a SAN string and returns the matching legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	us := pos.SideToMove
	backRank := us.BackRank()

	if s == "O-O" || s == "0-0" {
		return findLegalMove(pos, NewFlaggedMove(NewSquare(4, backRank), NewSquare(6, backRank), FlagCastleKingside), orig)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findLegalMove(pos, NewFlaggedMove(NewSquare(4, backRank), NewSquare(2, backRank), FlagCastleQueenside), orig)
	}

	// Promotion suffix
	promoPiece := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		switch s[idx+1] {
		case 'N':
			promoPiece = Knight
		case 'B':
			promoPiece = Bishop
		case 'R':
			promoPiece = Rook
		case 'Q':
			promoPiece = Queen
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %s", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid SAN: %s", orig)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To != dest {
			continue
		}
		if pos.PieceAt(m.From).Type() != pt {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if promoPiece != NoPieceType {
			if !m.IsPromotion() || m.Promo != promoPiece {
				continue
			}
		} else if m.IsPromotion() && m.Promo != Queen {
			continue // bare SAN promotion defaults to queen
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches SAN: %s", orig)
}

// findLegalMove returns m if it is legal in pos.
func findLegalMove(pos *Position, m Move, san string) (Move, error) {
	if pos.GenerateLegalMoves().Contains(m) {
		return m, nil
	}
	return NoMove, fmt.Errorf("no legal move matches SAN: %s", san)
}

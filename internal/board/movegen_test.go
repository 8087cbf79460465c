package board

import "testing"

// perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		next := *p
		next.MakeMove(moves.Get(i))
		nodes += perft(&next, depth-1)
	}
	return nodes
}

func TestStartingPositionHasTwentyMoves(t *testing.T) {
	pos := NewPosition()
	if got := pos.GenerateLegalMoves().Len(); got != 20 {
		t.Errorf("legal moves from start = %d, want 20", got)
	}
}

func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipete tests the famous Kiwipete position with many edge cases.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftPosition3 tests en passant edge cases.
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestEnPassantHorizontalPin: the black pawn on e4 may not capture en
// passant on d3 because removing both pawns exposes the black king on
// a4 to the white rook on h4.
func TestEnPassantHorizontalPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).IsEnPassant() {
			t.Errorf("en passant move %v should be illegal (horizontal pin)", moves.Get(i))
		}
	}
	if got := moves.Len(); got != 6 {
		t.Errorf("legal moves = %d, want 6", got)
	}
}

func TestDoublePushSetsEnPassantTarget(t *testing.T) {
	pos := NewPosition()

	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Flag != FlagEnPassantTargetSet {
		t.Fatalf("e2e4 flag = %v, want %v", m.Flag, FlagEnPassantTargetSet)
	}
	pos.MakeMove(m)

	if pos.EnPassant != E3 {
		t.Errorf("en passant target = %v, want e3", pos.EnPassant)
	}
	if pos.SideToMove != Black {
		t.Errorf("side to move = %v, want Black", pos.SideToMove)
	}

	// A reply that is not a double push clears the target again.
	m, err = ParseMove("g8f6", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	pos.MakeMove(m)
	if pos.EnPassant != NoSquare {
		t.Errorf("en passant target = %v, want none", pos.EnPassant)
	}
}

func TestCastlingRejectedWhileInCheck(t *testing.T) {
	// White king on e1 is checked by the rook on e2. The kingside
	// right is intact and f1/g1 are empty, yet castling is illegal.
	pos, err := ParseFEN("4k3/8/8/8/8/8/4r3/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if !pos.InCheck() {
		t.Fatal("expected white to be in check")
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).IsCastling() {
			t.Errorf("castling move %v generated while in check", moves.Get(i))
		}
	}
}

func TestCastlingRejectedThroughAttackedSquare(t *testing.T) {
	// The rook on f2 covers f1, which the king would pass through.
	pos, err := ParseFEN("4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).IsCastling() {
			t.Errorf("castling move %v generated through attacked square", moves.Get(i))
		}
	}
}

func TestCastlingMovesRook(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	m, err := ParseMove("e1g1", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Flag != FlagCastleKingside {
		t.Fatalf("e1g1 flag = %v, want %v", m.Flag, FlagCastleKingside)
	}
	if !pos.GenerateLegalMoves().Contains(m) {
		t.Fatal("kingside castle not generated")
	}

	pos.MakeMove(m)
	if pos.PieceAt(G1) != WhiteKing {
		t.Errorf("piece at g1 = %v, want white king", pos.PieceAt(G1))
	}
	if pos.PieceAt(F1) != WhiteRook {
		t.Errorf("piece at f1 = %v, want white rook", pos.PieceAt(F1))
	}
	if pos.PieceAt(H1) != NoPiece {
		t.Errorf("h1 not vacated")
	}
	if pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false) {
		t.Error("white castling rights not cleared")
	}
	if !pos.CastlingRights.CanCastle(Black, true) {
		t.Error("black castling rights lost")
	}
}

// TestCastlingRightsNeverRestored: moving the king away and back must
// not re-enable a lost right.
func TestCastlingRightsNeverRestored(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, uci := range []string{"e1e2", "e8e7", "e2e1", "e7e8"} {
		m, err := ParseMove(uci, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", uci, err)
		}
		pos.MakeMove(m)
	}

	if pos.CastlingRights != NoCastling {
		t.Errorf("castling rights = %v, want none", pos.CastlingRights)
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).IsCastling() {
			t.Errorf("castling move %v generated after kings moved", moves.Get(i))
		}
	}
}

// TestLegalMovesLeaveKingSafe checks the defining legality property on
// a few positions: simulating any generated move never leaves the
// mover's king attacked.
func TestLegalMovesLeaveKingSafe(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"4k3/8/8/8/8/8/4r3/4K2R w K - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		us := pos.SideToMove
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			next := *pos
			next.MakeMove(m)
			if next.IsSquareAttacked(next.KingSquare(us), us.Other()) {
				t.Errorf("%s: move %v leaves own king attacked", fen, m)
			}
		}
	}
}

func TestPromotionGeneratesAllPieces(t *testing.T) {
	pos, err := ParseFEN("8/4P1k1/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	var promos []PieceType
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsPromotion() {
			promos = append(promos, m.Promo)
		}
	}
	want := []PieceType{Queen, Rook, Bishop, Knight}
	if len(promos) != len(want) {
		t.Fatalf("promotion moves = %v, want %v", promos, want)
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Errorf("promotion[%d] = %v, want %v", i, promos[i], want[i])
		}
	}

	pos.MakeMove(NewPromotion(E7, E8, Queen))
	if pos.PieceAt(E8) != WhiteQueen {
		t.Errorf("piece at e8 = %v, want white queen", pos.PieceAt(E8))
	}
}

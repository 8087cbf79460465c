package board

import "testing"

func TestToSAN(t *testing.T) {
	tests := []struct {
		fen  string
		uci  string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"8/4P1k1/8/8/8/8/8/4K3 w - - 0 1", "e7e8q", "e8=Q"},
		{"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", "exd5"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			m, err := ParseMove(tc.uci, pos)
			if err != nil {
				t.Fatalf("ParseMove: %v", err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.uci, got, tc.want)
			}
		})
	}
}

func TestToSANCheckmateMarker(t *testing.T) {
	pos := NewPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4"} {
		m, err := ParseMove(uci, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", uci, err)
		}
		pos.MakeMove(m)
	}

	m, err := ParseMove("d8h4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got := m.ToSAN(pos); got != "Qh4#" {
		t.Errorf("ToSAN = %q, want %q", got, "Qh4#")
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	pos := NewPosition()
	sans := []string{"f3", "e5", "g4", "Qh4#"}

	for _, san := range sans {
		m, err := ParseSAN(san, pos)
		if err != nil {
			t.Fatalf("ParseSAN(%s): %v", san, err)
		}
		if got := m.ToSAN(pos); got != san {
			t.Errorf("round trip of %q produced %q", san, got)
		}
		pos.MakeMove(m)
	}

	if !pos.IsCheckmate() {
		t.Error("SAN sequence did not end in checkmate")
	}
}

func TestParseSANDisambiguation(t *testing.T) {
	// Two white rooks on a1 and h1 can both reach d1.
	pos, err := ParseFEN("4k3/8/8/8/8/8/4K3/R6R w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m, err := ParseSAN("Rad1", pos)
	if err != nil {
		t.Fatalf("ParseSAN: %v", err)
	}
	if m.From != A1 || m.To != D1 {
		t.Errorf("Rad1 parsed as %v", m)
	}
	if got := m.ToSAN(pos); got != "Rad1" {
		t.Errorf("ToSAN = %q, want %q", got, "Rad1")
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luckwei/chess/internal/storage"
)

// runScript feeds newline-separated commands to a CLI and returns the
// output.
func runScript(t *testing.T, store *storage.Store, script string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(strings.NewReader(script), &out, store)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMoveAndStatus(t *testing.T) {
	out := runScript(t, nil, "move e4\nstatus\nquit\n")

	if !strings.Contains(out, "Black to move") {
		t.Errorf("output missing Black to move:\n%s", out)
	}
}

func TestMoveAcceptsUCIAndSAN(t *testing.T) {
	out := runScript(t, nil, "move e2e4\nmove Nf6\nstatus\nquit\n")

	if strings.Contains(out, "error") {
		t.Errorf("unexpected error in output:\n%s", out)
	}
	if !strings.Contains(out, "White to move") {
		t.Errorf("output missing White to move:\n%s", out)
	}
}

func TestIllegalMoveReported(t *testing.T) {
	out := runScript(t, nil, "move e2e5\nquit\n")

	if !strings.Contains(out, "error") {
		t.Errorf("illegal move not reported:\n%s", out)
	}
}

func TestCheckmateAnnounced(t *testing.T) {
	out := runScript(t, nil, "move f3\nmove e5\nmove g4\nmove Qh4#\nquit\n")

	if !strings.Contains(out, "checkmate, Black wins") {
		t.Errorf("output missing checkmate announcement:\n%s", out)
	}
}

func TestFENCommand(t *testing.T) {
	out := runScript(t, nil,
		"fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\nstatus\nquit\n")

	if !strings.Contains(out, "stalemate") {
		t.Errorf("output missing stalemate:\n%s", out)
	}
}

func TestMovesListsSAN(t *testing.T) {
	out := runScript(t, nil, "moves\nquit\n")

	for _, san := range []string{"e4", "Nf3", "a3"} {
		if !strings.Contains(out, san) {
			t.Errorf("legal move list missing %s:\n%s", san, out)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	out := runScript(t, store,
		"move e4\nmove e5\nsave opening\nnew\nload opening\nhistory\nquit\n")

	if !strings.Contains(out, "saved opening") {
		t.Errorf("output missing save confirmation:\n%s", out)
	}
	if !strings.Contains(out, "loaded opening") {
		t.Errorf("output missing load confirmation:\n%s", out)
	}
	if !strings.Contains(out, "e2e4 e7e5") {
		t.Errorf("history after load missing moves:\n%s", out)
	}
}

func TestPersistenceCommandsWithoutStore(t *testing.T) {
	out := runScript(t, nil, "save x\nload x\ngames\nstats\nquit\n")

	if got := strings.Count(out, "storage unavailable"); got != 4 {
		t.Errorf("storage unavailable reported %d times, want 4:\n%s", got, out)
	}
}

func TestStatsRecordedOnCheckmate(t *testing.T) {
	store := testStore(t)

	out := runScript(t, store,
		"move f3\nmove e5\nmove g4\nmove Qh4#\nstats\nquit\n")

	if !strings.Contains(out, "games: 1  white: 0  black: 1  draws: 0") {
		t.Errorf("stats missing recorded result:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	out := runScript(t, nil, "frobnicate\nquit\n")

	if !strings.Contains(out, "unknown command: frobnicate") {
		t.Errorf("unknown command not reported:\n%s", out)
	}
}

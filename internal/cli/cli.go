// Package cli implements the interactive command loop for playing and
// inspecting games from a terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/luckwei/chess/internal/board"
	"github.com/luckwei/chess/internal/game"
	"github.com/luckwei/chess/internal/storage"
)

// CLI reads commands from in and writes responses to out. The store is
// optional; persistence commands report an error when it is nil.
type CLI struct {
	game  *game.Game
	store *storage.Store
	in    io.Reader
	out   io.Writer
}

// New creates a command loop over the given streams starting from a
// fresh game.
func New(in io.Reader, out io.Writer, store *storage.Store) *CLI {
	return &CLI{
		game:  game.New(),
		store: store,
		in:    in,
		out:   out,
	}
}

// Run processes commands until "quit" or EOF.
func (c *CLI) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "new":
			c.game = game.New()
			c.printStatus()
		case "fen":
			c.handleFEN(args)
		case "startpos":
			c.game = game.New()
			c.printStatus()
		case "move":
			c.handleMove(args)
		case "moves":
			c.handleMoves()
		case "history":
			c.handleHistory()
		case "status":
			c.printStatus()
		case "d":
			fmt.Fprintln(c.out, c.game.Board().String())
			fmt.Fprintln(c.out, "fen:", c.game.FEN())
		case "save":
			c.handleSave(args)
		case "load":
			c.handleLoad(args)
		case "games":
			c.handleGames()
		case "delete":
			c.handleDelete(args)
		case "stats":
			c.handleStats()
		case "help":
			c.printHelp()
		case "quit":
			return scanner.Err()
		default:
			fmt.Fprintf(c.out, "unknown command: %s (try help)\n", cmd)
		}
	}
	return scanner.Err()
}

func (c *CLI) handleFEN(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: fen <fen string>")
		return
	}
	g, err := game.NewFromFEN(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	c.game = g
	c.printStatus()
}

// handleMove accepts a move in either UCI (e2e4, e7e8q) or SAN (e4,
// Nf3, O-O) form.
func (c *CLI) handleMove(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: move <move>")
		return
	}

	s := args[0]
	err := c.game.ApplyUCI(s)
	if err != nil {
		err = c.game.ApplySAN(s)
	}
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}

	if c.game.Status().Terminal() {
		c.recordResult()
	}
	c.printStatus()
}

// handleMoves prints the legal moves for the side to move in SAN.
func (c *CLI) handleMoves() {
	pos := c.game.Board()
	var sans []string
	for _, m := range c.game.LegalMoves() {
		sans = append(sans, m.ToSAN(pos))
	}
	if len(sans) == 0 {
		fmt.Fprintln(c.out, "no legal moves")
		return
	}
	fmt.Fprintln(c.out, strings.Join(sans, " "))
}

func (c *CLI) handleHistory() {
	moves := c.game.Moves()
	if len(moves) == 0 {
		fmt.Fprintln(c.out, "no moves played")
		return
	}
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	fmt.Fprintln(c.out, strings.Join(strs, " "))
}

func (c *CLI) handleSave(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: save <id>")
		return
	}
	if c.store == nil {
		fmt.Fprintln(c.out, "error: storage unavailable")
		return
	}

	moves := c.game.Moves()
	ucis := make([]string, len(moves))
	for i, m := range moves {
		ucis[i] = m.String()
	}
	err := c.store.SaveGame(&storage.SavedGame{
		ID:       args[0],
		StartFEN: c.game.StartFEN(),
		Moves:    ucis,
		Status:   c.game.Status().String(),
	})
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	fmt.Fprintln(c.out, "saved", args[0])
}

// handleLoad replays a saved game from its starting descriptor.
func (c *CLI) handleLoad(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: load <id>")
		return
	}
	if c.store == nil {
		fmt.Fprintln(c.out, "error: storage unavailable")
		return
	}

	saved, err := c.store.LoadGame(args[0])
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}

	g, err := game.NewFromFEN(saved.StartFEN)
	if err != nil {
		fmt.Fprintln(c.out, "error: corrupt save:", err)
		return
	}
	for _, uci := range saved.Moves {
		if err := g.ApplyUCI(uci); err != nil {
			fmt.Fprintf(c.out, "error: corrupt save at move %s: %v\n", uci, err)
			return
		}
	}

	c.game = g
	fmt.Fprintln(c.out, "loaded", args[0])
	c.printStatus()
}

func (c *CLI) handleGames() {
	if c.store == nil {
		fmt.Fprintln(c.out, "error: storage unavailable")
		return
	}
	ids, err := c.store.ListGames()
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "no saved games")
		return
	}
	for _, id := range ids {
		fmt.Fprintln(c.out, id)
	}
}

func (c *CLI) handleDelete(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "usage: delete <id>")
		return
	}
	if c.store == nil {
		fmt.Fprintln(c.out, "error: storage unavailable")
		return
	}
	if err := c.store.DeleteGame(args[0]); err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	fmt.Fprintln(c.out, "deleted", args[0])
}

func (c *CLI) handleStats() {
	if c.store == nil {
		fmt.Fprintln(c.out, "error: storage unavailable")
		return
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return
	}
	fmt.Fprintf(c.out, "games: %d  white: %d  black: %d  draws: %d\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
}

func (c *CLI) recordResult() {
	if c.store == nil {
		return
	}
	winner := c.game.Winner()
	err := c.store.RecordResult(winner == board.White, winner == board.Black)
	if err != nil {
		fmt.Fprintln(c.out, "warning: could not record result:", err)
	}
}

func (c *CLI) printStatus() {
	status := c.game.Status()
	switch {
	case status == game.Checkmate:
		fmt.Fprintf(c.out, "checkmate, %s wins\n", c.game.Winner())
	case status.Terminal():
		fmt.Fprintln(c.out, status)
	case c.game.InCheck():
		fmt.Fprintf(c.out, "%s to move (in check)\n", c.game.SideToMove())
	default:
		fmt.Fprintf(c.out, "%s to move\n", c.game.SideToMove())
	}
}

func (c *CLI) printHelp() {
	fmt.Fprintln(c.out, `commands:
  new                start a new game
  fen <fen>          start from a position descriptor
  move <move>        play a move (UCI or SAN)
  moves              list legal moves
  history            list moves played so far
  status             show whose turn it is and the game state
  d                  draw the board
  save <id>          save the current game
  load <id>          load a saved game
  games              list saved games
  delete <id>        delete a saved game
  stats              show aggregate results
  quit               exit`)
}

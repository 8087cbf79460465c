package game

import "errors"

var (
	// ErrIllegalMove is returned when ApplyMove is called with a move
	// that is not among the legal moves for the side to move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when ApplyMove is called after the game
	// reached a terminal status.
	ErrGameOver = errors.New("game over")
)

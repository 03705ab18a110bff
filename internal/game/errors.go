package game

import "errors"

var (
	// ErrGameOver is returned by every action once the overline timer ran out.
	ErrGameOver = errors.New("game: game over")

	// ErrNoCurrent indicates there is no ball waiting to be dropped.
	ErrNoCurrent = errors.New("game: no current ball")

	// ErrHoldUsed indicates the hold slot was already used since the last drop.
	ErrHoldUsed = errors.New("game: hold already used this turn")
)

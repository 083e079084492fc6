package sim

import "github.com/brensch/gridsnake/game"

// Keys reports which movement keys are held during one frame. It is the
// engine's only view of the input device; how presses are collected is up to
// the caller.
type Keys struct {
	Left  bool
	Down  bool
	Up    bool
	Right bool
}

// Any reports whether at least one movement key is held.
func (k Keys) Any() bool {
	return k.Left || k.Down || k.Up || k.Right
}

// resolveDirection picks the heading requested by the held keys, first match
// winning in priority order Left, Down, Up, Right. With no key held the
// current heading is kept. A candidate that would reverse the snake straight
// into its neck is rejected and the current heading survives.
func resolveDirection(k Keys, current game.Direction) game.Direction {
	candidate := current
	switch {
	case k.Left:
		candidate = game.Left
	case k.Down:
		candidate = game.Down
	case k.Up:
		candidate = game.Up
	case k.Right:
		candidate = game.Right
	}

	if candidate == current.Opposite() {
		return current
	}
	return candidate
}

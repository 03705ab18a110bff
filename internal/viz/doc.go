// Package viz is the terminal front end.
//
// It runs a playable game with the Bubble Tea framework:
//
//   - [Model]: one game ticked at the configured rate
//   - [App]: preset menu and setup screen in front of a [Model]
//   - [Canvas]: braille pixel canvas with a color per cell
//
// # Key Bindings
//
//	←/→ H/L - Nudge the current ball
//	Space   - Drop
//	C       - Swap with the hold slot
//	P       - Pause/Resume
//	R       - Restart
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	?       - Show help overlay
//
// # Recording
//
// G records every tick into suikasim.gif in the current directory, drawn
// straight from the game state at one fifth of world scale.
package viz

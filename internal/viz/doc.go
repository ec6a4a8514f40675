// Package viz provides the terminal live view for particle effects.
//
// The view is a Bubble Tea program:
//
//   - [Model]: steps an effect through a particle system and plots the
//     buffered batch output on a braille [Canvas]
//   - [Camera]: orbit camera whose view matrix also drives the depth sorter
//   - [Picker]: effect selection menu
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the effect
//	S     - Toggle depth sorting
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz

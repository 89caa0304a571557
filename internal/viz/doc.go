// Package viz provides the terminal front end for exploring a vehicle model.
//
// The explorer is a Bubble Tea program that evaluates the model on every
// keystroke. It edits a body velocity, a commanded vector and the vehicle
// attitude, and shows the resulting forces together with a sparkline of the
// selected axis swept around its current value.
//
// # Key Bindings
//
//	j/k, up/down    - Select a field
//	h/l, left/right - Decrease/increase the selected field
//	+/-             - Scale the step by 10
//	tab             - Switch between effort and acceleration
//	0               - Zero the selected field
//	r               - Reset every field
//	q               - Quit
package viz

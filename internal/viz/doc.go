// Package viz provides terminal rendering for trajectories and maps.
//
//   - [Clicker]: Bubble Tea view where a mouse click picks an initial
//     condition and the resulting orbit is animated in place
//   - [Canvas]: braille dot canvas bound to a [Viewport]
//   - [CobwebToBraille], [TrajectoryToBraille]: static drawings
//
// # Key Bindings
//
//	click - simulate from the clicked point
//	c     - clear all orbits
//	t     - cycle color themes
//	q     - quit
package viz

// Package viz renders a running driver in the terminal.
//
// The scene is projected through the driver's camera onto a Braille
// [Canvas] whose dot grid doubles as the camera viewport, so mouse clicks
// map straight to picking coordinates. The sidebar shows the simulation
// state, a speed history chart and the info overlay.
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	+/-    - Double/halve speed
//	V      - Toggle follow/overview
//	B      - Body list
//	G      - Toggle GIF recording
//	?      - Help
package viz

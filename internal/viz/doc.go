// Package viz renders beam comparisons in the terminal.
//
//   - [PlotShapes]: asciigraph overlay of every model's deflected shape
//   - [SummaryTable]: lipgloss table of tip state and stress
//   - [Canvas]: braille canvas used by the explorer
//   - [Explorer]: Bubble Tea model that re-solves as loads change
//
// # Explorer Key Bindings
//
//	Up/Down     - Select a slider
//	Left/Right  - Adjust the selected value
//	L           - Cycle the load case
//	R           - Reset to the initial values
//	Q           - Quit
package viz

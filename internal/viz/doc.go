// Package viz draws a terminal preview of the field.
//
// The preview uses a Braille [Canvas]: each character cell holds a 2x4 grid
// of dots, so a 60x30 character canvas resolves 120x120 points. Cells are
// tagged with the [Layer] drawn into them and coloured through a [Theme]
// with lipgloss when rendered.
//
//   - streamlines
//   - rotation axis (vertical through the origin)
//   - magnetic axis (slope tan(pi/2 - alpha))
//   - planet disk
//
// Later layers win a cell, matching the stacking of the raster figure.
package viz

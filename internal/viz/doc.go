// Package viz draws the pendulum into a terminal.
//
//   - [Canvas]: braille pixel grid, 2x4 sub-pixels per cell, with per-cell color
//   - [Scene]: a sim.Surface that draws the pivot, rod and bob into a Canvas
//   - [Theme]: color schemes; the bob tints toward BobFast as it speeds up
//
// One sub-pixel is one input pixel, so a scene is drawn at the session's
// pxPerM scale without any further transform.
package viz

// Package draw renders to ANSI terminals: a scaled half-block canvas and a
// buffered writer for text overlays.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Shades from empty to solid. Index matches a pixel intensity.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// MaxIntensity is a fully lit pixel.
const MaxIntensity = uint8(4)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// Bell rings the terminal bell.
func Bell(w io.Writer) {
	fmt.Fprint(w, "\a")
}

// glyph picks the character for a cell from its two sub-pixels. Solid
// halves use half blocks; anything dimmer fills the cell with a shade.
func glyph(top, bottom uint8) rune {
	switch {
	case top == 0 && bottom == 0:
		return BlockEmpty
	case top == MaxIntensity && bottom == MaxIntensity:
		return BlockFull
	case top == MaxIntensity && bottom == 0:
		return BlockUpperHalf
	case bottom == MaxIntensity && top == 0:
		return BlockLowerHalf
	default:
		return Shades[max(top, bottom)]
	}
}

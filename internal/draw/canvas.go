package draw

import (
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
//
// Pixels carry an intensity from 0 (off) to MaxIntensity so fading trails
// can share the buffer with solid shapes. Render only emits cells that
// changed since the previous frame.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x] intensity
	glyphs         []rune  // Per cell overlay: [row * termWidth + col], 0 if unset
	prev           []rune  // Character emitted for each cell last frame

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf []byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A resize invalidates the previous frame.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]uint8, subPixelHeight*termWidth)
		c.glyphs = make([]rune, termHeight*termWidth)
		c.prev = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and glyphs. The previous frame is kept so the
// next Render can erase what disappeared.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.glyphs)
}

// ForceRedraw makes the next Render emit every cell, e.g. after the
// screen was cleared underneath the canvas.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkTextDirty marks cells covered by a text overlay so the next Render
// repaints them. col and row are 1-based canvas positions.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.prev[r*c.termWidth+x] = 0
	}
}

// setPixel raises a pixel at actual terminal coordinates (no scaling).
// Overlapping shapes keep the brightest intensity.
func (c *Canvas) setPixel(x, y int, intensity uint8) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = max(c.pixels[i], min(intensity, MaxIntensity))
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, intensity uint8) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, intensity)
}

// SetGlyph places a character on the cell covering logical (x, y). Glyphs
// take precedence over pixels in that cell.
func (c *Canvas) SetGlyph(x, y float64, ch rune) {
	col := int(math.Floor(x * c.scaleX))
	row := int(math.Floor(y*c.scaleY)) / 2
	if col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight {
		c.glyphs[row*c.termWidth+col] = ch
	}
}

// cell returns the character for a terminal cell in the current frame.
func (c *Canvas) cell(row, col int) rune {
	if g := c.glyphs[row*c.termWidth+col]; g != 0 {
		return g
	}
	top := c.pixels[(row*2)*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	return glyph(top, bottom)
}

// Render outputs the cells that changed since the last Render, including
// cells that went blank.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	for row := 0; row < c.termHeight; row++ {
		lastCol := -2
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			ch := c.cell(row, col)
			if ch == c.prev[i] {
				continue
			}
			c.prev[i] = ch
			// Consecutive cells skip the cursor move.
			if col != lastCol+1 {
				buf = appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			buf = utf8.AppendRune(buf, ch)
			lastCol = col
		}
	}
	c.renderBuf = buf
	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf []byte
	if hasV {
		if hasH {
			buf = appendCursor(buf, left, top)
			buf = append(buf, "┌"+line+"┐"...)
			buf = appendCursor(buf, left, bottom)
			buf = append(buf, "└"+line+"┘"...)
		} else {
			buf = appendCursor(buf, c.offsetCol+1, top)
			buf = append(buf, line...)
			buf = appendCursor(buf, c.offsetCol+1, bottom)
			buf = append(buf, line...)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf = appendCursor(buf, left, row)
			buf = append(buf, "│"...)
			buf = appendCursor(buf, right, row)
			buf = append(buf, "│"...)
		}
	}

	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// ScaleX returns terminal columns per logical unit.
func (c *Canvas) ScaleX() float64 {
	return c.scaleX
}

// ScaleY returns sub-pixel rows per logical unit.
func (c *Canvas) ScaleY() float64 {
	return c.scaleY
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

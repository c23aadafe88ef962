package draw

import "math"

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// Every pixel whose cell overlaps the rectangle is lit, so thin shapes stay
// visible at small terminal sizes.
func (c *Canvas) FillRect(x, y, w, h float64, intensity uint8) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(x * c.scaleX))
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y0 := int(math.Floor(y * c.scaleY))
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	for py := y0; py <= max(y1, y0); py++ {
		for px := x0; px <= max(x1, x0); px++ {
			c.setPixel(px, py, intensity)
		}
	}
}

// FillDisc fills a circle of logical radius r centered on (cx, cy). A disc
// smaller than a pixel still lights the pixel under its center.
func (c *Canvas) FillDisc(cx, cy, r float64, intensity uint8) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	c.setPixel(int(math.Floor(pcx)), int(math.Floor(pcy)), intensity)
	if rx <= 0 || ry <= 0 {
		return
	}
	for py := int(math.Floor(pcy - ry)); py <= int(math.Ceil(pcy+ry)); py++ {
		for px := int(math.Floor(pcx - rx)); px <= int(math.Ceil(pcx+rx)); px++ {
			// Test the pixel center against the ellipse in pixel space.
			dx := (float64(px) + 0.5 - pcx) / rx
			dy := (float64(py) + 0.5 - pcy) / ry
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, intensity)
			}
		}
	}
}

// DashedVLine draws a vertical dashed line at logical x with the given dash
// and gap lengths in sub-pixels.
func (c *Canvas) DashedVLine(x float64, dash, gap int, intensity uint8) {
	if dash <= 0 {
		return
	}
	px := int(math.Floor(x * c.scaleX))
	period := dash + max(gap, 0)
	for py := 0; py < c.subPixelHeight; py++ {
		if py%period < dash {
			c.setPixel(px, py, intensity)
		}
	}
}

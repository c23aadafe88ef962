package draw

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		top, bottom uint8
		want        rune
	}{
		{0, 0, ' '},
		{MaxIntensity, MaxIntensity, '█'},
		{MaxIntensity, 0, '▀'},
		{0, MaxIntensity, '▄'},
		{1, 0, '░'},
		{0, 2, '▒'},
		{3, MaxIntensity, '█'},
		{3, 1, '▓'},
	}
	for _, tt := range tests {
		if got := glyph(tt.top, tt.bottom); got != tt.want {
			t.Errorf("glyph(%d, %d) = %q, want %q", tt.top, tt.bottom, got, tt.want)
		}
	}
}

// newUnitCanvas maps one logical unit to one sub-pixel.
func newUnitCanvas(cols, rows int) *Canvas {
	return NewScaledCanvas(cols, rows, float64(cols), float64(rows*2))
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := newUnitCanvas(4, 2)
	c.FillRect(0, 0, 1, 2, MaxIntensity)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[1;1H█") {
		t.Errorf("first frame %q missing the solid cell", buf.String())
	}
	if n := utf8.RuneCountInString(stripCursor(buf.String())); n != 8 {
		t.Errorf("first frame wrote %d cells, want 8", n)
	}

	buf.Reset()
	c.Clear()
	c.FillRect(0, 0, 1, 2, MaxIntensity)
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", buf.String())
	}

	buf.Reset()
	c.Clear()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[1;1H " {
		t.Errorf("erase frame = %q, want a single blank at 1;1", got)
	}
}

func TestForceRedraw(t *testing.T) {
	c := newUnitCanvas(3, 1)
	var buf bytes.Buffer
	_ = c.Render(&buf)

	buf.Reset()
	c.ForceRedraw()
	_ = c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H   " {
		t.Errorf("forced frame = %q", got)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := newUnitCanvas(2, 1)
	c.SetOffset(5, 3)
	c.FillRect(1, 0, 1, 2, MaxIntensity)
	c.ForceRedraw()

	var buf bytes.Buffer
	_ = c.Render(&buf)
	if got := buf.String(); got != "\033[4;6H █" {
		t.Errorf("offset frame = %q", got)
	}
}

func TestGlyphOverridesPixels(t *testing.T) {
	c := newUnitCanvas(2, 1)
	c.FillRect(0, 0, 2, 2, MaxIntensity)
	c.SetGlyph(1.5, 1, 'S')

	var buf bytes.Buffer
	_ = c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H█S" {
		t.Errorf("frame = %q", got)
	}
}

func TestSetPixelKeepsBrightest(t *testing.T) {
	c := newUnitCanvas(1, 1)
	c.SetFloat(0, 0, MaxIntensity)
	c.SetFloat(0, 0, 1)
	if got := c.pixels[0]; got != MaxIntensity {
		t.Errorf("pixel = %d, want %d", got, MaxIntensity)
	}
	c.SetFloat(0, 1, 200)
	if got := c.pixels[1]; got != MaxIntensity {
		t.Errorf("overbright pixel = %d, want clamp to %d", got, MaxIntensity)
	}
}

func TestFillDiscTinyRadius(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillDisc(500, 500, 1, MaxIntensity)
	lit := 0
	for _, p := range c.pixels {
		if p > 0 {
			lit++
		}
	}
	if lit != 1 {
		t.Errorf("lit %d pixels, want 1", lit)
	}
}

func TestDashedVLine(t *testing.T) {
	c := newUnitCanvas(1, 4)
	c.DashedVLine(0, 2, 2, MaxIntensity)
	want := []uint8{4, 4, 0, 0, 4, 4, 0, 0}
	for i, p := range c.pixels {
		if p != want[i] {
			t.Fatalf("pixels = %v, want %v", c.pixels, want)
		}
	}
}

func TestResizeKeepsLogicalSpace(t *testing.T) {
	c := NewScaledCanvas(80, 24, 800, 600)
	c.Resize(40, 12)
	col, row := c.LogicalToTerminal(800, 600)
	if col != 41 || row != 13 {
		t.Errorf("LogicalToTerminal(800, 600) = (%d, %d), want (41, 13)", col, row)
	}
}

func stripCursor(s string) string {
	var b strings.Builder
	for len(s) > 0 {
		if strings.HasPrefix(s, "\033[") {
			end := strings.IndexByte(s, 'H')
			s = s[end+1:]
			continue
		}
		r, n := utf8.DecodeRuneInString(s)
		b.WriteRune(r)
		s = s[n:]
	}
	return b.String()
}

func TestMarkTextDirty(t *testing.T) {
	c := newUnitCanvas(4, 2)
	var buf bytes.Buffer
	_ = c.Render(&buf)

	buf.Reset()
	c.MarkTextDirty(2, 2, 10)
	_ = c.Render(&buf)
	if got := buf.String(); got != "\033[2;2H   " {
		t.Errorf("dirty frame = %q", got)
	}
}

package object

import (
	"github.com/tomz197/pong/internal/loop/server"
)

// Pickup is a power-up waiting to be collected. It is drawn as its glyph
// so the canvas diff erases it with the rest of the frame.
type Pickup struct {
	X, Y   float64
	Radius float64
	Kind   server.PowerUpKind
}

func (p Pickup) Draw(ctx DrawContext) error {
	ctx.Canvas.FillDisc(p.X, p.Y, p.Radius, 1)
	ctx.Canvas.SetGlyph(p.X, p.Y, p.Kind.Glyph())
	return nil
}

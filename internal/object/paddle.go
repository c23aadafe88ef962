package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/server"
)

// Effect ticks left when a changed paddle starts blinking.
const (
	expiryWarnTicks  = 120
	expiryBlinkTicks = 15
)

// Paddle is one side's bat.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	Dim           bool // Drawn at half intensity (expiring power-up)
}

// NewPaddle builds the paddle for side from snap.
func NewPaddle(snap server.Snapshot, side server.Side) Paddle {
	p := Paddle{
		Y:      snap.PaddleY[side],
		Width:  snap.PaddleWidth,
		Height: snap.PaddleHeight[side],
	}
	if side == server.Right {
		p.X = snap.Width - snap.PaddleWidth
	}
	e := snap.Effect
	if e.Active && e.Kind != server.SpeedBoost && e.Target == side {
		p.Dim = !ShouldRenderBlink(e.TicksRemaining, expiryWarnTicks, expiryBlinkTicks)
	}
	return p
}

func (p Paddle) Draw(ctx DrawContext) error {
	intensity := draw.MaxIntensity
	if p.Dim {
		intensity = 2
	}
	ctx.Canvas.FillRect(p.X, p.Y, p.Width, p.Height, intensity)
	return nil
}

// Net is the dashed center line.
type Net struct {
	X float64
}

func (n Net) Draw(ctx DrawContext) error {
	ctx.Canvas.DashedVLine(n.X, 2, 2, 1)
	return nil
}

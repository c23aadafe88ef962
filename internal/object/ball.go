package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/server"
)

// Ball is the ball at its current position.
type Ball struct {
	X, Y   float64
	Radius float64
}

func (b Ball) Draw(ctx DrawContext) error {
	ctx.Canvas.FillDisc(b.X, b.Y, b.Radius, draw.MaxIntensity)
	return nil
}

// Trail records recent ball positions across frames. Its length grows
// with the level.
type Trail struct {
	points []server.Vec
	limit  int
	tick   uint64
}

// TrailLength is the number of trail points shown at level.
func TrailLength(level int) int {
	return 3 + 2*level
}

// Observe records the ball of snap. Only playing frames with a new tick
// add a point; a serve (the ball jumping back to the center) clears the
// trail.
func (t *Trail) Observe(snap server.Snapshot) {
	t.limit = TrailLength(snap.Level)
	if snap.Phase != server.PhasePlaying {
		if snap.Phase != server.PhasePaused {
			t.Reset()
		}
		return
	}
	if snap.Tick == t.tick && len(t.points) > 0 {
		return
	}
	t.tick = snap.Tick
	if n := len(t.points); n > 0 {
		last := t.points[n-1]
		dx, dy := snap.Ball.X-last.X, snap.Ball.Y-last.Y
		if dx*dx+dy*dy > (snap.Width/4)*(snap.Width/4) {
			t.points = t.points[:0]
		}
	}
	t.points = append(t.points, snap.Ball)
	if over := len(t.points) - t.limit; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

// Points returns the trail oldest first, excluding the current ball.
func (t *Trail) Points() []server.Vec {
	if len(t.points) <= 1 {
		return nil
	}
	return t.points[:len(t.points)-1]
}

// Reset forgets all points.
func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.tick = 0
}

// TrailView draws trail points fading toward the oldest.
type TrailView struct {
	Points []server.Vec
	Radius float64
}

func (v TrailView) Draw(ctx DrawContext) error {
	n := len(v.Points)
	for i, p := range v.Points {
		// Newest point is brightest but never solid.
		intensity := uint8(1 + (i*int(draw.MaxIntensity-2))/max(n-1, 1))
		ctx.Canvas.FillDisc(p.X, p.Y, v.Radius*0.6, intensity)
	}
	return nil
}

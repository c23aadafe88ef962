// Package object turns a match snapshot into drawable pieces: the net,
// paddles, ball with its trail, the pickup and text overlays.
package object

import (
	"io"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/server"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical), logical field units
	Writer io.Writer    // Direct terminal output (for text)
}

// Object is anything that can draw itself for one frame.
type Object interface {
	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Scene remembers what it needs between frames (the ball trail) and builds
// the object list for each snapshot.
type Scene struct {
	trail Trail
}

// Objects returns the field objects of snap in draw order. Overlays such
// as the HUD are not included.
func (s *Scene) Objects(snap server.Snapshot) []Object {
	s.trail.Observe(snap)

	objs := []Object{
		Net{X: snap.Width / 2},
	}
	for _, side := range []server.Side{server.Left, server.Right} {
		objs = append(objs, NewPaddle(snap, side))
	}
	objs = append(objs, TrailView{Points: s.trail.Points(), Radius: snap.BallRadius})
	if snap.Pickup.Live {
		objs = append(objs, Pickup{
			X:      float64(snap.Pickup.X),
			Y:      float64(snap.Pickup.Y),
			Radius: snap.PickupRadius,
			Kind:   snap.Pickup.Kind,
		})
	}
	objs = append(objs, Ball{X: snap.Ball.X, Y: snap.Ball.Y, Radius: snap.BallRadius})
	return objs
}

// Reset forgets the trail.
func (s *Scene) Reset() {
	s.trail.Reset()
}

// ShouldRenderBlink returns true if an object with remaining time should be
// rendered this frame (for blinking effect). Returns true always if
// remaining is above threshold.
func ShouldRenderBlink(remaining, threshold, period int) bool {
	if remaining > threshold || period <= 0 {
		return true
	}
	return (remaining/period)%2 == 0
}

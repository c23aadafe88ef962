package server

import (
	"math"

	"github.com/tomz197/pong/internal/physics"
)

// bounceWalls reflects the ball off the top and bottom walls and keeps it
// inside them.
func (st *State) bounceWalls() bool {
	top := st.cfg.BallRadius
	bottom := st.cfg.Height - st.cfg.BallRadius

	switch {
	case st.Ball.Y <= top && st.BallVel.Y < 0:
		st.Ball.Y = top
		st.BallVel.Y = -st.BallVel.Y
		return true
	case st.Ball.Y >= bottom && st.BallVel.Y > 0:
		st.Ball.Y = bottom
		st.BallVel.Y = -st.BallVel.Y
		return true
	}
	st.Ball.Y = physics.Clamp(st.Ball.Y, top, bottom)
	return false
}

// bouncePaddles returns the ball off whichever paddle it reached and
// reports that side. Only a ball travelling toward a paddle can hit it.
func (st *State) bouncePaddles() Side {
	r := st.cfg.BallRadius
	pw := st.cfg.PaddleWidth
	w := st.cfg.Width

	if st.BallVel.X < 0 && st.Ball.X-r <= pw && st.Ball.X+r > 0 &&
		physics.InSpan(st.Ball.Y, st.PaddleY[Left], st.PaddleHeight[Left]) {
		st.deflect(Left)
		st.Ball.X = pw + r + 1
		return Left
	}
	if st.BallVel.X > 0 && st.Ball.X+r >= w-pw && st.Ball.X-r < w &&
		physics.InSpan(st.Ball.Y, st.PaddleY[Right], st.PaddleHeight[Right]) {
		st.deflect(Right)
		st.Ball.X = w - pw - r - 1
		return Right
	}
	return NoSide
}

// deflect sets the return velocity off side's paddle. The angle follows
// where the ball struck: the center returns flat, the ends at half the
// angle span. Speed is raised to at least the level's serve speed, then
// multiplied by the level's gain and capped at max_ball_speed.
func (st *State) deflect(side Side) {
	hit := (st.Ball.Y - st.PaddleY[side]) / st.PaddleHeight[side]
	angle := (hit - 0.5) * st.cfg.AngleSpan

	speed := physics.Speed(st.BallVel.X, st.BallVel.Y)
	speed = math.Max(speed, st.cfg.ServeSpeed(st.Level)) * st.cfg.Gain(st.Level)
	speed = math.Min(speed, st.cfg.MaxBallSpeed)

	dir := 1.0
	if side == Right {
		dir = -1
	}
	st.BallVel.X, st.BallVel.Y = physics.Heading(speed, angle, dir)
}

// collectPickup applies a live pickup the ball passes through. The point
// goes to the player who last sent the ball: a ball moving right was
// returned by the left paddle.
func (st *State) collectPickup() {
	p := st.Pickup
	if !p.Live {
		return
	}
	if !physics.CirclesOverlap(st.Ball.X, st.Ball.Y, st.cfg.BallRadius, float64(p.X), float64(p.Y), st.cfg.PickupRadius) {
		return
	}
	collector := Right
	if st.BallVel.X > 0 {
		collector = Left
	}
	st.applyEffect(p.Kind, collector)
}

package server

import (
	"time"

	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/physics"
)

// AI steers the right paddle in single-player matches. Difficulty grows
// along three axes per level: how far ahead it predicts, how fast it
// moves and how long it waits between decisions.
type AI struct {
	shared *Shared
}

// NewAI creates the computer opponent for a match.
func NewAI(shared *Shared) *AI {
	return &AI{shared: shared}
}

// Tick makes one decision and returns the reaction delay for the current
// level.
func (a *AI) Tick() time.Duration {
	var wait time.Duration
	a.shared.Update(func(st *State) {
		wait = st.steerAI()
	})
	return wait
}

func (st *State) steerAI() time.Duration {
	if st.Phase != PhasePlaying || st.TwoPlayer {
		return 0
	}

	lvl := st.cfg.AILevel(st.Level)
	center := st.PaddleY[Right] + st.PaddleHeight[Right]/2

	if st.BallVel.X <= 0 {
		// Ball heading away: drift back toward the middle.
		mid := st.cfg.Height / 2
		speed := st.PaddleSpeed[Right] * st.cfg.IdleSpeed
		switch {
		case center < mid-st.cfg.IdleBand:
			st.PaddleY[Right] += speed
		case center > mid+st.cfg.IdleBand:
			st.PaddleY[Right] -= speed
		}
		st.clampPaddle(Right)
		return lvl.Reaction
	}

	target := st.aiTarget(lvl)
	speed := st.PaddleSpeed[Right] * lvl.Speed
	switch {
	case target > center+st.cfg.Deadband:
		st.PaddleY[Right] += min(speed, target-center)
	case target < center-st.cfg.Deadband:
		st.PaddleY[Right] -= min(speed, center-target)
	}
	st.clampPaddle(Right)
	return lvl.Reaction
}

// aiTarget is where the computer wants its paddle center: the ball's
// height, blended toward the projected intercept by the level's
// prediction weight, plus zero-mean jitter.
func (st *State) aiTarget(lvl config.AILevel) float64 {
	target := st.Ball.Y
	if lvl.Prediction > 0 {
		target = st.intercept()*lvl.Prediction + st.Ball.Y*(1-lvl.Prediction)
	}
	if lvl.Jitter > 0 {
		target += (st.rng.Float64()*2 - 1) * lvl.Jitter
	}
	return target
}

// intercept projects the ball's height when it reaches the right paddle's
// face, folding the path off the walls as often as it bounces.
func (st *State) intercept() float64 {
	if st.BallVel.X <= 0 {
		return st.Ball.Y
	}
	r := st.cfg.BallRadius
	face := st.cfg.Width - st.cfg.PaddleWidth - r
	t := max((face-st.Ball.X)/st.BallVel.X, 0)
	return physics.Fold(st.Ball.Y+st.BallVel.Y*t, r, st.cfg.Height-r)
}

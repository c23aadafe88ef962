package server

import (
	"time"

	"github.com/charmbracelet/log"
)

// tickOutcome is what one physics tick produced, reported after unlock.
type tickOutcome struct {
	cues     cueSet
	scorer   Side
	score    [2]int
	gameOver bool
}

// Physics advances the ball, resolves collisions and scores.
type Physics struct {
	shared *Shared
	cues   CueSink
	log    *log.Logger
}

// NewPhysics creates the physics updater for a match.
func NewPhysics(shared *Shared, cues CueSink, logger *log.Logger) *Physics {
	return &Physics{shared: shared, cues: cues, log: logger}
}

// Tick runs one physics step.
func (p *Physics) Tick() time.Duration {
	var out tickOutcome
	p.shared.Update(func(st *State) {
		out = st.advance()
	})

	out.cues.each(p.cues.Cue)
	if out.scorer != NoSide {
		p.log.Debug("point", "scorer", out.scorer, "left", out.score[Left], "right", out.score[Right])
	}
	if out.gameOver {
		p.log.Info("match over", "winner", out.scorer, "left", out.score[Left], "right", out.score[Right])
	}
	return 0
}

// advance is one physics tick. Within each integration step walls resolve
// before paddles, paddles before pickups, and pickups before scoring.
func (st *State) advance() tickOutcome {
	out := tickOutcome{scorer: NoSide}
	if st.Phase != PhasePlaying {
		return out
	}
	st.Tick++

	for range st.Steps {
		st.Ball.X += st.BallVel.X
		st.Ball.Y += st.BallVel.Y

		if st.bounceWalls() {
			out.cues.add(CueWallHit)
		}
		if st.bouncePaddles() != NoSide {
			out.cues.add(CuePaddleHit)
		}
		st.collectPickup()

		if scorer := st.checkScore(); scorer != NoSide {
			out.cues.add(CueScore)
			out.scorer = scorer
			out.score = st.Score
			out.gameOver = st.Phase == PhaseGameOver
			break
		}
	}

	if st.Phase == PhasePlaying {
		st.tickEffect()
	}
	return out
}

// checkScore credits a point when the ball has left the field, then either
// serves again or ends the match. The serve heads toward the scorer.
func (st *State) checkScore() Side {
	var (
		scorer Side
		dir    float64
	)
	switch {
	case st.Ball.X < 0:
		scorer, dir = Right, 1
	case st.Ball.X > st.cfg.Width:
		scorer, dir = Left, -1
	default:
		return NoSide
	}

	st.Score[scorer]++
	st.serve(dir)
	if st.Score[scorer] >= st.cfg.WinningScore {
		st.Phase = PhaseGameOver
		st.Winner = scorer
	}
	return scorer
}

package server

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/pong/internal/loop/config"
)

func newTestState(t *testing.T, cfg config.Config) *State {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return NewState(&cfg, rand.New(rand.NewPCG(1, 2)))
}

func newPlayingState(t *testing.T) *State {
	t.Helper()
	st := newTestState(t, config.Classic())
	st.Phase = PhasePlaying
	return st
}

// checkInvariants asserts the properties every reachable state keeps.
func checkInvariants(t *testing.T, st *State) {
	t.Helper()
	for _, side := range []Side{Left, Right} {
		y, h := st.PaddleY[side], st.PaddleHeight[side]
		if y < 0 || y > st.cfg.Height-h {
			t.Fatalf("tick %d: %s paddle y=%v outside [0, %v]", st.Tick, side, y, st.cfg.Height-h)
		}
		if st.Score[side] < 0 {
			t.Fatalf("tick %d: negative score %v", st.Tick, st.Score)
		}
	}
	if speed := math.Hypot(st.BallVel.X, st.BallVel.Y); speed > st.cfg.MaxBallSpeed+1e-9 {
		t.Fatalf("tick %d: ball speed %v above max_ball_speed %v", st.Tick, speed, st.cfg.MaxBallSpeed)
	}
	if st.Level < 1 || st.Level > st.cfg.LevelCount {
		t.Fatalf("level %d out of range", st.Level)
	}
}

func TestNewState(t *testing.T) {
	cfg := config.Classic()
	st := newTestState(t, cfg)

	if st.Phase != PhaseModeSelect {
		t.Errorf("phase = %v, want mode_select", st.Phase)
	}
	if st.Level != 1 {
		t.Errorf("level = %d, want 1", st.Level)
	}
	if st.Score != [2]int{} {
		t.Errorf("score = %v, want zero", st.Score)
	}
	wantY := (cfg.Height - cfg.PaddleHeight) / 2
	if st.PaddleY[Left] != wantY || st.PaddleY[Right] != wantY {
		t.Errorf("paddles = %v, want both %v", st.PaddleY, wantY)
	}
	if st.Ball != (Vec{X: cfg.Width / 2, Y: cfg.Height / 2}) {
		t.Errorf("ball = %+v, want field center", st.Ball)
	}
	if got := math.Abs(st.BallVel.X); got != cfg.ServeSpeed(1) {
		t.Errorf("|vx| = %v, want %v", got, cfg.ServeSpeed(1))
	}
	slope := math.Abs(st.BallVel.Y / st.BallVel.X)
	if slope < cfg.ServeSlopeMin || slope > cfg.ServeSlopeMax {
		t.Errorf("serve slope %v outside [%v, %v]", slope, cfg.ServeSlopeMin, cfg.ServeSlopeMax)
	}
	checkInvariants(t, st)
}

func TestServeVariesHeading(t *testing.T) {
	st := newPlayingState(t)
	signs := map[[2]bool]bool{}
	for range 200 {
		dir := 1.0
		if st.rng.IntN(2) == 0 {
			dir = -1
		}
		st.serve(dir)
		if (st.BallVel.X > 0) != (dir > 0) {
			t.Fatalf("serve toward %v went %v", dir, st.BallVel.X)
		}
		signs[[2]bool{st.BallVel.X > 0, st.BallVel.Y > 0}] = true
	}
	if len(signs) != 4 {
		t.Errorf("saw %d of 4 heading quadrants", len(signs))
	}
}

func TestServeStaysUnderCap(t *testing.T) {
	for _, cfg := range []config.Config{config.Classic(), config.Arcade()} {
		st := newTestState(t, cfg)
		for level := 1; level <= cfg.LevelCount; level++ {
			st.Level = level
			for range 100 {
				st.serve(1)
				if got, want := math.Abs(st.BallVel.X), cfg.ServeSpeed(level); got != want {
					t.Fatalf("%s level %d: |vx| = %v, want %v", cfg.Preset, level, got, want)
				}
				if speed := math.Hypot(st.BallVel.X, st.BallVel.Y); speed > cfg.MaxBallSpeed+1e-9 {
					t.Fatalf("%s level %d: serve speed %v above max_ball_speed %v", cfg.Preset, level, speed, cfg.MaxBallSpeed)
				}
			}
		}
	}
}

func TestSharedSnapshotIsCopy(t *testing.T) {
	st := newPlayingState(t)
	shared := NewShared(st)

	snap := shared.Snapshot()
	shared.Update(func(st *State) {
		st.Score[Left] = 7
		st.PaddleY[Left] = 0
	})

	if snap.Score[Left] != 0 || snap.PaddleY[Left] == 0 {
		t.Errorf("snapshot changed after update: %+v", snap)
	}
	if got := shared.Snapshot().Score[Left]; got != 7 {
		t.Errorf("new snapshot score = %d, want 7", got)
	}
}

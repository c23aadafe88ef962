package server

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/physics"
)

// Phase is the coarse meta state of a match.
type Phase int

const (
	PhaseModeSelect Phase = iota // Initial menu
	PhasePlaying                 // Updaters mutate state
	PhasePaused                  // Frozen until resumed
	PhaseGameOver                // A side reached the winning score
)

func (p Phase) String() string {
	switch p {
	case PhaseModeSelect:
		return "mode_select"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Side identifies a paddle. Left is always human; Right is the computer
// unless two-player mode is on.
type Side int

const (
	NoSide Side = iota - 1
	Left
	Right
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Vec is a point or velocity in field units.
type Vec struct {
	X, Y float64
}

// State is the single mutable aggregate of a match. It is only touched
// through Shared, which serializes every access.
type State struct {
	PaddleY      [2]float64
	PaddleHeight [2]float64 // Current extent, changed by PaddleExtend
	PaddleSpeed  [2]float64 // Current move speed, changed by OpponentSlow
	Ball         Vec
	BallVel      Vec
	Steps        int // Ball integration steps per physics tick, raised by SpeedBoost
	Score        [2]int
	Level        int
	Phase        Phase
	TwoPlayer    bool
	Winner       Side
	Pickup       Pickup
	Effect       Effect
	Tick         uint64

	cfg *config.Config
	rng *rand.Rand
}

// NewState creates a match in ModeSelect with centered paddles and a
// served ball. cfg must already be validated.
func NewState(cfg *config.Config, rng *rand.Rand) *State {
	st := &State{
		Level: 1,
		Phase: PhaseModeSelect,
		cfg:   cfg,
		rng:   rng,
	}
	st.resetMatch()
	return st
}

// resetMatch clears scores, effects and pickups, recenters the paddles and
// serves a fresh ball. Level, mode and phase are left to the caller.
func (st *State) resetMatch() {
	st.Score = [2]int{}
	st.Winner = NoSide
	st.Pickup = Pickup{}
	st.Effect = Effect{}
	st.Steps = 1
	for _, side := range []Side{Left, Right} {
		st.PaddleHeight[side] = st.cfg.PaddleHeight
		st.PaddleSpeed[side] = st.cfg.PaddleSpeed
		st.PaddleY[side] = (st.cfg.Height - st.cfg.PaddleHeight) / 2
	}
	dir := 1.0
	if st.rng.IntN(2) == 0 {
		dir = -1
	}
	st.serve(dir)
}

// serve centers the ball and gives it a random heading toward dir. The
// horizontal speed is exactly the level's serve speed; the vertical part is
// a random fraction of it with a random sign, trimmed so the serve stays
// under the speed cap.
func (st *State) serve(dir float64) {
	st.Ball = Vec{X: st.cfg.Width / 2, Y: st.cfg.Height / 2}

	vx := st.cfg.ServeSpeed(st.Level)
	slope := st.cfg.ServeSlopeMin + st.rng.Float64()*(st.cfg.ServeSlopeMax-st.cfg.ServeSlopeMin)
	maxVY := math.Sqrt(max(st.cfg.MaxBallSpeed*st.cfg.MaxBallSpeed-vx*vx, 0))
	vy := math.Min(vx*slope, maxVY)
	if st.rng.IntN(2) == 0 {
		vy = -vy
	}
	if dir < 0 {
		vx = -vx
	}
	st.BallVel = Vec{X: vx, Y: vy}
}

// clampPaddle keeps a paddle inside the field.
func (st *State) clampPaddle(side Side) {
	st.PaddleY[side] = physics.Clamp(st.PaddleY[side], 0, st.cfg.Height-st.PaddleHeight[side])
}

// clampBallSpeed enforces the speed cap.
func (st *State) clampBallSpeed() {
	st.BallVel.X, st.BallVel.Y = physics.Scale(st.BallVel.X, st.BallVel.Y, st.cfg.MaxBallSpeed)
}

// Snapshot is a point-in-time copy of a match for renderers.
type Snapshot struct {
	Width        float64
	Height       float64
	PaddleWidth  float64
	BallRadius   float64
	PickupRadius float64
	PaddleY      [2]float64
	PaddleHeight [2]float64
	Ball         Vec
	BallVel      Vec
	Score        [2]int
	WinningScore int
	Level        int
	LevelCount   int
	Phase        Phase
	TwoPlayer    bool
	CanTwoPlayer bool
	Winner       Side
	Pickup       Pickup
	Effect       Effect
	Tick         uint64
}

func (st *State) snapshot() Snapshot {
	return Snapshot{
		Width:        st.cfg.Width,
		Height:       st.cfg.Height,
		PaddleWidth:  st.cfg.PaddleWidth,
		BallRadius:   st.cfg.BallRadius,
		PickupRadius: st.cfg.PickupRadius,
		PaddleY:      st.PaddleY,
		PaddleHeight: st.PaddleHeight,
		Ball:         st.Ball,
		BallVel:      st.BallVel,
		Score:        st.Score,
		WinningScore: st.cfg.WinningScore,
		Level:        st.Level,
		LevelCount:   st.cfg.LevelCount,
		Phase:        st.Phase,
		TwoPlayer:    st.TwoPlayer,
		CanTwoPlayer: st.cfg.TwoPlayerSupported,
		Winner:       st.Winner,
		Pickup:       st.Pickup,
		Effect:       st.Effect,
		Tick:         st.Tick,
	}
}

// Shared guards the State of one match with a single exclusive lock.
// Updaters and readers receive it explicitly; nothing reaches the state
// any other way.
type Shared struct {
	mu sync.Mutex
	st *State
}

// NewShared wraps st.
func NewShared(st *State) *Shared {
	return &Shared{st: st}
}

// Update runs fn with exclusive access to the state. fn must not block.
func (s *Shared) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// Snapshot copies the state out under the lock.
func (s *Shared) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.snapshot()
}

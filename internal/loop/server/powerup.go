package server

import (
	"time"

	"github.com/charmbracelet/log"
)

// PowerUpKind is the effect a pickup grants.
type PowerUpKind int

const (
	SpeedBoost   PowerUpKind = iota // Ball integrates extra steps per tick
	PaddleExtend                    // Collector's paddle grows
	OpponentSlow                    // Opponent's paddle moves slower
	powerUpKinds = 3
)

func (k PowerUpKind) String() string {
	switch k {
	case SpeedBoost:
		return "speed_boost"
	case PaddleExtend:
		return "paddle_extend"
	case OpponentSlow:
		return "opponent_slow"
	default:
		return "unknown"
	}
}

// Glyph is the single-character marker for a pickup of this kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case SpeedBoost:
		return 'S'
	case PaddleExtend:
		return 'L'
	case OpponentSlow:
		return 'D'
	default:
		return '?'
	}
}

// Pickup is a collectible waiting on the field.
type Pickup struct {
	Live bool
	Kind PowerUpKind
	X, Y int
}

// Effect is an applied power-up counting down. baseline holds the exact
// value the effect replaced.
type Effect struct {
	Active         bool
	Kind           PowerUpKind
	Owner          Side // Player who collected it
	Target         Side // Paddle it changed; unused for SpeedBoost
	TicksRemaining int

	baseline float64
}

// PowerUps spawns pickups on a slow tick.
type PowerUps struct {
	shared *Shared
	log    *log.Logger
}

// NewPowerUps creates the spawner for a match.
func NewPowerUps(shared *Shared, logger *log.Logger) *PowerUps {
	return &PowerUps{shared: shared, log: logger}
}

// Tick rolls for a spawn.
func (p *PowerUps) Tick() time.Duration {
	var (
		spawned bool
		pickup  Pickup
	)
	p.shared.Update(func(st *State) {
		spawned = st.rollPickup()
		pickup = st.Pickup
	})
	if spawned {
		p.log.Debug("pickup spawned", "kind", pickup.Kind, "x", pickup.X, "y", pickup.Y)
	}
	return 0
}

// rollPickup spawns a pickup with the configured chance while playing and
// while neither a pickup nor an effect is live.
func (st *State) rollPickup() bool {
	if st.Phase != PhasePlaying || st.Pickup.Live || st.Effect.Active {
		return false
	}
	if st.rng.Float64() >= st.cfg.PowerUpChance {
		return false
	}
	st.spawnPickup(PowerUpKind(st.rng.IntN(powerUpKinds)))
	return true
}

// spawnPickup places a pickup in the middle half of the field, away from
// both paddle columns and the walls.
func (st *State) spawnPickup(kind PowerUpKind) {
	w, h := int(st.cfg.Width), int(st.cfg.Height)
	margin := int(st.cfg.PickupRadius)
	st.Pickup = Pickup{
		Live: true,
		Kind: kind,
		X:    w/4 + st.rng.IntN(max(w/2, 1)),
		Y:    margin + st.rng.IntN(max(h-2*margin, 1)),
	}
}

// applyEffect starts kind for collector and consumes the pickup.
func (st *State) applyEffect(kind PowerUpKind, collector Side) {
	st.revertEffect()

	e := Effect{
		Active:         true,
		Kind:           kind,
		Owner:          collector,
		Target:         collector,
		TicksRemaining: st.cfg.PowerUpTicks,
	}
	switch kind {
	case SpeedBoost:
		e.baseline = float64(st.Steps)
		st.Steps = st.cfg.BoostSteps
	case PaddleExtend:
		e.baseline = st.PaddleHeight[collector]
		st.PaddleHeight[collector] += st.cfg.PaddleExtend
		st.PaddleY[collector] -= st.cfg.PaddleExtend / 2
		st.clampPaddle(collector)
	case OpponentSlow:
		e.Target = collector.Opponent()
		e.baseline = st.PaddleSpeed[e.Target]
		st.PaddleSpeed[e.Target] *= st.cfg.SlowFactor
	}
	st.Effect = e
	st.Pickup = Pickup{}
}

// tickEffect counts the active effect down and reverts it on expiry.
func (st *State) tickEffect() {
	if !st.Effect.Active {
		return
	}
	st.Effect.TicksRemaining--
	if st.Effect.TicksRemaining <= 0 {
		st.revertEffect()
	}
}

// revertEffect restores the value the active effect replaced.
func (st *State) revertEffect() {
	e := st.Effect
	if !e.Active {
		return
	}
	switch e.Kind {
	case SpeedBoost:
		st.Steps = int(e.baseline)
	case PaddleExtend:
		shrink := st.PaddleHeight[e.Target] - e.baseline
		st.PaddleHeight[e.Target] = e.baseline
		st.PaddleY[e.Target] += shrink / 2
		st.clampPaddle(e.Target)
	case OpponentSlow:
		st.PaddleSpeed[e.Target] = e.baseline
	}
	st.Effect = Effect{}
}

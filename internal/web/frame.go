// Package web serves matches over websockets: each connection drives its
// own match with key bytes in and msgpack frames out.
package web

import (
	"github.com/tomz197/pong/internal/loop/client"
	"github.com/tomz197/pong/internal/loop/server"
	"github.com/tomz197/pong/internal/object"
)

// Frame is one rendered snapshot as sent to the browser.
type Frame struct {
	Width        float64      `msgpack:"w"`
	Height       float64      `msgpack:"h"`
	PaddleWidth  float64      `msgpack:"pw"`
	PaddleY      [2]float64   `msgpack:"py"`
	PaddleHeight [2]float64   `msgpack:"ph"`
	Ball         [2]float64   `msgpack:"b"`
	BallRadius   float64      `msgpack:"br"`
	Trail        [][2]float64 `msgpack:"tr"`
	Score        [2]int       `msgpack:"s"`
	Level        int          `msgpack:"lv"`
	Phase        string       `msgpack:"phase"`
	TwoPlayer    bool         `msgpack:"tp"`
	CanTwoPlayer bool         `msgpack:"ctp"`
	Winner       string       `msgpack:"win,omitempty"`
	Pickup       *PickupFrame `msgpack:"pu,omitempty"`
	Effect       *EffectFrame `msgpack:"ef,omitempty"`
	Cues         []string     `msgpack:"c,omitempty"`
}

// PickupFrame is a live pickup.
type PickupFrame struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"r"`
	Glyph  string  `msgpack:"g"`
}

// EffectFrame is the active power-up.
type EffectFrame struct {
	Kind  string `msgpack:"k"`
	Owner string `msgpack:"o"`
	Ticks int    `msgpack:"t"`
}

// NewFrame converts a snapshot, its trail and the cues since the last frame.
func NewFrame(snap server.Snapshot, trail []server.Vec, cues []server.Cue) Frame {
	f := Frame{
		Width:        snap.Width,
		Height:       snap.Height,
		PaddleWidth:  snap.PaddleWidth,
		PaddleY:      snap.PaddleY,
		PaddleHeight: snap.PaddleHeight,
		Ball:         [2]float64{snap.Ball.X, snap.Ball.Y},
		BallRadius:   snap.BallRadius,
		Score:        snap.Score,
		Level:        snap.Level,
		Phase:        snap.Phase.String(),
		TwoPlayer:    snap.TwoPlayer,
		CanTwoPlayer: snap.CanTwoPlayer,
	}
	for _, p := range trail {
		f.Trail = append(f.Trail, [2]float64{p.X, p.Y})
	}
	if snap.Phase == server.PhaseGameOver {
		f.Winner = client.WinnerText(snap)
	}
	if p := snap.Pickup; p.Live {
		f.Pickup = &PickupFrame{
			X:      float64(p.X),
			Y:      float64(p.Y),
			Radius: snap.PickupRadius,
			Glyph:  string(p.Kind.Glyph()),
		}
	}
	if e := snap.Effect; e.Active {
		f.Effect = &EffectFrame{Kind: e.Kind.String(), Owner: e.Owner.String(), Ticks: e.TicksRemaining}
	}
	for _, c := range cues {
		f.Cues = append(f.Cues, c.String())
	}
	return f
}

// frameTrail tracks the ball trail for a session the same way the
// terminal does.
type frameTrail struct {
	trail object.Trail
}

func (t *frameTrail) points(snap server.Snapshot) []server.Vec {
	t.trail.Observe(snap)
	return t.trail.Points()
}

package client

import "github.com/tomz197/pong/internal/loop/server"

// frameState is what the terminal remembers between frames.
type frameState struct {
	started   bool
	prevPhase server.Phase
	prevLevel int
	prevTwo   bool
	frames    uint64
}

// needsClear reports whether snap starts a different screen than the last
// frame, so leftovers of the previous screen must be wiped.
func (f *frameState) needsClear(snap server.Snapshot) bool {
	return !f.started || snap.Phase != f.prevPhase || snap.Level != f.prevLevel || snap.TwoPlayer != f.prevTwo
}

func (f *frameState) remember(snap server.Snapshot) {
	f.started = true
	f.prevPhase = snap.Phase
	f.prevLevel = snap.Level
	f.prevTwo = snap.TwoPlayer
	f.frames++
}

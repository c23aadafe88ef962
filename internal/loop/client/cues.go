package client

import "github.com/tomz197/pong/internal/loop/server"

// CueBuffer queues cues from the physics updater until the next frame.
// Cues that arrive while the buffer is full are dropped.
type CueBuffer struct {
	ch chan server.Cue
}

// Compile-time check that CueBuffer is a server.CueSink.
var _ server.CueSink = (*CueBuffer)(nil)

// NewCueBuffer creates a buffer holding up to size cues.
func NewCueBuffer(size int) *CueBuffer {
	return &CueBuffer{ch: make(chan server.Cue, max(size, 1))}
}

// Cue queues c without blocking.
func (b *CueBuffer) Cue(c server.Cue) {
	select {
	case b.ch <- c:
	default:
	}
}

// Drain returns every queued cue in arrival order.
func (b *CueBuffer) Drain() []server.Cue {
	var cues []server.Cue
	for {
		select {
		case c := <-b.ch:
			cues = append(cues, c)
		default:
			return cues
		}
	}
}

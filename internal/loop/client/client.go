// Package client is the frontend side of a match: it maps input to
// commands, applies them, and renders snapshots at the frame rate.
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/server"
)

// InputSource produces the commands for one frame. snap is the state the
// commands will be applied to, so mappings can depend on the mode.
type InputSource interface {
	Poll(snap server.Snapshot) []server.Command
}

// Renderer presents one frame: the snapshot and the cues raised since the
// previous frame.
type Renderer interface {
	Render(snap server.Snapshot, cues []server.Cue) error
}

// KeySource reads keys from a byte stream.
type KeySource struct {
	stream *input.Stream
}

// NewKeySource starts reading r in the background.
func NewKeySource(r io.ByteReader) *KeySource {
	return &KeySource{stream: input.StartStream(r)}
}

// Poll drains the keys that arrived since the last call.
func (k *KeySource) Poll(snap server.Snapshot) []server.Command {
	return Commands(input.ReadInput(k.stream), snap.TwoPlayer)
}

// Close stops delivering keys. The background reader exits once its
// pending read returns.
func (k *KeySource) Close() {
	k.stream.Stop()
}

// Drive runs the frontend loop for game until ctx is cancelled or the game
// quits. It is the only caller of game.Apply for its session. cues may be
// nil when the renderer does not want them.
func Drive(ctx context.Context, game server.Game, src InputSource, r Renderer, cues *CueBuffer, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("drive: frame period must be positive, got %v", period)
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		for _, cmd := range src.Poll(game.Snapshot()) {
			game.Apply(cmd)
		}

		var pending []server.Cue
		if cues != nil {
			pending = cues.Drain()
		}
		if err := r.Render(game.Snapshot(), pending); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-game.Done():
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case <-game.Done():
			return nil
		case <-ticker.C:
		}
	}
}

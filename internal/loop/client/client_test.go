package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/loop/server"
)

// scriptedInput returns one batch of commands per poll.
type scriptedInput struct {
	batches [][]server.Command
	polls   int
}

func (s *scriptedInput) Poll(server.Snapshot) []server.Command {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}

type recordingRenderer struct {
	frames []server.Snapshot
	cues   []server.Cue
	err    error
}

func (r *recordingRenderer) Render(snap server.Snapshot, cues []server.Cue) error {
	r.frames = append(r.frames, snap)
	r.cues = append(r.cues, cues...)
	return r.err
}

func newServer(t *testing.T) *server.Server {
	t.Helper()
	srv, err := server.New(config.Arcade(), server.Options{})
	if err != nil {
		t.Fatalf("server.New() = %v", err)
	}
	return srv
}

func TestDriveAppliesCommandsUntilQuit(t *testing.T) {
	srv := newServer(t)
	src := &scriptedInput{batches: [][]server.Command{
		{server.Do(server.CmdSelectSinglePlayer)},
		{server.Do(server.CmdTogglePause)},
		{server.Do(server.CmdQuit)},
	}}
	r := &recordingRenderer{}

	err := Drive(context.Background(), srv, src, r, nil, time.Millisecond)
	if err != nil {
		t.Fatalf("Drive() = %v", err)
	}
	if len(r.frames) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(r.frames))
	}
	if got := r.frames[0].Phase; got != server.PhasePlaying {
		t.Errorf("frame 1 phase = %v, want playing", got)
	}
	if got := r.frames[1].Phase; got != server.PhasePaused {
		t.Errorf("frame 2 phase = %v, want paused", got)
	}
}

func TestDriveDeliversCues(t *testing.T) {
	srv := newServer(t)
	cues := NewCueBuffer(8)
	cues.Cue(server.CueScore)
	src := &scriptedInput{batches: [][]server.Command{{server.Do(server.CmdQuit)}}}
	r := &recordingRenderer{}

	if err := Drive(context.Background(), srv, src, r, cues, time.Millisecond); err != nil {
		t.Fatalf("Drive() = %v", err)
	}
	if len(r.cues) != 1 || r.cues[0] != server.CueScore {
		t.Errorf("rendered cues = %v, want [score]", r.cues)
	}
}

func TestDriveStopsOnCancel(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Drive(ctx, srv, &scriptedInput{}, &recordingRenderer{}, nil, time.Millisecond)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Drive() = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Drive did not stop after cancel")
	}
}

func TestDriveReturnsRenderError(t *testing.T) {
	srv := newServer(t)
	boom := errors.New("boom")
	err := Drive(context.Background(), srv, &scriptedInput{}, &recordingRenderer{err: boom}, nil, time.Millisecond)
	if !errors.Is(err, boom) {
		t.Fatalf("Drive() = %v, want %v", err, boom)
	}
}

func TestDriveRejectsZeroPeriod(t *testing.T) {
	srv := newServer(t)
	if err := Drive(context.Background(), srv, &scriptedInput{}, &recordingRenderer{}, nil, 0); err == nil {
		t.Fatal("expected an error")
	}
}

func newTestTerminal(buf *bytes.Buffer, bell bool) *Terminal {
	return NewTerminal(buf, TerminalOptions{
		TermSizeFunc: draw.FixedSize(80, 24),
		Bell:         bell,
		Styles:       lipgloss.NewRenderer(buf),
	})
}

func TestTerminalModeSelect(t *testing.T) {
	srv := newServer(t)
	var buf bytes.Buffer
	term := newTestTerminal(&buf, false)

	if err := term.Render(srv.Snapshot(), nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\033[H\033[2J", "1 - SINGLE PLAYER", "2 - TWO PLAYER", "Q - Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("mode select frame missing %q", want)
		}
	}
	if strings.Contains(out, "Level:") {
		t.Errorf("mode select frame shows the HUD")
	}
}

func TestTerminalPlayingFrame(t *testing.T) {
	srv := newServer(t)
	srv.Apply(server.Do(server.CmdSelectTwoPlayer))
	var buf bytes.Buffer
	term := newTestTerminal(&buf, false)

	if err := term.Render(srv.Snapshot(), nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Level: 1", "P1 0", "P2 0", "Up/Down - P2 Move", "L - Change Level", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("playing frame missing %q", want)
		}
	}

	// An identical second frame repaints only the text layer.
	buf.Reset()
	if err := term.Render(srv.Snapshot(), nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\033[2J") {
		t.Errorf("second frame cleared the screen")
	}
}

func TestTerminalOverlays(t *testing.T) {
	srv := newServer(t)
	srv.Apply(server.Do(server.CmdSelectSinglePlayer))
	srv.Apply(server.Do(server.CmdTogglePause))
	var buf bytes.Buffer
	term := newTestTerminal(&buf, false)

	if err := term.Render(srv.Snapshot(), nil); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "GAME PAUSED") || !strings.Contains(out, "Press P to Resume") {
		t.Errorf("pause overlay missing from %q", out)
	}

	snap := srv.Snapshot()
	snap.Phase = server.PhaseGameOver
	snap.Winner = server.Right
	buf.Reset()
	if err := term.Render(snap, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\033[2J", "GAME OVER", "CPU WINS!", "Press R to Restart", "Press M to Mode Select"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over frame missing %q", want)
		}
	}
}

func TestTerminalBell(t *testing.T) {
	srv := newServer(t)
	var buf bytes.Buffer
	term := newTestTerminal(&buf, true)

	_ = term.Render(srv.Snapshot(), []server.Cue{server.CueWallHit})
	if strings.Contains(buf.String(), "\a") {
		t.Errorf("bell rang for a wall hit")
	}
	buf.Reset()
	_ = term.Render(srv.Snapshot(), []server.Cue{server.CuePaddleHit})
	if !strings.Contains(buf.String(), "\a") {
		t.Errorf("bell did not ring for a paddle hit")
	}

	var quiet bytes.Buffer
	muted := newTestTerminal(&quiet, false)
	_ = muted.Render(srv.Snapshot(), []server.Cue{server.CueScore})
	if strings.Contains(quiet.String(), "\a") {
		t.Errorf("muted terminal rang the bell")
	}
}

func TestTerminalSparks(t *testing.T) {
	srv := newServer(t)
	var buf bytes.Buffer
	term := newTestTerminal(&buf, false)

	_ = term.Render(srv.Snapshot(), []server.Cue{server.CuePaddleHit})
	if len(term.particles) != 0 {
		t.Fatalf("sparks spawned outside play: %d", len(term.particles))
	}

	srv.Apply(server.Do(server.CmdSelectSinglePlayer))
	_ = term.Render(srv.Snapshot(), []server.Cue{server.CuePaddleHit})
	if len(term.particles) != sparkCount {
		t.Fatalf("got %d sparks, want %d", len(term.particles), sparkCount)
	}

	srv.Apply(server.Do(server.CmdTogglePause))
	life := term.particles[0].Lifetime
	time.Sleep(20 * time.Millisecond)
	_ = term.Render(srv.Snapshot(), nil)
	if got := term.particles[0].Lifetime; got != life {
		t.Errorf("spark aged while paused: %v -> %v", life, got)
	}
}

func TestTerminalClearsOnResize(t *testing.T) {
	srv := newServer(t)
	srv.Apply(server.Do(server.CmdSelectSinglePlayer))
	width := 80
	var buf bytes.Buffer
	term := NewTerminal(&buf, TerminalOptions{
		TermSizeFunc: func() (int, int, error) { return width, 24, nil },
		Styles:       lipgloss.NewRenderer(&buf),
	})
	_ = term.Render(srv.Snapshot(), nil)

	width = 100
	buf.Reset()
	_ = term.Render(srv.Snapshot(), nil)
	if !strings.Contains(buf.String(), "\033[2J") {
		t.Errorf("resize did not clear the screen")
	}
}

func TestWinnerText(t *testing.T) {
	tests := []struct {
		twoPlayer bool
		winner    server.Side
		want      string
	}{
		{true, server.Left, "PLAYER 1 WINS!"},
		{true, server.Right, "PLAYER 2 WINS!"},
		{false, server.Left, "PLAYER WINS!"},
		{false, server.Right, "CPU WINS!"},
	}
	for _, tt := range tests {
		snap := server.Snapshot{TwoPlayer: tt.twoPlayer, Winner: tt.winner, Phase: server.PhaseGameOver}
		if got := WinnerText(snap); got != tt.want {
			t.Errorf("WinnerText(two=%v, %v) = %q, want %q", tt.twoPlayer, tt.winner, got, tt.want)
		}
	}
}

func TestEffectText(t *testing.T) {
	e := server.Effect{Active: true, Kind: server.SpeedBoost, TicksRemaining: 90}
	got := effectText(e, time.Second/60)
	if !strings.HasPrefix(got, "[S] SPEED BOOST 2s") {
		t.Errorf("effectText() = %q", got)
	}
	if len(got) != effectWidth {
		t.Errorf("effectText() has width %d, want %d", len(got), effectWidth)
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(config.MaxTermWidth+20, config.MaxTermHeight+10)
	if w != config.MaxTermWidth || h != config.MaxTermHeight || col != 10 || row != 5 {
		t.Errorf("clampTermSize() = (%d, %d, %d, %d)", w, h, col, row)
	}
	w, h, col, row = clampTermSize(80, 24)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Errorf("clampTermSize(80, 24) = (%d, %d, %d, %d)", w, h, col, row)
	}
}

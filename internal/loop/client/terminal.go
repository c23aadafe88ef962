package client

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/loop/server"
	"github.com/tomz197/pong/internal/object"
)

// TerminalOptions configures the terminal renderer.
type TerminalOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Bell         bool               // Ring the bell on paddle hits and scores
	Styles       *lipgloss.Renderer // Color profile of the output; defaults to one detected on w
	TickPeriod   time.Duration      // Physics period, for effect countdowns
}

// Terminal renders snapshots as ANSI text. It implements Renderer.
type Terminal struct {
	w            io.Writer
	cw           *draw.ChunkWriter
	canvas       *draw.Canvas
	scene        object.Scene
	styles       *lipgloss.Renderer
	themes       map[int]Theme
	termSizeFunc draw.TermSizeFunc
	bell         bool
	tickPeriod   time.Duration
	state        frameState
	particles    []*object.Particle
	lastFrame    time.Time
}

// Compile-time check that Terminal implements Renderer.
var _ Renderer = (*Terminal)(nil)

// NewTerminal creates a renderer writing to w.
func NewTerminal(w io.Writer, opts TerminalOptions) *Terminal {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	styles := opts.Styles
	if styles == nil {
		styles = lipgloss.NewRenderer(w)
	}
	tickPeriod := opts.TickPeriod
	if tickPeriod <= 0 {
		tickPeriod = config.PhysicsTickTime
	}
	return &Terminal{
		w:            w,
		cw:           draw.NewChunkWriter(w, 0, 0),
		styles:       styles,
		themes:       make(map[int]Theme),
		termSizeFunc: termSizeFunc,
		bell:         opts.Bell,
		tickPeriod:   tickPeriod,
	}
}

// Open prepares the terminal for drawing.
func (t *Terminal) Open() error {
	draw.HideCursor(t.cw)
	draw.ClearScreen(t.cw)
	return t.cw.Flush()
}

// Close clears the screen and restores the cursor.
func (t *Terminal) Close() error {
	draw.ClearScreen(t.cw)
	draw.ShowCursor(t.cw)
	return t.cw.Flush()
}

// Sparks thrown off by a paddle hit.
const (
	sparkCount    = 8
	sparkLifetime = 0.4 // seconds
	maxFrameDelta = 100 * time.Millisecond
)

// Render draws one frame.
func (t *Terminal) Render(snap server.Snapshot, cues []server.Cue) error {
	t.updateScreen(snap)
	t.updateParticles(snap, cues)

	// On screen transitions, do a full terminal clear so overlays from the
	// previous screen don't persist.
	if t.state.needsClear(snap) {
		t.cw.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
		if snap.Phase == server.PhaseModeSelect || snap.Phase == server.PhaseGameOver {
			t.scene.Reset()
			t.particles = object.UpdateParticles(t.particles, time.Hour)
		}
	}

	t.canvas.Clear()
	if snap.Phase != server.PhaseModeSelect {
		ctx := object.DrawContext{Canvas: t.canvas, Writer: t.cw}
		for _, obj := range t.scene.Objects(snap) {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
		for _, p := range t.particles {
			if err := p.Draw(ctx); err != nil {
				return err
			}
		}
	}
	if err := t.canvas.Render(t.cw); err != nil {
		return err
	}
	if err := t.canvas.RenderBorder(t.cw); err != nil {
		return err
	}

	if err := t.drawUI(snap); err != nil {
		return err
	}

	if t.bell && (slices.Contains(cues, server.CuePaddleHit) || slices.Contains(cues, server.CueScore)) {
		draw.Bell(t.cw)
	}

	t.state.remember(snap)
	return t.cw.Flush()
}

// updateParticles ages the sparks by the wall time since the previous frame
// and throws new ones off the ball on a paddle hit. Sparks freeze while the
// match is paused.
func (t *Terminal) updateParticles(snap server.Snapshot, cues []server.Cue) {
	now := time.Now()
	var delta time.Duration
	if !t.lastFrame.IsZero() {
		delta = min(now.Sub(t.lastFrame), maxFrameDelta)
	}
	t.lastFrame = now

	if snap.Phase != server.PhasePlaying {
		return
	}
	t.particles = object.UpdateParticles(t.particles, delta)
	if slices.Contains(cues, server.CuePaddleHit) {
		t.particles = object.SpawnBurst(t.particles, snap.Ball.X, snap.Ball.Y, sparkCount, snap.Width/4, sparkLifetime)
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (t *Terminal) updateScreen(snap server.Snapshot) {
	termWidth, termHeight, err := t.termSizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if t.canvas == nil || t.canvas.LogicalWidth() != snap.Width || t.canvas.LogicalHeight() != snap.Height {
		t.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, snap.Width, snap.Height)
		t.state.started = false
	}

	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.state.started = false
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// theme returns the cached theme for level.
func (t *Terminal) theme(level int) Theme {
	th, ok := t.themes[level]
	if !ok {
		th = NewTheme(t.styles, level)
		t.themes[level] = th
	}
	return th
}

package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/pong/internal/loop/server"
	"github.com/tomz197/pong/internal/object"
)

// drawUI draws the text layer for the current phase.
func (t *Terminal) drawUI(snap server.Snapshot) error {
	termWidth := t.canvas.TerminalWidth()
	termHeight := t.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2
	th := t.theme(snap.Level)

	switch snap.Phase {
	case server.PhaseModeSelect:
		t.drawModeSelect(centerX, centerY, snap, th)
		return nil
	case server.PhasePlaying:
		t.drawHints(termWidth, termHeight, snap, th)
	case server.PhasePaused:
		t.drawPaused(centerX, centerY, th)
	case server.PhaseGameOver:
		t.drawGameOver(centerX, centerY, snap, th)
	}
	t.drawHUD(termWidth, snap, th)
	return t.drawPaddleLabels(snap)
}

// writeCentered writes styled text centered on col.
func (t *Terminal) writeCentered(col, row int, s string) {
	t.cw.WriteCentered(col, row, s, lipgloss.Width(s))
}

// drawModeSelect draws the title screen.
func (t *Terminal) drawModeSelect(centerX, centerY int, snap server.Snapshot, th Theme) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___  ___  _  _  ___  `,
		` | _ \/ _ \| \| |/ __| `,
		` |  _/ (_) | .' | (_ | `,
		` |_|  \___/|_|\_|\___| `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := t.cw
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, th.Accent.Render(line))
	}

	optionsY := titleStartY + len(titleArt) + 2
	t.writeCentered(centerX, optionsY, th.Text.Render("1 - SINGLE PLAYER"))
	two := th.Text.Render("2 - TWO PLAYER   ")
	if !snap.CanTwoPlayer {
		two = th.Hint.Render("2 - TWO PLAYER (n/a)")
	}
	t.writeCentered(centerX, optionsY+2, two)

	// Blinking prompt; the off half overwrites it with blanks.
	prompt := "Press 1 or 2 to select game mode"
	if t.state.frames/30%2 == 0 {
		t.writeCentered(centerX, optionsY+5, th.Hint.Render(prompt))
	} else {
		t.writeCentered(centerX, optionsY+5, strings.Repeat(" ", len(prompt)))
	}
	t.writeCentered(centerX, optionsY+7, th.Hint.Render("Q - Quit"))
}

// drawHUD draws scores, the level and the active effect.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (t *Terminal) drawHUD(termWidth int, snap server.Snapshot, th Theme) {
	left, right := "P1", "CPU"
	if snap.TwoPlayer {
		right = "P2"
	}
	t.cw.WriteAt(max(termWidth/4-3, 1), 1, th.Text.Render(fmt.Sprintf("%s %-2d", left, snap.Score[server.Left])))
	t.cw.WriteAt(max(3*termWidth/4-4, 1), 1, th.Text.Render(fmt.Sprintf("%s %-2d", right, snap.Score[server.Right])))
	t.writeCentered(termWidth/2+1, 1, th.Accent.Render(fmt.Sprintf(" Level: %d ", snap.Level)))

	effect := strings.Repeat(" ", effectWidth)
	if e := snap.Effect; e.Active {
		effect = effectText(e, t.tickPeriod)
	}
	t.writeCentered(termWidth/2+1, 2, th.Accent.Render(effect))
}

const effectWidth = 24

// effectText describes an active effect in a fixed-width field.
func effectText(e server.Effect, tick time.Duration) string {
	var name string
	switch e.Kind {
	case server.SpeedBoost:
		name = "SPEED BOOST"
	case server.PaddleExtend:
		name = "LONG PADDLE"
	case server.OpponentSlow:
		name = "SLOW OPPONENT"
	}
	secs := int((time.Duration(e.TicksRemaining)*tick + time.Second - 1) / time.Second)
	s := fmt.Sprintf("[%c] %s %ds", e.Kind.Glyph(), name, secs)
	return fmt.Sprintf("%-*s", effectWidth, s)
}

// drawHints draws the control hints along the bottom row.
func (t *Terminal) drawHints(termWidth, termHeight int, snap server.Snapshot, th Theme) {
	move := "W/S - P1 Move"
	if snap.TwoPlayer {
		move += "  Up/Down - P2 Move"
	}
	t.cw.WriteAt(2, termHeight, th.Hint.Render(move))
	t.writeCentered(termWidth/2+1, termHeight, th.Hint.Render("P - Pause"))
	level := "L - Change Level"
	t.cw.WriteAt(max(termWidth-len(level), 1), termHeight, th.Hint.Render(level))
}

// drawPaused draws the pause overlay.
func (t *Terminal) drawPaused(centerX, centerY int, th Theme) {
	t.writeCentered(centerX, centerY-1, th.Text.Bold(true).Render("GAME PAUSED"))
	t.writeCentered(centerX, centerY+1, th.Action.Render("Press P to Resume"))
}

// drawGameOver draws the result overlay.
func (t *Terminal) drawGameOver(centerX, centerY int, snap server.Snapshot, th Theme) {
	t.writeCentered(centerX, centerY-2, th.Text.Bold(true).Render("GAME OVER"))
	t.writeCentered(centerX, centerY, th.Winner.Render(WinnerText(snap)))
	t.writeCentered(centerX, centerY+2, th.Action.Render("Press R to Restart"))
	t.writeCentered(centerX, centerY+3, th.Action.Render("Press M to Mode Select"))
}

// WinnerText names the winner of a finished match.
func WinnerText(snap server.Snapshot) string {
	switch {
	case snap.TwoPlayer && snap.Winner == server.Left:
		return "PLAYER 1 WINS!"
	case snap.TwoPlayer:
		return "PLAYER 2 WINS!"
	case snap.Winner == server.Left:
		return "PLAYER WINS!"
	default:
		return "CPU WINS!"
	}
}

// drawPaddleLabels draws the player names above the paddles.
// Marks the drawn cells as dirty so the canvas overwrites them next frame,
// preventing stale labels from persisting when paddles move.
func (t *Terminal) drawPaddleLabels(snap server.Snapshot) error {
	labels := [2]string{"P1", "CPU"}
	if snap.TwoPlayer {
		labels[server.Right] = "P2"
	}
	termWidth := t.canvas.TerminalWidth()
	for _, side := range []server.Side{server.Left, server.Right} {
		label := labels[side]
		x := snap.PaddleWidth / 2
		if side == server.Right {
			x = snap.Width - snap.PaddleWidth/2
		}
		col, row := t.canvas.LogicalToTerminal(x, snap.PaddleY[side])
		row--
		col = min(max(col-len(label)/2, 1), termWidth-len(label)+1)
		// Rows 1 and 2 belong to the HUD.
		if row < 3 {
			continue
		}
		txt := object.Text{
			X:     col + t.canvas.OffsetCol(),
			Y:     row + t.canvas.OffsetRow(),
			Value: label,
		}
		if err := txt.Print(t.cw); err != nil {
			return err
		}
		t.canvas.MarkTextDirty(col, row, len(label))
	}
	return nil
}

package client

import (
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/server"
)

// edgeCommands maps single presses to commands. Holding these keys does
// not repeat them.
var edgeCommands = map[input.Key]server.CommandKind{
	input.KeyP:         server.CmdTogglePause,
	input.KeyL:         server.CmdCycleLevel,
	input.KeyR:         server.CmdRestart,
	input.KeyM:         server.CmdReturnToModeSelect,
	input.Key1:         server.CmdSelectSinglePlayer,
	input.Key2:         server.CmdSelectTwoPlayer,
	input.KeyQ:         server.CmdQuit,
	input.KeyInterrupt: server.CmdQuit,
}

// Commands turns one frame of input into commands. W/S always move the
// left paddle; the arrows move the right paddle in two-player mode and
// the left one otherwise. A closed input stream quits.
func Commands(in input.Input, twoPlayer bool) []server.Command {
	var cmds []server.Command

	arrowSide := server.Left
	if twoPlayer {
		arrowSide = server.Right
	}
	moves := []struct {
		key  input.Key
		side server.Side
		up   bool
	}{
		{input.KeyW, server.Left, true},
		{input.KeyS, server.Left, false},
		{input.KeyUp, arrowSide, true},
		{input.KeyDown, arrowSide, false},
	}
	for _, m := range moves {
		if in.Held.Has(m.key) {
			cmds = append(cmds, server.Move(m.side, m.up))
		}
	}

	for _, k := range in.Pressed {
		if kind, ok := edgeCommands[k]; ok {
			cmds = append(cmds, server.Do(kind))
		}
	}

	if in.Closed {
		cmds = append(cmds, server.Do(server.CmdQuit))
	}
	return cmds
}

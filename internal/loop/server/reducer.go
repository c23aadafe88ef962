package server

// CommandKind is one entry of the input vocabulary.
type CommandKind int

const (
	CmdMoveUp CommandKind = iota
	CmdMoveDown
	CmdTogglePause
	CmdCycleLevel
	CmdRestart
	CmdReturnToModeSelect
	CmdSelectSinglePlayer
	CmdSelectTwoPlayer
	CmdQuit
)

func (k CommandKind) String() string {
	switch k {
	case CmdMoveUp:
		return "move_up"
	case CmdMoveDown:
		return "move_down"
	case CmdTogglePause:
		return "toggle_pause"
	case CmdCycleLevel:
		return "cycle_level"
	case CmdRestart:
		return "restart"
	case CmdReturnToModeSelect:
		return "mode_select"
	case CmdSelectSinglePlayer:
		return "single_player"
	case CmdSelectTwoPlayer:
		return "two_player"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a mapped input event. Side only matters for moves.
type Command struct {
	Kind CommandKind
	Side Side
}

// Do returns a command of kind k.
func Do(k CommandKind) Command {
	return Command{Kind: k, Side: NoSide}
}

// Move returns a paddle move command for side.
func Move(side Side, up bool) Command {
	if up {
		return Command{Kind: CmdMoveUp, Side: side}
	}
	return Command{Kind: CmdMoveDown, Side: side}
}

// Reduce applies cmd to st and reports whether it asks the match to stop.
// Commands whose precondition does not hold are ignored.
func Reduce(st *State, cmd Command) (quit bool) {
	switch cmd.Kind {
	case CmdMoveUp, CmdMoveDown:
		if st.Phase != PhasePlaying {
			return false
		}
		side := cmd.Side
		if side != Left && (side != Right || !st.TwoPlayer) {
			return false
		}
		step := st.PaddleSpeed[side]
		if cmd.Kind == CmdMoveUp {
			step = -step
		}
		st.PaddleY[side] += step
		st.clampPaddle(side)

	case CmdTogglePause:
		switch st.Phase {
		case PhasePlaying:
			st.Phase = PhasePaused
		case PhasePaused:
			st.Phase = PhasePlaying
		}

	case CmdCycleLevel:
		if st.Phase != PhasePlaying {
			return false
		}
		st.Level = st.Level%st.cfg.LevelCount + 1
		st.clampBallSpeed()

	case CmdRestart:
		if st.Phase != PhaseGameOver {
			return false
		}
		st.resetMatch()
		st.Phase = PhasePlaying

	case CmdReturnToModeSelect:
		if st.Phase != PhaseGameOver {
			return false
		}
		st.Level = 1
		st.TwoPlayer = false
		st.resetMatch()
		st.Phase = PhaseModeSelect

	case CmdSelectSinglePlayer, CmdSelectTwoPlayer:
		if st.Phase != PhaseModeSelect {
			return false
		}
		two := cmd.Kind == CmdSelectTwoPlayer
		if two && !st.cfg.TwoPlayerSupported {
			return false
		}
		st.TwoPlayer = two
		st.Phase = PhasePlaying

	case CmdQuit:
		return true
	}
	return false
}

package server

// Cue is a discrete audio event raised by the physics updater.
type Cue int

const (
	CueWallHit Cue = iota
	CuePaddleHit
	CueScore
)

func (c Cue) String() string {
	switch c {
	case CueWallHit:
		return "wall_hit"
	case CuePaddleHit:
		return "paddle_hit"
	case CueScore:
		return "score"
	default:
		return "unknown"
	}
}

// CueSink receives cues. It is called outside the state lock and must not
// block for long.
type CueSink interface {
	Cue(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(c Cue)

// Cue calls f(c).
func (f CueFunc) Cue(c Cue) { f(c) }

type discardCues struct{}

func (discardCues) Cue(Cue) {}

// cueSet collects the cues of one tick, at most one per kind.
type cueSet uint8

func (s *cueSet) add(c Cue) {
	*s |= 1 << c
}

func (s cueSet) has(c Cue) bool {
	return s&(1<<c) != 0
}

func (s cueSet) each(fn func(Cue)) {
	for c := CueWallHit; c <= CueScore; c++ {
		if s.has(c) {
			fn(c)
		}
	}
}

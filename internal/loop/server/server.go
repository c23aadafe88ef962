// Package server runs one match: the guarded game state and the updaters
// that advance it on their own clocks.
package server

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tomz197/pong/internal/loop/config"
)

// Game is what a frontend needs from a running match.
// Decouples clients from the concrete Server.
type Game interface {
	Apply(cmd Command)
	Snapshot() Snapshot
	Done() <-chan struct{}
}

// Compile-time check that Server implements Game.
var _ Game = (*Server)(nil)

// Options configures a Server. Zero values pick sensible defaults.
type Options struct {
	Logger *log.Logger
	Cues   CueSink
	Rand   *rand.Rand // Source for serves, AI jitter and pickups
}

// Server owns one match.
type Server struct {
	cfg    config.Config
	shared *Shared
	sched  *Scheduler
	log    *log.Logger

	quit     chan struct{}
	quitOnce sync.Once
}

// New validates cfg and builds a match in ModeSelect. The updaters are not
// started until Run.
func New(cfg config.Config, opts Options) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := opts.Cues
	if cues == nil {
		cues = discardCues{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Server{
		cfg:  cfg,
		log:  logger,
		quit: make(chan struct{}),
	}
	s.shared = NewShared(NewState(&s.cfg, rng))

	s.sched = NewScheduler(logger)
	s.sched.Add(Updater{Name: "physics", Period: cfg.PhysicsPeriod, Tick: NewPhysics(s.shared, cues, logger).Tick})
	s.sched.Add(Updater{Name: "ai", Period: cfg.AIPeriod, Tick: NewAI(s.shared).Tick})
	s.sched.Add(Updater{Name: "powerups", Period: cfg.PowerUpPeriod, Tick: NewPowerUps(s.shared, logger).Tick})

	return s, nil
}

// Run starts the updaters. Blocks until the context is cancelled or a Quit
// command arrives.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.log.Info("match started", "preset", s.cfg.Preset)
	err := s.sched.Run(ctx)
	s.log.Info("match stopped")
	return err
}

// Apply reduces one command under the lock.
func (s *Server) Apply(cmd Command) {
	var (
		quit          bool
		before, after Phase
	)
	s.shared.Update(func(st *State) {
		before = st.Phase
		quit = Reduce(st, cmd)
		after = st.Phase
	})

	if before != after {
		s.log.Debug("phase changed", "from", before, "to", after, "command", cmd.Kind)
	}
	if quit {
		s.Quit()
	}
}

// Snapshot returns a copy of the current state.
func (s *Server) Snapshot() Snapshot {
	return s.shared.Snapshot()
}

// Quit stops the match. Safe to call more than once.
func (s *Server) Quit() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
}

// Done is closed once the match has been asked to quit.
func (s *Server) Done() <-chan struct{} {
	return s.quit
}

// Config returns the validated configuration of the match.
func (s *Server) Config() config.Config {
	return s.cfg
}

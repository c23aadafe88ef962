// Package loop wires one match to one frontend: the server's updaters and
// the client's frame loop run side by side until either stops.
package loop

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/client"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/loop/server"
	"golang.org/x/sync/errgroup"
)

// cueBufferSize holds a few frames' worth of cues.
const cueBufferSize = 16

// Frontend is the input and output of one session.
type Frontend struct {
	Input    client.InputSource
	Renderer client.Renderer
}

// Play runs a fresh match against fe. Blocks until the player quits or ctx
// is cancelled.
func Play(ctx context.Context, cfg config.Config, logger *log.Logger, fe Frontend) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := client.NewCueBuffer(cueBufferSize)
	srv, err := server.New(cfg, server.Options{Logger: logger, Cues: cues})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	g.Go(func() error {
		// The frontend ending (quit, closed input) ends the match.
		defer cancel()
		return client.Drive(ctx, srv, fe.Input, fe.Renderer, cues, cfg.RenderPeriod)
	})
	return g.Wait()
}

// Options configures a terminal session.
type Options struct {
	Config       config.Config
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Bell         bool
	Styles       *lipgloss.Renderer
}

// Run plays one match on a terminal: keys are read from r and frames are
// written to w. The terminal must already be in raw mode.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	term := client.NewTerminal(w, client.TerminalOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Bell:         opts.Bell,
		Styles:       opts.Styles,
		TickPeriod:   opts.Config.PhysicsPeriod,
	})
	if err := term.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	keys := client.NewKeySource(r)
	defer keys.Close()

	err := Play(ctx, opts.Config, opts.Logger, Frontend{
		Input:    keys,
		Renderer: term,
	})
	if cerr := term.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close terminal: %w", cerr)
	}
	return err
}

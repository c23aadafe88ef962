package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop"
	gameconfig "github.com/tomz197/pong/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger, err := config.NewLogger(os.Stderr, config.GetEnv("PONG_LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pong-ssh: %v\n", err)
		os.Exit(1)
	}
	if err := run(logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	if err := config.LoadDotEnv(logger); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	cfg, err := gameconfig.Resolve(config.GetEnv("PONG_CONFIG", ""), config.GetEnv("PONG_PRESET", gameconfig.DefaultPreset))
	if err != nil {
		return err
	}
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "preset", cfg.Preset)

	// Cancelled on shutdown; every session's match watches it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := &sessionHost{
		ctx:  ctx,
		cfg:  cfg,
		log:  logger,
		bell: config.GetEnvBool("PONG_BELL", true),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down", "sessions", games.active())
	games.wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// sessionHost gives every SSH session its own match.
type sessionHost struct {
	ctx  context.Context
	cfg  gameconfig.Config
	log  *log.Logger
	bell bool

	mu       sync.Mutex
	sessions int
	wg       sync.WaitGroup
}

func (h *sessionHost) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

func (h *sessionHost) track(delta int) {
	h.mu.Lock()
	h.sessions += delta
	h.mu.Unlock()
}

func (h *sessionHost) wait() {
	h.wg.Wait()
}

// middleware handles SSH sessions and runs the game.
func (h *sessionHost) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.wg.Add(1)
		defer h.wg.Done()
		h.track(1)
		defer h.track(-1)

		logger := h.log.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.ctx, cancel)
		defer stop()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Config:       h.cfg,
			Logger:       logger,
			TermSizeFunc: sizeTracker.getSize,
			Bell:         h.bell,
			Styles:       bm.MakeRenderer(sess),
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/loop"
	gameconfig "github.com/tomz197/pong/internal/loop/config"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pong: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(nil); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	// The terminal is the game screen, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("PONG_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, config.GetEnv("PONG_LOG_LEVEL", "info"))
	if err != nil {
		return err
	}

	cfg, err := gameconfig.Resolve(config.GetEnv("PONG_CONFIG", ""), config.GetEnv("PONG_PRESET", gameconfig.DefaultPreset))
	if err != nil {
		return err
	}
	logger.Info("starting", "preset", cfg.Preset, "winning_score", cfg.WinningScore)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Config: cfg,
		Logger: logger.With("session", "local"),
		Bell:   config.GetEnvBool("PONG_BELL", true),
	})
	if err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/pong/internal/config"
	gameconfig "github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger, err := config.NewLogger(os.Stderr, config.GetEnv("PONG_LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pong-web: %v\n", err)
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

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	cfg, err := gameconfig.Resolve(config.GetEnv("PONG_CONFIG", ""), config.GetEnv("PONG_PRESET", gameconfig.DefaultPreset))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games := web.NewHost(ctx, web.HostOptions{
		Config:         cfg,
		Logger:         logger,
		Page:           htmlPage,
		SSHHost:        sshHost,
		AllowedOrigins: config.GetEnvList("WEB_ALLOWED_ORIGINS"),
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           games.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "url", "http://"+addr, "preset", cfg.Preset)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	games.Wait()
	return nil
}

package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/tomz197/pong/internal/loop/config"
)

// Host serves the landing page and the /play websocket. Every connection
// gets an independent match built from the same config.
type Host struct {
	ctx      context.Context
	cfg      config.Config
	log      *log.Logger
	page     string
	origins  []string
	upgrader websocket.Upgrader
	sessions sync.WaitGroup
}

// HostOptions configures a Host.
type HostOptions struct {
	Config  config.Config
	Logger  *log.Logger
	Page    string // Landing page HTML; {{.SSHHost}} is replaced with SSHHost
	SSHHost string

	// AllowedOrigins lists extra origins, besides the host's own, that may
	// open a websocket.
	AllowedOrigins []string
}

// NewHost creates a host. Sessions end when ctx is cancelled.
func NewHost(ctx context.Context, opts HostOptions) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Host{
		ctx:     ctx,
		cfg:     opts.Config,
		log:     logger,
		page:    strings.ReplaceAll(opts.Page, "{{.SSHHost}}", opts.SSHHost),
		origins: opts.AllowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts requests without an Origin header, from the host's
// own origin, or from one of the allowed origins.
func (h *Host) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.origins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// Router returns the host's routes.
func (h *Host) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/play", h.play)
	return r
}

// Wait blocks until every session has ended.
func (h *Host) Wait() {
	h.sessions.Wait()
}

func (h *Host) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, h.page)
}

func (h *Host) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (h *Host) play(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	h.sessions.Add(1)
	defer h.sessions.Done()

	sess := NewSession(conn, h.log)
	if err := sess.Run(h.ctx, h.cfg); err != nil {
		sess.log.Warn("session error", "err", err)
	}
}

package web

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tomz197/pong/internal/loop"
	"github.com/tomz197/pong/internal/loop/client"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/loop/server"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
)

// Session is one websocket connection playing one match. Key bytes sent
// by the browser feed the same decoder as a terminal; frames go back as
// binary msgpack messages.
type Session struct {
	ID     string
	conn   *websocket.Conn
	keys   *io.PipeWriter
	input  *client.KeySource
	trail  frameTrail
	log    *log.Logger
	pumped chan struct{}
}

// Compile-time checks that Session is a full frontend.
var (
	_ client.InputSource = (*Session)(nil)
	_ client.Renderer    = (*Session)(nil)
)

// NewSession wraps an upgraded connection.
func NewSession(conn *websocket.Conn, logger *log.Logger) *Session {
	id := uuid.NewString()
	pr, pw := io.Pipe()
	return &Session{
		ID:     id,
		conn:   conn,
		keys:   pw,
		input:  client.NewKeySource(bufio.NewReader(pr)),
		log:    logger.With("session", id),
		pumped: make(chan struct{}),
	}
}

// Run plays a match until the browser quits or disconnects, or ctx is
// cancelled. The connection is closed and the read pump has exited on
// return.
func (s *Session) Run(ctx context.Context, cfg config.Config) error {
	go s.readPump()
	defer func() {
		s.input.Close()
		s.keys.Close()
		s.conn.Close()
		<-s.pumped
	}()

	s.log.Info("session started", "remote", s.conn.RemoteAddr())
	err := loop.Play(ctx, cfg, s.log, loop.Frontend{Input: s, Renderer: s})
	s.log.Info("session ended")

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return err
}

// readPump copies key bytes from the browser into the key decoder. A read
// error closes the decoder's input, which quits the match.
func (s *Session) readPump() {
	defer close(s.pumped)
	s.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.keys.CloseWithError(err)
			return
		}
		if _, err := s.keys.Write(data); err != nil {
			return
		}
	}
}

// Poll implements client.InputSource.
func (s *Session) Poll(snap server.Snapshot) []server.Command {
	return s.input.Poll(snap)
}

// Render implements client.Renderer by sending one frame.
func (s *Session) Render(snap server.Snapshot, cues []server.Cue) error {
	data, err := msgpack.Marshal(NewFrame(snap, s.trail.points(snap), cues))
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

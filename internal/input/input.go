// Package input decodes raw terminal bytes into key events.
package input

import (
	"io"
	"sync"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last
// press. It bridges the gaps between terminal auto-repeat events.
const keyHoldDuration = 80 * time.Millisecond

// Key is a decoded key press.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyS
	KeyP
	KeyL
	KeyR
	KeyM
	Key1
	Key2
	KeyQ
	KeyInterrupt // Ctrl-C in raw mode
	KeyEnter
	KeySpace
	KeyEscape
	keyCount
)

// KeySet is a set of keys.
type KeySet uint32

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

func (s *KeySet) add(k Key) {
	*s |= 1 << k
}

// Input is everything read since the previous call to ReadInput.
type Input struct {
	Pressed []Key  // Keys decoded from this read, in arrival order
	Held    KeySet // Keys pressed within keyHoldDuration
	Closed  bool   // The underlying reader has ended
}

// Stream delivers input bytes via a channel and remembers when each key was
// last seen.
type Stream struct {
	ch       chan byte
	done     chan struct{}
	stop     sync.Once
	lastSeen [keyCount]time.Time
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or after Stop, once it is no longer
// blocked in r.ReadByte.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine when nobody drains the stream anymore.
// Bytes still queued can be read; afterwards the stream reports Closed.
func (s *Stream) Stop() {
	s.stop.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream without blocking.
// It returns an empty Input when nothing arrived.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Pressed: Parse(buf), Closed: s.closed}
	for _, k := range in.Pressed {
		s.lastSeen[k] = now
	}
	for k := KeyUp; k < keyCount; k++ {
		if !s.lastSeen[k].IsZero() && now.Sub(s.lastSeen[k]) < keyHoldDuration {
			in.Held.add(k)
		}
	}
	return in
}

// Parse decodes a chunk of terminal bytes. CSI arrow sequences become arrow
// keys; unknown bytes are dropped.
func Parse(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k := arrowKey(buf[i+2]); k != KeyNone {
				keys = append(keys, k)
				i += 2
				continue
			}
		}

		if k := byteKey(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys
}

func arrowKey(code byte) Key {
	switch code {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	default:
		return KeyNone
	}
}

func byteKey(b byte) Key {
	switch b {
	case 'w', 'W':
		return KeyW
	case 's', 'S':
		return KeyS
	case 'p', 'P':
		return KeyP
	case 'l', 'L':
		return KeyL
	case 'r', 'R':
		return KeyR
	case 'm', 'M':
		return KeyM
	case '1':
		return Key1
	case '2':
		return Key2
	case 'q', 'Q':
		return KeyQ
	case '\x03':
		return KeyInterrupt
	case '\n', '\r':
		return KeyEnter
	case ' ':
		return KeySpace
	case '\x1b':
		return KeyEscape
	default:
		return KeyNone
	}
}

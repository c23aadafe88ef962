package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical MTU so SSH frames are not split.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and flushes it in
// MTU-sized pieces. Cursor positions are 1-based and shifted by the offset
// used to center the render area.
type ChunkWriter struct {
	buf    []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		buf:    make([]byte, 0, 16*1024),
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence for the offset-adjusted
// cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = appendCursor(cw.buf, col+cw.offCol, row+cw.offRow)
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends a string to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt writes s starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// WriteCentered writes s so that it is centered on col. width is the
// printable width of s, which differs from len(s) for styled text.
func (cw *ChunkWriter) WriteCentered(col, row int, s string, width int) {
	cw.WriteAt(col-width/2, row, s)
}

// Len reports the bytes buffered for the current frame.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

// Flush writes the frame to the underlying writer in chunks and resets it.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		// Do not split a multi-byte rune across chunks.
		for n < len(data) && n > 0 && !utf8.RuneStart(data[n]) {
			n--
		}
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		if err := cw.out.Flush(); err != nil {
			return err
		}
		data = data[n:]
	}
	cw.buf = cw.buf[:0]
	return nil
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// appendCursor appends ESC [ row ; col H.
func appendCursor(b []byte, col, row int) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedSize returns a TermSizeFunc that always reports width x height.
func FixedSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}

package wire

import (
	"errors"
	"io"

	"github.com/bitagoras/xtype-go/errs"
)

// Cursor is a stateful read position over a random-access byte source.
// It exists so that the token iterator can do plain sequential reads while
// the navigator can cheaply re-seek to an arbitrary absolute offset between
// calls, all without assuming the source is a live OS file handle (tests use
// an in-memory bytes.Reader).
type Cursor struct {
	src io.ReaderAt
	pos int64
}

// NewCursor constructs a Cursor over src starting at byte offset 0.
func NewCursor(src io.ReaderAt) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current absolute byte offset.
func (c *Cursor) Pos() int64 { return c.pos }

// SeekTo moves the cursor to an absolute byte offset without reading.
func (c *Cursor) SeekTo(pos int64) { c.pos = pos }

// ReadByte reads and consumes one byte, advancing the cursor.
func (c *Cursor) ReadByte() (byte, error) {
	var b [1]byte
	n, err := c.src.ReadAt(b[:], c.pos)
	if n == 1 {
		c.pos++
		return b[0], nil
	}
	if errors.Is(err, io.EOF) {
		return 0, io.EOF
	}

	return 0, errs.ErrIO
}

// ReadFull reads exactly n bytes at the current position, advancing the
// cursor by n. It returns errs.ErrTruncated if fewer than n bytes remain.
func (c *Cursor) ReadFull(n int64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	read, err := c.src.ReadAt(buf, c.pos)
	if read == int(n) {
		c.pos += n
		return buf, nil
	}
	if errors.Is(err, io.EOF) || read < int(n) {
		return nil, errs.ErrTruncated
	}

	return nil, errs.ErrIO
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int64) {
	c.pos += n
}

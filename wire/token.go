package wire

import (
	"io"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
)

// TokenKind classifies a Token yielded by Reader.Next.
type TokenKind uint8

const (
	// KindTerm is a zero-payload grammar terminal: n, T, F, [, ], {, }, or *.
	KindTerm TokenKind = iota
	// KindLength is one length field (a digit or an M/N/O/P extended form).
	// Token.N carries the decoded integer value.
	KindLength
	// KindType is a scalar element tag that terminates an accumulated
	// length chain. Token.N carries the total payload byte count.
	KindType
)

// Token is one atom of the grammar as seen by Layer A.
type Token struct {
	Tag  format.Tag
	Kind TokenKind
	N    int64
}

// Reader is the pull-style tokenizer described as "Layer A" in the design:
// it yields (tag, kind, n) triples and lazily skips unread payloads. It
// carries a running length-multiplier that accumulates across successive
// LENGTH tokens and resets after every TERM or TYPE token, and a
// pending-payload counter that the next call to Next skips over by seeking
// forward rather than reading.
type Reader struct {
	cur     *Cursor
	engine  endian.EndianEngine
	accum   int64 // product of length values seen since the last TYPE/TERM
	pending int64 // unread payload bytes from the last TYPE token
}

// NewReader constructs a Reader positioned at cur's current offset, decoding
// length fields in engine's byte order.
func NewReader(cur *Cursor, engine endian.EndianEngine) *Reader {
	return &Reader{cur: cur, engine: engine, accum: 1}
}

// Pos returns the reader's current absolute byte offset.
func (r *Reader) Pos() int64 { return r.cur.Pos() }

// SeekTo moves the reader to an absolute byte offset, discarding any pending
// payload and resetting the length-multiplier accumulator.
func (r *Reader) SeekTo(pos int64) {
	r.cur.SeekTo(pos)
	r.accum = 1
	r.pending = 0
}

// ReadPayload reads and consumes n bytes starting at the reader's current
// position, which must immediately follow a TYPE token. It clears the
// pending-payload counter, since the caller has now consumed it directly
// instead of letting the next Next call skip it.
func (r *Reader) ReadPayload(n int64) ([]byte, error) {
	buf, err := r.cur.ReadFull(n)
	if err != nil {
		return nil, err
	}
	r.pending = 0

	return buf, nil
}

// Next yields the next token, first skipping any pending payload left
// unread by the caller after a prior TYPE token. It returns io.EOF when the
// stream ends exactly at a token boundary, which callers at the container
// level treat as an implicit close rather than an error.
func (r *Reader) Next() (Token, error) {
	if r.pending > 0 {
		r.cur.Skip(r.pending)
		r.pending = 0
	}

	b, err := r.cur.ReadByte()
	if err != nil {
		return Token{}, io.EOF
	}
	tag := format.Tag(b)

	switch {
	case format.IsDigit(tag):
		n := int64(tag - '0')
		r.accum *= n

		return Token{Tag: tag, Kind: KindLength, N: n}, nil

	case format.IsLengthTag(tag):
		v, err := decodeLengthPayload(r.cur, tag, r.engine)
		if err != nil {
			return Token{}, err
		}
		n := int64(v) //nolint:gosec
		r.accum *= n

		return Token{Tag: tag, Kind: KindLength, N: n}, nil

	case format.IsTerminal(tag):
		elemBytes, ok := format.ElementBytes(tag)
		if !ok {
			// n, T, F: zero-width terminals, no payload, no length chain.
			r.accum = 1

			return Token{Tag: tag, Kind: KindTerm, N: 0}, nil
		}

		payload := r.accum * int64(elemBytes)
		r.accum = 1
		r.pending = payload

		return Token{Tag: tag, Kind: KindType, N: payload}, nil

	case tag == format.TagListOpen, tag == format.TagListClose,
		tag == format.TagMapOpen, tag == format.TagMapClose,
		tag == format.TagFootnote:
		r.accum = 1

		return Token{Tag: tag, Kind: KindTerm, N: 0}, nil

	default:
		return Token{}, errs.ErrBadTag
	}
}

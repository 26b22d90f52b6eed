package wire

import (
	"io"

	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
)

// Header is the result of folding a run of LENGTH tokens and their
// terminating TERM/TYPE token, as produced by ReadHeader ("Layer B").
type Header struct {
	// Tag is the terminal tag: a scalar element tag, a container open/close
	// tag, or one of n/T/F.
	Tag format.Tag
	// Shape holds the accumulated length values in encounter order. It is
	// empty for a scalar element and for any TERM-kind header.
	Shape []int64
	// PayloadSize is the total raw payload byte count for a scalar/array
	// element header; zero for TERM-kind headers.
	PayloadSize int64
	// EOF is true when the stream ended before a header could be read,
	// which callers at container level treat as an implicit close.
	EOF bool
}

// IsContainerOpen reports whether the header starts a list or map.
func (h Header) IsContainerOpen() bool {
	return h.Tag == format.TagListOpen || h.Tag == format.TagMapOpen
}

// IsContainerClose reports whether the header is a list or map close tag.
func (h Header) IsContainerClose() bool {
	return h.Tag == format.TagListClose || h.Tag == format.TagMapClose
}

// IsArray reports whether the header carries a shape (one or more length
// fields). This includes 1-D string and byte runs.
func (h Header) IsArray() bool {
	return len(h.Shape) > 0
}

// ReadHeader reads one header from r, transparently skipping any footnotes
// that precede the real value (Layer B of the design). EOF at a value
// boundary is reported as Header{EOF: true}, nil rather than an error,
// matching the grammar's "EOF closes the enclosing container" rule.
func ReadHeader(r *Reader) (Header, error) {
	var shape []int64

	for {
		tok, err := r.Next()
		if err == io.EOF {
			return Header{EOF: true}, nil
		}
		if err != nil {
			return Header{}, err
		}

		switch tok.Kind {
		case KindLength:
			shape = append(shape, tok.N)

		case KindType:
			return Header{Tag: tok.Tag, Shape: shape, PayloadSize: tok.N}, nil

		case KindTerm:
			if tok.Tag == format.TagFootnote {
				// A footnote carries one full value that must be skipped
				// before continuing to read the header it decorates.
				if err := SkipValue(r); err != nil {
					return Header{}, err
				}
				shape = shape[:0]

				continue
			}

			return Header{Tag: tok.Tag}, nil
		}
	}
}

// SkipValue reads and discards one complete value (element, list, or map,
// including any footnotes attached to it) without materializing it, leaving
// the reader positioned just past the value.
func SkipValue(r *Reader) error {
	hdr, err := ReadHeader(r)
	if err != nil {
		return err
	}
	if hdr.EOF {
		return nil
	}

	return skipFromHeader(r, hdr)
}

// SkipBody discards the payload or children of a header already obtained
// from ReadHeader, without re-reading the header itself. Callers that must
// branch on a header's tag before deciding whether to materialize or skip
// it (the navigator's index/key-scan walks) use this instead of SkipValue.
func SkipBody(r *Reader, hdr Header) error {
	return skipFromHeader(r, hdr)
}

func skipFromHeader(r *Reader, hdr Header) error {
	switch {
	case hdr.Tag == format.TagListOpen:
		return skipListBody(r)
	case hdr.Tag == format.TagMapOpen:
		return skipMapBody(r)
	case hdr.IsContainerClose():
		// Only reachable if the caller is skipping a header read past an
		// unexpected close; nothing further to consume.
		return nil
	default:
		if hdr.PayloadSize == 0 {
			return nil
		}
		_, err := r.ReadPayload(hdr.PayloadSize)

		return err
	}
}

func skipListBody(r *Reader) error {
	for {
		hdr, err := ReadHeader(r)
		if err != nil {
			return err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return nil
		}
		if err := skipFromHeader(r, hdr); err != nil {
			return err
		}
	}
}

func skipMapBody(r *Reader) error {
	for {
		keyHdr, err := ReadHeader(r)
		if err != nil {
			return err
		}
		if keyHdr.EOF || keyHdr.Tag == format.TagMapClose {
			return nil
		}
		if keyHdr.IsContainerOpen() {
			return errs.ErrBadKey
		}
		if err := skipFromHeader(r, keyHdr); err != nil {
			return err
		}

		valHdr, err := ReadHeader(r)
		if err != nil {
			return err
		}
		if valHdr.EOF {
			return nil
		}
		if err := skipFromHeader(r, valHdr); err != nil {
			return err
		}
	}
}

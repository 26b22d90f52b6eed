package xtypedump

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/wire"
)

// Options configures a dump pass.
type Options struct {
	// Indent is repeated once per nesting level. Defaults to two spaces.
	Indent string
	// MaxDepth stops descending into containers past this nesting level,
	// printing a placeholder instead. Zero means unlimited.
	MaxDepth int
	// MaxBytesPerPayload truncates a hex-dumped payload to this many bytes,
	// appending "..." when truncation occurred. Zero means unlimited.
	MaxBytesPerPayload int
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = "  "
	}

	return o
}

// Dump walks the value at offset and returns one line per atom: brackets
// on their own lines with indentation, and each element's length prefix
// kept inline with its type tag and payload.
func Dump(src io.ReaderAt, engine endian.EndianEngine, offset int64, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	r := wire.NewReader(wire.NewCursor(src), engine)
	r.SeekTo(offset)

	d := &dumper{r: r, engine: engine, opts: opts}
	if _, err := d.readOne(0); err != nil {
		return nil, err
	}

	return d.lines, nil
}

type atomResult int

const (
	atomValue atomResult = iota
	atomClose
	atomEOF
)

type dumper struct {
	r      *wire.Reader
	engine endian.EndianEngine
	opts   Options
	lines  []string
}

func (d *dumper) line(depth int, text string) {
	d.lines = append(d.lines, strings.Repeat(d.opts.Indent, depth)+text)
}

// readOne consumes exactly one grammar atom at the current position: a
// scalar/array element, a complete bracketed container (recursing for its
// children), a footnote (dumped then transparently chained into the header
// it decorates), a close tag, or EOF.
func (d *dumper) readOne(depth int) (atomResult, error) {
	var shape []int64

	for {
		tok, err := d.r.Next()
		if err == io.EOF {
			return atomEOF, nil
		}
		if err != nil {
			return atomEOF, err
		}

		switch tok.Kind {
		case wire.KindLength:
			shape = append(shape, tok.N)

		case wire.KindType:
			if err := d.emitElement(depth, shape, tok.Tag, tok.N); err != nil {
				return atomEOF, err
			}

			return atomValue, nil

		case wire.KindTerm:
			switch tok.Tag {
			case format.TagFootnote:
				d.line(depth, "*")

				res, err := d.readOne(depth + 1)
				if err != nil {
					return atomEOF, err
				}
				if res != atomValue {
					return res, nil
				}

				shape = nil

			case format.TagListOpen:
				if err := d.descend(depth, format.TagListOpen, "[", "]"); err != nil {
					return atomEOF, err
				}

				return atomValue, nil

			case format.TagMapOpen:
				if err := d.descendMap(depth); err != nil {
					return atomEOF, err
				}

				return atomValue, nil

			case format.TagListClose, format.TagMapClose:
				return atomClose, nil

			default: // n, T, F
				d.line(depth, string(rune(tok.Tag)))

				return atomValue, nil
			}
		}
	}
}

func (d *dumper) descend(depth int, openTag format.Tag, openSym, closeSym string) error {
	d.line(depth, openSym)

	if d.opts.MaxDepth > 0 && depth+1 > d.opts.MaxDepth {
		d.line(depth+1, "...")

		if err := wire.SkipBody(d.r, wire.Header{Tag: openTag}); err != nil {
			return err
		}
	} else {
		for {
			res, err := d.readOne(depth + 1)
			if err != nil {
				return err
			}
			if res != atomValue {
				break
			}
		}
	}

	d.line(depth, closeSym)

	return nil
}

func (d *dumper) descendMap(depth int) error {
	d.line(depth, "{")

	if d.opts.MaxDepth > 0 && depth+1 > d.opts.MaxDepth {
		d.line(depth+1, "...")

		if err := wire.SkipBody(d.r, wire.Header{Tag: format.TagMapOpen}); err != nil {
			return err
		}
	} else {
		for {
			keyRes, err := d.readOne(depth + 1)
			if err != nil {
				return err
			}
			if keyRes != atomValue {
				break
			}

			valRes, err := d.readOne(depth + 1)
			if err != nil {
				return err
			}
			if valRes != atomValue {
				break
			}
		}
	}

	d.line(depth, "}")

	return nil
}

func (d *dumper) emitElement(depth int, shape []int64, tag format.Tag, payloadSize int64) error {
	payload, err := d.r.ReadPayload(payloadSize)
	if err != nil {
		return err
	}

	prefix := ""
	if len(shape) > 0 {
		parts := make([]string, len(shape))
		for i, s := range shape {
			parts[i] = strconv.FormatInt(s, 10)
		}

		prefix = strings.Join(parts, "x") + " "
	}

	var repr string
	switch tag {
	case format.TagUTF8, format.TagUTF16:
		if len(shape) <= 1 {
			repr = strconv.Quote(decodeText(tag, payload, d.engine))
		} else {
			repr = hexDump(payload, d.opts.MaxBytesPerPayload)
		}
	default:
		repr = hexDump(payload, d.opts.MaxBytesPerPayload)
	}

	d.line(depth, fmt.Sprintf("%s%c: %s", prefix, byte(tag), repr))

	return nil
}

func decodeText(tag format.Tag, payload []byte, engine endian.EndianEngine) string {
	if tag == format.TagUTF8 {
		return string(payload)
	}

	units := make([]uint16, len(payload)/2)
	for i := range units {
		units[i] = engine.Uint16(payload[i*2:])
	}

	return string(utf16.Decode(units))
}

func hexDump(data []byte, max int) string {
	truncated := false
	if max > 0 && len(data) > max {
		data = data[:max]
		truncated = true
	}

	s := hex.EncodeToString(data)
	if truncated {
		s += "..."
	}

	return s
}

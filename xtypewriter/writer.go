package xtypewriter

import (
	"io"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/internal/pool"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/wire"
)

// Writer emits the grammar to an append-only byte stream. It buffers
// fragments in a pooled byte buffer; Flush guarantees buffered bytes reach
// the underlying writer and is idempotent.
//
// Writer is the file-level handle described by the incremental container
// proxy design: it owns the scope stack and the last-accessed scope
// pointer so callers can write Writer.Last().Add(v) without holding a
// reference to every ancestor scope.
type Writer struct {
	out    io.Writer
	engine endian.EndianEngine
	buf    *pool.ByteBuffer

	root *Scope
	last *Scope
}

// New constructs a Writer that encodes values in engine's byte order and
// appends raw bytes to out as they are flushed.
func New(out io.Writer, engine endian.EndianEngine) *Writer {
	return &Writer{out: out, engine: engine, buf: pool.GetBlobBuffer()}
}

// Engine returns the byte order the writer encodes with.
func (wr *Writer) Engine() endian.EndianEngine { return wr.engine }

// Last returns the most-recently touched open scope, or nil if no
// container has been opened yet (the root value is still undetermined).
func (wr *Writer) Last() *Scope { return wr.last }

// Root returns the root-level scope, or nil if nothing has been written
// yet.
func (wr *Writer) Root() *Scope { return wr.root }

// WriteBOM emits the canonical byte-order-mark footnote (`*` `j` int16
// 1234) in the writer's configured byte order.
func (wr *Writer) WriteBOM() error {
	wr.buf.MustWrite([]byte{byte(format.TagFootnote), byte(format.TagInt16)})
	wr.buf.B = wr.engine.AppendUint16(wr.buf.B, uint16(endian.BOMValue)) //nolint:gosec

	return nil
}

// WriteValue writes one complete top-level value (recursing through any
// lists/maps it contains) after a leading BOM, then flushes.
func (wr *Writer) WriteValue(v value.Value) error {
	if err := wr.WriteBOM(); err != nil {
		return err
	}
	if err := wr.encodeValue(v); err != nil {
		return err
	}

	return wr.Flush()
}

// Flush writes any buffered bytes to the underlying writer. Flush is
// idempotent: calling it with nothing pending is a no-op.
func (wr *Writer) Flush() error {
	if wr.buf.Len() == 0 {
		return nil
	}

	_, err := wr.buf.WriteTo(wr.out)
	wr.buf.Reset()
	if err != nil {
		return errs.ErrIO
	}

	return nil
}

// Close flushes and closes every open scope innermost-first, guaranteeing
// a balanced grammar at EOF.
func (wr *Writer) Close() error {
	for wr.last != nil {
		if err := wr.last.Close(); err != nil {
			return err
		}
	}

	err := wr.Flush()
	pool.PutBlobBuffer(wr.buf)

	return err
}

func (wr *Writer) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		wr.buf.MustWrite([]byte{byte(format.TagNull)})
		return nil
	case value.KindBool:
		if v.Bool() {
			wr.buf.MustWrite([]byte{byte(format.TagTrue)})
		} else {
			wr.buf.MustWrite([]byte{byte(format.TagFalse)})
		}

		return nil
	case value.KindInt:
		return wr.encodeScalar(value.ChooseIntTag(v.Int()), v)
	case value.KindUint:
		return wr.encodeScalar(value.ChooseUintTag(v.Uint()), v)
	case value.KindFloat:
		return wr.encodeScalar(format.TagFloat64, v)
	case value.KindString:
		return wr.encodeString(v.Str())
	case value.KindBytes:
		return wr.encodeBytes(v.Bytes())
	case value.KindArray:
		return wr.encodeArray(v.Array())
	case value.KindList:
		return wr.encodeList(v.List())
	case value.KindMap:
		return wr.encodeMap(v.Map())
	default:
		return errs.ErrUnsupportedType
	}
}

func (wr *Writer) encodeScalar(tag format.Tag, v value.Value) error {
	wr.buf.MustWrite([]byte{byte(tag)})

	payload, err := value.EncodeScalar(nil, tag, v, wr.engine)
	if err != nil {
		return err
	}
	wr.buf.MustWrite(payload)

	return nil
}

func (wr *Writer) encodeString(s string) error {
	data := []byte(s)
	wr.buf.B = wire.EncodeLength(wr.buf.B, uint64(len(data)), wr.engine)
	wr.buf.MustWrite([]byte{byte(format.TagUTF8)})
	wr.buf.MustWrite(data)

	return nil
}

func (wr *Writer) encodeBytes(data []byte) error {
	wr.buf.B = wire.EncodeLength(wr.buf.B, uint64(len(data)), wr.engine)
	wr.buf.MustWrite([]byte{byte(format.TagBytes)})
	wr.buf.MustWrite(data)

	return nil
}

// encodeArray writes each dimension as a length, the element tag, then the
// contiguous row-major payload in the writer's byte order. a.Data is
// assumed to already be in host byte order; it is byte-swapped into file
// order on the way out without mutating the caller's slice.
func (wr *Writer) encodeArray(a value.Array) error {
	if len(a.Shape) == 0 {
		return errs.ErrUnsupportedType
	}

	for _, d := range a.Shape {
		if d < 0 {
			return errs.ErrValueTooLarge
		}
		wr.buf.B = wire.EncodeLength(wr.buf.B, uint64(d), wr.engine) //nolint:gosec
	}
	wr.buf.MustWrite([]byte{byte(a.Tag)})

	width := a.ElementBytes()
	if endian.NeedByteswap(wr.engine) && width > 1 {
		swapped := append([]byte(nil), a.Data...)
		endian.SwapBytes(swapped, width)
		wr.buf.MustWrite(swapped)
	} else {
		wr.buf.MustWrite(a.Data)
	}

	return nil
}

func (wr *Writer) encodeList(items []value.Value) error {
	wr.buf.MustWrite([]byte{byte(format.TagListOpen)})
	for _, item := range items {
		if err := wr.encodeValue(item); err != nil {
			return err
		}
	}
	wr.buf.MustWrite([]byte{byte(format.TagListClose)})

	return nil
}

func (wr *Writer) encodeMap(m value.Map) error {
	wr.buf.MustWrite([]byte{byte(format.TagMapOpen)})
	for _, pair := range m {
		key := pair.Key
		if key.Kind() != value.KindString {
			key = value.String(key.String())
		}
		if err := wr.encodeString(key.Str()); err != nil {
			return err
		}
		if err := wr.encodeValue(pair.Val); err != nil {
			return err
		}
	}
	wr.buf.MustWrite([]byte{byte(format.TagMapClose)})

	return nil
}

package value

import (
	"strings"
	"unicode/utf16"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/wire"
)

// Materialize reads one complete top-level value from r (Layer C of the
// reader), recursing through lists and maps. ok is false, with a nil error,
// when the stream holds no value at all -- "no value, no error" for an
// empty file, per the design note -- rather than an empty file being an
// error condition.
func Materialize(r *wire.Reader, engine endian.EndianEngine) (v Value, ok bool, err error) {
	hdr, err := wire.ReadHeader(r)
	if err != nil {
		return Value{}, false, err
	}
	if hdr.EOF {
		return Value{}, false, nil
	}

	v, err = fromHeader(r, hdr, engine)
	if err != nil {
		return Value{}, false, err
	}

	return v, true, nil
}

// MaterializeFromHeader decodes the value whose header was already read as
// hdr, continuing to read its body/children (if any) from r. Callers that
// must inspect a header's tag before deciding whether to materialize or skip
// it -- the navigator's index and key-scan walks -- use this instead of
// Materialize, which would re-read the header itself.
func MaterializeFromHeader(r *wire.Reader, hdr wire.Header, engine endian.EndianEngine) (Value, error) {
	return fromHeader(r, hdr, engine)
}

func fromHeader(r *wire.Reader, hdr wire.Header, engine endian.EndianEngine) (Value, error) {
	switch {
	case hdr.Tag == format.TagListOpen:
		return materializeList(r, engine)
	case hdr.Tag == format.TagMapOpen:
		return materializeMap(r, engine)
	case hdr.IsContainerClose():
		// A bare close with nothing open; ReadHeader never hands this to a
		// caller that just opened a container, so reaching here means the
		// stream itself is malformed at the point this value started.
		return Value{}, errs.ErrBadTag
	default:
		return materializeElement(r, hdr, engine)
	}
}

func materializeList(r *wire.Reader, engine endian.EndianEngine) (Value, error) {
	var items []Value

	for {
		hdr, err := wire.ReadHeader(r)
		if err != nil {
			return Value{}, err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return List(items), nil
		}

		v, err := fromHeader(r, hdr, engine)
		if err != nil {
			return Value{}, err
		}

		items = append(items, v)
	}
}

func materializeMap(r *wire.Reader, engine endian.EndianEngine) (Value, error) {
	var pairs Map

	for {
		keyHdr, err := wire.ReadHeader(r)
		if err != nil {
			return Value{}, err
		}
		if keyHdr.EOF || keyHdr.Tag == format.TagMapClose {
			return MapValue(pairs), nil
		}
		if keyHdr.IsContainerOpen() {
			return Value{}, errs.ErrBadKey
		}

		key, err := materializeElement(r, keyHdr, engine)
		if err != nil {
			return Value{}, err
		}

		valHdr, err := wire.ReadHeader(r)
		if err != nil {
			return Value{}, err
		}
		if valHdr.EOF {
			return Value{}, errs.ErrTruncated
		}

		val, err := fromHeader(r, valHdr, engine)
		if err != nil {
			return Value{}, err
		}

		pairs = append(pairs, Pair{Key: key, Val: val})
	}
}

// materializeElement decodes a non-container header: a bare scalar, a
// string (1-D s/u), a byte run (1-D x/S), a fixed-width string array (s/u
// with >=2 lengths), or an n-D numeric/bool array.
func materializeElement(r *wire.Reader, hdr wire.Header, engine endian.EndianEngine) (Value, error) {
	if hdr.PayloadSize == 0 && len(hdr.Shape) == 0 {
		return DecodeScalar(hdr.Tag, nil, engine)
	}

	payload, err := r.ReadPayload(hdr.PayloadSize)
	if err != nil {
		return Value{}, err
	}

	switch hdr.Tag {
	case format.TagUTF8, format.TagUTF16:
		if len(hdr.Shape) <= 1 {
			return String(decodeText(hdr.Tag, payload, engine)), nil
		}

		return decodeStringArray(hdr, payload, engine)

	case format.TagBytes, format.TagStruct:
		if len(hdr.Shape) <= 1 {
			return Bytes(payload), nil
		}

		return ArrayValue(Array{Tag: hdr.Tag, Shape: hdr.Shape, Data: payload}), nil

	default:
		if len(hdr.Shape) == 0 {
			return DecodeScalar(hdr.Tag, payload, engine)
		}

		width, _ := format.ElementBytes(hdr.Tag)
		if endian.NeedByteswap(engine) {
			endian.SwapBytes(payload, width)
		}

		return ArrayValue(Array{Tag: hdr.Tag, Shape: hdr.Shape, Data: payload}), nil
	}
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

// decodeStringArray handles s/u tags with two or more length fields: the
// last length is the per-string byte width, and the remaining lengths form
// the shape of a nested array of strings, zero-padding stripped.
func decodeStringArray(hdr wire.Header, payload []byte, engine endian.EndianEngine) (Value, error) {
	n := len(hdr.Shape)
	width := hdr.Shape[n-1]
	outer := hdr.Shape[:n-1]

	total := int64(1)
	for _, d := range outer {
		total *= d
	}

	strs := make([]string, total)
	for i := range strs {
		chunk := payload[i*int(width) : (i+1)*int(width)]
		strs[i] = strings.TrimRight(decodeText(hdr.Tag, chunk, engine), "\x00")
	}

	return buildNestedStringList(outer, strs), nil
}

func buildNestedStringList(shape []int64, flat []string) Value {
	if len(shape) == 0 {
		if len(flat) == 0 {
			return String("")
		}

		return String(flat[0])
	}
	if len(shape) == 1 {
		items := make([]Value, shape[0])
		for i := range items {
			items[i] = String(flat[i])
		}

		return List(items)
	}

	stride := int64(1)
	for _, d := range shape[1:] {
		stride *= d
	}

	items := make([]Value, shape[0])
	for i := range items {
		items[i] = buildNestedStringList(shape[1:], flat[int64(i)*stride:(int64(i)+1)*stride])
	}

	return List(items)
}

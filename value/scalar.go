package value

import (
	"math"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/x448/float16"
)

// DecodeScalar interprets a single element's raw payload (exactly
// format.ElementBytes(tag) bytes, already consumed from the wire) as a
// Value, honoring engine's byte order for multi-byte tags.
func DecodeScalar(tag format.Tag, payload []byte, engine endian.EndianEngine) (Value, error) {
	switch tag {
	case format.TagNull:
		return Null(), nil
	case format.TagTrue:
		return Bool(true), nil
	case format.TagFalse:
		return Bool(false), nil
	case format.TagBool:
		return Bool(payload[0] != 0), nil

	case format.TagInt8:
		return Int(int64(int8(payload[0]))), nil
	case format.TagInt16:
		return Int(int64(int16(engine.Uint16(payload)))), nil //nolint:gosec
	case format.TagInt32:
		return Int(int64(int32(engine.Uint32(payload)))), nil //nolint:gosec
	case format.TagInt64:
		return Int(int64(engine.Uint64(payload))), nil //nolint:gosec

	case format.TagUint8:
		return Uint(uint64(payload[0])), nil
	case format.TagUint16:
		return Uint(uint64(engine.Uint16(payload))), nil
	case format.TagUint32:
		return Uint(uint64(engine.Uint32(payload))), nil
	case format.TagUint64:
		return Uint(engine.Uint64(payload)), nil

	case format.TagFloat16:
		return Float(float64(float16.Frombits(engine.Uint16(payload)).Float32())), nil
	case format.TagFloat32:
		return Float(float64(math.Float32frombits(engine.Uint32(payload)))), nil
	case format.TagFloat64:
		return Float(math.Float64frombits(engine.Uint64(payload))), nil

	default:
		return Value{}, errs.ErrUnsupportedType
	}
}

// EncodeScalar appends v's payload bytes to dst for the given tag, in
// engine's byte order. v's kind must already be compatible with tag (see
// ChooseIntTag/ChooseUintTag for narrowest-tag selection on write); this
// function does not itself range-check beyond what the fixed-width append
// implies.
func EncodeScalar(dst []byte, tag format.Tag, v Value, engine endian.EndianEngine) ([]byte, error) {
	switch tag {
	case format.TagNull, format.TagTrue, format.TagFalse:
		return dst, nil
	case format.TagBool:
		if v.Bool() {
			return append(dst, 0xFF), nil
		}

		return append(dst, 0x00), nil

	case format.TagInt8:
		return append(dst, byte(int8(intOf(v)))), nil
	case format.TagInt16:
		return engine.AppendUint16(dst, uint16(int16(intOf(v)))), nil
	case format.TagInt32:
		return engine.AppendUint32(dst, uint32(int32(intOf(v)))), nil
	case format.TagInt64:
		return engine.AppendUint64(dst, uint64(intOf(v))), nil

	case format.TagUint8:
		return append(dst, byte(uintOf(v))), nil
	case format.TagUint16:
		return engine.AppendUint16(dst, uint16(uintOf(v))), nil
	case format.TagUint32:
		return engine.AppendUint32(dst, uint32(uintOf(v))), nil
	case format.TagUint64:
		return engine.AppendUint64(dst, uintOf(v)), nil

	case format.TagFloat16:
		return engine.AppendUint16(dst, float16.Fromfloat32(float32(v.Float())).Bits()), nil
	case format.TagFloat32:
		return engine.AppendUint32(dst, math.Float32bits(float32(v.Float()))), nil
	case format.TagFloat64:
		return engine.AppendUint64(dst, math.Float64bits(v.Float())), nil

	default:
		return nil, errs.ErrUnsupportedType
	}
}

// intOf widens whichever of Int/Uint the Value actually carries to int64,
// so EncodeScalar can serve both kinds through the signed-tag branches.
func intOf(v Value) int64 {
	if v.Kind() == KindUint {
		return int64(v.Uint()) //nolint:gosec
	}

	return v.Int()
}

func uintOf(v Value) uint64 {
	if v.Kind() == KindInt {
		return uint64(v.Int()) //nolint:gosec
	}

	return v.Uint()
}

// ChooseIntTag selects the narrowest tag that fits i's sign and magnitude,
// per the spec's "200 => I, -200 => j" rule. An untyped zero defaults to
// the narrowest unsigned tag, TagUint8, matching the original encoder's
// int-narrowing for the zero value and the S1 scenario's round-trip of 42
// through tag I.
func ChooseIntTag(i int64) format.Tag {
	switch {
	case i >= 0:
		switch {
		case i <= math.MaxUint8:
			return format.TagUint8
		case i <= math.MaxUint16:
			return format.TagUint16
		case i <= math.MaxUint32:
			return format.TagUint32
		default:
			return format.TagUint64
		}
	default:
		switch {
		case i >= math.MinInt8:
			return format.TagInt8
		case i >= math.MinInt16:
			return format.TagInt16
		case i >= math.MinInt32:
			return format.TagInt32
		default:
			return format.TagInt64
		}
	}
}

// ChooseUintTag selects the narrowest unsigned tag that fits u, used for
// values that only ever arise unsigned (e.g. large_int beyond int64 range
// represented as a Go uint64).
func ChooseUintTag(u uint64) format.Tag {
	switch {
	case u <= math.MaxUint8:
		return format.TagUint8
	case u <= math.MaxUint16:
		return format.TagUint16
	case u <= math.MaxUint32:
		return format.TagUint32
	default:
		return format.TagUint64
	}
}

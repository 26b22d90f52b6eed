package wire

import (
	"math"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
)

// EncodeLength appends the canonical encoding of n to dst and returns the
// extended slice. The encoding is canonical: a single ASCII digit for n<=9,
// otherwise the smallest of M/N/O/P that fits n.
//
// EncodeLength cannot fail: every uint64 fits the P form. Callers that build
// n from a signed source must reject negative values themselves.
func EncodeLength(dst []byte, n uint64, engine endian.EndianEngine) []byte {
	switch {
	case n <= 9:
		return append(dst, byte('0')+byte(n))
	case n <= math.MaxUint8:
		dst = append(dst, byte(format.TagLenU8), byte(n))
		return dst
	case n <= math.MaxUint16:
		dst = append(dst, byte(format.TagLenU16))
		return engine.AppendUint16(dst, uint16(n))
	case n <= math.MaxUint32:
		dst = append(dst, byte(format.TagLenU32))
		return engine.AppendUint32(dst, uint32(n))
	default:
		dst = append(dst, byte(format.TagLenU64))
		return engine.AppendUint64(dst, n)
	}
}

// decodeLengthPayload reads the raw bytes following an extended length tag
// and decodes them as an unsigned integer in engine's byte order. The
// decoder is tolerant: it accepts any valid extended form (including a
// padded P for a small value) per the format's tolerant-reader principle.
func decodeLengthPayload(c *Cursor, tag format.Tag, engine endian.EndianEngine) (uint64, error) {
	n, ok := format.LengthPayloadBytes(tag)
	if !ok {
		return 0, errs.ErrBadTag
	}

	buf, err := c.ReadFull(int64(n))
	if err != nil {
		return 0, err
	}

	switch n {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(engine.Uint16(buf)), nil
	case 4:
		return uint64(engine.Uint32(buf)), nil
	default:
		return engine.Uint64(buf), nil
	}
}

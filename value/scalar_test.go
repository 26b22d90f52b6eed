package value

import (
	"testing"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/format"
	"github.com/stretchr/testify/require"
)

func TestChooseIntTag(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		n    int64
		want format.Tag
	}{
		{0, format.TagUint8},
		{42, format.TagUint8},
		{200, format.TagUint8},
		{-200, format.TagInt16},
		{255, format.TagUint8},
		{256, format.TagUint16},
		{-1, format.TagInt8},
		{9223372036854775807, format.TagUint64},
	}
	for _, tt := range tests {
		require.Equal(tt.want, ChooseIntTag(tt.n), "n=%d", tt.n)
	}
}

func TestChooseUintTag(t *testing.T) {
	require := require.New(t)
	require.Equal(format.TagUint64, ChooseUintTag(9223372036854775807+1))
}

func TestScalarRoundTrip(t *testing.T) {
	require := require.New(t)

	tests := []Value{
		Int(42),
		Int(-200),
		Uint(9223372036854775807),
		Float(3.14159265359),
		Bool(true),
		Bool(false),
	}
	tags := []format.Tag{
		format.TagUint8,
		format.TagInt16,
		format.TagUint64,
		format.TagFloat64,
		format.TagBool,
		format.TagBool,
	}

	for _, engine := range []endian.EndianEngine{endian.GetBigEndianEngine(), endian.GetLittleEndianEngine()} {
		for i, v := range tests {
			buf, err := EncodeScalar(nil, tags[i], v, engine)
			require.NoError(err)

			got, err := DecodeScalar(tags[i], buf, engine)
			require.NoError(err)
			require.True(v.Equal(got), "tag=%c engine round trip", tags[i])
		}
	}
}

func TestScalarNullTrueFalse(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	n, err := DecodeScalar(format.TagNull, nil, engine)
	require.NoError(err)
	require.True(n.IsNull())

	tv, err := DecodeScalar(format.TagTrue, nil, engine)
	require.NoError(err)
	require.True(tv.Bool())

	fv, err := DecodeScalar(format.TagFalse, nil, engine)
	require.NoError(err)
	require.False(fv.Bool())
}

func TestFloat16RoundTrip(t *testing.T) {
	require := require.New(t)
	engine := endian.GetLittleEndianEngine()

	v := Float(1.5)
	buf, err := EncodeScalar(nil, format.TagFloat16, v, engine)
	require.NoError(err)
	require.Len(buf, 2)

	got, err := DecodeScalar(format.TagFloat16, buf, engine)
	require.NoError(err)
	require.InDelta(1.5, got.Float(), 1e-6)
}

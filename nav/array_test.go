package nav

import (
	"testing"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/value"
	"github.com/stretchr/testify/require"
)

// buildInt32Array encodes vals (in row-major order matching shape) as a
// value.Array with host-byte-order Data, the convention used throughout
// the value package.
func buildInt32Array(shape []int64, vals []int32) value.Array {
	host := endian.HostEngine()

	data := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		data = host.AppendUint32(data, uint32(v)) //nolint:gosec
	}

	return value.Array{Tag: format.TagInt32, Shape: shape, Data: data}
}

func decodeInt32s(data []byte) []int32 {
	host := endian.HostEngine()
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(host.Uint32(data[i*4:])) //nolint:gosec
	}

	return out
}

func TestNavReadFullArray(t *testing.T) {
	require := require.New(t)
	engine := endian.GetLittleEndianEngine()

	vals := make([]int32, 24)
	for i := range vals {
		vals[i] = int32(i)
	}
	arr := buildInt32Array([]int64{2, 3, 4}, vals)

	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	got, err := n.Read(nil)
	require.NoError(err)
	require.Equal([]int64{2, 3, 4}, got.Array().Shape)
	require.Equal(vals, decodeInt32s(got.Array().Data))
}

func TestNavReadScalarScalarSlice(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	// shape [3,5,4]; A[0, -1, 1:-1] -> scalar, scalar, slice(1,3) len 2
	vals := make([]int32, 3*5*4)
	for i := range vals {
		vals[i] = int32(i)
	}
	arr := buildInt32Array([]int64{3, 5, 4}, vals)

	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	stop := int64(-1)
	start := int64(1)
	got, err := n.Read([]Selector{
		Int(0),
		Int(-1),
		Slice(&start, &stop, nil),
	})
	require.NoError(err)
	require.Equal([]int64{2}, got.Array().Shape)

	// axis0=0, axis1=4 (last of 5), axis2 in {1,2} -> flat offset base =
	// (0*5+4)*4 = 16, +1 = 17, +2 = 18
	want := []int32{vals[17], vals[18]}
	require.Equal(want, decodeInt32s(got.Array().Data))
}

func TestNavReadGatherNonContiguous(t *testing.T) {
	require := require.New(t)
	engine := endian.GetLittleEndianEngine()

	vals := make([]int32, 10)
	for i := range vals {
		vals[i] = int32(i * 10)
	}
	arr := buildInt32Array([]int64{10}, vals)

	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	got, err := n.Read([]Selector{Gather([]int64{0, 2, 5, -1})})
	require.NoError(err)
	require.Equal([]int64{4}, got.Array().Shape)
	require.Equal([]int32{0, 20, 50, 90}, decodeInt32s(got.Array().Data))
}

func TestNavAssignScalarBroadcast(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	vals := make([]int32, 12)
	arr := buildInt32Array([]int64{3, 4}, vals)

	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), true)
	require.NoError(err)

	start := int64(1)
	stop := int64(3)
	err = n.Assign([]Selector{Int(1), Slice(&start, &stop, nil)}, value.Int(7))
	require.NoError(err)

	got, err := n.Read(nil)
	require.NoError(err)
	out := decodeInt32s(got.Array().Data)

	want := make([]int32, 12)
	want[1*4+1] = 7
	want[1*4+2] = 7
	require.Equal(want, out)
}

func TestNavAssignShapeMismatch(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	arr := buildInt32Array([]int64{2, 2}, make([]int32, 4))
	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), true)
	require.NoError(err)

	bad := buildInt32Array([]int64{3}, make([]int32, 3))
	err = n.Assign(nil, value.ArrayValue(bad))
	require.ErrorIs(err, errs.ErrShapeMismatch)
}

func TestNavAssignDtypeMismatch(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	arr := buildInt32Array([]int64{2}, make([]int32, 2))
	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), true)
	require.NoError(err)

	err = n.Assign(nil, value.Float(1.5))
	require.ErrorIs(err, errs.ErrDtypeMismatch)
}

func TestNavAssignReadOnlyFails(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	arr := buildInt32Array([]int64{2}, make([]int32, 2))
	f := writeFixture(engine, value.ArrayValue(arr))
	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	err = n.Assign(nil, value.Int(1))
	require.ErrorIs(err, errs.ErrReadOnly)
}

package nav

import (
	"testing"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/value"
	"github.com/stretchr/testify/require"
)

func TestNavIndexListScalarReturnsValue(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	res, err := n.Index(1)
	require.NoError(err)
	require.False(res.IsNav)
	require.Equal(int64(2), res.Value.Int())
}

func TestNavIndexListContainerReturnsNav(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{
		value.Int(1),
		value.List([]value.Value{value.Int(9), value.Int(8)}),
	})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	res, err := n.Index(1)
	require.NoError(err)
	require.True(res.IsNav)

	inner, err := res.Nav.Materialize()
	require.NoError(err)
	require.True(value.List([]value.Value{value.Int(9), value.Int(8)}).Equal(inner))
}

func TestNavIndexOutOfRange(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{value.Int(1)})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	_, err = n.Index(5)
	require.ErrorIs(err, errs.ErrIndexOutOfRange)
}

func TestNavGetKeyMiss(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.MapValue(value.Map{{Key: value.String("a"), Val: value.Int(1)}})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	_, err = n.Get("missing")
	require.ErrorIs(err, errs.ErrKeyNotFound)
}

func TestNavGetCachesSecondLookup(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.MapValue(value.Map{
		{Key: value.String("a"), Val: value.Int(1)},
		{Key: value.String("b"), Val: value.Int(2)},
		{Key: value.String("c"), Val: value.Int(3)},
	})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	res, err := n.Get("c")
	require.NoError(err)
	require.Equal(int64(3), res.Value.Int())
	require.NotNil(n.cache)

	// Second lookup should hit the cache populated during the first scan.
	res2, err := n.Get("b")
	require.NoError(err)
	require.Equal(int64(2), res2.Value.Int())
}

func TestNavSliceLaw(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{
		value.Int(0), value.Int(1), value.Int(2), value.Int(3), value.Int(4), value.Int(5),
	})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	got, err := n.Slice(1, 5, 2)
	require.NoError(err)
	require.True(value.List([]value.Value{value.Int(1), value.Int(3)}).Equal(got))
}

func TestNavSliceRejectsNegativeStep(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{value.Int(1), value.Int(2)})
	f := writeFixture(engine, in)

	n, err := Open(f, engine, rootOffset(), false)
	require.NoError(err)

	_, err = n.Slice(0, 2, -1)
	require.ErrorIs(err, errs.ErrIndexOutOfRange)
}

package xtypedump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/wire"
	"github.com/bitagoras/xtype-go/xtypewriter"
	"github.com/stretchr/testify/require"
)

func TestDumpListOfScalars(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	var out bytes.Buffer
	wr := xtypewriter.New(&out, engine)
	require.NoError(wr.WriteValue(value.List([]value.Value{value.Int(1), value.String("hi")})))

	lines, err := Dump(bytes.NewReader(out.Bytes()), engine, 0, Options{})
	require.NoError(err)
	require.NotEmpty(lines)

	joined := strings.Join(lines, "\n")
	require.Contains(joined, "[")
	require.Contains(joined, "]")
	require.Contains(joined, `"hi"`)
}

func TestDumpMaxDepthTruncates(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	nested := value.List([]value.Value{value.List([]value.Value{value.Int(1)})})

	var out bytes.Buffer
	wr := xtypewriter.New(&out, engine)
	require.NoError(wr.WriteValue(nested))

	lines, err := Dump(bytes.NewReader(out.Bytes()), engine, 0, Options{MaxDepth: 1})
	require.NoError(err)

	joined := strings.Join(lines, "\n")
	require.Contains(joined, "...")
}

func TestDumpMaxBytesTruncatesHex(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	var out bytes.Buffer
	wr := xtypewriter.New(&out, engine)
	require.NoError(wr.WriteValue(value.Bytes([]byte("0123456789"))))

	lines, err := Dump(bytes.NewReader(out.Bytes()), engine, 0, Options{MaxBytesPerPayload: 4})
	require.NoError(err)

	joined := strings.Join(lines, "\n")
	require.Contains(joined, "...")
}

func TestDumpDoesNotMutateSubsequentRead(t *testing.T) {
	require := require.New(t)
	engine := endian.GetBigEndianEngine()

	in := value.List([]value.Value{value.Int(1), value.Int(2)})

	var out bytes.Buffer
	wr := xtypewriter.New(&out, engine)
	require.NoError(wr.WriteValue(in))

	_, err := Dump(bytes.NewReader(out.Bytes()), engine, 0, Options{})
	require.NoError(err)

	r := wire.NewReader(wire.NewCursor(bytes.NewReader(out.Bytes())), engine)
	got, ok, err := value.Materialize(r, engine)
	require.NoError(err)
	require.True(ok)
	require.True(in.Equal(got))
}

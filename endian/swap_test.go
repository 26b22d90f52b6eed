package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapBytes(t *testing.T) {
	require := require.New(t)

	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	SwapBytes(data, 4)
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06, 0x05}, data)
}

func TestSwapBytesWidthOneNoop(t *testing.T) {
	require := require.New(t)

	data := []byte{1, 2, 3}
	SwapBytes(data, 1)
	require.Equal([]byte{1, 2, 3}, data)
}

package endian

// SwapBytes reverses every width-byte chunk of data in place. Widths of 1
// or less are a no-op since single-byte elements carry no byte order.
// Shared by the value materializer, the writer, and the navigator's
// in-place array assignment, all of which need to flip a raw contiguous
// buffer between file and host byte order.
func SwapBytes(data []byte, width int) {
	if width <= 1 {
		return
	}

	for i := 0; i+width <= len(data); i += width {
		for l, r := i, i+width-1; l < r; l, r = l+1, r-1 {
			data[l], data[r] = data[r], data[l]
		}
	}
}

package nav

import (
	"bytes"
	"io"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/xtypewriter"
)

// memFile is an in-memory byte buffer that supports both ReadAt and
// WriteAt, standing in for an opened OS file in tests that exercise
// in-place array assignment.
type memFile struct {
	data []byte
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:], p)

	return len(p), nil
}

func writeFixture(engine endian.EndianEngine, v value.Value) *memFile {
	var buf bytes.Buffer
	wr := xtypewriter.New(&buf, engine)
	if err := wr.WriteValue(v); err != nil {
		panic(err)
	}

	return &memFile{data: buf.Bytes()}
}

// rootOffset returns the byte offset of the root value, skipping the
// leading BOM footnote (`*` `j` + 2 bytes).
func rootOffset() int64 { return 4 }

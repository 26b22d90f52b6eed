package nav

import (
	"io"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/wire"
)

// Nav is a positional navigator over a random-access byte source. It
// caches the header of the value at offset (tag, shape, payload size, and
// the byte offset where the body begins) and answers further queries with
// explicit seeks, per the design's "object proxy" contract.
type Nav struct {
	src       io.ReaderAt
	engine    endian.EndianEngine
	writable  bool
	offset    int64
	hdr       wire.Header
	bodyStart int64

	cache *keyCache
}

// Open constructs a navigator for the value whose header starts at offset.
func Open(src io.ReaderAt, engine endian.EndianEngine, offset int64, writable bool) (*Nav, error) {
	r := wire.NewReader(wire.NewCursor(src), engine)
	r.SeekTo(offset)

	hdr, err := wire.ReadHeader(r)
	if err != nil {
		return nil, err
	}

	return &Nav{
		src:       src,
		engine:    engine,
		writable:  writable,
		offset:    offset,
		hdr:       hdr,
		bodyStart: r.Pos(),
	}, nil
}

// reader returns a fresh reader positioned nowhere in particular; callers
// seek it before use.
func (n *Nav) reader() *wire.Reader {
	return wire.NewReader(wire.NewCursor(n.src), n.engine)
}

// IsContainer reports whether the navigated value is a list or map.
func (n *Nav) IsContainer() bool { return n.hdr.IsContainerOpen() }

// IsArray reports whether the navigated value is a homogeneous array.
func (n *Nav) IsArray() bool { return !n.hdr.IsContainerOpen() && len(n.hdr.Shape) > 0 }

// Tag returns the navigated value's tag: '[' or '{' for a container, or the
// scalar/array element tag otherwise.
func (n *Nav) Tag() format.Tag { return n.hdr.Tag }

// Shape returns the navigated array's per-dimension extents, or nil if the
// value is not an array.
func (n *Nav) Shape() []int64 { return n.hdr.Shape }

// Materialize recursively reads the navigated value into memory.
func (n *Nav) Materialize() (value.Value, error) {
	r := n.reader()
	r.SeekTo(n.offset)

	v, ok, err := value.Materialize(r, n.engine)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, errs.ErrTruncated
	}

	return v, nil
}

// Len reports the navigated value's length: entry count for a map, item
// count for a list, or the first dimension for an array. Any other kind
// fails with ErrNotSized.
func (n *Nav) Len() (int64, error) {
	switch {
	case n.hdr.Tag == format.TagMapOpen:
		return n.countMapEntries()
	case n.hdr.Tag == format.TagListOpen:
		return n.countListItems()
	case n.IsArray():
		return n.hdr.Shape[0], nil
	default:
		return 0, errs.ErrNotSized
	}
}

func (n *Nav) countListItems() (int64, error) {
	r := n.reader()
	r.SeekTo(n.bodyStart)

	var count int64
	for {
		hdr, err := wire.ReadHeader(r)
		if err != nil {
			return 0, err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return count, nil
		}
		if err := wire.SkipBody(r, hdr); err != nil {
			return 0, err
		}

		count++
	}
}

func (n *Nav) countMapEntries() (int64, error) {
	r := n.reader()
	r.SeekTo(n.bodyStart)

	var count int64
	for {
		keyHdr, err := wire.ReadHeader(r)
		if err != nil {
			return 0, err
		}
		if keyHdr.EOF || keyHdr.Tag == format.TagMapClose {
			return count, nil
		}
		if keyHdr.IsContainerOpen() {
			return 0, errs.ErrBadKey
		}
		if err := wire.SkipBody(r, keyHdr); err != nil {
			return 0, err
		}

		valHdr, err := wire.ReadHeader(r)
		if err != nil {
			return 0, err
		}
		if valHdr.EOF {
			return 0, errs.ErrTruncated
		}
		if err := wire.SkipBody(r, valHdr); err != nil {
			return 0, err
		}

		count++
	}
}

// Keys returns the navigated map's keys in file order. Fails with
// ErrNotIndexable if the value is not a map.
func (n *Nav) Keys() ([]value.Value, error) {
	if n.hdr.Tag != format.TagMapOpen {
		return nil, errs.ErrNotIndexable
	}

	r := n.reader()
	r.SeekTo(n.bodyStart)

	var keys []value.Value
	for {
		keyHdr, err := wire.ReadHeader(r)
		if err != nil {
			return nil, err
		}
		if keyHdr.EOF || keyHdr.Tag == format.TagMapClose {
			return keys, nil
		}
		if keyHdr.IsContainerOpen() {
			return nil, errs.ErrBadKey
		}

		key, err := value.MaterializeFromHeader(r, keyHdr, n.engine)
		if err != nil {
			return nil, err
		}

		valHdr, err := wire.ReadHeader(r)
		if err != nil {
			return nil, err
		}
		if valHdr.EOF {
			return nil, errs.ErrTruncated
		}
		if err := wire.SkipBody(r, valHdr); err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}
}

// Iterator walks a list's items one at a time. Each Next call either reads
// the next value or observes `]`/EOF and reports done.
type Iterator struct {
	nav  *Nav
	r    *wire.Reader
	done bool
}

// Iter returns an iterator over the navigated list. Fails with
// ErrNotIterable if the value is not a list.
func (n *Nav) Iter() (*Iterator, error) {
	if n.hdr.Tag != format.TagListOpen {
		return nil, errs.ErrNotIterable
	}

	r := n.reader()
	r.SeekTo(n.bodyStart)

	return &Iterator{nav: n, r: r}, nil
}

// Next reads the next item, returning ok=false once the list is exhausted.
func (it *Iterator) Next() (v value.Value, ok bool, err error) {
	if it.done {
		return value.Value{}, false, nil
	}

	hdr, err := wire.ReadHeader(it.r)
	if err != nil {
		return value.Value{}, false, err
	}
	if hdr.EOF || hdr.Tag == format.TagListClose {
		it.done = true
		return value.Value{}, false, nil
	}

	v, err = value.MaterializeFromHeader(it.r, hdr, it.nav.engine)
	if err != nil {
		return value.Value{}, false, err
	}

	return v, true, nil
}

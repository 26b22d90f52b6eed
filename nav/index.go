package nav

import (
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/wire"
)

// Result is the outcome of a navigator lookup: either a child navigator
// (for a container or a non-string/bytes array result) or a materialized
// value, per the proxy-vs-value policy.
type Result struct {
	Nav   *Nav
	Value value.Value
	IsNav bool
}

// isNavResult reports whether a header at some offset should be surfaced as
// a navigator rather than materialized in place: any container, or any
// array whose element tag is not a decoded string/bytes tag.
func isNavResult(hdr wire.Header) bool {
	if hdr.IsContainerOpen() {
		return true
	}
	if len(hdr.Shape) == 0 {
		return false
	}
	if len(hdr.Shape) > 1 {
		return true
	}

	switch hdr.Tag {
	case format.TagUTF8, format.TagUTF16, format.TagBytes, format.TagStruct:
		return false
	default:
		return true
	}
}

func (n *Nav) resultAt(itemStart int64, hdr wire.Header, r *wire.Reader) (Result, error) {
	if isNavResult(hdr) {
		child, err := Open(n.src, n.engine, itemStart, n.writable)
		if err != nil {
			return Result{}, err
		}

		return Result{Nav: child, IsNav: true}, nil
	}

	v, err := value.MaterializeFromHeader(r, hdr, n.engine)
	if err != nil {
		return Result{}, err
	}

	return Result{Value: v}, nil
}

// Index skips to the k-th item of a navigated list and returns it: a
// navigator if the item is a container or a non-string/bytes array, the
// materialized value otherwise.
func (n *Nav) Index(k int64) (Result, error) {
	if n.hdr.Tag != format.TagListOpen {
		return Result{}, errs.ErrNotIndexable
	}
	if k < 0 {
		return Result{}, errs.ErrIndexOutOfRange
	}

	r := n.reader()
	r.SeekTo(n.bodyStart)

	var idx int64
	for {
		itemStart := r.Pos()

		hdr, err := wire.ReadHeader(r)
		if err != nil {
			return Result{}, err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return Result{}, errs.ErrIndexOutOfRange
		}
		if idx == k {
			return n.resultAt(itemStart, hdr, r)
		}
		if err := wire.SkipBody(r, hdr); err != nil {
			return Result{}, err
		}

		idx++
	}
}

// Get linearly scans a navigated map for key, returning the paired value
// like Index does for lists. When key occurs more than once, the last entry
// wins. Fails with ErrKeyNotFound on a miss.
func (n *Nav) Get(key string) (Result, error) {
	if n.hdr.Tag != format.TagMapOpen {
		return Result{}, errs.ErrNotIndexable
	}

	if n.cache != nil {
		if off, found := n.cache.lookup(key); found {
			return n.resultAtOffset(off)
		}
	}

	r := n.reader()
	r.SeekTo(n.bodyStart)

	matchStart := int64(-1)
	for {
		keyHdr, err := wire.ReadHeader(r)
		if err != nil {
			return Result{}, err
		}
		if keyHdr.EOF || keyHdr.Tag == format.TagMapClose {
			if matchStart >= 0 {
				return n.resultAtOffset(matchStart)
			}

			return Result{}, errs.ErrKeyNotFound
		}
		if keyHdr.IsContainerOpen() {
			return Result{}, errs.ErrBadKey
		}

		keyVal, err := value.MaterializeFromHeader(r, keyHdr, n.engine)
		if err != nil {
			return Result{}, err
		}

		valStart := r.Pos()

		valHdr, err := wire.ReadHeader(r)
		if err != nil {
			return Result{}, err
		}
		if valHdr.EOF {
			return Result{}, errs.ErrTruncated
		}

		if keyVal.Kind() == value.KindString {
			n.rememberKey(keyVal.Str(), valStart)
			if keyVal.Str() == key {
				matchStart = valStart
			}
		}

		if err := wire.SkipBody(r, valHdr); err != nil {
			return Result{}, err
		}
	}
}

func (n *Nav) resultAtOffset(offset int64) (Result, error) {
	r := n.reader()
	r.SeekTo(offset)

	hdr, err := wire.ReadHeader(r)
	if err != nil {
		return Result{}, err
	}

	return n.resultAt(offset, hdr, r)
}

// Slice reads a contiguous run of a navigated list's items, per the
// navigator's restricted (non-negative, positive step) slice law.
func (n *Nav) Slice(start, stop, step int64) (value.Value, error) {
	if n.hdr.Tag != format.TagListOpen {
		return value.Value{}, errs.ErrNotIndexable
	}
	if step <= 0 || start < 0 || stop < 0 {
		return value.Value{}, errs.ErrIndexOutOfRange
	}

	r := n.reader()
	r.SeekTo(n.bodyStart)

	for i := int64(0); i < start; i++ {
		hdr, err := wire.ReadHeader(r)
		if err != nil {
			return value.Value{}, err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return value.List(nil), nil
		}
		if err := wire.SkipBody(r, hdr); err != nil {
			return value.Value{}, err
		}
	}

	var items []value.Value
	for pos := start; pos < stop; pos += step {
		hdr, err := wire.ReadHeader(r)
		if err != nil {
			return value.Value{}, err
		}
		if hdr.EOF || hdr.Tag == format.TagListClose {
			return value.List(items), nil
		}

		v, err := value.MaterializeFromHeader(r, hdr, n.engine)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)

		for i := int64(1); i < step; i++ {
			skipHdr, err := wire.ReadHeader(r)
			if err != nil {
				return value.Value{}, err
			}
			if skipHdr.EOF || skipHdr.Tag == format.TagListClose {
				return value.List(items), nil
			}
			if err := wire.SkipBody(r, skipHdr); err != nil {
				return value.Value{}, err
			}
		}
	}

	return value.List(items), nil
}

package nav

import (
	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/internal/pool"
	"github.com/bitagoras/xtype-go/value"
)

// SelectorKind classifies one axis selector in an array index expression.
type SelectorKind uint8

const (
	// SelScalar picks a single index along the axis; the axis is reduced
	// out of the result shape.
	SelScalar SelectorKind = iota
	// SelSlice picks start:stop:step along the axis.
	SelSlice
	// SelGather picks an explicit, possibly non-monotonic list of indices.
	SelGather
)

// Selector is one axis of an array index/assignment expression, normalized
// to the selector kinds the distilled spec's §4.6 plan construction names.
type Selector struct {
	Kind SelectorKind

	// Index is valid for SelScalar; negative wraps via +dim at normalization.
	Index int64

	// Start, Stop, Step describe a SelSlice selector in Python
	// slice.indices(dim) terms. Build one with Slice, which records whether
	// each field was actually provided; an unset field takes its
	// slice.indices(dim) default during normalization.
	Start, Stop, Step int64
	hasStart, hasStop, hasStep bool

	// Positions is valid for SelGather: explicit indices, negatives not yet
	// wrapped (wrapping happens during normalization).
	Positions []int64
}

// Int returns a scalar axis selector for index i (negative wraps).
func Int(i int64) Selector { return Selector{Kind: SelScalar, Index: i} }

// Slice returns a half-open start:stop:step axis selector. Pass nil for any
// of start/stop/step to mean "unset" (full Python slice.indices(dim)
// defaulting applies during normalization).
func Slice(start, stop, step *int64) Selector {
	sel := Selector{Kind: SelSlice}
	if start != nil {
		sel.Start, sel.hasStart = *start, true
	}
	if stop != nil {
		sel.Stop, sel.hasStop = *stop, true
	}
	if step != nil {
		sel.Step, sel.hasStep = *step, true
	}

	return sel
}

// Gather returns an explicit-positions axis selector (negatives wrap).
func Gather(positions []int64) Selector {
	return Selector{Kind: SelGather, Positions: positions}
}

// fullAxis returns the implicit full-extent selector used for axes the
// caller did not provide.
func fullAxis() Selector { return Selector{Kind: SelSlice} }

// normAxis is one axis's fully-resolved, in-bounds index sequence after
// normalization against the array's actual shape.
type normAxis struct {
	positions []int64 // concrete indices, in output order
	scalar    bool    // true: reduced out of the result shape
}

// normalize resolves selectors (padded with implicit full axes on the
// right) against shape, producing one normAxis per dimension.
func normalize(selectors []Selector, shape []int64) ([]normAxis, error) {
	if len(selectors) > len(shape) {
		return nil, errs.ErrIndexOutOfRange
	}

	axes := make([]normAxis, len(shape))
	for i, dim := range shape {
		var sel Selector
		if i < len(selectors) {
			sel = selectors[i]
		} else {
			sel = fullAxis()
		}

		na, err := normalizeAxis(sel, dim)
		if err != nil {
			return nil, err
		}

		axes[i] = na
	}

	return axes, nil
}

func normalizeAxis(sel Selector, dim int64) (normAxis, error) {
	switch sel.Kind {
	case SelScalar:
		i := sel.Index
		if i < 0 {
			i += dim
		}
		if i < 0 || i >= dim {
			return normAxis{}, errs.ErrIndexOutOfRange
		}

		return normAxis{positions: []int64{i}, scalar: true}, nil

	case SelSlice:
		var startP, stopP, stepP *int64
		if sel.hasStart {
			v := sel.Start
			startP = &v
		}
		if sel.hasStop {
			v := sel.Stop
			stopP = &v
		}
		if sel.hasStep {
			v := sel.Step
			stepP = &v
		}
		if stepP != nil && *stepP == 0 {
			return normAxis{}, errs.ErrIndexOutOfRange
		}

		start, stop, step := sliceIndices(startP, stopP, stepP, dim)

		return normAxis{positions: expandSlice(start, stop, step)}, nil

	case SelGather:
		positions := make([]int64, len(sel.Positions))
		for i, p := range sel.Positions {
			if p < 0 {
				p += dim
			}
			if p < 0 || p >= dim {
				return normAxis{}, errs.ErrIndexOutOfRange
			}

			positions[i] = p
		}

		return normAxis{positions: positions}, nil

	default:
		return normAxis{}, errs.ErrIndexOutOfRange
	}
}

// sliceIndices mirrors Python's slice.indices(length): it resolves
// possibly-nil, possibly-negative start/stop/step against length into a
// concrete half-open [start, stop) run with the given step (step defaults
// to 1 when nil).
func sliceIndices(start, stop, step *int64, length int64) (int64, int64, int64) {
	st := int64(1)
	if step != nil {
		st = *step
	}

	var lower, upper int64
	if st < 0 {
		lower, upper = -1, length-1
	} else {
		lower, upper = 0, length
	}

	clamp := func(v int64) int64 {
		if v < 0 {
			v += length
			if v < lower {
				v = lower
			}

			return v
		}
		if v > upper {
			return upper
		}

		return v
	}

	var startN int64
	if start == nil {
		if st < 0 {
			startN = upper
		} else {
			startN = lower
		}
	} else {
		startN = clamp(*start)
	}

	var stopN int64
	if stop == nil {
		if st < 0 {
			stopN = lower
		} else {
			stopN = upper
		}
	} else {
		stopN = clamp(*stop)
	}

	return startN, stopN, st
}

func expandSlice(start, stop, step int64) []int64 {
	var positions []int64
	if step > 0 {
		for i := start; i < stop; i += step {
			positions = append(positions, i)
		}
	} else {
		for i := start; i > stop; i += step {
			positions = append(positions, i)
		}
	}

	return positions
}

// isFullRange reports whether positions is exactly 0..dim-1 ascending --
// equivalent to "the whole axis, step 1", the condition that lets an axis
// be absorbed entirely into the coalesced chunk size.
func isFullRange(positions []int64, dim int64) bool {
	return int64(len(positions)) == dim && isContiguousAscending(positions) && (len(positions) == 0 || positions[0] == 0)
}

// isContiguousAscending reports whether positions increase by exactly 1
// at each step (trivially true for length 1; false for an empty sequence).
func isContiguousAscending(positions []int64) bool {
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			return false
		}
	}

	return len(positions) > 0
}

// plan is the result of §4.6's "plan construction": which axes must be
// visited by outer cartesian iteration, the fixed index to use for every
// axis not visited (whether because it was scalar or coalesced away), the
// output shape, and the contiguous chunk size read per outer iteration.
type plan struct {
	resultShape   []int64 // shape of the selection result
	strides       []int64 // row-major element strides of the original array
	outerAxes     []int   // indices into axes that require cartesian iteration
	axes          []normAxis
	fixedIndex    map[int]int64 // axis -> fixed index, for axes not in outerAxes
	chunkElements int64
}

func buildPlan(axes []normAxis, shape []int64) plan {
	strides := make([]int64, len(shape))
	acc := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}

	resultShape := make([]int64, 0, len(axes))
	for _, a := range axes {
		if !a.scalar {
			resultShape = append(resultShape, int64(len(a.positions)))
		}
	}

	fixedIndex := make(map[int]int64)
	chunkElements := int64(1)

	last := len(axes) - 1
	for last >= 0 && (axes[last].scalar ||
		(isFullRange(axes[last].positions, shape[last]) && strides[last] == chunkElements)) {
		if axes[last].scalar {
			fixedIndex[last] = axes[last].positions[0]
			chunkElements *= 1
		} else {
			chunkElements *= int64(len(axes[last].positions))
			fixedIndex[last] = axes[last].positions[0]
		}

		last--
	}

	// A contiguous-ascending partial slice only extends the chunk when its
	// stride matches the inner block already absorbed -- otherwise its
	// elements are separated by gaps the single read would silently skip.
	if last >= 0 && !axes[last].scalar && isContiguousAscending(axes[last].positions) && strides[last] == chunkElements {
		fixedIndex[last] = axes[last].positions[0]
		chunkElements *= int64(len(axes[last].positions))
		last--
	}

	outerAxes := make([]int, 0, last+1)
	for i := 0; i <= last; i++ {
		if axes[i].scalar {
			fixedIndex[i] = axes[i].positions[0]
		} else {
			outerAxes = append(outerAxes, i)
		}
	}

	return plan{
		resultShape:   resultShape,
		strides:       strides,
		outerAxes:     outerAxes,
		axes:          axes,
		fixedIndex:    fixedIndex,
		chunkElements: chunkElements,
	}
}

// outerCount returns the number of cartesian points the plan must visit.
func (p plan) outerCount() int64 {
	n := int64(1)
	for _, ax := range p.outerAxes {
		n *= int64(len(p.axes[ax].positions))
	}

	return n
}

// baseOffsetOf computes the element offset (not byte offset) of the
// combo-th cartesian point over p.outerAxes, mixing in every fixed axis.
// coord is scratch space sized len(p.axes), reused by the caller across
// every combo in a Read/Assign loop via pool.GetInt64Slice so the hot
// per-chunk offset computation does not allocate once per iteration.
func (p plan) baseOffsetOf(combo int64, coord []int64) int64 {
	for axis, idx := range p.fixedIndex {
		coord[axis] = idx
	}

	rem := combo
	for i := len(p.outerAxes) - 1; i >= 0; i-- {
		axis := p.outerAxes[i]
		n := int64(len(p.axes[axis].positions))
		j := rem % n
		rem /= n
		coord[axis] = p.axes[axis].positions[j]
	}

	var offset int64
	for axis, idx := range coord {
		offset += idx * p.strides[axis]
	}

	return offset
}

// Read performs §4.6's array read: for each cartesian point in the plan's
// outer axes, it reads a contiguous chunk of chunkElements starting at the
// corresponding byte offset, concatenates the chunks, and reshapes the
// result.
func (n *Nav) Read(selectors []Selector) (value.Value, error) {
	if !n.IsArray() {
		return value.Value{}, errs.ErrNotIndexable
	}

	axes, err := normalize(selectors, n.hdr.Shape)
	if err != nil {
		return value.Value{}, err
	}

	p := buildPlan(axes, n.hdr.Shape)

	width, _ := format.ElementBytes(n.hdr.Tag)
	chunkBytes := p.chunkElements * int64(width)

	r := n.reader()
	outer := p.outerCount()

	if outer == 0 || p.chunkElements == 0 {
		return value.ArrayValue(value.Array{Tag: n.hdr.Tag, Shape: p.resultShape, Data: nil}), nil
	}

	coord, releaseCoord := pool.GetInt64Slice(len(p.axes))
	defer releaseCoord()

	data := make([]byte, 0, outer*chunkBytes)
	for combo := int64(0); combo < outer; combo++ {
		elemOffset := p.baseOffsetOf(combo, coord)
		byteOffset := n.bodyStart + elemOffset*int64(width)

		r.SeekTo(byteOffset)

		chunk, err := r.ReadPayload(chunkBytes)
		if err != nil {
			return value.Value{}, err
		}

		data = append(data, chunk...)
	}

	if endian.NeedByteswap(n.engine) {
		endian.SwapBytes(data, width)
	}

	return value.ArrayValue(value.Array{Tag: n.hdr.Tag, Shape: p.resultShape, Data: data}), nil
}

// Assign performs §4.6's in-place array write: rhs must be a scalar of the
// target's element tag, or an array of the target tag whose shape equals
// the selection's result shape (broadcast). Byte-swap is applied to the
// outgoing buffer, never to bytes already on disk.
func (n *Nav) Assign(selectors []Selector, rhs value.Value) error {
	if !n.writable {
		return errs.ErrReadOnly
	}
	if !n.IsArray() {
		return errs.ErrNotIndexable
	}

	axes, err := normalize(selectors, n.hdr.Shape)
	if err != nil {
		return err
	}

	p := buildPlan(axes, n.hdr.Shape)

	width, _ := format.ElementBytes(n.hdr.Tag)
	chunkBytes := p.chunkElements * int64(width)
	outer := p.outerCount()

	var payload []byte
	broadcast := false

	switch rhs.Kind() {
	case value.KindArray:
		arr := rhs.Array()
		if arr.Tag != n.hdr.Tag {
			return errs.ErrDtypeMismatch
		}
		if !shapeEqual(arr.Shape, p.resultShape) {
			return errs.ErrShapeMismatch
		}

		payload = append([]byte(nil), arr.Data...)

	default:
		if !scalarMatchesTag(rhs, n.hdr.Tag) {
			return errs.ErrDtypeMismatch
		}

		one, err := value.EncodeScalar(nil, n.hdr.Tag, rhs, endian.HostEngine())
		if err != nil {
			return err
		}

		payload = one
		broadcast = true
	}

	if endian.NeedByteswap(n.engine) {
		endian.SwapBytes(payload, width)
	}

	writerAt, ok := n.src.(interface {
		WriteAt(p []byte, off int64) (int, error)
	})
	if !ok {
		return errs.ErrReadOnly
	}

	coord, releaseCoord := pool.GetInt64Slice(len(p.axes))
	defer releaseCoord()

	for combo := int64(0); combo < outer; combo++ {
		elemOffset := p.baseOffsetOf(combo, coord)
		byteOffset := n.bodyStart + elemOffset*int64(width)

		var chunk []byte
		if broadcast {
			chunk = repeatChunk(payload, int(p.chunkElements))
		} else {
			chunk = payload[combo*chunkBytes : (combo+1)*chunkBytes]
		}

		if _, err := writerAt.WriteAt(chunk, byteOffset); err != nil {
			return errs.ErrIO
		}
	}

	return nil
}

func repeatChunk(elem []byte, times int) []byte {
	out := make([]byte, 0, len(elem)*times)
	for i := 0; i < times; i++ {
		out = append(out, elem...)
	}

	return out
}

func shapeEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// scalarMatchesTag reports whether a scalar RHS's logical kind is
// compatible with the target array's element tag (e.g. a Go int/uint
// Value may broadcast into any integer-tagged array, widened or narrowed
// to that tag's byte width; a float Value only into a float-tagged array).
func scalarMatchesTag(v value.Value, tag format.Tag) bool {
	kind := format.KindOf(tag)

	switch v.Kind() {
	case value.KindInt, value.KindUint:
		return kind.IsInt()
	case value.KindFloat:
		return kind == format.KindFloat
	case value.KindBool:
		return kind == format.KindBool
	default:
		return false
	}
}

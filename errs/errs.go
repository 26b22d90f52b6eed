// Package errs defines the stable sentinel errors surfaced by xtype-go.
//
// Callers should compare against these values with errors.Is, since
// functions that return them typically wrap additional context with
// fmt.Errorf("...: %w", errs.ErrX).
package errs

import "errors"

var (
	// ErrTruncated is returned when EOF occurs inside a length field or a payload.
	ErrTruncated = errors.New("xtype: truncated stream")

	// ErrBadTag is returned for an unknown or disallowed tag byte at the current position.
	ErrBadTag = errors.New("xtype: bad tag byte")

	// ErrBadKey is returned when a map key position holds a container tag.
	ErrBadKey = errors.New("xtype: map key must be an element, not a container")

	// ErrUnsupportedType is returned when the writer is asked to encode a value
	// with no tag mapping. The writer does not check for cyclic values, so it
	// never returns this error for one.
	ErrUnsupportedType = errors.New("xtype: unsupported value type")

	// ErrValueTooLarge is returned when a length or integer exceeds its encodable range.
	ErrValueTooLarge = errors.New("xtype: value too large to encode")

	// ErrIndexOutOfRange is returned for an out-of-bounds list/array index or gather position.
	ErrIndexOutOfRange = errors.New("xtype: index out of range")

	// ErrKeyNotFound is returned on a map lookup miss.
	ErrKeyNotFound = errors.New("xtype: key not found")

	// ErrNotSized is returned when Len is called on a value with no defined length.
	ErrNotSized = errors.New("xtype: value has no length")

	// ErrNotIndexable is returned when a lookup is attempted on a value that
	// does not support it (e.g. indexing a scalar, or a key lookup on a list).
	ErrNotIndexable = errors.New("xtype: value is not indexable")

	// ErrNotIterable is returned when iteration is attempted on a non-list value.
	ErrNotIterable = errors.New("xtype: value is not iterable")

	// ErrShapeMismatch is returned when an array assignment's right-hand side
	// shape does not broadcast to the selection's result shape.
	ErrShapeMismatch = errors.New("xtype: shape mismatch")

	// ErrDtypeMismatch is returned when an array assignment's right-hand side
	// element type does not match the target array's tag.
	ErrDtypeMismatch = errors.New("xtype: dtype mismatch")

	// ErrScopeClosed is returned when a write targets a closed incremental scope.
	ErrScopeClosed = errors.New("xtype: scope is closed")

	// ErrWrongContainerKind is returned when Add is called on a map scope or
	// Set is called on a list scope.
	ErrWrongContainerKind = errors.New("xtype: wrong container kind for operation")

	// ErrReadOnly is returned when a mutation is attempted on a non-writable handle.
	ErrReadOnly = errors.New("xtype: handle is not writable")

	// ErrReopened is returned when an operation is attempted on a closed handle.
	ErrReopened = errors.New("xtype: handle is closed")

	// ErrIO wraps an underlying stream I/O error.
	ErrIO = errors.New("xtype: i/o error")
)

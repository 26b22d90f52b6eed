// Package nav implements the positional navigator: a cheap (file, offset,
// cached header) value that walks a file on disk without materializing it.
// It supports key/index/slice lookup, list iteration, NumPy-style
// multi-axis array slicing with contiguous-run coalescing, and in-place
// array-cell assignment.
//
// A Nav never owns the underlying byte source; every operation opens a
// fresh wire.Reader over it at whatever offset it needs, so navigators
// never hold a live cursor between calls and are safe to keep around after
// the handle that produced them has moved on to other work.
package nav

// Package wire implements the low-level byte-stream side of the xtype-go
// binary container format: the length codec, the pull-based token iterator
// (Layer A), and the header combiner that folds consecutive length tokens
// into a shape vector and skips footnotes transparently (Layer B).
//
// Layer C, the recursive value materializer, lives in package value since it
// depends on the Value sum type; the positional navigator in package nav is
// built directly on top of this package's Reader and Header so it can seek
// and re-enter the stream at arbitrary offsets without materializing.
package wire

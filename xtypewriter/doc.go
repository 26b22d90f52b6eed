// Package xtypewriter implements the stream writer half of the format: the
// scalar/string/array emitters that serialize a value.Value to the grammar,
// and the incremental container proxy -- a stack of open list/map scopes
// that lets callers build a tree top-down without holding the whole value
// in memory first.
package xtypewriter

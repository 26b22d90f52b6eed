// Package xtypedump implements the format's debug pretty-printer: a
// side-channel that walks the raw token stream (wire's Layer A) and
// produces an indented, line-per-atom human-readable dump. It never
// mutates reader state observable to other readers beyond its own pass,
// since it opens a fresh wire.Reader over the given offset like every
// other navigator-adjacent reader in this module.
package xtypedump

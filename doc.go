// Package xtype is the path-based file handle: the public, convenience
// facade wrapping the lower packages (wire, value, xtypewriter, nav,
// xtypedump) for the common case of opening a single file by path.
//
// A File owns exactly one OS file descriptor and moves through the
// lifecycle Unopened -> Open -> Closed; every read or write method on a
// Closed File fails with errs.ErrReopened (Close itself is idempotent and
// returns nil). Read-side operations (Get, Keys, Len, Iter,
// DebugDump) delegate to a lazily-opened root nav.Nav; write-side
// operations (Write, Add, Set) delegate to an xtypewriter.Writer.
package xtype

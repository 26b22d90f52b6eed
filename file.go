package xtype

import (
	"fmt"
	"io"
	"os"

	"github.com/bitagoras/xtype-go/endian"
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/internal/options"
	"github.com/bitagoras/xtype-go/nav"
	"github.com/bitagoras/xtype-go/value"
	"github.com/bitagoras/xtype-go/wire"
	"github.com/bitagoras/xtype-go/xtypedump"
	"github.com/bitagoras/xtype-go/xtypewriter"
)

// Mode selects how a File's underlying OS file is opened.
type Mode uint8

const (
	// ReadOnly opens an existing file for reading only.
	ReadOnly Mode = iota
	// WriteOnly creates (truncating) a file for writing only.
	WriteOnly
	// ReadWrite opens (creating if absent) a file for both reading and
	// writing on the same handle.
	ReadWrite
)

type handleState uint8

const (
	stateOpen handleState = iota
	stateClosed
)

// File is the path-based handle: Open -> (Read|Write|Get|Set|Add|...)* ->
// Close. It is not safe for concurrent use from multiple goroutines.
type File struct {
	mode  Mode
	state handleState

	osFile *os.File
	engine endian.EndianEngine

	rootOffset int64
	empty      bool

	writer     *xtypewriter.Writer
	bomWritten bool

	root *nav.Nav
}

// Open opens path in the given mode, resolving byte order per opts (Auto by
// default: read the BOM footnote if present, else big-endian).
func Open(path string, mode Mode, opts ...Option) (*File, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	flag, perm := osFlags(mode)

	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("xtype: open %q: %w", path, errs.ErrIO)
	}

	h := &File{mode: mode, osFile: f}

	if mode != WriteOnly {
		if err := h.resolveEngine(cfg.pref); err != nil {
			_ = f.Close()
			return nil, err
		}
	} else {
		h.engine = endian.Engine(cfg.pref, nil, false)
	}

	if mode != ReadOnly {
		h.writer = xtypewriter.New(f, h.engine)
	}

	return h, nil
}

func osFlags(mode Mode) (int, os.FileMode) {
	switch mode {
	case WriteOnly:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, 0o644
	case ReadWrite:
		return os.O_RDWR | os.O_CREATE, 0o644
	default:
		return os.O_RDONLY, 0
	}
}

// resolveEngine peeks the first four bytes of the file for the canonical
// BOM footnote ('*' 'j' <int16 1234>) and resolves the effective byte order
// and root-value offset from it, without disturbing the writer/reader
// positions that operate through independent wire.Cursor instances.
func (h *File) resolveEngine(pref endian.Preference) error {
	head := make([]byte, 4)
	n, err := h.osFile.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("xtype: read BOM: %w", errs.ErrIO)
	}

	if n >= 4 && format.Tag(head[0]) == format.TagFootnote && format.Tag(head[1]) == format.TagInt16 {
		if eng, ok := endian.ResolveBOM(head[2:4]); ok {
			h.rootOffset = 4
			h.engine = endian.Engine(pref, eng, true)

			return nil
		}
	}

	h.rootOffset = 0
	h.engine = endian.Engine(pref, nil, false)

	return nil
}

func (h *File) checkOpen() error {
	if h.state == stateClosed {
		return errs.ErrReopened
	}

	return nil
}

func (h *File) checkWritable() error {
	if h.mode == ReadOnly {
		return errs.ErrReadOnly
	}

	return nil
}

// Write writes one complete top-level value, emitting the BOM footnote
// first. It is mutually exclusive with incremental construction via Add/Set.
func (h *File) Write(v value.Value) error {
	if err := h.checkOpen(); err != nil {
		return err
	}
	if err := h.checkWritable(); err != nil {
		return err
	}

	if err := h.writer.WriteValue(v); err != nil {
		return err
	}
	h.bomWritten = true

	return nil
}

// Read materializes the whole file as one Value. IsEmpty reports true
// afterward, with a nil error, if the file held no value at all.
func (h *File) Read() (value.Value, error) {
	if err := h.checkOpen(); err != nil {
		return value.Value{}, err
	}

	r := wire.NewReader(wire.NewCursor(h.osFile), h.engine)
	r.SeekTo(h.rootOffset)

	v, ok, err := value.Materialize(r, h.engine)
	if err != nil {
		return value.Value{}, err
	}
	h.empty = !ok

	if !ok {
		return value.Value{}, nil
	}

	return v, nil
}

// IsEmpty reports whether the most recent Read found no value in the file.
func (h *File) IsEmpty() bool { return h.empty }

// ensureBOM emits the BOM footnote once, before the first incremental
// Add/Set call; WriteValue emits it itself for the single-value path.
func (h *File) ensureBOM() error {
	if h.bomWritten {
		return nil
	}
	if err := h.writer.WriteBOM(); err != nil {
		return err
	}
	h.bomWritten = true

	return nil
}

// Add appends v to the root list scope, opening the root as a list on
// first use.
func (h *File) Add(v value.Value) (*xtypewriter.Scope, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	if err := h.checkWritable(); err != nil {
		return nil, err
	}
	if err := h.ensureBOM(); err != nil {
		return nil, err
	}

	return h.writer.Add(v)
}

// Set writes key/v into the root map scope, opening the root as a map on
// first use.
func (h *File) Set(key string, v value.Value) (*xtypewriter.Scope, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	if err := h.checkWritable(); err != nil {
		return nil, err
	}
	if err := h.ensureBOM(); err != nil {
		return nil, err
	}

	return h.writer.Set(key, v)
}

// rootNav lazily opens the positional navigator over the root value,
// writable when the handle was opened in ReadWrite mode.
func (h *File) rootNav() (*nav.Nav, error) {
	if h.root != nil {
		return h.root, nil
	}

	n, err := nav.Open(h.osFile, h.engine, h.rootOffset, h.mode == ReadWrite)
	if err != nil {
		return nil, err
	}
	h.root = n

	return n, nil
}

// Get looks up key in the root map, returning a navigator for a container
// or for any array other than a 1-D string/bytes run, and a materialized
// value otherwise.
func (h *File) Get(key string) (nav.Result, error) {
	if err := h.checkOpen(); err != nil {
		return nav.Result{}, err
	}

	n, err := h.rootNav()
	if err != nil {
		return nav.Result{}, err
	}

	return n.Get(key)
}

// Index looks up the i-th element of the root list, following the same
// proxy-vs-value policy as Get.
func (h *File) Index(i int64) (nav.Result, error) {
	if err := h.checkOpen(); err != nil {
		return nav.Result{}, err
	}

	n, err := h.rootNav()
	if err != nil {
		return nav.Result{}, err
	}

	return n.Index(i)
}

// Slice returns the [start:stop:step] sub-list of the root list as a
// materialized value.
func (h *File) Slice(start, stop, step int64) (value.Value, error) {
	if err := h.checkOpen(); err != nil {
		return value.Value{}, err
	}

	n, err := h.rootNav()
	if err != nil {
		return value.Value{}, err
	}

	return n.Slice(start, stop, step)
}

// Keys returns the root map's keys in file order.
func (h *File) Keys() ([]value.Value, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	n, err := h.rootNav()
	if err != nil {
		return nil, err
	}

	return n.Keys()
}

// Len returns the root value's length (map entry count, list item count,
// or leading array dimension).
func (h *File) Len() (int64, error) {
	if err := h.checkOpen(); err != nil {
		return 0, err
	}

	n, err := h.rootNav()
	if err != nil {
		return 0, err
	}

	return n.Len()
}

// Iter iterates the root list in file order.
func (h *File) Iter() (*nav.Iterator, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	n, err := h.rootNav()
	if err != nil {
		return nil, err
	}

	return n.Iter()
}

// DebugDump renders the whole file as an indented, line-per-atom dump,
// exposing footnotes (including the BOM) that the production reader
// otherwise skips transparently.
func (h *File) DebugDump(opts xtypedump.Options) ([]string, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	return xtypedump.Dump(h.osFile, h.engine, 0, opts)
}

// Close flushes and closes any open incremental scopes, then releases the
// underlying OS file. Close is idempotent; operations after Close fail with
// errs.ErrReopened.
func (h *File) Close() error {
	if h.state == stateClosed {
		return nil
	}
	h.state = stateClosed

	var writerErr error
	if h.writer != nil {
		writerErr = h.writer.Close()
	}

	closeErr := h.osFile.Close()
	if writerErr != nil {
		return writerErr
	}
	if closeErr != nil {
		return fmt.Errorf("xtype: close: %w", errs.ErrIO)
	}

	return nil
}

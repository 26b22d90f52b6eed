package xtypewriter

import (
	"github.com/bitagoras/xtype-go/errs"
	"github.com/bitagoras/xtype-go/format"
	"github.com/bitagoras/xtype-go/value"
)

// Kind distinguishes a list scope from a map scope.
type Kind uint8

const (
	KindList Kind = iota
	KindMap
)

// State is a Scope's position in its Open -> Closed lifecycle. Closed is
// terminal.
type State uint8

const (
	Open State = iota
	Closed
)

// Scope is one open list or map during incremental writing -- the
// "container proxy" of the design. Scope.Add (list scopes) and Scope.Set
// (map scopes) stream children directly to the writer's buffer. Writing a
// container value pushes and returns a new child Scope that becomes the
// writer's most-recently-touched scope; a scalar write leaves the
// receiver on top.
type Scope struct {
	wr     *Writer
	kind   Kind
	state  State
	parent *Scope
	depth  int
}

func newScope(wr *Writer, kind Kind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}

	return &Scope{wr: wr, kind: kind, parent: parent, depth: depth}
}

// Kind reports whether the scope is a list or a map scope.
func (s *Scope) Kind() Kind { return s.kind }

// Closed reports whether the scope has already been closed.
func (s *Scope) Closed() bool { return s.state == Closed }

// Add appends v to a list scope. If v is itself a list or map, Add opens
// and returns a new child scope holding any items/pairs v already carried;
// the child is left open so the caller can keep streaming into it. Any
// other value is written in place and Add returns (nil, nil).
func (s *Scope) Add(v value.Value) (*Scope, error) {
	if s.state == Closed {
		return nil, errs.ErrScopeClosed
	}
	if s.kind != KindList {
		return nil, errs.ErrWrongContainerKind
	}
	if err := s.wr.closeDescendantsOf(s); err != nil {
		return nil, err
	}

	return s.writeChild(v)
}

// Set writes key/value into a map scope. The key is always a string here;
// non-string keys of a map value are coerced to their string form by
// writeChild before it calls Set.
func (s *Scope) Set(key string, v value.Value) (*Scope, error) {
	if s.state == Closed {
		return nil, errs.ErrScopeClosed
	}
	if s.kind != KindMap {
		return nil, errs.ErrWrongContainerKind
	}
	if err := s.wr.closeDescendantsOf(s); err != nil {
		return nil, err
	}
	if err := s.wr.encodeString(key); err != nil {
		return nil, err
	}

	return s.writeChild(v)
}

// Close closes this scope and, first, every scope nested beneath it
// (innermost-first), emitting the matching close tag for each.
func (s *Scope) Close() error {
	if s.state == Closed {
		return nil
	}
	if err := s.wr.closeDescendantsOf(s); err != nil {
		return err
	}

	return s.wr.closeOne(s)
}

func (s *Scope) writeChild(v value.Value) (*Scope, error) {
	switch v.Kind() {
	case value.KindList:
		s.wr.buf.MustWrite([]byte{byte(format.TagListOpen)})
		child := newScope(s.wr, KindList, s)
		s.wr.last = child

		for _, item := range v.List() {
			if _, err := child.Add(item); err != nil {
				return nil, err
			}
		}

		return child, nil

	case value.KindMap:
		s.wr.buf.MustWrite([]byte{byte(format.TagMapOpen)})
		child := newScope(s.wr, KindMap, s)
		s.wr.last = child

		for _, pair := range v.Map() {
			key := pair.Key
			if key.Kind() != value.KindString {
				key = value.String(key.String())
			}
			if _, err := child.Set(key.Str(), pair.Val); err != nil {
				return nil, err
			}
		}

		return child, nil

	default:
		return nil, s.wr.encodeValue(v)
	}
}

// closeDescendantsOf closes every scope deeper than s (i.e. everything
// between the writer's current last scope and s), leaving s itself open.
// Closing an ancestor scope's descendants this way is what lets a caller
// write to an outer scope after finishing with an inner one without
// explicitly closing it first.
func (wr *Writer) closeDescendantsOf(s *Scope) error {
	for wr.last != nil && wr.last != s {
		if err := wr.closeOne(wr.last); err != nil {
			return err
		}
	}

	return nil
}

// closeOne closes exactly the given scope (which must be wr.last) and
// moves wr.last up to its parent.
func (wr *Writer) closeOne(s *Scope) error {
	tag := byte(format.TagListClose)
	if s.kind == KindMap {
		tag = byte(format.TagMapClose)
	}
	wr.buf.MustWrite([]byte{tag})
	s.state = Closed
	wr.last = s.parent

	return nil
}

// Add appends v as the next item of the root list scope, opening the root
// as a list on first use. Calling Add after the root was opened as a map
// fails with WrongContainerKind.
func (wr *Writer) Add(v value.Value) (*Scope, error) {
	if wr.root == nil {
		wr.buf.MustWrite([]byte{byte(format.TagListOpen)})
		wr.root = newScope(wr, KindList, nil)
		wr.last = wr.root
	}

	return wr.root.Add(v)
}

// Set writes key/v into the root map scope, opening the root as a map on
// first use. Calling Set after the root was opened as a list fails with
// WrongContainerKind.
func (wr *Writer) Set(key string, v value.Value) (*Scope, error) {
	if wr.root == nil {
		wr.buf.MustWrite([]byte{byte(format.TagMapOpen)})
		wr.root = newScope(wr, KindMap, nil)
		wr.last = wr.root
	}

	return wr.root.Set(key, v)
}

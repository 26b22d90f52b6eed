// Package value defines the in-memory sum-type value tree that the wire
// codec materializes on read and accepts on write: the out-of-scope
// numeric-array library's minimal stand-in (Array is a typed contiguous
// buffer plus shape), a polymorphic Value, and an ordered map type that
// sidesteps Go's lack of hashable variable-length keys.
package value

import (
	"fmt"

	"github.com/bitagoras/xtype-go/format"
)

// Kind discriminates the sum type stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindArray
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindArray:
		return "Array"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	default:
		return "Invalid"
	}
}

// Value is the polymorphic value sum type: exactly one of null, bool,
// signed/unsigned integer, float, string, bytes, array, list, or map.
//
// Map keys after decode are strings, integers, floats, or nested tuples of
// the same, never arbitrary host values, so a Value is also used to
// represent a decoded map key (see Pair).
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	bs   []byte
	arr  Array
	list []Value
	m    Map
}

// Pair is one key/value entry of a Map, in file encounter order.
type Pair struct {
	Key Value
	Val Value
}

// Map is an ordered association list rather than a native Go map: decoded
// keys may be array-typed ("tuple") values, which are not Go-comparable, so
// no Go map could index them. Lookups below are linear scans, matching the
// cost the grammar itself imposes (there is no on-disk index).
type Map []Pair

// Get returns the value paired with a string key, in file order (last
// write wins on duplicate keys, per the container contract).
func (m Map) Get(key string) (Value, bool) {
	found, ok := Value{}, false
	for _, p := range m {
		if p.Key.kind == KindString && p.Key.s == key {
			found, ok = p.Val, true
		}
	}

	return found, ok
}

// Keys returns the map's keys in file order.
func (m Map) Keys() []Value {
	keys := make([]Value, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}

	return keys
}

// Array is a homogeneous n-D typed contiguous buffer: Data holds Len()
// elements of format.ElementBytes(Tag) bytes each, row-major, already
// converted to host byte order.
type Array struct {
	Tag   format.Tag
	Shape []int64
	Data  []byte
}

// Len returns the total element count implied by Shape (1 for a scalar
// shape of length zero... Array is only ever constructed with len(Shape)>=1).
func (a Array) Len() int64 {
	n := int64(1)
	for _, d := range a.Shape {
		n *= d
	}

	return n
}

// ElementBytes returns the per-element width of the array's tag.
func (a Array) ElementBytes() int {
	n, _ := format.ElementBytes(a.Tag)
	return n
}

func Null() Value              { return Value{kind: KindNull} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Int(i int64) Value        { return Value{kind: KindInt, i: i} }
func Uint(u uint64) Value      { return Value{kind: KindUint, u: u} }
func Float(f float64) Value    { return Value{kind: KindFloat, f: f} }
func String(s string) Value    { return Value{kind: KindString, s: s} }
func Bytes(b []byte) Value     { return Value{kind: KindBytes, bs: b} }
func ArrayValue(a Array) Value { return Value{kind: KindArray, arr: a} }
func List(items []Value) Value { return Value{kind: KindList, list: items} }
func MapValue(m Map) Value     { return Value{kind: KindMap, m: m} }

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) Bool() bool    { return v.b }
// Int returns the integer value; an unsigned value is converted to int64,
// so an Int written under a narrowed unsigned tag reads back the same.
func (v Value) Int() int64 {
	if v.kind == KindUint {
		return int64(v.u) //nolint:gosec
	}

	return v.i
}
func (v Value) Uint() uint64  { return v.u }
func (v Value) Float() float64 { return v.f }
func (v Value) Str() string   { return v.s }
func (v Value) Bytes() []byte { return v.bs }
func (v Value) Array() Array  { return v.arr }
func (v Value) List() []Value { return v.list }
func (v Value) Map() Map      { return v.m }

// AsInt64 widens any of the integer kinds to int64, for callers that accept
// either signed or unsigned scalars interchangeably (e.g. array index math).
func (v Value) AsInt64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		return int64(v.u), true //nolint:gosec
	default:
		return 0, false
	}
}

// Equal reports deep logical equality, per the round-trip laws: arrays
// compare element-wise including shape and tag, lists and maps recurse,
// and a signed and an unsigned integer holding the same number are equal
// (the writer narrows non-negative integers to unsigned tags). Maps compare
// pair by pair in order; the materializer keeps duplicate keys as separate
// pairs, and Equal does not dedupe them.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if v.kind == KindInt && other.kind == KindUint {
			return v.i >= 0 && uint64(v.i) == other.u
		}
		if v.kind == KindUint && other.kind == KindInt {
			return other.i >= 0 && uint64(other.i) == v.u
		}

		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindUint:
		return v.u == other.u
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindBytes:
		return string(v.bs) == string(other.bs)
	case KindArray:
		return arrayEqual(v.arr, other.arr)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(other.m[i].Key) || !v.m[i].Val.Equal(other.m[i].Val) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func arrayEqual(a, b Array) bool {
	if a.Tag != b.Tag || len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}

	return string(a.Data) == string(b.Data)
}

// String implements fmt.Stringer for debug output; it is deliberately
// shallow for containers (no recursive dump -- see xtypedump for that).
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindUint:
		return fmt.Sprintf("%d", v.u)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", len(v.bs))
	case KindArray:
		return fmt.Sprintf("array(%c)%v", v.arr.Tag, v.arr.Shape)
	case KindList:
		return fmt.Sprintf("list[%d]", len(v.list))
	case KindMap:
		return fmt.Sprintf("map[%d]", len(v.m))
	default:
		return "invalid"
	}
}

// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// This enables cleaner API design and improved performance for binary data operations.
//
// # Basic Usage
//
// A file handle is configured with a Preference (Little, Big, or Auto). Auto
// defers to the byte-order mark footnote found at the start of the stream, and
// falls back to big-endian (the format's conventional default) when no BOM is
// present:
//
//	import "github.com/bitagoras/xtype-go/endian"
//
//	engine := endian.GetBigEndianEngine()
//
// # Performance
//
// Using EndianEngine (which includes AppendByteOrder) provides approximately 30%
// better performance for appending operations compared to ByteOrder alone:
//
//	// Using EndianEngine (recommended)
//	buf = engine.AppendUint64(buf, value)  // ~30% faster
//
//	// Using ByteOrder only
//	tmp := make([]byte, 8)
//	engine.PutUint64(tmp, value)
//	buf = append(buf, tmp...)  // Slower, extra allocation
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Preference is the user-configured byte-order policy for a file handle.
type Preference uint8

const (
	// Little forces little-endian regardless of any BOM footnote seen on read.
	Little Preference = iota
	// Big forces big-endian regardless of any BOM footnote seen on read.
	Big
	// Auto resolves the effective order from the BOM footnote on read, and
	// defaults to big-endian (the format's conventional default) on write
	// and when no BOM is present on read.
	Auto
)

// BOMValue is the signed int16 payload of the canonical byte-order-mark
// footnote ('*' 'j' <int16>). A decoder reads this value in both byte orders
// and compares against BOMValue to tell which one produced 1234 instead of
// -11772 (1234 byte-swapped).
const BOMValue int16 = 1234

// Engine resolves a Preference to a concrete EndianEngine.
//
// bomOrder/bomSeen describe a BOM footnote observed on read; they are ignored
// when pref is Little or Big. When pref is Auto and no BOM was seen, the
// result is big-endian.
func Engine(pref Preference, bomOrder EndianEngine, bomSeen bool) EndianEngine {
	switch pref {
	case Little:
		return GetLittleEndianEngine()
	case Big:
		return GetBigEndianEngine()
	default: // Auto
		if bomSeen {
			return bomOrder
		}

		return GetBigEndianEngine()
	}
}

// NeedByteswap reports whether values encoded with engine must be byte-swapped
// to be interpreted correctly on this host.
func NeedByteswap(engine EndianEngine) bool {
	return !CompareNativeEndian(engine)
}

// ResolveBOM decodes a BOM footnote payload (2 raw bytes, the int16 1234
// written in the file's order) and reports which engine produced it.
// ok is false if neither byte order decodes the payload to 1234.
func ResolveBOM(payload []byte) (engine EndianEngine, ok bool) {
	if len(payload) != 2 {
		return nil, false
	}

	if int16(binary.LittleEndian.Uint16(payload)) == BOMValue { //nolint:gosec
		return GetLittleEndianEngine(), true
	}
	if int16(binary.BigEndian.Uint16(payload)) == BOMValue { //nolint:gosec
		return GetBigEndianEngine(), true
	}

	return nil, false
}

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// HostEngine returns the engine matching this process's native byte order,
// for code (like the navigator's array assignment) that encodes a value in
// host order before an explicit byte-swap-if-needed pass.
func HostEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}

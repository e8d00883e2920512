// Package bytecodec provides the endian-aware scalar and string primitives
// used to pack and unpack the CFB wire format: little-endian 16/32-bit
// integers, UTF-16LE strings with byte-length padding, hex strings, and
// CFB FILETIME timestamps.
//
// The wire format is little-endian by definition (MS-CFB), so unlike the
// dynamically-typed oracle this package is modeled on, there is no runtime
// host-endian detection here — every primitive below is explicit about the
// byte order it reads or writes.
package bytecodec

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/text/encoding/unicode"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// StringForm selects how WriteShiftString/ReadShiftString interpret their
// byte payload.
type StringForm int

const (
	// FormHex treats the value as a hex string, decoded high-nibble-first.
	FormHex StringForm = iota
	// FormUTF16LE treats the value as text, encoded/decoded as UTF-16LE.
	FormUTF16LE
)

// ReadU8 reads a single byte at off.
func ReadU8(buf []byte, off int) uint8 {
	return buf[off]
}

// ReadU16LE reads a little-endian uint16 at off.
func ReadU16LE(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// ReadU32LE reads a little-endian uint32 at off.
func ReadU32LE(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

// ReadI32LE reads a little-endian signed int32 at off.
func ReadI32LE(buf []byte, off int) int32 {
	return int32(ReadU32LE(buf, off))
}

// WriteU8 writes a single byte at off.
func WriteU8(buf []byte, off int, v uint8) {
	buf[off] = v
}

// WriteU16LE writes a little-endian uint16 at off.
func WriteU16LE(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
}

// WriteU32LE writes a little-endian uint32 at off.
func WriteU32LE(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

// WriteI32LE writes a little-endian signed int32 at off.
func WriteI32LE(buf []byte, off int, v int32) {
	WriteU32LE(buf, off, uint32(v))
}

// ReadShift reads a little-endian integer of abs(size) bytes from the start
// of buf. signed controls two's-complement sign extension. This mirrors the
// reference oracle's read_shift(bytes, size, signed?) entry point:
//
//	ReadShift([]byte{0xE4,0xFF,0xFF,0xFF}, 4, true)  == -31
//	ReadShift([]byte{0xE4,0xFF}, 2, false)           == 0xFFE4
func ReadShift(buf []byte, size int, signed bool) int64 {
	n := size
	if n < 0 {
		n = -n
	}
	var u uint64
	for i := 0; i < n; i++ {
		u |= uint64(buf[i]) << (8 * i)
	}
	if !signed {
		return int64(u)
	}
	bits := uint(n * 8)
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

// WriteShiftInt encodes value as a little-endian integer occupying
// abs(size) bytes. A negative size is the legacy marker for "signed"; it
// carries no behavioral difference here since two's-complement encoding of
// a negative value already requires no separate code path:
//
//	WriteShiftInt(2, 0x1234)  == []byte{0x34, 0x12}
//	WriteShiftInt(-4, -31)    == []byte{0xe1, 0xff, 0xff, 0xff}
func WriteShiftInt(size int, value int64) []byte {
	n := size
	if n < 0 {
		n = -n
	}
	buf := make([]byte, n)
	u := uint64(value)
	for i := 0; i < n; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	return buf
}

// WriteShiftString encodes value in the given form, padded or truncated to
// exactly targetBytes bytes:
//
//	WriteShiftString(4, "4080c1ff0120", FormHex)    == []byte{0x40,0x80,0xc1,0xff}
//	WriteShiftString(8, "abc", FormUTF16LE)         == []byte{97,0,98,0,99,0,0,0}
func WriteShiftString(targetBytes int, value string, form StringForm) ([]byte, error) {
	switch form {
	case FormHex:
		decoded, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("bytecodec: invalid hex string %q: %w", value, err)
		}
		out := make([]byte, targetBytes)
		copy(out, decoded)
		return out, nil
	case FormUTF16LE:
		encoded, err := utf16LE.NewEncoder().Bytes([]byte(value))
		if err != nil {
			return nil, fmt.Errorf("bytecodec: encoding %q as UTF-16LE: %w", value, err)
		}
		out := make([]byte, targetBytes)
		copy(out, encoded)
		return out, nil
	default:
		return nil, fmt.Errorf("bytecodec: unknown string form %d", form)
	}
}

// WriteRaw copies value into a size-byte buffer verbatim (used for CLSIDs).
func WriteRaw(size int, value []byte) []byte {
	out := make([]byte, size)
	copy(out, value)
	return out
}

// ReadShiftString is the read-side counterpart of WriteShiftString.
func ReadShiftString(buf []byte, form StringForm) (string, error) {
	switch form {
	case FormHex:
		return hex.EncodeToString(buf), nil
	case FormUTF16LE:
		if len(buf)%2 != 0 {
			return "", fmt.Errorf("bytecodec: odd-length utf16le buffer (%d bytes)", len(buf))
		}
		decoded, err := utf16LE.NewDecoder().Bytes(buf)
		if err != nil {
			return "", fmt.Errorf("bytecodec: decoding UTF-16LE buffer: %w", err)
		}
		s := string(decoded)
		for len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		return s, nil
	default:
		return "", fmt.Errorf("bytecodec: unknown string form %d", form)
	}
}

// filetimeEpochOffsetSeconds is the number of seconds between the FILETIME
// epoch (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const filetimeEpochOffsetSeconds = 11644473600

// GetTime decodes an 8-byte FILETIME (two little-endian uint32s: low, then
// high) into a UTC time. A (0,0) FILETIME means "no timestamp", reported by
// ok=false.
func GetTime(buf []byte) (t time.Time, ok bool) {
	low := ReadU32LE(buf, 0)
	high := ReadU32LE(buf, 4)
	if low == 0 && high == 0 {
		return time.Time{}, false
	}
	ticks := uint64(high)<<32 | uint64(low)
	seconds := int64(ticks/1e7) - filetimeEpochOffsetSeconds
	nanos := int64(ticks%1e7) * 100
	return time.Unix(seconds, nanos).UTC(), true
}

// PutZeroTime writes an all-zero FILETIME, the writer's representation of
// "no timestamp" (spec: writer always encodes timestamps as all-zero).
func PutZeroTime(buf []byte) {
	WriteU32LE(buf, 0, 0)
	WriteU32LE(buf, 4, 0)
}

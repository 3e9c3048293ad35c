// Package binary provides low-level decoding primitives for ASD file parsing.
//
// All multi-byte fields in an ASD file are little-endian. Every read is
// bounds-checked against the backing buffer; a short read fails with a
// *DecodeError and the caller is expected to abort the whole parse, never to
// continue from a partial decode.
package binary

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// DecodeError reports an out-of-bounds primitive read.
type DecodeError struct {
	Offset int64 // position the read started at
	Need   int   // bytes required
	Have   int   // bytes remaining
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("short read at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// Reader is a bounds-checked cursor over an in-memory file buffer.
// The buffer is read in one up-front pass by the caller; Reader itself
// performs no I/O.
type Reader struct {
	buf []byte
	pos int64
}

// NewReader creates a reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// At returns a new reader over the same buffer positioned at offset.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{buf: r.buf, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Len returns the total buffer length.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Remaining returns the number of bytes left after the current position.
func (r *Reader) Remaining() int {
	if r.pos >= int64(len(r.buf)) {
		return 0
	}
	return len(r.buf) - int(r.pos)
}

// Skip advances the position by n bytes without decoding.
// Skipping past the end is detected by the next read, not here.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &DecodeError{Offset: r.pos, Need: n, Have: r.Remaining()}
	}
	if n == 0 {
		return nil, nil
	}
	if r.Remaining() < n {
		return nil, &DecodeError{Offset: r.pos, Need: n, Have: r.Remaining()}
	}
	out := r.buf[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return out, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads an unsigned 64-bit little-endian integer.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt16 reads a signed 16-bit little-endian integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a signed 32-bit little-endian integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a signed 64-bit little-endian integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE-754 single-precision little-endian float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE-754 double-precision little-endian float.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadFixedString reads an n-byte NUL-padded text field, decodes it as
// Windows-1252 (the single-byte encoding ASD instruments write), and trims
// it at the first NUL.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// ReadPrefixedString reads a string stored as a 16-bit length followed by
// that many Windows-1252 bytes.
func (r *Reader) ReadPrefixedString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	return r.ReadFixedString(int(n))
}

// ReadPackedTime reads the vendor's 18-byte packed calendar time: nine
// 16-bit fields laid out like a C struct tm (sec, min, hour, mday, mon,
// year-1900, wday, yday, isdst). The wday/yday/isdst fields are consumed
// but not used; the result is in UTC.
func (r *Reader) ReadPackedTime() (time.Time, error) {
	var f [9]int16
	for i := range f {
		v, err := r.ReadInt16()
		if err != nil {
			return time.Time{}, err
		}
		f[i] = v
	}
	return time.Date(int(f[5])+1900, time.Month(f[4]+1), int(f[3]),
		int(f[2]), int(f[1]), int(f[0]), 0, time.UTC), nil
}

// ReadUnixTime32 reads a 32-bit count of seconds since the Unix epoch.
func (r *Reader) ReadUnixTime32() (time.Time, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(v), 0).UTC(), nil
}

// ReadUnixTime64 reads a 64-bit count of seconds since the Unix epoch
// (the vendor __time64_t).
func (r *Reader) ReadUnixTime64() (time.Time, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(v, 0).UTC(), nil
}

// Flag extracts a bit-field from b: the bits selected by mask, shifted down
// by shift. Flag bits must always be read through a documented mask, never
// compared against whole-byte values.
func Flag(b uint8, mask uint8, shift uint) uint8 {
	return (b & mask) >> shift
}

// FlagSet reports whether any bit selected by mask is set in b.
func FlagSet(b uint8, mask uint8) bool {
	return b&mask != 0
}

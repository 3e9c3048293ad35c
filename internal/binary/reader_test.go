package binary

import (
	"errors"
	"testing"
	"time"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xFF})

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
}

func TestReaderReadUint16(t *testing.T) {
	// Little-endian: 0x0102 stored as [0x02, 0x01]
	r := NewReader([]byte{0x02, 0x01, 0xFF, 0xFF})

	v, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}

	v, err = r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0xFFFF {
		t.Errorf("expected 0xFFFF, got 0x%04x", v)
	}
}

func TestReaderReadUint32(t *testing.T) {
	r := NewReader([]byte{0x78, 0x56, 0x34, 0x12})

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}
}

func TestReaderReadInt16Negative(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF})

	v, err := r.ReadInt16()
	if err != nil {
		t.Fatalf("ReadInt16 failed: %v", err)
	}
	if v != -1 {
		t.Errorf("expected -1, got %d", v)
	}
}

func TestReaderReadFloat(t *testing.T) {
	// float32(1.5) = 0x3FC00000, float64(2.5) = 0x4004000000000000
	r := NewReader([]byte{
		0x00, 0x00, 0xC0, 0x3F,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x40,
	})

	f32, err := r.ReadFloat32()
	if err != nil {
		t.Fatalf("ReadFloat32 failed: %v", err)
	}
	if f32 != 1.5 {
		t.Errorf("expected 1.5, got %v", f32)
	}

	f64, err := r.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64 failed: %v", err)
	}
	if f64 != 2.5 {
		t.Errorf("expected 2.5, got %v", f64)
	}
}

func TestReaderShortRead(t *testing.T) {
	tests := []struct {
		name string
		read func(r *Reader) error
		data []byte
	}{
		{"uint16", func(r *Reader) error { _, err := r.ReadUint16(); return err }, []byte{0x01}},
		{"uint32", func(r *Reader) error { _, err := r.ReadUint32(); return err }, []byte{0x01, 0x02, 0x03}},
		{"float64", func(r *Reader) error { _, err := r.ReadFloat64(); return err }, []byte{0, 1, 2, 3, 4, 5, 6}},
		{"bytes", func(r *Reader) error { _, err := r.ReadBytes(10); return err }, []byte{0, 1, 2}},
		{"empty", func(r *Reader) error { _, err := r.ReadUint8(); return err }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(tt.data))
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if de.Have != len(tt.data) {
				t.Errorf("expected Have=%d, got %d", len(tt.data), de.Have)
			}
		})
	}
}

func TestReaderShortReadAfterSkip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	r.Skip(10)

	if _, err := r.ReadUint8(); err == nil {
		t.Fatal("expected error reading past skipped end")
	}
	if r.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", r.Remaining())
	}
}

func TestReaderFixedString(t *testing.T) {
	r := NewReader([]byte{'s', 'p', 'e', 'c', 0x00, 'x', 'y', 'z'})

	s, err := r.ReadFixedString(8)
	if err != nil {
		t.Fatalf("ReadFixedString failed: %v", err)
	}
	if s != "spec" {
		t.Errorf("expected %q, got %q", "spec", s)
	}
	if r.Pos() != 8 {
		t.Errorf("expected cursor at 8, got %d", r.Pos())
	}
}

func TestReaderFixedStringWindows1252(t *testing.T) {
	// 0xB5 is MICRO SIGN in Windows-1252
	r := NewReader([]byte{0xB5, 'm', 0x00, 0x00})

	s, err := r.ReadFixedString(4)
	if err != nil {
		t.Fatalf("ReadFixedString failed: %v", err)
	}
	if s != "µm" {
		t.Errorf("expected micro-m, got %q", s)
	}
}

func TestReaderPrefixedString(t *testing.T) {
	r := NewReader([]byte{0x05, 0x00, 'h', 'e', 'l', 'l', 'o', 0xAA})

	s, err := r.ReadPrefixedString()
	if err != nil {
		t.Fatalf("ReadPrefixedString failed: %v", err)
	}
	if s != "hello" {
		t.Errorf("expected %q, got %q", "hello", s)
	}

	r = NewReader([]byte{0x05, 0x00, 'h', 'i'})
	if _, err := r.ReadPrefixedString(); err == nil {
		t.Fatal("expected error for truncated prefixed string")
	}
}

func TestReaderPackedTime(t *testing.T) {
	// 2019-06-15 14:30:45 as struct tm fields
	fields := []int16{45, 30, 14, 15, 5, 119, 6, 165, 1}
	buf := make([]byte, 0, 18)
	for _, f := range fields {
		buf = append(buf, byte(f), byte(f>>8))
	}

	r := NewReader(buf)
	ts, err := r.ReadPackedTime()
	if err != nil {
		t.Fatalf("ReadPackedTime failed: %v", err)
	}
	want := time.Date(2019, time.June, 15, 14, 30, 45, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts)
	}
}

func TestReaderUnixTime(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x60}) // 0x60000000 = 2021-01-14T08:25:36Z
	ts, err := r.ReadUnixTime32()
	if err != nil {
		t.Fatalf("ReadUnixTime32 failed: %v", err)
	}
	if ts.Unix() != 0x60000000 {
		t.Errorf("expected %d, got %d", 0x60000000, ts.Unix())
	}
}

func TestFlagExtraction(t *testing.T) {
	tests := []struct {
		name  string
		b     uint8
		mask  uint8
		shift uint
		want  uint8
	}{
		{"low bit", 0x01, 0x01, 0, 1},
		{"clear", 0x0E, 0x01, 0, 0},
		{"mask 0x10 set", 0x10, 0x10, 4, 1},
		{"surrounding bits only", 0x06, 0x10, 4, 0},
		{"multi-bit field", 0x6C, 0x1C, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flag(tt.b, tt.mask, tt.shift); got != tt.want {
				t.Errorf("Flag(0x%02x, 0x%02x, %d) = %d, want %d", tt.b, tt.mask, tt.shift, got, tt.want)
			}
		})
	}
}

func TestReaderAt(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	r2 := r.At(2)

	v, err := r2.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 3 {
		t.Errorf("expected 3, got %d", v)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}
}

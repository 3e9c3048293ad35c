package asd

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// calFixture is one calibration series in a synthetic file.
type calFixture struct {
	ctype  uint8
	coeffs []float64
}

// fixture builds well-formed (or deliberately malformed) ASD files in memory
// for tests. Zero values fall back to a plausible v8 full-range scan.
type fixture struct {
	version      int
	dataFormat   uint8
	wavelStart   float32
	wavelStep    float32
	flags0       uint8
	comments     string
	dn           []float64
	reference    []float64
	calibrations []calFixture
	calDeclared  int // header calibration series count; -1 means len(calibrations)
	audit        []string
	noEOF        bool
}

func defaultFixture(version int) fixture {
	return fixture{
		version:     version,
		dataFormat:  2, // float64
		wavelStart:  350,
		wavelStep:   1,
		comments:    "field scan",
		dn:          []float64{100, 200, 300},
		reference:   []float64{100, 100, 100},
		calDeclared: -1,
		calibrations: []calFixture{
			{ctype: 0, coeffs: []float64{0.5, 0.5, 0.5}},
		},
		audit: []string{"scan acquired", "reference taken"},
	}
}

func (fx fixture) channels() int { return len(fx.dn) }

func (fx fixture) build() []byte {
	hdr := make([]byte, 484)

	tag := "ASD"
	if fx.version > 1 {
		tag = fmt.Sprintf("as%d", fx.version)
	}
	copy(hdr[0:3], tag)
	copy(hdr[3:160], fx.comments)

	// Save time 2020-01-02 03:04:05 as struct tm fields.
	for i, v := range []int16{5, 4, 3, 2, 0, 120, 4, 1, 0} {
		binary.LittleEndian.PutUint16(hdr[160+2*i:], uint16(v))
	}

	hdr[178] = 0x12 // program version 1.2
	hdr[179] = byte(fx.version << 4)
	hdr[186] = 0 // raw DN
	binary.LittleEndian.PutUint32(hdr[191:], math.Float32bits(fx.wavelStart))
	binary.LittleEndian.PutUint32(hdr[195:], math.Float32bits(fx.wavelStep))
	hdr[199] = fx.dataFormat
	binary.LittleEndian.PutUint16(hdr[204:], uint16(fx.channels()))

	// GPS fix
	binary.LittleEndian.PutUint64(hdr[350:], math.Float64bits(46.5))  // latitude
	binary.LittleEndian.PutUint64(hdr[358:], math.Float64bits(-6.6))  // longitude
	binary.LittleEndian.PutUint64(hdr[366:], math.Float64bits(372.0)) // altitude

	binary.LittleEndian.PutUint32(hdr[390:], 17) // integration time

	declared := fx.calDeclared
	if declared < 0 {
		declared = len(fx.calibrations)
	}
	if fx.version >= 7 {
		binary.LittleEndian.PutUint16(hdr[398:], uint16(declared))
	}

	hdr[421] = fx.flags0
	hdr[431] = 4 // FieldSpec Full Range
	if fx.version >= 7 {
		copy(hdr[452:479], "smart detector")
	}

	buf := hdr

	putF64 := func(v float64) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		buf = append(buf, b[:]...)
	}
	putStr := func(s string) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(len(s)))
		buf = append(buf, b[:]...)
		buf = append(buf, s...)
	}

	// Spectrum samples
	for _, v := range fx.dn {
		switch fx.dataFormat {
		case 0:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
			buf = append(buf, b[:]...)
		case 1:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(int32(v)))
			buf = append(buf, b[:]...)
		default:
			putF64(v)
		}
	}

	if fx.version >= 2 {
		buf = append(buf, 1, 0) // reference flag
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(1577934245)) // reference time
		buf = append(buf, b[:]...)
		binary.LittleEndian.PutUint64(b[:], uint64(1577934260)) // spectrum time
		buf = append(buf, b[:]...)
		putStr("white reference")
		for _, v := range fx.reference {
			putF64(v)
		}
	}

	if fx.version >= 6 {
		// Classifier: codes, 20 strings, one constituent.
		buf = append(buf, 1, 2)
		putStr("calibration model")
		for i := 0; i < 19; i++ {
			putStr("")
		}
		var cc [2]byte
		binary.LittleEndian.PutUint16(cc[:], 1)
		buf = append(buf, cc[:]...)
		putStr("chlorophyll")
		putStr("PASS")
		for i := 0; i < 8; i++ {
			putF64(float64(i))
		}
		buf = append(buf, 3, 0, 0, 0) // model type int32

		// Dependent variables: one labelled value.
		buf = append(buf, 1, 0) // save flag
		binary.LittleEndian.PutUint16(cc[:], 1)
		buf = append(buf, cc[:]...)
		putStr("NDVI")
		var f32 [4]byte
		binary.LittleEndian.PutUint32(f32[:], math.Float32bits(0.5))
		buf = append(buf, f32[:]...)
	}

	if fx.version >= 7 {
		buf = append(buf, byte(len(fx.calibrations)))
		for _, c := range fx.calibrations {
			buf = append(buf, c.ctype)
			name := make([]byte, 20)
			copy(name, "factory")
			buf = append(buf, name...)
			buf = append(buf, 100, 0, 0, 0) // integration time int32
			buf = append(buf, 0, 0, 0, 0)   // swir gains
		}
		for _, c := range fx.calibrations {
			for _, v := range c.coeffs {
				putF64(v)
			}
		}
	}

	if fx.version >= 8 {
		var c [4]byte
		binary.LittleEndian.PutUint32(c[:], uint32(len(fx.audit)))
		buf = append(buf, c[:]...)
		for _, e := range fx.audit {
			putStr(e)
		}

		buf = append(buf, 1) // signed flag
		sig := make([]byte, 128)
		for i := range sig {
			sig[i] = 0xAB
		}
		buf = append(buf, sig...)
		putStr("operator")

		if !fx.noEOF {
			buf = append(buf, 0xFF, 0xFE, 0xFD)
		}
	}

	return buf
}

// writeFixture writes a built fixture to a temp file and returns its path.
func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

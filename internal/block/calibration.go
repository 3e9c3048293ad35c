package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

/*
Calibration Header Layout (revision 7+):

Offset  Size  Description
0       1     Calibration buffer count
1       29*n  Buffer descriptors, each:
              1   Calibration type code (ABS/BSE/LMP/FO)
              20  Name (NUL-padded text)
              4   Integration time (ms, int32)
              2   SWIR1 gain
              2   SWIR2 gain

One coefficient series (channels x float64) per descriptor follows, in
descriptor order.
*/

// CalibrationType identifies one of the four calibration coefficient series.
type CalibrationType uint8

// Calibration type codes.
const (
	CalibrationAbsolute   CalibrationType = iota // ABS
	CalibrationBase                              // BSE
	CalibrationLamp                              // LMP
	CalibrationFiberOptic                        // FO
)

func (t CalibrationType) String() string {
	switch t {
	case CalibrationAbsolute:
		return "ABS"
	case CalibrationBase:
		return "BSE"
	case CalibrationLamp:
		return "LMP"
	case CalibrationFiberOptic:
		return "FO"
	default:
		return fmt.Sprintf("calibration(%d)", uint8(t))
	}
}

// CalibrationBuffer describes one embedded calibration series.
type CalibrationBuffer struct {
	Type            CalibrationType
	Name            string
	IntegrationTime int32
	SWIR1Gain       int16
	SWIR2Gain       int16
}

// CalibrationHeader lists the calibration series present in the file, in the
// order their coefficient arrays are stored.
type CalibrationHeader struct {
	Buffers []CalibrationBuffer
}

// ReadCalibrationHeader decodes the calibration header block.
func ReadCalibrationHeader(r *binary.Reader, v Version) (*CalibrationHeader, error) {
	if v < V7 {
		return nil, fmt.Errorf("calibration: block not defined before revision 7")
	}

	count, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("calibration.count: %w", err)
	}

	h := &CalibrationHeader{Buffers: make([]CalibrationBuffer, 0, count)}
	for i := 0; i < int(count); i++ {
		var b CalibrationBuffer

		code, err := r.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("calibration[%d].type: %w", i, err)
		}
		if code > uint8(CalibrationFiberOptic) {
			return nil, &FormatError{Reason: fmt.Sprintf("unknown calibration type code %d", code)}
		}
		b.Type = CalibrationType(code)

		if b.Name, err = r.ReadFixedString(20); err != nil {
			return nil, fmt.Errorf("calibration[%d].name: %w", i, err)
		}
		if b.IntegrationTime, err = r.ReadInt32(); err != nil {
			return nil, fmt.Errorf("calibration[%d].integrationTime: %w", i, err)
		}
		if b.SWIR1Gain, err = r.ReadInt16(); err != nil {
			return nil, fmt.Errorf("calibration[%d].swir1Gain: %w", i, err)
		}
		if b.SWIR2Gain, err = r.ReadInt16(); err != nil {
			return nil, fmt.Errorf("calibration[%d].swir2Gain: %w", i, err)
		}

		h.Buffers = append(h.Buffers, b)
	}
	return h, nil
}

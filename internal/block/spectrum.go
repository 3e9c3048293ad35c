package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// ReadSamples decodes one per-channel sample array. The element type on disk
// is keyed to the header's data format code; samples are always surfaced as
// float64. The spectrum block immediately follows the header and the white
// reference block follows its own header, both with exactly channels
// elements.
func ReadSamples(r *binary.Reader, format DataFormat, channels int) ([]float64, error) {
	out := make([]float64, channels)
	switch format {
	case FormatFloat32:
		for i := range out {
			v, err := r.ReadFloat32()
			if err != nil {
				return nil, fmt.Errorf("samples[%d]: %w", i, err)
			}
			out[i] = float64(v)
		}
	case FormatInt32:
		for i := range out {
			v, err := r.ReadInt32()
			if err != nil {
				return nil, fmt.Errorf("samples[%d]: %w", i, err)
			}
			out[i] = float64(v)
		}
	case FormatFloat64:
		for i := range out {
			v, err := r.ReadFloat64()
			if err != nil {
				return nil, fmt.Errorf("samples[%d]: %w", i, err)
			}
			out[i] = v
		}
	default:
		return nil, &FormatError{Reason: fmt.Sprintf("unknown data format code %d", format)}
	}
	return out, nil
}

// ReadFloat64Series decodes a plain array of channels float64 values. White
// reference samples and calibration series are always stored as float64
// regardless of the header's data format code.
func ReadFloat64Series(r *binary.Reader, channels int) ([]float64, error) {
	out := make([]float64, channels)
	for i := range out {
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, fmt.Errorf("series[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

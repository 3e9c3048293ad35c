package block

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

/*
Reference File Header Layout (revision 2+):

Offset  Size  Description
0       2     Reference flag
2       8     Reference scan time (Unix seconds, 64-bit)
10      8     Spectrum scan time (Unix seconds, 64-bit)
18      var   Spectrum description (16-bit length prefix + text)

The white reference samples (channels x float64) follow immediately.
*/

// ReferenceHeader is the metadata of the embedded white-reference scan.
type ReferenceHeader struct {
	UseReference  bool
	ReferenceTime time.Time
	SpectrumTime  time.Time
	Description   string
}

// ReadReferenceHeader decodes the white-reference block header.
func ReadReferenceHeader(r *binary.Reader, v Version) (*ReferenceHeader, error) {
	if v < V2 {
		return nil, fmt.Errorf("reference: block not defined before revision 2")
	}

	h := &ReferenceHeader{}

	plan := Plan{Block: "reference", Fields: []Field{
		{Name: "referenceFlag", IntroducedIn: V2, Width: 2, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint16()
			h.UseReference = b != 0
			return err
		}},
		{Name: "referenceTime", IntroducedIn: V2, Width: 8, Decode: func(r *binary.Reader) error {
			var err error
			h.ReferenceTime, err = r.ReadUnixTime64()
			return err
		}},
		{Name: "spectrumTime", IntroducedIn: V2, Width: 8, Decode: func(r *binary.Reader) error {
			var err error
			h.SpectrumTime, err = r.ReadUnixTime64()
			return err
		}},
		{Name: "description", IntroducedIn: V2, Width: -1, Decode: func(r *binary.Reader) error {
			var err error
			h.Description, err = r.ReadPrefixedString()
			return err
		}},
	}}

	if err := plan.Run(r, v); err != nil {
		return nil, err
	}
	return h, nil
}

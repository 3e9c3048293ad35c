package block

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

/*
Spectrum File Header Layout (fixed 484 bytes, all revisions):

Offset  Size  Description
0       3     Version tag ("ASD", "as2".."as8")
3       157   Comments (NUL-padded text)
160     18    Save time (packed struct tm, 9 x int16)
178     1     Program version (packed nibbles)
179     1     File version (packed nibbles)
180     1     Integration time index
181     1     Dark current corrected flag
182     4     Dark current time (Unix seconds)
186     1     Data type code
187     4     White reference time (Unix seconds)
191     4     First channel wavelength (float32, nm)
195     4     Wavelength step (float32, nm)
199     1     Spectrum data format code
200     3     Legacy dark/reference/sample counts
203     1     Application
204     2     Channel count
206     128   Application-reserved data
334     56    GPS block
390     4     Integration time (ms)
394     2     Fore optic
396     2     Dark current correction value
398     2     Calibration series number
400     2     Instrument number
402     16    Y-min/Y-max/X-min/X-max (4 x float32)
418     2     Instrument dynamic range (bits)
420     1     X mode
421     4     Status flag bytes (byte 0 carries saturation/TEC bits)
425     6     Dark/reference/sample scan counts (3 x uint16)
431     1     Instrument type code
432     4     Bulb identifier
436     8     SWIR1/SWIR2 gain and offset (4 x uint16)
444     8     Splice wavelengths (2 x float32)
452     27    Smart detector type (NUL-padded text, revision 7+)
479     5     Spare
*/

// InstrumentType identifies the spectroradiometer model that wrote the file.
type InstrumentType uint8

// Instrument type codes.
const (
	InstrumentUnknown InstrumentType = iota
	InstrumentPSII
	InstrumentLSVNIR
	InstrumentFSVNIR
	InstrumentFSFR
	InstrumentFSNIR
	InstrumentCHEM
	InstrumentFSFRUnattended
)

func (t InstrumentType) String() string {
	switch t {
	case InstrumentPSII:
		return "PS II"
	case InstrumentLSVNIR:
		return "LabSpec VNIR"
	case InstrumentFSVNIR:
		return "FieldSpec VNIR"
	case InstrumentFSFR:
		return "FieldSpec Full Range"
	case InstrumentFSNIR:
		return "FieldSpec NIR"
	case InstrumentCHEM:
		return "CHEM"
	case InstrumentFSFRUnattended:
		return "FieldSpec Full Range Unattended"
	default:
		return "unknown instrument"
	}
}

// DataType identifies the quantity the spectrum samples represent.
type DataType uint8

// Spectrum data type codes.
const (
	DataRaw DataType = iota
	DataReflectance
	DataRadiance
	DataNoUnits
	DataIrradiance
	DataQualityIndex
	DataTransmittance
	DataUnknown
	DataAbsolute
)

func (t DataType) String() string {
	switch t {
	case DataRaw:
		return "raw DN"
	case DataReflectance:
		return "reflectance"
	case DataRadiance:
		return "radiance"
	case DataNoUnits:
		return "no units"
	case DataIrradiance:
		return "irradiance"
	case DataQualityIndex:
		return "quality index"
	case DataTransmittance:
		return "transmittance"
	case DataAbsolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// DataFormat identifies the on-disk element type of the sample arrays.
type DataFormat uint8

// Spectrum data format codes.
const (
	FormatFloat32 DataFormat = iota
	FormatInt32
	FormatFloat64
)

// SaturationFlags is the first status flag byte of the header. Individual
// conditions are read through their documented masks; whole-byte comparison
// would misclassify flags whenever unrelated bits are set.
type SaturationFlags uint8

// Documented mask values for SaturationFlags.
const (
	MaskVNIRSaturation  uint8 = 0x01
	MaskSWIR1Saturation uint8 = 0x02
	MaskSWIR2Saturation uint8 = 0x04
	MaskTec1Alarm       uint8 = 0x08
	MaskTec2Alarm       uint8 = 0x10
)

// VNIRSaturated reports saturation of the VNIR detector.
func (f SaturationFlags) VNIRSaturated() bool {
	return binary.FlagSet(uint8(f), MaskVNIRSaturation)
}

// SWIR1Saturated reports saturation of the SWIR1 detector.
func (f SaturationFlags) SWIR1Saturated() bool {
	return binary.FlagSet(uint8(f), MaskSWIR1Saturation)
}

// SWIR2Saturated reports saturation of the SWIR2 detector.
func (f SaturationFlags) SWIR2Saturated() bool {
	return binary.FlagSet(uint8(f), MaskSWIR2Saturation)
}

// Tec1Alarm reports a thermal-electric-cooler alarm on the SWIR1 detector.
func (f SaturationFlags) Tec1Alarm() bool {
	return binary.FlagSet(uint8(f), MaskTec1Alarm)
}

// Tec2Alarm reports a thermal-electric-cooler alarm on the SWIR2 detector.
func (f SaturationFlags) Tec2Alarm() bool {
	return binary.FlagSet(uint8(f), MaskTec2Alarm)
}

// GPSData is the 56-byte GPS block embedded in the spectrum header.
type GPSData struct {
	TrueHeading  float64
	Speed        float64
	Latitude     float64
	Longitude    float64
	Altitude     float64
	Flags        [2]uint8
	HardwareMode uint8
	Seconds      uint8
	Minutes      uint8
	Hours        uint8
	Flags2       [2]uint8
	Satellites   [5]uint8
}

// SpectrumHeader is the decoded fixed header of an ASD file.
// It is immutable once parsed.
type SpectrumHeader struct {
	FileVersion     Version
	Comments        string
	SavedAt         time.Time
	ProgramVersion  string
	FormatVersion   string
	IntegrationIdx  uint8
	DarkCorrected   bool
	DarkTime        time.Time
	DataType        DataType
	ReferenceTime   time.Time
	WavelengthStart float64
	WavelengthStep  float64
	DataFormat      DataFormat
	Application     uint8
	Channels        uint16
	AppData         []byte
	GPS             GPSData
	IntegrationTime uint32
	ForeOptic       int16
	DarkCorrection  int16
	CalSeriesCount  uint16
	InstrumentNum   uint16
	YMin, YMax      float64
	XMin, XMax      float64
	DynamicRange    int16
	XMode           uint8
	Flags           SaturationFlags
	RawFlags        [4]uint8
	DarkCount       uint16
	RefCount        uint16
	SampleCount     uint16
	Instrument      InstrumentType
	BulbID          uint32
	SWIR1Gain       uint16
	SWIR2Gain       uint16
	SWIR1Offset     uint16
	SWIR2Offset     uint16
	Splice1         float64
	Splice2         float64
	SmartDetector   string
}

// ReadHeader decodes the fixed spectrum header from the start of the file.
// The reader must be positioned at offset 0; on success it is left at the
// start of the spectrum data.
func ReadHeader(r *binary.Reader, v Version) (*SpectrumHeader, error) {
	h := &SpectrumHeader{FileVersion: v}

	plan := Plan{Block: "header", Fields: []Field{
		{Name: "versionTag", IntroducedIn: V1, Width: 3},
		{Name: "comments", IntroducedIn: V1, Width: 157, Decode: func(r *binary.Reader) error {
			var err error
			h.Comments, err = r.ReadFixedString(157)
			return err
		}},
		{Name: "savedAt", IntroducedIn: V1, Width: 18, Decode: func(r *binary.Reader) error {
			var err error
			h.SavedAt, err = r.ReadPackedTime()
			return err
		}},
		{Name: "programVersion", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.ProgramVersion = nibbleVersion(b)
			return err
		}},
		{Name: "fileVersion", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.FormatVersion = nibbleVersion(b)
			return err
		}},
		{Name: "integrationIdx", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			var err error
			h.IntegrationIdx, err = r.ReadUint8()
			return err
		}},
		{Name: "darkCorrected", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.DarkCorrected = b != 0
			return err
		}},
		{Name: "darkTime", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			var err error
			h.DarkTime, err = r.ReadUnixTime32()
			return err
		}},
		{Name: "dataType", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.DataType = DataType(b)
			return err
		}},
		{Name: "referenceTime", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			var err error
			h.ReferenceTime, err = r.ReadUnixTime32()
			return err
		}},
		{Name: "wavelengthStart", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			f, err := r.ReadFloat32()
			h.WavelengthStart = float64(f)
			return err
		}},
		{Name: "wavelengthStep", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			f, err := r.ReadFloat32()
			h.WavelengthStep = float64(f)
			return err
		}},
		{Name: "dataFormat", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.DataFormat = DataFormat(b)
			return err
		}},
		{Name: "legacyCounts", IntroducedIn: V1, Width: 3},
		{Name: "application", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			var err error
			h.Application, err = r.ReadUint8()
			return err
		}},
		{Name: "channels", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.Channels, err = r.ReadUint16()
			return err
		}},
		{Name: "appData", IntroducedIn: V1, Width: 128, Decode: func(r *binary.Reader) error {
			b, err := r.ReadBytes(128)
			if err != nil {
				return err
			}
			h.AppData = append([]byte(nil), b...)
			return nil
		}},
		{Name: "gps", IntroducedIn: V1, Width: 56, Decode: func(r *binary.Reader) error {
			return readGPS(r, &h.GPS)
		}},
		{Name: "integrationTime", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			var err error
			h.IntegrationTime, err = r.ReadUint32()
			return err
		}},
		{Name: "foreOptic", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.ForeOptic, err = r.ReadInt16()
			return err
		}},
		{Name: "darkCorrection", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.DarkCorrection, err = r.ReadInt16()
			return err
		}},
		{Name: "calSeriesCount", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.CalSeriesCount, err = r.ReadUint16()
			return err
		}},
		{Name: "instrumentNum", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.InstrumentNum, err = r.ReadUint16()
			return err
		}},
		{Name: "axisBounds", IntroducedIn: V1, Width: 16, Decode: func(r *binary.Reader) error {
			for _, dst := range []*float64{&h.YMin, &h.YMax, &h.XMin, &h.XMax} {
				f, err := r.ReadFloat32()
				if err != nil {
					return err
				}
				*dst = float64(f)
			}
			return nil
		}},
		{Name: "dynamicRange", IntroducedIn: V1, Width: 2, Decode: func(r *binary.Reader) error {
			var err error
			h.DynamicRange, err = r.ReadInt16()
			return err
		}},
		{Name: "xMode", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			var err error
			h.XMode, err = r.ReadUint8()
			return err
		}},
		{Name: "flags", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			b, err := r.ReadBytes(4)
			if err != nil {
				return err
			}
			copy(h.RawFlags[:], b)
			h.Flags = SaturationFlags(b[0])
			return nil
		}},
		{Name: "scanCounts", IntroducedIn: V1, Width: 6, Decode: func(r *binary.Reader) error {
			for _, dst := range []*uint16{&h.DarkCount, &h.RefCount, &h.SampleCount} {
				v, err := r.ReadUint16()
				if err != nil {
					return err
				}
				*dst = v
			}
			return nil
		}},
		{Name: "instrument", IntroducedIn: V1, Width: 1, Decode: func(r *binary.Reader) error {
			b, err := r.ReadUint8()
			h.Instrument = InstrumentType(b)
			return err
		}},
		{Name: "bulbID", IntroducedIn: V1, Width: 4, Decode: func(r *binary.Reader) error {
			var err error
			h.BulbID, err = r.ReadUint32()
			return err
		}},
		{Name: "swirGains", IntroducedIn: V1, Width: 8, Decode: func(r *binary.Reader) error {
			for _, dst := range []*uint16{&h.SWIR1Gain, &h.SWIR2Gain, &h.SWIR1Offset, &h.SWIR2Offset} {
				v, err := r.ReadUint16()
				if err != nil {
					return err
				}
				*dst = v
			}
			return nil
		}},
		{Name: "spliceWavelengths", IntroducedIn: V1, Width: 8, Decode: func(r *binary.Reader) error {
			f1, err := r.ReadFloat32()
			if err != nil {
				return err
			}
			f2, err := r.ReadFloat32()
			if err != nil {
				return err
			}
			h.Splice1, h.Splice2 = float64(f1), float64(f2)
			return nil
		}},
		{Name: "smartDetector", IntroducedIn: V7, Width: 27, Decode: func(r *binary.Reader) error {
			var err error
			h.SmartDetector, err = r.ReadFixedString(27)
			return err
		}},
		{Name: "spare", IntroducedIn: V1, Width: 5},
	}}

	if err := plan.Run(r, v); err != nil {
		return nil, err
	}
	if h.Channels == 0 {
		return nil, fmt.Errorf("header: channel count is zero")
	}
	return h, nil
}

// readGPS decodes the 56-byte GPS block.
func readGPS(r *binary.Reader, g *GPSData) error {
	for _, dst := range []*float64{&g.TrueHeading, &g.Speed, &g.Latitude, &g.Longitude, &g.Altitude} {
		v, err := r.ReadFloat64()
		if err != nil {
			return err
		}
		*dst = v
	}
	b, err := r.ReadBytes(16)
	if err != nil {
		return err
	}
	copy(g.Flags[:], b[0:2])
	g.HardwareMode = b[2]
	g.Seconds, g.Minutes, g.Hours = b[3], b[4], b[5]
	copy(g.Flags2[:], b[6:8])
	copy(g.Satellites[:], b[8:13])
	// b[13:16] is filler
	return nil
}

// nibbleVersion renders a packed version byte (major in the high nibble,
// minor in the low) as "major.minor".
func nibbleVersion(b uint8) string {
	return fmt.Sprintf("%d.%d", binary.Flag(b, 0xF0, 4), binary.Flag(b, 0x0F, 0))
}

package asd

import "github.com/robert-malhotra/go-asd/internal/block"

// Decoded block model. Parsing populates these once; they are never mutated
// afterwards.
type (
	// Version identifies an ASD file format revision (1..8).
	Version = block.Version

	// SpectrumHeader is the fixed file header: acquisition metadata,
	// wavelength grid, capability flags, GPS fix.
	SpectrumHeader = block.SpectrumHeader

	// GPSData is the GPS block embedded in the spectrum header.
	GPSData = block.GPSData

	// SaturationFlags carries the detector saturation and TEC alarm bits.
	SaturationFlags = block.SaturationFlags

	// InstrumentType identifies the instrument model that wrote the file.
	InstrumentType = block.InstrumentType

	// DataType identifies the quantity the spectrum samples represent.
	DataType = block.DataType

	// DataFormat identifies the on-disk element type of the sample arrays.
	DataFormat = block.DataFormat

	// ReferenceHeader is the white-reference scan metadata (revision 2+).
	ReferenceHeader = block.ReferenceHeader

	// ClassifierData is the optional spectral-classification metadata
	// (revision 6+).
	ClassifierData = block.ClassifierData

	// Constituent is one chemometric model result in the classifier block.
	Constituent = block.Constituent

	// DependentVariables holds auxiliary labelled scalars (revision 6+).
	DependentVariables = block.DependentVariables

	// CalibrationHeader lists the embedded calibration series (revision 7+).
	CalibrationHeader = block.CalibrationHeader

	// CalibrationBuffer describes one embedded calibration series.
	CalibrationBuffer = block.CalibrationBuffer

	// CalibrationType identifies a calibration series (ABS/BSE/LMP/FO).
	CalibrationType = block.CalibrationType

	// AuditLog is the ordered operator-action record (revision 8+).
	AuditLog = block.AuditLog

	// Signature is the optional digital-signature block (revision 8+).
	Signature = block.Signature
)

// Calibration series type codes.
const (
	CalibrationAbsolute   = block.CalibrationAbsolute
	CalibrationBase       = block.CalibrationBase
	CalibrationLamp       = block.CalibrationLamp
	CalibrationFiberOptic = block.CalibrationFiberOptic
)

// Documented masks for the header's first status flag byte.
const (
	MaskVNIRSaturation  = block.MaskVNIRSaturation
	MaskSWIR1Saturation = block.MaskSWIR1Saturation
	MaskSWIR2Saturation = block.MaskSWIR2Saturation
	MaskTec1Alarm       = block.MaskTec1Alarm
	MaskTec2Alarm       = block.MaskTec2Alarm
)

package asd

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robert-malhotra/go-asd/internal/binary"
	"github.com/robert-malhotra/go-asd/internal/block"
)

// eofMarker is the 3-byte trailer revision 8 instruments append to the file.
var eofMarker = []byte{0xFF, 0xFE, 0xFD}

// ASDFile is the decoded model of one spectral file. All blocks are parsed
// in a single pass over the raw buffer and never mutated afterwards;
// version-gated blocks are exposed through (value, ok) accessors. Derived
// quantities are computed on demand and memoized, so repeated access returns
// bit-identical results without re-parsing.
//
// An ASDFile and its derived cache are independent of every other ASDFile;
// parsing many files concurrently needs no coordination.
type ASDFile struct {
	path string
	size int64

	md5Sum    string
	sha256Sum string

	version    block.Version
	header     *block.SpectrumHeader
	spectrum   []float64
	refHeader  *block.ReferenceHeader
	reference  []float64
	classifier *block.ClassifierData
	dependents *block.DependentVariables
	calHeader  *block.CalibrationHeader
	calSeries  map[block.CalibrationType][]float64
	audit      *block.AuditLog
	signature  *block.Signature

	hasEOFMarker bool
	violations   []string

	derived *derivedCache
}

// Open reads and parses the file at path in one call.
//
// A *ValidationError still returns a populated *ASDFile: the parse itself
// succeeded and every decoded block is accessible, the caller just gets told
// which cross-block invariants do not hold. Every other error returns a nil
// file.
func Open(path string) (*ASDFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	f, err := Parse(buf)
	if f == nil {
		return nil, err
	}
	f.path = path
	f.size = int64(len(buf))
	return f, err
}

// Parse decodes an ASD file from an in-memory buffer. The buffer is not
// retained: once Parse returns, the caller may release it. The partial-result
// contract of Open applies here too.
func Parse(buf []byte) (*ASDFile, error) {
	version, err := block.DetectVersion(buf)
	if err != nil {
		return nil, err
	}

	md5Sum := md5.Sum(buf)
	shaSum := sha256.Sum256(buf)
	f := &ASDFile{
		version:   version,
		md5Sum:    hex.EncodeToString(md5Sum[:]),
		sha256Sum: hex.EncodeToString(shaSum[:]),
		derived:   newDerivedCache(),
	}

	r := binary.NewReader(buf)

	if f.header, err = block.ReadHeader(r, version); err != nil {
		return nil, err
	}
	channels := int(f.header.Channels)

	if f.spectrum, err = block.ReadSamples(r, f.header.DataFormat, channels); err != nil {
		return nil, err
	}

	if version >= block.V2 {
		if f.refHeader, err = block.ReadReferenceHeader(r, version); err != nil {
			return nil, err
		}
		if f.reference, err = block.ReadFloat64Series(r, channels); err != nil {
			return nil, err
		}
	}

	if version >= block.V6 {
		if f.classifier, err = block.ReadClassifier(r, version); err != nil {
			return nil, err
		}
		if f.dependents, err = block.ReadDependentVariables(r, version); err != nil {
			return nil, err
		}
	}

	if version >= block.V7 {
		if f.calHeader, err = block.ReadCalibrationHeader(r, version); err != nil {
			return nil, err
		}
		f.calSeries = make(map[block.CalibrationType][]float64, len(f.calHeader.Buffers))
		for _, b := range f.calHeader.Buffers {
			series, err := block.ReadFloat64Series(r, channels)
			if err != nil {
				return nil, fmt.Errorf("%s series: %w", b.Type, err)
			}
			f.calSeries[b.Type] = series
		}
	}

	if version >= block.V8 {
		if f.audit, err = block.ReadAuditLog(r, version); err != nil {
			return nil, err
		}
		if f.signature, err = block.ReadSignature(r, version); err != nil {
			return nil, err
		}
	}

	if n := len(buf); n >= len(eofMarker) {
		tail := buf[n-len(eofMarker):]
		f.hasEOFMarker = tail[0] == eofMarker[0] && tail[1] == eofMarker[1] && tail[2] == eofMarker[2]
	}

	if f.violations = f.validate(); len(f.violations) > 0 {
		return f, &ValidationError{Violations: f.violations}
	}
	return f, nil
}

// Read parses the file at path into f, replacing any previously loaded
// content. It reports false on any failure (missing file, unrecognized
// format, truncated data) and never panics, so batch callers can skip bad
// files without aborting a run. A file that parses with invariant violations
// still loads; the violations are reported through Violations.
func (f *ASDFile) Read(path string) bool {
	loaded, _ := Open(path)
	if loaded == nil {
		return false
	}
	*f = *loaded
	return true
}

// Version returns the file format revision (1..8).
func (f *ASDFile) Version() Version {
	return f.version
}

// Header returns the fixed spectrum header.
func (f *ASDFile) Header() *SpectrumHeader {
	return f.header
}

// Spectrum returns the raw per-channel digital-number samples.
func (f *ASDFile) Spectrum() []float64 {
	return f.spectrum
}

// Reference returns the white-reference block (revision 2+).
func (f *ASDFile) Reference() (*ReferenceHeader, []float64, bool) {
	if f.refHeader == nil {
		return nil, nil, false
	}
	return f.refHeader, f.reference, true
}

// Classifier returns the classifier block (revision 6+).
func (f *ASDFile) Classifier() (*ClassifierData, bool) {
	return f.classifier, f.classifier != nil
}

// Dependents returns the dependent-variables block (revision 6+).
func (f *ASDFile) Dependents() (*DependentVariables, bool) {
	return f.dependents, f.dependents != nil
}

// Calibration returns the calibration header (revision 7+).
func (f *ASDFile) Calibration() (*CalibrationHeader, bool) {
	return f.calHeader, f.calHeader != nil
}

// CalibrationSeries returns the coefficient array of one calibration type.
func (f *ASDFile) CalibrationSeries(t CalibrationType) ([]float64, bool) {
	s, ok := f.calSeries[t]
	return s, ok
}

// Audit returns the audit log (revision 8+).
func (f *ASDFile) Audit() (*AuditLog, bool) {
	return f.audit, f.audit != nil
}

// Signature returns the digital-signature block (revision 8+).
func (f *ASDFile) Signature() (*Signature, bool) {
	return f.signature, f.signature != nil
}

// HasEOFMarker reports whether the file ends with the revision 8 trailer
// bytes FF FE FD. The trailer is recorded, never required.
func (f *ASDFile) HasEOFMarker() bool {
	return f.hasEOFMarker
}

// Violations lists the cross-block invariants the file violates, if any.
func (f *ASDFile) Violations() []string {
	return f.violations
}

// Path returns the file path, when the file was loaded from disk.
func (f *ASDFile) Path() string {
	return f.path
}

// Filename returns the base name of the loaded file.
func (f *ASDFile) Filename() string {
	return filepath.Base(f.path)
}

// Size returns the file size in bytes, when loaded from disk.
func (f *ASDFile) Size() int64 {
	return f.size
}

// MD5 returns the hex MD5 digest of the raw file bytes.
func (f *ASDFile) MD5() string {
	return f.md5Sum
}

// SHA256 returns the hex SHA-256 digest of the raw file bytes.
func (f *ASDFile) SHA256() string {
	return f.sha256Sum
}

// Wavelengths returns the wavelength of each channel, computed from the
// header's start wavelength and step.
func (f *ASDFile) Wavelengths() []float64 {
	out := make([]float64, len(f.spectrum))
	for i := range out {
		out[i] = f.header.WavelengthStart + float64(i)*f.header.WavelengthStep
	}
	return out
}

// validate checks the cross-block invariants: every per-channel array must
// match the header's channel count.
func (f *ASDFile) validate() []string {
	var violations []string
	channels := int(f.header.Channels)

	if len(f.spectrum) != channels {
		violations = append(violations,
			fmt.Sprintf("spectrum has %d samples, header declares %d channels", len(f.spectrum), channels))
	}
	if f.refHeader != nil && len(f.reference) != channels {
		violations = append(violations,
			fmt.Sprintf("reference has %d samples, header declares %d channels", len(f.reference), channels))
	}
	if f.calHeader != nil {
		for _, b := range f.calHeader.Buffers {
			if s, ok := f.calSeries[b.Type]; ok && len(s) != channels {
				violations = append(violations,
					fmt.Sprintf("%s calibration series has %d samples, header declares %d channels", b.Type, len(s), channels))
			}
		}
	}
	if f.calHeader != nil && int(f.header.CalSeriesCount) != len(f.calHeader.Buffers) {
		violations = append(violations,
			fmt.Sprintf("header declares %d calibration series, file carries %d", f.header.CalSeriesCount, len(f.calHeader.Buffers)))
	}
	if f.header.WavelengthStep <= 0 {
		violations = append(violations,
			fmt.Sprintf("wavelength step %g is not positive", f.header.WavelengthStep))
	}
	return violations
}

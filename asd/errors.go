// Package asd reads the proprietary binary spectral-data files (format
// revisions 1-8) written by ASD field spectroradiometers, and derives
// standard spectral quantities (reflectance, absolute reflectance, log(1/R)
// and their derivatives) from the decoded model.
package asd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-asd/internal/binary"
	"github.com/robert-malhotra/go-asd/internal/block"
	"github.com/robert-malhotra/go-asd/internal/spectral"
)

// Error taxonomy. FormatError and DecodeError terminate a file's parse;
// ValidationError accompanies a best-effort populated ASDFile; DomainError
// marks individual channels of a derived series and never fails a parse.
type (
	// FormatError reports an unrecognized version tag or a buffer too short
	// to be an ASD file.
	FormatError = block.FormatError

	// DecodeError reports a short read or out-of-bounds access during
	// primitive decoding.
	DecodeError = binary.DecodeError

	// DomainError marks one channel where a derived quantity is undefined.
	DomainError = spectral.DomainError
)

// ValidationError reports violated cross-block invariants. The parse result
// remains accessible; callers decide whether partial data is usable.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invariant violations: %s", strings.Join(e.Violations, "; "))
}

// Errors returned by derived-value accessors when the file lacks the inputs
// a quantity needs.
var (
	ErrNoReference   = errors.New("file carries no white reference data")
	ErrNoCalibration = errors.New("file carries no absolute calibration series")
	ErrNoWavelength  = errors.New("header carries no usable wavelength step")
)

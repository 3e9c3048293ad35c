// Package spectral computes derived spectral quantities from decoded
// per-channel sample arrays.
//
// Every function here is a pure function of its inputs. A channel where a
// quantity is mathematically undefined (division by a zero reference sample,
// log of a non-positive ratio) is marked NaN in the output and recorded as a
// DomainError; it never aborts computation for the other channels.
package spectral

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Errors for structurally unusable inputs. Per-channel faults are reported
// through Series.Faults instead.
var (
	ErrLengthMismatch = errors.New("spectral: input arrays differ in length")
	ErrTooFewChannels = errors.New("spectral: need at least two channels")
	ErrBadStep        = errors.New("spectral: wavelength step must be positive")
)

// DomainError marks one channel where a derived quantity is undefined.
type DomainError struct {
	Channel int
	Op      string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined at channel %d", e.Op, e.Channel)
}

// Series is one derived per-channel quantity. Channels listed in Faults hold
// NaN in Values; all other channels are valid.
type Series struct {
	Values []float64
	Faults []*DomainError
}

// Valid reports whether channel i holds a defined value.
func (s Series) Valid(i int) bool {
	return !math.IsNaN(s.Values[i])
}

// Reflectance computes dn[i] / reference[i] per channel. A zero reference
// sample faults that channel only.
func Reflectance(dn, reference []float64) (Series, error) {
	if len(dn) != len(reference) {
		return Series{}, ErrLengthMismatch
	}
	s := Series{Values: make([]float64, len(dn))}
	for i := range dn {
		if reference[i] == 0 {
			s.Values[i] = math.NaN()
			s.Faults = append(s.Faults, &DomainError{Channel: i, Op: "reflectance"})
			continue
		}
		s.Values[i] = dn[i] / reference[i]
	}
	return s, nil
}

// Absolute scales reflectance by the per-channel absolute calibration
// coefficients. Faulted reflectance channels stay faulted (NaN propagates
// through the product).
func Absolute(reflectance Series, coefficients []float64) (Series, error) {
	if len(reflectance.Values) != len(coefficients) {
		return Series{}, ErrLengthMismatch
	}
	s := Series{Values: make([]float64, len(coefficients))}
	vecmath.MulBlock(s.Values, reflectance.Values, coefficients)
	s.Faults = refault(s.Values, "absolute reflectance")
	return s, nil
}

// Log1R computes -log10(R) per channel. Non-positive ratios fault their
// channel.
func Log1R(reflectance Series) Series {
	s := Series{Values: make([]float64, len(reflectance.Values))}
	for i, r := range reflectance.Values {
		if math.IsNaN(r) || r <= 0 {
			s.Values[i] = math.NaN()
			s.Faults = append(s.Faults, &DomainError{Channel: i, Op: "log(1/R)"})
			continue
		}
		s.Values[i] = -math.Log10(r)
	}
	return s
}

// Derivative computes the order-th spectral derivative (order 1..3) of s on
// a uniform wavelength grid with step h. Interior channels use the centered
// difference (f[i+1]-f[i-1])/(2h); boundary channels fall back to one-sided
// differences. Higher orders iterate the first-order operator. A channel is
// faulted in the output when its stencil reads a faulted input channel, and
// when the channel itself was faulted on input: the derivative of an
// undefined quantity is undefined even though the centered stencil skips
// index i.
func Derivative(s Series, h float64, order int) (Series, error) {
	if order < 1 || order > 3 {
		return Series{}, fmt.Errorf("spectral: unsupported derivative order %d", order)
	}
	if h <= 0 {
		return Series{}, ErrBadStep
	}
	if len(s.Values) < 2 {
		return Series{}, ErrTooFewChannels
	}

	values := s.Values
	for o := 0; o < order; o++ {
		values = diff(values, h)
	}
	for i := range values {
		if !s.Valid(i) {
			values[i] = math.NaN()
		}
	}
	out := Series{Values: values}
	out.Faults = refault(values, "derivative")
	return out, nil
}

// diff applies the first-order finite-difference stencil once.
func diff(v []float64, h float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	out[0] = (v[1] - v[0]) / h
	out[n-1] = (v[n-1] - v[n-2]) / h
	for i := 1; i < n-1; i++ {
		out[i] = (v[i+1] - v[i-1]) / (2 * h)
	}
	return out
}

// refault scans a computed array and records a DomainError for every NaN
// channel.
func refault(v []float64, op string) []*DomainError {
	var faults []*DomainError
	for i, x := range v {
		if math.IsNaN(x) {
			faults = append(faults, &DomainError{Channel: i, Op: op})
		}
	}
	return faults
}

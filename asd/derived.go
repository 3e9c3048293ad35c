package asd

import (
	"fmt"
	"sync"

	"github.com/robert-malhotra/go-asd/internal/block"
	"github.com/robert-malhotra/go-asd/internal/spectral"
)

// Derived is one computed per-channel quantity. Channels where the quantity
// is undefined hold NaN and are listed in Faults as DomainErrors; a fault on
// one channel never aborts the others.
type Derived = spectral.Series

// derivedCache memoizes computed quantities so repeated accessor calls
// return bit-identical results without recomputation. Held behind a pointer
// so an ASDFile value can be reassigned wholesale by Read.
type derivedCache struct {
	mu sync.Mutex
	m  map[string]Derived
}

func newDerivedCache() *derivedCache {
	return &derivedCache{m: make(map[string]Derived)}
}

// get computes outside the lock: quantities depend on each other (absolute
// reflectance and log(1/R) both start from reflectance), so compute may
// re-enter get for a dependency. The first stored result wins, keeping
// repeated access bit-identical.
func (c *derivedCache) get(key string, compute func() (Derived, error)) (Derived, error) {
	c.mu.Lock()
	if d, ok := c.m[key]; ok {
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	d, err := compute()
	if err != nil {
		return Derived{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.m[key]; ok {
		return existing, nil
	}
	c.m[key] = d
	return d, nil
}

// Reflectance returns sample DN / reference DN per channel. It requires the
// white-reference block (revision 2+); a zero reference sample faults only
// its own channel.
func (f *ASDFile) Reflectance() (Derived, error) {
	return f.derived.get("reflectance", func() (Derived, error) {
		if f.refHeader == nil {
			return Derived{}, ErrNoReference
		}
		return spectral.Reflectance(f.spectrum, f.reference)
	})
}

// AbsoluteReflectance returns reflectance scaled by the per-channel absolute
// (ABS) calibration coefficients (revision 7+ files).
func (f *ASDFile) AbsoluteReflectance() (Derived, error) {
	return f.derived.get("absolute", func() (Derived, error) {
		coeffs, ok := f.calSeries[block.CalibrationAbsolute]
		if !ok {
			return Derived{}, ErrNoCalibration
		}
		refl, err := f.Reflectance()
		if err != nil {
			return Derived{}, err
		}
		return spectral.Absolute(refl, coeffs)
	})
}

// Log1R returns -log10(reflectance) per channel. Channels whose reflectance
// is non-positive or already faulted are faulted.
func (f *ASDFile) Log1R() (Derived, error) {
	return f.derived.get("log1R", func() (Derived, error) {
		refl, err := f.Reflectance()
		if err != nil {
			return Derived{}, err
		}
		return spectral.Log1R(refl), nil
	})
}

// ReflectanceDerivative returns the order-th (1..3) spectral derivative of
// reflectance over the header's wavelength grid.
func (f *ASDFile) ReflectanceDerivative(order int) (Derived, error) {
	return f.derivative("reflectance", order, f.Reflectance)
}

// Log1RDerivative returns the order-th (1..3) spectral derivative of
// log(1/R) over the header's wavelength grid.
func (f *ASDFile) Log1RDerivative(order int) (Derived, error) {
	return f.derivative("log1R", order, f.Log1R)
}

func (f *ASDFile) derivative(base string, order int, source func() (Derived, error)) (Derived, error) {
	key := fmt.Sprintf("%sDeriv%d", base, order)
	return f.derived.get(key, func() (Derived, error) {
		if f.header.WavelengthStep <= 0 {
			return Derived{}, ErrNoWavelength
		}
		s, err := source()
		if err != nil {
			return Derived{}, err
		}
		return spectral.Derivative(s, f.header.WavelengthStep, order)
	})
}

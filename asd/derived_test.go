package asd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectance(t *testing.T) {
	f, err := Parse(defaultFixture(8).build())
	require.NoError(t, err)

	refl, err := f.Reflectance()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, refl.Values)
	assert.Empty(t, refl.Faults)
}

func TestReflectanceZeroReferenceChannel(t *testing.T) {
	fx := defaultFixture(8)
	fx.reference = []float64{100, 0, 100}

	f, err := Parse(fx.build())
	require.NoError(t, err)

	refl, err := f.Reflectance()
	require.NoError(t, err)

	assert.Equal(t, 1.0, refl.Values[0])
	assert.True(t, math.IsNaN(refl.Values[1]))
	assert.Equal(t, 3.0, refl.Values[2])

	require.Len(t, refl.Faults, 1)
	assert.Equal(t, 1, refl.Faults[0].Channel)
	assert.False(t, refl.Valid(1))
	assert.True(t, refl.Valid(0))
}

func TestReflectanceRequiresReference(t *testing.T) {
	f, err := Parse(defaultFixture(1).build())
	require.NoError(t, err)

	_, err = f.Reflectance()
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestAbsoluteReflectance(t *testing.T) {
	f, err := Parse(defaultFixture(8).build())
	require.NoError(t, err)

	abs, err := f.AbsoluteReflectance()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.0, 1.5}, abs.Values)
}

func TestAbsoluteReflectanceRequiresCalibration(t *testing.T) {
	f, err := Parse(defaultFixture(6).build())
	require.NoError(t, err)

	_, err = f.AbsoluteReflectance()
	assert.ErrorIs(t, err, ErrNoCalibration)
}

func TestLog1R(t *testing.T) {
	fx := defaultFixture(8)
	fx.dn = []float64{100, 10, 1}
	fx.reference = []float64{100, 100, 100}
	fx.calibrations = []calFixture{{ctype: 0, coeffs: []float64{1, 1, 1}}}

	f, err := Parse(fx.build())
	require.NoError(t, err)

	l, err := f.Log1R()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, l.Values[0], 1e-12)
	assert.InDelta(t, 1.0, l.Values[1], 1e-12)
	assert.InDelta(t, 2.0, l.Values[2], 1e-12)
}

func TestDerivatives(t *testing.T) {
	fx := defaultFixture(8)
	// Reflectance 1,2,3 on a unit wavelength grid: slope 1 everywhere.
	f, err := Parse(fx.build())
	require.NoError(t, err)

	for order := 1; order <= 3; order++ {
		d, err := f.ReflectanceDerivative(order)
		require.NoError(t, err, "order %d", order)
		assert.Len(t, d.Values, 3)
		if order == 1 {
			for i, v := range d.Values {
				assert.InDelta(t, 1.0, v, 1e-12, "channel %d", i)
			}
		}
	}

	for order := 1; order <= 3; order++ {
		_, err := f.Log1RDerivative(order)
		require.NoError(t, err, "order %d", order)
	}

	_, err = f.ReflectanceDerivative(4)
	assert.Error(t, err)
}

func TestDerivedIdempotence(t *testing.T) {
	f, err := Parse(defaultFixture(8).build())
	require.NoError(t, err)

	a, err := f.Reflectance()
	require.NoError(t, err)
	b, err := f.Reflectance()
	require.NoError(t, err)

	// Memoized: both calls see the same backing array, bit-identical.
	assert.Equal(t, a.Values, b.Values)
	assert.Same(t, &a.Values[0], &b.Values[0])

	d1, err := f.Log1RDerivative(2)
	require.NoError(t, err)
	d2, err := f.Log1RDerivative(2)
	require.NoError(t, err)
	for i := range d1.Values {
		assert.Equal(t, math.Float64bits(d1.Values[i]), math.Float64bits(d2.Values[i]), "channel %d", i)
	}
}

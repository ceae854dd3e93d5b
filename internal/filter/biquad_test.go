package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiquad_FirstUpdateAfterReset(t *testing.T) {
	// GIVEN
	f := NewBiquad(ApuCoefficients)
	f.Update(90000)
	f.Update(91000)

	// WHEN
	f.Reset()
	result := f.Update(60000)

	// THEN
	// only b0 contributes with an empty history
	assert.Equal(t, 34*60000/DefaultScale, result)
	assert.Equal(t, 124, result)
}

func TestBiquad_ResetIsReproducible(t *testing.T) {
	// GIVEN
	a := NewBiquad(GpuCoefficients)
	b := NewBiquad(GpuCoefficients)
	for i := 0; i < 50; i++ {
		a.Update(40000 + i*100)
	}

	// WHEN
	a.Reset()
	b.Reset()

	// THEN
	for _, sample := range []int{55000, 56000, 57000, 58000} {
		assert.Equal(t, b.Update(sample), a.Update(sample))
	}
}

func TestBiquad_SecondUpdate(t *testing.T) {
	// GIVEN
	f := NewBiquad(ApuCoefficients)
	y0 := f.Update(60000)

	// WHEN
	y1 := f.Update(60000)

	// THEN
	expected := (34*60000 + 68*60000 + 30587*int64(y0)) / DefaultScale
	assert.Equal(t, int(expected), y1)
}

func TestBiquad_GetIsIdempotent(t *testing.T) {
	// GIVEN
	f := NewBiquad(ApuCoefficients)
	last := 0
	for i := 0; i < 10; i++ {
		last = f.Update(70000)
	}

	// WHEN
	first := f.Get()
	second := f.Get()

	// THEN
	assert.Equal(t, last, first)
	assert.Equal(t, first, second)
}

func TestBiquad_GetAfterReset(t *testing.T) {
	// GIVEN
	f := NewBiquad(ApuCoefficients)
	f.Update(70000)

	// WHEN
	f.Reset()

	// THEN
	assert.Equal(t, 0, f.Get())
}

func TestBiquad_ConvergesToStep(t *testing.T) {
	// GIVEN
	f := NewBiquad(ApuCoefficients)
	step := 60000

	// WHEN
	result := 0
	for i := 0; i < 500; i++ {
		result = f.Update(step)
	}

	// THEN
	// dc gain of the quantized coefficients is 136/137
	assert.InDelta(t, step*136/137, result, 200)
}

func TestBiquad_NoOverflowAtDomainEdges(t *testing.T) {
	for _, coeff := range []Coefficients{ApuCoefficients, GpuCoefficients} {
		// GIVEN
		f := NewBiquad(coeff)

		// WHEN
		high := 0
		for i := 0; i < 1000; i++ {
			high = f.Update(150000)
		}
		low := 0
		for i := 0; i < 1000; i++ {
			low = f.Update(-40000)
		}

		// THEN
		assert.InDelta(t, 150000, high, 2000)
		assert.InDelta(t, -40000, low, 1000)
	}
}

func TestNewBiquad_DefaultScale(t *testing.T) {
	// GIVEN
	coeff := Coefficients{B0: 1, B1: 2, B2: 1}

	// WHEN
	f := NewBiquad(coeff)

	// THEN
	assert.EqualValues(t, DefaultScale, f.Coefficients().Scale)
}

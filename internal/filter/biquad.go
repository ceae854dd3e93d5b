package filter

// Coefficients of a second order IIR section in fixed point.
// a0 is normalized to Scale and therefore not stored.
type Coefficients struct {
	B0    int32 `json:"b0"`
	B1    int32 `json:"b1"`
	B2    int32 `json:"b2"`
	A1    int32 `json:"a1"`
	A2    int32 `json:"a2"`
	Scale int32 `json:"scale"`
}

const DefaultScale = 16384

var (
	// ApuCoefficients is the low-pass used for the APU die temperature
	ApuCoefficients = Coefficients{B0: 34, B1: 68, B2: 34, A1: -30587, A2: 14340, Scale: DefaultScale}
	// GpuCoefficients is the low-pass used for the GPU die temperature
	GpuCoefficients = Coefficients{B0: 59, B1: 119, B2: 59, A1: -29863, A2: 13716, Scale: DefaultScale}
)

// Biquad is a fixed-coefficient low-pass filter with persistent history.
// Samples are expected in milli-degree Celsius, the int64 accumulator
// leaves plenty of headroom for -40°C..150°C.
type Biquad struct {
	coeff Coefficients

	x1, x2 int64
	y1, y2 int64
}

func NewBiquad(coeff Coefficients) *Biquad {
	if coeff.Scale <= 0 {
		coeff.Scale = DefaultScale
	}
	return &Biquad{coeff: coeff}
}

func (f *Biquad) Coefficients() Coefficients {
	return f.coeff
}

// Reset clears the filter history
func (f *Biquad) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// Update feeds a new sample into the filter and returns the smoothed value
func (f *Biquad) Update(sample int) int {
	c := f.coeff
	x := int64(sample)

	acc := int64(c.B0)*x +
		int64(c.B1)*f.x1 +
		int64(c.B2)*f.x2 -
		int64(c.A1)*f.y1 -
		int64(c.A2)*f.y2
	y := acc / int64(c.Scale)

	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y

	return int(y)
}

// Get returns the last computed output
func (f *Biquad) Get() int {
	return int(f.y1)
}

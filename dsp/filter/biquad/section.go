package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Row returns the section as the conventional 6-tuple
// (b0, b1, b2, a0, a1, a2) with a0 = 1.
func (c Coefficients) Row() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, 1, c.A1, c.A2}
}

// FromRow builds Coefficients from a (b0, b1, b2, a0, a1, a2) row,
// dividing through by a0. It reports false if a0 is zero.
func FromRow(row [6]float64) (Coefficients, bool) {
	a0 := row[3]
	if a0 == 0 {
		return Coefficients{}, false
	}

	return Coefficients{
		B0: row[0] / a0,
		B1: row[1] / a0,
		B2: row[2] / a0,
		A1: row[4] / a0,
		A2: row[5] / a0,
	}, true
}

// Rows converts a cascade to its 6-tuple rows.
func Rows(coeffs []Coefficients) [][6]float64 {
	rows := make([][6]float64, len(coeffs))
	for i, c := range coeffs {
		rows[i] = c.Row()
	}

	return rows
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

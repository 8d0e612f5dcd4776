package biquad

// Chain runs second-order sections in series, each with its own delay
// line. Overall gain lives in the section coefficients.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with zero initial state.
func NewChain(sos []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(sos))}
	for i, s := range sos {
		c.sections[i].Coefficients = s
	}
	return c
}

// ProcessSample passes x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place, section by section.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Filter resets the cascade and returns the filtered copy of src: causal,
// single pass, zero initial state, the state carried from one section to
// the next.
func (c *Chain) Filter(src []float64) []float64 {
	c.Reset()

	out := append([]float64(nil), src...)
	c.ProcessBlock(out)
	return out
}

// Reset zeroes every delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the cascade length.
func (c *Chain) NumSections() int { return len(c.sections) }

// Coefficients returns a copy of the sections in cascade order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}
	return out
}

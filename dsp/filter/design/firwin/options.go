package firwin

import "github.com/cwbudde/algo-filterdesign/dsp/window"

// Option configures a design call.
type Option func(*config)

type config struct {
	window     window.Type
	passZero   bool
	width      float64
	noScale    bool
	gridPoints int
}

func defaultConfig() config {
	return config{
		window:   window.TypeHamming,
		passZero: true,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return cfg
}

// WithWindow selects the taper window. Default is Hamming.
func WithWindow(t window.Type) Option {
	return func(c *config) { c.window = t }
}

// WithPassZero selects whether the first band (starting at DC) passes.
// Default is true (lowpass/bandstop shapes).
func WithPassZero(pass bool) Option {
	return func(c *config) { c.passZero = pass }
}

// WithTransitionWidth replaces the window with a Kaiser window sized for
// the given transition width in Hz.
func WithTransitionWidth(hz float64) Option {
	return func(c *config) { c.width = hz }
}

// WithoutScaling disables normalizing the passband gain to exactly 1.
func WithoutScaling() Option {
	return func(c *config) { c.noScale = true }
}

// WithGridPoints sets the number of interpolation points used by
// FrequencySampling. It is rounded up to one more than a power of two.
func WithGridPoints(n int) Option {
	return func(c *config) { c.gridPoints = n }
}

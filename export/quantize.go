package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultFractionalBits matches a 32-bit signed fixed-point engine.
const DefaultFractionalBits = 31

const maxFractionalBits = 62

// Quantizer turns one coefficient into a C expression.
type Quantizer func(v float64) string

// Literal formats v as a C double literal, always with a decimal point or
// an exponent.
func Literal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

// Cast emits (filter_coeff_t)(v).
func Cast(v float64) string {
	return "(filter_coeff_t)(" + Literal(v) + ")"
}

// Macro wraps each value in an engine macro, e.g. TO_FIXED_POINT(v).
func Macro(name string) Quantizer {
	return func(v float64) string {
		return name + "(" + Literal(v) + ")"
	}
}

// FixedPoint scales by 2^fracBits, rounds, and emits an integer literal.
// fracBits is clamped to [0, 62].
func FixedPoint(fracBits int) Quantizer {
	fracBits = max(0, min(fracBits, maxFractionalBits))
	scale := math.Ldexp(1, fracBits)

	return func(v float64) string {
		return fmt.Sprintf("(filter_coeff_t)(%dLL)", saturate(math.Round(v*scale)))
	}
}

func saturate(q float64) int64 {
	switch {
	case q >= 0x1p63:
		return math.MaxInt64
	case q <= -0x1p63:
		return math.MinInt64
	default:
		return int64(q)
	}
}

// Quantizer names accepted by ParseQuantizer.
const (
	QuantizeCast  = "cast"
	QuantizeFixed = "fixed"
	QuantizeMacro = "macro"
)

// DefaultMacro is the engine's float-to-fixed conversion macro.
const DefaultMacro = "TO_FIXED_POINT"

// ParseQuantizer resolves a policy name. fracBits only applies to "fixed".
func ParseQuantizer(name string, fracBits int) (Quantizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", QuantizeCast:
		return Cast, nil
	case QuantizeFixed:
		if fracBits < 0 || fracBits > maxFractionalBits {
			return nil, fmt.Errorf("export: fractional bits must be in [0, %d]: %d", maxFractionalBits, fracBits)
		}
		return FixedPoint(fracBits), nil
	case QuantizeMacro:
		return Macro(DefaultMacro), nil
	default:
		return nil, fmt.Errorf("export: unknown quantizer %q", name)
	}
}

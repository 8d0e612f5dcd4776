package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_KnownValues(t *testing.T) {
	tests := []struct {
		typ  Type
		want []float64
	}{
		{TypeRectangular, []float64{1, 1, 1, 1, 1}},
		{TypeHann, []float64{0, 0.5, 1, 0.5, 0}},
		{TypeHamming, []float64{0.08, 0.54, 1, 0.54, 0.08}},
		{TypeBlackman, []float64{0, 0.34, 1, 0.34, 0}},
		{TypeBartlett, []float64{0, 0.5, 1, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := Generate(tt.typ, 5)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestGenerate_Symmetric(t *testing.T) {
	for typ := range typeNames {
		w, err := Generate(typ, 33, WithBeta(6))
		require.NoError(t, err)
		for i := range w {
			assert.InDelta(t, w[i], w[len(w)-1-i], 1e-12, "%s index %d", typ, i)
		}
	}
}

func TestGenerate_Periodic(t *testing.T) {
	w, err := Generate(TypeHann, 4, WithPeriodic())
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5}, w, 1e-12)
}

func TestGenerate_SingleSample(t *testing.T) {
	for typ := range typeNames {
		w, err := Generate(typ, 1, WithBeta(4))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, w[0], 1e-12, typ.String())
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(TypeHann, 0)
	require.Error(t, err)

	_, err = Generate(Type(99), 8)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestParse(t *testing.T) {
	for typ, name := range typeNames {
		got, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := Parse(" Rectangular ")
	require.NoError(t, err)
	assert.Equal(t, TypeRectangular, got)

	_, err = Parse("flattop")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	require.NoError(t, Apply(TypeHann, buf))
	assert.InDeltaSlice(t, []float64{0, 1, 2, 1, 0}, buf, 1e-12)
}

func TestKaiser(t *testing.T) {
	assert.InDelta(t, 1.2660658777520082, besselI0(1), 1e-14)
	assert.InDelta(t, 27.239871823604442, besselI0(5), 1e-11)

	w, err := Generate(TypeKaiser, 9, WithBeta(0))
	require.NoError(t, err)
	for _, v := range w {
		assert.InDelta(t, 1.0, v, 1e-15)
	}

	w, err = Generate(TypeKaiser, 9, WithBeta(8))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, w[4], 1e-12)
	assert.InDelta(t, 1/besselI0(8), w[0], 1e-12)
}

func TestKaiserBeta(t *testing.T) {
	assert.InDelta(t, 0.1102*(60-8.7), KaiserBeta(60), 1e-12)
	assert.InDelta(t, 0.5842*math.Pow(9, 0.4)+0.07886*9, KaiserBeta(30), 1e-12)
	assert.Equal(t, 0.0, KaiserBeta(15))

	assert.InDelta(t, 7.95, KaiserAttenuation(1, 0.2), 1e-12)
}

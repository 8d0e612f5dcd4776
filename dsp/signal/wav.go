package signal

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavPCM is the WAVE format tag for integer PCM.
const wavPCM = 1

// wavHeadroom keeps the normalized peak just below full scale.
const wavHeadroom = 0.98

// WriteWAV writes ts as mono PCM at the given bit depth (16, 24 or 32),
// normalized to just below full scale.
func WriteWAV(w io.WriteSeeker, ts *TestSignal, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("wav bit depth must be 16, 24 or 32: %d", bitDepth)
	}
	rate := int(math.Round(ts.SampleRate))
	if rate <= 0 {
		return fmt.Errorf("wav sample rate must be > 0: %f", ts.SampleRate)
	}

	scaled, err := Normalize(ts.Samples, wavHeadroom)
	if err != nil {
		return err
	}

	fullScale := float64(int64(1)<<(bitDepth-1) - 1)
	buf := &audio.IntBuffer{
		Data:           make([]int, len(scaled)),
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	for i, v := range scaled {
		buf.Data[i] = int(math.Round(v * fullScale))
	}

	enc := wav.NewEncoder(w, rate, bitDepth, 1, wavPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav encode: %w", err)
	}
	return enc.Close()
}

// ReadWAV decodes a mono PCM WAV file into samples scaled to [-1, 1] and
// its sample rate.
func ReadWAV(r io.ReadSeeker) ([]float64, float64, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav decode: %w", err)
	}

	fullScale := float64(int64(1)<<(int(dec.BitDepth)-1) - 1)
	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) / fullScale
	}
	return out, float64(dec.SampleRate), nil
}

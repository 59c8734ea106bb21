package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

var ErrTooShort = errors.New("analysis: signal too short")

// padFactor zero-pads the transform to interpolate between bins.
const padFactor = 4

// Spectrum is the one-sided magnitude spectrum of a uniformly sampled signal.
type Spectrum struct {
	Power      []float64
	Resolution float64 // Hz per bin
}

// NewSpectrum removes the mean, applies a Hann window and transforms data
// sampled every dt seconds.
func NewSpectrum(data []float64, dt float64) (*Spectrum, error) {
	if len(data) < 4 {
		return nil, ErrTooShort
	}
	if dt <= 0 {
		return nil, errors.New("analysis: sample interval must be positive")
	}

	mean := floats.Sum(data) / float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	n *= padFactor

	padded := make([]float64, n)
	last := float64(len(data) - 1)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/last))
		padded[i] = (v - mean) * window
	}

	out := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}

	return &Spectrum{Power: ps, Resolution: 1 / (float64(n) * dt)}, nil
}

// Dominant returns the strongest non-DC frequency and its magnitude.
func (s *Spectrum) Dominant() (hz, power float64) {
	idx := 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > power {
			power = s.Power[i]
			idx = i
		}
	}
	return float64(idx) * s.Resolution, power
}

// Band returns the bins below maxHz, for plotting.
func (s *Spectrum) Band(maxHz float64) []float64 {
	n := int(maxHz/s.Resolution) + 1
	if n > len(s.Power) {
		n = len(s.Power)
	}
	return s.Power[:n]
}

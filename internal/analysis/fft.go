package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/rkloop/internal/dynamo"
)

// PowerSpectrum returns the one-sided amplitude spectrum of data after
// removing its mean. Entry k corresponds to frequency k/(len(data)*dt).
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod estimates the period of a signal sampled every dt from
// the strongest non-zero frequency bin.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples, got %d", dynamo.ErrPrecondition, len(samples))
	}
	if !(dt > 0) {
		return 0, fmt.Errorf("%w: sample spacing must be positive, got %g", dynamo.ErrPrecondition, dt)
	}

	ps := PowerSpectrum(samples)
	peak := 0
	for k := 1; k < len(ps); k++ {
		if peak == 0 || ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, fmt.Errorf("%w: signal is constant", dynamo.ErrPrecondition)
	}
	return float64(len(samples)) * dt / float64(peak), nil
}

package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FFTFreq returns the discrete Fourier transform sample frequencies for a
// signal of length n sampled with spacing d, in standard FFT ordering:
// [0, 1, ..., n/2-1, -n/2, ..., -1] / (n*d).
func FFTFreq(n int, d float64) []float64 {
	f := make([]float64, n)
	scale := 1.0 / (float64(n) * d)
	for i := 0; i < n; i++ {
		if i < (n+1)/2 {
			f[i] = float64(i) * scale
		} else {
			f[i] = float64(i-n) * scale
		}
	}
	return f
}

// TimeAxis returns n uniformly spaced samples covering [-span/2, span/2),
// endpoint excluded, matching the periodic grid the FFT assumes.
func TimeAxis(span float64, n int) []float64 {
	t := make([]float64, n)
	if n == 1 {
		return t
	}
	d := span / float64(n)
	floats.Span(t, -span/2, span/2-d)
	return t
}

// planck evaluates the rising Planck-taper edge between x0 (window = 0)
// and x1 (window = 1). x must lie strictly between x0 and x1.
func planck(x, x0, x1 float64) float64 {
	z := (x1-x0)/(x-x0) + (x1-x0)/(x-x1)
	// Large |z| overflows exp; the window is numerically 0 or 1 there.
	if z > 700 {
		return 0
	}
	if z < -700 {
		return 1
	}
	return 1.0 / (1.0 + math.Exp(z))
}

// PlanckTaper evaluates a Planck-taper window over x that rises from 0 at
// left0 to 1 at left1 and falls from 1 at right1 back to 0 at right0.
// Requires left0 < left1 <= right1 < right0.
func PlanckTaper(x []float64, left0, left1, right1, right0 float64) []float64 {
	w := make([]float64, len(x))
	for i, xi := range x {
		switch {
		case xi <= left0 || xi >= right0:
			w[i] = 0
		case xi >= left1 && xi <= right1:
			w[i] = 1
		case xi < left1:
			w[i] = planck(xi, left0, left1)
		default:
			w[i] = planck(xi, right0, right1)
		}
	}
	return w
}

// Package resample moves fields between the native and oversampled
// time-frequency grids. Resampling acts only along the leading
// frequency/time axis; multi-column variants treat trailing axes (modes,
// radial points, transverse points) as independent contiguous columns.
package resample

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Real resamples one-sided spectra of a real field between a native
// frequency axis of length n and an oversampled axis of length no. The
// associated time axes have lengths 2(n-1) and 2(no-1).
//
// Spectra follow the convention Eω = rfft(Et)·dt up to the caller's choice
// of dt; the kernels preserve time-domain amplitude under zero-padding by
// the scale factor (no-1)/(n-1).
type Real struct {
	n, no int
	nt    int
	nto   int
	scale float64
	fft   *fourier.FFT
}

// NewReal creates a real-field resampler. Requires 2 <= n <= no.
func NewReal(n, no int) (*Real, error) {
	if n < 2 {
		return nil, fmt.Errorf("resample: native length %d must be >= 2", n)
	}
	if no < n {
		return nil, fmt.Errorf("resample: oversampled length %d shorter than native %d", no, n)
	}
	return &Real{
		n:     n,
		no:    no,
		nt:    2 * (n - 1),
		nto:   2 * (no - 1),
		scale: float64(no-1) / float64(n-1),
		fft:   fourier.NewFFT(2 * (no - 1)),
	}, nil
}

// Nt returns the native time length 2(n-1).
func (r *Real) Nt() int { return r.nt }

// Nto returns the oversampled time length 2(no-1).
func (r *Real) Nto() int { return r.nto }

// CopyScale embeds a native spectrum into the oversampled spectrum,
// scaling by (no-1)/(n-1) and zeroing the padded band.
func (r *Real) CopyScale(wo, w []complex128) {
	s := complex(r.scale, 0)
	for i := 0; i < r.n; i++ {
		wo[i] = w[i] * s
	}
	for i := r.n; i < r.no; i++ {
		wo[i] = 0
	}
}

// CopyBack extracts the native spectrum from the oversampled one,
// inverting the CopyScale scaling.
func (r *Real) CopyBack(w, wo []complex128) {
	s := complex(1/r.scale, 0)
	for i := 0; i < r.n; i++ {
		w[i] = wo[i] * s
	}
}

// InvTime computes the normalized inverse real transform of the
// oversampled spectrum, writing 2(no-1) time samples.
func (r *Real) InvTime(to []float64, wo []complex128) {
	r.fft.Sequence(to, wo)
	inv := 1.0 / float64(r.nto)
	for i := range to {
		to[i] *= inv
	}
}

// FwdFreq computes the unnormalized forward real transform of the
// oversampled time field.
func (r *Real) FwdFreq(wo []complex128, to []float64) {
	r.fft.Coefficients(wo, to)
}

// ToTime resamples a native spectrum to the oversampled time domain.
// wo is caller-provided scratch of length no.
func (r *Real) ToTime(to []float64, w []complex128, wo []complex128) {
	r.CopyScale(wo, w)
	r.InvTime(to, wo)
}

// ToFreq resamples an oversampled time field back to a native spectrum.
// wo is caller-provided scratch of length no.
func (r *Real) ToFreq(w []complex128, wo []complex128, to []float64) {
	r.FwdFreq(wo, to)
	r.CopyBack(w, wo)
}

// ToTimeN applies ToTime to ncol contiguous columns: w holds ncol spectra
// of length n back to back, to receives ncol time columns of length Nto.
func (r *Real) ToTimeN(to []float64, w []complex128, wo []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		r.ToTime(to[c*r.nto:(c+1)*r.nto], w[c*r.n:(c+1)*r.n], wo)
	}
}

// ToFreqN applies ToFreq to ncol contiguous columns.
func (r *Real) ToFreqN(w []complex128, wo []complex128, to []float64, ncol int) {
	for c := 0; c < ncol; c++ {
		r.ToFreq(w[c*r.n:(c+1)*r.n], wo, to[c*r.nto:(c+1)*r.nto])
	}
}

// CopyScaleN applies CopyScale per column.
func (r *Real) CopyScaleN(wo, w []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		r.CopyScale(wo[c*r.no:(c+1)*r.no], w[c*r.n:(c+1)*r.n])
	}
}

// CopyBackN applies CopyBack per column.
func (r *Real) CopyBackN(w, wo []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		r.CopyBack(w[c*r.n:(c+1)*r.n], wo[c*r.no:(c+1)*r.no])
	}
}

// InvTimeN applies InvTime per column.
func (r *Real) InvTimeN(to []float64, wo []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		r.InvTime(to[c*r.nto:(c+1)*r.nto], wo[c*r.no:(c+1)*r.no])
	}
}

// FwdFreqN applies FwdFreq per column.
func (r *Real) FwdFreqN(wo []complex128, to []float64, ncol int) {
	for c := 0; c < ncol; c++ {
		r.FwdFreq(wo[c*r.no:(c+1)*r.no], to[c*r.nto:(c+1)*r.nto])
	}
}

// Env resamples two-sided baseband spectra of a complex envelope between
// lengths n and no. Time axes have the same lengths as the spectra.
//
// The spectral copy places the leading (non-negative frequency) half at
// the start of the destination and the trailing (negative frequency) half
// at its end, preserving two-sided support under the FFT ordering. For
// n == 1 the two halves coincide on the zero-frequency bin.
type Env struct {
	n, no int
	scale float64
	fft   *fourier.CmplxFFT
}

// NewEnv creates an envelope resampler. Requires 1 <= n <= no.
func NewEnv(n, no int) (*Env, error) {
	if n < 1 {
		return nil, fmt.Errorf("resample: native length %d must be >= 1", n)
	}
	if no < n {
		return nil, fmt.Errorf("resample: oversampled length %d shorter than native %d", no, n)
	}
	return &Env{n: n, no: no, scale: float64(no) / float64(n), fft: fourier.NewCmplxFFT(no)}, nil
}

// Nto returns the oversampled time length, equal to no.
func (e *Env) Nto() int { return e.no }

// CopyScale embeds a native two-sided spectrum into the oversampled one,
// scaling by no/n: the first ceil(n/2) bins land at the start, the last
// floor(n/2) bins at the end, and the inserted band is zeroed.
func (e *Env) CopyScale(wo, w []complex128) {
	for i := range wo {
		wo[i] = 0
	}
	s := complex(e.scale, 0)
	h := (e.n + 1) / 2
	for i := 0; i < h; i++ {
		wo[i] = w[i] * s
	}
	for i := 0; i < e.n/2; i++ {
		wo[e.no-1-i] = w[e.n-1-i] * s
	}
}

// CopyBack extracts the native two-sided spectrum, inverting CopyScale.
func (e *Env) CopyBack(w, wo []complex128) {
	s := complex(1/e.scale, 0)
	h := (e.n + 1) / 2
	for i := 0; i < h; i++ {
		w[i] = wo[i] * s
	}
	for i := 0; i < e.n/2; i++ {
		w[e.n-1-i] = wo[e.no-1-i] * s
	}
}

// InvTime computes the normalized inverse transform of the oversampled
// spectrum.
func (e *Env) InvTime(to, wo []complex128) {
	e.fft.Sequence(to, wo)
	inv := complex(1/float64(e.no), 0)
	for i := range to {
		to[i] *= inv
	}
}

// FwdFreq computes the unnormalized forward transform of the oversampled
// time field.
func (e *Env) FwdFreq(wo, to []complex128) {
	e.fft.Coefficients(wo, to)
}

// ToTime resamples a native spectrum to the oversampled time domain.
func (e *Env) ToTime(to []complex128, w []complex128, wo []complex128) {
	e.CopyScale(wo, w)
	e.InvTime(to, wo)
}

// ToFreq resamples an oversampled time field back to a native spectrum.
func (e *Env) ToFreq(w []complex128, wo []complex128, to []complex128) {
	e.FwdFreq(wo, to)
	e.CopyBack(w, wo)
}

// ToTimeN applies ToTime to ncol contiguous columns.
func (e *Env) ToTimeN(to []complex128, w []complex128, wo []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		e.ToTime(to[c*e.no:(c+1)*e.no], w[c*e.n:(c+1)*e.n], wo)
	}
}

// ToFreqN applies ToFreq to ncol contiguous columns.
func (e *Env) ToFreqN(w []complex128, wo []complex128, to []complex128, ncol int) {
	for c := 0; c < ncol; c++ {
		e.ToFreq(w[c*e.n:(c+1)*e.n], wo, to[c*e.no:(c+1)*e.no])
	}
}

package response

import (
	"math/cmplx"

	"github.com/waveforge/NLKernel/utils"
)

// Kerr is the instantaneous cubic response of a real field,
// P = ε0 χ3 E³, retaining the third-harmonic term.
type Kerr struct {
	chi3 float64
}

// NewKerr returns a Kerr response with third-order susceptibility chi3.
func NewKerr(chi3 float64) *Kerr {
	return &Kerr{chi3: chi3}
}

// Apply adds ε0 χ3 E³ into pt.
func (k *Kerr) Apply(pt, et []float64) {
	f := utils.Eps0 * k.chi3
	for i, e := range et {
		pt[i] += f * e * e * e
	}
}

// EnvKerr is the instantaneous cubic response of a complex envelope with
// the third-harmonic term discarded: P = ε0 χ3 (3/4) |E|² E.
type EnvKerr struct {
	chi3 float64
}

// NewEnvKerr returns an envelope Kerr response without third-harmonic
// generation.
func NewEnvKerr(chi3 float64) *EnvKerr {
	return &EnvKerr{chi3: chi3}
}

// Apply adds ε0 χ3 (3/4) |E|² E into pt.
func (k *EnvKerr) Apply(pt, et []complex128) {
	f := 0.75 * utils.Eps0 * k.chi3
	for i, e := range et {
		re, im := real(e), imag(e)
		pt[i] += complex(f*(re*re+im*im), 0) * e
	}
}

// EnvKerrTHG is the envelope Kerr response retaining the third harmonic,
// P = ε0 χ3 ( (3/4) |E|² E + (1/4) E³ exp(2iω0t) ). It needs the carrier
// frequency and the oversampled time axis to rotate the E³ term.
type EnvKerrTHG struct {
	chi3 float64
	w0   float64
	rot  []complex128 // exp(2iω0 t) over the time axis
}

// NewEnvKerrTHG returns an envelope Kerr response with third-harmonic
// retention for carrier w0 over time axis t.
func NewEnvKerrTHG(chi3, w0 float64, t []float64) *EnvKerrTHG {
	rot := make([]complex128, len(t))
	for i, ti := range t {
		rot[i] = cmplx.Exp(complex(0, 2*w0*ti))
	}
	return &EnvKerrTHG{chi3: chi3, w0: w0, rot: rot}
}

// Apply adds the full cubic envelope polarization into pt.
func (k *EnvKerrTHG) Apply(pt, et []complex128) {
	f := utils.Eps0 * k.chi3
	for i, e := range et {
		re, im := real(e), imag(e)
		pt[i] += complex(0.75*f*(re*re+im*im), 0)*e + complex(0.25*f, 0)*e*e*e*k.rot[i]
	}
}

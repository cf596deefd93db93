// Package energy computes pulse energies from time- or frequency-domain
// fields. The estimators are pure functions used for diagnostics and
// input scaling; they share nothing with the transform pipeline.
//
// Real fields are measured through their analytic-signal envelope, so a
// carrier-resolved field and its envelope representation report the same
// energy. Fluence-normalized estimators return energy per unit area; the
// radial and free-space variants fold in the transverse area element.
package energy

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/integrate"

	"github.com/waveforge/NLKernel/utils"
)

// Analytic returns the analytic signal of a real field: positive
// frequencies doubled, negative frequencies removed. Its magnitude is
// the field envelope.
func Analytic(et []float64) []complex128 {
	n := len(et)
	spec := fft.FFTReal(et)
	// Zero the negative-frequency half; DC and Nyquist stay single.
	for i := n/2 + 1; i < n; i++ {
		spec[i] = 0
	}
	for i := 1; i < (n+1)/2; i++ {
		spec[i] *= 2
	}
	return fft.IFFT(spec)
}

// TDomain integrates a real field over the time axis t, returning the
// fluence ε0 c/2 ∫ |A(t)|² dt with A the analytic envelope. Simpson's
// rule requires len(t) >= 3 and uniform or smoothly varying spacing.
func TDomain(t, et []float64) float64 {
	a := Analytic(et)
	return 0.5 * utils.Eps0 * utils.C * integrate.Simpsons(t, abs2(a))
}

// TDomainEnv integrates a complex envelope over t, returning
// ε0 c/2 ∫ |E(t)|² dt.
func TDomainEnv(t []float64, et []complex128) float64 {
	return 0.5 * utils.Eps0 * utils.C * integrate.Simpsons(t, abs2(et))
}

// FDomain integrates a one-sided spectrum Eω over the frequency axis w,
// with the convention Eω = rfft(Et)·dt. By Parseval the result matches
// TDomain: ε0 c/π ∫ |Eω|² dω.
func FDomain(w []float64, ew []complex128) float64 {
	return utils.Eps0 * utils.C / math.Pi * integrate.Simpsons(w, abs2(ew))
}

// Radial sums column fluences against radial quadrature weights wr
// (Σ wr f ≈ ∫ f r dr, as returned by a QDHT) and multiplies by the
// azimuthal 2π. et holds one contiguous time column of length len(t) per
// radial point.
func Radial(t []float64, et []float64, wr []float64) float64 {
	n := len(t)
	total := 0.0
	for c, w := range wr {
		total += w * TDomain(t, et[c*n:(c+1)*n])
	}
	return 2 * math.Pi * total
}

// Free sums per-point fluences over a uniform transverse grid with
// spacings dx, dy. et holds one contiguous time column per transverse
// point; uniform sampling is assumed.
func Free(t []float64, et []float64, dx, dy float64) float64 {
	n := len(t)
	nc := len(et) / n
	total := 0.0
	for c := 0; c < nc; c++ {
		total += TDomain(t, et[c*n:(c+1)*n])
	}
	return dx * dy * total
}

func abs2(v []complex128) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		re, im := real(c), imag(c)
		out[i] = re*re + im*im
	}
	return out
}

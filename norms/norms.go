// Package norms provides the z-dependent normalization factors that
// convert a nonlinear polarization spectrum into the propagation
// equation's source term.
//
// Every provider freezes its output shape at construction and only ever
// overwrites the bins listed in sidx; out-of-band bins stay at their
// initial zero and contribute nothing downstream. Where the longitudinal
// wavenumber would be evanescent (β² <= 0) or where ω = 0, the factor is
// clamped to exactly 1.0.
package norms

import (
	"math"

	"github.com/waveforge/NLKernel/utils"
)

// Provider yields the normalization array at position z. The returned
// slice is owned by the provider and overwritten on the next call.
type Provider interface {
	Evaluate(z float64) []float64
}

// Dispersion gives the longitudinal wavenumber k(z, ω) of the linear
// medium; it is a consumed external interface, typically backed by a
// refractive index model.
type Dispersion func(z, w float64) float64

// Const wraps a provider, evaluating it once at the reference position
// z = 0 and returning the cached array forever. Valid when the
// propagation constant does not depend materially on position.
type Const struct {
	cache []float64
}

// NewConst evaluates p at z = 0 and caches the result.
func NewConst(p Provider) *Const {
	src := p.Evaluate(0)
	c := &Const{cache: make([]float64, len(src))}
	copy(c.cache, src)
	return c
}

// Evaluate returns the cached array regardless of z.
func (c *Const) Evaluate(z float64) []float64 { return c.cache }

// ModeAvg is the mode-averaged normalization: one factor per frequency
// bin, β/(μ0 ω), recomputed at every call. ω = 0 never appears because
// sidx excludes it.
type ModeAvg struct {
	w    []float64
	sidx []int
	k    Dispersion
	out  []float64
}

// NewModeAvg builds a mode-averaged provider over the native frequency
// axis w with valid bins sidx and dispersion k.
func NewModeAvg(w []float64, sidx []int, k Dispersion) *ModeAvg {
	return &ModeAvg{w: w, sidx: sidx, k: k, out: make([]float64, len(w))}
}

// Evaluate recomputes the per-bin factors at position z.
func (m *ModeAvg) Evaluate(z float64) []float64 {
	for _, i := range m.sidx {
		w := m.w[i]
		m.out[i] = m.k(z, w) / (utils.Mu0 * w)
	}
	return m.out
}

// Radial is the radially resolved normalization: a (k⊥ × ω) array in
// column-contiguous layout, index ik*len(w)+iw. Per pair, β² = k² - k⊥²;
// evanescent pairs and ω = 0 clamp to 1.0.
type Radial struct {
	w    []float64
	sidx []int
	kt   []float64
	k    Dispersion
	out  []float64
}

// NewRadial builds a radial provider over frequency axis w, valid bins
// sidx, transverse wavenumbers kt and dispersion k.
func NewRadial(w, kt []float64, sidx []int, k Dispersion) *Radial {
	return &Radial{w: w, sidx: sidx, kt: kt, k: k, out: make([]float64, len(kt)*len(w))}
}

// Evaluate recomputes the (k⊥ × ω) factors at position z.
func (r *Radial) Evaluate(z float64) []float64 {
	nw := len(r.w)
	for ik, kt := range r.kt {
		row := r.out[ik*nw : (ik+1)*nw]
		kt2 := kt * kt
		for _, i := range r.sidx {
			row[i] = factor(r.w[i], r.k(z, r.w[i]), kt2)
		}
	}
	return r.out
}

// Free is the free-space normalization over a full transverse wavenumber
// grid: a (ky × kx × ω) array, ω fastest, index ((iy*nx)+ix)*len(w)+iw.
// The clamp policy is identical to Radial, with k⊥² = kx² + ky² formed as
// an outer sum.
type Free struct {
	w      []float64
	sidx   []int
	kx, ky []float64
	k      Dispersion
	out    []float64
}

// NewFree builds a free-space provider over frequency axis w, valid bins
// sidx, transverse wavenumber axes kx, ky and dispersion k.
func NewFree(w, kx, ky []float64, sidx []int, k Dispersion) *Free {
	return &Free{w: w, sidx: sidx, kx: kx, ky: ky, k: k,
		out: make([]float64, len(ky)*len(kx)*len(w))}
}

// Evaluate recomputes the (ky × kx × ω) factors at position z.
func (f *Free) Evaluate(z float64) []float64 {
	nw := len(f.w)
	nx := len(f.kx)
	for iy, ky := range f.ky {
		for ix, kx := range f.kx {
			row := f.out[((iy*nx)+ix)*nw : ((iy*nx)+ix+1)*nw]
			kt2 := kx*kx + ky*ky
			for _, i := range f.sidx {
				row[i] = factor(f.w[i], f.k(z, f.w[i]), kt2)
			}
		}
	}
	return f.out
}

// factor computes β/(μ0 ω) with the evanescent and zero-frequency clamp.
func factor(w, k, kt2 float64) float64 {
	if w == 0 {
		return 1.0
	}
	b2 := k*k - kt2
	if b2 <= 0 {
		return 1.0
	}
	return math.Sqrt(b2) / (utils.Mu0 * w)
}

package response

import (
	"math"

	"github.com/waveforge/NLKernel/utils"
)

// RateFunc maps the instantaneous field strength |E| to an ionization
// rate [1/s]. The tabulated or analytic form is supplied by the caller;
// the material property lookup is outside this package.
type RateFunc func(abs float64) float64

// Plasma is the delayed free-carrier response of an ionizing medium for a
// real field, per unit neutral density. The ionized fraction η follows
// dη/dt = rate(|E|)(1-η); the free current J integrates (q²/mₑ) η E plus
// an ionization-loss term, and the polarization is the time integral of J.
//
// The internal η and J scratch is keyed to the temporal axis and is reset
// at the start of every Apply call, so one instance can be applied to
// successive radial or modal columns through AccumulateIndexed.
type Plasma struct {
	rate RateFunc
	dt   float64
	ip   float64 // ionization potential [J]
	loss bool

	eta []float64
	j   []float64
}

// NewPlasma builds a plasma response on a temporal axis of n samples with
// spacing dt. ip is the ionization potential in joules; withLoss enables
// the photoionization energy-loss current.
func NewPlasma(dt float64, n int, ip float64, rate RateFunc, withLoss bool) *Plasma {
	return &Plasma{
		rate: rate,
		dt:   dt,
		ip:   ip,
		loss: withLoss,
		eta:  make([]float64, n),
		j:    make([]float64, n),
	}
}

// Apply adds the plasma polarization of the column et into pt.
func (p *Plasma) Apply(pt, et []float64) {
	n := len(et)
	emax := 0.0
	for _, e := range et {
		if a := math.Abs(e); a > emax {
			emax = a
		}
	}
	if emax == 0 {
		return
	}
	ethresh := 1e-10 * emax
	cfree := utils.Qe * utils.Qe / utils.Me

	eta := 0.0
	jcur := 0.0
	pol := 0.0
	for i := 0; i < n; i++ {
		e := et[i]
		r := p.rate(math.Abs(e))
		eta += p.dt * r * (1 - eta)
		if eta > 1 {
			eta = 1
		}
		p.eta[i] = eta

		djdt := cfree * eta * e
		if p.loss && math.Abs(e) > ethresh {
			djdt += r * (1 - eta) * p.ip / e
		}
		jcur += p.dt * djdt
		p.j[i] = jcur

		pol += p.dt * jcur
		pt[i] += pol
	}
}

// Fraction returns the ionized fraction computed during the last Apply
// call, for diagnostics.
func (p *Plasma) Fraction() []float64 { return p.eta }

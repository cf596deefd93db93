package trans

import (
	"fmt"
	"math"

	"github.com/waveforge/NLKernel/grid"
	"github.com/waveforge/NLKernel/norms"
	"github.com/waveforge/NLKernel/resample"
	"github.com/waveforge/NLKernel/response"
)

// ModeAvg is the single-mode average transform: no spatial quadrature,
// one resample-accumulate-resample pass with an effective-area rescale.
// It is the reference for the Invoke calling convention the other
// operators follow.
type ModeAvg struct {
	w    []float64
	sidx []int
	twin []float64
	wwin []float64

	rs   *resample.Real
	resp []response.Response[float64]
	dens func(z float64) float64
	aeff func(z float64) float64
	norm norms.Provider

	eto, pto []float64
	wo       []complex128
	pw       []complex128
}

// NewModeAvg builds a mode-averaged operator on g with the given ordered
// responses, density ρ(z), effective area A(z) and normalization
// provider.
func NewModeAvg(g *grid.Real, resp []response.Response[float64], dens, aeff func(z float64) float64, norm norms.Provider) (*ModeAvg, error) {
	if g == nil || dens == nil || aeff == nil || norm == nil {
		return nil, ErrMissing
	}
	rs, err := resample.NewReal(len(g.W), len(g.Wo))
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	if len(g.TWin) != rs.Nto() {
		return nil, fmt.Errorf("%w: time window length %d, oversampled time length %d", ErrShape, len(g.TWin), rs.Nto())
	}
	return &ModeAvg{
		w:    g.W,
		sidx: g.Sidx,
		twin: g.TWin,
		wwin: g.WWin,
		rs:   rs,
		resp: resp,
		dens: dens,
		aeff: aeff,
		norm: norm,
		eto:  make([]float64, rs.Nto()),
		pto:  make([]float64, rs.Nto()),
		wo:   make([]complex128, len(g.Wo)),
		pw:   make([]complex128, len(g.W)),
	}, nil
}

// Invoke writes the nonlinear term for Ew at z into out.
func (t *ModeAvg) Invoke(out, Ew []complex128, z float64) {
	t.rs.ToTime(t.eto, Ew, t.wo)

	// Mode-average amplitude to intensity-normalized field.
	pre := math.Pow(t.aeff(z), -0.25)
	for i := range t.eto {
		t.eto[i] *= pre
	}

	zeroF(t.pto)
	response.Accumulate(t.pto, t.eto, t.resp)
	for i := range t.pto {
		t.pto[i] *= t.twin[i]
	}
	t.rs.ToFreq(t.pw, t.wo, t.pto)

	rho := t.dens(z)
	nrm := t.norm.Evaluate(z)
	zeroC(out)
	for _, i := range t.sidx {
		out[i] = complex(0, -0.5*t.w[i]) * complex(rho*t.wwin[i]/nrm[i], 0) * t.pw[i]
	}
}

// EnvAvg is the complex-envelope analogue of ModeAvg, operating on a
// two-sided baseband spectrum around the carrier.
type EnvAvg struct {
	w    []float64
	sidx []int
	twin []float64
	wwin []float64

	rs   *resample.Env
	resp []response.Response[complex128]
	dens func(z float64) float64
	aeff func(z float64) float64
	norm norms.Provider

	eto, pto []complex128
	wo       []complex128
	pw       []complex128
}

// NewEnvAvg builds an envelope mode-averaged operator on g.
func NewEnvAvg(g *grid.Env, resp []response.Response[complex128], dens, aeff func(z float64) float64, norm norms.Provider) (*EnvAvg, error) {
	if g == nil || dens == nil || aeff == nil || norm == nil {
		return nil, ErrMissing
	}
	rs, err := resample.NewEnv(len(g.W), len(g.Wo))
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	if len(g.TWin) != rs.Nto() {
		return nil, fmt.Errorf("%w: time window length %d, oversampled time length %d", ErrShape, len(g.TWin), rs.Nto())
	}
	return &EnvAvg{
		w:    g.W,
		sidx: g.Sidx,
		twin: g.TWin,
		wwin: g.WWin,
		rs:   rs,
		resp: resp,
		dens: dens,
		aeff: aeff,
		norm: norm,
		eto:  make([]complex128, rs.Nto()),
		pto:  make([]complex128, rs.Nto()),
		wo:   make([]complex128, len(g.Wo)),
		pw:   make([]complex128, len(g.W)),
	}, nil
}

// Invoke writes the nonlinear term for the envelope spectrum Ew at z
// into out.
func (t *EnvAvg) Invoke(out, Ew []complex128, z float64) {
	t.rs.ToTime(t.eto, Ew, t.wo)

	pre := complex(math.Pow(t.aeff(z), -0.25), 0)
	for i := range t.eto {
		t.eto[i] *= pre
	}

	zeroC(t.pto)
	response.Accumulate(t.pto, t.eto, t.resp)
	for i := range t.pto {
		t.pto[i] *= complex(t.twin[i], 0)
	}
	t.rs.ToFreq(t.pw, t.wo, t.pto)

	rho := t.dens(z)
	nrm := t.norm.Evaluate(z)
	zeroC(out)
	for _, i := range t.sidx {
		out[i] = complex(0, -0.5*t.w[i]) * complex(rho*t.wwin[i]/nrm[i], 0) * t.pw[i]
	}
}

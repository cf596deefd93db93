package trans

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/waveforge/NLKernel/grid"
	"github.com/waveforge/NLKernel/norms"
	"github.com/waveforge/NLKernel/quad"
	"github.com/waveforge/NLKernel/resample"
	"github.com/waveforge/NLKernel/response"
)

// Geometry selects the integration domain of the modal cross-section
// integral.
type Geometry uint8

const (
	// GeomLine integrates a 1D radial line with polar Jacobian r; the
	// azimuthal integral is assumed folded into the mode normalization.
	GeomLine Geometry = iota
	// GeomPolar integrates the full cross-section over (r, θ) with
	// Jacobian r.
	GeomPolar
	// GeomCartesian integrates the full cross-section over (x, y) with
	// unit Jacobian; points are converted to (r, θ) for the mode-field
	// evaluators.
	GeomCartesian
)

// ModeField evaluates one mode's transverse field components at a polar
// point of the cross-section.
type ModeField func(r, theta float64) (ex, ey complex128)

// Bounds is the integration domain at one position: the radial interval
// [RMin, RMax) and, for GeomPolar, the azimuthal interval
// [ThetaMin, ThetaMax]. GeomCartesian integrates the box
// [-RMax, RMax]² with points at or beyond radius RMax clamped to zero.
type Bounds struct {
	RMin, RMax         float64
	ThetaMin, ThetaMax float64
}

// ModalConfig collects the collaborators of a Modal operator.
type ModalConfig struct {
	Grid       *grid.Real
	Modes      int
	Components Components
	Geometry   Geometry
	Fields     func(z float64) []ModeField
	Bounds     func(z float64) Bounds
	Responses  []response.Response[float64]
	Density    func(z float64) float64
	Norm       norms.Provider

	// Quadrature termination; MaxEvals == 0 selects the package default.
	RTol, ATol float64
	MaxEvals   int
}

// Modal computes the nonlinear term of a multi-mode field by adaptive
// quadrature over the waveguide cross-section: at every evaluation point
// the modal coefficients are projected onto the local mode fields, pushed
// through the time-domain response pipeline, and projected back onto the
// mode basis.
//
// Field and output arrays hold one contiguous spectrum of length len(W)
// per mode, mode index outermost.
type Modal struct {
	cfg   ModalConfig
	nw    int
	nto   int
	nm    int
	ncomp int
	w     []float64
	sidx  []int
	twin  []float64
	wwin  []float64
	rs    *resample.Real
	cols  []int

	// Per-invocation state, refreshed by Invoke.
	ew     []complex128 // captured modal coefficients, nm × nw
	mf     []ModeField
	bounds Bounds
	rho    float64
	nrm    []float64

	// Point pipeline buffers.
	ex, ey   []complex128 // mode fields at the current point
	esp      []complex128 // projected spatial spectra, ncomp × nw
	eto, pto []float64    // ncomp × nto
	wo       []complex128
	pw       []complex128 // ncomp × nw
	sum      []complex128 // quadrature accumulator, nm × nw

	last quad.Result
}

// NewModal validates cfg and builds the operator.
func NewModal(cfg ModalConfig) (*Modal, error) {
	if cfg.Grid == nil || cfg.Fields == nil || cfg.Bounds == nil || cfg.Density == nil || cfg.Norm == nil {
		return nil, ErrMissing
	}
	if cfg.Modes < 1 {
		return nil, fmt.Errorf("%w: mode count %d", ErrShape, cfg.Modes)
	}
	ncomp, err := cfg.Components.count()
	if err != nil {
		return nil, err
	}
	switch cfg.Geometry {
	case GeomLine, GeomPolar, GeomCartesian:
	default:
		return nil, ErrGeometry
	}
	g := cfg.Grid
	rs, err := resample.NewReal(len(g.W), len(g.Wo))
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	nw := len(g.W)
	nto := rs.Nto()
	cols := make([]int, ncomp)
	for c := range cols {
		cols[c] = c
	}
	return &Modal{
		cfg:   cfg,
		nw:    nw,
		nto:   nto,
		nm:    cfg.Modes,
		ncomp: ncomp,
		w:     g.W,
		sidx:  g.Sidx,
		twin:  g.TWin,
		wwin:  g.WWin,
		rs:    rs,
		cols:  cols,
		ew:    make([]complex128, cfg.Modes*nw),
		ex:    make([]complex128, cfg.Modes),
		ey:    make([]complex128, cfg.Modes),
		esp:   make([]complex128, ncomp*nw),
		eto:   make([]float64, ncomp*nto),
		pto:   make([]float64, ncomp*nto),
		wo:    make([]complex128, len(g.Wo)),
		pw:    make([]complex128, ncomp*nw),
		sum:   make([]complex128, cfg.Modes*nw),
	}, nil
}

// Invoke writes the nonlinear term for the modal coefficients Ew at z
// into out. Quadrature diagnostics for the call are available from
// Quadrature afterwards.
func (t *Modal) Invoke(out, Ew []complex128, z float64) {
	copy(t.ew, Ew)
	t.mf = t.cfg.Fields(z)
	t.bounds = t.cfg.Bounds(z)
	t.rho = t.cfg.Density(z)
	t.nrm = t.cfg.Norm.Evaluate(z)

	var a, b [2]float64
	dim := 2
	switch t.cfg.Geometry {
	case GeomLine:
		a[0], b[0] = t.bounds.RMin, t.bounds.RMax
		dim = 1
	case GeomPolar:
		a[0], b[0] = t.bounds.RMin, t.bounds.RMax
		a[1], b[1] = t.bounds.ThetaMin, t.bounds.ThetaMax
	case GeomCartesian:
		a[0], b[0] = -t.bounds.RMax, t.bounds.RMax
		a[1], b[1] = -t.bounds.RMax, t.bounds.RMax
	}
	opt := quad.Options{RTol: t.cfg.RTol, ATol: t.cfg.ATol, MaxEvals: t.cfg.MaxEvals}
	res, err := quad.Integrate(t.contribution, a[:dim], b[:dim], dim, len(t.sum), t.sum, opt)
	if err != nil {
		// Dimensions and buffer lengths are fixed at construction; an
		// error here means the operator itself is broken.
		panic(err)
	}
	t.last = res

	zeroC(out)
	for m := 0; m < t.nm; m++ {
		row := out[m*t.nw : (m+1)*t.nw]
		srow := t.sum[m*t.nw : (m+1)*t.nw]
		for _, i := range t.sidx {
			row[i] = complex(0, -0.5*t.w[i]) * complex(t.wwin[i], 0) * srow[i]
		}
	}
}

// Quadrature reports evaluation count, error bound and convergence of
// the most recent Invoke. Exceeding the evaluation budget is not an
// error; the caller inspects the bound and decides.
func (t *Modal) Quadrature() quad.Result { return t.last }

// contribution is the quadrature integrand: the per-mode polarization
// spectra contributed by a single cross-section point.
func (t *Modal) contribution(x []float64, outv []complex128) {
	var r, th float64
	jac := t.rho
	switch t.cfg.Geometry {
	case GeomLine:
		r, th = x[0], 0
		jac *= r
	case GeomPolar:
		r, th = x[0], x[1]
		jac *= r
	case GeomCartesian:
		r, th = math.Hypot(x[0], x[1]), math.Atan2(x[1], x[0])
	}
	// Mode fields are undefined outside the physical domain; boundary
	// and exterior points contribute exactly zero.
	if r >= t.bounds.RMax || (t.bounds.RMin > 0 && r <= t.bounds.RMin) {
		return
	}

	for m := 0; m < t.nm; m++ {
		t.ex[m], t.ey[m] = t.mf[m](r, th)
	}

	zeroC(t.esp)
	for m := 0; m < t.nm; m++ {
		em := t.ew[m*t.nw : (m+1)*t.nw]
		ex, ey := t.ex[m], t.ey[m]
		for i, v := range em {
			t.esp[i] += ex * v
		}
		if t.ncomp == 2 {
			for i, v := range em {
				t.esp[t.nw+i] += ey * v
			}
		}
	}

	t.rs.ToTimeN(t.eto, t.esp, t.wo, t.ncomp)
	zeroF(t.pto)
	response.AccumulateIndexed(t.pto, t.eto, t.nto, t.cols, t.cfg.Responses)
	for c := 0; c < t.ncomp; c++ {
		col := t.pto[c*t.nto : (c+1)*t.nto]
		for i := range col {
			col[i] *= t.twin[i]
		}
	}
	t.rs.ToFreqN(t.pw, t.wo, t.pto, t.ncomp)

	for m := 0; m < t.nm; m++ {
		row := outv[m*t.nw : (m+1)*t.nw]
		cx, cy := cmplx.Conj(t.ex[m]), cmplx.Conj(t.ey[m])
		for _, i := range t.sidx {
			v := cx * t.pw[i]
			if t.ncomp == 2 {
				v += cy * t.pw[t.nw+i]
			}
			row[i] = v * complex(jac/t.nrm[i], 0)
		}
	}
}

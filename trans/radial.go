package trans

import (
	"fmt"

	"github.com/waveforge/NLKernel/grid"
	"github.com/waveforge/NLKernel/norms"
	"github.com/waveforge/NLKernel/resample"
	"github.com/waveforge/NLKernel/response"
)

// Radial computes the nonlinear term of an azimuthally symmetric
// free-space field. The spatial transform is a discrete Hankel pair
// applied between the spectral resampling stages; every radial column is
// treated as an independent temporal signal for the responses.
//
// Field and output arrays hold one contiguous spectrum of length len(W)
// per transverse wavenumber, the k⊥ index outermost.
type Radial struct {
	nw, nwo, nto, nk int
	w                []float64
	sidx             []int
	twin             []float64
	wwin             []float64

	rs   *resample.Real
	ht   HankelTransform
	resp []response.Response[float64]
	dens func(z float64) float64
	norm norms.Provider
	cols []int

	ewo, ero []complex128 // nk × nwo
	pwo      []complex128 // nk × nwo
	eto, pto []float64    // nk × nto
	pw       []complex128 // nk × nw
}

// NewRadial builds a radial operator on g using the Hankel transform ht.
func NewRadial(g *grid.Real, ht HankelTransform, resp []response.Response[float64], dens func(z float64) float64, norm norms.Provider) (*Radial, error) {
	if g == nil || ht == nil || dens == nil || norm == nil {
		return nil, ErrMissing
	}
	rs, err := resample.NewReal(len(g.W), len(g.Wo))
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	nk := ht.Points()
	if nk < 1 {
		return nil, fmt.Errorf("%w: hankel transform with %d points", ErrShape, nk)
	}
	nw, nwo, nto := len(g.W), len(g.Wo), rs.Nto()
	cols := make([]int, nk)
	for i := range cols {
		cols[i] = i
	}
	return &Radial{
		nw:   nw,
		nwo:  nwo,
		nto:  nto,
		nk:   nk,
		w:    g.W,
		sidx: g.Sidx,
		twin: g.TWin,
		wwin: g.WWin,
		rs:   rs,
		ht:   ht,
		resp: resp,
		dens: dens,
		norm: norm,
		cols: cols,
		ewo:  make([]complex128, nk*nwo),
		ero:  make([]complex128, nk*nwo),
		pwo:  make([]complex128, nk*nwo),
		eto:  make([]float64, nk*nto),
		pto:  make([]float64, nk*nto),
		pw:   make([]complex128, nk*nw),
	}, nil
}

// Invoke writes the nonlinear term for the (k⊥ × ω) spectrum Ew at z
// into out.
func (t *Radial) Invoke(out, Ew []complex128, z float64) {
	t.rs.CopyScaleN(t.ewo, Ew, t.nk)
	t.ht.Inverse(t.ero, t.ewo, t.nwo)
	t.rs.InvTimeN(t.eto, t.ero, t.nk)

	zeroF(t.pto)
	response.AccumulateIndexed(t.pto, t.eto, t.nto, t.cols, t.resp)
	for c := 0; c < t.nk; c++ {
		col := t.pto[c*t.nto : (c+1)*t.nto]
		for i := range col {
			col[i] *= t.twin[i]
		}
	}

	t.rs.FwdFreqN(t.pwo, t.pto, t.nk)
	t.ht.Forward(t.ero, t.pwo, t.nwo)
	t.rs.CopyBackN(t.pw, t.ero, t.nk)

	rho := t.dens(z)
	nrm := t.norm.Evaluate(z)
	zeroC(out)
	for c := 0; c < t.nk; c++ {
		base := c * t.nw
		for _, i := range t.sidx {
			out[base+i] = complex(0, -0.5*t.w[i]) * complex(rho*t.wwin[i]/nrm[base+i], 0) * t.pw[base+i]
		}
	}
}

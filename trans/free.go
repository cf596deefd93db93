package trans

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/waveforge/NLKernel/grid"
	"github.com/waveforge/NLKernel/norms"
	"github.com/waveforge/NLKernel/resample"
	"github.com/waveforge/NLKernel/response"
)

// FreeTransform is the combined transverse-Fourier and time-frequency
// transform for the full free-space geometry. The transverse axes carry
// plain unnormalized DFTs and are not oversampled; only the temporal
// axis is resampled, with its single scalar band-change factor.
//
// Spectra hold one contiguous frequency column per transverse point,
// column index c = iy*nx+ix, element (c, iω) at c*len(W)+iω.
type FreeTransform struct {
	nx, ny   int
	nw, nwo  int
	nto      int
	rs       *resample.Real
	fx, fy   *fourier.CmplxFFT
	wo       []complex128
	spec     []complex128
	la, lb   []complex128 // line gather/scatter scratch, max(nx, ny)
}

// NewFreeTransform builds the joint transform for g over an nx × ny
// transverse grid.
func NewFreeTransform(g *grid.Real, nx, ny int) (*FreeTransform, error) {
	if g == nil {
		return nil, ErrMissing
	}
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: transverse grid %d x %d", ErrShape, nx, ny)
	}
	rs, err := resample.NewReal(len(g.W), len(g.Wo))
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	nl := nx
	if ny > nl {
		nl = ny
	}
	return &FreeTransform{
		nx:   nx,
		ny:   ny,
		nw:   len(g.W),
		nwo:  len(g.Wo),
		nto:  rs.Nto(),
		rs:   rs,
		fx:   fourier.NewCmplxFFT(nx),
		fy:   fourier.NewCmplxFFT(ny),
		wo:   make([]complex128, len(g.Wo)),
		spec: make([]complex128, nx*ny*len(g.W)),
		la:   make([]complex128, nl),
		lb:   make([]complex128, nl),
	}, nil
}

// Cols returns the number of transverse points nx*ny.
func (f *FreeTransform) Cols() int { return f.nx * f.ny }

// Nto returns the oversampled time length.
func (f *FreeTransform) Nto() int { return f.nto }

// ToTime maps a native (ky, kx, ω) spectrum to the oversampled
// (y, x, t) real field.
func (f *FreeTransform) ToTime(eto []float64, ew []complex128) {
	copy(f.spec, ew)
	f.transverse(f.spec, true)
	f.rs.ToTimeN(eto, f.spec, f.wo, f.nx*f.ny)
}

// ToFreq maps an oversampled (y, x, t) real field back to the native
// (ky, kx, ω) spectrum.
func (f *FreeTransform) ToFreq(ew []complex128, pto []float64) {
	f.rs.ToFreqN(f.spec, f.wo, pto, f.nx*f.ny)
	f.transverse(f.spec, false)
	copy(ew, f.spec)
}

// transverse applies the 2D transverse DFT across all frequency bins;
// inv selects the normalized inverse (k-space to real space).
func (f *FreeTransform) transverse(d []complex128, inv bool) {
	nx, ny, nw := f.nx, f.ny, f.nw
	// x axis: stride nw between adjacent ix at fixed (iy, iω).
	if nx > 1 {
		for iy := 0; iy < ny; iy++ {
			for iw := 0; iw < nw; iw++ {
				base := iy*nx*nw + iw
				for ix := 0; ix < nx; ix++ {
					f.la[ix] = d[base+ix*nw]
				}
				f.line(f.fx, nx, inv)
				for ix := 0; ix < nx; ix++ {
					d[base+ix*nw] = f.lb[ix]
				}
			}
		}
	}
	// y axis: stride nx*nw between adjacent iy at fixed (ix, iω).
	if ny > 1 {
		for ix := 0; ix < nx; ix++ {
			for iw := 0; iw < nw; iw++ {
				base := ix*nw + iw
				for iy := 0; iy < ny; iy++ {
					f.la[iy] = d[base+iy*nx*nw]
				}
				f.line(f.fy, ny, inv)
				for iy := 0; iy < ny; iy++ {
					d[base+iy*nx*nw] = f.lb[iy]
				}
			}
		}
	}
}

func (f *FreeTransform) line(fft *fourier.CmplxFFT, n int, inv bool) {
	if inv {
		fft.Sequence(f.lb[:n], f.la[:n])
		s := complex(1/float64(n), 0)
		for i := 0; i < n; i++ {
			f.lb[i] *= s
		}
		return
	}
	fft.Coefficients(f.lb[:n], f.la[:n])
}

// Free computes the nonlinear term of a full 3D free-space field over an
// nx × ny transverse grid, using a SpatioTemporal joint transform.
//
// Field and output arrays hold one contiguous spectrum per transverse
// point, matching the FreeTransform layout; the normalization provider
// must use the same (ky, kx, ω) ordering.
type Free struct {
	nw, nto, nc int
	w           []float64
	sidx        []int
	twin        []float64
	wwin        []float64

	st   SpatioTemporal
	resp []response.Response[float64]
	dens func(z float64) float64
	norm norms.Provider
	cols []int

	eto, pto []float64
	pw       []complex128
}

// NewFree builds a free-space operator on g with the joint transform st
// over an nx × ny transverse grid.
func NewFree(g *grid.Real, st SpatioTemporal, nx, ny int, resp []response.Response[float64], dens func(z float64) float64, norm norms.Provider) (*Free, error) {
	if g == nil || st == nil || dens == nil || norm == nil {
		return nil, ErrMissing
	}
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: transverse grid %d x %d", ErrShape, nx, ny)
	}
	nc := nx * ny
	nto := len(g.To)
	cols := make([]int, nc)
	for i := range cols {
		cols[i] = i
	}
	return &Free{
		nw:   len(g.W),
		nto:  nto,
		nc:   nc,
		w:    g.W,
		sidx: g.Sidx,
		twin: g.TWin,
		wwin: g.WWin,
		st:   st,
		resp: resp,
		dens: dens,
		norm: norm,
		cols: cols,
		eto:  make([]float64, nc*nto),
		pto:  make([]float64, nc*nto),
		pw:   make([]complex128, nc*len(g.W)),
	}, nil
}

// Invoke writes the nonlinear term for the (ky, kx, ω) spectrum Ew at z
// into out.
func (t *Free) Invoke(out, Ew []complex128, z float64) {
	t.st.ToTime(t.eto, Ew)

	zeroF(t.pto)
	response.AccumulateIndexed(t.pto, t.eto, t.nto, t.cols, t.resp)
	for c := 0; c < t.nc; c++ {
		col := t.pto[c*t.nto : (c+1)*t.nto]
		for i := range col {
			col[i] *= t.twin[i]
		}
	}

	t.st.ToFreq(t.pw, t.pto)

	rho := t.dens(z)
	nrm := t.norm.Evaluate(z)
	zeroC(out)
	for c := 0; c < t.nc; c++ {
		base := c * t.nw
		for _, i := range t.sidx {
			out[base+i] = complex(0, -0.5*t.w[i]) * complex(rho*t.wwin[i]/nrm[base+i], 0) * t.pw[base+i]
		}
	}
}

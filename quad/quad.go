// Package quad provides adaptive vector-valued numerical integration for
// the modal cross-section integrals: Gauss-Kronrod 7/15 panels in one
// dimension and tensor Gauss-Kronrod panels with worst-panel bisection in
// two. The integrand is evaluated one point at a time and may return a
// vector of arbitrary fixed length.
//
// Exhausting the evaluation budget is not an error: Integrate always
// returns its best estimate together with an error bound for the caller
// to inspect.
package quad

import (
	"fmt"
	"math"
)

// Integrand evaluates the vector integrand at point x (length 1 or 2),
// writing the result into out. out is zeroed by the caller.
type Integrand func(x []float64, out []complex128)

// Options controls quadrature termination.
type Options struct {
	RTol     float64 // relative tolerance on the max-norm of the integral
	ATol     float64 // absolute tolerance
	MaxEvals int     // integrand evaluation budget; 0 means a default
}

// Result reports the outcome of an integration.
type Result struct {
	Neval     int     // integrand evaluations used
	Err       float64 // estimated max-norm error bound
	Converged bool    // whether the tolerance was met within budget
}

const defaultMaxEvals = 1_000_000

// Gauss-Kronrod 7/15 nodes and weights on [-1, 1] (QUADPACK dqk15).
// Odd-indexed Kronrod nodes plus the center are the embedded Gauss rule.
var (
	xgk = [8]float64{
		0.9914553711208126, 0.9491079123427585, 0.8648644233597691,
		0.7415311855993944, 0.5860872354676911, 0.4058451513773972,
		0.2077849550078985, 0.0,
	}
	wgk = [8]float64{
		0.0229353220105292, 0.0630920926299786, 0.1047900103222502,
		0.1406532597155259, 0.1690047266392679, 0.1903505780647854,
		0.2044329400752989, 0.2094821410847278,
	}
	wg = [4]float64{
		0.1294849661688697, 0.2797053914892767,
		0.3818300505051189, 0.4179591836734694,
	}
)

// nodes15 returns the 15 Kronrod abscissae mapped to [a, b] together with
// Kronrod and embedded Gauss weights scaled by the half-width.
func nodes15(a, b float64, x, wk, wgauss *[15]float64) {
	c := 0.5 * (a + b)
	h := 0.5 * (b - a)
	for i := 0; i < 7; i++ {
		x[i] = c - h*xgk[i]
		x[14-i] = c + h*xgk[i]
		wk[i] = h * wgk[i]
		wk[14-i] = h * wgk[i]
		wgauss[i] = 0
		wgauss[14-i] = 0
		if i%2 == 1 {
			wgauss[i] = h * wg[i/2]
			wgauss[14-i] = h * wg[i/2]
		}
	}
	x[7] = c
	wk[7] = h * wgk[7]
	wgauss[7] = h * wg[3]
}

// panel is one subdomain with its Kronrod estimate and error bound.
type panel struct {
	a, b [2]float64 // bounds per dimension; dim 1 uses index 0 only
	val  []complex128
	err  float64
}

type integrator struct {
	f     Integrand
	dim   int
	fdim  int
	neval int
	fbuf  []complex128
	x     [15]float64
	wk    [15]float64
	wgs   [15]float64
	y     [15]float64
	wky   [15]float64
	wgy   [15]float64
	pt    [2]float64
}

// eval1 computes the GK15 estimate of one 1D panel.
func (it *integrator) eval1(p *panel) {
	nodes15(p.a[0], p.b[0], &it.x, &it.wk, &it.wgs)
	k := make([]complex128, it.fdim)
	g := make([]complex128, it.fdim)
	for i := 0; i < 15; i++ {
		it.pt[0] = it.x[i]
		zero(it.fbuf)
		it.f(it.pt[:1], it.fbuf)
		it.neval++
		for j, v := range it.fbuf {
			k[j] += complex(it.wk[i], 0) * v
			g[j] += complex(it.wgs[i], 0) * v
		}
	}
	p.val = k
	p.err = maxDiff(k, g)
}

// eval2 computes the tensor GK15x15 estimate of one 2D panel.
func (it *integrator) eval2(p *panel) {
	nodes15(p.a[0], p.b[0], &it.x, &it.wk, &it.wgs)
	nodes15(p.a[1], p.b[1], &it.y, &it.wky, &it.wgy)
	k := make([]complex128, it.fdim)
	g := make([]complex128, it.fdim)
	for i := 0; i < 15; i++ {
		for j := 0; j < 15; j++ {
			it.pt[0] = it.x[i]
			it.pt[1] = it.y[j]
			zero(it.fbuf)
			it.f(it.pt[:2], it.fbuf)
			it.neval++
			wkij := it.wk[i] * it.wky[j]
			wgij := it.wgs[i] * it.wgy[j]
			for m, v := range it.fbuf {
				k[m] += complex(wkij, 0) * v
				g[m] += complex(wgij, 0) * v
			}
		}
	}
	p.val = k
	p.err = maxDiff(k, g)
}

// Integrate approximates the integral of f over the box [a, b] in dim
// dimensions (1 or 2), accumulating the fdim-component result into sum.
// sum must have length fdim and is overwritten. The returned Result
// carries the evaluation count and the error bound; the bound is valid
// even when the budget was exhausted before the tolerance was met.
func Integrate(f Integrand, a, b []float64, dim, fdim int, sum []complex128, opt Options) (Result, error) {
	if dim != 1 && dim != 2 {
		return Result{}, fmt.Errorf("quad: unsupported dimension %d", dim)
	}
	if len(a) < dim || len(b) < dim {
		return Result{}, fmt.Errorf("quad: bounds length %d, %d below dimension %d", len(a), len(b), dim)
	}
	if len(sum) != fdim {
		return Result{}, fmt.Errorf("quad: sum length %d does not match fdim %d", len(sum), fdim)
	}
	maxEvals := opt.MaxEvals
	if maxEvals <= 0 {
		maxEvals = defaultMaxEvals
	}

	it := &integrator{f: f, dim: dim, fdim: fdim, fbuf: make([]complex128, fdim)}

	root := &panel{}
	for d := 0; d < dim; d++ {
		root.a[d] = a[d]
		root.b[d] = b[d]
	}
	if dim == 1 {
		it.eval1(root)
	} else {
		it.eval2(root)
	}
	panels := []*panel{root}

	for {
		total := 0.0
		zero(sum)
		for _, p := range panels {
			total += p.err
			for j, v := range p.val {
				sum[j] += v
			}
		}
		tol := math.Max(opt.ATol, opt.RTol*maxNorm(sum))
		if total <= tol {
			return Result{Neval: it.neval, Err: total, Converged: true}, nil
		}
		if it.neval >= maxEvals {
			return Result{Neval: it.neval, Err: total, Converged: false}, nil
		}

		// Bisect the worst panel along its wider dimension.
		worst := 0
		for i, p := range panels {
			if p.err > panels[worst].err {
				worst = i
			}
		}
		p := panels[worst]
		d := 0
		if dim == 2 && p.b[1]-p.a[1] > p.b[0]-p.a[0] {
			d = 1
		}
		mid := 0.5 * (p.a[d] + p.b[d])
		left := &panel{a: p.a, b: p.b}
		right := &panel{a: p.a, b: p.b}
		left.b[d] = mid
		right.a[d] = mid
		if dim == 1 {
			it.eval1(left)
			it.eval1(right)
		} else {
			it.eval2(left)
			it.eval2(right)
		}
		panels[worst] = left
		panels = append(panels, right)
	}
}

func zero(v []complex128) {
	for i := range v {
		v[i] = 0
	}
}

func maxNorm(v []complex128) float64 {
	m := 0.0
	for _, c := range v {
		a := math.Hypot(real(c), imag(c))
		if a > m {
			m = a
		}
	}
	return m
}

func maxDiff(k, g []complex128) float64 {
	m := 0.0
	for i := range k {
		d := k[i] - g[i]
		a := math.Hypot(real(d), imag(d))
		if a > m {
			m = a
		}
	}
	return m
}

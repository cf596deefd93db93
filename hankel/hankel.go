// Package hankel implements the quasi-discrete Hankel transform of order
// zero on Bessel-zero collocation points, the radially symmetric analogue
// of a 2D Fourier transform. The transform pair follows the symmetric
// formulation of Guizar-Sicairos and Gutierrez-Vega in the plain
// wavenumber convention
//
//	g(k) = ∫ f(r) J0(kr) r dr,   f(r) = ∫ g(k) J0(kr) k dk,
//
// so forward followed by inverse recovers a band-limited input to near
// machine precision.
package hankel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// QDHT holds the collocation points, the symmetric transform core and
// the scale vectors for a transform of n points on aperture [0, R].
type QDHT struct {
	n    int
	rmax float64
	kmax float64

	r, k []float64
	j1   []float64 // |J1(j_n)| at the n interior Bessel zeros

	c *mat.Dense // symmetric core, n×n, real-valued

	// Staging for multi-column application: the complex columns split
	// into real and imaginary right-hand sides of the real core.
	sre, sim *mat.Dense
	ore, oim *mat.Dense
	ncols    int

	wr, wk []float64 // radial and spectral quadrature weights
}

// New builds an n-point order-zero QDHT on the aperture [0, rmax].
func New(rmax float64, n int) (*QDHT, error) {
	if n < 1 {
		return nil, fmt.Errorf("hankel: need at least one point, got %d", n)
	}
	if rmax <= 0 {
		return nil, fmt.Errorf("hankel: aperture %g must be positive", rmax)
	}
	roots := besselJ0Zeros(n + 1)
	s := roots[n] // j_{n+1}, the truncation zero

	q := &QDHT{
		n:    n,
		rmax: rmax,
		kmax: s / rmax,
		r:    make([]float64, n),
		k:    make([]float64, n),
		j1:   make([]float64, n),
		wr:   make([]float64, n),
		wk:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		j := roots[i]
		q.r[i] = j * rmax / s
		q.k[i] = j / rmax
		q.j1[i] = math.Abs(math.J1(j))
		q.wr[i] = 2 / (q.kmax * q.kmax * q.j1[i] * q.j1[i])
		q.wk[i] = 2 / (rmax * rmax * q.j1[i] * q.j1[i])
	}

	data := make([]float64, n*n)
	for m := 0; m < n; m++ {
		for i := 0; i < n; i++ {
			data[m*n+i] = 2 * math.J0(roots[m]*roots[i]/s) / (s * q.j1[m] * q.j1[i])
		}
	}
	q.c = mat.NewDense(n, n, data)
	return q, nil
}

// Points returns the number of collocation points.
func (q *QDHT) Points() int { return q.n }

// R returns the radial collocation points.
func (q *QDHT) R() []float64 { return q.r }

// K returns the transverse wavenumber points.
func (q *QDHT) K() []float64 { return q.k }

// RWeights returns quadrature weights w with Σ w_i f(r_i) ≈ ∫ f(r) r dr.
func (q *QDHT) RWeights() []float64 { return q.wr }

// KWeights returns quadrature weights w with Σ w_i g(k_i) ≈ ∫ g(k) k dk.
func (q *QDHT) KWeights() []float64 { return q.wk }

// Forward transforms r → k. src is viewed as an n×ncol matrix whose row
// index is the radial point, with element (m, c) at src[m*ncol+c]; dst
// has the same layout over the wavenumber points.
func (q *QDHT) Forward(dst, src []complex128, ncol int) {
	q.apply(dst, src, ncol, false)
}

// Inverse transforms k → r with the same layout as Forward.
func (q *QDHT) Inverse(dst, src []complex128, ncol int) {
	q.apply(dst, src, ncol, true)
}

// apply computes dst = m2 .* (C · (src ./ m1)) row-wise, where the scale
// vectors m1, m2 are |J1(j)|/X for the source and destination domain
// extents X.
func (q *QDHT) apply(dst, src []complex128, ncol int, fromK bool) {
	n := q.n
	if q.sre == nil || q.ncols != ncol {
		q.sre = mat.NewDense(n, ncol, nil)
		q.sim = mat.NewDense(n, ncol, nil)
		q.ore = mat.NewDense(n, ncol, nil)
		q.oim = mat.NewDense(n, ncol, nil)
		q.ncols = ncol
	}
	srcExtent, dstExtent := q.rmax, q.kmax
	if fromK {
		srcExtent, dstExtent = q.kmax, q.rmax
	}

	for m := 0; m < n; m++ {
		inv := srcExtent / q.j1[m]
		for c := 0; c < ncol; c++ {
			v := src[m*ncol+c]
			q.sre.Set(m, c, real(v)*inv)
			q.sim.Set(m, c, imag(v)*inv)
		}
	}
	q.ore.Mul(q.c, q.sre)
	q.oim.Mul(q.c, q.sim)
	for m := 0; m < n; m++ {
		sc := q.j1[m] / dstExtent
		for c := 0; c < ncol; c++ {
			dst[m*ncol+c] = complex(q.ore.At(m, c)*sc, q.oim.At(m, c)*sc)
		}
	}
}

// besselJ0Zeros returns the first n positive zeros of J0, seeded with the
// McMahon expansion and polished by Newton iteration.
func besselJ0Zeros(n int) []float64 {
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		b := (float64(i+1) - 0.25) * math.Pi
		x := b + 1/(8*b) - 4/(3*math.Pow(8*b, 3))
		for iter := 0; iter < 30; iter++ {
			f := math.J0(x)
			df := -math.J1(x)
			step := f / df
			x -= step
			if math.Abs(step) < 1e-15*x {
				break
			}
		}
		z[i] = x
	}
	return z
}

// Package grid builds the native and oversampled time-frequency grids the
// nonlinear transform operators run on. The native grid carries the
// propagated field; the oversampled grid exists only inside the nonlinear
// step, where cubic mixing generates frequencies up to three times the
// band edge and would otherwise alias back into the native band.
package grid

import (
	"fmt"
	"math"

	"github.com/waveforge/NLKernel/utils"
)

// Real is the grid for a real (carrier-resolved) field. The frequency axis
// is one-sided: W[i] = i*dW for i in [0, Nt/2], with Hermitian symmetry
// implied for negative frequencies.
type Real struct {
	T  []float64 // native time axis, length Nt (even)
	W  []float64 // native one-sided frequency axis, length Nt/2+1
	To []float64 // oversampled time axis, length ovs*Nt
	Wo []float64 // oversampled one-sided frequency axis, same spacing as W

	TWin []float64 // time apodization window, on To
	WWin []float64 // frequency window, on W

	Sidx []int // indices of W inside the physical band (0 < ω <= ωmax)

	WMax float64
}

// NewReal constructs a real-field grid covering a time span trange with a
// physical band edge wmax [rad/s] and integer oversampling factor ovs >= 1.
// The native Nyquist frequency is at least wmax; sample counts are rounded
// up to even.
func NewReal(trange, wmax float64, ovs int) (*Real, error) {
	if trange <= 0 || wmax <= 0 {
		return nil, fmt.Errorf("grid: time span %g and band edge %g must be positive", trange, wmax)
	}
	if ovs < 1 {
		return nil, fmt.Errorf("grid: oversampling factor %d must be >= 1", ovs)
	}
	dt := math.Pi / wmax
	nt := int(math.Ceil(trange / dt))
	if nt < 4 {
		nt = 4
	}
	if nt%2 != 0 {
		nt++
	}
	nto := ovs * nt

	g := &Real{WMax: wmax}
	g.T = utils.TimeAxis(trange, nt)
	g.To = utils.TimeAxis(trange, nto)

	dw := 2 * math.Pi / trange
	g.W = freqAxis(nt/2+1, dw)
	g.Wo = freqAxis(nto/2+1, dw)

	g.TWin = edgeWindow(g.To, trange)
	g.WWin = utils.PlanckTaper(g.W, -dw, 0, 0.8*wmax, wmax)

	for i, w := range g.W {
		if w > 0 && w <= wmax {
			g.Sidx = append(g.Sidx, i)
		}
	}
	return g, nil
}

// Nt returns the native time axis length.
func (g *Real) Nt() int { return len(g.T) }

// Nto returns the oversampled time axis length.
func (g *Real) Nto() int { return len(g.To) }

// Dt returns the native time sample spacing.
func (g *Real) Dt() float64 { return g.T[1] - g.T[0] }

// Dw returns the frequency sample spacing.
func (g *Real) Dw() float64 { return g.W[1] - g.W[0] }

// Env is the grid for a complex envelope field around a carrier frequency
// W0. The frequency axis is two-sided in standard FFT ordering, offset so
// that W holds absolute frequencies: W[i] = W0 + 2π*fftfreq[i].
type Env struct {
	T  []float64 // native time axis, length Nt
	W  []float64 // native two-sided frequency axis, length Nt, FFT order
	To []float64 // oversampled time axis, length ovs*Nt
	Wo []float64 // oversampled frequency axis, length ovs*Nt, FFT order

	TWin []float64 // time apodization window, on To
	WWin []float64 // frequency window, on W

	Sidx []int // indices of W with ω > 0

	W0 float64
}

// NewEnv constructs an envelope grid with nt native samples over trange,
// carrier frequency w0 [rad/s] and oversampling factor ovs >= 1.
func NewEnv(trange float64, nt int, w0 float64, ovs int) (*Env, error) {
	if trange <= 0 || w0 <= 0 {
		return nil, fmt.Errorf("grid: time span %g and carrier %g must be positive", trange, w0)
	}
	if nt < 2 {
		return nil, fmt.Errorf("grid: need at least 2 native samples, got %d", nt)
	}
	if ovs < 1 {
		return nil, fmt.Errorf("grid: oversampling factor %d must be >= 1", ovs)
	}
	nto := ovs * nt

	g := &Env{W0: w0}
	g.T = utils.TimeAxis(trange, nt)
	g.To = utils.TimeAxis(trange, nto)

	dt := trange / float64(nt)
	dto := trange / float64(nto)
	g.W = shiftFreq(utils.FFTFreq(nt, dt), w0)
	g.Wo = shiftFreq(utils.FFTFreq(nto, dto), w0)

	g.TWin = edgeWindow(g.To, trange)

	wmin, wmax := g.W[nt/2], g.W[nt/2]
	for _, w := range g.W {
		wmin = math.Min(wmin, w)
		wmax = math.Max(wmax, w)
	}
	band := wmax - wmin
	g.WWin = utils.PlanckTaper(g.W, wmin, wmin+0.1*band, wmax-0.1*band, wmax)

	for i, w := range g.W {
		if w > 0 {
			g.Sidx = append(g.Sidx, i)
		}
	}
	return g, nil
}

// Nt returns the native axis length.
func (g *Env) Nt() int { return len(g.T) }

// Nto returns the oversampled axis length.
func (g *Env) Nto() int { return len(g.To) }

func freqAxis(n int, dw float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = float64(i) * dw
	}
	return w
}

func shiftFreq(f []float64, w0 float64) []float64 {
	w := make([]float64, len(f))
	for i, fi := range f {
		w[i] = w0 + 2*math.Pi*fi
	}
	return w
}

// edgeWindow apodizes the outer 10% of the time span on each side so the
// periodic boundary does not recycle delayed response tails.
func edgeWindow(t []float64, trange float64) []float64 {
	return utils.PlanckTaper(t, -trange/2, -0.4*trange, 0.4*trange, trange/2)
}

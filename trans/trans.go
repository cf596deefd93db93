// Package trans implements the nonlinear-response transform operators:
// the per-step conversion of a frequency-domain field into the nonlinear
// source term of the propagation equation, for mode-averaged, multi-mode,
// radially symmetric and full free-space geometries.
//
// Every operator owns its scratch buffers, sized once at construction;
// invocations mutate them in place and must not overlap. One operator
// instance therefore serves exactly one propagation loop; independent
// instances are independent.
package trans

import "errors"

// Operator is the contract shared by all geometry variants: write the
// nonlinear term for the frequency-domain field Ew at position z into
// out. out is pre-sized to the native frequency shape of the geometry.
type Operator interface {
	Invoke(out, Ew []complex128, z float64)
}

// Configuration errors, surfaced synchronously at construction and never
// recovered.
var (
	ErrComponents = errors.New("trans: unsupported field component specifier")
	ErrShape      = errors.New("trans: buffer shape mismatch")
	ErrGeometry   = errors.New("trans: unsupported integration geometry")
	ErrMissing    = errors.New("trans: missing required collaborator")
)

// Components selects which transverse field components an operator
// projects.
type Components uint8

const (
	// SinglePol projects one polarization axis.
	SinglePol Components = iota
	// DualPol projects both transverse components.
	DualPol
)

func (c Components) count() (int, error) {
	switch c {
	case SinglePol:
		return 1, nil
	case DualPol:
		return 2, nil
	default:
		return 0, ErrComponents
	}
}

// HankelTransform is the radial spatial transform consumed by Radial.
// src and dst are n×ncol matrices with element (m, c) at m*ncol+c, the
// row index running over radial or wavenumber points.
type HankelTransform interface {
	Forward(dst, src []complex128, ncol int) // r → k⊥
	Inverse(dst, src []complex128, ncol int) // k⊥ → r
	K() []float64
	Points() int
}

// SpatioTemporal is the combined transverse-Fourier plus time-frequency
// transform consumed by Free. ToTime maps a native (ky, kx, ω) spectrum
// to the oversampled (y, x, t) field; ToFreq is its inverse up to the
// resampling band change.
type SpatioTemporal interface {
	ToTime(eto []float64, ew []complex128)
	ToFreq(ew []complex128, pto []float64)
}

func zeroC(v []complex128) {
	for i := range v {
		v[i] = 0
	}
}

func zeroF(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

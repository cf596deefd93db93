// Package response implements the nonlinear polarization responses and
// their accumulation into a shared polarization buffer.
package response

// Scalar constrains the time-domain sample type: float64 for a
// carrier-resolved real field, complex128 for an analytic envelope.
type Scalar interface {
	~float64 | ~complex128
}

// Response contributes one nonlinear polarization term. Apply must add
// into pt; the caller zeroes pt before the first response of a pass.
// Implementations may keep internal scratch but must reset it on every
// call, so that consecutive calls on independent columns do not couple.
type Response[T Scalar] interface {
	Apply(pt, et []T)
}

// Accumulate applies each response in order, summing contributions into
// pt. pt must be zeroed by the caller beforehand.
func Accumulate[T Scalar](pt, et []T, resps []Response[T]) {
	for _, r := range resps {
		r.Apply(pt, et)
	}
}

// AccumulateIndexed applies the full response list independently to the
// columns listed in cols. pt and et hold contiguous columns of length n;
// column c occupies [c*n, (c+1)*n). Each column is treated as an
// independent temporal signal, which keeps responses with time-axis
// internal state (e.g. plasma) from leaking across modal or radial
// channels.
func AccumulateIndexed[T Scalar](pt, et []T, n int, cols []int, resps []Response[T]) {
	for _, c := range cols {
		lo := c * n
		Accumulate(pt[lo:lo+n], et[lo:lo+n], resps)
	}
}

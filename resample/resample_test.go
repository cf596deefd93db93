package resample

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

const tol = 1e-12

func TestRealRoundTrip(t *testing.T) {
	n, no := 129, 513
	rs, err := NewReal(n, no)
	if err != nil {
		t.Fatalf("NewReal failed: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	w := make([]complex128, n)
	for i := range w {
		w[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	// DC of a real signal carries no phase.
	w[0] = complex(real(w[0]), 0)
	w[n-1] = complex(real(w[n-1]), 0)

	to := make([]float64, rs.Nto())
	wo := make([]complex128, no)
	back := make([]complex128, n)

	rs.ToTime(to, w, wo)
	rs.ToFreq(back, wo, to)

	for i := range w {
		if cmplx.Abs(back[i]-w[i]) > tol*(1+cmplx.Abs(w[i])) {
			t.Fatalf("bin %d: got %v, want %v", i, back[i], w[i])
		}
	}
}

func TestRealScaleFactor(t *testing.T) {
	n, no := 65, 257
	rs, _ := NewReal(n, no)
	w := make([]complex128, n)
	w[3] = 2 + 1i
	wo := make([]complex128, no)
	rs.CopyScale(wo, w)

	want := complex(float64(no-1)/float64(n-1), 0) * w[3]
	if cmplx.Abs(wo[3]-want) > tol {
		t.Errorf("scaled bin: got %v, want %v", wo[3], want)
	}
	for i := n; i < no; i++ {
		if wo[i] != 0 {
			t.Fatalf("padded bin %d not zero: %v", i, wo[i])
		}
	}
}

func TestEnvRoundTrip(t *testing.T) {
	n, no := 128, 512
	rs, err := NewEnv(n, no)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	w := make([]complex128, n)
	for i := range w {
		w[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	to := make([]complex128, rs.Nto())
	wo := make([]complex128, no)
	back := make([]complex128, n)

	rs.ToTime(to, w, wo)
	rs.ToFreq(back, wo, to)

	for i := range w {
		if cmplx.Abs(back[i]-w[i]) > tol*(1+cmplx.Abs(w[i])) {
			t.Fatalf("bin %d: got %v, want %v", i, back[i], w[i])
		}
	}
}

// The two-sided copy must place the leading half at the start of the
// oversampled array and the trailing half at its end, never a contiguous
// prefix.
func TestEnvCopyBothEnds(t *testing.T) {
	n, no := 8, 20
	rs, _ := NewEnv(n, no)

	w := make([]complex128, n)
	for i := range w {
		w[i] = complex(float64(i+1), 0)
	}
	wo := make([]complex128, no)
	rs.CopyScale(wo, w)

	s := float64(no) / float64(n)
	for i := 0; i < 4; i++ {
		want := complex(s*float64(i+1), 0)
		if cmplx.Abs(wo[i]-want) > tol {
			t.Errorf("leading bin %d: got %v, want %v", i, wo[i], want)
		}
	}
	for i := 0; i < 4; i++ {
		want := complex(s*float64(n-i), 0)
		if cmplx.Abs(wo[no-1-i]-want) > tol {
			t.Errorf("trailing bin %d: got %v, want %v", no-1-i, wo[no-1-i], want)
		}
	}
	for i := 4; i < no-4; i++ {
		if wo[i] != 0 {
			t.Fatalf("inserted bin %d not zero: %v", i, wo[i])
		}
	}

	back := make([]complex128, n)
	rs.CopyBack(back, wo)
	for i := range w {
		if cmplx.Abs(back[i]-w[i]) > tol {
			t.Errorf("copy-back bin %d: got %v, want %v", i, back[i], w[i])
		}
	}
}

// A DC-only native axis must not fault: the zero-frequency bin is copied
// through both-ends logic transparently.
func TestEnvSingleBin(t *testing.T) {
	rs, err := NewEnv(1, 16)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}
	w := []complex128{3 + 4i}
	wo := make([]complex128, 16)
	rs.CopyScale(wo, w)
	if cmplx.Abs(wo[0]-complex(48, 64)) > tol {
		t.Errorf("DC bin: got %v, want %v", wo[0], complex(48, 64))
	}
	for i := 1; i < 16; i++ {
		if wo[i] != 0 {
			t.Fatalf("bin %d not zero", i)
		}
	}
}

func TestRealMultiColumn(t *testing.T) {
	n, no, ncol := 33, 65, 3
	rs, _ := NewReal(n, no)

	rng := rand.New(rand.NewSource(3))
	w := make([]complex128, ncol*n)
	for i := range w {
		w[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	for c := 0; c < ncol; c++ {
		w[c*n] = complex(real(w[c*n]), 0)
		w[c*n+n-1] = complex(real(w[c*n+n-1]), 0)
	}

	to := make([]float64, ncol*rs.Nto())
	wo := make([]complex128, no)
	back := make([]complex128, ncol*n)
	rs.ToTimeN(to, w, wo, ncol)
	rs.ToFreqN(back, wo, to, ncol)

	// Columns must round-trip independently and exactly.
	for i := range w {
		if cmplx.Abs(back[i]-w[i]) > tol*(1+cmplx.Abs(w[i])) {
			t.Fatalf("element %d: got %v, want %v", i, back[i], w[i])
		}
	}

	// Cross-check one column against the single-column path.
	to1 := make([]float64, rs.Nto())
	rs.ToTime(to1, w[n:2*n], wo)
	for i := range to1 {
		if math.Abs(to1[i]-to[rs.Nto()+i]) > tol {
			t.Fatalf("column 1 sample %d differs from single-column path", i)
		}
	}
}

func TestNewRealRejectsBadShapes(t *testing.T) {
	if _, err := NewReal(1, 8); err == nil {
		t.Error("expected error for native length 1")
	}
	if _, err := NewReal(16, 8); err == nil {
		t.Error("expected error for oversampled shorter than native")
	}
	if _, err := NewEnv(16, 8); err == nil {
		t.Error("expected error for oversampled shorter than native")
	}
}

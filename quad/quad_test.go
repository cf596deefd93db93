package quad

import (
	"math"
	"testing"
)

func TestIntegrate1DPolynomial(t *testing.T) {
	// GK15 integrates low-order polynomials exactly.
	f := func(x []float64, out []complex128) {
		out[0] = complex(x[0]*x[0]*x[0]-2*x[0], 0)
	}
	sum := make([]complex128, 1)
	res, err := Integrate(f, []float64{0}, []float64{2}, 1, 1, sum, Options{RTol: 1e-10})
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if !res.Converged {
		t.Error("polynomial integral did not converge")
	}
	want := 0.0 // ∫₀² (x³-2x) dx = 4 - 4
	if math.Abs(real(sum[0])-want) > 1e-12 {
		t.Errorf("got %g, want %g", real(sum[0]), want)
	}
}

func TestIntegrate1DOscillatory(t *testing.T) {
	f := func(x []float64, out []complex128) {
		out[0] = complex(math.Sin(50*x[0]), 0)
	}
	sum := make([]complex128, 1)
	res, err := Integrate(f, []float64{0}, []float64{math.Pi}, 1, 1, sum, Options{RTol: 1e-9, ATol: 1e-12, MaxEvals: 100000})
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	want := (1 - math.Cos(50*math.Pi)) / 50
	if math.Abs(real(sum[0])-want) > 1e-8 {
		t.Errorf("got %.12g, want %.12g (err bound %g, %d evals)", real(sum[0]), want, res.Err, res.Neval)
	}
}

func TestIntegrateVector(t *testing.T) {
	// Two components integrated in one pass must match separate passes.
	f := func(x []float64, out []complex128) {
		out[0] = complex(math.Exp(-x[0]*x[0]), 0)
		out[1] = complex(0, x[0])
	}
	sum := make([]complex128, 2)
	_, err := Integrate(f, []float64{0}, []float64{3}, 1, 2, sum, Options{RTol: 1e-10})
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	wantErf := 0.5 * math.Sqrt(math.Pi) * math.Erf(3)
	if math.Abs(real(sum[0])-wantErf) > 1e-9 {
		t.Errorf("component 0: got %g, want %g", real(sum[0]), wantErf)
	}
	if math.Abs(imag(sum[1])-4.5) > 1e-10 {
		t.Errorf("component 1: got %g, want 4.5", imag(sum[1]))
	}
}

func TestIntegrate2D(t *testing.T) {
	// ∫₀¹∫₀² x²y dy dx = (1/3)(2) = 2/3.
	f := func(x []float64, out []complex128) {
		out[0] = complex(x[0]*x[0]*x[1], 0)
	}
	sum := make([]complex128, 1)
	res, err := Integrate(f, []float64{0, 0}, []float64{1, 2}, 2, 1, sum, Options{RTol: 1e-10})
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if !res.Converged {
		t.Error("2D polynomial did not converge")
	}
	if math.Abs(real(sum[0])-2.0/3.0) > 1e-10 {
		t.Errorf("got %g, want %g", real(sum[0]), 2.0/3.0)
	}
}

func TestBudgetExhaustionReturnsEstimate(t *testing.T) {
	f := func(x []float64, out []complex128) {
		out[0] = complex(math.Sin(500*x[0])*math.Cos(313*x[0]), 0)
	}
	sum := make([]complex128, 1)
	res, err := Integrate(f, []float64{0}, []float64{1}, 1, 1, sum, Options{RTol: 1e-14, ATol: 0, MaxEvals: 200})
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if res.Converged {
		t.Error("tight tolerance with tiny budget should not converge")
	}
	if res.Neval < 200 {
		t.Errorf("stopped after %d evaluations with budget unspent", res.Neval)
	}
	if res.Err <= 0 {
		t.Error("error bound must be positive for the unconverged estimate")
	}
	if math.IsNaN(real(sum[0])) {
		t.Error("estimate must still be a number")
	}
}

func TestIntegrateRejectsBadConfig(t *testing.T) {
	f := func(x []float64, out []complex128) { out[0] = 1 }
	if _, err := Integrate(f, []float64{0, 0, 0}, []float64{1, 1, 1}, 3, 1, make([]complex128, 1), Options{}); err == nil {
		t.Error("expected error for dimension 3")
	}
	if _, err := Integrate(f, []float64{0}, []float64{1}, 1, 2, make([]complex128, 1), Options{}); err == nil {
		t.Error("expected error for sum length mismatch")
	}
}

package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRealAxes(t *testing.T) {
	trange := 500e-15
	wmax := 3e15
	g, err := NewReal(trange, wmax, 4)
	require.NoError(t, err)

	nt := g.Nt()
	assert.Equal(t, 0, nt%2, "native sample count must be even")
	assert.Equal(t, 4*nt, g.Nto())
	assert.Equal(t, nt/2+1, len(g.W))
	assert.Equal(t, 4*nt/2+1, len(g.Wo))

	// Nyquist at or above the band edge.
	assert.GreaterOrEqual(t, math.Pi/g.Dt(), wmax)

	// Same frequency spacing on both axes.
	dw := 2 * math.Pi / trange
	assert.InDelta(t, dw, g.W[1]-g.W[0], dw*1e-12)
	assert.InDelta(t, dw, g.Wo[1]-g.Wo[0], dw*1e-12)

	// Uniform time axis spanning trange.
	dt := g.Dt()
	for i := 1; i < nt; i++ {
		assert.InDelta(t, dt, g.T[i]-g.T[i-1], dt*1e-9)
	}
	assert.InDelta(t, trange, g.T[nt-1]-g.T[0]+dt, trange*1e-12)
}

func TestNewRealBand(t *testing.T) {
	g, err := NewReal(400e-15, 2.5e15, 2)
	require.NoError(t, err)

	valid := make(map[int]bool, len(g.Sidx))
	for _, i := range g.Sidx {
		require.Greater(t, g.W[i], 0.0)
		require.LessOrEqual(t, g.W[i], g.WMax)
		valid[i] = true
	}
	for i, w := range g.W {
		if w > 0 && w <= g.WMax {
			assert.True(t, valid[i], "in-band index %d missing", i)
		}
	}
	// DC is never part of the physical band.
	assert.False(t, valid[0])
}

func TestRealWindows(t *testing.T) {
	g, err := NewReal(400e-15, 2.5e15, 2)
	require.NoError(t, err)

	require.Equal(t, g.Nto(), len(g.TWin))
	require.Equal(t, len(g.W), len(g.WWin))

	for i, v := range g.TWin {
		require.GreaterOrEqual(t, v, 0.0, "TWin[%d]", i)
		require.LessOrEqual(t, v, 1.0, "TWin[%d]", i)
	}
	// Unity in the central half, rolled off at the edges.
	mid := g.Nto() / 2
	assert.InDelta(t, 1.0, g.TWin[mid], 1e-12)
	assert.Less(t, g.TWin[0], 1e-6)
	assert.Less(t, g.TWin[g.Nto()-1], 1e-6)

	for i, w := range g.W {
		switch {
		case w <= 0.8*g.WMax:
			assert.InDelta(t, 1.0, g.WWin[i], 1e-12, "WWin at w=%g", w)
		case w >= g.WMax:
			assert.InDelta(t, 0.0, g.WWin[i], 1e-12, "WWin at w=%g", w)
		default:
			assert.GreaterOrEqual(t, g.WWin[i], 0.0)
			assert.LessOrEqual(t, g.WWin[i], 1.0)
		}
	}
}

func TestNewRealRejects(t *testing.T) {
	if _, err := NewReal(-1, 1e15, 2); err == nil {
		t.Error("expected error for negative span")
	}
	if _, err := NewReal(500e-15, 0, 2); err == nil {
		t.Error("expected error for zero band edge")
	}
	if _, err := NewReal(500e-15, 1e15, 0); err == nil {
		t.Error("expected error for zero oversampling")
	}
}

func TestNewEnvAxes(t *testing.T) {
	w0 := 2.4e15
	g, err := NewEnv(300e-15, 256, w0, 3)
	require.NoError(t, err)

	assert.Equal(t, 256, g.Nt())
	assert.Equal(t, 768, g.Nto())
	assert.Equal(t, 256, len(g.W))
	assert.Equal(t, 768, len(g.Wo))

	// Bin zero sits on the carrier; the axis is FFT-ordered around it.
	assert.InDelta(t, w0, g.W[0], w0*1e-12)
	dw := 2 * math.Pi / 300e-15
	assert.InDelta(t, w0+dw, g.W[1], w0*1e-12)
	assert.Less(t, g.W[g.Nt()-1], w0)

	for _, i := range g.Sidx {
		assert.Greater(t, g.W[i], 0.0)
	}
}

func TestNewEnvRejects(t *testing.T) {
	if _, err := NewEnv(300e-15, 1, 2.4e15, 2); err == nil {
		t.Error("expected error for a single sample")
	}
	if _, err := NewEnv(300e-15, 256, -2.4e15, 2); err == nil {
		t.Error("expected error for negative carrier")
	}
}

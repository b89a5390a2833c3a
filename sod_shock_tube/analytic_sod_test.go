package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSOD(t *testing.T) {
	rp := NewSod(0.5)
	{ // Star region
		assert.InDelta(t, 0.30313, rp.PStar, 1.e-5)
		assert.InDelta(t, 0.92745, rp.UStar, 1.e-5)
		rhoL, rhoR := rp.StarDensities()
		assert.InDelta(t, 0.42632, rhoL, 1.e-5)
		assert.InDelta(t, 0.26557, rhoR, 1.e-5)
		speeds := rp.WaveSpeeds()
		require.Len(t, speeds, 4)
		assert.InDelta(t, -math.Sqrt(1.4), speeds[0], 1.e-12)
		assert.InDelta(t, 1.75216, speeds[3], 1.e-4)
	}
	{ // Sampled profile against reference points at t = 0.1
		xCheck := []float64{0, 0.3815784043380077, 0.40393726721915907, 0.4595844244220375,
			0.4818432873031888, 0.5926452620047974, 0.5928452620047974, 0.675115573202932, 0.675315573202932, 1}
		rhoCheck := []float64{1, 1, 0.852758969991083, 0.5592293765210307,
			0.467449846536279, 0.4263194281781805, 0.26557371170513905, 0.26557371170513905, 0.125, 0.125}
		Rho, _, _, _ := rp.Profile(xCheck, 0.1)
		assert.True(t, isNear(rhoCheck, Rho, 0.001))
	}
	{ // Shock position
		X, Rho, _, _, _ := SOD_calc(0.1)
		x4 := X[len(X)-2]
		assert.True(t, math.Abs(x4-0.6752) < 0.0001)
		assert.Equal(t, 0.125, Rho[len(Rho)-1])
		X, _, _, _, _ = SOD_calc(0.2)
		x4 = X[len(X)-2]
		assert.True(t, math.Abs(x4-0.8504) < 0.0001)
		for i := 1; i < len(X); i++ {
			assert.Greater(t, X[i], X[i-1])
		}
	}
	{ // Initial data
		Rho, P, U, E := rp.Profile([]float64{0.25, 0.75}, 0)
		assert.Equal(t, []float64{1, 0.125}, Rho)
		assert.Equal(t, []float64{1, 0.1}, P)
		assert.Equal(t, []float64{0, 0}, U)
		assert.InDelta(t, 2.5, E[0], 1.e-12)
	}
}

func TestRiemannProblem(t *testing.T) {
	{ // The mirrored problem has the mirrored solution
		rp, err := NewRiemannProblem(State{Rho: 0.125, P: 0.1}, State{Rho: 1, P: 1}, 1.4, 0)
		require.NoError(t, err)
		sod := NewSod(0)
		assert.InDelta(t, sod.PStar, rp.PStar, 1.e-12)
		assert.InDelta(t, -sod.UStar, rp.UStar, 1.e-12)
		for _, S := range []float64{-2, -1.5, -0.7, -0.2, 0.3, 0.9, 1.1, 1.9} {
			a, b := sod.Sample(S), rp.Sample(-S)
			assert.InDelta(t, a.Rho, b.Rho, 1.e-12)
			assert.InDelta(t, a.P, b.P, 1.e-12)
			assert.InDelta(t, a.U, -b.U, 1.e-12)
		}
	}
	{ // Two rarefactions
		rp, err := NewRiemannProblem(State{Rho: 1, U: -2, P: 0.4}, State{Rho: 1, U: 2, P: 0.4}, 1.4, 0)
		require.NoError(t, err)
		assert.InDelta(t, 0.00189, rp.PStar, 1.e-5)
		assert.InDelta(t, 0., rp.UStar, 1.e-12)
		assert.Len(t, rp.WaveSpeeds(), 5)
	}
	{ // Two shocks
		rp, err := NewRiemannProblem(State{Rho: 5.99924, U: 19.5975, P: 460.894},
			State{Rho: 5.99242, U: -6.19633, P: 46.095}, 1.4, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1691.64, rp.PStar, 0.01)
		assert.InDelta(t, 8.68975, rp.UStar, 1.e-4)
		assert.Len(t, rp.WaveSpeeds(), 3)
	}
	{ // Invalid input
		_, err := NewRiemannProblem(State{Rho: 1, U: -20, P: 0.4}, State{Rho: 1, U: 20, P: 0.4}, 1.4, 0)
		assert.Error(t, err)
		_, err = NewRiemannProblem(State{Rho: 0, P: 1}, State{Rho: 1, P: 1}, 1.4, 0)
		assert.Error(t, err)
		_, err = NewRiemannProblem(State{Rho: 1, P: 1}, State{Rho: 1, P: 1}, 1, 0)
		assert.Error(t, err)
	}
}

func isNear(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, val := range a {
		if math.Abs(b[i]-val) > tol {
			return false
		}
	}
	return true
}

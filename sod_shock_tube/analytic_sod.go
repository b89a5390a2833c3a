package sod_shock_tube

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/fvhydro/utils"
)

// State is a 1D primitive state
type State struct {
	Rho, U, P float64
}

/*
RiemannProblem is the exact solution of the 1D Euler equations for a single initial
discontinuity at X0, found by a Newton iteration on the star region pressure. The
solution is self similar, so it is sampled in terms of S = (x - X0)/t.
*/
type RiemannProblem struct {
	Left, Right  State
	Gamma, X0    float64
	PStar, UStar float64
	cl, cr       float64
}

func NewRiemannProblem(left, right State, gamma, x0 float64) (rp *RiemannProblem, err error) {
	if !(gamma > 1) {
		err = fmt.Errorf("gamma must be > 1, have %g", gamma)
		return
	}
	for _, s := range []State{left, right} {
		if !(s.Rho > 0 && s.P > 0) {
			err = fmt.Errorf("density and pressure must be positive, have %+v", s)
			return
		}
	}
	rp = &RiemannProblem{Left: left, Right: right, Gamma: gamma, X0: x0}
	rp.cl = math.Sqrt(gamma * left.P / left.Rho)
	rp.cr = math.Sqrt(gamma * right.P / right.Rho)
	// pressure positivity condition
	if 2*(rp.cl+rp.cr)/(gamma-1) <= right.U-left.U {
		err = fmt.Errorf("initial states generate vacuum")
		return nil, err
	}
	if err = rp.solveStar(); err != nil {
		return nil, err
	}
	return
}

// waveFunction returns Toro's f_K(p) and its derivative for one side
func (rp *RiemannProblem) waveFunction(p float64, s State, c float64) (f, df float64) {
	g := rp.Gamma
	if p > s.P { // shock
		var (
			A = 2 / ((g + 1) * s.Rho)
			B = (g - 1) / (g + 1) * s.P
			q = math.Sqrt(A / (B + p))
		)
		f = (p - s.P) * q
		df = q * (1 - 0.5*(p-s.P)/(B+p))
		return
	}
	// rarefaction
	pr := p / s.P
	f = 2 * c / (g - 1) * (math.Pow(pr, (g-1)/(2*g)) - 1)
	df = 1 / (s.Rho * c) * math.Pow(pr, -(g+1)/(2*g))
	return
}

func (rp *RiemannProblem) solveStar() (err error) {
	var (
		L, R = rp.Left, rp.Right
		du   = R.U - L.U
		tol  = 1.e-14
		p    = math.Max(tol, 0.5*(L.P+R.P)-0.125*du*(L.Rho+R.Rho)*(rp.cl+rp.cr))
	)
	for iter := 0; iter < 100; iter++ {
		fl, dfl := rp.waveFunction(p, L, rp.cl)
		fr, dfr := rp.waveFunction(p, R, rp.cr)
		pNew := p - (fl+fr+du)/(dfl+dfr)
		if pNew < 0 {
			pNew = tol
		}
		change := 2 * math.Abs(pNew-p) / (pNew + p)
		p = pNew
		if change < tol {
			fl, _ = rp.waveFunction(p, L, rp.cl)
			fr, _ = rp.waveFunction(p, R, rp.cr)
			rp.PStar = p
			rp.UStar = 0.5*(L.U+R.U) + 0.5*(fr-fl)
			return
		}
	}
	err = fmt.Errorf("star pressure iteration did not converge, last p = %g", p)
	return
}

// StarDensities returns the density left and right of the contact
func (rp *RiemannProblem) StarDensities() (rhoL, rhoR float64) {
	starRho := func(s State) float64 {
		var (
			g  = rp.Gamma
			g6 = (g - 1) / (g + 1)
			pr = rp.PStar / s.P
		)
		if pr > 1 {
			return s.Rho * (pr + g6) / (g6*pr + 1)
		}
		return s.Rho * math.Pow(pr, 1/g)
	}
	return starRho(rp.Left), starRho(rp.Right)
}

// WaveSpeeds returns the speeds of every wave edge in increasing order: a shock contributes
// one speed, a rarefaction its head and tail, plus the contact.
func (rp *RiemannProblem) WaveSpeeds() (speeds []float64) {
	var (
		g  = rp.Gamma
		g1 = (g - 1) / (2 * g)
		g2 = (g + 1) / (2 * g)
		L  = rp.Left
		R  = rp.Right
	)
	if rp.PStar > L.P {
		speeds = append(speeds, L.U-rp.cl*math.Sqrt(g2*rp.PStar/L.P+g1))
	} else {
		speeds = append(speeds, L.U-rp.cl, rp.UStar-rp.cl*math.Pow(rp.PStar/L.P, g1))
	}
	speeds = append(speeds, rp.UStar)
	if rp.PStar > R.P {
		speeds = append(speeds, R.U+rp.cr*math.Sqrt(g2*rp.PStar/R.P+g1))
	} else {
		speeds = append(speeds, rp.UStar+rp.cr*math.Pow(rp.PStar/R.P, g1), R.U+rp.cr)
	}
	sort.Float64s(speeds)
	return
}

// Sample returns the solution state at similarity coordinate S = (x - X0)/t
func (rp *RiemannProblem) Sample(S float64) State {
	var (
		g  = rp.Gamma
		g1 = (g - 1) / (2 * g)
		g2 = (g + 1) / (2 * g)
		g5 = 2 / (g + 1)
		g7 = (g - 1) / 2
		L  = rp.Left
		R  = rp.Right
		ps = rp.PStar
		us = rp.UStar
	)
	rhoL, rhoR := rp.StarDensities()
	if S <= us {
		if ps > L.P {
			if S <= L.U-rp.cl*math.Sqrt(g2*ps/L.P+g1) {
				return L
			}
			return State{Rho: rhoL, U: us, P: ps}
		}
		if S <= L.U-rp.cl {
			return L
		}
		if S > us-rp.cl*math.Pow(ps/L.P, g1) {
			return State{Rho: rhoL, U: us, P: ps}
		}
		c := g5 * (rp.cl + g7*(L.U-S))
		return State{
			Rho: L.Rho * math.Pow(c/rp.cl, 2/(g-1)),
			U:   g5 * (rp.cl + g7*L.U + S),
			P:   L.P * math.Pow(c/rp.cl, 2*g/(g-1)),
		}
	}
	if ps > R.P {
		if S >= R.U+rp.cr*math.Sqrt(g2*ps/R.P+g1) {
			return R
		}
		return State{Rho: rhoR, U: us, P: ps}
	}
	if S >= R.U+rp.cr {
		return R
	}
	if S <= us+rp.cr*math.Pow(ps/R.P, g1) {
		return State{Rho: rhoR, U: us, P: ps}
	}
	c := g5 * (rp.cr - g7*(R.U-S))
	return State{
		Rho: R.Rho * math.Pow(c/rp.cr, 2/(g-1)),
		U:   g5 * (-rp.cr + g7*R.U + S),
		P:   R.P * math.Pow(c/rp.cr, 2*g/(g-1)),
	}
}

// Profile samples the solution at time t on the points X. E is the specific internal energy.
func (rp *RiemannProblem) Profile(X []float64, t float64) (Rho, P, U, E []float64) {
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		var s State
		if t <= 0 {
			s = rp.Left
			if x > rp.X0 {
				s = rp.Right
			}
		} else {
			s = rp.Sample((x - rp.X0) / t)
		}
		Rho[i], P[i], U[i] = s.Rho, s.P, s.U
		E[i] = s.P / ((rp.Gamma - 1.) * s.Rho)
	}
	return
}

// Breakpoints returns the domain ends and both sides of every wave edge at time t
func (rp *RiemannProblem) Breakpoints(xmin, xmax, t float64) (X []float64) {
	tol := 1.e-8
	X = append(X, xmin)
	for _, s := range rp.WaveSpeeds() {
		x := rp.X0 + s*t
		if x > xmin && x < xmax {
			X = append(X, x-tol, x+tol)
		}
	}
	X = append(X, xmax)
	return
}

func NewSod(x0 float64) *RiemannProblem {
	rp, err := NewRiemannProblem(State{Rho: 1, P: 1}, State{Rho: 0.125, P: 0.1}, 1.4, x0)
	if err != nil {
		panic(err)
	}
	return rp
}

// SOD_calc returns the Sod solution on [0,1] at time t: breakpoints, then 20 points
// across the rarefaction fan
func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	rp := NewSod(0.5)
	X = rp.Breakpoints(0, 1, t)
	speeds := rp.WaveSpeeds()
	fan := utils.Linspace(rp.X0+speeds[0]*t, rp.X0+speeds[1]*t, 20)
	X = append(X, fan[1:len(fan)-1]...)
	sort.Float64s(X)
	Rho, P, U, E = rp.Profile(X, t)
	return
}

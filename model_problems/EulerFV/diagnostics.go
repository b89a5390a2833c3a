package EulerFV

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro"
	"github.com/notargets/fvhydro/sod_shock_tube"
	"github.com/notargets/fvhydro/types"
)

// DensityProfile returns cell centers and densities along x1 through the middle of the block
func (c *EulerFV) DensityProfile() (X, Rho []float64) {
	var (
		is   = c.Block.CellBounds
		ib   = is.GetBoundsI(block.Interior)
		jb   = is.GetBoundsJ(block.Interior)
		kb   = is.GetBoundsK(block.Interior)
		cons = c.Block.Data.Get(hydro.ConsName).Data
		row  = cons.Row(types.IDN, (kb.S+kb.E)/2, (jb.S+jb.E)/2)
	)
	X = make([]float64, ib.Len())
	Rho = make([]float64, ib.Len())
	for i := range X {
		X[i] = c.Block.Coords.Xc(types.X1DIR, ib.S+i)
	}
	copy(Rho, row[ib.S:ib.E+1])
	return
}

// ConservedTotals integrates each conserved variable over the interior
func (c *EulerFV) ConservedTotals() (totals [types.NHYDRO]float64) {
	var (
		is   = c.Block.CellBounds
		ib   = is.GetBoundsI(block.Interior)
		jb   = is.GetBoundsJ(block.Interior)
		kb   = is.GetBoundsK(block.Interior)
		cons = c.Block.Data.Get(hydro.ConsName).Data
		vol  = c.Block.Coords.CellVolume()
	)
	for n := range totals {
		for k := kb.S; k <= kb.E; k++ {
			for j := jb.S; j <= jb.E; j++ {
				totals[n] += floats.Sum(cons.Row(n, k, j)[ib.S:ib.E+1])
			}
		}
		totals[n] *= vol
	}
	return
}

// SodError is the mean absolute density error along x1 against the exact Riemann solution at the current time
func (c *EulerFV) SodError() (l1 float64, err error) {
	if c.Problem != PROBLEM_Sod {
		err = fmt.Errorf("no exact solution for problem %s", c.Problem.Print())
		return
	}
	var (
		uc    = c.Block.Coords
		x0    = 0.5 * (uc.XMin[0] + uc.XMax[0])
		left  = sod_shock_tube.State{Rho: SodLeft[types.IDN], U: SodLeft[types.IVX], P: SodLeft[types.IPR]}
		right = sod_shock_tube.State{Rho: SodRight[types.IDN], U: SodRight[types.IVX], P: SodRight[types.IPR]}
		rp    *sod_shock_tube.RiemannProblem
	)
	if rp, err = sod_shock_tube.NewRiemannProblem(left, right, c.Hydro.EOS.Gamma(), x0); err != nil {
		return
	}
	X, Rho := c.DensityProfile()
	exact, _, _, _ := rp.Profile(X, c.Time)
	l1 = floats.Distance(Rho, exact, 1) / float64(len(X))
	return
}

// DensityPlot renders the x1 density profile as a terminal chart
func (c *EulerFV) DensityPlot() string {
	_, Rho := c.DensityProfile()
	return asciigraph.Plot(Rho,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("density, %s, t = %.4f", c.Problem.Print(), c.Time)),
	)
}

package EulerFV

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro"
	"github.com/notargets/fvhydro/types"
)

type ProblemType uint8

const (
	PROBLEM_Sod ProblemType = iota
	PROBLEM_Uniform
	PROBLEM_DensityWave
)

var (
	ProblemNames = map[string]ProblemType{
		"sod":         PROBLEM_Sod,
		"shocktube":   PROBLEM_Sod,
		"uniform":     PROBLEM_Uniform,
		"freestream":  PROBLEM_Uniform,
		"densitywave": PROBLEM_DensityWave,
		"wave":        PROBLEM_DensityWave,
	}
	ProblemPrintNames = []string{"Sod Shock Tube", "Uniform Flow", "Density Wave"}
)

func (pt ProblemType) Print() string {
	if int(pt) < len(ProblemPrintNames) {
		return ProblemPrintNames[pt]
	}
	return fmt.Sprintf("ProblemType(%d)", pt)
}

func (pt ProblemType) String() string { return pt.Print() }

func NewProblemType(label string) (pt ProblemType, err error) {
	var ok bool
	if pt, ok = ProblemNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown problem %q", label)
	}
	return
}

// Sod shock tube states, left of the midpoint then right
var (
	SodLeft  = [types.NHYDRO]float64{1, 0, 0, 0, 1}
	SodRight = [types.NHYDRO]float64{0.125, 0, 0, 0, 0.1}
)

const (
	densityWaveAmplitude = 0.2
	uniformVelocity      = 0.5
)

// InitialState is the primitive state of the problem at position x
func (pt ProblemType) InitialState(x, xmin, xmax [3]float64) (w [types.NHYDRO]float64) {
	switch pt {
	case PROBLEM_Sod:
		if x[0] < 0.5*(xmin[0]+xmax[0]) {
			return SodLeft
		}
		return SodRight
	case PROBLEM_DensityWave:
		phase := 2 * math.Pi * (x[0] - xmin[0]) / (xmax[0] - xmin[0])
		w = [types.NHYDRO]float64{1 + densityWaveAmplitude*math.Sin(phase), 1, 0, 0, 1}
	default:
		w = [types.NHYDRO]float64{1, uniformVelocity, 0, 0, 1}
	}
	return
}

// DefaultBCs sets the boundary types a problem needs on faces the input left unnamed
func (pt ProblemType) DefaultBCs(bcs *[6]types.BCFLAG, named map[string]string) {
	if pt != PROBLEM_DensityWave {
		return
	}
	for _, face := range []string{"ix1", "ox1"} {
		if _, ok := named[face]; !ok {
			bcs[types.BoundaryFaceNames[face]] = types.BC_Periodic
		}
	}
}

// InitializeProblem writes the initial primitive state everywhere, ghosts included, and
// derives the conserved state from it
func (c *EulerFV) InitializeProblem() {
	var (
		pmb  = c.Block
		is   = pmb.CellBounds
		prim = pmb.Data.Get(hydro.PrimName).Data
		cons = pmb.Data.Get(hydro.ConsName).Data
		uc   = pmb.Coords
		ib   = is.GetBoundsI(block.Entire)
		jb   = is.GetBoundsJ(block.Entire)
		kb   = is.GetBoundsK(block.Entire)
	)
	pmb.ParFor(kb, jb, func(k, j int) {
		for i := ib.S; i <= ib.E; i++ {
			x := [3]float64{uc.Xc(types.X1DIR, i), uc.Xc(types.X2DIR, j), uc.Xc(types.X3DIR, k)}
			prim.SetCell(k, j, i, c.Problem.InitialState(x, uc.XMin, uc.XMax))
		}
	})
	c.Hydro.EOS.PrimitiveToConserved(pmb, prim, cons, ib, jb, kb)
	c.Time, c.Cycle = 0, 0
}

package EulerFV

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/fvhydro/InputParameters"
	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro"
	"github.com/notargets/fvhydro/refinement"
	"github.com/notargets/fvhydro/types"
)

type IntegratorType uint8

const (
	INTEGRATOR_VL2 IntegratorType = iota
	INTEGRATOR_RK1
)

var IntegratorNames = map[string]IntegratorType{
	"vl2": INTEGRATOR_VL2,
	"rk1": INTEGRATOR_RK1,
}

func (it IntegratorType) String() string {
	if it == INTEGRATOR_RK1 {
		return "rk1"
	}
	return "vl2"
}

func NewIntegratorType(label string) (it IntegratorType, err error) {
	var ok bool
	if label == "" {
		return INTEGRATOR_VL2, nil
	}
	if it, ok = IntegratorNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("%w: unknown integrator %q", InputParameters.ErrInvalidParameter, label)
	}
	return
}

// Stage is one substep: the reconstruction stage number and the fraction of dt it advances
type Stage struct {
	Number int
	Weight float64
}

// Stages of the integrator. Every stage restarts from the state at the beginning of the step.
func (it IntegratorType) Stages() []Stage {
	if it == INTEGRATOR_RK1 {
		return []Stage{{1, 1}}
	}
	return []Stage{{1, 0.5}, {2, 1}}
}

/*
EulerFV drives the hydro package on a single block: it owns the block, the integrator
scratch arrays and the run metrics, and advances the conserved state from the problem's
initial condition to FinalTime.
*/
type EulerFV struct {
	Params     *InputParameters.HydroParameters
	Block      *block.MeshBlock
	Hydro      *hydro.Package
	Problem    ProblemType
	Integrator IntegratorType
	Metrics    *Metrics
	Time       float64
	Cycle      int
	u0, dudt   *block.Array4D
}

type Result struct {
	Cycles   int
	Time     float64
	WallTime time.Duration
	// Interior cell updates per wall second, counting each cycle once
	ZoneCyclesPerSecond float64
	Tag                 refinement.AmrTag
}

func NewEulerFV(ip *InputParameters.HydroParameters) (c *EulerFV, err error) {
	var (
		bcs [6]types.BCFLAG
	)
	ip.ApplyDefaults()
	if err = ip.Validate(); err != nil {
		return
	}
	c = &EulerFV{Params: ip}
	if c.Problem, err = NewProblemType(ip.Problem); err != nil {
		return nil, fmt.Errorf("%w: %v", InputParameters.ErrInvalidParameter, err)
	}
	if c.Integrator, err = NewIntegratorType(ip.Integrator); err != nil {
		return nil, err
	}
	if bcs, err = ip.BoundaryFlags(); err != nil {
		return nil, err
	}
	c.Problem.DefaultBCs(&bcs, ip.BCs)
	nx, xmin, xmax := ip.Extents()
	if c.Block, err = block.NewMeshBlock(nx, ip.NGhost, xmin, xmax, bcs, ip.ProcLimit); err != nil {
		return nil, err
	}
	if c.Hydro, err = hydro.Initialize(ip); err != nil {
		return nil, err
	}
	c.Hydro.AllocateFields(c.Block)
	c.u0 = block.NewArray4DFromShape(types.NHYDRO, c.Block.CellBounds)
	c.dudt = block.NewArray4DFromShape(types.NHYDRO, c.Block.CellBounds)
	c.Metrics = NewMetrics()
	c.InitializeProblem()
	log.WithFields(log.Fields{
		"problem":    c.Problem.Print(),
		"cells":      fmt.Sprintf("%d x %d x %d", nx[0], nx[1], nx[2]),
		"riemann":    c.Hydro.Solver.Type().Print(),
		"limiter":    c.Hydro.Limiter.Print(),
		"integrator": c.Integrator.String(),
		"cfl":        c.Hydro.CFL,
		"gamma":      c.Hydro.EOS.Gamma(),
	}).Info("initialized ", ip.Title)
	return
}

// RefreshPrimitives fills the conserved ghost layers and recomputes prim everywhere
func (c *EulerFV) RefreshPrimitives() error {
	c.Block.FillGhost()
	if c.Hydro.FillDerived(c.Block) != hydro.TaskComplete {
		return fmt.Errorf("primitive refresh did not complete")
	}
	return nil
}

// CalculateDT returns the stable timestep of the current state, clipped to land on FinalTime
func (c *EulerFV) CalculateDT() (dt float64, err error) {
	if err = c.RefreshPrimitives(); err != nil {
		return
	}
	dt = c.Hydro.EstimateTimestep(c.Block)
	if !(dt > 0) || math.IsInf(dt, 0) {
		err = fmt.Errorf("invalid timestep %g at cycle %d, time %g", dt, c.Cycle, c.Time)
		return
	}
	if dt+c.Time > c.Params.FinalTime {
		dt = c.Params.FinalTime - c.Time
	}
	return
}

// Step advances the conserved state by dt through every stage of the integrator
func (c *EulerFV) Step(dt float64) (err error) {
	var (
		pmb  = c.Block
		cons = pmb.Data.Get(hydro.ConsName).Data
	)
	c.u0.CopyFrom(cons)
	for _, st := range c.Integrator.Stages() {
		if err = c.RefreshPrimitives(); err != nil {
			return
		}
		if c.Hydro.CalculateFluxes(pmb, st.Number) != hydro.TaskComplete ||
			c.Hydro.FluxDivergence(pmb, c.dudt) != hydro.TaskComplete {
			return fmt.Errorf("stage %d did not complete", st.Number)
		}
		c.update(cons, st.Weight*dt)
	}
	return
}

// update sets cons = u0 + dtw * dudt over interior cells
func (c *EulerFV) update(cons *block.Array4D, dtw float64) {
	var (
		is = c.Block.CellBounds
		ib = is.GetBoundsI(block.Interior)
		jb = is.GetBoundsJ(block.Interior)
		kb = is.GetBoundsK(block.Interior)
	)
	c.Block.ParFor(kb, jb, func(k, j int) {
		for n := 0; n < cons.NVar; n++ {
			ind := cons.Index(n, k, j, ib.S)
			for i := 0; i < ib.Len(); i++ {
				cons.Data[ind+i] = c.u0.Data[ind+i] + dtw*c.dudt.Data[ind+i]
			}
		}
	})
}

/*
Run advances the solution until FinalTime or MaxIterations is reached. Cancelling ctx
stops the run between cycles, the state then holds the last completed cycle.
*/
func (c *EulerFV) Run(ctx context.Context) (res Result, err error) {
	var (
		ip     = c.Params
		ncells = c.Block.NumInteriorCells()
		start  = time.Now()
		dt     float64
	)
	defer func() {
		res.Cycles, res.Time = c.Cycle, c.Time
		res.WallTime = time.Since(start)
		if secs := res.WallTime.Seconds(); secs > 0 {
			res.ZoneCyclesPerSecond = float64(c.Cycle*ncells) / secs
		}
	}()
	for c.Time < ip.FinalTime && c.Cycle < ip.MaxIterations {
		if err = ctx.Err(); err != nil {
			log.WithFields(log.Fields{"cycle": c.Cycle, "time": c.Time}).Warn("run cancelled")
			return
		}
		cycleStart := time.Now()
		if dt, err = c.CalculateDT(); err != nil {
			return
		}
		if err = c.Step(dt); err != nil {
			return
		}
		c.Cycle++
		if ip.FinalTime-(c.Time+dt) <= 1.e-12*ip.FinalTime {
			c.Time = ip.FinalTime
		} else {
			c.Time += dt
		}
		c.Metrics.ObserveCycle(dt, c.Time, time.Since(cycleStart), ncells)
		if ip.ProgressEvery > 0 && c.Cycle%ip.ProgressEvery == 0 {
			log.WithFields(log.Fields{
				"cycle": c.Cycle,
				"time":  fmt.Sprintf("%8.5f", c.Time),
				"dt":    fmt.Sprintf("%8.3e", dt),
			}).Info("progress")
		}
	}
	if err = c.RefreshPrimitives(); err != nil {
		return
	}
	res.Tag = c.RefinementTag()
	log.WithFields(log.Fields{
		"cycles":    c.Cycle,
		"time":      c.Time,
		"wall":      time.Since(start).Round(time.Millisecond),
		"refinetag": res.Tag,
	}).Info("run complete")
	return
}

// RefinementTag evaluates the pressure gradient criterion on the current primitive state.
// Without a configured threshold the block keeps its level.
func (c *EulerFV) RefinementTag() refinement.AmrTag {
	threshold := c.Params.RefinementPressureThreshold
	if threshold <= 0 {
		return refinement.Same
	}
	return refinement.PressureGradient(c.Block, c.Block.Data.Get(hydro.PrimName).Data, threshold)
}

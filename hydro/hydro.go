package hydro

import (
	"fmt"
	"strings"

	"github.com/notargets/fvhydro/InputParameters"
	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro/eos"
	"github.com/notargets/fvhydro/hydro/recon"
	"github.com/notargets/fvhydro/hydro/rsolvers"
	"github.com/notargets/fvhydro/types"
)

// Names of the fields the hydro package registers on a block
const (
	ConsName = "cons"
	PrimName = "prim"
	WLName   = "wl"
	WRName   = "wr"
)

// TaskStatus reports whether a task finished its work on a block
type TaskStatus uint8

const (
	TaskComplete TaskStatus = iota
	TaskIncomplete
)

func (ts TaskStatus) String() string {
	if ts == TaskComplete {
		return "complete"
	}
	return "incomplete"
}

// Physics is what a host needs from a physics package to drive it on a block
type Physics interface {
	Name() string
	FieldSpecs() []block.FieldSpec
	FillDerived(pmb *block.MeshBlock) TaskStatus
	EstimateTimestep(pmb *block.MeshBlock) float64
	CalculateFluxes(pmb *block.MeshBlock, stage int) TaskStatus
}

/*
Package is the configured hydro physics: the equation of state, the Riemann solver, the
reconstruction choice and the CFL factor. It is built once by Initialize and read only
afterwards, so one Package can serve any number of blocks concurrently.
*/
type Package struct {
	CFL           float64
	EOS           eos.EquationOfState
	Solver        rsolvers.RiemannSolver
	Limiter       recon.LimiterType
	DonorCellOnly bool
	fields        []block.FieldSpec
}

// Initialize builds the hydro package from the run parameters
func Initialize(ip *InputParameters.HydroParameters) (pkg *Package, err error) {
	var (
		kind eos.Kind
		ft   rsolvers.FluxType
	)
	pkg = &Package{CFL: ip.CFL}
	if pkg.CFL == 0 {
		pkg.CFL = 0.3
	}
	if !(pkg.CFL > 0 && pkg.CFL <= 1) {
		err = fmt.Errorf("%w: CFL must lie in (0,1], have %g", InputParameters.ErrInvalidParameter, pkg.CFL)
		return nil, err
	}
	if kind, err = eos.NewKind(ip.EOS); err != nil {
		return nil, err
	}
	if pkg.EOS, err = eos.New(kind, ip.Gamma, ip.DFloor, ip.PFloor); err != nil {
		return nil, err
	}
	if ft, err = rsolvers.NewFluxType(ip.FluxType); err != nil {
		return nil, err
	}
	if pkg.Solver, err = rsolvers.New(ft, pkg.EOS); err != nil {
		return nil, err
	}
	if pkg.Limiter, err = recon.NewLimiterType(ip.Limiter); err != nil {
		return nil, err
	}
	switch strings.ToLower(ip.Reconstruction) {
	case "", "plm":
	case "dc":
		pkg.DonorCellOnly = true
	default:
		err = fmt.Errorf("%w: unknown reconstruction %q", InputParameters.ErrInvalidParameter, ip.Reconstruction)
		return nil, err
	}
	pkg.fields = []block.FieldSpec{
		{Name: ConsName, NVar: types.NHYDRO,
			Metadata: block.Metadata{block.Cell, block.Independent, block.FillGhost, block.WithFluxes}},
		{Name: PrimName, NVar: types.NHYDRO, Metadata: block.Metadata{block.Cell, block.Derived}},
		{Name: WLName, NVar: types.NHYDRO, Metadata: block.Metadata{block.Cell, block.Derived, block.OneCopy}},
		{Name: WRName, NVar: types.NHYDRO, Metadata: block.Metadata{block.Cell, block.Derived, block.OneCopy}},
	}
	return
}

func (pkg *Package) Name() string { return "Hydro" }

func (pkg *Package) FieldSpecs() []block.FieldSpec { return pkg.fields }

// AllocateFields registers the hydro fields on pmb
func (pkg *Package) AllocateFields(pmb *block.MeshBlock) {
	pmb.AllocateFields(pkg.fields)
}

func (pkg *Package) FillDerived(pmb *block.MeshBlock) TaskStatus {
	return pkg.ConsToPrim(pmb)
}

// ConsToPrim refreshes prim from cons over the entire block, ghosts included
func (pkg *Package) ConsToPrim(pmb *block.MeshBlock) TaskStatus {
	cons, prim := pmb.Data.Get(ConsName), pmb.Data.Get(PrimName)
	if cons == nil || prim == nil {
		return TaskIncomplete
	}
	is := pmb.CellBounds
	pkg.EOS.ConservedToPrimitive(pmb, cons.Data, prim.Data,
		is.GetBoundsI(block.Entire), is.GetBoundsJ(block.Entire), is.GetBoundsK(block.Entire))
	return TaskComplete
}

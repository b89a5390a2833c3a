package hydro

import (
	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro/recon"
	"github.com/notargets/fvhydro/hydro/rsolvers"
	"github.com/notargets/fvhydro/types"
)

/*
RangesForDirection returns the (k, j, i) ranges swept when computing fluxes along dir.
The normal range covers every interior face, the transverse ranges add one ghost layer
on each side of every active axis. The reconstruction stencil then reads at most two
cells past an interior face, which NewMeshBlock guarantees through its ghost depth.
This is the only place ghost arithmetic for the flux sweep is done.
*/
func RangesForDirection(is block.IndexShape, dir types.Direction) (kb, jb, ib block.IndexRange) {
	var (
		r [3]block.IndexRange
	)
	for _, d := range types.Directions {
		r[d] = is.GetBounds(block.Interior, d)
		switch {
		case d == dir:
			r[d] = r[d].Faces()
		case is.IsActive(d):
			r[d] = r[d].Grow(1)
		}
	}
	return r[types.X3DIR], r[types.X2DIR], r[types.X1DIR]
}

/*
CalculateFluxes fills the flux arrays of cons for every active direction in X1, X2, X3
order. Stage 1 uses donor cell reconstruction, later stages piecewise linear. The wl/wr
scratch fields are reused by each direction in turn.
*/
func (pkg *Package) CalculateFluxes(pmb *block.MeshBlock, stage int) TaskStatus {
	var (
		cons = pmb.Data.Get(ConsName)
		prim = pmb.Data.Get(PrimName)
		wlv  = pmb.Data.Get(WLName)
		wrv  = pmb.Data.Get(WRName)
		is   = pmb.CellBounds
	)
	if cons == nil || prim == nil || wlv == nil || wrv == nil {
		return TaskIncomplete
	}
	w, wl, wr := prim.Data, wlv.Data, wrv.Data
	for _, dir := range types.Directions {
		if !is.IsActive(dir) {
			continue
		}
		kb, jb, ib := RangesForDirection(is, dir)
		ax := recon.NewAxis(w, dir)
		if stage == 1 || pkg.DonorCellOnly {
			recon.DonorCell(pmb, kb, jb, ib, ax, w, wl, wr)
		} else {
			recon.PiecewiseLinear(pmb, kb, jb, ib, ax, pkg.Limiter, w, wl, wr)
		}
		rsolvers.Solve(pmb, kb, jb, ib, dir, pkg.Solver, wl, wr, cons.Flux[dir])
	}
	return TaskComplete
}

// FluxDivergence sets dudt = -div(F) on interior cells from the fluxes of the last CalculateFluxes
func (pkg *Package) FluxDivergence(pmb *block.MeshBlock, dudt *block.Array4D) TaskStatus {
	cons := pmb.Data.Get(ConsName)
	if cons == nil {
		return TaskIncomplete
	}
	cons.Data.MustMatch(dudt)
	var (
		is = pmb.CellBounds
		ib = is.GetBoundsI(block.Interior)
		jb = is.GetBoundsJ(block.Interior)
		kb = is.GetBoundsK(block.Interior)
	)
	pmb.ParFor(kb, jb, func(k, j int) {
		for n := 0; n < dudt.NVar; n++ {
			for i := ib.S; i <= ib.E; i++ {
				ind := dudt.Index(n, k, j, i)
				var div float64
				for _, dir := range types.Directions {
					if !is.IsActive(dir) {
						continue
					}
					f := cons.Flux[dir]
					div += (f.Data[ind+f.Stride(dir)] - f.Data[ind]) / pmb.Coords.Dx(dir, k, j, i)
				}
				dudt.Data[ind] = -div
			}
		}
	})
	return TaskComplete
}

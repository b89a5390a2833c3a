package hydro

import (
	"math"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
)

/*
EstimateTimestep returns CFL * min(dx_d / (|v_d| + cs)) over interior cells and active
directions. Rows are reduced in parallel, and since min is exact the result does not
depend on the partitioning.
*/
func (pkg *Package) EstimateTimestep(pmb *block.MeshBlock) float64 {
	prim := pmb.Data.Get(PrimName)
	if prim == nil {
		panic("hydro: EstimateTimestep called before the prim field was allocated")
	}
	var (
		w  = prim.Data
		is = pmb.CellBounds
		ib = is.GetBoundsI(block.Interior)
		jb = is.GetBoundsJ(block.Interior)
		kb = is.GetBoundsK(block.Interior)
	)
	minDt := pmb.ParReduceMin(kb, jb, func(k, j int) float64 {
		dtRow := math.MaxFloat64
		for i := ib.S; i <= ib.E; i++ {
			wc := w.GetCell(k, j, i)
			cs := pkg.EOS.SoundSpeed(wc)
			for _, dir := range types.Directions {
				if !is.IsActive(dir) {
					continue
				}
				ivn, _, _ := dir.VelocityIndices()
				dtRow = math.Min(dtRow, pmb.Coords.Dx(dir, k, j, i)/(math.Abs(wc[ivn])+cs))
			}
		}
		return dtRow
	})
	return pkg.CFL * minDt
}

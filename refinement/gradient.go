package refinement

import (
	"math"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
	"github.com/notargets/fvhydro/utils"
)

type AmrTag int8

const (
	Derefine AmrTag = iota - 1
	Same
	Refine
)

func (tag AmrTag) String() string {
	switch tag {
	case Derefine:
		return "derefine"
	case Refine:
		return "refine"
	}
	return "same"
}

/*
PressureGradient tags a block by the largest undivided pressure gradient relative to the
local pressure, eps = |0.5*(p(+1)-p(-1))| / p summed in quadrature over the active
directions. Cells one layer past the interior are included. A block is refined when
eps exceeds threshold and derefined below a quarter of it. 1D blocks are never retagged.
*/
func PressureGradient(pmb *block.MeshBlock, w *block.Array4D, threshold float64) AmrTag {
	if pmb.NDim() < 2 {
		return Same
	}
	var (
		is = pmb.CellBounds
		r  [3]block.IndexRange
		st [3]int
	)
	for _, dir := range types.Directions {
		r[dir] = is.GetBounds(block.Interior, dir)
		if is.IsActive(dir) {
			r[dir] = r[dir].Grow(1)
			st[dir] = w.Stride(dir)
		}
	}
	maxeps := pmb.ParReduceMax(r[types.X3DIR], r[types.X2DIR], func(k, j int) float64 {
		var rowMax float64
		for i := r[types.X1DIR].S; i <= r[types.X1DIR].E; i++ {
			var (
				ind = w.Index(types.IPR, k, j, i)
				sum float64
			)
			for _, s := range st {
				if s == 0 {
					continue
				}
				sum += utils.SQR(0.5 * (w.Data[ind+s] - w.Data[ind-s]))
			}
			rowMax = math.Max(rowMax, math.Sqrt(sum)/w.Data[ind])
		}
		return rowMax
	})
	switch {
	case maxeps > threshold:
		return Refine
	case maxeps < 0.25*threshold:
		return Derefine
	}
	return Same
}

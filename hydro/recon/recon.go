package recon

import (
	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
)

/*
Axis describes the direction a reconstruction sweeps along. Face f of a sweep sits
between cell f-1 and cell f, where "f-1" is one Stride back in the flat array. Writing
wl/wr at the face index f keeps the same convention for X1, X2 and X3, so a single
kernel serves all three directions.
*/
type Axis struct {
	Dir    types.Direction
	Stride int
}

func NewAxis(a *block.Array4D, dir types.Direction) Axis {
	return Axis{Dir: dir, Stride: a.Stride(dir)}
}

// DonorCell sets wl(f) = w(f-1) and wr(f) = w(f) for every face in the ranges
func DonorCell(pmb *block.MeshBlock, kb, jb, ib block.IndexRange, ax Axis, w, wl, wr *block.Array4D) {
	w.MustMatch(wl)
	w.MustMatch(wr)
	var (
		s  = ax.Stride
		vs = w.VarStride()
	)
	pmb.ParFor(kb, jb, func(k, j int) {
		for n := 0; n < w.NVar; n++ {
			ind0 := w.Index(0, k, j, 0) + n*vs
			for i := ib.S; i <= ib.E; i++ {
				ind := ind0 + i
				wl.Data[ind] = w.Data[ind-s]
				wr.Data[ind] = w.Data[ind]
			}
		}
	})
}

/*
PiecewiseLinear builds limited linear profiles in cells f-1 and f and evaluates them
at the shared face:

	wl(f) = w(f-1) + 0.5*dw(f-1)
	wr(f) = w(f)   - 0.5*dw(f)

The slope of a cell uses both of its neighbors, so the stencil of face f covers cells
f-2 through f+1.
*/
func PiecewiseLinear(pmb *block.MeshBlock, kb, jb, ib block.IndexRange, ax Axis, lt LimiterType,
	w, wl, wr *block.Array4D) {
	w.MustMatch(wl)
	w.MustMatch(wr)
	var (
		s  = ax.Stride
		vs = w.VarStride()
	)
	pmb.ParFor(kb, jb, func(k, j int) {
		for n := 0; n < w.NVar; n++ {
			ind0 := w.Index(0, k, j, 0) + n*vs
			for i := ib.S; i <= ib.E; i++ {
				var (
					ind = ind0 + i
					wmm = w.Data[ind-2*s]
					wm  = w.Data[ind-s]
					w0  = w.Data[ind]
					wp  = w.Data[ind+s]
				)
				wl.Data[ind] = wm + 0.5*lt.Limit(wm-wmm, w0-wm)
				wr.Data[ind] = w0 - 0.5*lt.Limit(w0-wm, wp-w0)
			}
		}
	})
}

package block

import (
	"github.com/notargets/fvhydro/types"
)

// FillGhost applies the block boundary conditions to every variable flagged FillGhost
func (mb *MeshBlock) FillGhost() {
	for _, name := range mb.Data.Names() {
		v := mb.Data.Get(name)
		if v.Metadata.Has(FillGhost) {
			mb.ApplyBoundaryConditions(v.Data)
		}
	}
}

/*
ApplyBoundaryConditions fills the ghost layers of a in X1, X2, X3 order. Later passes
read ghost cells written by earlier ones, which fills edges and corners consistently.
For NHYDRO-wide fields a reflecting face negates the normal velocity/momentum.
*/
func (mb *MeshBlock) ApplyBoundaryConditions(a *Array4D) {
	for _, dir := range types.Directions {
		if !mb.CellBounds.IsActive(dir) {
			continue
		}
		mb.fillDirection(a, dir)
	}
}

func (mb *MeshBlock) fillDirection(a *Array4D, dir types.Direction) {
	var (
		ib     = mb.CellBounds.GetBounds(Interior, dir)
		nx     = mb.CellBounds.NX[dir]
		ng     = mb.CellBounds.NGhost[dir]
		stride = a.Stride(dir)
		ivn    = types.IVX + int(dir)
		bcIn   = mb.BCs[2*int(dir)]
		bcOut  = mb.BCs[2*int(dir)+1]
	)
	source := func(bc types.BCFLAG, ghost int, outer bool) (src int, flip bool) {
		switch bc {
		case types.BC_Reflect:
			flip = true
			if outer {
				src = 2*ib.E + 1 - ghost
			} else {
				src = 2*ib.S - 1 - ghost
			}
		case types.BC_Periodic:
			if outer {
				src = ghost - nx
			} else {
				src = ghost + nx
			}
		default: // outflow, zero gradient
			if outer {
				src = ib.E
			} else {
				src = ib.S
			}
		}
		return
	}
	for n := 0; n < a.NVar; n++ {
		negate := a.NVar == types.NHYDRO && n == ivn
		for k := 0; k < a.NK; k++ {
			for j := 0; j < a.NJ; j++ {
				for i := 0; i < a.NI; i++ {
					// visit each pencil along dir once, from its zero index
					if [3]int{i, j, k}[dir] != 0 {
						continue
					}
					base := a.Index(n, k, j, i)
					for g := 1; g <= ng; g++ {
						for _, outer := range [2]bool{false, true} {
							ghost, bc := ib.S-g, bcIn
							if outer {
								ghost, bc = ib.E+g, bcOut
							}
							src, flip := source(bc, ghost, outer)
							val := a.Data[base+src*stride]
							if flip && negate {
								val = -val
							}
							a.Data[base+ghost*stride] = val
						}
					}
				}
			}
		}
	}
}

package rsolvers

import (
	"math"

	"github.com/notargets/fvhydro/types"
)

/*
HLLE is the two-wave Harten-Lax-van Leer flux with Einfeldt's wave speeds: the Roe
averaged characteristic speeds, widened to include the fastest left and right
characteristics. It is positivity preserving and resolves no contact.
*/
type HLLE struct {
	solverBase
}

func (rs *HLLE) Type() FluxType { return FLUX_HLLE }

func (rs *HLLE) FluxPoint(dir types.Direction, wl, wr [types.NHYDRO]float64) [types.NHYDRO]float64 {
	l, r, cl, cr := rs.prepare(dir, wl, wr)
	var (
		gm1     = rs.gm1
		sqrtdl  = math.Sqrt(l.d)
		sqrtdr  = math.Sqrt(r.d)
		isdlpdr = 1. / (sqrtdl + sqrtdr)
		el      = l.energy(gm1)
		er      = r.energy(gm1)
	)
	// Roe averages
	var (
		vn   = (sqrtdl*l.vn + sqrtdr*r.vn) * isdlpdr
		vt1  = (sqrtdl*l.vt1 + sqrtdr*r.vt1) * isdlpdr
		vt2  = (sqrtdl*l.vt2 + sqrtdr*r.vt2) * isdlpdr
		hroe = ((el+l.p)/sqrtdl + (er+r.p)/sqrtdr) * isdlpdr
		q    = hroe - 0.5*(vn*vn+vt1*vt1+vt2*vt2)
		a    float64
	)
	if q > 0 {
		a = math.Sqrt(gm1 * q)
	}
	var (
		bp = math.Max(math.Max(vn+a, r.vn+cr), 0)
		bm = math.Min(math.Min(vn-a, l.vn-cl), 0)
	)
	// F - b*U for each side
	var (
		fl  = l.flux(gm1).add(l.conserved(gm1), -bm)
		fr  = r.flux(gm1).add(r.conserved(gm1), -bp)
		tmp float64
	)
	if bp != bm {
		tmp = 0.5 * (bp + bm) / (bp - bm)
	}
	return fl.add(fr, 1).scale(0.5).add(fl.add(fr, -1), tmp).unrotate(dir)
}

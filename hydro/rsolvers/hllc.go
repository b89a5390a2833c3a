package rsolvers

import (
	"math"

	"github.com/notargets/fvhydro/types"
)

// HLLC restores the contact wave missing from HLLE, following Toro's three-wave solver
type HLLC struct {
	solverBase
}

func (rs *HLLC) Type() FluxType { return FLUX_HLLC }

func (rs *HLLC) FluxPoint(dir types.Direction, wl, wr [types.NHYDRO]float64) [types.NHYDRO]float64 {
	l, r, cl, cr := rs.prepare(dir, wl, wr)
	var (
		gm1  = rs.gm1
		gfac = 0.5 * (rs.gamma + 1) / rs.gamma
	)
	// Primitive variable pressure estimate, then pressure based wave speeds
	var (
		dbar  = 0.5 * (l.d + r.d)
		cbar  = 0.5 * (cl + cr)
		pstar = math.Max(0, 0.5*(l.p+r.p)-0.5*(r.vn-l.vn)*dbar*cbar)
		qk    = func(pk float64) float64 {
			if pstar <= pk {
				return 1
			}
			return math.Sqrt(1 + gfac*(pstar/pk-1))
		}
		sl = math.Min(l.vn-cl*qk(l.p), r.vn-cr)
		sr = math.Max(r.vn+cr*qk(r.p), l.vn+cl)
	)
	switch {
	case sl >= 0:
		return l.flux(gm1).unrotate(dir)
	case sr <= 0:
		return r.flux(gm1).unrotate(dir)
	}
	var (
		dsl = l.d * (sl - l.vn)
		dsr = r.d * (sr - r.vn)
		sm  = (r.p - l.p + l.vn*dsl - r.vn*dsr) / (dsl - dsr)
	)
	star := func(s local, sk float64) local {
		var (
			fac = s.d * (sk - s.vn) / (sk - sm)
			e   = s.energy(gm1)
		)
		return local{
			d:   fac,
			vn:  fac * sm,
			vt1: fac * s.vt1,
			vt2: fac * s.vt2,
			p:   fac * (e/s.d + (sm-s.vn)*(sm+s.p/(s.d*(sk-s.vn)))),
		}
	}
	if sm >= 0 {
		return l.flux(gm1).add(star(l, sl).add(l.conserved(gm1), -1), sl).unrotate(dir)
	}
	return r.flux(gm1).add(star(r, sr).add(r.conserved(gm1), -1), sr).unrotate(dir)
}

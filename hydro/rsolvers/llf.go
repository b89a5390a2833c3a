package rsolvers

import (
	"math"

	"github.com/notargets/fvhydro/types"
)

// LLF is the local Lax-Friedrichs (Rusanov) flux, dissipation set by the fastest local signal
type LLF struct {
	solverBase
}

func (rs *LLF) Type() FluxType { return FLUX_LLF }

func (rs *LLF) FluxPoint(dir types.Direction, wl, wr [types.NHYDRO]float64) [types.NHYDRO]float64 {
	l, r, cl, cr := rs.prepare(dir, wl, wr)
	gm1 := rs.gm1
	switch {
	case l.vn-cl >= 0 && r.vn-cr >= 0:
		return l.flux(gm1).unrotate(dir)
	case l.vn+cl <= 0 && r.vn+cr <= 0:
		return r.flux(gm1).unrotate(dir)
	}
	smax := math.Max(math.Abs(l.vn)+cl, math.Abs(r.vn)+cr)
	fsum := l.flux(gm1).add(r.flux(gm1), 1)
	du := r.conserved(gm1).add(l.conserved(gm1), -1)
	return fsum.scale(0.5).add(du, -0.5*smax).unrotate(dir)
}

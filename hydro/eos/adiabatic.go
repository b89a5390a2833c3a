package eos

import (
	"fmt"
	"math"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
)

// energyRoundoff bounds the error, relative to the total energy, of the internal energy
// recovered by subtracting the kinetic energy
const energyRoundoff = 8 * 0x1p-52

// AdiabaticHydro is the ideal gas closure p = (gamma-1) * e
type AdiabaticHydro struct {
	gamma, gm1     float64
	dfloor, pfloor float64
}

func NewAdiabaticHydro(gamma, dfloor, pfloor float64) (eos *AdiabaticHydro, err error) {
	if !(gamma > 1) {
		err = fmt.Errorf("adiabatic index gamma must be > 1, have %g", gamma)
		return
	}
	if dfloor <= 0 {
		dfloor = DefaultFloor
	}
	if pfloor <= 0 {
		pfloor = DefaultFloor
	}
	eos = &AdiabaticHydro{
		gamma:  gamma,
		gm1:    gamma - 1,
		dfloor: dfloor,
		pfloor: pfloor,
	}
	return
}

func (eos *AdiabaticHydro) Gamma() float64         { return eos.gamma }
func (eos *AdiabaticHydro) DensityFloor() float64  { return eos.dfloor }
func (eos *AdiabaticHydro) PressureFloor() float64 { return eos.pfloor }

func (eos *AdiabaticHydro) SoundSpeed(w [types.NHYDRO]float64) float64 {
	return math.Sqrt(eos.gamma * w[types.IPR] / w[types.IDN])
}

func (eos *AdiabaticHydro) ApplyFloors(w *[types.NHYDRO]float64) {
	w[types.IDN] = math.Max(w[types.IDN], eos.dfloor)
	w[types.IPR] = math.Max(w[types.IPR], eos.pfloor)
}

func (eos *AdiabaticHydro) ConsToPrimCell(u [types.NHYDRO]float64) (w [types.NHYDRO]float64) {
	var (
		d    = math.Max(u[types.IDN], eos.dfloor)
		di   = 1. / d
		m1   = u[types.IM1]
		m2   = u[types.IM2]
		m3   = u[types.IM3]
		ekin = 0.5 * di * (m1*m1 + m2*m2 + m3*m3)
	)
	w[types.IDN] = d
	w[types.IVX] = m1 * di
	w[types.IVY] = m2 * di
	w[types.IVZ] = m3 * di
	// a pressure the energy cannot resolve above the floor is the floor, so floored
	// states come back unchanged
	p := eos.gm1 * (u[types.IEN] - ekin)
	if p <= eos.pfloor+energyRoundoff*eos.gm1*math.Abs(u[types.IEN]) {
		p = eos.pfloor
	}
	w[types.IPR] = p
	return
}

func (eos *AdiabaticHydro) PrimToConsCell(w [types.NHYDRO]float64) (u [types.NHYDRO]float64) {
	var (
		d  = w[types.IDN]
		v1 = w[types.IVX]
		v2 = w[types.IVY]
		v3 = w[types.IVZ]
	)
	u[types.IDN] = d
	u[types.IM1] = d * v1
	u[types.IM2] = d * v2
	u[types.IM3] = d * v3
	u[types.IEN] = w[types.IPR]/eos.gm1 + 0.5*d*(v1*v1+v2*v2+v3*v3)
	return
}

// ConservedToPrimitive fills prim from cons over the given ranges. cons is read only.
func (eos *AdiabaticHydro) ConservedToPrimitive(pmb *block.MeshBlock, cons, prim *block.Array4D,
	ib, jb, kb block.IndexRange) {
	cons.MustMatch(prim)
	vs := cons.VarStride()
	pmb.ParFor(kb, jb, func(k, j int) {
		var u [types.NHYDRO]float64
		for i := ib.S; i <= ib.E; i++ {
			ind := cons.Index(0, k, j, i)
			for n := 0; n < types.NHYDRO; n++ {
				u[n] = cons.Data[ind+n*vs]
			}
			w := eos.ConsToPrimCell(u)
			for n := 0; n < types.NHYDRO; n++ {
				prim.Data[ind+n*vs] = w[n]
			}
		}
	})
}

func (eos *AdiabaticHydro) PrimitiveToConserved(pmb *block.MeshBlock, prim, cons *block.Array4D,
	ib, jb, kb block.IndexRange) {
	prim.MustMatch(cons)
	vs := prim.VarStride()
	pmb.ParFor(kb, jb, func(k, j int) {
		var w [types.NHYDRO]float64
		for i := ib.S; i <= ib.E; i++ {
			ind := prim.Index(0, k, j, i)
			for n := 0; n < types.NHYDRO; n++ {
				w[n] = prim.Data[ind+n*vs]
			}
			u := eos.PrimToConsCell(w)
			for n := 0; n < types.NHYDRO; n++ {
				cons.Data[ind+n*vs] = u[n]
			}
		}
	})
}

package rsolvers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/hydro/eos"
	"github.com/notargets/fvhydro/types"
)

var ErrUnknownFlux = errors.New("unknown riemann solver")

type FluxType uint8

const (
	FLUX_HLLE FluxType = iota
	FLUX_LLF
	FLUX_HLLC
)

var (
	FluxNames = map[string]FluxType{
		"hlle":    FLUX_HLLE,
		"hll":     FLUX_HLLE,
		"llf":     FLUX_LLF,
		"lax":     FLUX_LLF,
		"rusanov": FLUX_LLF,
		"hllc":    FLUX_HLLC,
	}
	FluxPrintNames = []string{"HLLE", "Local Lax Friedrichs", "HLLC"}
)

func (ft FluxType) Print() (txt string) {
	if int(ft) < len(FluxPrintNames) {
		txt = FluxPrintNames[ft]
		return
	}
	txt = fmt.Sprintf("FluxType(%d)", ft)
	return
}

func (ft FluxType) String() string { return ft.Print() }

func NewFluxType(label string) (ft FluxType, err error) {
	var ok bool
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return FLUX_HLLE, nil
	}
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownFlux, label)
	}
	return
}

/*
RiemannSolver computes the numerical flux through one face from the reconstructed
left and right primitive states. Inputs are in the lab frame; implementations rotate
into the face-normal frame of dir and rotate the flux back.
*/
type RiemannSolver interface {
	FluxPoint(dir types.Direction, wl, wr [types.NHYDRO]float64) [types.NHYDRO]float64
	Type() FluxType
}

func New(ft FluxType, e eos.EquationOfState) (rs RiemannSolver, err error) {
	base := solverBase{eos: e, gamma: e.Gamma(), gm1: e.Gamma() - 1}
	switch ft {
	case FLUX_HLLE:
		rs = &HLLE{base}
	case FLUX_LLF:
		rs = &LLF{base}
	case FLUX_HLLC:
		rs = &HLLC{base}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFlux, ft)
	}
	return
}

// Solve fills flux on every face in the ranges, sweeping along dir
func Solve(pmb *block.MeshBlock, kb, jb, ib block.IndexRange, dir types.Direction,
	rs RiemannSolver, wl, wr, flux *block.Array4D) {
	wl.MustMatch(wr)
	wl.MustMatch(flux)
	vs := wl.VarStride()
	pmb.ParFor(kb, jb, func(k, j int) {
		var wL, wR [types.NHYDRO]float64
		for i := ib.S; i <= ib.E; i++ {
			ind := wl.Index(0, k, j, i)
			for n := 0; n < types.NHYDRO; n++ {
				wL[n] = wl.Data[ind+n*vs]
				wR[n] = wr.Data[ind+n*vs]
			}
			f := rs.FluxPoint(dir, wL, wR)
			for n := 0; n < types.NHYDRO; n++ {
				flux.Data[ind+n*vs] = f[n]
			}
		}
	})
}

// PhysicalFlux is the exact Euler flux of a single primitive state through a face normal to dir
func PhysicalFlux(dir types.Direction, gamma float64, w [types.NHYDRO]float64) [types.NHYDRO]float64 {
	s := rotate(dir, w)
	return s.flux(gamma-1).unrotate(dir)
}

// local is a primitive state, or a flux, in the face-normal frame
type local struct {
	d, vn, vt1, vt2, p float64
}

func rotate(dir types.Direction, w [types.NHYDRO]float64) local {
	ivn, ivt1, ivt2 := dir.VelocityIndices()
	return local{d: w[types.IDN], vn: w[ivn], vt1: w[ivt1], vt2: w[ivt2], p: w[types.IPR]}
}

func (l local) unrotate(dir types.Direction) (f [types.NHYDRO]float64) {
	ivn, ivt1, ivt2 := dir.VelocityIndices()
	f[types.IDN], f[ivn], f[ivt1], f[ivt2], f[types.IEN] = l.d, l.vn, l.vt1, l.vt2, l.p
	return
}

func (l local) energy(gm1 float64) float64 {
	return l.p/gm1 + 0.5*l.d*(l.vn*l.vn+l.vt1*l.vt1+l.vt2*l.vt2)
}

// conserved returns the conserved vector in the same slot layout as local
func (l local) conserved(gm1 float64) local {
	return local{d: l.d, vn: l.d * l.vn, vt1: l.d * l.vt1, vt2: l.d * l.vt2, p: l.energy(gm1)}
}

func (l local) flux(gm1 float64) local {
	mn := l.d * l.vn
	return local{
		d:   mn,
		vn:  mn*l.vn + l.p,
		vt1: mn * l.vt1,
		vt2: mn * l.vt2,
		p:   (l.energy(gm1) + l.p) * l.vn,
	}
}

func (l local) add(r local, scale float64) local {
	return local{
		d:   l.d + scale*r.d,
		vn:  l.vn + scale*r.vn,
		vt1: l.vt1 + scale*r.vt1,
		vt2: l.vt2 + scale*r.vt2,
		p:   l.p + scale*r.p,
	}
}

func (l local) scale(s float64) local {
	return local{d: s * l.d, vn: s * l.vn, vt1: s * l.vt1, vt2: s * l.vt2, p: s * l.p}
}

type solverBase struct {
	eos        eos.EquationOfState
	gamma, gm1 float64
}

// prepare floors both states and rotates them into the frame of dir
func (sb solverBase) prepare(dir types.Direction, wl, wr [types.NHYDRO]float64) (l, r local, cl, cr float64) {
	sb.eos.ApplyFloors(&wl)
	sb.eos.ApplyFloors(&wr)
	l, r = rotate(dir, wl), rotate(dir, wr)
	cl, cr = sb.eos.SoundSpeed(wl), sb.eos.SoundSpeed(wr)
	return
}

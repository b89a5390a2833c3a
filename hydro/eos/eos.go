package eos

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
)

var ErrUnknownEOS = errors.New("unknown equation of state")

type Kind uint8

const (
	Undefined Kind = iota
	Adiabatic
)

var KindNames = map[string]Kind{
	"adiabatic": Adiabatic,
	"ideal":     Adiabatic,
}

var kindPrintNames = []string{"Undefined", "Adiabatic"}

func (k Kind) String() string {
	if int(k) < len(kindPrintNames) {
		return kindPrintNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func NewKind(label string) (k Kind, err error) {
	var ok bool
	if k, ok = KindNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownEOS, label)
	}
	return
}

// DefaultFloor is sqrt(1024 * smallest normal float32), used when no floor is configured
var DefaultFloor = math.Sqrt(1024 * math.Ldexp(1, -126))

/*
EquationOfState converts between the conserved (D, M1, M2, M3, E) and primitive
(d, v1, v2, v3, p) cell states and supplies the sound speed. Implementations apply
their density and pressure floors on every conversion, so a primitive state leaving
the EOS is always physically admissible.
*/
type EquationOfState interface {
	ConservedToPrimitive(pmb *block.MeshBlock, cons, prim *block.Array4D, ib, jb, kb block.IndexRange)
	PrimitiveToConserved(pmb *block.MeshBlock, prim, cons *block.Array4D, ib, jb, kb block.IndexRange)
	ConsToPrimCell(u [types.NHYDRO]float64) (w [types.NHYDRO]float64)
	PrimToConsCell(w [types.NHYDRO]float64) (u [types.NHYDRO]float64)
	SoundSpeed(w [types.NHYDRO]float64) float64
	ApplyFloors(w *[types.NHYDRO]float64)
	Gamma() float64
	DensityFloor() float64
	PressureFloor() float64
}

func New(kind Kind, gamma, dfloor, pfloor float64) (eos EquationOfState, err error) {
	switch kind {
	case Adiabatic:
		var ah *AdiabaticHydro
		if ah, err = NewAdiabaticHydro(gamma, dfloor, pfloor); err != nil {
			return
		}
		eos = ah
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownEOS, kind)
	}
	return
}

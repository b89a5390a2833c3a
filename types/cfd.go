package types

import (
	"fmt"
	"strings"
)

// BCFLAG selects how the ghost layer on one block face is filled
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Outflow
	BC_Reflect
	BC_Periodic
)

var BCNameMap = map[string]BCFLAG{
	"outflow":  BC_Outflow,
	"out":      BC_Outflow,
	"reflect":  BC_Reflect,
	"wall":     BC_Reflect,
	"periodic": BC_Periodic,
}

var bcPrintNames = []string{"None", "Outflow", "Reflect", "Periodic"}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcPrintNames) {
		return bcPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", bc)
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", label)
	}
	return
}

// BoundaryFace names the six faces of a block, inner then outer per direction
type BoundaryFace uint8

const (
	InnerX1 BoundaryFace = iota
	OuterX1
	InnerX2
	OuterX2
	InnerX3
	OuterX3
)

var BoundaryFaceNames = map[string]BoundaryFace{
	"ix1": InnerX1,
	"ox1": OuterX1,
	"ix2": InnerX2,
	"ox2": OuterX2,
	"ix3": InnerX3,
	"ox3": OuterX3,
}

func (bf BoundaryFace) Direction() Direction { return Direction(bf / 2) }
func (bf BoundaryFace) IsOuter() bool        { return bf%2 == 1 }

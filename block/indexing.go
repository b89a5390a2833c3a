package block

import (
	"fmt"

	"github.com/notargets/fvhydro/types"
)

// IndexRange is an inclusive [S, E] range of cell indices along one axis
type IndexRange struct {
	S, E int
}

func (ir IndexRange) Len() int {
	if ir.E < ir.S {
		return 0
	}
	return ir.E - ir.S + 1
}

// Grow returns the range extended by n cells on both ends
func (ir IndexRange) Grow(n int) IndexRange {
	return IndexRange{S: ir.S - n, E: ir.E + n}
}

// Faces returns the face range bounding the cells of ir, face i lies between cells i-1 and i
func (ir IndexRange) Faces() IndexRange {
	return IndexRange{S: ir.S, E: ir.E + 1}
}

func (ir IndexRange) String() string {
	return fmt.Sprintf("[%d,%d]", ir.S, ir.E)
}

type IndexDomain uint8

const (
	Interior IndexDomain = iota
	Entire
)

/*
IndexShape holds the cell bounds of a block with ghost layers. Axes with a single
interior cell carry no ghosts, so a 1D block has NK = NJ = 1.
*/
type IndexShape struct {
	NX     [3]int // interior cells per direction
	NGhost [3]int // ghost layers per direction, zero on degenerate axes
}

func NewIndexShape(nx1, nx2, nx3, nghost int) (is IndexShape) {
	is.NX = [3]int{nx1, nx2, nx3}
	for d := 0; d < 3; d++ {
		if is.NX[d] > 1 {
			is.NGhost[d] = nghost
		}
	}
	return
}

// NCells is the full extent along a direction, interior plus ghosts
func (is IndexShape) NCells(dir types.Direction) int {
	return is.NX[dir] + 2*is.NGhost[dir]
}

func (is IndexShape) GetBounds(domain IndexDomain, dir types.Direction) IndexRange {
	switch domain {
	case Entire:
		return IndexRange{S: 0, E: is.NCells(dir) - 1}
	default:
		return IndexRange{S: is.NGhost[dir], E: is.NGhost[dir] + is.NX[dir] - 1}
	}
}

func (is IndexShape) GetBoundsI(domain IndexDomain) IndexRange {
	return is.GetBounds(domain, types.X1DIR)
}

func (is IndexShape) GetBoundsJ(domain IndexDomain) IndexRange {
	return is.GetBounds(domain, types.X2DIR)
}

func (is IndexShape) GetBoundsK(domain IndexDomain) IndexRange {
	return is.GetBounds(domain, types.X3DIR)
}

// IsActive reports whether a direction has more than one interior cell
func (is IndexShape) IsActive(dir types.Direction) bool {
	return is.NX[dir] > 1
}

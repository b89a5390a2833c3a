package block

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/fvhydro/types"
	"github.com/notargets/fvhydro/utils"
)

var ErrInvalidBlock = errors.New("invalid block geometry")

type MetadataFlag uint8

const (
	Cell MetadataFlag = iota
	Independent
	Derived
	FillGhost
	OneCopy
	WithFluxes
)

type Metadata []MetadataFlag

func (m Metadata) Has(flag MetadataFlag) bool {
	for _, f := range m {
		if f == flag {
			return true
		}
	}
	return false
}

// FieldSpec is what a physics package declares it needs on every block
type FieldSpec struct {
	Name     string
	NVar     int
	Metadata Metadata
}

type Variable struct {
	Name     string
	Metadata Metadata
	Data     *Array4D
	Flux     [3]*Array4D // nil along inactive directions
}

type Container struct {
	vars  map[string]*Variable
	order []string
}

func NewContainer() *Container {
	return &Container{vars: make(map[string]*Variable)}
}

// Get returns nil when the variable was never allocated
func (c *Container) Get(name string) *Variable {
	return c.vars[name]
}

func (c *Container) Names() []string {
	return c.order
}

func (c *Container) Add(spec FieldSpec, is IndexShape) (v *Variable) {
	if v = c.vars[spec.Name]; v != nil {
		return
	}
	v = &Variable{
		Name:     spec.Name,
		Metadata: spec.Metadata,
		Data:     NewArray4DFromShape(spec.NVar, is),
	}
	if spec.Metadata.Has(WithFluxes) {
		for _, dir := range types.Directions {
			if is.IsActive(dir) || dir == types.X1DIR {
				v.Flux[dir] = NewArray4DFromShape(spec.NVar, is)
			}
		}
	}
	c.vars[spec.Name] = v
	c.order = append(c.order, spec.Name)
	return
}

/*
MeshBlock is the host side of one block: geometry, boundary flags, field storage and
the execution substrate used by the kernels. A single invocation owns a block's data
at a time, so nothing here is locked.
*/
type MeshBlock struct {
	CellBounds     IndexShape
	Coords         UniformCoordinates
	BCs            [6]types.BCFLAG
	ParallelDegree int // zero selects runtime.NumCPU()
	Data           *Container
}

func NewMeshBlock(nx [3]int, nghost int, xmin, xmax [3]float64,
	bcs [6]types.BCFLAG, ProcLimit int) (mb *MeshBlock, err error) {
	for d := 0; d < 3; d++ {
		if nx[d] < 1 {
			err = fmt.Errorf("%w: NX%d = %d", ErrInvalidBlock, d+1, nx[d])
			return
		}
		if xmax[d] <= xmin[d] {
			err = fmt.Errorf("%w: X%dMax (%g) must exceed X%dMin (%g)",
				ErrInvalidBlock, d+1, xmax[d], d+1, xmin[d])
			return
		}
		if nx[d] > 1 && nx[d] < nghost {
			err = fmt.Errorf("%w: NX%d = %d is smaller than the ghost depth %d",
				ErrInvalidBlock, d+1, nx[d], nghost)
			return
		}
	}
	if nx[0] < 2 {
		err = fmt.Errorf("%w: X1 must hold at least 2 cells, have %d", ErrInvalidBlock, nx[0])
		return
	}
	if nx[1] == 1 && nx[2] > 1 {
		err = fmt.Errorf("%w: a block with NX3 > 1 must have NX2 > 1", ErrInvalidBlock)
		return
	}
	// Piecewise linear reconstruction reads two cells beyond every face
	if nghost < 2 {
		err = fmt.Errorf("%w: need at least 2 ghost layers, have %d", ErrInvalidBlock, nghost)
		return
	}
	is := NewIndexShape(nx[0], nx[1], nx[2], nghost)
	mb = &MeshBlock{
		CellBounds:     is,
		Coords:         NewUniformCoordinates(is, xmin, xmax),
		BCs:            bcs,
		ParallelDegree: ProcLimit,
		Data:           NewContainer(),
	}
	return
}

func (mb *MeshBlock) NDim() (ndim int) {
	ndim = 1
	if mb.CellBounds.IsActive(types.X2DIR) {
		ndim++
	}
	if mb.CellBounds.IsActive(types.X3DIR) {
		ndim++
	}
	return
}

func (mb *MeshBlock) AllocateFields(specs []FieldSpec) {
	for _, spec := range specs {
		mb.Data.Add(spec, mb.CellBounds)
	}
}

func (mb *MeshBlock) NumInteriorCells() int {
	is := mb.CellBounds
	return is.NX[0] * is.NX[1] * is.NX[2]
}

func (mb *MeshBlock) rowPartitions(kb, jb IndexRange) (pm *utils.PartitionMap, nj int) {
	nj = jb.Len()
	nRows := kb.Len() * nj
	pm = utils.NewPartitionMap(utils.GetParallelDegree(mb.ParallelDegree, nRows), nRows)
	return
}

// ParFor calls f for every (k, j) row of the range, rows shared out over go routines
func (mb *MeshBlock) ParFor(kb, jb IndexRange, f func(k, j int)) {
	pm, nj := mb.rowPartitions(kb, jb)
	if nj == 0 {
		return
	}
	pm.ParallelFor(func(_, rMin, rMax int) {
		for r := rMin; r < rMax; r++ {
			f(kb.S+r/nj, jb.S+r%nj)
		}
	})
}

// ParReduceMin returns the minimum of f over every (k, j) row of the range
func (mb *MeshBlock) ParReduceMin(kb, jb IndexRange, f func(k, j int) float64) float64 {
	pm, nj := mb.rowPartitions(kb, jb)
	if nj == 0 {
		return math.MaxFloat64
	}
	return pm.ParallelMin(func(rMin, rMax int) (m float64) {
		m = f(kb.S+rMin/nj, jb.S+rMin%nj)
		for r := rMin + 1; r < rMax; r++ {
			if v := f(kb.S+r/nj, jb.S+r%nj); v < m {
				m = v
			}
		}
		return
	})
}

// ParReduceMax returns the maximum of f over every (k, j) row of the range
func (mb *MeshBlock) ParReduceMax(kb, jb IndexRange, f func(k, j int) float64) float64 {
	pm, nj := mb.rowPartitions(kb, jb)
	if nj == 0 {
		return -math.MaxFloat64
	}
	return pm.ParallelMax(func(rMin, rMax int) (m float64) {
		m = f(kb.S+rMin/nj, jb.S+rMin%nj)
		for r := rMin + 1; r < rMax; r++ {
			if v := f(kb.S+r/nj, jb.S+r%nj); v > m {
				m = v
			}
		}
		return
	})
}

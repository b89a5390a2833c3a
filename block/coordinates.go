package block

import (
	"github.com/notargets/fvhydro/types"
)

// UniformCoordinates is a Cartesian, evenly spaced cell geometry
type UniformCoordinates struct {
	XMin, XMax [3]float64
	DX         [3]float64
	shape      IndexShape
}

func NewUniformCoordinates(is IndexShape, xmin, xmax [3]float64) (uc UniformCoordinates) {
	uc = UniformCoordinates{XMin: xmin, XMax: xmax, shape: is}
	for d := 0; d < 3; d++ {
		uc.DX[d] = (xmax[d] - xmin[d]) / float64(is.NX[d])
	}
	return
}

// Dx is the cell width along dir, the same for every cell of a uniform block
func (uc UniformCoordinates) Dx(dir types.Direction, k, j, i int) float64 {
	return uc.DX[dir]
}

// Xc is the cell center coordinate of index ind along dir, ghosts included
func (uc UniformCoordinates) Xc(dir types.Direction, ind int) float64 {
	return uc.XMin[dir] + (float64(ind-uc.shape.NGhost[dir])+0.5)*uc.DX[dir]
}

// Xf is the left face coordinate of index ind along dir
func (uc UniformCoordinates) Xf(dir types.Direction, ind int) float64 {
	return uc.XMin[dir] + float64(ind-uc.shape.NGhost[dir])*uc.DX[dir]
}

func (uc UniformCoordinates) CellVolume() float64 {
	return uc.DX[0] * uc.DX[1] * uc.DX[2]
}

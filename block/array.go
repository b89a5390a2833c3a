package block

import (
	"fmt"

	"github.com/notargets/fvhydro/types"
)

/*
Array4D is a dense cell field indexed by (n, k, j, i) with i fastest.
Moving one cell along X1, X2, X3 moves the flat index by Stride(dir).
*/
type Array4D struct {
	NVar, NK, NJ, NI int
	Data             []float64
}

func NewArray4D(nvar, nk, nj, ni int) *Array4D {
	return &Array4D{
		NVar: nvar, NK: nk, NJ: nj, NI: ni,
		Data: make([]float64, nvar*nk*nj*ni),
	}
}

func NewArray4DFromShape(nvar int, is IndexShape) *Array4D {
	return NewArray4D(nvar,
		is.NCells(types.X3DIR), is.NCells(types.X2DIR), is.NCells(types.X1DIR))
}

func (a *Array4D) Index(n, k, j, i int) int {
	return ((n*a.NK+k)*a.NJ+j)*a.NI + i
}

func (a *Array4D) Get(n, k, j, i int) float64 {
	return a.Data[a.Index(n, k, j, i)]
}

func (a *Array4D) Set(n, k, j, i int, val float64) {
	a.Data[a.Index(n, k, j, i)] = val
}

func (a *Array4D) Stride(dir types.Direction) int {
	switch dir {
	case types.X2DIR:
		return a.NI
	case types.X3DIR:
		return a.NI * a.NJ
	default:
		return 1
	}
}

// VarStride is the flat distance between the same cell of consecutive variables
func (a *Array4D) VarStride() int {
	return a.NK * a.NJ * a.NI
}

func (a *Array4D) SameShape(b *Array4D) bool {
	return a.NVar == b.NVar && a.NK == b.NK && a.NJ == b.NJ && a.NI == b.NI
}

func (a *Array4D) MustMatch(b *Array4D) {
	if !a.SameShape(b) {
		panic(fmt.Errorf("array shape mismatch: [%d,%d,%d,%d] vs [%d,%d,%d,%d]",
			a.NVar, a.NK, a.NJ, a.NI, b.NVar, b.NK, b.NJ, b.NI))
	}
}

func (a *Array4D) Fill(val float64) {
	for i := range a.Data {
		a.Data[i] = val
	}
}

func (a *Array4D) CopyFrom(b *Array4D) {
	a.MustMatch(b)
	copy(a.Data, b.Data)
}

func (a *Array4D) Copy() (b *Array4D) {
	b = NewArray4D(a.NVar, a.NK, a.NJ, a.NI)
	copy(b.Data, a.Data)
	return
}

// GetCell gathers the NHYDRO variables of one cell
func (a *Array4D) GetCell(k, j, i int) (w [types.NHYDRO]float64) {
	var (
		ind = a.Index(0, k, j, i)
		vs  = a.VarStride()
	)
	for n := 0; n < types.NHYDRO; n++ {
		w[n] = a.Data[ind+n*vs]
	}
	return
}

func (a *Array4D) SetCell(k, j, i int, w [types.NHYDRO]float64) {
	var (
		ind = a.Index(0, k, j, i)
		vs  = a.VarStride()
	)
	for n := 0; n < types.NHYDRO; n++ {
		a.Data[ind+n*vs] = w[n]
	}
}

// Row returns the i-contiguous slice of one variable on row (k, j)
func (a *Array4D) Row(n, k, j int) []float64 {
	ind := a.Index(n, k, j, 0)
	return a.Data[ind : ind+a.NI]
}

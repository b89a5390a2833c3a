package block

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fvhydro/types"
)

var (
	unitMin = [3]float64{0, 0, 0}
	unitMax = [3]float64{1, 1, 1}
)

func outflowAll() (bcs [6]types.BCFLAG) {
	for i := range bcs {
		bcs[i] = types.BC_Outflow
	}
	return
}

func TestIndexShape(t *testing.T) {
	{ // 1D block carries ghosts only along X1
		is := NewIndexShape(16, 1, 1, 2)
		assert.Equal(t, 20, is.NCells(types.X1DIR))
		assert.Equal(t, 1, is.NCells(types.X2DIR))
		assert.Equal(t, 1, is.NCells(types.X3DIR))
		assert.Equal(t, IndexRange{S: 2, E: 17}, is.GetBoundsI(Interior))
		assert.Equal(t, IndexRange{S: 0, E: 19}, is.GetBoundsI(Entire))
		assert.Equal(t, IndexRange{S: 0, E: 0}, is.GetBoundsJ(Interior))
		assert.Equal(t, IndexRange{S: 0, E: 0}, is.GetBoundsK(Entire))
		assert.True(t, is.IsActive(types.X1DIR))
		assert.False(t, is.IsActive(types.X2DIR))
	}
	{ // Range helpers
		ir := IndexRange{S: 2, E: 5}
		assert.Equal(t, 4, ir.Len())
		assert.Equal(t, IndexRange{S: 1, E: 6}, ir.Grow(1))
		assert.Equal(t, IndexRange{S: 2, E: 6}, ir.Faces())
		assert.Equal(t, 0, IndexRange{S: 3, E: 2}.Len())
		assert.Equal(t, "[2,5]", ir.String())
	}
}

func TestArray4D(t *testing.T) {
	a := NewArray4D(types.NHYDRO, 3, 4, 5)
	assert.Equal(t, 5*3*4*5, len(a.Data))
	assert.Equal(t, 1, a.Stride(types.X1DIR))
	assert.Equal(t, 5, a.Stride(types.X2DIR))
	assert.Equal(t, 20, a.Stride(types.X3DIR))
	assert.Equal(t, 60, a.VarStride())
	{ // Stride moves one cell along each axis
		base := a.Index(1, 1, 2, 3)
		assert.Equal(t, a.Index(1, 1, 2, 4), base+a.Stride(types.X1DIR))
		assert.Equal(t, a.Index(1, 1, 3, 3), base+a.Stride(types.X2DIR))
		assert.Equal(t, a.Index(1, 2, 2, 3), base+a.Stride(types.X3DIR))
		assert.Equal(t, a.Index(2, 1, 2, 3), base+a.VarStride())
	}
	{ // Cell gather/scatter
		w := [types.NHYDRO]float64{1, 2, 3, 4, 5}
		a.SetCell(2, 3, 4, w)
		assert.Equal(t, w, a.GetCell(2, 3, 4))
		assert.Equal(t, 3., a.Get(types.IVY, 2, 3, 4))
		assert.Equal(t, 5., a.Row(types.IPR, 2, 3)[4])
	}
	{ // Copies are deep and shape checked
		b := a.Copy()
		b.Fill(7)
		assert.Equal(t, 0., a.Get(0, 0, 0, 0))
		a.CopyFrom(b)
		assert.Equal(t, 7., a.Get(0, 0, 0, 0))
		assert.Panics(t, func() { a.CopyFrom(NewArray4D(1, 1, 1, 1)) })
	}
}

func TestCoordinates(t *testing.T) {
	is := NewIndexShape(10, 4, 1, 2)
	uc := NewUniformCoordinates(is, [3]float64{-1, 0, 0}, [3]float64{1, 2, 1})
	assert.InDelta(t, 0.2, uc.Dx(types.X1DIR, 0, 0, 0), 1.e-15)
	assert.InDelta(t, 0.5, uc.Dx(types.X2DIR, 0, 0, 0), 1.e-15)
	assert.InDelta(t, 1.0, uc.Dx(types.X3DIR, 0, 0, 0), 1.e-15)
	assert.InDelta(t, -0.9, uc.Xc(types.X1DIR, 2), 1.e-15)
	assert.InDelta(t, -1.0, uc.Xf(types.X1DIR, 2), 1.e-15)
	assert.InDelta(t, 1.0, uc.Xf(types.X1DIR, 12), 1.e-15)
	assert.InDelta(t, 0.1, uc.CellVolume(), 1.e-15)
}

func TestNewMeshBlock(t *testing.T) {
	bcs := outflowAll()
	{ // Valid shapes
		mb, err := NewMeshBlock([3]int{8, 1, 1}, 2, unitMin, unitMax, bcs, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, mb.NDim())
		mb, err = NewMeshBlock([3]int{8, 8, 1}, 2, unitMin, unitMax, bcs, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, mb.NDim())
		mb, err = NewMeshBlock([3]int{4, 4, 4}, 3, unitMin, unitMax, bcs, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, mb.NDim())
		assert.Equal(t, 64, mb.NumInteriorCells())
	}
	{ // Invalid shapes
		for _, tc := range []struct {
			nx     [3]int
			nghost int
		}{
			{[3]int{0, 1, 1}, 2},
			{[3]int{8, 1, 4}, 2},
			{[3]int{8, 1, 1}, 1},
			{[3]int{8, 3, 1}, 4},
		} {
			_, err := NewMeshBlock(tc.nx, tc.nghost, unitMin, unitMax, bcs, 1)
			assert.ErrorIs(t, err, ErrInvalidBlock, "%v", tc)
		}
		_, err := NewMeshBlock([3]int{8, 1, 1}, 2, unitMax, unitMin, bcs, 1)
		assert.ErrorIs(t, err, ErrInvalidBlock)
	}
}

func TestContainer(t *testing.T) {
	mb, err := NewMeshBlock([3]int{8, 8, 1}, 2, unitMin, unitMax, outflowAll(), 1)
	require.NoError(t, err)
	mb.AllocateFields([]FieldSpec{
		{Name: "cons", NVar: types.NHYDRO, Metadata: Metadata{Cell, Independent, FillGhost, WithFluxes}},
		{Name: "prim", NVar: types.NHYDRO, Metadata: Metadata{Cell, Derived}},
	})
	cons := mb.Data.Get("cons")
	require.NotNil(t, cons)
	assert.NotNil(t, cons.Flux[types.X1DIR])
	assert.NotNil(t, cons.Flux[types.X2DIR])
	assert.Nil(t, cons.Flux[types.X3DIR])
	assert.Nil(t, mb.Data.Get("prim").Flux[types.X1DIR])
	assert.Nil(t, mb.Data.Get("missing"))
	assert.Equal(t, []string{"cons", "prim"}, mb.Data.Names())
	{ // Re-allocation keeps the existing storage
		cons.Data.Fill(3)
		mb.AllocateFields([]FieldSpec{{Name: "cons", NVar: types.NHYDRO}})
		assert.Equal(t, 3., mb.Data.Get("cons").Data.Get(0, 0, 4, 4))
	}
}

func TestParFor(t *testing.T) {
	mb, err := NewMeshBlock([3]int{4, 6, 5}, 2, unitMin, unitMax, outflowAll(), 0)
	require.NoError(t, err)
	kb, jb := mb.CellBounds.GetBoundsK(Interior), mb.CellBounds.GetBoundsJ(Interior)
	for _, NP := range []int{1, 2, 7, 64} {
		mb.ParallelDegree = NP
		var (
			mu   sync.Mutex
			seen = make(map[[2]int]int)
		)
		mb.ParFor(kb, jb, func(k, j int) {
			mu.Lock()
			seen[[2]int{k, j}]++
			mu.Unlock()
		})
		assert.Equal(t, kb.Len()*jb.Len(), len(seen))
		for key, count := range seen {
			assert.Equal(t, 1, count, "%v", key)
			assert.True(t, key[0] >= kb.S && key[0] <= kb.E)
			assert.True(t, key[1] >= jb.S && key[1] <= jb.E)
		}
		rowVal := func(k, j int) float64 { return float64(10*k + j) }
		assert.Equal(t, float64(10*kb.S+jb.S), mb.ParReduceMin(kb, jb, rowVal))
		assert.Equal(t, float64(10*kb.E+jb.E), mb.ParReduceMax(kb, jb, rowVal))
	}
}

func TestFillGhost(t *testing.T) {
	newBlock := func(bc types.BCFLAG) (mb *MeshBlock, a *Array4D) {
		var bcs [6]types.BCFLAG
		for i := range bcs {
			bcs[i] = bc
		}
		var err error
		mb, err = NewMeshBlock([3]int{6, 4, 1}, 2, unitMin, unitMax, bcs, 1)
		require.NoError(t, err)
		mb.AllocateFields([]FieldSpec{
			{Name: "cons", NVar: types.NHYDRO, Metadata: Metadata{Cell, FillGhost}},
		})
		a = mb.Data.Get("cons").Data
		ib, jb := mb.CellBounds.GetBoundsI(Interior), mb.CellBounds.GetBoundsJ(Interior)
		for n := 0; n < types.NHYDRO; n++ {
			for j := jb.S; j <= jb.E; j++ {
				for i := ib.S; i <= ib.E; i++ {
					a.Set(n, 0, j, i, float64(100*n+10*j+i))
				}
			}
		}
		mb.FillGhost()
		return
	}
	{ // Outflow copies the nearest interior cell
		mb, a := newBlock(types.BC_Outflow)
		ib := mb.CellBounds.GetBoundsI(Interior)
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.S), a.Get(types.IDN, 0, 3, 0))
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.E), a.Get(types.IDN, 0, 3, ib.E+2))
		// corner takes the doubly-nearest interior value
		assert.Equal(t, a.Get(types.IPR, 0, 2, ib.S), a.Get(types.IPR, 0, 0, 0))
	}
	{ // Reflect mirrors and negates the normal velocity only
		mb, a := newBlock(types.BC_Reflect)
		ib, jb := mb.CellBounds.GetBoundsI(Interior), mb.CellBounds.GetBoundsJ(Interior)
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.S+1), a.Get(types.IDN, 0, 3, ib.S-2))
		assert.Equal(t, -a.Get(types.IVX, 0, 3, ib.S), a.Get(types.IVX, 0, 3, ib.S-1))
		assert.Equal(t, a.Get(types.IVY, 0, 3, ib.E), a.Get(types.IVY, 0, 3, ib.E+1))
		assert.Equal(t, -a.Get(types.IVY, 0, jb.E, 4), a.Get(types.IVY, 0, jb.E+1, 4))
		assert.Equal(t, a.Get(types.IVX, 0, jb.E, 4), a.Get(types.IVX, 0, jb.E+1, 4))
	}
	{ // Periodic wraps around
		mb, a := newBlock(types.BC_Periodic)
		ib, jb := mb.CellBounds.GetBoundsI(Interior), mb.CellBounds.GetBoundsJ(Interior)
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.E), a.Get(types.IDN, 0, 3, ib.S-1))
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.E-1), a.Get(types.IDN, 0, 3, ib.S-2))
		assert.Equal(t, a.Get(types.IDN, 0, 3, ib.S), a.Get(types.IDN, 0, 3, ib.E+1))
		assert.Equal(t, a.Get(types.IVX, 0, jb.S, 4), a.Get(types.IVX, 0, jb.E+1, 4))
		assert.Equal(t, a.Get(types.IVX, 0, jb.E, ib.E), a.Get(types.IVX, 0, jb.S-1, ib.S-1))
	}
}

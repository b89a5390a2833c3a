package recon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/fvhydro/block"
	"github.com/notargets/fvhydro/types"
)

func newBlock3D(t *testing.T) *block.MeshBlock {
	var bcs [6]types.BCFLAG
	mb, err := block.NewMeshBlock([3]int{6, 5, 4}, 2,
		[3]float64{0, 0, 0}, [3]float64{1, 1, 1}, bcs, 4)
	require.NoError(t, err)
	return mb
}

// faceRanges returns interior faces along dir, transverse ranges interior only
func faceRanges(mb *block.MeshBlock, dir types.Direction) (kb, jb, ib block.IndexRange) {
	is := mb.CellBounds
	kb, jb, ib = is.GetBoundsK(block.Interior), is.GetBoundsJ(block.Interior), is.GetBoundsI(block.Interior)
	switch dir {
	case types.X1DIR:
		ib = ib.Faces()
	case types.X2DIR:
		jb = jb.Faces()
	case types.X3DIR:
		kb = kb.Faces()
	}
	return
}

func TestLimiters(t *testing.T) {
	for _, tc := range []struct {
		lt         LimiterType
		a, b, want float64
	}{
		{LIMITER_VanLeer, 1, 1, 1},
		{LIMITER_VanLeer, 1, 3, 1.5},
		{LIMITER_VanLeer, -1, -3, -1.5},
		{LIMITER_VanLeer, 1, -1, 0},
		{LIMITER_VanLeer, 0, 2, 0},
		{LIMITER_MinMod, 1, 3, 1},
		{LIMITER_MinMod, -4, -3, -3},
		{LIMITER_MinMod, 2, -3, 0},
	} {
		assert.InDelta(t, tc.want, tc.lt.Limit(tc.a, tc.b), 1.e-15, "%s(%g,%g)", tc.lt, tc.a, tc.b)
	}
	lt, err := NewLimiterType("MinMod")
	assert.NoError(t, err)
	assert.Equal(t, LIMITER_MinMod, lt)
	lt, err = NewLimiterType("")
	assert.NoError(t, err)
	assert.Equal(t, LIMITER_VanLeer, lt)
	_, err = NewLimiterType("superbee")
	assert.ErrorIs(t, err, ErrUnknownLimiter)
	assert.Equal(t, "Van Leer", LIMITER_VanLeer.String())
}

func TestUniformState(t *testing.T) {
	mb := newBlock3D(t)
	var (
		w  = block.NewArray4DFromShape(types.NHYDRO, mb.CellBounds)
		wl = block.NewArray4DFromShape(types.NHYDRO, mb.CellBounds)
		wr = block.NewArray4DFromShape(types.NHYDRO, mb.CellBounds)
		st = [types.NHYDRO]float64{1.3, 0.2, -0.1, 0.4, 0.9}
	)
	for k := 0; k < w.NK; k++ {
		for j := 0; j < w.NJ; j++ {
			for i := 0; i < w.NI; i++ {
				w.SetCell(k, j, i, st)
			}
		}
	}
	for _, dir := range types.Directions {
		kb, jb, ib := faceRanges(mb, dir)
		ax := NewAxis(w, dir)
		for _, useDC := range []bool{true, false} {
			wl.Fill(-1)
			wr.Fill(-1)
			if useDC {
				DonorCell(mb, kb, jb, ib, ax, w, wl, wr)
			} else {
				PiecewiseLinear(mb, kb, jb, ib, ax, LIMITER_VanLeer, w, wl, wr)
			}
			for k := kb.S; k <= kb.E; k++ {
				for j := jb.S; j <= jb.E; j++ {
					for i := ib.S; i <= ib.E; i++ {
						assert.Equal(t, st, wl.GetCell(k, j, i))
						assert.Equal(t, st, wr.GetCell(k, j, i))
					}
				}
			}
		}
	}
}

func TestDonorCellShift(t *testing.T) {
	mb := newBlock3D(t)
	w := block.NewArray4DFromShape(types.NHYDRO, mb.CellBounds)
	wl, wr := w.Copy(), w.Copy()
	for n := range w.Data {
		w.Data[n] = float64(n)
	}
	for _, dir := range types.Directions {
		kb, jb, ib := faceRanges(mb, dir)
		DonorCell(mb, kb, jb, ib, NewAxis(w, dir), w, wl, wr)
		off := [3]int{}
		off[dir] = 1
		k, j, i := kb.S+1, jb.S+1, ib.S+1
		for n := 0; n < types.NHYDRO; n++ {
			assert.Equal(t, w.Get(n, k-off[2], j-off[1], i-off[0]), wl.Get(n, k, j, i))
			assert.Equal(t, w.Get(n, k, j, i), wr.Get(n, k, j, i))
		}
	}
}

func TestPiecewiseLinear(t *testing.T) {
	mb := newBlock3D(t)
	var (
		w       = block.NewArray4DFromShape(types.NHYDRO, mb.CellBounds)
		ibE     = mb.CellBounds.GetBoundsI(block.Entire)
		profile = func(i int) float64 {
			// linear ramp, then a jump, then flat
			switch {
			case i < 5:
				return 0.5 * float64(i)
			case i < 7:
				return 4
			default:
				return 1
			}
		}
	)
	for k := 0; k < w.NK; k++ {
		for j := 0; j < w.NJ; j++ {
			for i := ibE.S; i <= ibE.E; i++ {
				for n := 0; n < types.NHYDRO; n++ {
					w.Set(n, k, j, i, profile(i))
				}
			}
		}
	}
	for _, lt := range []LimiterType{LIMITER_VanLeer, LIMITER_MinMod} {
		kb, jb, ib := faceRanges(mb, types.X1DIR)
		wl, wr := w.Copy(), w.Copy()
		PiecewiseLinear(mb, kb, jb, ib, NewAxis(w, types.X1DIR), lt, w, wl, wr)
		k, j := kb.S, jb.S
		{ // Exact on linear data
			assert.InDelta(t, 0.5*2.5, wl.Get(types.IDN, k, j, 3), 1.e-15, "%s", lt)
			assert.InDelta(t, 0.5*2.5, wr.Get(types.IDN, k, j, 3), 1.e-15, "%s", lt)
		}
		{ // Face values stay within the neighboring cell averages
			for i := ib.S; i <= ib.E; i++ {
				lo := math.Min(profile(i-1), profile(i))
				hi := math.Max(profile(i-1), profile(i))
				for _, v := range []float64{wl.Get(types.IPR, k, j, i), wr.Get(types.IPR, k, j, i)} {
					assert.GreaterOrEqual(t, v, lo-1.e-15, "%s face %d", lt, i)
					assert.LessOrEqual(t, v, hi+1.e-15, "%s face %d", lt, i)
				}
			}
		}
		{ // Extrema are flattened
			assert.Equal(t, 4., wr.Get(types.IDN, k, j, 5), "%s", lt)
			assert.Equal(t, 4., wl.Get(types.IDN, k, j, 7), "%s", lt)
			assert.Equal(t, 1., wr.Get(types.IDN, k, j, 7), "%s", lt)
		}
		{ // Every direction agrees with its transposed problem
			w2 := w.Copy()
			for k := 0; k < w.NK; k++ {
				for j := 0; j < w.NJ; j++ {
					for i := 0; i < w.NI; i++ {
						for n := 0; n < types.NHYDRO; n++ {
							w2.Set(n, k, j, i, profile(j)+10*profile(k))
						}
					}
				}
			}
			wl2, wr2 := w2.Copy(), w2.Copy()
			kb, jb, ib := faceRanges(mb, types.X2DIR)
			PiecewiseLinear(mb, kb, jb, ib, NewAxis(w2, types.X2DIR), lt, w2, wl2, wr2)
			i := ib.S
			for j := jb.S; j <= jb.E; j++ {
				assert.InDelta(t, wl.Get(0, kb.S, jb.S, j)+10*profile(kb.S), wl2.Get(0, kb.S, j, i), 1.e-14, "%s", lt)
				assert.InDelta(t, wr.Get(0, kb.S, jb.S, j)+10*profile(kb.S), wr2.Get(0, kb.S, j, i), 1.e-14, "%s", lt)
			}
		}
	}
}

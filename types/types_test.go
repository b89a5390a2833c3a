package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Rotated velocity indices are cyclic permutations
		ivn, ivt1, ivt2 := X1DIR.VelocityIndices()
		assert.Equal(t, [3]int{IVX, IVY, IVZ}, [3]int{ivn, ivt1, ivt2})
		ivn, ivt1, ivt2 = X2DIR.VelocityIndices()
		assert.Equal(t, [3]int{IVY, IVZ, IVX}, [3]int{ivn, ivt1, ivt2})
		ivn, ivt1, ivt2 = X3DIR.VelocityIndices()
		assert.Equal(t, [3]int{IVZ, IVX, IVY}, [3]int{ivn, ivt1, ivt2})
	}
	{ // Conserved and primitive indices alias each other
		assert.Equal(t, 5, NHYDRO)
		assert.Equal(t, IVX, IM1)
		assert.Equal(t, IPR, IEN)
		assert.Equal(t, "X2", X2DIR.String())
	}
	{ // Boundary flags
		bc, err := NewBCFLAG("Periodic")
		assert.NoError(t, err)
		assert.Equal(t, BC_Periodic, bc)
		assert.Equal(t, "Periodic", bc.String())
		bc, err = NewBCFLAG("wall")
		assert.NoError(t, err)
		assert.Equal(t, BC_Reflect, bc)
		_, err = NewBCFLAG("inflow")
		assert.Error(t, err)
	}
	{ // Boundary faces
		assert.Equal(t, X2DIR, OuterX2.Direction())
		assert.True(t, OuterX3.IsOuter())
		assert.False(t, InnerX1.IsOuter())
		assert.Equal(t, InnerX3, BoundaryFaceNames["ix3"])
	}
}

package types

// Variable indices shared by the conserved and primitive cell fields
const (
	IDN = iota // density
	IVX        // velocity / momentum, x1
	IVY        // velocity / momentum, x2
	IVZ        // velocity / momentum, x3
	IPR        // pressure / total energy
	NHYDRO
)

const (
	IM1 = IVX
	IM2 = IVY
	IM3 = IVZ
	IEN = IPR
)

type Direction uint8

const (
	X1DIR Direction = iota
	X2DIR
	X3DIR
)

var Directions = [3]Direction{X1DIR, X2DIR, X3DIR}

func (d Direction) String() string {
	return [3]string{"X1", "X2", "X3"}[d]
}

// VelocityIndices returns the normal velocity index followed by the two transverse
// indices in cyclic order, so the Riemann solvers can work in a rotated frame.
func (d Direction) VelocityIndices() (ivn, ivt1, ivt2 int) {
	switch d {
	case X2DIR:
		return IVY, IVZ, IVX
	case X3DIR:
		return IVZ, IVX, IVY
	default:
		return IVX, IVY, IVZ
	}
}

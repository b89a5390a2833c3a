package utils

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func SQR(x float64) float64 { return x * x }

// Linspace returns N values evenly spaced over [xmin, xmax]
func Linspace(xmin, xmax float64, N int) (x []float64) {
	x = make([]float64, N)
	if N == 1 {
		x[0] = xmin
		return
	}
	dx := (xmax - xmin) / float64(N-1)
	for i := range x {
		x[i] = xmin + float64(i)*dx
	}
	return
}

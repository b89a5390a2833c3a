package recon

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownLimiter = errors.New("unknown slope limiter")

type LimiterType uint8

const (
	LIMITER_VanLeer LimiterType = iota
	LIMITER_MinMod
)

var (
	LimiterNames = map[string]LimiterType{
		"vanleer":  LIMITER_VanLeer,
		"van_leer": LIMITER_VanLeer,
		"minmod":   LIMITER_MinMod,
	}
	LimiterPrintNames = []string{"Van Leer", "MinMod"}
)

func (lt LimiterType) Print() (txt string) {
	if int(lt) < len(LimiterPrintNames) {
		txt = LimiterPrintNames[lt]
		return
	}
	txt = fmt.Sprintf("LimiterType(%d)", lt)
	return
}

func (lt LimiterType) String() string { return lt.Print() }

func NewLimiterType(label string) (lt LimiterType, err error) {
	var ok bool
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return LIMITER_VanLeer, nil
	}
	if lt, ok = LimiterNames[label]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownLimiter, label)
	}
	return
}

// Limit combines the backward difference a and forward difference b into a slope
// that vanishes at extrema.
func (lt LimiterType) Limit(a, b float64) float64 {
	switch lt {
	case LIMITER_MinMod:
		if a*b <= 0 {
			return 0
		}
		if math.Abs(a) < math.Abs(b) {
			return a
		}
		return b
	default:
		// harmonic mean
		dw2 := a * b
		if dw2 > 0 {
			return 2 * dw2 / (a + b)
		}
		return 0
	}
}

//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions returns the hardware instruction count of f on the calling thread
func countInstructions(f func() error) (uint64, error) {
	pv, err := perf.CPUInstructions(f)
	if err != nil {
		return 0, err
	}
	return pv.Value, nil
}

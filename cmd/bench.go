/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/fvhydro/InputParameters"
	"github.com/notargets/fvhydro/hydro"
	"github.com/notargets/fvhydro/model_problems/EulerFV"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the flux kernels on a Sod shock tube",
	Long: `Time the flux kernels on a Sod shock tube and report zone-cycles per second,

fvhydro bench --nx 512 --iterations 200 --perf`,
	Run: func(cmd *cobra.Command, args []string) {
		nx, _ := cmd.Flags().GetIntSlice("nx")
		iterations, _ := cmd.Flags().GetInt("iterations")
		flux, _ := cmd.Flags().GetString("flux")
		withPerf, _ := cmd.Flags().GetBool("perf")
		if err := RunBench(nx, iterations, flux, withPerf); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntSlice("nx", []int{256}, "cells per direction, one to three values")
	BenchCmd.Flags().IntP("iterations", "n", 100, "cycles to run")
	BenchCmd.Flags().String("flux", "hlle", "riemann solver: hlle, llf or hllc")
	BenchCmd.Flags().Bool("perf", false, "count cpu instructions of one flux pass (linux only)")
}

func benchParams(nx []int, iterations int, flux string) (ip *InputParameters.HydroParameters, err error) {
	if len(nx) < 1 || len(nx) > 3 {
		err = fmt.Errorf("need one to three cell counts, have %v", nx)
		return
	}
	ip = &InputParameters.HydroParameters{
		Title:         "bench",
		Problem:       "sod",
		Gamma:         1.4,
		FluxType:      flux,
		FinalTime:     1.e6,
		MaxIterations: iterations,
		ProgressEvery: iterations + 1,
	}
	dims := []*int{&ip.NX1, &ip.NX2, &ip.NX3}
	for i, n := range nx {
		*dims[i] = n
	}
	return
}

func RunBench(nx []int, iterations int, flux string, withPerf bool) (err error) {
	var (
		ip  *InputParameters.HydroParameters
		c   *EulerFV.EulerFV
		res EulerFV.Result
	)
	if ip, err = benchParams(nx, iterations, flux); err != nil {
		return
	}
	if c, err = EulerFV.NewEulerFV(ip); err != nil {
		return
	}
	if withPerf {
		var instructions uint64
		if instructions, err = measureFluxPass(c, countInstructions); err != nil {
			log.Warn("instruction count unavailable: ", err)
			err = nil
		} else {
			log.WithFields(log.Fields{
				"instructions":  instructions,
				"per-cell-face": fmt.Sprintf("%.1f", float64(instructions)/float64(c.Block.NumInteriorCells()*c.Block.NDim())),
			}).Info("flux pass")
		}
	}
	if res, err = c.Run(context.Background()); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"cells":           c.Block.NumInteriorCells(),
		"cycles":          res.Cycles,
		"wall":            res.WallTime,
		"zone-cycles/sec": fmt.Sprintf("%.4g", res.ZoneCyclesPerSecond),
	}).Info("bench")
	return
}

/*
measureFluxPass counts one piecewise linear flux pass with count. Hardware counters follow
the calling thread only, so the pass runs on a single shard and the block's parallel
degree is restored afterwards.
*/
func measureFluxPass(c *EulerFV.EulerFV, count func(f func() error) (uint64, error)) (instructions uint64, err error) {
	degree := c.Block.ParallelDegree
	c.Block.ParallelDegree = 1
	defer func() { c.Block.ParallelDegree = degree }()
	if err = c.RefreshPrimitives(); err != nil {
		return
	}
	return count(func() error {
		if c.Hydro.CalculateFluxes(c.Block, 2) != hydro.TaskComplete {
			return fmt.Errorf("flux pass did not complete")
		}
		return nil
	})
}

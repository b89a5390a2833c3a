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
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/fvhydro/InputParameters"
	"github.com/notargets/fvhydro/model_problems/EulerFV"
)

type ModelFV struct {
	ICFile      string
	Graph       bool
	Profile     string
	MetricsFile string
}

const exampleFile = `
########################################
Title: "Sod Shock Tube"
Problem: sod # Can be "uniform" or "densitywave"
Gamma: 1.4
CFL: 0.3
FluxType: hlle # Can be "llf" or "hllc"
Limiter: vanleer # Can be "minmod"
FinalTime: 0.2
NX1: 256
BCs:
  ix1: outflow
  ox1: outflow
########################################
`

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a hydro problem from an input file",
	Long: `Run a hydro problem described by a YAML or INI (.ini, .in) input file,

fvhydro run -I sod.yaml --graph`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		m := &ModelFV{}
		m.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m.Graph, _ = cmd.Flags().GetBool("graph")
		m.Profile, _ = cmd.Flags().GetString("profile")
		m.MetricsFile, _ = cmd.Flags().GetString("metricsFile")
		if len(m.ICFile) == 0 {
			fmt.Printf("error: must supply an input parameters file (-I, --inputConditionsFile)\n")
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		ip, err := processInput(m.ICFile)
		if err != nil {
			log.Fatal(err)
		}
		applyOverrides(ip)
		if err = RunFV(m, ip); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or INI file for input parameters")
	RunCmd.Flags().Float64("finalTime", 0, "override FinalTime of the input file")
	RunCmd.Flags().Float64("cfl", 0, "override CFL of the input file")
	RunCmd.Flags().BoolP("graph", "g", false, "plot the final density profile in the terminal")
	RunCmd.Flags().String("profile", "", "write a cpu or mem profile of the run")
	RunCmd.Flags().String("metricsFile", "", "write run metrics in prometheus text format to this file")
	_ = viper.BindPFlag("finalTime", RunCmd.Flags().Lookup("finalTime"))
	_ = viper.BindPFlag("cfl", RunCmd.Flags().Lookup("cfl"))
}

// processInput reads the input file, choosing the INI parser by extension
func processInput(path string) (ip *InputParameters.HydroParameters, err error) {
	var (
		data []byte
	)
	if path, err = homedir.Expand(path); err != nil {
		return
	}
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &InputParameters.HydroParameters{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".in", ".athinput":
		err = ip.ParseINI(data)
	default:
		err = ip.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return
}

// applyOverrides lets flags and FVHYDRO_ environment variables replace input file values
func applyOverrides(ip *InputParameters.HydroParameters) {
	if viper.IsSet("finalTime") {
		if ft := viper.GetFloat64("finalTime"); ft > 0 {
			ip.FinalTime = ft
		}
	}
	if viper.IsSet("cfl") {
		if cfl := viper.GetFloat64("cfl"); cfl > 0 {
			ip.CFL = cfl
		}
	}
}

func RunFV(m *ModelFV, ip *InputParameters.HydroParameters) (err error) {
	var (
		c   *EulerFV.EulerFV
		res EulerFV.Result
	)
	switch m.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile type %q, use cpu or mem", m.Profile)
	}
	if c, err = EulerFV.NewEulerFV(ip); err != nil {
		return
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		ip.Print()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err = c.Run(ctx)
	if m.MetricsFile != "" {
		if werr := c.Metrics.WriteToTextfile(m.MetricsFile); werr != nil {
			log.Error(werr)
		}
	}
	if err != nil {
		return
	}
	log.WithFields(log.Fields{
		"cycles":          res.Cycles,
		"time":            res.Time,
		"wall":            res.WallTime,
		"zone-cycles/sec": fmt.Sprintf("%.4g", res.ZoneCyclesPerSecond),
	}).Info("finished")
	if l1, serr := c.SodError(); serr == nil {
		log.WithField("L1", fmt.Sprintf("%.5e", l1)).Info("density error against the exact solution")
	}
	if m.Graph {
		fmt.Println(c.DensityPlot())
	}
	return
}

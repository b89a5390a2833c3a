package InputParameters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"gopkg.in/ini.v1"

	"github.com/notargets/fvhydro/hydro/eos"
	"github.com/notargets/fvhydro/hydro/recon"
	"github.com/notargets/fvhydro/hydro/rsolvers"
	"github.com/notargets/fvhydro/types"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Parameters obtained from the YAML or INI input file
type HydroParameters struct {
	Title          string            `json:"Title"`
	Problem        string            `json:"Problem"`
	EOS            string            `json:"EOS"`
	Gamma          float64           `json:"Gamma"`
	CFL            float64           `json:"CFL"`
	DFloor         float64           `json:"DFloor"` // zero selects eos.DefaultFloor
	PFloor         float64           `json:"PFloor"`
	Reconstruction string            `json:"Reconstruction"` // "plm" follows the stage, "dc" always donor cell
	Limiter        string            `json:"Limiter"`
	FluxType       string            `json:"FluxType"`
	Integrator     string            `json:"Integrator"`
	FinalTime      float64           `json:"FinalTime"`
	MaxIterations  int               `json:"MaxIterations"`
	NX1            int               `json:"NX1"`
	NX2            int               `json:"NX2"`
	NX3            int               `json:"NX3"`
	NGhost         int               `json:"NGhost"`
	X1Min          float64           `json:"X1Min"`
	X1Max          float64           `json:"X1Max"`
	X2Min          float64           `json:"X2Min"`
	X2Max          float64           `json:"X2Max"`
	X3Min          float64           `json:"X3Min"`
	X3Max          float64           `json:"X3Max"`
	BCs            map[string]string `json:"BCs"` // face name (ix1, ox1, ...) to boundary type
	ProgressEvery  int               `json:"ProgressEvery"`
	ProcLimit      int               `json:"ProcLimit"`

	RefinementPressureThreshold float64 `json:"RefinementPressureThreshold"`
}

func (ip *HydroParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.ApplyDefaults()
	return
}

/*
ParseINI reads the sectioned parameter format:

	[problem] title, name
	[hydro] eos, gamma, cfl, dfloor, pfloor, reconstruction, limiter, riemann
	[time] integrator, tlim, nlim, ncycle_out
	[mesh] nx1..nx3, nghost, x1min..x3max, ix1_bc..ox3_bc
	[refinement] pressure_threshold
	[parallel] proclimit
*/
func (ip *HydroParameters) ParseINI(data []byte) (err error) {
	var file *ini.File
	if file, err = ini.LoadSources(ini.LoadOptions{Insensitive: true}, data); err != nil {
		return
	}
	var (
		problem = file.Section("problem")
		hydro   = file.Section("hydro")
		tm      = file.Section("time")
		mesh    = file.Section("mesh")
	)
	ip.Title = problem.Key("title").MustString(ip.Title)
	ip.Problem = problem.Key("name").MustString(ip.Problem)
	ip.EOS = hydro.Key("eos").MustString(ip.EOS)
	ip.Gamma = hydro.Key("gamma").MustFloat64(ip.Gamma)
	ip.CFL = hydro.Key("cfl").MustFloat64(ip.CFL)
	ip.DFloor = hydro.Key("dfloor").MustFloat64(ip.DFloor)
	ip.PFloor = hydro.Key("pfloor").MustFloat64(ip.PFloor)
	ip.Reconstruction = hydro.Key("reconstruction").MustString(ip.Reconstruction)
	ip.Limiter = hydro.Key("limiter").MustString(ip.Limiter)
	ip.FluxType = hydro.Key("riemann").MustString(ip.FluxType)
	ip.Integrator = tm.Key("integrator").MustString(ip.Integrator)
	ip.FinalTime = tm.Key("tlim").MustFloat64(ip.FinalTime)
	ip.MaxIterations = tm.Key("nlim").MustInt(ip.MaxIterations)
	ip.ProgressEvery = tm.Key("ncycle_out").MustInt(ip.ProgressEvery)
	ip.NX1 = mesh.Key("nx1").MustInt(ip.NX1)
	ip.NX2 = mesh.Key("nx2").MustInt(ip.NX2)
	ip.NX3 = mesh.Key("nx3").MustInt(ip.NX3)
	ip.NGhost = mesh.Key("nghost").MustInt(ip.NGhost)
	ip.X1Min = mesh.Key("x1min").MustFloat64(ip.X1Min)
	ip.X1Max = mesh.Key("x1max").MustFloat64(ip.X1Max)
	ip.X2Min = mesh.Key("x2min").MustFloat64(ip.X2Min)
	ip.X2Max = mesh.Key("x2max").MustFloat64(ip.X2Max)
	ip.X3Min = mesh.Key("x3min").MustFloat64(ip.X3Min)
	ip.X3Max = mesh.Key("x3max").MustFloat64(ip.X3Max)
	for face := range types.BoundaryFaceNames {
		if mesh.HasKey(face + "_bc") {
			if ip.BCs == nil {
				ip.BCs = make(map[string]string)
			}
			ip.BCs[face] = mesh.Key(face + "_bc").String()
		}
	}
	ip.RefinementPressureThreshold = file.Section("refinement").Key("pressure_threshold").
		MustFloat64(ip.RefinementPressureThreshold)
	ip.ProcLimit = file.Section("parallel").Key("proclimit").MustInt(ip.ProcLimit)
	ip.ApplyDefaults()
	return
}

// ApplyDefaults fills every unset optional parameter. Gamma has no default.
func (ip *HydroParameters) ApplyDefaults() {
	setS := func(s *string, def string) {
		if strings.TrimSpace(*s) == "" {
			*s = def
		}
	}
	setI := func(i *int, def int) {
		if *i == 0 {
			*i = def
		}
	}
	setS(&ip.Title, "fvhydro")
	setS(&ip.Problem, "sod")
	setS(&ip.EOS, "adiabatic")
	setS(&ip.Reconstruction, "plm")
	setS(&ip.Limiter, "vanleer")
	setS(&ip.FluxType, "hlle")
	setS(&ip.Integrator, "vl2")
	if ip.CFL == 0 {
		ip.CFL = 0.3
	}
	if ip.FinalTime == 0 {
		ip.FinalTime = 0.2
	}
	setI(&ip.MaxIterations, 100000)
	setI(&ip.NX1, 128)
	setI(&ip.NX2, 1)
	setI(&ip.NX3, 1)
	setI(&ip.NGhost, 2)
	setI(&ip.ProgressEvery, 100)
	for _, x := range []struct{ min, max *float64 }{
		{&ip.X1Min, &ip.X1Max}, {&ip.X2Min, &ip.X2Max}, {&ip.X3Min, &ip.X3Max},
	} {
		if *x.min == 0 && *x.max == 0 {
			*x.max = 1
		}
	}
}

func (ip *HydroParameters) Validate() (err error) {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
	}
	if _, err = eos.NewKind(ip.EOS); err != nil {
		return
	}
	if _, err = rsolvers.NewFluxType(ip.FluxType); err != nil {
		return
	}
	if _, err = recon.NewLimiterType(ip.Limiter); err != nil {
		return
	}
	if _, err = ip.BoundaryFlags(); err != nil {
		return
	}
	switch {
	case !(ip.Gamma > 1):
		return invalid("Gamma must be set and > 1, have %g", ip.Gamma)
	case !(ip.CFL > 0 && ip.CFL <= 1):
		return invalid("CFL must lie in (0,1], have %g", ip.CFL)
	case ip.DFloor < 0 || ip.PFloor < 0:
		return invalid("floors must be non-negative")
	case ip.NX1 < 1 || ip.NX2 < 1 || ip.NX3 < 1:
		return invalid("cell counts must be positive, have %d x %d x %d", ip.NX1, ip.NX2, ip.NX3)
	case ip.NX2 == 1 && ip.NX3 > 1:
		return invalid("NX3 > 1 requires NX2 > 1")
	case ip.NGhost < 2:
		return invalid("NGhost must be at least 2 for piecewise linear reconstruction, have %d", ip.NGhost)
	case ip.X1Max <= ip.X1Min || ip.X2Max <= ip.X2Min || ip.X3Max <= ip.X3Min:
		return invalid("domain bounds must satisfy Min < Max")
	case ip.FinalTime <= 0:
		return invalid("FinalTime must be positive, have %g", ip.FinalTime)
	}
	switch strings.ToLower(ip.Reconstruction) {
	case "plm", "dc":
	default:
		return invalid("Reconstruction must be plm or dc, have %q", ip.Reconstruction)
	}
	switch strings.ToLower(ip.Integrator) {
	case "vl2", "rk1":
	default:
		return invalid("Integrator must be vl2 or rk1, have %q", ip.Integrator)
	}
	return
}

// BoundaryFlags resolves the BCs map, unnamed faces default to outflow
func (ip *HydroParameters) BoundaryFlags() (bcs [6]types.BCFLAG, err error) {
	for i := range bcs {
		bcs[i] = types.BC_Outflow
	}
	for face, label := range ip.BCs {
		bf, ok := types.BoundaryFaceNames[strings.ToLower(face)]
		if !ok {
			err = fmt.Errorf("%w: unknown boundary face %q", ErrInvalidParameter, face)
			return
		}
		if bcs[bf], err = types.NewBCFLAG(label); err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidParameter, err)
			return
		}
	}
	return
}

func (ip *HydroParameters) Extents() (nx [3]int, xmin, xmax [3]float64) {
	nx = [3]int{ip.NX1, ip.NX2, ip.NX3}
	xmin = [3]float64{ip.X1Min, ip.X2Min, ip.X3Min}
	xmax = [3]float64{ip.X1Max, ip.X2Max, ip.X3Max}
	return
}

func (ip *HydroParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Problem\n", ip.Problem)
	fmt.Printf("[%s]\t\t= EOS\n", ip.EOS)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s/%s]\t\t= Reconstruction/Limiter\n", ip.Reconstruction, ip.Limiter)
	fmt.Printf("[%s]\t\t\t= Integrator\n", ip.Integrator)
	fmt.Printf("[%d x %d x %d]\t\t= Cells, %d ghost layers\n", ip.NX1, ip.NX2, ip.NX3, ip.NGhost)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}

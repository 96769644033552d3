package Hydro2D

import (
	"fmt"
	"time"

	"github.com/notargets/gopennant/InputParameters"
	"github.com/notargets/gopennant/mesh"
)

// Driver runs hydro cycles until CStop cycles or TStop time is reached
type Driver struct {
	Hydro                *Hydro
	Title                string
	CStop, DtReport      int
	TStop, DtMax, DtInit float64
	DtFac                float64
	Cycle                int
	Time, Dt, DtLast     float64
	DtMessage            string
	History              *History
	hydroStep            TimeStep
	verbose              bool
	elapsed              time.Duration
}

// History holds per cycle time step and total energy, recorded when enabled
type History struct {
	Time, Dt, Energy []float64
}

func (d *Driver) EnableHistory() { d.History = &History{} }

func (d *Driver) record() {
	ei, ek := d.Hydro.SumEnergy()
	d.History.Time = append(d.History.Time, d.Time)
	d.History.Dt = append(d.History.Dt, d.Dt)
	d.History.Energy = append(d.History.Energy, ei+ek)
}

func NewDriver(h *Hydro, ip *InputParameters.InputParametersHydro, verbose bool) (d *Driver) {
	d = &Driver{
		Hydro:     h,
		Title:     ip.Title,
		CStop:     ip.CStop,
		TStop:     ip.TStop,
		DtMax:     ip.DtMax,
		DtInit:    ip.DtInit,
		DtFac:     ip.DtFac,
		DtReport:  ip.DtReport,
		hydroStep: NewTimeStep(),
		verbose:   verbose,
	}
	return
}

// NewProblem builds the mesh, hydro state with the default models and driver
// described by an input deck
func NewProblem(ip *InputParameters.InputParametersHydro, verbose bool) (d *Driver, err error) {
	var (
		m *mesh.Mesh
		h *Hydro
	)
	if m, err = mesh.NewMeshFromParams(ip, verbose); err != nil {
		return
	}
	if h, err = NewHydro(m, ip, DefaultModels(ip), verbose); err != nil {
		return
	}
	d = NewDriver(h, ip, verbose)
	return
}

func (d *Driver) CheckIfFinished() bool {
	return d.Cycle >= d.CStop || d.Time >= d.TStop
}

func (d *Driver) Run() (err error) {
	var (
		start time.Time
	)
	if d.verbose {
		fmt.Printf("Running %q\n", d.Title)
		d.Hydro.PrintEnergyCheck()
	}
	for !d.CheckIfFinished() {
		d.Cycle++
		d.CalcGlobalDt()
		start = time.Now()
		if d.hydroStep, err = d.Hydro.DoCycle(d.Dt); err != nil {
			return fmt.Errorf("cycle %d, time %g: %w", d.Cycle, d.Time, err)
		}
		d.elapsed += time.Since(start)
		d.Time += d.Dt
		if d.History != nil {
			d.record()
		}
		if d.verbose && (d.Cycle == 1 || (d.DtReport > 0 && d.Cycle%d.DtReport == 0)) {
			d.PrintUpdate()
		}
	}
	if d.verbose {
		d.PrintFinal()
		d.Hydro.PrintEnergyCheck()
	}
	return
}

// CalcGlobalDt picks the next dt: the largest allowed by DtMax, DtInit on the
// first cycle or DtFac growth afterwards, TStop and the hydro recommendation
func (d *Driver) CalcGlobalDt() {
	d.DtLast = d.Dt
	d.Dt, d.DtMessage = d.DtMax, "Global maximum (dtmax)"
	if d.Cycle == 1 {
		if d.DtInit < d.Dt {
			d.Dt, d.DtMessage = d.DtInit, "Initial timestep"
		}
	} else {
		if dtrecover := d.DtFac * d.DtLast; dtrecover < d.Dt {
			d.Dt, d.DtMessage = dtrecover, "Recovery: dt = dtfac*dtlast"
		}
	}
	if d.TStop-d.Time < d.Dt {
		d.Dt, d.DtMessage = d.TStop-d.Time, "Global timestep: tstop"
	}
	if d.hydroStep.DT < d.Dt {
		d.Dt, d.DtMessage = d.hydroStep.DT, d.hydroStep.Message
	}
}

// HydroStep is the recommendation returned by the last cycle
func (d *Driver) HydroStep() TimeStep { return d.hydroStep }

func (d *Driver) PrintUpdate() {
	fmt.Printf("End cycle %6d, time = %11.5g, dt = %11.5g, wall = %11.5g\n",
		d.Cycle, d.Time, d.Dt, d.elapsed.Seconds())
	fmt.Printf("dt limiter: %s\n", d.DtMessage)
}

func (d *Driver) PrintFinal() {
	numz := d.Hydro.Mesh.NumZones
	fmt.Printf("\nRun complete\ncycle = %6d, cstop = %6d\ntime = %11.5g, tstop = %11.5g\n",
		d.Cycle, d.CStop, d.Time, d.TStop)
	if d.Cycle > 0 {
		rate := float64(d.elapsed.Microseconds()) / float64(numz*d.Cycle)
		fmt.Printf("hydro cycle run time = %11.5g s, rate = %8.5f us/(zone*cycle)\n", d.elapsed.Seconds(), rate)
	}
}

package Hydro2D

import (
	"fmt"
	"math"
)

// TimeStep is a recommended dt and the criterion and zone that limit it
type TimeStep struct {
	DT      float64
	Message string
	Zone    int
}

func NewTimeStep() TimeStep {
	return TimeStep{DT: 1.e99, Message: "Hydro default", Zone: -1}
}

// MinTimeStep is the combiner for per-chunk recommendations: the smaller DT
// wins and ties go to the lower zone index, so the result does not depend on
// the order chunks are merged in
func MinTimeStep(a, b TimeStep) TimeStep {
	switch {
	case b.DT < a.DT:
		return b
	case b.DT == a.DT && b.Zone >= 0 && (a.Zone < 0 || b.Zone < a.Zone):
		return b
	}
	return a
}

func (h *Hydro) calcDtHydro(dtlast float64, zfirst, zlast int) (ts TimeStep) {
	ts = NewTimeStep()
	ts = h.calcDtCourant(ts, zfirst, zlast)
	ts = h.calcDtVolume(ts, dtlast, zfirst, zlast)
	return
}

func (h *Hydro) calcDtCourant(ts TimeStep, zfirst, zlast int) TimeStep {
	var (
		dtnew = 1.e99
		zmin  = zfirst
	)
	for z := zfirst; z < zlast; z++ {
		cdu := math.Max(h.ZoneVelDiff[z], math.Max(h.ZoneSoundSpeed[z], fuzz))
		zdthyd := h.Mesh.ZoneDL[z] * h.CFL / cdu
		if zdthyd < dtnew {
			dtnew, zmin = zdthyd, z
		}
	}
	if dtnew < ts.DT {
		ts = TimeStep{DT: dtnew, Zone: zmin, Message: fmt.Sprintf("Hydro Courant limit for z = %d", zmin)}
	}
	return ts
}

func (h *Hydro) calcDtVolume(ts TimeStep, dtlast float64, zfirst, zlast int) TimeStep {
	var (
		m       = h.Mesh
		dvovmax = fuzz
		zmax    = zfirst
	)
	for z := zfirst; z < zlast; z++ {
		zdvov := math.Abs(m.ZoneVol[z]-m.ZoneVol0[z]) / math.Max(m.ZoneVol0[z], fuzz)
		if zdvov > dvovmax {
			dvovmax, zmax = zdvov, z
		}
	}
	dtnew := dtlast * h.CFLV / dvovmax
	if dtnew < ts.DT {
		ts = TimeStep{DT: dtnew, Zone: zmax, Message: fmt.Sprintf("Hydro dV/V limit for z = %d", zmax)}
	}
	return ts
}

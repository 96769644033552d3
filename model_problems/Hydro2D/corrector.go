package Hydro2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/utils"
)

type correctorResult struct {
	ts  TimeStep
	err error
}

// startCorrector runs the corrector as one unit of work, the returned channel
// yields its single result
func (h *Hydro) startCorrector(dt float64, numBad int) <-chan correctorResult {
	result := make(chan correctorResult, 1)
	go func() {
		var res correctorResult
		res.ts, res.err = h.correct(dt, numBad)
		result <- res
	}()
	return result
}

// correct applies the half step forces over the full step, updates the zone
// energy from the work done and recommends the next time step
func (h *Hydro) correct(dt float64, numBad int) (ts TimeStep, err error) {
	var (
		m = h.Mesh
	)
	utils.RunChunks(m.PtChunks, func(pch, pfirst, plast int) {
		for _, bc := range h.BCs {
			bc.ApplyFixedBC(h.PtU0, h.PtForce, pch)
		}
		h.calcAccel(pfirst, plast)
		h.advPosFull(dt, pfirst, plast)
	})
	numBad += utils.ReduceChunks(m.SideChunks, 0, func(sch, sfirst, slast int) (bad int) {
		bad = m.UpdateGeometry(sfirst, slast)
		zfirst, zlast := m.SideZoneRange(sfirst, slast)
		utils.FillFloat(h.ZoneWork[zfirst:zlast], 0)
		h.calcWork(dt, sfirst, slast)
		return
	}, func(a, b int) int { return a + b })
	if numBad > 0 {
		err = fmt.Errorf("%d sides have non-positive volume", numBad)
		return
	}
	ts = utils.ReduceChunks(m.ZoneChunks, NewTimeStep(), func(zch, zfirst, zlast int) TimeStep {
		h.calcWorkRate(dt, zfirst, zlast)
		h.calcEnergy(zfirst, zlast)
		h.calcRho(m.ZoneVol, h.ZoneRho, zfirst, zlast)
		return h.calcDtHydro(dt, zfirst, zlast)
	}, MinTimeStep)
	return
}

func (h *Hydro) calcAccel(pfirst, plast int) {
	for p := pfirst; p < plast; p++ {
		h.PtAccel[p] = r2.Scale(1/math.Max(h.PtMass[p], fuzz), h.PtForce[p])
	}
}

func (h *Hydro) advPosFull(dt float64, pfirst, plast int) {
	m := h.Mesh
	for p := pfirst; p < plast; p++ {
		h.PtU[p] = r2.Add(h.PtU0[p], r2.Scale(dt, h.PtAccel[p]))
		m.PtX[p] = r2.Add(m.PtX0[p], r2.Scale(0.5*dt, r2.Add(h.PtU[p], h.PtU0[p])))
	}
}

// calcWork accumulates the work done by the pressure and viscous forces,
// evaluated at the half step positions, into the zone work and energy
func (h *Hydro) calcWork(dt float64, sfirst, slast int) {
	var (
		m   = h.Mesh
		pxp = m.PtXPred
		geo = m.Geometry
		dth = 0.5 * dt
	)
	for s := sfirst; s < slast; s++ {
		p1, p2, z := m.Side2Pt1[s], m.Side2Pt2[s], m.Side2Zone[s]
		sftot := r2.Add(h.SideForcePres[s], h.SideForceQ[s])
		sd1 := r2.Dot(sftot, r2.Add(h.PtU0[p1], h.PtU[p1]))
		sd2 := -r2.Dot(sftot, r2.Add(h.PtU0[p2], h.PtU[p2]))
		dwork := -dth * (sd1*geo.Weight(pxp[p1].X) + sd2*geo.Weight(pxp[p2].X))
		h.ZoneEnergyTot[z] += dwork
		h.ZoneWork[z] += dwork
	}
}

func (h *Hydro) calcWorkRate(dt float64, zfirst, zlast int) {
	m := h.Mesh
	for z := zfirst; z < zlast; z++ {
		dvol := m.ZoneVol[z] - m.ZoneVol0[z]
		h.ZoneWorkRate[z] = (h.ZoneWork[z] + h.ZonePres[z]*dvol) / dt
	}
}

func (h *Hydro) calcEnergy(zfirst, zlast int) {
	for z := zfirst; z < zlast; z++ {
		h.ZoneEnergy[z] = h.ZoneEnergyTot[z] / (h.ZoneMass[z] + fuzz)
	}
}

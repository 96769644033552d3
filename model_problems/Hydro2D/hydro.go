package Hydro2D

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/InputParameters"
	"github.com/notargets/gopennant/mesh"
	"github.com/notargets/gopennant/readfiles"
	"github.com/notargets/gopennant/utils"
)

const (
	fuzz = 1.e-99
	eps  = 1.e-12
)

/*
Hydro is the staggered grid Lagrangian hydro state. Thermodynamic state lives
on zones, kinematic state on points. Forces are computed per side and
differenced into corners, corner i being the wedge at Side2Pt1[i] between
side i and the side before it in the same zone.
*/
type Hydro struct {
	Mesh       *mesh.Mesh
	Models     HydroModels
	BCs        []*FixedBC
	CFL, CFLV  float64
	initParams initialConditions
	// Points
	PtU, PtU0 []r2.Vec // Velocity at the end and start of the step
	PtAccel   []r2.Vec
	PtForce   []r2.Vec
	PtMass    []float64 // Sum of corner masses
	// Zones
	ZoneRho        []float64
	ZoneRhoPred    []float64
	ZoneEnergy     []float64 // Specific internal energy
	ZonePres       []float64
	ZoneEnergyTot  []float64 // Internal energy
	ZoneWork       []float64
	ZoneWorkRate   []float64
	ZoneSoundSpeed []float64
	ZoneVelDiff    []float64
	ZoneMass       []float64
	// Sides and corners
	SideForcePres []r2.Vec
	SideForceQ    []r2.Vec
	SideForceTTS  []r2.Vec
	CornerMass    []float64
	CornerForce   []r2.Vec
}

type initialConditions struct {
	RInit, EInit       float64
	SubRegion          *InputParameters.Box
	RInitSub, EInitSub float64
	UInitRadial        float64
}

func NewHydro(m *mesh.Mesh, ip *InputParameters.InputParametersHydro, models HydroModels,
	verbose bool) (h *Hydro, err error) {
	h = &Hydro{
		Mesh:   m,
		Models: models,
		CFL:    ip.CFL,
		CFLV:   ip.CFLV,
		initParams: initialConditions{
			RInit:       ip.RInit,
			EInit:       ip.EInit,
			SubRegion:   ip.SubRegion,
			RInitSub:    ip.RInitSub,
			EInitSub:    ip.EInitSub,
			UInitRadial: ip.UInitRadial,
		},
	}
	if models.Pressure == nil || models.Viscosity == nil || models.Stabilization == nil {
		return nil, fmt.Errorf("hydro needs pressure, viscosity and stabilization models")
	}
	if h.BCs, err = NewPlaneBCs(m, ip.BCX, ip.BCY); err != nil {
		return nil, err
	}
	for _, label := range ip.BCMarkers {
		var bc *FixedBC
		if bc, err = NewMarkerBC(m, label); err != nil {
			return nil, err
		}
		h.BCs = append(h.BCs, bc)
	}
	h.allocate()
	h.Models.allocate(m)
	h.initialize()
	if verbose {
		fmt.Printf("Lagrangian hydro in 2 dimensions, %s geometry\n", m.Geometry.Print())
		fmt.Printf("Models: pressure %T, viscosity %T, stabilization %T\n",
			models.Pressure, models.Viscosity, models.Stabilization)
		for _, bc := range h.BCs {
			fmt.Printf("Fixed boundary %s with %d points\n", bc.Label, len(bc.Points))
		}
		fmt.Printf("CFL = %8.4f, CFLV = %8.4f\n", h.CFL, h.CFLV)
	}
	return
}

func (h *Hydro) allocate() {
	nump, numz, nums := h.Mesh.NumPts, h.Mesh.NumZones, h.Mesh.NumSides
	h.PtU = make([]r2.Vec, nump)
	h.PtU0 = make([]r2.Vec, nump)
	h.PtAccel = make([]r2.Vec, nump)
	h.PtForce = make([]r2.Vec, nump)
	h.PtMass = make([]float64, nump)
	h.ZoneRho = make([]float64, numz)
	h.ZoneRhoPred = make([]float64, numz)
	h.ZoneEnergy = make([]float64, numz)
	h.ZonePres = make([]float64, numz)
	h.ZoneEnergyTot = make([]float64, numz)
	h.ZoneWork = make([]float64, numz)
	h.ZoneWorkRate = make([]float64, numz)
	h.ZoneSoundSpeed = make([]float64, numz)
	h.ZoneVelDiff = make([]float64, numz)
	h.ZoneMass = make([]float64, numz)
	h.SideForcePres = make([]r2.Vec, nums)
	h.SideForceQ = make([]r2.Vec, nums)
	h.SideForceTTS = make([]r2.Vec, nums)
	h.CornerMass = make([]float64, nums)
	h.CornerForce = make([]r2.Vec, nums)
}

func (h *Hydro) initialize() {
	var (
		m  = h.Mesh
		ic = h.initParams
	)
	utils.RunChunks(m.ZoneChunks, func(zch, zfirst, zlast int) {
		utils.FillFloat(h.ZoneRho[zfirst:zlast], ic.RInit)
		utils.FillFloat(h.ZoneEnergy[zfirst:zlast], ic.EInit)
		utils.FillFloat(h.ZoneWorkRate[zfirst:zlast], 0)
		if box := ic.SubRegion; box != nil {
			for z := zfirst; z < zlast; z++ {
				zx := m.ZoneX[z]
				if zx.X > box.XMin-eps && zx.X < box.XMax+eps &&
					zx.Y > box.YMin-eps && zx.Y < box.YMax+eps {
					h.ZoneRho[z] = ic.RInitSub
					h.ZoneEnergy[z] = ic.EInitSub
				}
			}
		}
		for z := zfirst; z < zlast; z++ {
			h.ZoneMass[z] = h.ZoneRho[z] * m.ZoneVol[z]
			h.ZoneEnergyTot[z] = h.ZoneEnergy[z] * h.ZoneMass[z]
		}
	})
	utils.RunChunks(m.PtChunks, func(pch, pfirst, plast int) {
		if ic.UInitRadial != 0 {
			h.initRadialVel(ic.UInitRadial, pfirst, plast)
		} else {
			utils.FillVec(h.PtU[pfirst:plast], r2.Vec{})
		}
	})
}

// initRadialVel points every velocity away from the origin with speed vel
func (h *Hydro) initRadialVel(vel float64, pfirst, plast int) {
	px := h.Mesh.PtX
	for p := pfirst; p < plast; p++ {
		pmag := r2.Norm(px[p])
		if pmag > eps {
			h.PtU[p] = r2.Scale(vel/pmag, px[p])
		} else {
			h.PtU[p] = r2.Vec{}
		}
	}
}

// DoCycle advances the state by dt and returns the time step recommended for
// the next cycle. The corrector runs as a separate unit of work; DoCycle
// waits for its result.
func (h *Hydro) DoCycle(dt float64) (ts TimeStep, err error) {
	var (
		m = h.Mesh
	)
	// Predictor: move points to the half step
	utils.RunChunks(m.PtChunks, func(pch, pfirst, plast int) {
		copy(m.PtX0[pfirst:plast], m.PtX[pfirst:plast])
		copy(h.PtU0[pfirst:plast], h.PtU[pfirst:plast])
		h.advPosHalf(dt, pfirst, plast)
	})
	// Predictor: half step geometry, state and forces
	numBad := utils.ReduceChunks(m.SideChunks, 0, func(sch, sfirst, slast int) int {
		return h.predictSides(dt, sfirst, slast)
	}, func(a, b int) int { return a + b })
	m.SumToPoints(h.CornerMass, h.CornerForce, h.PtMass, h.PtForce)
	res := <-h.startCorrector(dt, numBad)
	return res.ts, res.err
}

func (h *Hydro) predictSides(dt float64, sfirst, slast int) (numBad int) {
	m := h.Mesh
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	copy(m.ZoneVol0[zfirst:zlast], m.ZoneVol[zfirst:zlast])
	numBad = m.PredictGeometry(sfirst, slast)
	h.calcRho(m.ZoneVolPred, h.ZoneRhoPred, zfirst, zlast)
	h.calcCrnrMass(sfirst, slast)
	h.Models.Pressure.CalcStateAtHalf(h, dt, zfirst, zlast)
	h.Models.Pressure.CalcForce(h, h.SideForcePres, sfirst, slast)
	h.Models.Stabilization.CalcForce(h, h.SideForceTTS, sfirst, slast)
	h.Models.Viscosity.CalcForce(h, h.SideForceQ, sfirst, slast)
	h.sumCrnrForce(sfirst, slast)
	return
}

func (h *Hydro) advPosHalf(dt float64, pfirst, plast int) {
	m := h.Mesh
	dth := 0.5 * dt
	for p := pfirst; p < plast; p++ {
		m.PtXPred[p] = r2.Add(m.PtX0[p], r2.Scale(dth, h.PtU0[p]))
	}
}

func (h *Hydro) calcRho(zvol, zr []float64, zfirst, zlast int) {
	for z := zfirst; z < zlast; z++ {
		zr[z] = h.ZoneMass[z] / zvol[z]
	}
}

// calcCrnrMass weights the predicted zone mass by the corner's share of the
// zone area, half from each of its two sides
func (h *Hydro) calcCrnrMass(sfirst, slast int) {
	m := h.Mesh
	for s := sfirst; s < slast; s++ {
		s3 := m.MapSideToSidePrev(s)
		z := m.Side2Zone[s]
		h.CornerMass[s] = h.ZoneRhoPred[z] * m.ZoneAreaPred[z] *
			0.5 * (m.SideMassFrac[s] + m.SideMassFrac[s3])
	}
}

func (h *Hydro) sideForce(s int) r2.Vec {
	return r2.Add(r2.Add(h.SideForcePres[s], h.SideForceQ[s]), h.SideForceTTS[s])
}

func (h *Hydro) sumCrnrForce(sfirst, slast int) {
	m := h.Mesh
	for s := sfirst; s < slast; s++ {
		h.CornerForce[s] = r2.Sub(h.sideForce(s), h.sideForce(m.MapSideToSidePrev(s)))
	}
}

// ZoneFields exports the zone state for output writers
func (h *Hydro) ZoneFields() []readfiles.XYField {
	return []readfiles.XYField{
		{Name: "zr", Values: h.ZoneRho},
		{Name: "ze", Values: h.ZoneEnergy},
		{Name: "zp", Values: h.ZonePres},
	}
}

package Hydro2D

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/InputParameters"
	"github.com/notargets/gopennant/mesh"
)

/*
Physics models are strategy objects called once per side chunk during the
predictor. They read the Hydro and Mesh fields and write only their output
arrays over the chunk's range, so chunks run concurrently. Side chunks are
zone aligned: the zone range of a side chunk is mesh.SideZoneRange(sfirst, slast).
*/

// StateModel advances zone pressure and sound speed to the half step
type StateModel interface {
	CalcStateAtHalf(h *Hydro, dt float64, zfirst, zlast int)
}

// ForceModel writes a force contribution per side into sf[sfirst:slast]
type ForceModel interface {
	CalcForce(h *Hydro, sf []r2.Vec, sfirst, slast int)
}

type PressureModel interface {
	StateModel
	ForceModel
}

// Allocator is implemented by models that need per-entity scratch storage,
// it is called once before the first cycle
type Allocator interface {
	Allocate(m *mesh.Mesh)
}

type HydroModels struct {
	Pressure      PressureModel
	Viscosity     ForceModel
	Stabilization ForceModel
}

func DefaultModels(ip *InputParameters.InputParametersHydro) HydroModels {
	return HydroModels{
		Pressure:      NewPolyGas(ip.Gamma, ip.SSMin),
		Viscosity:     NewQCS(ip.QGamma, ip.Q1, ip.Q2),
		Stabilization: NewTTS(ip.Alfa, ip.SSMin),
	}
}

func (hm HydroModels) allocate(m *mesh.Mesh) {
	for _, model := range []interface{}{hm.Pressure, hm.Viscosity, hm.Stabilization} {
		if a, ok := model.(Allocator); ok {
			a.Allocate(m)
		}
	}
}

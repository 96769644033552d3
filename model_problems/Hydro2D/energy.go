package Hydro2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/utils"
)

type energySum struct {
	Internal, Kinetic float64
}

// SumEnergy returns the internal and kinetic energy of the whole mesh. Each
// chunk sums its own range, the partial sums are added in chunk order.
func (h *Hydro) SumEnergy() (ei, ek float64) {
	var (
		m   = h.Mesh
		geo = m.Geometry
		add = func(a, b energySum) energySum {
			return energySum{Internal: a.Internal + b.Internal, Kinetic: a.Kinetic + b.Kinetic}
		}
	)
	sum := utils.ReduceChunks(m.SideChunks, energySum{}, func(sch, sfirst, slast int) (es energySum) {
		zfirst, zlast := m.SideZoneRange(sfirst, slast)
		es.Internal = floats.Sum(h.ZoneEnergyTot[zfirst:zlast])
		for s := sfirst; s < slast; s++ {
			s3 := m.MapSideToSidePrev(s)
			p1 := m.Side2Pt1[s]
			z := m.Side2Zone[s]
			cvol := m.ZoneArea[z] * geo.Weight(m.PtX[p1].X) * 0.5 * (m.SideMassFrac[s] + m.SideMassFrac[s3])
			es.Kinetic += h.ZoneMass[z] * cvol / m.ZoneVol[z] * 0.5 * r2.Norm2(h.PtU[p1])
		}
		return
	}, add)
	ei = sum.Internal * geo.Factor()
	ek = sum.Kinetic * geo.Factor()
	return
}

func (h *Hydro) PrintEnergyCheck() {
	ei, ek := h.SumEnergy()
	fmt.Printf("Energy check:  total energy  = %14.6e\n", ei+ek)
	fmt.Printf("(internal = %14.6e, kinetic = %14.6e)\n", ei, ek)
}

package Hydro2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PolyGas is a gamma-law ideal gas
type PolyGas struct {
	Gamma, SSMin float64
}

func NewPolyGas(gamma, ssmin float64) *PolyGas {
	return &PolyGas{Gamma: gamma, SSMin: ssmin}
}

// EOS returns pressure, dp/de at constant density and sound speed
func (pg *PolyGas) EOS(rho, e float64) (p, per, ss float64) {
	var (
		gm1 = pg.Gamma - 1.
		ss2 = math.Max(pg.SSMin*pg.SSMin, 1.e-99)
		ex  = math.Max(e, 0.)
	)
	p = gm1 * rho * ex
	prex := gm1 * ex
	per = gm1 * rho
	csqd := math.Max(ss2, prex+per*p/(rho*rho))
	ss = math.Sqrt(csqd)
	return
}

// CalcStateAtHalf evaluates the EOS at the start of the step, then advances
// the pressure to the half step using the predicted volume change and the
// previous cycle's work rate
func (pg *PolyGas) CalcStateAtHalf(h *Hydro, dt float64, zfirst, zlast int) {
	var (
		m   = h.Mesh
		dth = 0.5 * dt
	)
	for z := zfirst; z < zlast; z++ {
		rho := h.ZoneRho[z]
		p, per, ss := pg.EOS(rho, h.ZoneEnergy[z])
		h.ZoneSoundSpeed[z] = ss
		zminv := 1. / h.ZoneMass[z]
		dv := (m.ZoneVolPred[z] - m.ZoneVol0[z]) * zminv
		bulk := rho * ss * ss
		denom := 1. + 0.5*per*dv
		src := h.ZoneWorkRate[z] * dth * zminv
		h.ZonePres[z] = p + (per*src-rho*bulk*dv)/denom
	}
}

func (pg *PolyGas) CalcForce(h *Hydro, sf []r2.Vec, sfirst, slast int) {
	m := h.Mesh
	for s := sfirst; s < slast; s++ {
		sf[s] = r2.Scale(-h.ZonePres[m.Side2Zone[s]], m.SideSurfPred[s])
	}
}

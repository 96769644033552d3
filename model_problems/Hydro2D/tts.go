package Hydro2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TTS is temporary triangular subzoning: a side whose density drifts from its
// zone's density gets a restoring force along its surface vector
type TTS struct {
	Alfa, SSMin float64
}

func NewTTS(alfa, ssmin float64) *TTS {
	return &TTS{Alfa: alfa, SSMin: ssmin}
}

func (tts *TTS) CalcForce(h *Hydro, sf []r2.Vec, sfirst, slast int) {
	m := h.Mesh
	for s := sfirst; s < slast; s++ {
		z := m.Side2Zone[s]
		rho := h.ZoneRhoPred[z]
		svfacinv := m.ZoneAreaPred[z] / m.SideAreaPred[s]
		srho := rho * m.SideMassFrac[s] * svfacinv
		ss := math.Max(h.ZoneSoundSpeed[z], tts.SSMin)
		sdp := tts.Alfa * ss * ss * (srho - rho)
		sf[s] = r2.Scale(-sdp, m.SideSurfPred[s])
	}
}

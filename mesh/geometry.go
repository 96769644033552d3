package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/utils"
)

// The geometry routines work on one zone-aligned side range [sfirst, slast)
// and write only the side and zone entries in that range.

// CalcCtrs computes the edge midpoints (stored per side) and zone centroids
func (m *Mesh) CalcCtrs(px, ex, zx []r2.Vec, sfirst, slast int) {
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	utils.FillVec(zx[zfirst:zlast], r2.Vec{})
	for s := sfirst; s < slast; s++ {
		p1, p2, z := m.Side2Pt1[s], m.Side2Pt2[s], m.Side2Zone[s]
		ex[s] = utils.Midpoint(px[p1], px[p2])
		zx[z] = r2.Add(zx[z], px[p1])
	}
	for z := zfirst; z < zlast; z++ {
		zx[z] = r2.Scale(1/float64(m.ZoneNumPts[z]), zx[z])
	}
}

// CalcVols computes side and zone areas and volumes, returning the number of
// sides with non-positive volume
func (m *Mesh) CalcVols(px, zx []r2.Vec, sarea, svol, zarea, zvol []float64,
	sfirst, slast int) (numBad int) {
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	utils.FillFloat(zarea[zfirst:zlast], 0)
	utils.FillFloat(zvol[zfirst:zlast], 0)
	for s := sfirst; s < slast; s++ {
		p1, p2, z := m.Side2Pt1[s], m.Side2Pt2[s], m.Side2Zone[s]
		// Area of the triangle (p1, p2, zx), counter-clockwise positive
		sa := 0.5 * r2.Cross(r2.Sub(px[p2], px[p1]), r2.Sub(zx[z], px[p1]))
		sv := sa
		if m.Geometry == Cylindrical {
			sv = sa * (px[p1].X + px[p2].X + zx[z].X) / 3
		}
		sarea[s], svol[s] = sa, sv
		zarea[z] += sa
		zvol[z] += sv
		if sv <= 0 {
			numBad++
		}
	}
	return
}

// CalcSurfVecs computes the median mesh surface vector of each side
func (m *Mesh) CalcSurfVecs(zx, ex, ssurf []r2.Vec, sfirst, slast int) {
	for s := sfirst; s < slast; s++ {
		ssurf[s] = utils.RotateCCW(r2.Sub(ex[s], zx[m.Side2Zone[s]]))
	}
}

func (m *Mesh) CalcEdgeLen(px []r2.Vec, elen []float64, sfirst, slast int) {
	for s := sfirst; s < slast; s++ {
		elen[s] = r2.Norm(r2.Sub(px[m.Side2Pt2[s]], px[m.Side2Pt1[s]]))
	}
}

// CalcCharLen sets the zone characteristic length to the minimum over its
// sides of fac*sarea/elen, fac = 3 for triangles and 4 otherwise
func (m *Mesh) CalcCharLen(sarea, elen, zdl []float64, sfirst, slast int) {
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	utils.FillFloat(zdl[zfirst:zlast], 1.e99)
	for s := sfirst; s < slast; s++ {
		z := m.Side2Zone[s]
		fac := 4.
		if m.ZoneNumPts[z] == 3 {
			fac = 3.
		}
		zdl[z] = math.Min(zdl[z], fac*sarea[s]/elen[s])
	}
}

// CalcSideFracs sets each side's share of its zone's area
func (m *Mesh) CalcSideFracs(sarea, zarea, smf []float64, sfirst, slast int) {
	for s := sfirst; s < slast; s++ {
		smf[s] = sarea[s] / zarea[m.Side2Zone[s]]
	}
}

// PredictGeometry recomputes the half-step geometry from PtXPred
func (m *Mesh) PredictGeometry(sfirst, slast int) (numBad int) {
	m.CalcCtrs(m.PtXPred, m.EdgeXPred, m.ZoneXPred, sfirst, slast)
	numBad = m.CalcVols(m.PtXPred, m.ZoneXPred, m.SideAreaPred, m.SideVolPred,
		m.ZoneAreaPred, m.ZoneVolPred, sfirst, slast)
	m.CalcSurfVecs(m.ZoneXPred, m.EdgeXPred, m.SideSurfPred, sfirst, slast)
	m.CalcEdgeLen(m.PtXPred, m.EdgeLen, sfirst, slast)
	m.CalcCharLen(m.SideAreaPred, m.EdgeLen, m.ZoneDL, sfirst, slast)
	return
}

// UpdateGeometry recomputes the full-step geometry from PtX
func (m *Mesh) UpdateGeometry(sfirst, slast int) (numBad int) {
	m.CalcCtrs(m.PtX, m.EdgeX, m.ZoneX, sfirst, slast)
	numBad = m.CalcVols(m.PtX, m.ZoneX, m.SideArea, m.SideVol,
		m.ZoneArea, m.ZoneVol, sfirst, slast)
	return
}

package Hydro2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/mesh"
	"github.com/notargets/gopennant/utils"
)

/*
QCS is the edge-centered tensor artificial viscosity of Campbell and Shashkov.
Corner c is the quadrilateral formed by point p = Side2Pt1[c], the midpoints
of its two edges and the zone center. Scratch storage is indexed by corner
(equal to side index) and by zone, and each chunk only touches its own range.
*/
type QCS struct {
	QGamma, Q1, Q2 float64
	cArea          []float64
	cCos           []float64
	cDiv           []float64
	cEvol          []float64
	cDu            []float64
	cW             []float64
	cQe            [][2]r2.Vec // Viscous force on the previous and next edge of each corner
	zoneU          []r2.Vec    // Zone center velocity
	zoneDuMax      []float64
}

func NewQCS(qgamma, q1, q2 float64) *QCS {
	return &QCS{QGamma: qgamma, Q1: q1, Q2: q2}
}

func (q *QCS) Allocate(m *mesh.Mesh) {
	q.cArea = make([]float64, m.NumSides)
	q.cCos = make([]float64, m.NumSides)
	q.cDiv = make([]float64, m.NumSides)
	q.cEvol = make([]float64, m.NumSides)
	q.cDu = make([]float64, m.NumSides)
	q.cW = make([]float64, m.NumSides)
	q.cQe = make([][2]r2.Vec, m.NumSides)
	q.zoneU = make([]r2.Vec, m.NumZones)
	q.zoneDuMax = make([]float64, m.NumZones)
}

func (q *QCS) CalcForce(h *Hydro, sf []r2.Vec, sfirst, slast int) {
	q.setCornerDiv(h, sfirst, slast)
	q.setQCnForce(h, sfirst, slast)
	q.setForce(h, sf, sfirst, slast)
	q.setVelDiff(h, sfirst, slast)
}

// setCornerDiv computes the velocity divergence, the cosine of the angle
// between the corner's edges, the evolution length and the velocity jump
// of every corner
func (q *QCS) setCornerDiv(h *Hydro, sfirst, slast int) {
	var (
		m              = h.Mesh
		pu, pxp        = h.PtU, m.PtXPred
		exp, zxp, elen = m.EdgeXPred, m.ZoneXPred, m.EdgeLen
	)
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	utils.FillVec(q.zoneU[zfirst:zlast], r2.Vec{})
	for s := sfirst; s < slast; s++ {
		z := m.Side2Zone[s]
		q.zoneU[z] = r2.Add(q.zoneU[z], pu[m.Side2Pt1[s]])
	}
	for z := zfirst; z < zlast; z++ {
		q.zoneU[z] = r2.Scale(1/float64(m.ZoneNumPts[z]), q.zoneU[z])
	}
	for c := sfirst; c < slast; c++ {
		s3 := m.MapSideToSidePrev(c)
		z := m.Side2Zone[c]
		p := m.Side2Pt1[c]
		p1 := m.Side2Pt1[s3]
		p2 := m.Side2Pt2[c]
		e1, e2 := s3, c

		up0, xp0 := pu[p], pxp[p]
		up1, xp1 := utils.Midpoint(pu[p], pu[p2]), exp[e2]
		up2, xp2 := q.zoneU[z], zxp[z]
		up3, xp3 := utils.Midpoint(pu[p1], pu[p]), exp[e1]

		cvol := 0.5 * r2.Cross(r2.Sub(xp2, xp0), r2.Sub(xp3, xp1))
		q.cArea[c] = cvol

		de1, de2 := elen[e1], elen[e2]
		minelen := math.Min(de1, de2)
		if minelen < 1.e-12 {
			q.cCos[c] = 0
		} else {
			q.cCos[c] = 4 * r2.Dot(r2.Sub(xp3, xp0), r2.Sub(xp1, xp0)) / (de1 * de2)
		}

		div := (r2.Cross(r2.Sub(up2, up0), r2.Sub(xp3, xp1)) -
			r2.Cross(r2.Sub(up3, up1), r2.Sub(xp2, xp0))) / (2 * cvol)
		q.cDiv[c] = div

		dxx1 := r2.Scale(0.5, r2.Sub(r2.Add(xp1, xp2), r2.Add(xp0, xp3)))
		dxx2 := r2.Scale(0.5, r2.Sub(r2.Add(xp2, xp3), r2.Add(xp0, xp1)))
		dx1, dx2 := r2.Norm(dxx1), r2.Norm(dxx2)
		duav := r2.Scale(0.25, r2.Add(r2.Add(up0, up1), r2.Add(up2, up3)))
		test1 := math.Abs(r2.Dot(dxx1, duav) * dx2)
		test2 := math.Abs(r2.Dot(dxx2, duav) * dx1)
		var r float64
		if test1 > test2 {
			r = dx1 / dx2
		} else {
			r = dx2 / dx1
		}
		evol := math.Min(math.Sqrt(4*cvol*r), 2*minelen)

		dv1 := r2.Norm2(r2.Sub(r2.Add(up1, up2), r2.Add(up0, up3)))
		dv2 := r2.Norm2(r2.Sub(r2.Add(up2, up3), r2.Add(up0, up1)))
		du := math.Sqrt(math.Max(dv1, dv2))

		if div < 0 {
			q.cEvol[c], q.cDu[c] = evol, du
		} else {
			q.cEvol[c], q.cDu[c] = 0, 0
		}
	}
}

// setQCnForce computes the Kuropatenko viscosity coefficient of each corner
// and the resulting force on its two edges
func (q *QCS) setQCnForce(h *Hydro, sfirst, slast int) {
	var (
		m       = h.Mesh
		pu      = h.PtU
		gammap1 = q.QGamma + 1.
	)
	for c := sfirst; c < slast; c++ {
		z := m.Side2Zone[c]
		ztmp2 := q.Q2 * 0.25 * gammap1 * q.cDu[c]
		ztmp1 := q.Q1 * h.ZoneSoundSpeed[z]
		zkur := ztmp2 + math.Sqrt(ztmp2*ztmp2+ztmp1*ztmp1)
		rmu := zkur * h.ZoneRhoPred[z] * q.cEvol[c]
		if q.cDiv[c] > 0 {
			rmu = 0
		}
		s3 := m.MapSideToSidePrev(c)
		p := m.Side2Pt1[c]
		p1 := m.Side2Pt1[s3]
		p2 := m.Side2Pt2[c]
		q.cQe[c][0] = r2.Scale(rmu/m.EdgeLen[s3], r2.Sub(pu[p], pu[p1]))
		q.cQe[c][1] = r2.Scale(rmu/m.EdgeLen[c], r2.Sub(pu[p2], pu[p]))
	}
}

// setForce combines the edge forces of the two corners touching each side
func (q *QCS) setForce(h *Hydro, sf []r2.Vec, sfirst, slast int) {
	m := h.Mesh
	for c := sfirst; c < slast; c++ {
		csin2 := 1. - q.cCos[c]*q.cCos[c]
		if csin2 < 1.e-4 {
			q.cW[c], q.cCos[c] = 0, 0
		} else {
			q.cW[c] = q.cArea[c] / csin2
		}
	}
	for s := sfirst; s < slast; s++ {
		c1, c2 := s, m.MapSideToSideNext(s)
		f1 := r2.Scale(q.cW[c1], r2.Add(q.cQe[c1][1], r2.Scale(q.cCos[c1], q.cQe[c1][0])))
		f2 := r2.Scale(q.cW[c2], r2.Add(q.cQe[c2][0], r2.Scale(q.cCos[c2], q.cQe[c2][1])))
		sf[s] = r2.Scale(1/m.EdgeLen[s], r2.Add(f1, f2))
	}
}

// setVelDiff sets the zone velocity difference scale used by the Courant limit
func (q *QCS) setVelDiff(h *Hydro, sfirst, slast int) {
	var (
		m       = h.Mesh
		pu, pxp = h.PtU, m.PtXPred
	)
	zfirst, zlast := m.SideZoneRange(sfirst, slast)
	utils.FillFloat(q.zoneDuMax[zfirst:zlast], 0)
	for s := sfirst; s < slast; s++ {
		p1, p2, z := m.Side2Pt1[s], m.Side2Pt2[s], m.Side2Zone[s]
		var dux float64
		if lenx := m.EdgeLen[s]; lenx > 0 {
			dux = math.Abs(r2.Dot(r2.Sub(pu[p2], pu[p1]), r2.Sub(pxp[p2], pxp[p1]))) / lenx
		}
		q.zoneDuMax[z] = math.Max(q.zoneDuMax[z], dux)
	}
	for z := zfirst; z < zlast; z++ {
		h.ZoneVelDiff[z] = q.Q1*h.ZoneSoundSpeed[z] + 2*q.Q2*q.zoneDuMax[z]
	}
}

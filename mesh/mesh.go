package mesh

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/readfiles"
	"github.com/notargets/gopennant/utils"
)

type GeometryType uint8

const (
	Cylindrical GeometryType = iota // x is the radius, volumes are per radian
	Planar
)

var (
	GeometryNames = map[string]GeometryType{
		"cylindrical": Cylindrical,
		"rz":          Cylindrical,
		"planar":      Planar,
		"xy":          Planar,
	}
	GeometryPrintNames = []string{"Cylindrical (RZ)", "Planar (XY)"}
)

func NewGeometryType(label string) (gt GeometryType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return Cylindrical, nil
	}
	if gt, ok = GeometryNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unable to use geometry named %s", label)
	}
	return
}

func (gt GeometryType) Print() string { return GeometryPrintNames[gt] }

// Weight is the per-point volume weight: the radius in cylindrical geometry
func (gt GeometryType) Weight(x float64) float64 {
	if gt == Cylindrical {
		return x
	}
	return 1
}

// Factor converts per-radian integrals to full-revolution totals
func (gt GeometryType) Factor() float64 {
	if gt == Cylindrical {
		return 2 * math.Pi
	}
	return 1
}

/*
Mesh is a staggered 2D polygon mesh. Zone z owns the sides
[ZoneSideStart[z], ZoneSideStart[z+1]), numbered counter-clockwise. Side s
runs from point Side2Pt1[s] to Side2Pt2[s]; corner s is the wedge of zone
Side2Zone[s] at Side2Pt1[s] between side Side2SidePrev[s] and side s.

Edge quantities (midpoint, length) are stored per side so that each side
chunk writes only its own storage.
*/
type Mesh struct {
	NumPts, NumZones, NumSides int
	Geometry                   GeometryType

	ZoneSideStart []int
	ZoneNumPts    []int
	Side2Zone     []int
	Side2Pt1      []int
	Side2Pt2      []int
	Side2SidePrev []int
	Side2SideNext []int

	// Prefix-offset chunk tables, side chunks are aligned to zone chunks
	PtChunks, ZoneChunks, SideChunks []int

	PtX, PtX0, PtXPred []r2.Vec

	ZoneX, ZoneXPred         []r2.Vec
	ZoneArea, ZoneAreaPred   []float64
	ZoneVol, ZoneVolPred     []float64
	ZoneVol0                 []float64
	ZoneDL                   []float64 // Characteristic length
	SideArea, SideAreaPred   []float64
	SideVol, SideVolPred     []float64
	SideMassFrac             []float64
	SideSurfPred             []r2.Vec // Median mesh surface vector
	EdgeX, EdgeXPred         []r2.Vec
	EdgeLen                  []float64
	Markers                  map[string][]int // Boundary marker label to point list
	ptCornerStart, ptCorners []int            // Point to corner incidence, CSR layout
	boundingMin, boundingMax r2.Vec
}

func NewMesh(pm *readfiles.PolyMesh, geometry GeometryType, chunks int, verbose bool) (m *Mesh, err error) {
	var (
		numBad int
	)
	m = &Mesh{
		Geometry: geometry,
	}
	m.buildTopology(pm)
	m.SetChunks(chunks)
	m.allocate()
	copy(m.PtX, pm.Points)
	copy(m.PtXPred, pm.Points)
	m.Markers = make(map[string][]int, len(pm.Markers))
	for label, pts := range pm.Markers {
		for _, p := range pts {
			if p < 0 || p >= m.NumPts {
				return nil, fmt.Errorf("marker %s references point %d, mesh has %d points", label, p, m.NumPts)
			}
		}
		m.Markers[label] = append([]int(nil), pts...)
	}
	m.boundingMin, m.boundingMax = boundingBox(m.PtX)
	if geometry == Cylindrical && m.boundingMin.X < 0 {
		return nil, fmt.Errorf("cylindrical geometry requires x >= 0, mesh extends to x = %g", m.boundingMin.X)
	}
	numBad = utils.ReduceChunks(m.SideChunks, 0, func(sch, sfirst, slast int) (bad int) {
		bad = m.UpdateGeometry(sfirst, slast)
		m.CalcSideFracs(m.SideArea, m.ZoneArea, m.SideMassFrac, sfirst, slast)
		m.CalcEdgeLen(m.PtX, m.EdgeLen, sfirst, slast)
		m.CalcCharLen(m.SideArea, m.EdgeLen, m.ZoneDL, sfirst, slast)
		return
	}, func(a, b int) int { return a + b })
	if numBad > 0 {
		return nil, fmt.Errorf("initial mesh has %d non-positive side volumes", numBad)
	}
	if verbose {
		fmt.Printf("Mesh: %d zones, %d sides, %d points, %s geometry\n",
			m.NumZones, m.NumSides, m.NumPts, m.Geometry.Print())
		fmt.Printf("Using %d zone/side chunks and %d point chunks\n",
			utils.NumChunks(m.ZoneChunks), utils.NumChunks(m.PtChunks))
	}
	return
}

func (m *Mesh) buildTopology(pm *readfiles.PolyMesh) {
	m.NumZones = pm.NumZones()
	m.NumSides = len(pm.ZonePoints)
	m.NumPts = len(pm.Points)
	if m.NumZones < 1 || m.NumPts < 3 {
		panic(fmt.Errorf("mesh needs at least one zone and three points, have %d zones, %d points",
			m.NumZones, m.NumPts))
	}
	m.ZoneSideStart = append([]int(nil), pm.ZoneStart...)
	utils.CheckCRS("zone side", m.ZoneSideStart, m.NumSides)
	m.ZoneNumPts = make([]int, m.NumZones)
	m.Side2Zone = make([]int, m.NumSides)
	m.Side2Pt1 = make([]int, m.NumSides)
	m.Side2Pt2 = make([]int, m.NumSides)
	m.Side2SidePrev = make([]int, m.NumSides)
	m.Side2SideNext = make([]int, m.NumSides)
	for z := 0; z < m.NumZones; z++ {
		start := m.ZoneSideStart[z]
		n := m.ZoneSideStart[z+1] - start
		if n < 3 {
			panic(fmt.Errorf("zone %d has %d points, need at least 3", z, n))
		}
		m.ZoneNumPts[z] = n
		for i := 0; i < n; i++ {
			s := start + i
			m.Side2Zone[s] = z
			m.Side2Pt1[s] = pm.ZonePoints[s]
			m.Side2Pt2[s] = pm.ZonePoints[start+(i+1)%n]
			m.Side2SidePrev[s] = start + (i+n-1)%n
			m.Side2SideNext[s] = start + (i+1)%n
		}
	}
	m.buildPointCorners()
}

// Each corner s sits at point Side2Pt1[s]. The incidence matrix has a one at
// (p, s) for every such pair; its CSR rows drive the scatter to points.
func (m *Mesh) buildPointCorners() {
	dok := sparse.NewDOK(m.NumPts, m.NumSides)
	for s := 0; s < m.NumSides; s++ {
		dok.Set(m.Side2Pt1[s], s, 1)
	}
	raw := dok.ToCSR().RawMatrix()
	m.ptCornerStart = append([]int(nil), raw.Indptr...)
	m.ptCorners = append([]int(nil), raw.Ind...)
	// Fixed summation order per point
	for p := 0; p < m.NumPts; p++ {
		sort.Ints(m.ptCorners[m.ptCornerStart[p]:m.ptCornerStart[p+1]])
	}
}

// PointCorners lists the corners (by side index) that touch point p
func (m *Mesh) PointCorners(p int) []int {
	return m.ptCorners[m.ptCornerStart[p]:m.ptCornerStart[p+1]]
}

// SetChunks partitions points and zones into contiguous chunks. Side chunks
// are the side ranges of the zone chunks, so no zone is split and the
// previous/next side of every side stays inside its chunk.
func (m *Mesh) SetChunks(chunks int) {
	if chunks < 1 {
		chunks = runtime.NumCPU()
	}
	nz := min(chunks, m.NumZones)
	np := min(chunks, m.NumPts)
	m.ZoneChunks = utils.NewPartitionMap(nz, m.NumZones).CRS()
	m.PtChunks = utils.NewPartitionMap(np, m.NumPts).CRS()
	m.SideChunks = make([]int, nz+1)
	for n := 0; n <= nz; n++ {
		m.SideChunks[n] = m.ZoneSideStart[m.ZoneChunks[n]]
	}
	utils.CheckCRS("zone", m.ZoneChunks, m.NumZones)
	utils.CheckCRS("point", m.PtChunks, m.NumPts)
	utils.CheckCRS("side", m.SideChunks, m.NumSides)
	for sch := 0; sch < nz; sch++ {
		zfirst, zlast := m.SideZoneRange(m.SideChunks[sch], m.SideChunks[sch+1])
		if zfirst != m.ZoneChunks[sch] || zlast != m.ZoneChunks[sch+1] {
			panic(fmt.Errorf("side chunk %d is not aligned to zone chunk %d", sch, sch))
		}
	}
}

func (m *Mesh) allocate() {
	nump, numz, nums := m.NumPts, m.NumZones, m.NumSides
	m.PtX = make([]r2.Vec, nump)
	m.PtX0 = make([]r2.Vec, nump)
	m.PtXPred = make([]r2.Vec, nump)
	m.ZoneX = make([]r2.Vec, numz)
	m.ZoneXPred = make([]r2.Vec, numz)
	m.ZoneArea = make([]float64, numz)
	m.ZoneAreaPred = make([]float64, numz)
	m.ZoneVol = make([]float64, numz)
	m.ZoneVolPred = make([]float64, numz)
	m.ZoneVol0 = make([]float64, numz)
	m.ZoneDL = make([]float64, numz)
	m.SideArea = make([]float64, nums)
	m.SideAreaPred = make([]float64, nums)
	m.SideVol = make([]float64, nums)
	m.SideVolPred = make([]float64, nums)
	m.SideMassFrac = make([]float64, nums)
	m.SideSurfPred = make([]r2.Vec, nums)
	m.EdgeX = make([]r2.Vec, nums)
	m.EdgeXPred = make([]r2.Vec, nums)
	m.EdgeLen = make([]float64, nums)
}

// MapSideToSidePrev is the previous side in the same zone (cyclic)
func (m *Mesh) MapSideToSidePrev(s int) int { return m.Side2SidePrev[s] }

// MapSideToSideNext is the next side in the same zone (cyclic)
func (m *Mesh) MapSideToSideNext(s int) int { return m.Side2SideNext[s] }

// SideZoneRange is the zone range covered by a zone-aligned side range
func (m *Mesh) SideZoneRange(sfirst, slast int) (zfirst, zlast int) {
	zfirst = m.Side2Zone[sfirst]
	if slast < m.NumSides {
		zlast = m.Side2Zone[slast]
	} else {
		zlast = m.NumZones
	}
	return
}

// SumToPoints adds the corner masses and forces touching each point. Every
// point chunk owns its output range, so chunks run without synchronization.
func (m *Mesh) SumToPoints(cmass []float64, cforce []r2.Vec, pmass []float64, pforce []r2.Vec) {
	utils.RunChunks(m.PtChunks, func(pch, pfirst, plast int) {
		for p := pfirst; p < plast; p++ {
			var (
				mass  float64
				force r2.Vec
			)
			for _, c := range m.PointCorners(p) {
				mass += cmass[c]
				force = r2.Add(force, cforce[c])
			}
			pmass[p] = mass
			pforce[p] = force
		}
	})
}

// MarkerPoints returns the points of a named boundary marker
func (m *Mesh) MarkerPoints(label string) (pts []int, err error) {
	var ok bool
	if pts, ok = m.Markers[label]; !ok || len(pts) == 0 {
		return nil, fmt.Errorf("mesh has no boundary marker %q", label)
	}
	return
}

// GetXPlane returns the points lying on the plane x = c
func (m *Mesh) GetXPlane(c float64) (pts []int) {
	const eps = 1.e-12
	for p := 0; p < m.NumPts; p++ {
		if math.Abs(m.PtX[p].X-c) < eps {
			pts = append(pts, p)
		}
	}
	return
}

// GetYPlane returns the points lying on the plane y = c
func (m *Mesh) GetYPlane(c float64) (pts []int) {
	const eps = 1.e-12
	for p := 0; p < m.NumPts; p++ {
		if math.Abs(m.PtX[p].Y-c) < eps {
			pts = append(pts, p)
		}
	}
	return
}

// BoundingBox of the initial point positions
func (m *Mesh) BoundingBox() (lo, hi r2.Vec) { return m.boundingMin, m.boundingMax }

func boundingBox(px []r2.Vec) (lo, hi r2.Vec) {
	lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, x := range px {
		lo.X, lo.Y = math.Min(lo.X, x.X), math.Min(lo.Y, x.Y)
		hi.X, hi.Y = math.Max(hi.X, x.X), math.Max(hi.Y, x.Y)
	}
	return
}

package Hydro2D

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/mesh"
	"github.com/notargets/gopennant/utils"
)

// FixedBC holds a set of boundary points on a fixed plane with unit normal
// Normal. The velocity and force components along the normal are removed.
type FixedBC struct {
	Label      string
	Normal     r2.Vec
	Points     []int // Sorted point indices
	chunkStart []int // Points[chunkStart[pch]:chunkStart[pch+1]] lie in point chunk pch
}

func NewFixedBC(m *mesh.Mesh, label string, normal r2.Vec, points []int) (bc *FixedBC) {
	bc = &FixedBC{
		Label:  label,
		Normal: normal,
		Points: append([]int(nil), points...),
	}
	sort.Ints(bc.Points)
	nch := utils.NumChunks(m.PtChunks)
	bc.chunkStart = make([]int, nch+1)
	for pch := 0; pch <= nch; pch++ {
		bc.chunkStart[pch] = sort.SearchInts(bc.Points, m.PtChunks[pch])
	}
	return
}

// NewPlaneBCs builds one FixedBC for each x = const and y = const plane
func NewPlaneBCs(m *mesh.Mesh, bcx, bcy []float64) (bcs []*FixedBC, err error) {
	for _, x := range bcx {
		pts := m.GetXPlane(x)
		if len(pts) == 0 {
			return nil, fmt.Errorf("no mesh points lie on the boundary plane x = %g", x)
		}
		bcs = append(bcs, NewFixedBC(m, fmt.Sprintf("x = %g", x), r2.Vec{X: 1}, pts))
	}
	for _, y := range bcy {
		pts := m.GetYPlane(y)
		if len(pts) == 0 {
			return nil, fmt.Errorf("no mesh points lie on the boundary plane y = %g", y)
		}
		bcs = append(bcs, NewFixedBC(m, fmt.Sprintf("y = %g", y), r2.Vec{Y: 1}, pts))
	}
	return
}

// NewMarkerBC builds a FixedBC from a straight boundary marker of the mesh,
// the plane normal is taken from the marker's longest chord
func NewMarkerBC(m *mesh.Mesh, label string) (bc *FixedBC, err error) {
	var (
		pts    []int
		chord  r2.Vec
		length float64
	)
	if pts, err = m.MarkerPoints(label); err != nil {
		return
	}
	x0 := m.PtX[pts[0]]
	for _, p := range pts[1:] {
		if d := r2.Sub(m.PtX[p], x0); r2.Norm(d) > length {
			chord, length = d, r2.Norm(d)
		}
	}
	if length == 0 {
		return nil, fmt.Errorf("boundary marker %s has no extent", label)
	}
	dir := r2.Scale(1/length, chord)
	for _, p := range pts {
		if off := r2.Cross(r2.Sub(m.PtX[p], x0), dir); math.Abs(off) > 1.e-9*length {
			return nil, fmt.Errorf("boundary marker %s is not straight, point %d is %g off its line", label, p, off)
		}
	}
	bc = NewFixedBC(m, "marker "+label, utils.RotateCCW(dir), pts)
	return
}

// ChunkPoints are the boundary points owned by point chunk pch
func (bc *FixedBC) ChunkPoints(pch int) []int {
	return bc.Points[bc.chunkStart[pch]:bc.chunkStart[pch+1]]
}

func (bc *FixedBC) ApplyFixedBC(pu, pf []r2.Vec, pch int) {
	for _, p := range bc.ChunkPoints(pch) {
		pu[p] = utils.Project(pu[p], bc.Normal)
		pf[p] = utils.Project(pf[p], bc.Normal)
	}
}

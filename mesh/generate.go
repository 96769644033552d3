package mesh

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/gopennant/InputParameters"
	"github.com/notargets/gopennant/readfiles"
	"github.com/notargets/gopennant/utils"
)

// Generated coordinates are rounded so that boundary planes match exactly
const coordScale = 1.e12

func roundVec(x, y float64) r2.Vec {
	return r2.Vec{X: utils.RoundTo(x, coordScale), Y: utils.RoundTo(y, coordScale)}
}

// GenerateRect builds nzx by nzy quadrilateral zones covering
// [0, lenx] x [0, leny]
func GenerateRect(nzx, nzy int, lenx, leny float64) (pm *readfiles.PolyMesh) {
	var (
		nppx   = nzx + 1
		nppy   = nzy + 1
		dx, dy = lenx / float64(nzx), leny / float64(nzy)
	)
	pm = &readfiles.PolyMesh{
		Points:     make([]r2.Vec, nppx*nppy),
		ZoneStart:  make([]int, 0, nzx*nzy+1),
		ZonePoints: make([]int, 0, 4*nzx*nzy),
	}
	for j := 0; j < nppy; j++ {
		for i := 0; i < nppx; i++ {
			pm.Points[j*nppx+i] = roundVec(dx*float64(i), dy*float64(j))
		}
	}
	for j := 0; j < nzy; j++ {
		for i := 0; i < nzx; i++ {
			p0 := j*nppx + i
			pm.ZoneStart = append(pm.ZoneStart, len(pm.ZonePoints))
			pm.ZonePoints = append(pm.ZonePoints, p0, p0+1, p0+nppx+1, p0+nppx)
		}
	}
	pm.ZoneStart = append(pm.ZoneStart, len(pm.ZonePoints))
	return
}

// GeneratePie builds a wedge of nzx angular by nzy radial zones spanning
// angle degrees and the given radius. The innermost ring is triangles that
// share the origin point.
func GeneratePie(nzx, nzy int, angle, radius float64) (pm *readfiles.PolyMesh) {
	var (
		nppx = nzx + 1
		dth  = angle * math.Pi / 180 / float64(nzx)
		dr   = radius / float64(nzy)
		pt   = func(j, i int) int { return 1 + (j-1)*nppx + i }
	)
	pm = &readfiles.PolyMesh{
		Points:     make([]r2.Vec, 1+nzy*nppx),
		ZoneStart:  make([]int, 0, nzx*nzy+1),
		ZonePoints: make([]int, 0, 4*nzx*nzy),
	}
	for j := 1; j <= nzy; j++ {
		r := dr * float64(j)
		for i := 0; i < nppx; i++ {
			th := dth * float64(i)
			pm.Points[pt(j, i)] = roundVec(r*math.Cos(th), r*math.Sin(th))
		}
	}
	for j := 0; j < nzy; j++ {
		for i := 0; i < nzx; i++ {
			pm.ZoneStart = append(pm.ZoneStart, len(pm.ZonePoints))
			if j == 0 {
				pm.ZonePoints = append(pm.ZonePoints, 0, pt(1, i), pt(1, i+1))
				continue
			}
			pm.ZonePoints = append(pm.ZonePoints, pt(j, i), pt(j+1, i), pt(j+1, i+1), pt(j, i+1))
		}
	}
	pm.ZoneStart = append(pm.ZoneStart, len(pm.ZonePoints))
	return
}

// NewMeshFromParams generates or reads the mesh named by the input deck
func NewMeshFromParams(ip *InputParameters.InputParametersHydro, verbose bool) (m *Mesh, err error) {
	var (
		pm       *readfiles.PolyMesh
		geometry GeometryType
		mp       = ip.MeshParams
	)
	if geometry, err = NewGeometryType(ip.Geometry); err != nil {
		return
	}
	switch strings.ToLower(ip.MeshType) {
	case "rect":
		pm = GenerateRect(mp.NZX, mp.NZY, mp.LenX, mp.LenY)
	case "pie":
		pm = GeneratePie(mp.NZX, mp.NZY, mp.LenX, mp.LenY)
	case "su2":
		if pm, err = readfiles.ReadSU2(ip.MeshFile, verbose); err != nil {
			return
		}
	default:
		return nil, fmt.Errorf("unknown mesh type %q, use rect, pie or su2", ip.MeshType)
	}
	return NewMesh(pm, geometry, ip.Chunks, verbose)
}

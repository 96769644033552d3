package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

// PolyMesh is an unstructured 2D mesh of polygonal zones. Zone z owns the
// point indices ZonePoints[ZoneStart[z]:ZoneStart[z+1]] in counter-clockwise
// order.
type PolyMesh struct {
	Points     []r2.Vec
	ZoneStart  []int
	ZonePoints []int
	Markers    map[string][]int // Boundary marker label to unique points in edge order
}

func (pm *PolyMesh) NumZones() int { return len(pm.ZoneStart) - 1 }

// OrientCCW reverses any zone whose point list is clockwise
func (pm *PolyMesh) OrientCCW() (flipped int) {
	for z := 0; z < pm.NumZones(); z++ {
		zp := pm.ZonePoints[pm.ZoneStart[z]:pm.ZoneStart[z+1]]
		var area2 float64
		for i := range zp {
			a, b := pm.Points[zp[i]], pm.Points[zp[(i+1)%len(zp)]]
			area2 += r2.Cross(a, b)
		}
		if area2 < 0 {
			for i, j := 0, len(zp)-1; i < j; i, j = i+1, j-1 {
				zp[i], zp[j] = zp[j], zp[i]
			}
			flipped++
		}
	}
	return
}

func ReadSU2(filename string, verbose bool) (pm *PolyMesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	return ParseSU2(file, verbose)
}

func ParseSU2(r io.Reader, verbose bool) (pm *PolyMesh, err error) {
	var (
		reader = bufio.NewReader(r)
		dim    int
	)
	if dim, err = readNumber(reader); err != nil {
		return
	}
	if dim != 2 {
		return nil, fmt.Errorf("only 2 dimensional meshes are supported, file has NDIME= %d", dim)
	}
	pm = &PolyMesh{}
	if pm.ZoneStart, pm.ZonePoints, err = readElements(reader); err != nil {
		return nil, err
	}
	if pm.Points, err = readVertices(reader); err != nil {
		return nil, err
	}
	if pm.Markers, err = readMarkers(reader); err != nil {
		return nil, err
	}
	for _, p := range pm.ZonePoints {
		if p < 0 || p >= len(pm.Points) {
			return nil, fmt.Errorf("element references point %d, mesh has %d points", p, len(pm.Points))
		}
	}
	flipped := pm.OrientCCW()
	if verbose {
		fmt.Printf("Read %d zones, %d points, %d markers (%d zones reoriented)\n",
			pm.NumZones(), len(pm.Points), len(pm.Markers), flipped)
	}
	return
}

func readElements(reader *bufio.Reader) (zoneStart, zonePoints []int, err error) {
	var (
		K, n, nType    int
		v1, v2, v3, v4 int
	)
	if K, err = readNumber(reader); err != nil {
		return
	}
	zoneStart = make([]int, 0, K+1)
	zonePoints = make([]int, 0, 4*K)
	for k := 0; k < K; k++ {
		var line string
		if line, err = getLine(reader); err != nil {
			return
		}
		if _, err = fmt.Sscanf(line, "%d", &nType); err != nil {
			return nil, nil, fmt.Errorf("element %d: %w", k, err)
		}
		zoneStart = append(zoneStart, len(zonePoints))
		switch SU2ElementType(nType) {
		case ELType_Triangle:
			if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil || n != 4 {
				return nil, nil, fmt.Errorf("unable to read triangle %d from [%s]", k, line)
			}
			zonePoints = append(zonePoints, v1, v2, v3)
		case ELType_Quadrilateral:
			if n, err = fmt.Sscanf(line, "%d %d %d %d %d", &nType, &v1, &v2, &v3, &v4); err != nil || n != 5 {
				return nil, nil, fmt.Errorf("unable to read quadrilateral %d from [%s]", k, line)
			}
			zonePoints = append(zonePoints, v1, v2, v3, v4)
		default:
			return nil, nil, fmt.Errorf("element %d has unsupported type %d", k, nType)
		}
	}
	zoneStart = append(zoneStart, len(zonePoints))
	return
}

func readVertices(reader *bufio.Reader) (px []r2.Vec, err error) {
	var (
		Nv, n int
		x, y  float64
		line  string
	)
	if Nv, err = readNumber(reader); err != nil {
		return
	}
	px = make([]r2.Vec, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%f %f", &x, &y); err != nil || n != 2 {
			return nil, fmt.Errorf("unable to read coordinates of point %d from [%s]", i, line)
		}
		px[i] = r2.Vec{X: x, Y: y}
	}
	return
}

func readMarkers(reader *bufio.Reader) (markers map[string][]int, err error) {
	var (
		NBCs, nEdges   int
		nType, v1, v2  int
		label, line    string
		seen           map[int]bool
		appendUniquePt = func(list []int, p int) []int {
			if !seen[p] {
				seen[p] = true
				list = append(list, p)
			}
			return list
		}
	)
	markers = make(map[string][]int)
	if NBCs, err = readNumber(reader); err != nil {
		// A mesh without a marker section is allowed
		if err == io.EOF {
			err = nil
		}
		return
	}
	for n := 0; n < NBCs; n++ {
		if label, err = readLabel(reader); err != nil {
			return
		}
		if nEdges, err = readNumber(reader); err != nil {
			return
		}
		seen = make(map[int]bool)
		for _, p := range markers[label] {
			seen[p] = true
		}
		for i := 0; i < nEdges; i++ {
			if line, err = getLine(reader); err != nil {
				return
			}
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				return nil, fmt.Errorf("marker %s: %w", label, err)
			}
			if SU2ElementType(nType) != ELType_LINE {
				return nil, fmt.Errorf("markers should only contain line elements in 2D, have type %d", nType)
			}
			markers[label] = appendUniquePt(markers[label], v1)
			markers[label] = appendUniquePt(markers[label], v2)
		}
	}
	return
}

func getToken(reader *bufio.Reader) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		err = fmt.Errorf("badly formed input line [%s], should have an =", line)
		return
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		err = fmt.Errorf("unable to read label from token: [%s]", token)
		return
	}
	label = strings.Trim(label, " ")
	return
}

func readNumber(reader *bufio.Reader) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		err = fmt.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

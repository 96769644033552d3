package readfiles

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestReadSU2(t *testing.T) {
	{ // Test reading the file structure
		reader := bufio.NewReader(bytes.NewReader(inputFile))
		dim, err := readNumber(reader)
		require.NoError(t, err)
		assert.Equal(t, 2, dim)
		zoneStart, zonePoints, err := readElements(reader)
		require.NoError(t, err)
		assert.Equal(t, 24, len(zoneStart))
		assert.Equal(t, 22*3+4, len(zonePoints))
		px, err := readVertices(reader)
		require.NoError(t, err)
		assert.Equal(t, 18, len(px))
		assert.Equal(t, -7.100939331382065, px[17].X)
		assert.Equal(t, 2.889910324036197, px[17].Y)
		markers, err := readMarkers(reader)
		require.NoError(t, err)
		assert.Equal(t, 4, len(markers))
		assert.Equal(t, []int{3, 11, 0}, markers["periodic-left"])
		assert.Equal(t, []int{2, 8, 9, 10, 3}, markers["top"])
	}
	{ // Test the assembled mesh is counter-clockwise everywhere
		pm, err := ParseSU2(bytes.NewReader(inputFile), false)
		require.NoError(t, err)
		assert.Equal(t, 22+1, pm.NumZones())
		for z := 0; z < pm.NumZones(); z++ {
			zp := pm.ZonePoints[pm.ZoneStart[z]:pm.ZoneStart[z+1]]
			var area2 float64
			for i := range zp {
				area2 += r2.Cross(pm.Points[zp[i]], pm.Points[zp[(i+1)%len(zp)]])
			}
			assert.True(t, area2 > 0, "zone %d is not counter-clockwise", z)
		}
		assert.Equal(t, 0, pm.OrientCCW())
		assert.Equal(t, []int{4, 12, 11, 0}, pm.ZonePoints[pm.ZoneStart[22]:])
	}
	{ // Test malformed input
		_, err := ParseSU2(strings.NewReader("NDIME= 3\n"), false)
		assert.Error(t, err)
		_, err = ParseSU2(strings.NewReader("NDIME= 2\nNELEM= 1\n10 0 1 2 3 0\n"), false)
		assert.Error(t, err)
		_, err = ParseSU2(strings.NewReader("NDIME= 2\nNELEM= 1\n5 0 1 7 0\nNPOIN= 3\n0 0 0\n1 0 1\n0 1 2\n"), false)
		assert.Error(t, err)
	}
	{ // A file without markers is accepted
		pm, err := ParseSU2(strings.NewReader("NDIME= 2\nNELEM= 1\n5 0 2 1 0\nNPOIN= 3\n0 0 0\n1 0 1\n0 1 2\n"), false)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 0}, pm.ZonePoints)
		assert.Equal(t, 0, len(pm.Markers))
	}
}

func TestXY(t *testing.T) {
	var (
		buf bytes.Buffer
	)
	zr := []float64{1, 0.125, 3.5e-7}
	ze := []float64{2.5, 0, 1.e10}
	require.NoError(t, WriteXY(&buf, XYField{"zr", zr}, XYField{"ze", ze}))
	assert.True(t, strings.HasPrefix(buf.String(), "#  zr\n"))
	fields, err := ReadXY(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, len(fields))
	assert.Equal(t, "zr", fields[0].Name)
	assert.Equal(t, "ze", fields[1].Name)
	assert.InDeltaSlice(t, zr, fields[0].Values, 1.e-15)
	assert.InDeltaSlice(t, ze, fields[1].Values, 1.e-6)
	_, err = ReadXY(strings.NewReader("1 2.0\n"))
	assert.Error(t, err)
}

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 23
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
9 0 11 12 4 22
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)

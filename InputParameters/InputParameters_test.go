package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParametersHydro(t *testing.T) {
	{ // Test deck values override defaults and absent keys keep them
		fileInput := []byte(`
Title: sedov
MeshType: pie
MeshParams:
  nzx: 20
  nzy: 10
  lenx: 90
  leny: 1.125
SubRegion:
  xmin: 0
  xmax: 0.1
  ymin: 0
  ymax: 0.1
EInitSub: 3.5
CStop: 50
BCX: [0.]
BCY: [0.]
Q1: 0.1
`)
		ip := NewInputParametersHydro()
		require.NoError(t, ip.Parse(fileInput))
		assert.Equal(t, "sedov", ip.Title)
		assert.Equal(t, "pie", ip.MeshType)
		assert.Equal(t, MeshParameters{NZX: 20, NZY: 10, LenX: 90, LenY: 1.125}, ip.MeshParams)
		require.NotNil(t, ip.SubRegion)
		assert.Equal(t, 0.1, ip.SubRegion.XMax)
		assert.Equal(t, 3.5, ip.EInitSub)
		assert.Equal(t, 50, ip.CStop)
		assert.Equal(t, []float64{0}, ip.BCX)
		assert.Equal(t, 0.1, ip.Q1)
		// Defaults
		assert.Equal(t, 2., ip.Q2)
		assert.Equal(t, 0.6, ip.CFL)
		assert.Equal(t, 1.2, ip.DtFac)
		assert.Equal(t, 1.e99, ip.TStop)
		assert.Equal(t, "cylindrical", ip.Geometry)
		ip.Print()
	}
	{ // Test validation
		ip := NewInputParametersHydro()
		assert.Error(t, ip.Validate()) // No mesh dimensions
		assert.Error(t, ip.Parse([]byte("MeshType: hex\n")))
		assert.Error(t, ip.Parse([]byte("MeshType: su2\n")))
		ip = NewInputParametersHydro()
		err := ip.Parse([]byte("MeshParams: {nzx: 4, nzy: 4, lenx: 1, leny: 1}\nCFL: -1\nGamma: 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CFL")
		assert.Contains(t, err.Error(), "Gamma")
		ip = NewInputParametersHydro()
		assert.Error(t, ip.Parse([]byte("MeshParams: {nzx: 4, nzy: 4, lenx: 1, leny: 1}\nSubRegion: {xmin: 1, xmax: 0, ymin: 0, ymax: 1}\n")))
		assert.Error(t, ip.Parse([]byte("CStop: [1, 2]\n")))
	}
	{ // Test run control and boundary marker checks
		ip := NewInputParametersHydro()
		ip.MeshParams = MeshParameters{NZX: 4, NZY: 4, LenX: 1, LenY: 1}
		require.NoError(t, ip.Validate())
		ip.TStop = -1
		assert.Error(t, ip.Validate())
		ip.TStop, ip.CStop = 1, -5
		assert.Error(t, ip.Validate())
		ip.CStop, ip.Chunks = 5, -2
		assert.Error(t, ip.Validate())
		ip.Chunks = 0
		ip.BCMarkers = []string{"wall"}
		err := ip.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BCMarkers")
		ip = NewInputParametersHydro()
		require.NoError(t, ip.Parse([]byte("MeshType: su2\nMeshFile: duct.su2\nBCMarkers: [lower, upper]\n")))
		assert.Equal(t, []string{"lower", "upper"}, ip.BCMarkers)
	}
}

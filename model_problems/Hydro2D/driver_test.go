package Hydro2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopennant/InputParameters"
)

func TestCalcGlobalDt(t *testing.T) {
	ip := rectDeck(2, 2, 1, "planar")
	ip.DtInit = 1.e-3
	ip.DtFac = 1.2
	ip.TStop = 1.5e-3
	d := NewDriver(newTestHydro(t, ip), ip, false)

	d.Cycle = 1
	d.CalcGlobalDt()
	assert.Equal(t, 1.e-3, d.Dt)
	assert.Equal(t, "Initial timestep", d.DtMessage)

	d.Time += d.Dt
	d.Cycle = 2
	d.CalcGlobalDt()
	assert.InDelta(t, 5.e-4, d.Dt, 1.e-18)
	assert.Equal(t, "Global timestep: tstop", d.DtMessage)
	assert.Equal(t, 1.e-3, d.DtLast)

	d.TStop = 1
	d.Cycle = 3
	d.CalcGlobalDt()
	assert.InDelta(t, 1.2*5.e-4, d.Dt, 1.e-18)
	assert.Equal(t, "Recovery: dt = dtfac*dtlast", d.DtMessage)

	d.hydroStep = TimeStep{DT: 1.e-5, Zone: 2, Message: "Hydro Courant limit for z = 2"}
	d.CalcGlobalDt()
	assert.Equal(t, 1.e-5, d.Dt)
	assert.Equal(t, "Hydro Courant limit for z = 2", d.DtMessage)

	d.hydroStep = NewTimeStep()
	d.DtMax = 1.e-6
	d.CalcGlobalDt()
	assert.Equal(t, 1.e-6, d.Dt)
	assert.Equal(t, "Global maximum (dtmax)", d.DtMessage)
}

func TestDriverRun(t *testing.T) {
	{ // Stops on cycle count
		ip := sedovDeck(2)
		ip.CStop = 4
		d, err := NewProblem(ip, true)
		require.NoError(t, err)
		require.NoError(t, d.Run())
		assert.Equal(t, 4, d.Cycle)
		assert.True(t, d.Time > 0)
		ts := d.HydroStep()
		assert.True(t, ts.DT > 0 && ts.DT < 1.e99)
		assert.True(t, ts.Zone >= 0 && ts.Zone < d.Hydro.Mesh.NumZones)
		assert.NotEmpty(t, ts.Message)
	}
	{ // Stops exactly on the end time
		ip := sedovDeck(2)
		ip.CStop = 1000
		ip.TStop = 2.5e-3
		d, err := NewProblem(ip, false)
		require.NoError(t, err)
		d.EnableHistory()
		require.NoError(t, d.Run())
		assert.Equal(t, 3, d.Cycle) // 1e-3, 1.2e-3, then the remaining 3e-4
		assert.InDelta(t, 2.5e-3, d.Time, 1.e-15)
		assert.Equal(t, "Global timestep: tstop", d.DtMessage)
		require.Equal(t, 3, len(d.History.Dt))
		assert.Equal(t, 1.e-3, d.History.Dt[0])
		assert.Equal(t, d.Time, d.History.Time[2])
		for _, e := range d.History.Energy {
			assert.InDelta(t, d.History.Energy[0], e, 1.e-2*d.History.Energy[0])
		}
	}
	{ // Reporting without a report interval only prints the first cycle
		ip := sedovDeck(2)
		ip.CStop = 2
		ip.DtReport = 0
		d := NewDriver(newTestHydro(t, ip), ip, true)
		assert.NotPanics(t, func() { require.NoError(t, d.Run()) })
		assert.Equal(t, 2, d.Cycle)
	}
	{ // Input deck errors surface from construction
		ip := InputParameters.NewInputParametersHydro()
		ip.MeshType = "su2"
		ip.MeshFile = "does-not-exist.su2"
		_, err := NewProblem(ip, false)
		assert.Error(t, err)
	}
}

func TestZoneFields(t *testing.T) {
	ip := rectDeck(2, 3, 1, "planar")
	ip.EInit = 1.5
	h := newTestHydro(t, ip)
	fields := h.ZoneFields()
	require.Equal(t, 3, len(fields))
	assert.Equal(t, "zr", fields[0].Name)
	assert.Equal(t, 6, len(fields[0].Values))
	assert.Equal(t, 1.5, fields[1].Values[4])
}

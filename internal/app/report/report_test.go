package report

import (
	"bytes"
	"testing"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestLine(t *testing.T) {
	r := app.NearbyResult{
		Observation: app.AircraftObservation{
			ICAO24:         "a1b2c3",
			Callsign:       "UAL123",
			AltitudeM:      3050.9,
			HeadingDeg:     f64(89.6),
			GroundSpeedMps: f64(120.5),
		},
		DistanceKm:     12.345,
		BearingDeg:     270.6,
		BearingCompass: "W",
	}
	assert.Equal(t, "- UAL123  (a1b2c3)  12.3 km, alt 3050 m, bearing 271° W, heading 90°, speed 434 km/h", Line(r))

	r.Observation.HeadingDeg = nil
	r.Observation.GroundSpeedMps = nil
	assert.Equal(t, "- UAL123  (a1b2c3)  12.3 km, alt 3050 m, bearing 271° W, heading —, speed —", Line(r))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{NothingFound}, Lines(nil))

	results := []app.NearbyResult{
		{Observation: app.AircraftObservation{ICAO24: "a", Callsign: "A"}, BearingCompass: "N"},
		{Observation: app.AircraftObservation{ICAO24: "b", Callsign: "B"}, BearingCompass: "N"},
	}
	lines := Lines(results)
	require.Len(t, lines, 3)
	assert.Equal(t, "Found 2 aircraft near you:", lines[0])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, NothingFound+"\n", buf.String())
	assert.Equal(t, buf.Len(), n)
}

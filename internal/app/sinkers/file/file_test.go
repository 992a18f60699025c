package file

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/report"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func TestFileSinker(t *testing.T) {
	dir := t.TempDir()
	conf := Configuration{
		Outputraw:    filepath.Join(dir, "nested", "raw.log"),
		Outputreport: filepath.Join(dir, "nested", "report.log"),
	}
	sinker := New(quietLog(), conf)
	ctx := context.Background()
	require.NoError(t, sinker.Init(ctx))

	snapshot := time.Date(2021, 7, 22, 9, 0, 0, 0, time.UTC)
	results := []app.NearbyResult{{
		Observation:    app.AircraftObservation{ICAO24: "a0b1c2", Callsign: "SWA1234", AltitudeM: 3000},
		DistanceKm:     12.3,
		BearingDeg:     45,
		BearingCompass: "NE",
	}}
	require.NoError(t, sinker.Sink(ctx, snapshot, results))
	require.NoError(t, sinker.Sink(ctx, snapshot, nil))
	require.NoError(t, sinker.Close())

	reportBytes, err := os.ReadFile(conf.Outputreport)
	require.NoError(t, err)
	reportText := string(reportBytes)
	assert.Equal(t, 2, strings.Count(reportText, separator))
	assert.Contains(t, reportText, "2021-07-22T09:00:00Z Nearby Flights\n")
	assert.Contains(t, reportText, report.Line(results[0]))
	assert.Contains(t, reportText, report.NothingFound)

	rawBytes, err := os.ReadFile(conf.Outputraw)
	require.NoError(t, err)
	blocks := strings.Split(string(rawBytes), separator)
	require.Len(t, blocks, 3)
	lines := strings.SplitN(blocks[0], "\n", 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "2021-07-22T09:00:00Z Results", lines[0])

	var decoded []app.NearbyResult
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a0b1c2", decoded[0].Observation.ICAO24)
	assert.Equal(t, "NE", decoded[0].BearingCompass)
}

func TestFileSinkerAppends(t *testing.T) {
	dir := t.TempDir()
	conf := Configuration{
		Outputraw:    filepath.Join(dir, "raw.log"),
		Outputreport: filepath.Join(dir, "report.log"),
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		sinker := New(quietLog(), conf)
		require.NoError(t, sinker.Init(ctx))
		require.NoError(t, sinker.Sink(ctx, time.Now(), nil))
		require.NoError(t, sinker.Close())
	}

	reportBytes, err := os.ReadFile(conf.Outputreport)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(reportBytes), report.NothingFound))
}

func TestFileSinkerNotInitialized(t *testing.T) {
	sinker := New(quietLog(), Configuration{})
	assert.Error(t, sinker.Sink(context.Background(), time.Now(), nil))
	assert.Error(t, sinker.Init(context.Background()))
	assert.NoError(t, sinker.Close())
}

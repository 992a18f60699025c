package service

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/geo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log *logrus.Logger

type fakeSource struct {
	snapshot *app.StateSnapshot
	err      error

	calls    int
	bbox     app.BoundingBox
	extended bool
	deadline time.Time
}

func (f *fakeSource) States(ctx context.Context, bbox app.BoundingBox, extended bool) (*app.StateSnapshot, error) {
	f.calls++
	f.bbox = bbox
	f.extended = extended
	f.deadline, _ = ctx.Deadline()
	return f.snapshot, f.err
}

var fixedNow = time.Date(2021, 7, 22, 9, 0, 0, 0, time.UTC)

func newService(source StateSource) *Service {
	svc := New(log, source)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func defaultQuery() Query {
	return Query{Center: center, RadiusKm: 100, MinAltitudeM: 200, MaxResults: 10, Timeout: 10 * time.Second, Extended: true}
}

func TestNearbySameCoordinates(t *testing.T) {
	source := &fakeSource{snapshot: &app.StateSnapshot{
		Time: i64(1626944400),
		States: []app.StateVector{{
			ICAO24:       "a0b1c2",
			Callsign:     str("SWA1234 "),
			Latitude:     f64(center.Latitude),
			Longitude:    f64(center.Longitude),
			BaroAltitude: f64(3000),
			OnGround:     boolean(false),
		}},
	}}

	snapshotTime, results, err := newService(source).Nearby(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1626944400, 0).UTC(), snapshotTime)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 0, r.DistanceKm, 1e-9)
	assert.Equal(t, "SWA1234", r.Observation.Callsign)
	assert.Equal(t, 3000.0, r.Observation.AltitudeM)
	assert.Contains(t, []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}, r.BearingCompass)

	assert.Equal(t, 1, source.calls)
	assert.True(t, source.extended)
	assert.Equal(t, geo.BoundingBoxAround(center, 100), source.bbox)
	assert.False(t, source.deadline.IsZero(), "the fetch runs under the query timeout")
}

func TestNearbyFiltersRanks(t *testing.T) {
	source := &fakeSource{snapshot: &app.StateSnapshot{
		Time: i64(1626944400),
		States: []app.StateVector{
			{ICAO24: "taxiing", Latitude: f64(north(5).Latitude), Longitude: f64(center.Longitude), BaroAltitude: f64(3000), OnGround: boolean(true)},
			{ICAO24: "far", Latitude: f64(north(30).Latitude), Longitude: f64(center.Longitude), GeoAltitude: f64(9000)},
			{ICAO24: "close", Latitude: f64(north(2).Latitude), Longitude: f64(center.Longitude), GeoAltitude: f64(900)},
			{ICAO24: "nopos", BaroAltitude: f64(3000)},
			{ICAO24: "noalt", Latitude: f64(center.Latitude), Longitude: f64(center.Longitude)},
			{ICAO24: "outside", Latitude: f64(north(101).Latitude), Longitude: f64(center.Longitude), GeoAltitude: f64(9000)},
		},
	}}

	_, results, err := newService(source).Nearby(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, []string{"close", "far"}, ids(results))
}

func TestNearbyEmpty(t *testing.T) {
	for name, snapshot := range map[string]*app.StateSnapshot{
		"nil snapshot": nil,
		"nil states":   {Time: i64(1626944400)},
		"empty states": {Time: i64(1626944400), States: []app.StateVector{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, results, err := newService(&fakeSource{snapshot: snapshot}).Nearby(context.Background(), defaultQuery())
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestNearbyMissingSnapshotTime(t *testing.T) {
	source := &fakeSource{snapshot: &app.StateSnapshot{States: []app.StateVector{}}}
	snapshotTime, _, err := newService(source).Nearby(context.Background(), defaultQuery())
	require.NoError(t, err)
	assert.Equal(t, fixedNow, snapshotTime)
}

func TestNearbyTransportFailure(t *testing.T) {
	transport := errors.New("connection refused")
	source := &fakeSource{err: transport}

	_, results, err := newService(source).Nearby(context.Background(), defaultQuery())
	require.Error(t, err)
	assert.True(t, errors.Is(err, transport))
	assert.Nil(t, results)
	assert.Equal(t, 1, source.calls, "no retry")
}

func TestNearbyInvalidQuery(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Query)
	}{
		{"zero radius", func(q *Query) { q.RadiusKm = 0 }},
		{"negative radius", func(q *Query) { q.RadiusKm = -5 }},
		{"latitude", func(q *Query) { q.Center.Latitude = 91 }},
		{"longitude", func(q *Query) { q.Center.Longitude = -181 }},
		{"nan latitude", func(q *Query) { q.Center.Latitude = math.NaN() }},
		{"nan longitude", func(q *Query) { q.Center.Longitude = math.NaN() }},
		{"nan radius", func(q *Query) { q.RadiusKm = math.NaN() }},
		{"infinite radius", func(q *Query) { q.RadiusKm = math.Inf(1) }},
		{"nan min altitude", func(q *Query) { q.MinAltitudeM = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{snapshot: &app.StateSnapshot{
				Time: i64(1626944400),
				States: []app.StateVector{{
					ICAO24:       "a0b1c2",
					Latitude:     f64(center.Latitude),
					Longitude:    f64(center.Longitude),
					BaroAltitude: f64(3000),
				}},
			}}
			q := defaultQuery()
			tt.mutate(&q)
			_, _, err := newService(source).Nearby(context.Background(), q)
			assert.True(t, errors.Is(err, ErrInvalidQuery))
			assert.Equal(t, 0, source.calls)
		})
	}
}

func TestNearbyDefaultTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		source := &fakeSource{snapshot: &app.StateSnapshot{}}
		q := defaultQuery()
		q.Timeout = timeout
		start := time.Now()
		_, _, err := newService(source).Nearby(context.Background(), q)
		require.NoError(t, err)
		require.False(t, source.deadline.IsZero(), "timeout %v", timeout)
		assert.WithinDuration(t, start.Add(DefaultTimeout), source.deadline, time.Second)
	}
}

func init() {
	log = logrus.New()
	log.Formatter = new(logrus.TextFormatter)
	log.Formatter.(*logrus.TextFormatter).DisableColors = true
	log.Formatter.(*logrus.TextFormatter).DisableTimestamp = true
	log.Level = logrus.TraceLevel
	log.Out = io.Discard
}

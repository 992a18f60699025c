package app

import (
	"context"
	"time"
)

//GeoPoint - a position in decimal degrees
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// BoundingBox - a lat/lon rectangle, LatMin <= LatMax and LonMin <= LonMax
type BoundingBox struct {
	LatMin float64 `json:"latMin"`
	LatMax float64 `json:"latMax"`
	LonMin float64 `json:"lonMin"`
	LonMax float64 `json:"lonMax"`
}

//StateVector - one aircraft state row of the OpenSky API, decoded by position.
//Every field but ICAO24 may be absent (nil).
type StateVector struct {
	ICAO24        string   // [0]
	Callsign      *string  // [1]
	OriginCountry *string  // [2]
	TimePosition  *int64   // [3] unix seconds
	LastContact   *int64   // [4] unix seconds
	Longitude     *float64 // [5]
	Latitude      *float64 // [6]
	BaroAltitude  *float64 // [7] meters
	OnGround      *bool    // [8]
	Velocity      *float64 // [9] m/s over ground
	TrueTrack     *float64 // [10] degrees clockwise from north
	VerticalRate  *float64 // [11] m/s
	GeoAltitude   *float64 // [13] meters
	Squawk        *string  // [14]
	Category      *int     // [17] only with extended=1
}

//StateSnapshot - response of the state data source
type StateSnapshot struct {
	Time   *int64
	States []StateVector
}

//AircraftObservation - a validated aircraft state
type AircraftObservation struct {
	ICAO24          string    `json:"icao24"`
	Callsign        string    `json:"callsign"`
	Position        GeoPoint  `json:"position"`
	AltitudeM       float64   `json:"altitudeM"`
	OnGround        bool      `json:"onGround"`
	GroundSpeedMps  *float64  `json:"groundSpeedMps,omitempty"`
	HeadingDeg      *float64  `json:"headingDeg,omitempty"`
	VerticalRateMps *float64  `json:"verticalRateMps,omitempty"`
	LastUpdate      time.Time `json:"lastUpdate"`
	OriginCountry   string    `json:"originCountry,omitempty"`
	Squawk          string    `json:"squawk,omitempty"`
}

//NearbyResult - an observation seen from the query center
type NearbyResult struct {
	Observation    AircraftObservation `json:"observation"`
	DistanceKm     float64             `json:"distanceKm"`
	BearingDeg     float64             `json:"bearingDeg"`
	BearingCompass string              `json:"bearingCompass"`
}

const (
	MSTOKMH = 3.6
)

//Sinker - destination of a nearby report
type Sinker interface {
	Init(ctx context.Context) error
	Sink(ctx context.Context, snapshot time.Time, data []NearbyResult) error
	Close() error
}

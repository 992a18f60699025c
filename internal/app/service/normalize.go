package service

import (
	"strings"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/geo"
)

const (
	// NoCallsign replaces a blank callsign.
	NoCallsign = "(no callsign)"

	// DefaultOnGround applies when a state vector carries no on-ground flag.
	DefaultOnGround = false
)

// ResolveAltitude picks the geometric altitude when present and falls back
// to the barometric one. ok is false when both are missing.
func ResolveAltitude(geoAltitude, baroAltitude *float64) (altitude float64, ok bool) {
	switch {
	case geoAltitude != nil:
		return *geoAltitude, true
	case baroAltitude != nil:
		return *baroAltitude, true
	default:
		return 0, false
	}
}

// ResolveOnGround reads the on-ground flag, DefaultOnGround if absent.
func ResolveOnGround(onGround *bool) bool {
	if onGround == nil {
		return DefaultOnGround
	}
	return *onGround
}

// ResolveCallsign trims the callsign, NoCallsign if nothing is left.
func ResolveCallsign(callsign *string) string {
	if callsign == nil {
		return NoCallsign
	}
	if c := strings.TrimSpace(*callsign); c != "" {
		return c
	}
	return NoCallsign
}

// Normalize turns a state vector into an observation. Vectors without a
// position or without any altitude are rejected with ok == false.
func Normalize(sv app.StateVector) (obs app.AircraftObservation, ok bool) {
	if sv.Latitude == nil || sv.Longitude == nil {
		return obs, false
	}
	altitude, ok := ResolveAltitude(sv.GeoAltitude, sv.BaroAltitude)
	if !ok {
		return obs, false
	}

	obs = app.AircraftObservation{
		ICAO24:          sv.ICAO24,
		Callsign:        ResolveCallsign(sv.Callsign),
		Position:        app.GeoPoint{Latitude: *sv.Latitude, Longitude: *sv.Longitude},
		AltitudeM:       altitude,
		OnGround:        ResolveOnGround(sv.OnGround),
		GroundSpeedMps:  sv.Velocity,
		VerticalRateMps: sv.VerticalRate,
	}
	if sv.TrueTrack != nil {
		heading := geo.NormalizeDegrees(*sv.TrueTrack)
		obs.HeadingDeg = &heading
	}
	if sv.LastContact != nil {
		obs.LastUpdate = time.Unix(*sv.LastContact, 0).UTC()
	}
	if sv.OriginCountry != nil {
		obs.OriginCountry = *sv.OriginCountry
	}
	if sv.Squawk != nil {
		obs.Squawk = *sv.Squawk
	}

	return obs, true
}

// NormalizeAll keeps the observations of every valid state vector, in
// input order.
func NormalizeAll(states []app.StateVector) []app.AircraftObservation {
	result := make([]app.AircraftObservation, 0, len(states))
	for _, sv := range states {
		if obs, ok := Normalize(sv); ok {
			result = append(result, obs)
		}
	}
	return result
}

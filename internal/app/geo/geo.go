// Package geo holds the spherical-earth helpers used to find aircraft
// around a point: haversine distance, initial bearing, bounding box and
// compass labels.
package geo

import (
	"math"

	"github.com/mtsuei/windowplane/internal/app"
)

const (
	// EarthRadiusKm is the mean earth radius of the spherical model.
	EarthRadiusKm = 6371.0

	// KmPerDegree approximates one degree of latitude (and of longitude at
	// the equator).
	KmPerDegree = 111.0

	// MinCosLatitude floors cos(latitude) in BoundingBoxAround so the
	// longitude span stays finite at the poles.
	MinCosLatitude = 1e-4

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DistanceKm returns the great-circle distance between a and b in
// kilometers using the haversine formula.
func DistanceKm(a, b app.GeoPoint) float64 {
	lat1 := a.Latitude * degToRad
	lat2 := b.Latitude * degToRad
	dLat := (b.Latitude - a.Latitude) * degToRad
	dLon := (b.Longitude - a.Longitude) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding can push h a hair above 1 for antipodal points
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// InitialBearingDeg returns the forward azimuth from a to b in [0,360),
// 0 being north and increasing clockwise. The value for a == b is
// unspecified but stays in range.
func InitialBearingDeg(a, b app.GeoPoint) float64 {
	lat1 := a.Latitude * degToRad
	lat2 := b.Latitude * degToRad
	dLon := (b.Longitude - a.Longitude) * degToRad

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeDegrees(math.Atan2(y, x) * radToDeg)
}

// BoundingBoxAround returns a box that contains every point within
// radiusKm of center. Near the poles the longitude span is wider than
// needed; callers re-check the true distance.
func BoundingBoxAround(center app.GeoPoint, radiusKm float64) app.BoundingBox {
	dLat := radiusKm / KmPerDegree
	dLon := radiusKm / (KmPerDegree * math.Max(MinCosLatitude, math.Cos(center.Latitude*degToRad)))

	return app.BoundingBox{
		LatMin: center.Latitude - dLat,
		LatMax: center.Latitude + dLat,
		LonMin: center.Longitude - dLon,
		LonMax: center.Longitude + dLon,
	}
}

// CompassLabel maps a bearing to one of the eight cardinal and
// intercardinal points. Sectors are 45 degrees wide and centered on the
// labels, so [337.5,22.5) is N.
func CompassLabel(bearingDeg float64) string {
	idx := int(NormalizeDegrees(bearingDeg+22.5) / 45)
	// NaN converts to an arbitrary int
	if idx < 0 || idx >= len(compassPoints) {
		idx = 0
	}
	return compassPoints[idx]
}

// NormalizeDegrees reduces deg to [0,360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360
	if d >= 360 {
		d = 0
	}
	return d
}

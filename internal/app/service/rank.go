package service

import (
	"sort"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/geo"
)

// Rank keeps the airborne candidates within radiusKm of center and at or
// above minAltitudeM, nearest first, at most maxResults of them. Equal
// distances keep their input order.
func Rank(candidates []app.AircraftObservation, center app.GeoPoint, radiusKm, minAltitudeM float64, maxResults int) []app.NearbyResult {
	result := make([]app.NearbyResult, 0)
	if maxResults <= 0 {
		return result
	}

	for _, c := range candidates {
		distance := geo.DistanceKm(center, c.Position)
		if distance > radiusKm || c.OnGround || c.AltitudeM < minAltitudeM {
			continue
		}

		bearing := geo.InitialBearingDeg(center, c.Position)
		result = append(result, app.NearbyResult{
			Observation:    c,
			DistanceKm:     distance,
			BearingDeg:     bearing,
			BearingCompass: geo.CompassLabel(bearing),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	if len(result) > maxResults {
		result = result[:maxResults]
	}
	return result
}

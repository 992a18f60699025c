// Package report renders nearby results as console lines.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/mtsuei/windowplane/internal/app"
)

const (
	// NothingFound is printed instead of the list when no aircraft matched.
	NothingFound = "No airborne aircraft found in range."

	// Missing stands in for an absent heading or speed.
	Missing = "—"
)

// Line formats one result:
//
//	- UAL123  (a1b2c3)  12.3 km, alt 3050 m, bearing 271° W, heading 90°, speed 434 km/h
func Line(r app.NearbyResult) string {
	obs := r.Observation

	heading := Missing
	if obs.HeadingDeg != nil {
		heading = fmt.Sprintf("%d°", int(math.Round(*obs.HeadingDeg)))
	}
	speed := Missing
	if obs.GroundSpeedMps != nil {
		speed = fmt.Sprintf("%d km/h", int(math.Round(*obs.GroundSpeedMps*app.MSTOKMH)))
	}

	return fmt.Sprintf("- %s  (%s)  %.1f km, alt %d m, bearing %d° %s, heading %s, speed %s",
		obs.Callsign,
		obs.ICAO24,
		r.DistanceKm,
		int(obs.AltitudeM),
		int(math.Round(r.BearingDeg)),
		r.BearingCompass,
		heading,
		speed,
	)
}

// Lines returns the whole report, header included.
func Lines(results []app.NearbyResult) []string {
	if len(results) == 0 {
		return []string{NothingFound}
	}
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, fmt.Sprintf("Found %d aircraft near you:", len(results)))
	for _, r := range results {
		lines = append(lines, Line(r))
	}
	return lines
}

// Write prints the report to w, one line each.
func Write(w io.Writer, results []app.NearbyResult) (int, error) {
	written := 0
	for _, l := range Lines(results) {
		n, err := fmt.Fprintln(w, l)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

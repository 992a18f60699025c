package opensky

import (
	"encoding/json"
	"fmt"

	"github.com/mtsuei/windowplane/internal/app"
)

// positions of the state vector fields inside one "states" row
const (
	idxICAO24 = iota
	idxCallsign
	idxOriginCountry
	idxTimePosition
	idxLastContact
	idxLongitude
	idxLatitude
	idxBaroAltitude
	idxOnGround
	idxVelocity
	idxTrueTrack
	idxVerticalRate
	idxSensors
	idxGeoAltitude
	idxSquawk
	idxSPI
	idxPositionSource
	idxCategory
)

type statesResponse struct {
	Time   *int64     `json:"time"`
	States []stateRow `json:"states"`
}

// stateRow decodes the positional array of the API into named fields.
// Missing trailing positions and JSON nulls stay nil, a value of the wrong
// JSON type is an error.
type stateRow struct {
	app.StateVector
}

func (r *stateRow) UnmarshalJSON(b []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	sv := app.StateVector{}
	targets := []struct {
		idx int
		v   interface{}
	}{
		{idxICAO24, &sv.ICAO24},
		{idxCallsign, &sv.Callsign},
		{idxOriginCountry, &sv.OriginCountry},
		{idxTimePosition, &sv.TimePosition},
		{idxLastContact, &sv.LastContact},
		{idxLongitude, &sv.Longitude},
		{idxLatitude, &sv.Latitude},
		{idxBaroAltitude, &sv.BaroAltitude},
		{idxOnGround, &sv.OnGround},
		{idxVelocity, &sv.Velocity},
		{idxTrueTrack, &sv.TrueTrack},
		{idxVerticalRate, &sv.VerticalRate},
		{idxGeoAltitude, &sv.GeoAltitude},
		{idxSquawk, &sv.Squawk},
		{idxCategory, &sv.Category},
	}
	for _, t := range targets {
		if t.idx >= len(fields) {
			continue
		}
		if err := json.Unmarshal(fields[t.idx], t.v); err != nil {
			return fmt.Errorf("state field %d: %w", t.idx, err)
		}
	}

	r.StateVector = sv
	return nil
}

func (s statesResponse) snapshot() *app.StateSnapshot {
	result := &app.StateSnapshot{
		Time:   s.Time,
		States: make([]app.StateVector, 0, len(s.States)),
	}
	for _, row := range s.States {
		result.States = append(result.States, row.StateVector)
	}
	return result
}

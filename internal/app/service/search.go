package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mtsuei/windowplane/internal/app"
	"github.com/mtsuei/windowplane/internal/app/geo"
	"github.com/mtsuei/windowplane/internal/app/tools"
	"github.com/sirupsen/logrus"
)

// ErrInvalidQuery is returned for a query that cannot be answered
// whatever the data source says.
var ErrInvalidQuery = errors.New("invalid nearby query")

// DefaultTimeout bounds a query that does not set its own timeout.
const DefaultTimeout = 10 * time.Second

// StateSource provides aircraft state vectors for a bounding box.
type StateSource interface {
	States(ctx context.Context, bbox app.BoundingBox, extended bool) (*app.StateSnapshot, error)
}

// Query describes one nearby search.
type Query struct {
	Center       app.GeoPoint  `json:"center"`
	RadiusKm     float64       `json:"radiusKm"`
	MinAltitudeM float64       `json:"minAltitudeM"`
	MaxResults   int           `json:"maxResults"`
	Timeout      time.Duration `json:"-"`
	Extended     bool          `json:"extended"`
}

type Service struct {
	Log    *logrus.Logger
	Source StateSource
	// Now stands in for a missing snapshot time.
	Now func() time.Time
}

func New(log *logrus.Logger, source StateSource) *Service {
	return &Service{Log: log, Source: source, Now: time.Now}
}

// Nearby fetches the states around q.Center and returns the snapshot time
// with the ranked results. Only data source failures and invalid queries
// are reported as errors, an empty sky is not.
func (s *Service) Nearby(ctx context.Context, q Query) (time.Time, []app.NearbyResult, error) {
	if !(q.RadiusKm > 0) || math.IsInf(q.RadiusKm, 1) {
		return time.Time{}, nil, fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalidQuery, q.RadiusKm)
	}
	if math.IsNaN(q.MinAltitudeM) {
		return time.Time{}, nil, fmt.Errorf("%w: minimum altitude is not a number", ErrInvalidQuery)
	}
	if err := tools.CheckPoint(q.Center); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	bbox := geo.BoundingBoxAround(q.Center, q.RadiusKm)
	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"center": tools.PointToString(q.Center),
		"bbox":   bbox,
	}).Debug("Nearby search called")

	timeout := q.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snapshot, errStates := s.Source.States(ctx, bbox, q.Extended)
	if errStates != nil {
		return time.Time{}, nil, errStates
	}

	snapshotTime := s.Now()
	if snapshot != nil && snapshot.Time != nil {
		snapshotTime = time.Unix(*snapshot.Time, 0)
	} else {
		s.Log.WithContext(ctx).Warn("No snapshot time in response, using local clock")
	}
	snapshotTime = snapshotTime.UTC()

	if snapshot == nil || len(snapshot.States) == 0 {
		return snapshotTime, []app.NearbyResult{}, nil
	}

	candidates := NormalizeAll(snapshot.States)
	results := Rank(candidates, q.Center, q.RadiusKm, q.MinAltitudeM, q.MaxResults)

	s.Log.WithContext(ctx).WithFields(logrus.Fields{
		"number of States":     len(snapshot.States),
		"number of Candidates": len(candidates),
		"number of Results":    len(results),
	}).Debug("Nearby search done")

	return snapshotTime, results, nil
}

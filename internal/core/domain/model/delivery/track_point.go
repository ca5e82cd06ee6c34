package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// MaxTrackPoints caps the per-delivery location history. When the cap is
// exceeded the oldest entries are dropped, so the history always holds the
// most recent points.
const MaxTrackPoints = 100

// ErrTrackPointIsNotConstructed is returned when using a zero-value TrackPoint.
var ErrTrackPointIsNotConstructed = kernel.ErrDefaultConstructorGuard

// TrackPoint is one entry of a delivery's location history: a validated
// position, the ingestion timestamp, and the reported GPS accuracy when the
// device supplied one.
type TrackPoint struct {
	point    kernel.GeoPoint
	at       time.Time
	accuracy *float64
	guard    kernel.ConstructorGuard
}

// NewTrackPoint creates a history entry. Accuracy is optional and given in meters.
func NewTrackPoint(point kernel.GeoPoint, at time.Time, accuracy *float64) (TrackPoint, error) {
	if err := point.Validate(); err != nil {
		return TrackPoint{}, err
	}

	return TrackPoint{
		point:    point,
		at:       at,
		accuracy: accuracy,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate checks that the TrackPoint was created through NewTrackPoint.
func (p TrackPoint) Validate() error {
	return p.guard.Validate(ErrTrackPointIsNotConstructed)
}

// Point returns the recorded position.
func (p TrackPoint) Point() kernel.GeoPoint {
	return p.point
}

// At returns when the point was ingested.
func (p TrackPoint) At() time.Time {
	return p.at
}

// Accuracy returns the reported GPS accuracy in meters, or nil.
func (p TrackPoint) Accuracy() *float64 {
	if p.accuracy == nil {
		return nil
	}
	a := *p.accuracy
	return &a
}

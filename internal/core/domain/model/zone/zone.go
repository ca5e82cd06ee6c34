package zone

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Shape discriminates the zone geometry.
type Shape string

const (
	ShapeRadius  Shape = "radius"
	ShapePolygon Shape = "polygon"
)

// MinPolygonPoints is the smallest ring that encloses any area.
const MinPolygonPoints = 3

// Domain errors for zone operations.
var (
	// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewRadiusZone or NewPolygonZone constructor")
	// ErrMalformedZone is returned when zone geometry is degenerate: a
	// non-positive radius or a polygon ring with fewer than three points.
	// Geometry fails fast at construction; Contains assumes a valid zone.
	ErrMalformedZone = errors.New("zone geometry is malformed")
	// ErrOutsideServiceArea is returned by lookups when no zone in the
	// candidate list contains the point.
	ErrOutsideServiceArea = errors.New("point is outside every service zone")
)

// Pricing holds the fee parameters of a zone.
type Pricing struct {
	// BaseFee is charged on every delivery in the zone.
	BaseFee float64
	// PerKmFee is added per kilometer of the pickup-to-dropoff trip.
	PerKmFee float64
	// MinOrderAmount is the smallest order total the zone serves.
	MinOrderAmount float64
	// FreeDeliveryThreshold waives the fee for order totals at or above it.
	// Nil disables the waiver.
	FreeDeliveryThreshold *float64
}

// Zone is the aggregate root for a service zone: a named geographic area,
// radius- or polygon-shaped, with its own pricing and delivery-time window.
// Higher-priority zones win lookups when zones overlap.
type Zone struct {
	id         kernel.UUID
	businessID kernel.UUID
	name       string

	shape        Shape
	center       *kernel.GeoPoint
	radiusMeters float64
	ring         []kernel.GeoPoint

	pricing Pricing

	minDeliveryMinutes int
	maxDeliveryMinutes int

	priority int
	enabled  bool

	guard kernel.ConstructorGuard
}

// NewRadiusZone creates an enabled circular zone around center.
func NewRadiusZone(id, businessID kernel.UUID, name string, center kernel.GeoPoint, radiusMeters float64, pricing Pricing) (*Zone, error) {
	z := &Zone{
		shape:        ShapeRadius,
		radiusMeters: radiusMeters,
		enabled:      true,
		guard:        kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setIdentity(id, businessID, name),
		z.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if err := center.Validate(); err != nil {
		return nil, fmt.Errorf("%w: radius zone requires a center point", ErrMalformedZone)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrMalformedZone, radiusMeters)
	}
	z.center = &center

	return z, nil
}

// NewPolygonZone creates an enabled polygonal zone from an ordered ring of at
// least three validated points. The ring is treated as closed; the last point
// does not need to repeat the first.
func NewPolygonZone(id, businessID kernel.UUID, name string, ring []kernel.GeoPoint, pricing Pricing) (*Zone, error) {
	z := &Zone{
		shape:   ShapePolygon,
		enabled: true,
		guard:   kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setIdentity(id, businessID, name),
		z.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if len(ring) < MinPolygonPoints {
		return nil, fmt.Errorf("%w: polygon requires at least %d points, got %d",
			ErrMalformedZone, MinPolygonPoints, len(ring))
	}
	for i, p := range ring {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: ring point %d is not constructed", ErrMalformedZone, i)
		}
	}
	z.ring = make([]kernel.GeoPoint, len(ring))
	copy(z.ring, ring)

	return z, nil
}

// RestoreZoneParams carries the persisted state needed to rebuild a zone.
type RestoreZoneParams struct {
	ID                 kernel.UUID
	BusinessID         kernel.UUID
	Name               string
	Shape              Shape
	Center             *kernel.GeoPoint
	RadiusMeters       float64
	Ring               []kernel.GeoPoint
	Pricing            Pricing
	MinDeliveryMinutes int
	MaxDeliveryMinutes int
	Priority           int
	Enabled            bool
}

// RestoreZone reconstructs a zone aggregate from persistent storage. Geometry
// is re-validated so a malformed row surfaces at load time.
func RestoreZone(p RestoreZoneParams) (*Zone, error) {
	var (
		z   *Zone
		err error
	)
	switch p.Shape {
	case ShapeRadius:
		if p.Center == nil {
			return nil, fmt.Errorf("%w: radius zone requires a center point", ErrMalformedZone)
		}
		z, err = NewRadiusZone(p.ID, p.BusinessID, p.Name, *p.Center, p.RadiusMeters, p.Pricing)
	case ShapePolygon:
		z, err = NewPolygonZone(p.ID, p.BusinessID, p.Name, p.Ring, p.Pricing)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("shape",
			fmt.Errorf("%q is not a valid zone shape", string(p.Shape)))
	}
	if err != nil {
		return nil, err
	}

	z.priority = p.Priority
	z.enabled = p.Enabled
	if err := z.SetDeliveryWindow(p.MinDeliveryMinutes, p.MaxDeliveryMinutes); err != nil {
		return nil, err
	}
	return z, nil
}

// Validate checks that the Zone was created through a constructor.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// IsEqual compares zones by identity.
func (z *Zone) IsEqual(other *Zone) bool {
	if other == nil {
		return false
	}
	return z.id.IsEqual(other.id)
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// BusinessID returns the owning business scope.
func (z *Zone) BusinessID() kernel.UUID {
	return z.businessID
}

// Name returns the zone's display name.
func (z *Zone) Name() string {
	return z.name
}

// Shape returns the geometry discriminator.
func (z *Zone) Shape() Shape {
	return z.shape
}

// Center returns the radius-shape center, or nil for polygons.
func (z *Zone) Center() *kernel.GeoPoint {
	if z.center == nil {
		return nil
	}
	c := *z.center
	return &c
}

// RadiusMeters returns the radius for radius shapes, 0 for polygons.
func (z *Zone) RadiusMeters() float64 {
	return z.radiusMeters
}

// Ring returns a copy of the polygon ring, or nil for radius shapes.
func (z *Zone) Ring() []kernel.GeoPoint {
	if z.ring == nil {
		return nil
	}
	out := make([]kernel.GeoPoint, len(z.ring))
	copy(out, z.ring)
	return out
}

// Pricing returns the zone's fee parameters.
func (z *Zone) Pricing() Pricing {
	p := z.pricing
	if z.pricing.FreeDeliveryThreshold != nil {
		threshold := *z.pricing.FreeDeliveryThreshold
		p.FreeDeliveryThreshold = &threshold
	}
	return p
}

// MinDeliveryMinutes returns the lower bound of the advertised delivery window.
func (z *Zone) MinDeliveryMinutes() int { return z.minDeliveryMinutes }

// MaxDeliveryMinutes returns the upper bound of the advertised delivery window.
func (z *Zone) MaxDeliveryMinutes() int { return z.maxDeliveryMinutes }

// Priority returns the overlap tie-break priority; higher wins.
func (z *Zone) Priority() int { return z.priority }

// IsEnabled reports whether the zone participates in lookups.
func (z *Zone) IsEnabled() bool { return z.enabled }

// SetDeliveryWindow updates the advertised delivery-time window in minutes.
func (z *Zone) SetDeliveryWindow(minMinutes, maxMinutes int) error {
	if minMinutes < 0 || maxMinutes < 0 || (maxMinutes > 0 && minMinutes > maxMinutes) {
		return errs.NewValueIsInvalidErrorWithCause("delivery window",
			fmt.Errorf("invalid window %d..%d minutes", minMinutes, maxMinutes))
	}
	z.minDeliveryMinutes = minMinutes
	z.maxDeliveryMinutes = maxMinutes
	return nil
}

// SetPriority updates the overlap priority.
func (z *Zone) SetPriority(priority int) {
	z.priority = priority
}

// Enable puts the zone back into lookups.
func (z *Zone) Enable() {
	z.enabled = true
}

// Disable excludes the zone from lookups without deleting it.
func (z *Zone) Disable() {
	z.enabled = false
}

// Contains reports whether the point falls inside the zone. Radius shapes
// test the great-circle distance against the radius; polygon shapes use the
// even-odd ray-casting rule. A point exactly on a polygon edge counts as
// outside: the strict inequality in the crossing test never registers a
// crossing through the vertex itself.
func (z *Zone) Contains(point kernel.GeoPoint) (bool, error) {
	if err := point.Validate(); err != nil {
		return false, err
	}

	switch z.shape {
	case ShapeRadius:
		distance, err := z.center.DistanceTo(point)
		if err != nil {
			return false, err
		}
		return distance <= z.radiusMeters, nil
	case ShapePolygon:
		return ringContains(z.ring, point), nil
	default:
		return false, ErrMalformedZone
	}
}

// FirstContaining walks zones in the given order and returns the first one
// containing the point. Callers pass zones sorted by descending priority so
// the highest-priority zone wins overlaps. Returns ErrOutsideServiceArea when
// no zone contains the point.
func FirstContaining(zones []*Zone, point kernel.GeoPoint) (*Zone, error) {
	for _, z := range zones {
		contains, err := z.Contains(point)
		if err != nil {
			return nil, err
		}
		if contains {
			return z, nil
		}
	}
	return nil, ErrOutsideServiceArea
}

// ringContains implements the even-odd crossing-number test over the closed
// ring, treating longitude as x and latitude as y. Points on the boundary are
// detected up front and reported as outside, since the raw crossing test
// classifies them inconsistently depending on which edge they touch.
func ringContains(ring []kernel.GeoPoint, point kernel.GeoPoint) bool {
	x := point.Longitude()
	y := point.Latitude()

	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Longitude(), ring[i].Latitude()
		xj, yj := ring[j].Longitude(), ring[j].Latitude()

		if onSegment(x, y, xi, yi, xj, yj) {
			return false
		}
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func onSegment(x, y, x1, y1, x2, y2 float64) bool {
	cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
	if cross != 0 {
		return false
	}
	return min(x1, x2) <= x && x <= max(x1, x2) &&
		min(y1, y2) <= y && y <= max(y1, y2)
}

// DeliveryFee computes the fee for a trip of distanceKm and an order of
// orderAmount. The fee is waived entirely when the order total reaches the
// free-delivery threshold, and is never negative.
func (z *Zone) DeliveryFee(distanceKm float64, orderAmount float64) float64 {
	if z.pricing.FreeDeliveryThreshold != nil && orderAmount >= *z.pricing.FreeDeliveryThreshold {
		return 0
	}

	fee := z.pricing.BaseFee + z.pricing.PerKmFee*distanceKm
	if fee < 0 {
		return 0
	}
	return fee
}

// AcceptsOrderAmount reports whether the order total meets the zone minimum.
func (z *Zone) AcceptsOrderAmount(orderAmount float64) bool {
	return orderAmount >= z.pricing.MinOrderAmount
}

func (z *Zone) setIdentity(id, businessID kernel.UUID, name string) error {
	return errors.Join(z.setID(id), z.setBusinessID(businessID), z.setName(name))
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	z.id = id
	return nil
}

func (z *Zone) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	z.businessID = id
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	z.name = name
	return nil
}

func (z *Zone) setPricing(p Pricing) error {
	if p.BaseFee < 0 || p.PerKmFee < 0 || p.MinOrderAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			errors.New("fee parameters cannot be negative"))
	}
	if p.FreeDeliveryThreshold != nil {
		if *p.FreeDeliveryThreshold < 0 {
			return errs.NewValueIsInvalidErrorWithCause("pricing",
				errors.New("free delivery threshold cannot be negative"))
		}
		threshold := *p.FreeDeliveryThreshold
		p.FreeDeliveryThreshold = &threshold
	}

	z.pricing = p
	return nil
}

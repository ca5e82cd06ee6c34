package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// defaultMaxConcurrent is the delivery capacity a fresh courier starts with.
	defaultMaxConcurrent = 1

	// RatingMin and RatingMax bound the running average rating.
	RatingMin = 1.0
	RatingMax = 5.0

	// initialRating is the running average before any customer has rated the
	// courier. The first applied rating replaces it outright (count is zero).
	initialRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierUnavailable is returned when assigning a delivery to a courier
	// that is not currently available. Callers treat it as a retryable
	// assignment failure, not a fault.
	ErrCourierUnavailable = errors.New("courier is not available for assignment")
	// ErrCourierDisabled is returned when a disabled courier is asked to go on
	// shift or take a delivery.
	ErrCourierDisabled = errors.New("courier is disabled")
	// ErrCourierHasActiveDelivery is returned when a status report arrives while
	// the courier still holds a delivery. Only completing or aborting the
	// delivery releases the courier.
	ErrCourierHasActiveDelivery = errors.New("courier holds an active delivery")
	// ErrNoMatchingActiveDelivery is returned when completing or releasing a
	// delivery the courier does not currently hold.
	ErrNoMatchingActiveDelivery = errors.New("courier is not assigned to this delivery")
)

// Courier is the aggregate root for a delivery agent.
//
// Invariants maintained by the aggregate:
//   - a non-nil active delivery reference implies status busy
//   - status available implies no active delivery reference
//   - the running average rating stays within [RatingMin, RatingMax]
//
// Status moves to busy only through AssignDelivery and leaves busy only
// through CompleteDelivery / ReleaseDelivery; direct status reports go
// through ChangeStatus, which rejects busy.
type Courier struct {
	id         kernel.UUID
	businessID kernel.UUID
	name       string
	status     Status
	vehicle    Vehicle

	position   *kernel.GeoPoint
	positionAt *time.Time

	activeDeliveryID *kernel.UUID

	deliveriesToday int
	totalDeliveries int

	rating      float64
	ratingCount int

	maxConcurrent int
	enabled       bool

	guard kernel.ConstructorGuard
}

// NewCourier creates a fresh courier for the given business. The courier
// starts enabled and offline, with no position, capacity one, and the
// initial rating.
func NewCourier(id kernel.UUID, businessID kernel.UUID, name string, vehicle Vehicle) (*Courier, error) {
	c := &Courier{
		status:        StatusOffline,
		rating:        initialRating,
		maxConcurrent: defaultMaxConcurrent,
		enabled:       true,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setBusinessID(businessID),
		c.setName(name),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourierParams carries the persisted state needed to rebuild a
// courier aggregate.
type RestoreCourierParams struct {
	ID               kernel.UUID
	BusinessID       kernel.UUID
	Name             string
	Status           Status
	Vehicle          Vehicle
	Position         *kernel.GeoPoint
	PositionAt       *time.Time
	ActiveDeliveryID *kernel.UUID
	DeliveriesToday  int
	TotalDeliveries  int
	Rating           float64
	RatingCount      int
	MaxConcurrent    int
	Enabled          bool
}

// RestoreCourier reconstructs a courier aggregate from persistent storage.
// The restored courier behaves identically to one created through normal
// domain operations; the busy/available invariants are re-checked so corrupt
// rows surface as errors instead of invalid aggregates.
func RestoreCourier(p RestoreCourierParams) (*Courier, error) {
	c := &Courier{
		status:           p.Status,
		position:         p.Position,
		positionAt:       p.PositionAt,
		activeDeliveryID: p.ActiveDeliveryID,
		deliveriesToday:  p.DeliveriesToday,
		totalDeliveries:  p.TotalDeliveries,
		rating:           p.Rating,
		ratingCount:      p.RatingCount,
		maxConcurrent:    p.MaxConcurrent,
		enabled:          p.Enabled,
		guard:            kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.setBusinessID(p.BusinessID),
		c.setName(p.Name),
		c.setVehicle(p.Vehicle),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if c.activeDeliveryID != nil && c.status != StatusBusy {
		return nil, errs.NewValueIsInvalidErrorWithCause("courier status",
			errors.New("active delivery requires busy status"))
	}
	if c.status == StatusAvailable && c.activeDeliveryID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("courier status",
			errors.New("available courier cannot hold an active delivery"))
	}

	return c, nil
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// BusinessID returns the owning business scope.
func (c *Courier) BusinessID() kernel.UUID {
	return c.businessID
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Status returns the current availability status.
func (c *Courier) Status() Status {
	return c.status
}

// Vehicle returns the courier's vehicle class.
func (c *Courier) Vehicle() Vehicle {
	return c.vehicle
}

// Position returns the last reported position, or nil if none was reported.
func (c *Courier) Position() *kernel.GeoPoint {
	if c.position == nil {
		return nil
	}
	p := *c.position
	return &p
}

// PositionUpdatedAt returns when the position was last reported, or nil.
func (c *Courier) PositionUpdatedAt() *time.Time {
	if c.positionAt == nil {
		return nil
	}
	t := *c.positionAt
	return &t
}

// ActiveDeliveryID returns the delivery the courier currently works on, or nil.
func (c *Courier) ActiveDeliveryID() *kernel.UUID {
	if c.activeDeliveryID == nil {
		return nil
	}
	id := *c.activeDeliveryID
	return &id
}

// HasActiveDelivery reports whether the courier currently holds a delivery.
func (c *Courier) HasActiveDelivery() bool {
	return c.activeDeliveryID != nil
}

// DeliveriesToday returns the number of deliveries completed today.
func (c *Courier) DeliveriesToday() int {
	return c.deliveriesToday
}

// TotalDeliveries returns the lifetime completed-delivery counter.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// Rating returns the running average customer rating.
func (c *Courier) Rating() float64 {
	return c.rating
}

// RatingCount returns how many ratings the running average is built from.
func (c *Courier) RatingCount() int {
	return c.ratingCount
}

// MaxConcurrent returns the courier's delivery capacity.
func (c *Courier) MaxConcurrent() int {
	return c.maxConcurrent
}

// IsEnabled reports whether the courier may work at all.
func (c *Courier) IsEnabled() bool {
	return c.enabled
}

// ChangeStatus applies a courier-initiated status report.
//
// Busy is rejected (it belongs to the assignment workflow), a held delivery
// blocks any report, and a disabled courier cannot go on shift.
func (c *Courier) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !next.IsReportable() {
		return errs.NewValueIsInvalidErrorWithCause("courier status",
			errors.New("busy can only be entered through assignment"))
	}
	if c.activeDeliveryID != nil {
		return ErrCourierHasActiveDelivery
	}
	if next != StatusOffline && !c.enabled {
		return ErrCourierDisabled
	}

	c.status = next
	return nil
}

// AssignDelivery puts the courier to work on the given delivery.
// Fails with ErrCourierUnavailable unless the courier is currently available.
func (c *Courier) AssignDelivery(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	if !c.enabled {
		return ErrCourierDisabled
	}
	if c.status != StatusAvailable || c.activeDeliveryID != nil {
		return ErrCourierUnavailable
	}

	c.activeDeliveryID = &deliveryID
	c.status = StatusBusy
	return nil
}

// CompleteDelivery releases the courier after a successful delivery and
// increments both completion counters.
func (c *Courier) CompleteDelivery(deliveryID kernel.UUID) error {
	if err := c.release(deliveryID); err != nil {
		return err
	}

	c.deliveriesToday++
	c.totalDeliveries++
	return nil
}

// ReleaseDelivery releases the courier after a cancelled or failed delivery.
// Counters are untouched: an aborted delivery is not a completion.
func (c *Courier) ReleaseDelivery(deliveryID kernel.UUID) error {
	return c.release(deliveryID)
}

func (c *Courier) release(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	if c.activeDeliveryID == nil || !c.activeDeliveryID.IsEqual(deliveryID) {
		return ErrNoMatchingActiveDelivery
	}

	c.activeDeliveryID = nil
	c.status = StatusAvailable
	return nil
}

// UpdatePosition records a fresh position report.
func (c *Courier) UpdatePosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = &position
	c.positionAt = &at
	return nil
}

// ApplyRating folds a 1-5 customer rating into the running average.
func (c *Courier) ApplyRating(score int) error {
	if score < int(RatingMin) || score > int(RatingMax) {
		return errs.NewValueIsOutOfRangeError("rating", score, int(RatingMin), int(RatingMax))
	}

	if c.ratingCount == 0 {
		c.rating = float64(score)
	} else {
		c.rating = (c.rating*float64(c.ratingCount) + float64(score)) / float64(c.ratingCount+1)
	}
	c.ratingCount++
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

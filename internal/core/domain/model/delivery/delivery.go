package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// RatingMin and RatingMax bound the customer rating.
	RatingMin = 1
	RatingMax = 5
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrAlreadyAssigned is returned when assigning a courier to a delivery
	// that already has one. Callers treat it as a lost race, not a fault.
	ErrAlreadyAssigned = errors.New("delivery already has a courier assigned")
	// ErrAlreadyRated is returned when a second rating arrives for a delivery.
	ErrAlreadyRated = errors.New("delivery has already been rated")
	// ErrNotYetDelivered is returned when rating a delivery that has not
	// reached the delivered status.
	ErrNotYetDelivered = errors.New("delivery has not been delivered yet")
	// ErrNegativeAmount is returned for negative tip amounts.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrDeliveryNotActive is returned when recording activity against a
	// delivery in a terminal status.
	ErrDeliveryNotActive = errors.New("delivery is no longer active")
)

// Delivery is the aggregate root for a single delivery, created 1:1 from an
// order marked for delivery.
//
// The aggregate owns the status state machine (see Status), the lifecycle
// timestamps, the opaque public tracking token, the capped location history,
// and the rating/tip rules. Once a terminal status is reached the aggregate
// is immutable except for the rating (delivered only, exactly once) and the
// tip.
type Delivery struct {
	id         kernel.UUID
	businessID kernel.UUID
	orderID    kernel.UUID

	status Status

	pickupAddress string
	pickupPoint   kernel.GeoPoint

	dropoffAddress string
	dropoffPoint   *kernel.GeoPoint

	customerName  string
	customerPhone string

	courierID *kernel.UUID

	// trackingToken is generated once at creation and never changes. It is
	// the only handle the public tracking surface gets.
	trackingToken string

	distanceMeters  *float64
	durationSeconds *int
	eta             *time.Time

	fee float64
	tip float64

	acceptedAt  *time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	failedAt    *time.Time

	abortReason *string
	proofRef    *string

	rating         *int
	ratingFeedback *string

	history []TrackPoint

	guard kernel.ConstructorGuard
}

// NewDeliveryParams carries the input for creating a delivery. Pickup
// coordinates are mandatory; drop-off coordinates may be unresolved at
// creation time.
type NewDeliveryParams struct {
	ID             kernel.UUID
	BusinessID     kernel.UUID
	OrderID        kernel.UUID
	PickupAddress  string
	PickupPoint    kernel.GeoPoint
	DropoffAddress string
	DropoffPoint   *kernel.GeoPoint
	CustomerName   string
	CustomerPhone  string
	Fee            float64
}

// NewDelivery creates a pending delivery and generates its tracking token.
func NewDelivery(p NewDeliveryParams) (*Delivery, error) {
	d := &Delivery{
		status:        StatusPending,
		trackingToken: uuid.NewString(),
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(p.ID),
		d.setBusinessID(p.BusinessID),
		d.setOrderID(p.OrderID),
		d.setPickup(p.PickupAddress, p.PickupPoint),
		d.setDropoff(p.DropoffAddress, p.DropoffPoint),
		d.setCustomer(p.CustomerName, p.CustomerPhone),
		d.setFee(p.Fee),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeliveryParams carries the persisted state needed to rebuild a
// delivery aggregate.
type RestoreDeliveryParams struct {
	ID              kernel.UUID
	BusinessID      kernel.UUID
	OrderID         kernel.UUID
	Status          Status
	PickupAddress   string
	PickupPoint     kernel.GeoPoint
	DropoffAddress  string
	DropoffPoint    *kernel.GeoPoint
	CustomerName    string
	CustomerPhone   string
	CourierID       *kernel.UUID
	TrackingToken   string
	DistanceMeters  *float64
	DurationSeconds *int
	ETA             *time.Time
	Fee             float64
	Tip             float64
	AcceptedAt      *time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	FailedAt        *time.Time
	AbortReason     *string
	ProofRef        *string
	Rating          *int
	RatingFeedback  *string
	History         []TrackPoint
}

// RestoreDelivery reconstructs a delivery aggregate from persistent storage.
func RestoreDelivery(p RestoreDeliveryParams) (*Delivery, error) {
	d := &Delivery{
		status:          p.Status,
		courierID:       p.CourierID,
		trackingToken:   p.TrackingToken,
		distanceMeters:  p.DistanceMeters,
		durationSeconds: p.DurationSeconds,
		eta:             p.ETA,
		tip:             p.Tip,
		acceptedAt:      p.AcceptedAt,
		assignedAt:      p.AssignedAt,
		pickedUpAt:      p.PickedUpAt,
		deliveredAt:     p.DeliveredAt,
		cancelledAt:     p.CancelledAt,
		failedAt:        p.FailedAt,
		abortReason:     p.AbortReason,
		proofRef:        p.ProofRef,
		rating:          p.Rating,
		ratingFeedback:  p.RatingFeedback,
		guard:           kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(p.ID),
		d.setBusinessID(p.BusinessID),
		d.setOrderID(p.OrderID),
		d.setPickup(p.PickupAddress, p.PickupPoint),
		d.setDropoff(p.DropoffAddress, p.DropoffPoint),
		d.setCustomer(p.CustomerName, p.CustomerPhone),
		d.setFee(p.Fee),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if d.trackingToken == "" {
		return nil, errs.NewValueIsRequiredError("trackingToken")
	}

	if len(p.History) > MaxTrackPoints {
		p.History = p.History[len(p.History)-MaxTrackPoints:]
	}
	d.history = make([]TrackPoint, len(p.History))
	copy(d.history, p.History)

	return d, nil
}

// Validate checks that the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// BusinessID returns the owning business scope.
func (d *Delivery) BusinessID() kernel.UUID {
	return d.businessID
}

// OrderID returns the originating order.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// IsActive reports whether the delivery is in a non-terminal status.
func (d *Delivery) IsActive() bool {
	return !d.status.IsTerminal()
}

// PickupAddress returns the pickup address.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// PickupPoint returns the pickup coordinates.
func (d *Delivery) PickupPoint() kernel.GeoPoint {
	return d.pickupPoint
}

// DropoffAddress returns the drop-off address.
func (d *Delivery) DropoffAddress() string {
	return d.dropoffAddress
}

// DropoffPoint returns the drop-off coordinates, or nil while unresolved.
func (d *Delivery) DropoffPoint() *kernel.GeoPoint {
	if d.dropoffPoint == nil {
		return nil
	}
	p := *d.dropoffPoint
	return &p
}

// CustomerName returns the customer's name.
func (d *Delivery) CustomerName() string {
	return d.customerName
}

// CustomerPhone returns the customer's phone number.
func (d *Delivery) CustomerPhone() string {
	return d.customerPhone
}

// CourierID returns the assigned courier, or nil.
func (d *Delivery) CourierID() *kernel.UUID {
	if d.courierID == nil {
		return nil
	}
	id := *d.courierID
	return &id
}

// TrackingToken returns the opaque public tracking token.
func (d *Delivery) TrackingToken() string {
	return d.trackingToken
}

// Fee returns the delivery fee.
func (d *Delivery) Fee() float64 {
	return d.fee
}

// Tip returns the tip amount.
func (d *Delivery) Tip() float64 {
	return d.tip
}

// DistanceMeters returns the latest route distance estimate, or nil.
func (d *Delivery) DistanceMeters() *float64 {
	return copyPtr(d.distanceMeters)
}

// DurationSeconds returns the latest route duration estimate, or nil.
func (d *Delivery) DurationSeconds() *int {
	return copyPtr(d.durationSeconds)
}

// EstimatedArrival returns the computed ETA timestamp, or nil.
func (d *Delivery) EstimatedArrival() *time.Time {
	return copyPtr(d.eta)
}

// AcceptedAt returns when the delivery was accepted, or nil.
func (d *Delivery) AcceptedAt() *time.Time { return copyPtr(d.acceptedAt) }

// AssignedAt returns when a courier was assigned, or nil.
func (d *Delivery) AssignedAt() *time.Time { return copyPtr(d.assignedAt) }

// PickedUpAt returns when the order was picked up, or nil.
func (d *Delivery) PickedUpAt() *time.Time { return copyPtr(d.pickedUpAt) }

// DeliveredAt returns when the delivery completed, or nil.
func (d *Delivery) DeliveredAt() *time.Time { return copyPtr(d.deliveredAt) }

// CancelledAt returns when the delivery was cancelled, or nil.
func (d *Delivery) CancelledAt() *time.Time { return copyPtr(d.cancelledAt) }

// FailedAt returns when the delivery failed, or nil.
func (d *Delivery) FailedAt() *time.Time { return copyPtr(d.failedAt) }

// AbortReason returns the recorded cancellation/failure reason, or nil.
func (d *Delivery) AbortReason() *string { return copyPtr(d.abortReason) }

// ProofRef returns the proof-of-delivery reference, or nil.
func (d *Delivery) ProofRef() *string { return copyPtr(d.proofRef) }

// Rating returns the customer rating, or nil if not yet rated.
func (d *Delivery) Rating() *int { return copyPtr(d.rating) }

// RatingFeedback returns the rating feedback text, or nil.
func (d *Delivery) RatingFeedback() *string { return copyPtr(d.ratingFeedback) }

// History returns a copy of the location history, oldest first.
func (d *Delivery) History() []TrackPoint {
	out := make([]TrackPoint, len(d.history))
	copy(out, d.history)
	return out
}

// Accept moves the delivery from pending to accepted and stamps acceptedAt.
func (d *Delivery) Accept() error {
	if err := d.transition(StatusAccepted); err != nil {
		return err
	}

	d.acceptedAt = nowPtr()
	return nil
}

// Assign attaches a courier and moves the delivery to assigned.
// Fails with ErrAlreadyAssigned if a courier is already attached; the status
// transition itself is validated before any mutation.
func (d *Delivery) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if d.courierID != nil {
		return ErrAlreadyAssigned
	}
	if err := d.transition(StatusAssigned); err != nil {
		return err
	}

	d.courierID = &courierID
	d.assignedAt = nowPtr()
	return nil
}

// MarkPickingUp records that the courier is heading to the pickup point.
func (d *Delivery) MarkPickingUp() error {
	return d.transition(StatusPickingUp)
}

// MarkPickedUp records that the courier collected the order and stamps pickedUpAt.
func (d *Delivery) MarkPickedUp() error {
	if err := d.transition(StatusPickedUp); err != nil {
		return err
	}

	d.pickedUpAt = nowPtr()
	return nil
}

// MarkOnTheWay records that the courier is en route to the drop-off.
func (d *Delivery) MarkOnTheWay() error {
	return d.transition(StatusOnTheWay)
}

// MarkNearby records that the courier is close to the drop-off. The location
// tracker triggers this automatically at proximity; couriers may also report
// it from the field. Both paths validate against the same table, so repeated
// close-range reports cannot re-fire the transition.
func (d *Delivery) MarkNearby() error {
	return d.transition(StatusNearby)
}

// MarkDelivered completes the delivery, stamps deliveredAt, and optionally
// attaches a proof-of-delivery reference.
func (d *Delivery) MarkDelivered(proofRef *string) error {
	if err := d.transition(StatusDelivered); err != nil {
		return err
	}

	d.deliveredAt = nowPtr()
	d.proofRef = proofRef
	return nil
}

// Cancel aborts the delivery, stamps cancelledAt, and records the reason.
func (d *Delivery) Cancel(reason string) error {
	if err := d.transition(StatusCancelled); err != nil {
		return err
	}

	d.cancelledAt = nowPtr()
	d.abortReason = &reason
	return nil
}

// Fail marks the delivery as undeliverable, stamps failedAt, and records the reason.
func (d *Delivery) Fail(reason string) error {
	if err := d.transition(StatusFailed); err != nil {
		return err
	}

	d.failedAt = nowPtr()
	d.abortReason = &reason
	return nil
}

// RecordTrackPoint appends a location report to the history, dropping the
// oldest entries beyond MaxTrackPoints. Terminal deliveries reject reports.
func (d *Delivery) RecordTrackPoint(point TrackPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return ErrDeliveryNotActive
	}

	d.history = append(d.history, point)
	if len(d.history) > MaxTrackPoints {
		d.history = d.history[len(d.history)-MaxTrackPoints:]
	}
	return nil
}

// UpdateEstimates stores a fresh routing estimate and the derived ETA.
func (d *Delivery) UpdateEstimates(distanceMeters float64, durationSeconds int, eta time.Time) {
	d.distanceMeters = &distanceMeters
	d.durationSeconds = &durationSeconds
	d.eta = &eta
}

// SetRating records the customer rating, exactly once, only after delivery.
func (d *Delivery) SetRating(score int, feedback *string) error {
	if score < RatingMin || score > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", score, RatingMin, RatingMax)
	}
	if d.status != StatusDelivered {
		return ErrNotYetDelivered
	}
	if d.rating != nil {
		return ErrAlreadyRated
	}

	d.rating = &score
	d.ratingFeedback = feedback
	return nil
}

// SetTip records the tip amount. Tips stay editable after completion.
func (d *Delivery) SetTip(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}

	d.tip = amount
	return nil
}

// transition validates the move against the table and applies it. This is
// the single funnel for every status change.
func (d *Delivery) transition(target Status) error {
	next, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

func (d *Delivery) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	d.businessID = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	d.orderID = id
	return nil
}

func (d *Delivery) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if err := point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickupPoint", err)
	}

	d.pickupAddress = address
	d.pickupPoint = point
	return nil
}

func (d *Delivery) setDropoff(address string, point *kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("dropoffPoint", err)
		}
		p := *point
		d.dropoffPoint = &p
	}

	d.dropoffAddress = address
	return nil
}

func (d *Delivery) setCustomer(name string, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	d.customerName = name
	d.customerPhone = phone
	return nil
}

func (d *Delivery) setFee(fee float64) error {
	if fee < 0 {
		return ErrNegativeAmount
	}

	d.fee = fee
	return nil
}

func nowPtr() *time.Time {
	now := time.Now().UTC()
	return &now
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Package deliveryrepo persists the delivery aggregate. The location history
// is stored as a JSONB column; everything else maps to plain columns on the
// deliveries table.
package deliveryrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the database representation of a delivery aggregate.
type DeliveryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(32);not null;index"`

	PickupAddress string  `gorm:"type:varchar(512);not null"`
	PickupLat     float64 `gorm:"type:double precision;not null"`
	PickupLon     float64 `gorm:"type:double precision;not null"`

	DropoffAddress string   `gorm:"type:varchar(512);not null"`
	DropoffLat     *float64 `gorm:"type:double precision"`
	DropoffLon     *float64 `gorm:"type:double precision"`

	CustomerName  string `gorm:"type:varchar(255);not null"`
	CustomerPhone string `gorm:"type:varchar(64)"`

	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	TrackingToken string     `gorm:"type:varchar(64);not null;uniqueIndex"`

	DistanceMeters  *float64   `gorm:"type:double precision"`
	DurationSeconds *int       `gorm:""`
	Eta             *time.Time `gorm:""`

	Fee float64 `gorm:"not null;default:0"`
	Tip float64 `gorm:"not null;default:0"`

	AcceptedAt  *time.Time `gorm:""`
	AssignedAt  *time.Time `gorm:""`
	PickedUpAt  *time.Time `gorm:""`
	DeliveredAt *time.Time `gorm:""`
	CancelledAt *time.Time `gorm:""`
	FailedAt    *time.Time `gorm:""`

	AbortReason    *string `gorm:"type:varchar(512)"`
	ProofRef       *string `gorm:"type:varchar(512)"`
	Rating         *int    `gorm:""`
	RatingFeedback *string `gorm:"type:varchar(1024)"`

	History TrackPointsDTO `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// TrackPointDTO is one history entry in the JSONB column.
type TrackPointDTO struct {
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
	At       time.Time `json:"at"`
	Accuracy *float64  `json:"accuracy,omitempty"`
}

// TrackPointsDTO serializes the location history to a JSONB column.
type TrackPointsDTO []TrackPointDTO

// Value implements driver.Valuer.
func (h TrackPointsDTO) Value() (driver.Value, error) {
	if h == nil {
		h = TrackPointsDTO{}
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner.
func (h *TrackPointsDTO) Scan(src any) error {
	if src == nil {
		*h = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("unsupported type %T for track point history", src)
	}
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	pickup := aggregate.PickupPoint()
	dto := DeliveryDTO{
		ID:              aggregate.ID().Bytes(),
		BusinessID:      aggregate.BusinessID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		Status:          aggregate.Status().String(),
		PickupAddress:   aggregate.PickupAddress(),
		PickupLat:       pickup.Latitude(),
		PickupLon:       pickup.Longitude(),
		DropoffAddress:  aggregate.DropoffAddress(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		TrackingToken:   aggregate.TrackingToken(),
		DistanceMeters:  aggregate.DistanceMeters(),
		DurationSeconds: aggregate.DurationSeconds(),
		Eta:             aggregate.EstimatedArrival(),
		Fee:             aggregate.Fee(),
		Tip:             aggregate.Tip(),
		AcceptedAt:      aggregate.AcceptedAt(),
		AssignedAt:      aggregate.AssignedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
		CancelledAt:     aggregate.CancelledAt(),
		FailedAt:        aggregate.FailedAt(),
		AbortReason:     aggregate.AbortReason(),
		ProofRef:        aggregate.ProofRef(),
		Rating:          aggregate.Rating(),
		RatingFeedback:  aggregate.RatingFeedback(),
	}

	if dropoff := aggregate.DropoffPoint(); dropoff != nil {
		lat, lon := dropoff.Latitude(), dropoff.Longitude()
		dto.DropoffLat, dto.DropoffLon = &lat, &lon
	}

	if courierID := aggregate.CourierID(); courierID != nil {
		raw := courierID.Bytes()
		dto.CourierID = &raw
	}

	history := aggregate.History()
	dto.History = make(TrackPointsDTO, 0, len(history))
	for _, point := range history {
		position := point.Point()
		dto.History = append(dto.History, TrackPointDTO{
			Lat:      position.Latitude(),
			Lon:      position.Longitude(),
			At:       point.At(),
			Accuracy: point.Accuracy(),
		})
	}

	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	var dropoff *kernel.GeoPoint
	if dto.DropoffLat != nil && dto.DropoffLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DropoffLat, *dto.DropoffLon)
		if pointErr != nil {
			return nil, pointErr
		}
		dropoff = &point
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, idErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if idErr != nil {
			return nil, idErr
		}
		courierID = &cID
	}

	history := make([]delivery.TrackPoint, 0, len(dto.History))
	for _, entry := range dto.History {
		position, pointErr := kernel.NewGeoPoint(entry.Lat, entry.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		point, pointErr := delivery.NewTrackPoint(position, entry.At, entry.Accuracy)
		if pointErr != nil {
			return nil, pointErr
		}
		history = append(history, point)
	}

	return delivery.RestoreDelivery(delivery.RestoreDeliveryParams{
		ID:              id,
		BusinessID:      businessID,
		OrderID:         orderID,
		Status:          delivery.Status(dto.Status),
		PickupAddress:   dto.PickupAddress,
		PickupPoint:     pickup,
		DropoffAddress:  dto.DropoffAddress,
		DropoffPoint:    dropoff,
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		CourierID:       courierID,
		TrackingToken:   dto.TrackingToken,
		DistanceMeters:  dto.DistanceMeters,
		DurationSeconds: dto.DurationSeconds,
		ETA:             dto.Eta,
		Fee:             dto.Fee,
		Tip:             dto.Tip,
		AcceptedAt:      dto.AcceptedAt,
		AssignedAt:      dto.AssignedAt,
		PickedUpAt:      dto.PickedUpAt,
		DeliveredAt:     dto.DeliveredAt,
		CancelledAt:     dto.CancelledAt,
		FailedAt:        dto.FailedAt,
		AbortReason:     dto.AbortReason,
		ProofRef:        dto.ProofRef,
		Rating:          dto.Rating,
		RatingFeedback:  dto.RatingFeedback,
		History:         history,
	})
}

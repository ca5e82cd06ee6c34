// Package courierrepo persists the courier aggregate. It maps between the
// domain model and the couriers table and implements the conditional update
// used by the assignment race.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database representation of a courier aggregate.
type CourierDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name             string     `gorm:"type:varchar(255);not null"`
	Vehicle          string     `gorm:"type:varchar(32);not null"`
	Status           string     `gorm:"type:varchar(32);not null;index"`
	Lat              *float64   `gorm:"type:double precision"`
	Lon              *float64   `gorm:"type:double precision"`
	PositionAt       *time.Time `gorm:""`
	ActiveDeliveryID *uuid.UUID `gorm:"type:uuid"`
	DeliveriesToday  int        `gorm:"not null;default:0"`
	TotalDeliveries  int        `gorm:"not null;default:0"`
	Rating           float64    `gorm:"not null;default:0"`
	RatingCount      int        `gorm:"not null;default:0"`
	MaxConcurrent    int        `gorm:"not null;default:1"`
	Enabled          bool       `gorm:"not null;default:true"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:              aggregate.ID().Bytes(),
		BusinessID:      aggregate.BusinessID().Bytes(),
		Name:            aggregate.Name(),
		Vehicle:         aggregate.Vehicle().String(),
		Status:          aggregate.Status().String(),
		DeliveriesToday: aggregate.DeliveriesToday(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		Rating:          aggregate.Rating(),
		RatingCount:     aggregate.RatingCount(),
		MaxConcurrent:   aggregate.MaxConcurrent(),
		Enabled:         aggregate.IsEnabled(),
	}

	if position := aggregate.Position(); position != nil {
		lat, lon := position.Latitude(), position.Longitude()
		dto.Lat, dto.Lon = &lat, &lon
	}
	dto.PositionAt = aggregate.PositionUpdatedAt()

	if deliveryID := aggregate.ActiveDeliveryID(); deliveryID != nil {
		raw := deliveryID.Bytes()
		dto.ActiveDeliveryID = &raw
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &point
	}

	var activeDeliveryID *kernel.UUID
	if dto.ActiveDeliveryID != nil {
		deliveryID, idErr := kernel.UUIDFromBytes((*dto.ActiveDeliveryID)[:])
		if idErr != nil {
			return nil, idErr
		}
		activeDeliveryID = &deliveryID
	}

	return courier.RestoreCourier(courier.RestoreCourierParams{
		ID:               id,
		BusinessID:       businessID,
		Name:             dto.Name,
		Status:           courier.Status(dto.Status),
		Vehicle:          courier.Vehicle(dto.Vehicle),
		Position:         position,
		PositionAt:       dto.PositionAt,
		ActiveDeliveryID: activeDeliveryID,
		DeliveriesToday:  dto.DeliveriesToday,
		TotalDeliveries:  dto.TotalDeliveries,
		Rating:           dto.Rating,
		RatingCount:      dto.RatingCount,
		MaxConcurrent:    dto.MaxConcurrent,
		Enabled:          dto.Enabled,
	})
}

// Package zonerepo persists the zone aggregate. Polygon rings are stored as
// a JSONB column of coordinate pairs.
package zonerepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

// ZoneDTO is the database representation of a zone aggregate.
type ZoneDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Shape      string    `gorm:"type:varchar(16);not null"`

	CenterLat    *float64 `gorm:"type:double precision"`
	CenterLon    *float64 `gorm:"type:double precision"`
	RadiusMeters float64  `gorm:"not null;default:0"`
	Ring         RingDTO  `gorm:"type:jsonb"`

	BaseFee               float64  `gorm:"not null;default:0"`
	PerKmFee              float64  `gorm:"not null;default:0"`
	MinOrderAmount        float64  `gorm:"not null;default:0"`
	FreeDeliveryThreshold *float64 `gorm:""`

	MinDeliveryMinutes int `gorm:"not null;default:0"`
	MaxDeliveryMinutes int `gorm:"not null;default:0"`

	Priority int  `gorm:"not null;default:0;index"`
	Enabled  bool `gorm:"not null;default:true;index"`
}

// TableName overrides GORM's default naming to use "zones".
func (ZoneDTO) TableName() string {
	return "zones"
}

// RingPointDTO is one vertex of a polygon ring in the JSONB column.
type RingPointDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RingDTO serializes a polygon ring to a JSONB column.
type RingDTO []RingPointDTO

// Value implements driver.Valuer.
func (r RingDTO) Value() (driver.Value, error) {
	if r == nil {
		r = RingDTO{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *RingDTO) Scan(src any) error {
	if src == nil {
		*r = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type %T for zone ring", src)
	}
}

func fromDomain(aggregate *zone.Zone) ZoneDTO {
	pricing := aggregate.Pricing()
	dto := ZoneDTO{
		ID:                    aggregate.ID().Bytes(),
		BusinessID:            aggregate.BusinessID().Bytes(),
		Name:                  aggregate.Name(),
		Shape:                 string(aggregate.Shape()),
		RadiusMeters:          aggregate.RadiusMeters(),
		BaseFee:               pricing.BaseFee,
		PerKmFee:              pricing.PerKmFee,
		MinOrderAmount:        pricing.MinOrderAmount,
		FreeDeliveryThreshold: pricing.FreeDeliveryThreshold,
		MinDeliveryMinutes:    aggregate.MinDeliveryMinutes(),
		MaxDeliveryMinutes:    aggregate.MaxDeliveryMinutes(),
		Priority:              aggregate.Priority(),
		Enabled:               aggregate.IsEnabled(),
	}

	if center := aggregate.Center(); center != nil {
		lat, lon := center.Latitude(), center.Longitude()
		dto.CenterLat, dto.CenterLon = &lat, &lon
	}

	ring := aggregate.Ring()
	dto.Ring = make(RingDTO, 0, len(ring))
	for _, vertex := range ring {
		dto.Ring = append(dto.Ring, RingPointDTO{Lat: vertex.Latitude(), Lon: vertex.Longitude()})
	}

	return dto
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var center *kernel.GeoPoint
	if dto.CenterLat != nil && dto.CenterLon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CenterLat, *dto.CenterLon)
		if pointErr != nil {
			return nil, pointErr
		}
		center = &point
	}

	ring := make([]kernel.GeoPoint, 0, len(dto.Ring))
	for _, vertex := range dto.Ring {
		point, pointErr := kernel.NewGeoPoint(vertex.Lat, vertex.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		ring = append(ring, point)
	}

	return zone.RestoreZone(zone.RestoreZoneParams{
		ID:           id,
		BusinessID:   businessID,
		Name:         dto.Name,
		Shape:        zone.Shape(dto.Shape),
		Center:       center,
		RadiusMeters: dto.RadiusMeters,
		Ring:         ring,
		Pricing: zone.Pricing{
			BaseFee:               dto.BaseFee,
			PerKmFee:              dto.PerKmFee,
			MinOrderAmount:        dto.MinOrderAmount,
			FreeDeliveryThreshold: dto.FreeDeliveryThreshold,
		},
		MinDeliveryMinutes: dto.MinDeliveryMinutes,
		MaxDeliveryMinutes: dto.MaxDeliveryMinutes,
		Priority:           dto.Priority,
		Enabled:            dto.Enabled,
	})
}

package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackDeliveryQueryHandler resolves a tracking token to the public tracking
// read model. Uses direct SQL for optimal read performance in the CQRS
// pattern; the courier's name and position come from a join rather than
// loading the aggregates.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewTrackDeliveryQueryHandler creates a handler for tracking queries.
func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle executes the tracking query. Returns ErrObjectNotFound when the
// token does not match any delivery, which the transport layer maps to the
// same response as an expired link.
func (h TrackDeliveryQueryHandler) Handle(
	ctx context.Context,
	query TrackDeliveryQuery,
) (TrackDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.status,
			d.dropoff_address,
			d.eta,
			d.picked_up_at,
			d.delivered_at,
			c.name,
			c.lat,
			c.lon,
			c.position_at
		FROM deliveries d
		LEFT JOIN couriers c ON c.id = d.courier_id
		WHERE d.tracking_token = ?
	`, query.TrackingToken()).Rows()
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackDeliveryQueryResponse{}, err
		}
		return TrackDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.TrackingToken())
	}

	var response TrackDeliveryQueryResponse
	var eta, pickedUpAt, deliveredAt sql.NullTime
	var courierName sql.NullString
	var lat, lon sql.NullFloat64
	var positionAt sql.NullTime

	err = rows.Scan(
		&response.Status,
		&response.DropoffAddress,
		&eta,
		&pickedUpAt,
		&deliveredAt,
		&courierName,
		&lat,
		&lon,
		&positionAt,
	)
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	response.EstimatedArrival = timePtr(eta)
	response.PickedUpAt = timePtr(pickedUpAt)
	response.DeliveredAt = timePtr(deliveredAt)

	if courierName.Valid {
		response.CourierName = &courierName.String
	}
	if lat.Valid && lon.Valid && positionAt.Valid {
		response.CourierPosition = &CourierPositionResponse{
			Lat: lat.Float64,
			Lon: lon.Float64,
			At:  positionAt.Time,
		}
	}

	if err = rows.Err(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	return response, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

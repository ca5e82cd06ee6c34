package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves the dispatcher board from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for dispatcher board queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Returns the business's non-terminal deliveries
// oldest first, with the assigned courier's name joined in when present.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			d.status,
			d.pickup_address,
			d.dropoff_address,
			d.customer_name,
			d.courier_id,
			c.name,
			d.fee,
			d.tip,
			d.eta,
			d.accepted_at
		FROM deliveries d
		LEFT JOIN couriers c ON c.id = d.courier_id
		WHERE d.business_id = ?
		  AND d.status NOT IN ('delivered', 'cancelled', 'failed')
		ORDER BY d.accepted_at
	`, query.BusinessID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetActiveDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var courierID uuid.NullUUID
		var courierName sql.NullString
		var eta, acceptedAt sql.NullTime

		err = rows.Scan(
			&id,
			&orderID,
			&row.Status,
			&row.PickupAddress,
			&row.DropoffAddress,
			&row.CustomerName,
			&courierID,
			&courierName,
			&row.Fee,
			&row.Tip,
			&eta,
			&acceptedAt,
		)
		if err != nil {
			return nil, err
		}

		row.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		row.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		if courierID.Valid {
			assigned, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.CourierID = &assigned
		}
		if courierName.Valid {
			row.CourierName = &courierName.String
		}
		row.EstimatedArrival = timePtr(eta)
		row.AcceptedAt = timePtr(acceptedAt)

		deliveries = append(deliveries, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

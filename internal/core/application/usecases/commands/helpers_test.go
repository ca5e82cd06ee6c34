package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// newDeliveryInStatus builds a delivery for the business and walks it to the
// target status. The drop-off sits ~1.1 km north of the pickup.
func newDeliveryInStatus(t *testing.T, businessID kernel.UUID, target delivery.Status) *delivery.Delivery {
	t.Helper()
	dropoff := mustGeoPoint(t, 55.76, 37.61)
	d, err := delivery.NewDelivery(delivery.NewDeliveryParams{
		ID:             kernel.NewUUID(),
		BusinessID:     businessID,
		OrderID:        kernel.NewUUID(),
		PickupAddress:  "1 Warehouse Way",
		PickupPoint:    mustGeoPoint(t, 55.75, 37.61),
		DropoffAddress: "9 Customer St",
		DropoffPoint:   &dropoff,
		CustomerName:   "Dana",
		CustomerPhone:  "+15550100",
		Fee:            3,
	})
	require.NoError(t, err)

	steps := []struct {
		status delivery.Status
		apply  func() error
	}{
		{delivery.StatusAccepted, d.Accept},
		{delivery.StatusAssigned, func() error { return d.Assign(kernel.NewUUID()) }},
		{delivery.StatusPickingUp, d.MarkPickingUp},
		{delivery.StatusPickedUp, d.MarkPickedUp},
		{delivery.StatusOnTheWay, d.MarkOnTheWay},
		{delivery.StatusNearby, d.MarkNearby},
	}
	for _, step := range steps {
		if d.Status() == target {
			return d
		}
		require.NoError(t, step.apply())
	}
	require.Equal(t, target, d.Status())
	return d
}

func newAvailableCourier(t *testing.T, businessID kernel.UUID, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), businessID, name, courier.VehicleBicycle)
	require.NoError(t, err)
	require.NoError(t, c.ChangeStatus(courier.StatusAvailable))
	return c
}

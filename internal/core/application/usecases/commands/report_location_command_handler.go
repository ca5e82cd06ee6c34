package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

const (
	// nearbyRadiusMeters is the drop-off proximity that auto-fires the
	// on_the_way -> nearby transition.
	nearbyRadiusMeters = 200.0

	// routingTimeout bounds the ETA refresh. A slow routing provider must
	// never hold up position ingestion beyond this.
	routingTimeout = 2 * time.Second
)

// ReportLocationCommandHandler ingests courier position reports: appends to
// the delivery's capped history, updates the courier's position, fires the
// proximity transition to nearby when the report lands within 200 m of a
// known drop-off while on_the_way, refreshes the ETA through the routing
// provider under a short timeout, and broadcasts the location.
//
// Routing failures are logged and swallowed; a missed ETA refresh never
// fails the ingestion. Reports against terminal deliveries are a no-op.
type ReportLocationCommandHandler struct {
	uowFactory  UoWFactory
	routing     ports.RoutingProvider
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewReportLocationCommandHandler creates a handler for position ingestion.
func NewReportLocationCommandHandler(
	uowFactory UoWFactory,
	routing ports.RoutingProvider,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory:  uowFactory,
		routing:     routing,
		broadcaster: broadcaster,
		logger:      logger.With("component", "location_tracker"),
	}
}

// Handle processes one position report.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	deliveryEntity, err := deliveryRepo.Get(ctx, command.BusinessID(), command.DeliveryID())
	if err != nil {
		return err
	}
	if !deliveryEntity.IsActive() {
		return nil
	}

	now := time.Now().UTC()
	trackPoint, err := delivery.NewTrackPoint(command.Position(), now, command.Accuracy())
	if err != nil {
		return err
	}
	if err = deliveryEntity.RecordTrackPoint(trackPoint); err != nil {
		return err
	}

	var courierEntity *courier.Courier
	if courierID := deliveryEntity.CourierID(); courierID != nil {
		courierRepo := uow.CourierRepository()
		courierEntity, err = courierRepo.Get(ctx, command.BusinessID(), *courierID)
		if err != nil {
			return err
		}
		if err = courierEntity.UpdatePosition(command.Position(), now); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, courierEntity); err != nil {
			return err
		}
	}

	if err = h.checkProximity(deliveryEntity, command); err != nil {
		return err
	}

	h.refreshETA(ctx, deliveryEntity, courierEntity, now)

	if err = deliveryRepo.Update(ctx, deliveryEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishLocation(deliveryEntity, command)
	return nil
}

// checkProximity fires the nearby transition when the report lands within
// range of a known drop-off. Only on_the_way qualifies, so a second
// close-range report is a natural no-op.
func (h ReportLocationCommandHandler) checkProximity(deliveryEntity *delivery.Delivery, command ReportLocationCommand) error {
	dropoff := deliveryEntity.DropoffPoint()
	if dropoff == nil || deliveryEntity.Status() != delivery.StatusOnTheWay {
		return nil
	}

	distance, err := command.Position().DistanceTo(*dropoff)
	if err != nil {
		return err
	}
	if distance > nearbyRadiusMeters {
		return nil
	}

	return deliveryEntity.MarkNearby()
}

// refreshETA asks the routing provider for a fresh estimate from the
// reported position to the drop-off. Best effort: bounded by routingTimeout,
// failures logged and swallowed.
func (h ReportLocationCommandHandler) refreshETA(ctx context.Context, deliveryEntity *delivery.Delivery, courierEntity *courier.Courier, now time.Time) {
	dropoff := deliveryEntity.DropoffPoint()
	if dropoff == nil || courierEntity == nil {
		return
	}

	routingCtx, cancel := context.WithTimeout(ctx, routingTimeout)
	defer cancel()

	position := courierEntity.Position()
	route, err := h.routing.CalculateRoute(routingCtx, *position, *dropoff, courierEntity.Vehicle())
	if err != nil {
		h.logger.Warn("ETA refresh failed",
			"delivery_id", deliveryEntity.ID().String(),
			"error", err)
		return
	}

	eta := now.Add(time.Duration(route.DurationSeconds) * time.Second)
	deliveryEntity.UpdateEstimates(route.DistanceMeters, route.DurationSeconds, eta)
}

func (h ReportLocationCommandHandler) publishLocation(deliveryEntity *delivery.Delivery, command ReportLocationCommand) {
	payload := map[string]any{
		"delivery_id": deliveryEntity.ID().String(),
		"status":      deliveryEntity.Status().String(),
		"lat":         command.Position().Latitude(),
		"lon":         command.Position().Longitude(),
	}
	if heading := command.Heading(); heading != nil {
		payload["heading"] = *heading
	}
	if speed := command.Speed(); speed != nil {
		payload["speed"] = *speed
	}
	if eta := deliveryEntity.EstimatedArrival(); eta != nil {
		payload["eta"] = eta.Format(time.RFC3339)
	}

	h.broadcaster.Publish(deliveryEntity.BusinessID(), ports.EventCourierLocation, payload)
}

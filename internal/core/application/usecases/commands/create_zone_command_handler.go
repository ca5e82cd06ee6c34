package commands

import (
	"context"

	"dispatch/internal/core/domain/model/zone"
)

// CreateZoneCommandHandler defines service zones for a business. The zone
// constructors validate geometry and pricing, so a malformed request never
// reaches storage.
type CreateZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewCreateZoneCommandHandler creates a handler for zone definition.
func NewCreateZoneCommandHandler(uowFactory ZoneUoWFactory) CreateZoneCommandHandler {
	return CreateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone creation command.
func (h CreateZoneCommandHandler) Handle(ctx context.Context, cmd CreateZoneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var (
		zoneEntity *zone.Zone
		err        error
	)
	switch cmd.Shape() {
	case zone.ShapeRadius:
		if cmd.Center() == nil {
			return zone.ErrMalformedZone
		}
		zoneEntity, err = zone.NewRadiusZone(cmd.ZoneID(), cmd.BusinessID(), cmd.Name(),
			*cmd.Center(), cmd.RadiusMeters(), cmd.Pricing())
	case zone.ShapePolygon:
		zoneEntity, err = zone.NewPolygonZone(cmd.ZoneID(), cmd.BusinessID(), cmd.Name(),
			cmd.Ring(), cmd.Pricing())
	default:
		return zone.ErrMalformedZone
	}
	if err != nil {
		return err
	}

	zoneEntity.SetPriority(cmd.Priority())
	if err = zoneEntity.SetDeliveryWindow(cmd.MinDeliveryMinutes(), cmd.MaxDeliveryMinutes()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ZoneRepository().Add(ctx, zoneEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

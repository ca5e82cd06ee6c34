package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AutoAssignReason explains a skipped auto-assignment.
type AutoAssignReason string

const (
	ReasonNoAvailableCouriers AutoAssignReason = "NoAvailableCouriers"
	ReasonMissingCoordinates  AutoAssignReason = "MissingCoordinates"
	ReasonAlreadyAssigned     AutoAssignReason = "AlreadyAssigned"
)

// AutoAssignResult is the structured outcome of an auto-assignment attempt.
// A skipped assignment is an outcome, not an error: the reason says why.
type AutoAssignResult struct {
	Assigned  bool
	CourierID *kernel.UUID
	Reason    AutoAssignReason
}

// AutoAssignCommandHandler picks the top-scored available courier for a
// delivery and assigns it through the same conditional-update path as manual
// assignment. Scoring needs the trip distance, so deliveries without drop-off
// coordinates are skipped with ReasonMissingCoordinates.
type AutoAssignCommandHandler struct {
	uowFactory  UoWFactory
	scorer      services.CandidateScorer
	broadcaster ports.Broadcaster
}

// NewAutoAssignCommandHandler creates a handler for auto-assignment operations.
func NewAutoAssignCommandHandler(uowFactory UoWFactory, scorer services.CandidateScorer, broadcaster ports.Broadcaster) AutoAssignCommandHandler {
	return AutoAssignCommandHandler{
		uowFactory:  uowFactory,
		scorer:      scorer,
		broadcaster: broadcaster,
	}
}

// Handle processes the auto-assignment command. A delivery that already has a
// courier, has no drop-off coordinates, or finds no available couriers yields
// an unassigned result with the reason; a race lost at the storage layer
// yields ReasonAlreadyAssigned.
func (h AutoAssignCommandHandler) Handle(ctx context.Context, command AutoAssignCommand) (AutoAssignResult, error) {
	if err := command.Validate(); err != nil {
		return AutoAssignResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AutoAssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	courierRepo := uow.CourierRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, command.BusinessID(), command.DeliveryID())
	if err != nil {
		return AutoAssignResult{}, err
	}

	if deliveryEntity.CourierID() != nil {
		return AutoAssignResult{Reason: ReasonAlreadyAssigned}, nil
	}
	dropoff := deliveryEntity.DropoffPoint()
	if dropoff == nil {
		return AutoAssignResult{Reason: ReasonMissingCoordinates}, nil
	}

	candidates, err := courierRepo.GetAllAvailable(ctx, command.BusinessID())
	if err != nil {
		return AutoAssignResult{}, err
	}
	if len(candidates) == 0 {
		return AutoAssignResult{Reason: ReasonNoAvailableCouriers}, nil
	}

	tripKm, err := tripDistanceKm(deliveryEntity.PickupPoint(), dropoff)
	if err != nil {
		return AutoAssignResult{}, err
	}

	scored, err := h.scorer.Suggest(candidates, deliveryEntity.PickupPoint(), tripKm, 1)
	if err != nil {
		return AutoAssignResult{}, err
	}
	if len(scored) == 0 {
		return AutoAssignResult{Reason: ReasonNoAvailableCouriers}, nil
	}

	chosen := scored[0].Courier
	if err = applyAssignment(ctx, uow, deliveryEntity, chosen); err != nil {
		if errors.Is(err, delivery.ErrAlreadyAssigned) {
			return AutoAssignResult{Reason: ReasonAlreadyAssigned}, nil
		}
		return AutoAssignResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AutoAssignResult{}, err
	}

	chosenID := chosen.ID()
	h.broadcaster.Publish(command.BusinessID(), ports.EventDeliveryAssigned, map[string]any{
		"delivery_id": deliveryEntity.ID().String(),
		"courier_id":  chosenID.String(),
		"score":       scored[0].Score,
	})

	return AutoAssignResult{Assigned: true, CourierID: &chosenID}, nil
}

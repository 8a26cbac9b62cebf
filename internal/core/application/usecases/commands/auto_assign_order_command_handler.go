package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/services"
)

// ErrNoDriversAvailable is returned when auto-assignment finds no eligible
// driver within the search radius. The order stays pending; the caller may
// retry later or fall back to manual assignment.
var ErrNoDriversAvailable = errors.New("no drivers available nearby")

const (
	autoAssignRadiusKm = 10.0
	autoAssignLimit    = 1
)

// AutoAssignOrderCommandHandler matches a pending order to the nearest
// available driver and writes an offer. The candidate driver's row is
// rewritten in the same transaction so the optimistic version check
// serializes concurrent auto-assigns racing on one driver, and a candidate
// already holding an outstanding offer is refused.
type AutoAssignOrderCommandHandler struct {
	uowFactory UoWFactory
	calculator services.EstimateCalculator
}

// NewAutoAssignOrderCommandHandler creates a handler for automatic
// assignment.
func NewAutoAssignOrderCommandHandler(uowFactory UoWFactory) AutoAssignOrderCommandHandler {
	return AutoAssignOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewEstimateCalculator(),
	}
}

// Handle processes the automatic assignment command.
func (h AutoAssignOrderCommandHandler) Handle(ctx context.Context, cmd AutoAssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	candidates, err := driverRepo.FindNearby(
		ctx, o.Pickup().Point(), autoAssignRadiusKm, driver.Available, autoAssignLimit)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoDriversAvailable
	}

	candidate := candidates[0].Driver

	// At most one active offer per driver.
	outstanding, err := orderRepo.CountOfferedForDriver(ctx, candidate.ID())
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return ErrNoDriversAvailable
	}

	location := candidate.Location()
	if location == nil {
		return ErrNoDriversAvailable
	}

	now := time.Now()
	pickupTime, dropoffTime, err := h.calculator.ProjectOfferTimes(
		*location, o.Pickup().Point(), o.Estimate().DurationMin(), now)
	if err != nil {
		return err
	}

	if err = o.Offer(candidate.ID(), pickupTime, dropoffTime); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	// No domain change on the driver at offer time; the write exists to
	// bump the version so racing auto-assigns serialize on this row.
	if err = driverRepo.Update(ctx, candidate); err != nil {
		return err
	}

	event, err := newOrderEvent(outbox.OrderOffered, o, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/rider"
)

// ErrRiderAlreadyRegistered means the phone number already belongs to a
// registered rider.
var ErrRiderAlreadyRegistered = errors.New("rider is already registered")

// RegisterRiderCommandHandler handles rider registration.
type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewRegisterRiderCommandHandler creates a handler for rider registration.
func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
// Returns ErrRiderAlreadyRegistered when the phone is already known.
func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) error {
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

	riderRepo := uow.RiderRepository()
	exists, err := riderRepo.Exists(ctx, cmd.Phone())
	if err != nil {
		return err
	}
	if exists {
		return ErrRiderAlreadyRegistered
	}

	newRider, err := rider.NewRider(cmd.Phone(), cmd.Name(), time.Now())
	if err != nil {
		return err
	}

	if err = riderRepo.Add(ctx, newRider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

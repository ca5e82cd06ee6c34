package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrReportCourierStatusCommandIsNotConstructed = errors.New(
	"ReportCourierStatusCommand must be created via NewReportCourierStatusCommand constructor",
)

// ReportCourierStatusCommand represents a courier going on shift, off shift,
// or on break. Busy is not reportable: it is owned by the assignment flow.
type ReportCourierStatusCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	courierID  kernel.UUID
	status     courier.Status

	guard kernel.ConstructorGuard
}

// NewReportCourierStatusCommand creates a status-report command, rejecting
// non-reportable statuses up front.
func NewReportCourierStatusCommand(businessID, courierID kernel.UUID, status courier.Status) (ReportCourierStatusCommand, error) {
	command := ReportCourierStatusCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setCourierID(courierID),
		command.setStatus(status),
	); err != nil {
		return ReportCourierStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierStatusCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c ReportCourierStatusCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// CourierID returns the reporting courier.
func (c ReportCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Status returns the requested status.
func (c ReportCourierStatusCommand) Status() courier.Status {
	return c.status
}

func (c *ReportCourierStatusCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *ReportCourierStatusCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	c.courierID = id
	return nil
}

func (c *ReportCourierStatusCommand) setStatus(status courier.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if !status.IsReportable() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a reportable status", status))
	}

	c.status = status
	return nil
}

package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the availability state of a courier.
//
// Couriers move between offline, available, and on_break through explicit
// status reports. The busy status is reserved for the assignment workflow:
// it is entered when a delivery is assigned and left when the delivery is
// completed or aborted, never by a direct status report.
type Status string

const (
	// StatusOffline means the courier is not working and must not be assigned.
	StatusOffline Status = "offline"
	// StatusAvailable means the courier is on shift and eligible for assignment.
	StatusAvailable Status = "available"
	// StatusBusy means the courier holds an active delivery.
	StatusBusy Status = "busy"
	// StatusOnBreak means the courier is on shift but temporarily unassignable.
	StatusOnBreak Status = "on_break"
)

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	switch s {
	case StatusOffline, StatusAvailable, StatusBusy, StatusOnBreak:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("courier status",
			fmt.Errorf("%q is not a valid courier status", string(s)))
	}
}

// IsReportable reports whether a courier may enter this status through a
// direct status report. Busy is excluded: it belongs to the assignment
// workflow.
func (s Status) IsReportable() bool {
	return s == StatusOffline || s == StatusAvailable || s == StatusOnBreak
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Vehicle classifies how a courier travels. The class feeds the candidate
// scoring matrix and is forwarded to the routing provider for ETA estimates.
type Vehicle string

const (
	VehicleWalking    Vehicle = "walking"
	VehicleBicycle    Vehicle = "bicycle"
	VehicleEScooter   Vehicle = "e_scooter"
	VehicleMotorcycle Vehicle = "motorcycle"
	VehicleCar        Vehicle = "car"
)

// Validate checks that the vehicle class is one of the known values.
func (v Vehicle) Validate() error {
	switch v {
	case VehicleWalking, VehicleBicycle, VehicleEScooter, VehicleMotorcycle, VehicleCar:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%q is not a valid vehicle class", string(v)))
	}
}

// String implements fmt.Stringer.
func (v Vehicle) String() string {
	return string(v)
}

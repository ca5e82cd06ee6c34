package http

import "time"

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateCourierRequest is the body of POST /couriers.
type CreateCourierRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Vehicle string `json:"vehicle" validate:"required,oneof=walking bicycle e_scooter motorcycle car"`
}

// CreateCourierResponse returns the new courier's identifier.
type CreateCourierResponse struct {
	ID string `json:"id"`
}

// ReportCourierStatusRequest is the body of POST /couriers/:courier_id/status.
type ReportCourierStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available on_break offline"`
}

// PointDTO carries a coordinate pair in request and response bodies.
type PointDTO struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// CreateDeliveryRequest is the body of POST /deliveries.
type CreateDeliveryRequest struct {
	OrderID        string    `json:"order_id" validate:"required,uuid"`
	PickupAddress  string    `json:"pickup_address" validate:"required"`
	PickupPoint    PointDTO  `json:"pickup_point" validate:"required"`
	DropoffAddress string    `json:"dropoff_address" validate:"required"`
	DropoffPoint   *PointDTO `json:"dropoff_point,omitempty"`
	CustomerName   string    `json:"customer_name" validate:"required,max=255"`
	CustomerPhone  string    `json:"customer_phone" validate:"required,max=32"`
	OrderAmount    float64   `json:"order_amount" validate:"min=0"`
}

// CreateDeliveryResponse returns the created delivery's identity, its public
// tracking token, and the priced fee.
type CreateDeliveryResponse struct {
	ID            string  `json:"id"`
	TrackingToken string  `json:"tracking_token"`
	Fee           float64 `json:"fee"`
	ZoneID        string  `json:"zone_id"`
}

// CreateZoneRequest is the body of POST /zones. Radius shapes require center
// and radius_meters; polygon shapes require a ring of at least three points.
type CreateZoneRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	Shape        string     `json:"shape" validate:"required,oneof=radius polygon"`
	Center       *PointDTO  `json:"center,omitempty"`
	RadiusMeters float64    `json:"radius_meters,omitempty" validate:"min=0"`
	Ring         []PointDTO `json:"ring,omitempty" validate:"omitempty,min=3,dive"`

	BaseFee               float64  `json:"base_fee" validate:"min=0"`
	PerKmFee              float64  `json:"per_km_fee" validate:"min=0"`
	MinOrderAmount        float64  `json:"min_order_amount" validate:"min=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold,omitempty" validate:"omitempty,min=0"`

	Priority           int `json:"priority"`
	MinDeliveryMinutes int `json:"min_delivery_minutes" validate:"min=0"`
	MaxDeliveryMinutes int `json:"max_delivery_minutes" validate:"min=0"`
}

// CreateZoneResponse returns the new zone's identifier.
type CreateZoneResponse struct {
	ID string `json:"id"`
}

// QuoteDeliveryFeeRequest is the body of POST /quotes.
type QuoteDeliveryFeeRequest struct {
	PickupPoint  PointDTO  `json:"pickup_point" validate:"required"`
	DropoffPoint *PointDTO `json:"dropoff_point,omitempty"`
	OrderAmount  float64   `json:"order_amount" validate:"min=0"`
}

// QuoteDeliveryFeeResponse carries the priced quote for a prospective delivery.
type QuoteDeliveryFeeResponse struct {
	ZoneID             string  `json:"zone_id"`
	ZoneName           string  `json:"zone_name"`
	Fee                float64 `json:"fee"`
	MinOrderAmount     float64 `json:"min_order_amount"`
	MeetsMinimum       bool    `json:"meets_minimum"`
	MinDeliveryMinutes int     `json:"min_delivery_minutes,omitempty"`
	MaxDeliveryMinutes int     `json:"max_delivery_minutes,omitempty"`
}

// AssignCourierRequest is the body of POST /deliveries/:delivery_id/assign.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id" validate:"required,uuid"`
}

// AutoAssignResponse reports the outcome of an auto-assignment attempt.
type AutoAssignResponse struct {
	Assigned  bool    `json:"assigned"`
	CourierID *string `json:"courier_id,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// UpdateDeliveryStatusRequest is the body of POST /deliveries/:delivery_id/status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// CompleteDeliveryRequest is the body of POST /deliveries/:delivery_id/complete.
type CompleteDeliveryRequest struct {
	ProofRef *string `json:"proof_ref,omitempty" validate:"omitempty,max=500"`
}

// ReportLocationRequest is the body of POST /deliveries/:delivery_id/location.
type ReportLocationRequest struct {
	Position PointDTO `json:"position" validate:"required"`
	Heading  *float64 `json:"heading,omitempty" validate:"omitempty,min=0,lt=360"`
	Speed    *float64 `json:"speed,omitempty" validate:"omitempty,min=0"`
	Accuracy *float64 `json:"accuracy,omitempty" validate:"omitempty,min=0"`
}

// RateDeliveryRequest is the body of POST /deliveries/:delivery_id/rating.
type RateDeliveryRequest struct {
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Feedback *string `json:"feedback,omitempty" validate:"omitempty,max=1000"`
}

// UpdateTipRequest is the body of POST /deliveries/:delivery_id/tip.
type UpdateTipRequest struct {
	Amount float64 `json:"amount" validate:"min=0"`
}

// ActiveDeliveryResponse is one row of GET /deliveries.
type ActiveDeliveryResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	Status           string     `json:"status"`
	PickupAddress    string     `json:"pickup_address"`
	DropoffAddress   string     `json:"dropoff_address"`
	CustomerName     string     `json:"customer_name"`
	CourierID        *string    `json:"courier_id,omitempty"`
	CourierName      *string    `json:"courier_name,omitempty"`
	Fee              float64    `json:"fee"`
	Tip              float64    `json:"tip"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
}

// SuggestionResponse is one ranked candidate of GET /deliveries/:delivery_id/suggestions.
type SuggestionResponse struct {
	CourierID       string                      `json:"courier_id"`
	Name            string                      `json:"name"`
	Vehicle         string                      `json:"vehicle"`
	DeliveriesToday int                         `json:"deliveries_today"`
	Score           int                         `json:"score"`
	Breakdown       SuggestionBreakdownResponse `json:"breakdown"`
}

// SuggestionBreakdownResponse itemizes a suggestion's score components.
type SuggestionBreakdownResponse struct {
	Load               int `json:"load"`
	Proximity          int `json:"proximity"`
	VehicleSuitability int `json:"vehicle_suitability"`
	Rating             int `json:"rating"`
	ConcurrentPenalty  int `json:"concurrent_penalty"`
}

// TrackingPositionResponse is the courier position in the public tracking view.
type TrackingPositionResponse struct {
	Lat float64   `json:"lat"`
	Lon float64   `json:"lon"`
	At  time.Time `json:"at"`
}

// TrackingResponse is the public tracking view of GET /track/:token. It
// exposes no internal identifiers.
type TrackingResponse struct {
	Status           string                    `json:"status"`
	DropoffAddress   string                    `json:"dropoff_address"`
	CourierName      *string                   `json:"courier_name,omitempty"`
	CourierPosition  *TrackingPositionResponse `json:"courier_position,omitempty"`
	EstimatedArrival *time.Time                `json:"estimated_arrival,omitempty"`
	PickedUpAt       *time.Time                `json:"picked_up_at,omitempty"`
	DeliveredAt      *time.Time                `json:"delivered_at,omitempty"`
}

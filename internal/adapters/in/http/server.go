// Package http exposes the dispatch API over echo: the business-scoped
// operations under /api/v1/businesses/:business_id, the public tracking
// endpoint, and the realtime websocket surface.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/adapters/out/ws"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCourier  commands.CreateCourierCommandHandler
	reportStatus   commands.ReportCourierStatusCommandHandler
	createDelivery commands.CreateDeliveryCommandHandler
	assignCourier  commands.AssignCourierCommandHandler
	autoAssign     commands.AutoAssignCommandHandler
	updateStatus   commands.UpdateDeliveryStatusCommandHandler
	complete       commands.CompleteDeliveryCommandHandler
	reportLocation commands.ReportLocationCommandHandler
	rateDelivery   commands.RateDeliveryCommandHandler
	updateTip      commands.UpdateTipCommandHandler
	createZone     commands.CreateZoneCommandHandler

	trackDelivery      queries.TrackDeliveryQueryHandler
	activeDeliveries   queries.GetActiveDeliveriesQueryHandler
	courierSuggestions queries.GetCourierSuggestionsQueryHandler
	quoteFee           queries.QuoteDeliveryFeeQueryHandler

	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// ServerParams bundles the handlers the server needs.
type ServerParams struct {
	CreateCourier  commands.CreateCourierCommandHandler
	ReportStatus   commands.ReportCourierStatusCommandHandler
	CreateDelivery commands.CreateDeliveryCommandHandler
	AssignCourier  commands.AssignCourierCommandHandler
	AutoAssign     commands.AutoAssignCommandHandler
	UpdateStatus   commands.UpdateDeliveryStatusCommandHandler
	Complete       commands.CompleteDeliveryCommandHandler
	ReportLocation commands.ReportLocationCommandHandler
	RateDelivery   commands.RateDeliveryCommandHandler
	UpdateTip      commands.UpdateTipCommandHandler
	CreateZone     commands.CreateZoneCommandHandler

	TrackDelivery      queries.TrackDeliveryQueryHandler
	ActiveDeliveries   queries.GetActiveDeliveriesQueryHandler
	CourierSuggestions queries.GetCourierSuggestionsQueryHandler
	QuoteFee           queries.QuoteDeliveryFeeQueryHandler

	Hub *ws.Hub
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(p ServerParams) *Server {
	return &Server{
		createCourier:      p.CreateCourier,
		reportStatus:       p.ReportStatus,
		createDelivery:     p.CreateDelivery,
		assignCourier:      p.AssignCourier,
		autoAssign:         p.AutoAssign,
		updateStatus:       p.UpdateStatus,
		complete:           p.Complete,
		reportLocation:     p.ReportLocation,
		rateDelivery:       p.RateDelivery,
		updateTip:          p.UpdateTip,
		createZone:         p.CreateZone,
		trackDelivery:      p.TrackDelivery,
		activeDeliveries:   p.ActiveDeliveries,
		courierSuggestions: p.CourierSuggestions,
		quoteFee:           p.QuoteFee,
		hub:                p.Hub,
		upgrader:           websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// RegisterRoutes wires the server's handlers into an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", s.Health)
	e.GET("/track/:token", s.TrackDelivery)

	business := e.Group("/api/v1/businesses/:business_id")
	business.GET("/ws", s.SubscribeEvents)

	business.POST("/couriers", s.CreateCourier)
	business.POST("/couriers/:courier_id/status", s.ReportCourierStatus)

	business.POST("/zones", s.CreateZone)
	business.POST("/quotes", s.QuoteDeliveryFee)

	business.POST("/deliveries", s.CreateDelivery)
	business.GET("/deliveries", s.GetActiveDeliveries)
	business.POST("/deliveries/:delivery_id/assign", s.AssignCourier)
	business.POST("/deliveries/:delivery_id/auto-assign", s.AutoAssign)
	business.GET("/deliveries/:delivery_id/suggestions", s.GetCourierSuggestions)
	business.POST("/deliveries/:delivery_id/status", s.UpdateDeliveryStatus)
	business.POST("/deliveries/:delivery_id/complete", s.CompleteDelivery)
	business.POST("/deliveries/:delivery_id/location", s.ReportLocation)
	business.POST("/deliveries/:delivery_id/rating", s.RateDelivery)
	business.POST("/deliveries/:delivery_id/tip", s.UpdateTip)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// CreateCourier handles POST /couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(businessID, req.Name, courier.Vehicle(req.Vehicle))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateCourierResponse{ID: cmd.CourierID().String()})
}

// ReportCourierStatus handles POST /couriers/:courier_id/status.
func (s *Server) ReportCourierStatus(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	courierID, err := pathUUID(ctx, "courier_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReportCourierStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReportCourierStatusCommand(businessID, courierID, courier.Status(req.Status))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reportStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateZone handles POST /zones.
func (s *Server) CreateZone(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateZoneRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	var center *kernel.GeoPoint
	if req.Center != nil {
		point, pointErr := kernel.NewGeoPoint(req.Center.Lat, req.Center.Lon)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		center = &point
	}

	var ring []kernel.GeoPoint
	for _, vertex := range req.Ring {
		point, pointErr := kernel.NewGeoPoint(vertex.Lat, vertex.Lon)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		ring = append(ring, point)
	}

	cmd, err := commands.NewCreateZoneCommand(commands.NewCreateZoneCommandParams{
		BusinessID:   businessID,
		Name:         req.Name,
		Shape:        zone.Shape(req.Shape),
		Center:       center,
		RadiusMeters: req.RadiusMeters,
		Ring:         ring,
		Pricing: zone.Pricing{
			BaseFee:               req.BaseFee,
			PerKmFee:              req.PerKmFee,
			MinOrderAmount:        req.MinOrderAmount,
			FreeDeliveryThreshold: req.FreeDeliveryThreshold,
		},
		Priority: req.Priority,

		MinDeliveryMinutes: req.MinDeliveryMinutes,
		MaxDeliveryMinutes: req.MaxDeliveryMinutes,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createZone.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateZoneResponse{ID: cmd.ZoneID().String()})
}

// QuoteDeliveryFee handles POST /quotes.
func (s *Server) QuoteDeliveryFee(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req QuoteDeliveryFeeRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	pickup, err := kernel.NewGeoPoint(req.PickupPoint.Lat, req.PickupPoint.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	var dropoff *kernel.GeoPoint
	if req.DropoffPoint != nil {
		point, pointErr := kernel.NewGeoPoint(req.DropoffPoint.Lat, req.DropoffPoint.Lon)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		dropoff = &point
	}

	query, err := queries.NewQuoteDeliveryFeeQuery(businessID, pickup, dropoff, req.OrderAmount)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.quoteFee.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, QuoteDeliveryFeeResponse{
		ZoneID:             quote.ZoneID.String(),
		ZoneName:           quote.ZoneName,
		Fee:                quote.Fee,
		MinOrderAmount:     quote.MinOrderAmount,
		MeetsMinimum:       quote.MeetsMinimum,
		MinDeliveryMinutes: quote.MinDeliveryMinutes,
		MaxDeliveryMinutes: quote.MaxDeliveryMinutes,
	})
}

// CreateDelivery handles POST /deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}
	pickup, err := kernel.NewGeoPoint(req.PickupPoint.Lat, req.PickupPoint.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	var dropoff *kernel.GeoPoint
	if req.DropoffPoint != nil {
		point, pointErr := kernel.NewGeoPoint(req.DropoffPoint.Lat, req.DropoffPoint.Lon)
		if pointErr != nil {
			return respondError(ctx, pointErr)
		}
		dropoff = &point
	}

	cmd, err := commands.NewCreateDeliveryCommand(commands.NewCreateDeliveryCommandParams{
		BusinessID:     businessID,
		OrderID:        orderID,
		PickupAddress:  req.PickupAddress,
		PickupPoint:    pickup,
		DropoffAddress: req.DropoffAddress,
		DropoffPoint:   dropoff,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		OrderAmount:    req.OrderAmount,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{
		ID:            result.DeliveryID.String(),
		TrackingToken: result.TrackingToken,
		Fee:           result.Fee,
		ZoneID:        result.ZoneID.String(),
	})
}

// GetActiveDeliveries handles GET /deliveries.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveDeliveriesQuery(businessID)
	if err != nil {
		return respondError(ctx, err)
	}

	board, err := s.activeDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ActiveDeliveryResponse, 0, len(board))
	for _, row := range board {
		item := ActiveDeliveryResponse{
			ID:               row.ID.String(),
			OrderID:          row.OrderID.String(),
			Status:           row.Status,
			PickupAddress:    row.PickupAddress,
			DropoffAddress:   row.DropoffAddress,
			CustomerName:     row.CustomerName,
			CourierName:      row.CourierName,
			Fee:              row.Fee,
			Tip:              row.Tip,
			EstimatedArrival: row.EstimatedArrival,
			AcceptedAt:       row.AcceptedAt,
		}
		if row.CourierID != nil {
			id := row.CourierID.String()
			item.CourierID = &id
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignCourier handles POST /deliveries/:delivery_id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(businessID, deliveryID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AutoAssign handles POST /deliveries/:delivery_id/auto-assign.
func (s *Server) AutoAssign(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAutoAssignCommand(businessID, deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.autoAssign.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := AutoAssignResponse{
		Assigned: result.Assigned,
		Reason:   string(result.Reason),
	}
	if result.CourierID != nil {
		id := result.CourierID.String()
		response.CourierID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierSuggestions handles GET /deliveries/:delivery_id/suggestions.
func (s *Server) GetCourierSuggestions(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if err = echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid limit"))
		}
	}

	query, err := queries.NewGetCourierSuggestionsQuery(businessID, deliveryID, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	suggestions, err := s.courierSuggestions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]SuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		response = append(response, SuggestionResponse{
			CourierID:       suggestion.CourierID.String(),
			Name:            suggestion.Name,
			Vehicle:         suggestion.Vehicle,
			DeliveriesToday: suggestion.DeliveriesToday,
			Score:           suggestion.Score,
			Breakdown: SuggestionBreakdownResponse{
				Load:               suggestion.Breakdown.Load,
				Proximity:          suggestion.Breakdown.Proximity,
				VehicleSuitability: suggestion.Breakdown.VehicleSuitability,
				Rating:             suggestion.Breakdown.Rating,
				ConcurrentPenalty:  suggestion.Breakdown.ConcurrentPenalty,
			},
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateDeliveryStatus handles POST /deliveries/:delivery_id/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateDeliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(businessID, deliveryID, delivery.Status(req.Status), req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /deliveries/:delivery_id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CompleteDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(businessID, deliveryID, req.ProofRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.complete.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportLocation handles POST /deliveries/:delivery_id/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReportLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	position, err := kernel.NewGeoPoint(req.Position.Lat, req.Position.Lon)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReportLocationCommand(commands.NewReportLocationCommandParams{
		BusinessID: businessID,
		DeliveryID: deliveryID,
		Position:   position,
		Heading:    req.Heading,
		Speed:      req.Speed,
		Accuracy:   req.Accuracy,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reportLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateDelivery handles POST /deliveries/:delivery_id/rating.
func (s *Server) RateDelivery(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req RateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(businessID, deliveryID, req.Rating, req.Feedback)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateTip handles POST /deliveries/:delivery_id/tip.
func (s *Server) UpdateTip(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "delivery_id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateTipRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))
	}
	if err = ctx.Validate(&req); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateTipCommand(businessID, deliveryID, req.Amount)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateTip.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackDelivery handles GET /track/:token, the public tracking surface.
func (s *Server) TrackDelivery(ctx echo.Context) error {
	query, err := queries.NewTrackDeliveryQuery(ctx.Param("token"))
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.trackDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "unknown tracking token",
			})
		}
		return respondError(ctx, err)
	}

	response := TrackingResponse{
		Status:           view.Status,
		DropoffAddress:   view.DropoffAddress,
		CourierName:      view.CourierName,
		EstimatedArrival: view.EstimatedArrival,
		PickedUpAt:       view.PickedUpAt,
		DeliveredAt:      view.DeliveredAt,
	}
	if view.CourierPosition != nil {
		response.CourierPosition = &TrackingPositionResponse{
			Lat: view.CourierPosition.Lat,
			Lon: view.CourierPosition.Lon,
			At:  view.CourierPosition.At,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubscribeEvents handles GET /ws: upgrades the connection and joins the
// business's event room until the client disconnects.
func (s *Server) SubscribeEvents(ctx echo.Context) error {
	businessID, err := pathUUID(ctx, "business_id")
	if err != nil {
		return respondError(ctx, err)
	}

	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	s.hub.Subscribe(businessID, conn)
	return nil
}

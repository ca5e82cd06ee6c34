package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/zonerepo"
	"dispatch/internal/adapters/out/routing"
	"dispatch/internal/adapters/out/ws"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers. Everything is
// built once at startup; handlers are cheap value types created on demand.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	routing    ports.RoutingProvider
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the loaded configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(),
		routing:    routing.NewClient(config.RoutingBaseURL, config.RoutingTimeout),
		logger:     logger,
	}
}

// Hub exposes the websocket hub for the HTTP layer.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) zoneUoWFactory() commands.ZoneUoWFactory {
	return FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createDeliveryUoWFactory() commands.CreateDeliveryUoWFactory {
	return FuncCreateDeliveryUoWFactory(func() commands.CreateDeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossAggregateUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReportCourierStatusCommandHandler() commands.ReportCourierStatusCommandHandler {
	return commands.NewReportCourierStatusCommandHandler(c.courierUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.createDeliveryUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.crossAggregateUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateAutoAssignCommandHandler() commands.AutoAssignCommandHandler {
	return commands.NewAutoAssignCommandHandler(c.crossAggregateUoWFactory(), services.NewCandidateScorer(), c.hub)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.crossAggregateUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.crossAggregateUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.crossAggregateUoWFactory(), c.routing, c.hub, c.logger)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.crossAggregateUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTipCommandHandler() commands.UpdateTipCommandHandler {
	return commands.NewUpdateTipCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateCreateZoneCommandHandler() commands.CreateZoneCommandHandler {
	return commands.NewCreateZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateTrackDeliveryQueryHandler() queries.TrackDeliveryQueryHandler {
	return queries.NewTrackDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierSuggestionsQueryHandler() queries.GetCourierSuggestionsQueryHandler {
	return queries.NewGetCourierSuggestionsQueryHandler(
		courierrepo.NewGormCourierRepository(c.gormDB),
		deliveryrepo.NewGormDeliveryRepository(c.gormDB),
		services.NewCandidateScorer(),
	)
}

func (c *CompositionRoot) CreateQuoteDeliveryFeeQueryHandler() queries.QuoteDeliveryFeeQueryHandler {
	return queries.NewQuoteDeliveryFeeQueryHandler(zonerepo.NewGormZoneRepository(c.gormDB))
}

// CreateHTTPServer assembles the HTTP server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.ServerParams{
		CreateCourier:  c.CreateCreateCourierCommandHandler(),
		ReportStatus:   c.CreateReportCourierStatusCommandHandler(),
		CreateDelivery: c.CreateCreateDeliveryCommandHandler(),
		AssignCourier:  c.CreateAssignCourierCommandHandler(),
		AutoAssign:     c.CreateAutoAssignCommandHandler(),
		UpdateStatus:   c.CreateUpdateDeliveryStatusCommandHandler(),
		Complete:       c.CreateCompleteDeliveryCommandHandler(),
		ReportLocation: c.CreateReportLocationCommandHandler(),
		RateDelivery:   c.CreateRateDeliveryCommandHandler(),
		UpdateTip:      c.CreateUpdateTipCommandHandler(),
		CreateZone:     c.CreateCreateZoneCommandHandler(),

		TrackDelivery:      c.CreateTrackDeliveryQueryHandler(),
		ActiveDeliveries:   c.CreateGetActiveDeliveriesQueryHandler(),
		CourierSuggestions: c.CreateGetCourierSuggestionsQueryHandler(),
		QuoteFee:           c.CreateQuoteDeliveryFeeQueryHandler(),

		Hub: c.hub,
	})
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(jobs.JobManagerParams{
		AssignmentSource:   deliveryrepo.NewGormDeliveryRepository(c.gormDB),
		AutoAssignHandler:  c.CreateAutoAssignCommandHandler(),
		AssignmentInterval: config.AssignmentInterval,

		StaleSource:         courierrepo.NewGormCourierRepository(c.gormDB),
		ReportStatusHandler: c.CreateReportCourierStatusCommandHandler(),
		StaleAge:            config.CourierStaleAge,
		StaleSweepInterval:  config.StaleSweepInterval,
	}, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}

type FuncCreateDeliveryUoWFactory func() commands.CreateDeliveryUoW

func (f FuncCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

package commands_test

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the handler tests.

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, courier *courier.Courier) error {
	args := m.Called(ctx, courier)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, courier *courier.Courier) error {
	args := m.Called(ctx, courier)
	return args.Error(0)
}

func (m *MockCourierRepository) UpdateIfStatus(ctx context.Context, c *courier.Courier, expected courier.Status) error {
	args := m.Called(ctx, c, expected)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllStale(ctx context.Context, cutoff time.Time) ([]*courier.Courier, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateIfStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingToken(ctx context.Context, token string) (*delivery.Delivery, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllActive(ctx context.Context, businessID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllInStatus(ctx context.Context, businessID kernel.UUID, status delivery.Status) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, businessID, status)
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) Add(ctx context.Context, aggregate *zone.Zone) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockZoneRepository) Update(ctx context.Context, aggregate *zone.Zone) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockZoneRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*zone.Zone, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*zone.Zone), args.Error(1)
}

func (m *MockZoneRepository) GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*zone.Zone, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*zone.Zone), args.Error(1)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoW struct {
	mock.Mock
}

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockDeliveryUoW struct {
	mock.Mock
}

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct {
	mock.Mock
}

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockZoneUoW struct {
	mock.Mock
}

func (m *MockZoneUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockZoneUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockZoneUoWFactory struct {
	mock.Mock
}

func (m *MockZoneUoWFactory) Create() commands.ZoneUoW {
	args := m.Called()
	return args.Get(0).(commands.ZoneUoW)
}

type MockCreateDeliveryUoW struct {
	mock.Mock
}

func (m *MockCreateDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockCreateDeliveryUoW) ZoneRepository() ports.ZoneRepository {
	args := m.Called()
	return args.Get(0).(ports.ZoneRepository)
}

type MockCreateDeliveryUoWFactory struct {
	mock.Mock
}

func (m *MockCreateDeliveryUoWFactory) Create() commands.CreateDeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateDeliveryUoW)
}

type MockRoutingProvider struct {
	mock.Mock
}

func (m *MockRoutingProvider) CalculateRoute(ctx context.Context, origin, destination kernel.GeoPoint, vehicle courier.Vehicle) (ports.Route, error) {
	args := m.Called(ctx, origin, destination, vehicle)
	return args.Get(0).(ports.Route), args.Error(1)
}

// recordedEvent captures one Publish call.
type recordedEvent struct {
	businessID kernel.UUID
	event      string
	payload    any
}

// fakeBroadcaster records published events for assertions.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *fakeBroadcaster) Publish(businessID kernel.UUID, event string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{businessID: businessID, event: event, payload: payload})
}

func (b *fakeBroadcaster) eventNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.events))
	for _, e := range b.events {
		names = append(names, e.event)
	}
	return names
}

package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DeliveryRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
}

func (suite *DeliveryRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{})
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryRepository(db)
}

func (suite *DeliveryRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DeliveryRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *DeliveryRepositoryTestSuite) mustGeoPoint(lat, lon float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)
	return point
}

func (suite *DeliveryRepositoryTestSuite) newAcceptedDelivery(businessID kernel.UUID) *delivery.Delivery {
	dropoff := suite.mustGeoPoint(55.76, 37.61)
	d, err := delivery.NewDelivery(delivery.NewDeliveryParams{
		ID:             kernel.NewUUID(),
		BusinessID:     businessID,
		OrderID:        kernel.NewUUID(),
		PickupAddress:  "1 Bakery Lane",
		PickupPoint:    suite.mustGeoPoint(55.75, 37.61),
		DropoffAddress: "9 Elm Street",
		DropoffPoint:   &dropoff,
		CustomerName:   "Alex",
		CustomerPhone:  "+15550100",
		Fee:            4.5,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(d.Accept())
	return d
}

func (suite *DeliveryRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	businessID := kernel.NewUUID()

	original := suite.newAcceptedDelivery(businessID)
	accuracy := 12.5
	point, err := delivery.NewTrackPoint(suite.mustGeoPoint(55.751, 37.612), time.Now().UTC().Truncate(time.Millisecond), &accuracy)
	suite.Require().NoError(err)
	suite.Require().NoError(original.RecordTrackPoint(point))

	suite.Require().NoError(suite.repo.Add(ctx, original))

	loaded, err := suite.repo.Get(ctx, businessID, original.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(original.ID()))
	suite.Equal(delivery.StatusAccepted, loaded.Status())
	suite.Equal("1 Bakery Lane", loaded.PickupAddress())
	suite.Equal("9 Elm Street", loaded.DropoffAddress())
	suite.Equal(original.TrackingToken(), loaded.TrackingToken())
	suite.InDelta(4.5, loaded.Fee(), 1e-9)
	suite.Require().NotNil(loaded.AcceptedAt())

	history := loaded.History()
	suite.Require().Len(history, 1)
	suite.InDelta(55.751, history[0].Point().Latitude(), 1e-9)
	suite.InDelta(37.612, history[0].Point().Longitude(), 1e-9)
	suite.Require().NotNil(history[0].Accuracy())
	suite.InDelta(12.5, *history[0].Accuracy(), 1e-9)
}

func (suite *DeliveryRepositoryTestSuite) TestGetByTrackingToken() {
	ctx := context.Background()

	d := suite.newAcceptedDelivery(kernel.NewUUID())
	suite.Require().NoError(suite.repo.Add(ctx, d))

	loaded, err := suite.repo.GetByTrackingToken(ctx, d.TrackingToken())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(d.ID()))

	_, err = suite.repo.GetByTrackingToken(ctx, "no-such-token")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryTestSuite) TestUpdateIfStatus_LostRace() {
	ctx := context.Background()
	businessID := kernel.NewUUID()

	d := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(suite.repo.Add(ctx, d))

	// A concurrent writer assigns the delivery first.
	winner, err := suite.repo.Get(ctx, businessID, d.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.UpdateIfStatus(ctx, winner, delivery.StatusAccepted))

	suite.Require().NoError(d.Assign(kernel.NewUUID()))
	err = suite.repo.UpdateIfStatus(ctx, d, delivery.StatusAccepted)

	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)

	loaded, err := suite.repo.Get(ctx, businessID, d.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.CourierID())
	suite.True(loaded.CourierID().IsEqual(*winner.CourierID()))
}

func (suite *DeliveryRepositoryTestSuite) TestGetAllActive_ExcludesTerminal() {
	ctx := context.Background()
	businessID := kernel.NewUUID()

	active := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(suite.repo.Add(ctx, active))

	cancelled := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(cancelled.Cancel("customer changed their mind"))
	suite.Require().NoError(suite.repo.Add(ctx, cancelled))

	other := suite.newAcceptedDelivery(kernel.NewUUID())
	suite.Require().NoError(suite.repo.Add(ctx, other))

	deliveries, err := suite.repo.GetAllActive(ctx, businessID)
	suite.Require().NoError(err)

	suite.Require().Len(deliveries, 1)
	suite.True(deliveries[0].ID().IsEqual(active.ID()))
}

func (suite *DeliveryRepositoryTestSuite) TestGetAllInStatus_OrdersByAcceptedAt() {
	ctx := context.Background()
	businessID := kernel.NewUUID()

	first := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(suite.repo.Add(ctx, first))

	time.Sleep(5 * time.Millisecond)

	second := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(suite.repo.Add(ctx, second))

	assigned := suite.newAcceptedDelivery(businessID)
	suite.Require().NoError(assigned.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Add(ctx, assigned))

	deliveries, err := suite.repo.GetAllInStatus(ctx, businessID, delivery.StatusAccepted)
	suite.Require().NoError(err)

	suite.Require().Len(deliveries, 2)
	suite.True(deliveries[0].ID().IsEqual(first.ID()))
	suite.True(deliveries[1].ID().IsEqual(second.ID()))
}

func TestDeliveryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryTestSuite))
}

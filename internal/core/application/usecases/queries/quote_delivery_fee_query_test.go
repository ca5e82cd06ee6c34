package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteDeliveryFeeQuery(t *testing.T) {
	t.Run("should create query with pickup only", func(t *testing.T) {
		// Arrange
		businessID := kernel.NewUUID()
		pickup := mustGeoPoint(t, 55.75, 37.61)

		// Act
		query, err := queries.NewQuoteDeliveryFeeQuery(businessID, pickup, nil, 15)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.BusinessID().IsEqual(businessID))
		assert.Nil(t, query.DropoffPoint())
		assert.InDelta(t, 15, query.OrderAmount(), 1e-9)
	})

	t.Run("should carry a copy of the drop-off point", func(t *testing.T) {
		// Arrange
		dropoff := mustGeoPoint(t, 55.76, 37.62)

		// Act
		query, err := queries.NewQuoteDeliveryFeeQuery(kernel.NewUUID(), mustGeoPoint(t, 55.75, 37.61), &dropoff, 0)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, query.DropoffPoint())
		assert.InDelta(t, 55.76, query.DropoffPoint().Latitude(), 1e-9)
	})

	t.Run("should reject unconstructed pickup point", func(t *testing.T) {
		// Act
		_, err := queries.NewQuoteDeliveryFeeQuery(kernel.NewUUID(), kernel.GeoPoint{}, nil, 15)

		// Assert
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative order amount", func(t *testing.T) {
		// Act
		_, err := queries.NewQuoteDeliveryFeeQuery(kernel.NewUUID(), mustGeoPoint(t, 55.75, 37.61), nil, -1)

		// Assert
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should return error for zero business ID", func(t *testing.T) {
		// Act
		_, err := queries.NewQuoteDeliveryFeeQuery(kernel.UUID{}, mustGeoPoint(t, 55.75, 37.61), nil, 15)

		// Assert
		require.Error(t, err)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		// Arrange
		var query queries.QuoteDeliveryFeeQuery

		// Assert
		assert.ErrorIs(t, query.Validate(), queries.ErrQuoteDeliveryFeeQueryIsNotConstructed)
	})
}

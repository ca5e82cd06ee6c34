package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCourierSuggestionsQuery(t *testing.T) {
	t.Run("should create query with valid parameters", func(t *testing.T) {
		// Arrange
		businessID := kernel.NewUUID()
		deliveryID := kernel.NewUUID()

		// Act
		query, err := queries.NewGetCourierSuggestionsQuery(businessID, deliveryID, 3)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, query.BusinessID().IsEqual(businessID))
		assert.True(t, query.DeliveryID().IsEqual(deliveryID))
		assert.Equal(t, 3, query.Limit())
	})

	t.Run("should allow non-positive limit as no cap", func(t *testing.T) {
		// Act
		query, err := queries.NewGetCourierSuggestionsQuery(kernel.NewUUID(), kernel.NewUUID(), 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, query.Limit())
	})

	t.Run("should return error for zero delivery ID", func(t *testing.T) {
		// Act
		_, err := queries.NewGetCourierSuggestionsQuery(kernel.NewUUID(), kernel.UUID{}, 3)

		// Assert
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		// Arrange
		var query queries.GetCourierSuggestionsQuery

		// Assert
		assert.ErrorIs(t, query.Validate(), queries.ErrGetCourierSuggestionsQueryIsNotConstructed)
	})
}

package fleet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/fleet"
)

type expiryMocks struct {
	vehicles *MockVehicleRepository
	trailers *MockTrailerRepository
	drivers  *MockDriverRepository
}

func newTestExpiryService() (*ExpiryService, *expiryMocks) {
	m := &expiryMocks{
		vehicles: new(MockVehicleRepository),
		trailers: new(MockTrailerRepository),
		drivers:  new(MockDriverRepository),
	}
	return NewExpiryService(m.vehicles, m.trailers, m.drivers), m
}

// ============================================================================
// Expiry Service Tests
// ============================================================================

func TestExpiryService_ExpiringDocuments(t *testing.T) {
	ctx := context.Background()
	ref := day(2026, time.March, 10)

	t.Run("feed is sorted most urgent first", func(t *testing.T) {
		service, mocks := newTestExpiryService()

		vehicle := createTestVehicle()
		vehicle.SetDocumentDates(day(2026, time.March, 8), day(2026, time.April, 30))

		trailer := createTestTrailer()
		trailer.SetDocumentDates(day(2026, time.March, 24), time.Time{})

		driver := createTestDriver()
		require.NoError(t, driver.SetLicense([]string{"C+E"}, day(2026, time.March, 15)))

		deadline := day(2026, time.March, 24)
		mocks.vehicles.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Vehicle{*vehicle}, nil)
		mocks.trailers.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Trailer{*trailer}, nil)
		mocks.drivers.On("FindWithExpiringLicense", ctx, testTenantID, deadline).Return([]fleet.Driver{*driver}, nil)

		feed, err := service.ExpiringDocuments(ctx, testTenantID, ref, 14)

		require.NoError(t, err)
		require.Len(t, feed, 3)

		// Inspection ran out two days before ref; the insurance date in
		// April falls outside the window and produces no row.
		assert.Equal(t, fleet.ResourceVehicle, feed[0].ResourceType)
		assert.Equal(t, fleet.DocumentInspection, feed[0].Document)
		assert.Equal(t, "WGM 4521A", feed[0].ResourceLabel)
		assert.Equal(t, -2, feed[0].DaysLeft)
		assert.True(t, feed[0].IsExpired())

		assert.Equal(t, fleet.ResourceDriver, feed[1].ResourceType)
		assert.Equal(t, fleet.DocumentLicense, feed[1].Document)
		assert.Equal(t, "Marek Kowalski", feed[1].ResourceLabel)
		assert.Equal(t, 5, feed[1].DaysLeft)

		assert.Equal(t, fleet.ResourceTrailer, feed[2].ResourceType)
		assert.Equal(t, fleet.DocumentInspection, feed[2].Document)
		assert.Equal(t, "WND 7733C", feed[2].ResourceLabel)
		assert.Equal(t, 14, feed[2].DaysLeft)
		assert.False(t, feed[2].IsExpired())
	})

	t.Run("same day rows sorted by label", func(t *testing.T) {
		service, mocks := newTestExpiryService()

		vehicle, _ := fleet.NewVehicle(testTenantID, "PO 12345", fleet.VehicleKindVan, "Iveco", "Daily")
		vehicle.SetDocumentDates(time.Time{}, day(2026, time.March, 20))

		trailer, _ := fleet.NewTrailer(testTenantID, "AB 111", fleet.TrailerKindBox)
		trailer.SetDocumentDates(day(2026, time.March, 20), time.Time{})

		deadline := day(2026, time.March, 24)
		mocks.vehicles.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Vehicle{*vehicle}, nil)
		mocks.trailers.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Trailer{*trailer}, nil)
		mocks.drivers.On("FindWithExpiringLicense", ctx, testTenantID, deadline).Return([]fleet.Driver{}, nil)

		feed, err := service.ExpiringDocuments(ctx, testTenantID, ref, 14)

		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, "AB 111", feed[0].ResourceLabel)
		assert.Equal(t, 10, feed[0].DaysLeft)
		assert.Equal(t, "PO 12345", feed[1].ResourceLabel)
		assert.Equal(t, 10, feed[1].DaysLeft)
	})

	t.Run("window defaults to thirty days", func(t *testing.T) {
		service, mocks := newTestExpiryService()

		deadline := day(2026, time.April, 9)
		mocks.vehicles.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Vehicle{}, nil)
		mocks.trailers.On("FindWithExpiringDocuments", ctx, testTenantID, deadline).Return([]fleet.Trailer{}, nil)
		mocks.drivers.On("FindWithExpiringLicense", ctx, testTenantID, deadline).Return([]fleet.Driver{}, nil)

		feed, err := service.ExpiringDocuments(ctx, testTenantID, ref, 0)

		require.NoError(t, err)
		assert.Empty(t, feed)
		mocks.vehicles.AssertExpectations(t)
		mocks.trailers.AssertExpectations(t)
		mocks.drivers.AssertExpectations(t)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		service, mocks := newTestExpiryService()

		mocks.vehicles.On("FindWithExpiringDocuments", ctx, testTenantID, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := service.ExpiringDocuments(ctx, testTenantID, ref, 14)

		require.Error(t, err)
		mocks.trailers.AssertNotCalled(t, "FindWithExpiringDocuments", mock.Anything, mock.Anything, mock.Anything)
	})
}

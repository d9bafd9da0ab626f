package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type MockTrailerRepository struct {
	mock.Mock
}

func (m *MockTrailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Trailer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (*fleet.Trailer, error) {
	args := m.Called(ctx, tenantID, registrationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Trailer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindAvailable(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Trailer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindWithExpiringDocuments(ctx context.Context, tenantID uuid.UUID, deadline time.Time) ([]fleet.Trailer, error) {
	args := m.Called(ctx, tenantID, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) Save(ctx context.Context, trailer *fleet.Trailer) error {
	args := m.Called(ctx, trailer)
	return args.Error(0)
}

func (m *MockTrailerRepository) SaveWithLock(ctx context.Context, trailer *fleet.Trailer) error {
	args := m.Called(ctx, trailer)
	return args.Error(0)
}

func (m *MockTrailerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTrailerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTrailerRepository) ExistsByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, registrationNumber)
	return args.Bool(0), args.Error(1)
}

func newTestTrailerService() (*TrailerService, *MockTrailerRepository) {
	repo := new(MockTrailerRepository)
	return NewTrailerService(repo), repo
}

func createTestTrailer() *fleet.Trailer {
	trailer, _ := fleet.NewTrailer(testTenantID, "WND 7733C", fleet.TrailerKindCurtain)
	trailer.ClearDomainEvents()
	return trailer
}

// ============================================================================
// Trailer Service Tests
// ============================================================================

func TestTrailerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("create reefer trailer", func(t *testing.T) {
		service, repo := newTestTrailerService()

		repo.On("ExistsByRegistration", ctx, testTenantID, "WZ 9120F").Return(false, nil)

		var saved *fleet.Trailer
		repo.On("Save", ctx, mock.AnythingOfType("*fleet.Trailer")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*fleet.Trailer)
		}).Return(nil)

		resp, err := service.Create(ctx, testTenantID, CreateTrailerRequest{
			RegistrationNumber: "wz 9120f",
			Kind:               "REEFER",
			CapacityKg:         decPtr(decimal.NewFromInt(24000)),
			InspectionExpiry:   timePtr(day(2026, time.November, 30)),
		})

		require.NoError(t, err)
		assert.Equal(t, "WZ 9120F", resp.RegistrationNumber)
		assert.Equal(t, "REEFER", resp.Kind)
		assert.Equal(t, "AVAILABLE", resp.Status)
		assert.True(t, resp.CapacityKg.Equal(decimal.NewFromInt(24000)))
		require.NotNil(t, resp.InspectionExpiry)
		assert.Equal(t, day(2026, time.November, 30), *resp.InspectionExpiry)
		assert.Nil(t, resp.InsuranceExpiry)

		require.NotNil(t, saved)
		assert.Equal(t, fleet.TrailerKindReefer, saved.Kind)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		service, repo := newTestTrailerService()

		repo.On("ExistsByRegistration", ctx, testTenantID, "WND 7733C").Return(true, nil)

		_, err := service.Create(ctx, testTenantID, CreateTrailerRequest{
			RegistrationNumber: "WND 7733C",
			Kind:               "CURTAIN",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTrailerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuild changes kind and documents", func(t *testing.T) {
		service, repo := newTestTrailerService()
		trailer := createTestTrailer()

		repo.On("FindByIDForTenant", ctx, testTenantID, trailer.ID).Return(trailer, nil)
		repo.On("SaveWithLock", ctx, trailer).Return(nil)

		resp, err := service.Update(ctx, testTenantID, trailer.ID, UpdateTrailerRequest{
			Kind:            strPtr("BOX"),
			InsuranceExpiry: timePtr(day(2027, time.February, 28)),
		})

		require.NoError(t, err)
		assert.Equal(t, "BOX", resp.Kind)
		require.NotNil(t, resp.InsuranceExpiry)
		assert.Equal(t, day(2027, time.February, 28), *resp.InsuranceExpiry)
		assert.Nil(t, resp.InspectionExpiry)
	})

	t.Run("withdraw trailer from the fleet", func(t *testing.T) {
		service, repo := newTestTrailerService()
		trailer := createTestTrailer()

		repo.On("FindByIDForTenant", ctx, testTenantID, trailer.ID).Return(trailer, nil)
		repo.On("SaveWithLock", ctx, trailer).Return(nil)

		resp, err := service.Update(ctx, testTenantID, trailer.ID, UpdateTrailerRequest{
			Status: strPtr("OUT_OF_SERVICE"),
		})

		require.NoError(t, err)
		assert.Equal(t, "OUT_OF_SERVICE", resp.Status)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		service, repo := newTestTrailerService()
		trailer := createTestTrailer()

		repo.On("FindByIDForTenant", ctx, testTenantID, trailer.ID).Return(trailer, nil)

		_, err := service.Update(ctx, testTenantID, trailer.ID, UpdateTrailerRequest{
			Kind: strPtr("FLATBED"),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_KIND", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

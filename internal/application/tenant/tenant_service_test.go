package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/domain/tenant"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByNIP(ctx context.Context, nip string) (*tenant.Tenant, error) {
	args := m.Called(ctx, nip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAllActive(ctx context.Context) ([]tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) SaveWithLock(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) ExistsByNIP(ctx context.Context, nip string) (bool, error) {
	args := m.Called(ctx, nip)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestTenantService() (*TenantService, *MockTenantRepository) {
	repo := new(MockTenantRepository)
	return NewTenantService(repo), repo
}

func createActiveTenant() *tenant.Tenant {
	t, _ := tenant.NewTenant("TRANSMAR", "Transmar Logistyka Sp. z o.o.", valueobject.MustNewNIP("5260250995"))
	t.ClearDomainEvents()
	return t
}

func createInactiveTenant() *tenant.Tenant {
	t := createActiveTenant()
	_ = t.Deactivate()
	t.ClearDomainEvents()
	return t
}

// ============================================================================
// Tenant Service Tests
// ============================================================================

func TestTenantService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("create tenant", func(t *testing.T) {
		service, repo := newTestTenantService()

		repo.On("ExistsByCode", ctx, "TRANSMAR").Return(false, nil)
		repo.On("ExistsByNIP", ctx, "5260250995").Return(false, nil)

		var saved *tenant.Tenant
		repo.On("Save", ctx, mock.AnythingOfType("*tenant.Tenant")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*tenant.Tenant)
		}).Return(nil)

		resp, err := service.Create(ctx, CreateTenantRequest{
			Code:         "transmar",
			Name:         "Transmar Logistyka Sp. z o.o.",
			NIP:          "526-025-09-95",
			ContactEmail: "biuro@transmar.pl",
			ContactPhone: "+48 22 620 30 40",
		})

		require.NoError(t, err)
		assert.Equal(t, "TRANSMAR", resp.Code)
		assert.Equal(t, "5260250995", resp.NIP)
		assert.Equal(t, "526-025-09-95", resp.NIPFormatted)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "biuro@transmar.pl", resp.ContactEmail)

		require.NotNil(t, saved)
		assert.Equal(t, "TRANSMAR", saved.Code)
	})

	t.Run("address applied on create", func(t *testing.T) {
		service, repo := newTestTenantService()

		repo.On("ExistsByCode", ctx, mock.Anything).Return(false, nil)
		repo.On("ExistsByNIP", ctx, mock.Anything).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*tenant.Tenant")).Return(nil)

		address, err := valueobject.NewAddress("ul. Towarowa 5", "Warszawa", valueobject.WithPostalCode("00-811"))
		require.NoError(t, err)

		resp, err := service.Create(ctx, CreateTenantRequest{
			Code:    "TRANSMAR",
			Name:    "Transmar Logistyka Sp. z o.o.",
			NIP:     "5260250995",
			Address: &address,
		})

		require.NoError(t, err)
		assert.Equal(t, "Warszawa", resp.Address.City())
		assert.Equal(t, "00-811", resp.Address.PostalCode())
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		service, repo := newTestTenantService()

		repo.On("ExistsByCode", ctx, "TRANSMAR").Return(true, nil)

		_, err := service.Create(ctx, CreateTenantRequest{
			Code: "TRANSMAR",
			Name: "Transmar Logistyka Sp. z o.o.",
			NIP:  "5260250995",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("nip checksum rejected", func(t *testing.T) {
		service, repo := newTestTenantService()

		_, err := service.Create(ctx, CreateTenantRequest{
			Code: "TRANSMAR",
			Name: "Transmar Logistyka Sp. z o.o.",
			NIP:  "1234567890",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NIP", domainErr.Code)
		repo.AssertNotCalled(t, "ExistsByCode", mock.Anything, mock.Anything)
	})
}

func TestTenantService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default filter", func(t *testing.T) {
		service, repo := newTestTenantService()
		active := createActiveTenant()

		expectedFilter := shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "code",
			OrderDir: "asc",
			Filters:  map[string]interface{}{},
		}
		repo.On("FindAll", ctx, expectedFilter).Return([]tenant.Tenant{*active}, nil)
		repo.On("Count", ctx, expectedFilter).Return(int64(1), nil)

		items, total, err := service.List(ctx, TenantListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "TRANSMAR", items[0].Code)
		assert.Equal(t, "active", items[0].Status)
	})

	t.Run("status filter passed through", func(t *testing.T) {
		service, repo := newTestTenantService()

		filterMatches := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["status"] == "inactive"
		})
		repo.On("FindAll", ctx, filterMatches).Return([]tenant.Tenant{}, nil)
		repo.On("Count", ctx, filterMatches).Return(int64(0), nil)

		_, total, err := service.List(ctx, TenantListFilter{Status: "inactive"})

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		repo.AssertExpectations(t)
	})
}

func TestTenantService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate active tenant", func(t *testing.T) {
		service, repo := newTestTenantService()
		active := createActiveTenant()

		repo.On("FindByID", ctx, active.ID).Return(active, nil)
		repo.On("SaveWithLock", ctx, active).Return(nil)

		resp, err := service.Deactivate(ctx, active.ID)

		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)
	})

	t.Run("already inactive", func(t *testing.T) {
		service, repo := newTestTenantService()
		inactive := createInactiveTenant()

		repo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)

		_, err := service.Deactivate(ctx, inactive.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_INACTIVE", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestTenantService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("reactivate tenant", func(t *testing.T) {
		service, repo := newTestTenantService()
		inactive := createInactiveTenant()

		repo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)
		repo.On("SaveWithLock", ctx, inactive).Return(nil)

		resp, err := service.Activate(ctx, inactive.ID)

		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("already active", func(t *testing.T) {
		service, repo := newTestTenantService()
		active := createActiveTenant()

		repo.On("FindByID", ctx, active.ID).Return(active, nil)

		_, err := service.Activate(ctx, active.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_ACTIVE", domainErr.Code)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestTenantService_RequireActive(t *testing.T) {
	ctx := context.Background()

	t.Run("active tenant passes", func(t *testing.T) {
		service, repo := newTestTenantService()
		active := createActiveTenant()

		repo.On("FindByID", ctx, active.ID).Return(active, nil)

		assert.NoError(t, service.RequireActive(ctx, active.ID))
	})

	t.Run("inactive tenant rejected", func(t *testing.T) {
		service, repo := newTestTenantService()
		inactive := createInactiveTenant()

		repo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)

		err := service.RequireActive(ctx, inactive.ID)

		assert.ErrorIs(t, err, shared.ErrTenantInactive)
	})

	t.Run("unknown tenant rejected", func(t *testing.T) {
		service, repo := newTestTenantService()
		missingID := uuid.New()

		repo.On("FindByID", ctx, missingID).Return(nil, shared.ErrNotFound)

		err := service.RequireActive(ctx, missingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTenantService_ActiveTenantIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("returns active ids", func(t *testing.T) {
		service, repo := newTestTenantService()
		first := createActiveTenant()
		second, _ := tenant.NewTenant("SPEDT", "Sped-Trans SA", valueobject.MustNewNIP("7740001454"))

		repo.On("FindAllActive", ctx).Return([]tenant.Tenant{*first, *second}, nil)

		ids, err := service.ActiveTenantIDs(ctx)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, ids)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		service, repo := newTestTenantService()

		repo.On("FindAllActive", ctx).Return(nil, errors.New("connection refused"))

		_, err := service.ActiveTenantIDs(ctx)

		require.Error(t, err)
	})
}

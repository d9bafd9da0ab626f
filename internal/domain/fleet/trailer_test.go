package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTrailer(t *testing.T) *Trailer {
	t.Helper()
	trailer, err := NewTrailer(uuid.New(), "PO 9876A", TrailerKindCurtain)
	require.NoError(t, err)
	return trailer
}

// ============================================
// TrailerKind Tests
// ============================================

func TestTrailerKind_IsValid(t *testing.T) {
	tests := []struct {
		kind    TrailerKind
		isValid bool
	}{
		{TrailerKindCurtain, true},
		{TrailerKindBox, true},
		{TrailerKindReefer, true},
		{TrailerKindTipper, true},
		{TrailerKind("FLATBED"), false},
		{TrailerKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.kind.IsValid())
		})
	}
}

// ============================================
// NewTrailer Tests
// ============================================

func TestNewTrailer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates trailer with valid inputs", func(t *testing.T) {
		trailer, err := NewTrailer(tenantID, "po 9876a", TrailerKindReefer)
		require.NoError(t, err)
		require.NotNil(t, trailer)

		assert.Equal(t, tenantID, trailer.TenantID)
		assert.Equal(t, "PO 9876A", trailer.RegistrationNumber)
		assert.Equal(t, TrailerKindReefer, trailer.Kind)
		assert.Equal(t, EquipmentStatusAvailable, trailer.Status)

		events := trailer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeTrailerCreated, events[0].EventType())
	})

	t.Run("rejects malformed registration", func(t *testing.T) {
		_, err := NewTrailer(tenantID, "##", TrailerKindBox)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewTrailer(tenantID, "PO 9876A", TrailerKind("FLATBED"))
		assert.Error(t, err)
	})
}

// ============================================
// Mutation Tests
// ============================================

func TestTrailer_Mutations(t *testing.T) {
	t.Run("updates kind", func(t *testing.T) {
		trailer := createTestTrailer(t)

		err := trailer.Update(TrailerKindTipper)
		require.NoError(t, err)
		assert.Equal(t, TrailerKindTipper, trailer.Kind)
		assert.Equal(t, 2, trailer.Version)
	})

	t.Run("sets capacity", func(t *testing.T) {
		trailer := createTestTrailer(t)

		err := trailer.SetCapacity(decimal.NewFromInt(27000))
		require.NoError(t, err)
		assert.True(t, trailer.CapacityKg.Equal(decimal.NewFromInt(27000)))

		assert.Error(t, trailer.SetCapacity(decimal.NewFromInt(-500)))
	})

	t.Run("status change publishes event", func(t *testing.T) {
		trailer := createTestTrailer(t)
		trailer.ClearDomainEvents()

		err := trailer.SetStatus(EquipmentStatusOutOfService)
		require.NoError(t, err)
		assert.False(t, trailer.IsAvailable())

		events := trailer.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*TrailerStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, EquipmentStatusAvailable, event.OldStatus)
		assert.Equal(t, EquipmentStatusOutOfService, event.NewStatus)
	})
}

// ============================================
// Document Tests
// ============================================

func TestTrailer_ExpiringDocuments(t *testing.T) {
	ref := day(2026, time.March, 1)

	trailer := createTestTrailer(t)
	trailer.SetDocumentDates(day(2026, time.March, 15), day(2026, time.March, 29))

	docs := trailer.ExpiringDocuments(ref, 30)
	require.Len(t, docs, 2)

	assert.Equal(t, ResourceTrailer, docs[0].ResourceType)
	assert.Equal(t, "PO 9876A", docs[0].ResourceLabel)
	assert.Equal(t, DocumentInspection, docs[0].Document)
	assert.Equal(t, 14, docs[0].DaysLeft)

	assert.Equal(t, DocumentInsurance, docs[1].Document)
	assert.Equal(t, 28, docs[1].DaysLeft)
}

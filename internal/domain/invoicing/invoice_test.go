package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// Test helpers
func testBuyer(t *testing.T) Buyer {
	t.Helper()
	address, err := valueobject.NewAddress("ul. Przemyslowa 12", "Poznan", valueobject.WithPostalCode("61-579"))
	require.NoError(t, err)
	return Buyer{
		ContractorID: uuid.New(),
		Name:         "Trans-Pol Logistyka Sp. z o.o.",
		NIP:          "7740001454",
		Address:      address,
	}
}

func createTestInvoice(t *testing.T, currency valueobject.Currency) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), testBuyer(t), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), currency)
	require.NoError(t, err)
	return inv
}

func createIssuedInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv := createTestInvoice(t, valueobject.PLN)
	_, err := inv.AddLine("Fracht Warszawa-Gdansk", decimal.NewFromInt(1), decimal.NewFromInt(2500), VATRate23)
	require.NoError(t, err)
	require.NoError(t, inv.Issue("FV/2026/01/0001", inv.Buyer, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 14))
	return inv
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusIssued, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusCancelled, true},
		{InvoiceStatus("INVALID"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     InvoiceStatus
		to       InvoiceStatus
		canTrans bool
	}{
		// From DRAFT
		{InvoiceStatusDraft, InvoiceStatusIssued, true},
		{InvoiceStatusDraft, InvoiceStatusCancelled, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		// From ISSUED
		{InvoiceStatusIssued, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusCancelled, true},
		{InvoiceStatusIssued, InvoiceStatusDraft, false},
		// From PAID (terminal)
		{InvoiceStatusPaid, InvoiceStatusDraft, false},
		{InvoiceStatusPaid, InvoiceStatusIssued, false},
		{InvoiceStatusPaid, InvoiceStatusCancelled, false},
		// From CANCELLED (terminal)
		{InvoiceStatusCancelled, InvoiceStatusDraft, false},
		{InvoiceStatusCancelled, InvoiceStatusIssued, false},
		{InvoiceStatusCancelled, InvoiceStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// NewInvoice Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft with valid inputs", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, KSeFNotSubmitted, inv.KSeFStatus)
		assert.Equal(t, valueobject.PLN, inv.Currency)
		assert.Empty(t, inv.Lines)
		assert.Empty(t, inv.InvoiceNumber)
		assert.True(t, inv.TotalNet.IsZero())
		assert.True(t, inv.TotalVAT.IsZero())
		assert.True(t, inv.TotalGross.IsZero())
		assert.Nil(t, inv.TotalGrossPLN)
		assert.Nil(t, inv.IssueDate)
		assert.Nil(t, inv.DueDate)
	})

	t.Run("publishes InvoiceCreated event", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())

		event, ok := events[0].(*InvoiceCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, inv.ID, event.InvoiceID)
		assert.Equal(t, inv.Buyer.ContractorID, event.ContractorID)
	})

	t.Run("rejects empty contractor", func(t *testing.T) {
		buyer := testBuyer(t)
		buyer.ContractorID = uuid.Nil
		_, err := NewInvoice(uuid.New(), buyer, time.Now(), valueobject.PLN)
		assert.Error(t, err)
	})

	t.Run("rejects empty contractor name", func(t *testing.T) {
		buyer := testBuyer(t)
		buyer.Name = ""
		_, err := NewInvoice(uuid.New(), buyer, time.Now(), valueobject.PLN)
		assert.Error(t, err)
	})

	t.Run("rejects zero sale date", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), testBuyer(t), time.Time{}, valueobject.PLN)
		assert.Error(t, err)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), testBuyer(t), time.Now(), valueobject.Currency("XYZ"))
		assert.Error(t, err)
	})
}

// ============================================
// Line Management Tests
// ============================================

func TestInvoice_AddLine(t *testing.T) {
	t.Run("adds line and recalculates totals", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		line, err := inv.AddLine("Fracht Warszawa-Gdansk", decimal.NewFromInt(10), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)
		require.NotNil(t, line)

		assert.Len(t, inv.Lines, 1)
		assert.True(t, inv.TotalNet.Equal(decimal.NewFromInt(1000)))
		assert.True(t, inv.TotalVAT.Equal(decimal.NewFromInt(230)))
		assert.True(t, inv.TotalGross.Equal(decimal.NewFromInt(1230)))
	})

	t.Run("accumulates totals over lines", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		_, err := inv.AddLine("Fracht", decimal.NewFromInt(10), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)
		_, err = inv.AddLine("Uslugi zwolnione", decimal.NewFromInt(2), decimal.NewFromInt(50), VATRateExempt)
		require.NoError(t, err)

		assert.True(t, inv.TotalNet.Equal(decimal.NewFromInt(1100)))
		assert.True(t, inv.TotalVAT.Equal(decimal.NewFromInt(230)))
		assert.True(t, inv.TotalGross.Equal(decimal.NewFromInt(1330)))
	})

	t.Run("rejects invalid line", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		_, err := inv.AddLine("", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		assert.Error(t, err)
		assert.Empty(t, inv.Lines)
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

func TestInvoice_RemoveLine(t *testing.T) {
	t.Run("removes line and recalculates totals", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		line, err := inv.AddLine("Fracht", decimal.NewFromInt(10), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)
		lineID := line.ID

		err = inv.RemoveLine(lineID)
		require.NoError(t, err)

		assert.Empty(t, inv.Lines)
		assert.True(t, inv.TotalGross.IsZero())
	})

	t.Run("errors on unknown line", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.RemoveLine(uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.RemoveLine(inv.Lines[0].ID)
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

func TestInvoice_ReplaceLines(t *testing.T) {
	t.Run("swaps all lines", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Stara pozycja", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)

		replacement := []Line{
			mustLine(t, "Nowa pozycja", "2", "300", VATRate8),
		}
		err = inv.ReplaceLines(replacement)
		require.NoError(t, err)

		require.Len(t, inv.Lines, 1)
		assert.Equal(t, "Nowa pozycja", inv.Lines[0].Description)
		assert.True(t, inv.TotalNet.Equal(decimal.NewFromInt(600)))
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.ReplaceLines(nil)
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

// ============================================
// Exchange Rate Tests
// ============================================

func TestInvoice_AttachExchangeRate(t *testing.T) {
	t.Run("sets rate and PLN equivalent", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		_, err := inv.AddLine("Fracht Berlin", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)

		err = inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25"))
		require.NoError(t, err)

		require.NotNil(t, inv.ExchangeRate)
		require.NotNil(t, inv.TotalGrossPLN)
		assert.True(t, inv.TotalGrossPLN.Equal(decimal.NewFromInt(4250)), "got %s", inv.TotalGrossPLN)
	})

	t.Run("PLN equivalent tracks later line changes", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		err := inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4"))
		require.NoError(t, err)

		_, err = inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(500), VATRate0)
		require.NoError(t, err)

		require.NotNil(t, inv.TotalGrossPLN)
		assert.True(t, inv.TotalGrossPLN.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("rejects for PLN invoices", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25"))
		assert.Error(t, err)
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)

		err := inv.AttachExchangeRate(testRate(t, valueobject.USD, "3.95"))
		assert.Error(t, err)
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25"))
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

func TestInvoice_RescaleToTargetPLN(t *testing.T) {
	t.Run("rescales lines to approximate target", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		_, err := inv.AddLine("Fracht Berlin", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)
		require.NoError(t, inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25")))

		err = inv.RescaleToTargetPLN(decimal.NewFromInt(5000))
		require.NoError(t, err)

		assert.True(t, inv.Lines[0].UnitPriceNet.Equal(decimal.RequireFromString("1176.47")), "got %s", inv.Lines[0].UnitPriceNet)
		require.NotNil(t, inv.TotalGrossPLN)

		delta := inv.TotalGrossPLN.Sub(decimal.NewFromInt(5000)).Abs()
		assert.True(t, delta.LessThanOrEqual(decimal.RequireFromString("0.0425")), "delta %s", delta)
	})

	t.Run("requires an exchange rate", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)

		err = inv.RescaleToTargetPLN(decimal.NewFromInt(5000))
		assert.ErrorIs(t, err, shared.ErrExchangeRateRequired)
	})

	t.Run("rejects for PLN invoices", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)

		err = inv.RescaleToTargetPLN(decimal.NewFromInt(5000))
		assert.ErrorIs(t, err, shared.ErrExchangeRateRequired)
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)
		require.NoError(t, inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25")))

		err = inv.RescaleToTargetPLN(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("propagates not computable for zero gross", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		require.NoError(t, inv.AttachExchangeRate(testRate(t, valueobject.EUR, "4.25")))

		err := inv.RescaleToTargetPLN(decimal.NewFromInt(5000))
		assert.ErrorIs(t, err, shared.ErrRescaleNotComputable)
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.RescaleToTargetPLN(decimal.NewFromInt(5000))
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

// ============================================
// Issue Tests
// ============================================

func TestInvoice_Issue(t *testing.T) {
	issueDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	t.Run("issues draft with lines", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(2500), VATRate23)
		require.NoError(t, err)
		inv.ClearDomainEvents()

		err = inv.Issue("FV/2026/01/0001", inv.Buyer, issueDate, 14)
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.Equal(t, "FV/2026/01/0001", inv.InvoiceNumber)
		require.NotNil(t, inv.IssueDate)
		assert.Equal(t, issueDate, *inv.IssueDate)
		require.NotNil(t, inv.DueDate)
		assert.Equal(t, issueDate.AddDate(0, 0, 14), *inv.DueDate)
	})

	t.Run("publishes InvoiceIssued event", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(2500), VATRate23)
		require.NoError(t, err)
		inv.ClearDomainEvents()

		require.NoError(t, inv.Issue("FV/2026/01/0001", inv.Buyer, issueDate, 14))

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceIssued, events[0].EventType())

		event, ok := events[0].(*InvoiceIssuedEvent)
		require.True(t, ok)
		assert.Equal(t, "FV/2026/01/0001", event.InvoiceNumber)
		assert.True(t, event.TotalGross.Equal(decimal.NewFromInt(3075)))
	})

	t.Run("freezes buyer snapshot", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)

		snapshot := inv.Buyer
		snapshot.Name = "Nazwa w dniu wystawienia S.A."
		require.NoError(t, inv.Issue("FV/2026/01/0002", snapshot, issueDate, 14))

		assert.Equal(t, "Nazwa w dniu wystawienia S.A.", inv.Buyer.Name)
	})

	t.Run("rejects empty invoice", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.Issue("FV/2026/01/0001", inv.Buyer, issueDate, 14)
		assert.Error(t, err)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)

		err = inv.Issue("", inv.Buyer, issueDate, 14)
		assert.Error(t, err)
	})

	t.Run("rejects foreign currency without rate", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.EUR)
		_, err := inv.AddLine("Fracht Berlin", decimal.NewFromInt(1), decimal.NewFromInt(1000), VATRate0)
		require.NoError(t, err)

		err = inv.Issue("FV/2026/01/0003", inv.Buyer, issueDate, 14)
		assert.ErrorIs(t, err, shared.ErrExchangeRateRequired)
	})

	t.Run("rejects negative payment term", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		_, err := inv.AddLine("Fracht", decimal.NewFromInt(1), decimal.NewFromInt(100), VATRate23)
		require.NoError(t, err)

		err = inv.Issue("FV/2026/01/0004", inv.Buyer, issueDate, -1)
		assert.Error(t, err)
	})

	t.Run("rejects double issue", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.Issue("FV/2026/01/0099", inv.Buyer, issueDate, 14)
		assert.Error(t, err)
	})
}

// ============================================
// Payment and Cancellation Tests
// ============================================

func TestInvoice_MarkPaid(t *testing.T) {
	t.Run("marks issued invoice paid", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		inv.ClearDomainEvents()
		paidAt := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)

		err := inv.MarkPaid(paidAt)
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaidAt)
		assert.Equal(t, paidAt, *inv.PaidAt)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())
	})

	t.Run("rejects draft", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.MarkPaid(time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects double payment", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		require.NoError(t, inv.MarkPaid(time.Now()))

		err := inv.MarkPaid(time.Now())
		assert.Error(t, err)
	})
}

func TestInvoice_Cancel(t *testing.T) {
	t.Run("cancels draft", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		inv.ClearDomainEvents()

		err := inv.Cancel("bledne dane nabywcy")
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.Equal(t, "bledne dane nabywcy", inv.CancelReason)
		assert.NotNil(t, inv.CancelledAt)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCancelled, events[0].EventType())
	})

	t.Run("cancels issued", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.Cancel("korekta")
		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
	})

	t.Run("rejects paid", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		require.NoError(t, inv.MarkPaid(time.Now()))

		err := inv.Cancel("zbyt pozno")
		assert.Error(t, err)
	})
}

// ============================================
// KSeF Tests
// ============================================

func TestInvoice_KSeF(t *testing.T) {
	t.Run("marks pending after submission", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		inv.ClearDomainEvents()

		err := inv.MarkKSeFPending("KSEF-2026-XYZ-001")
		require.NoError(t, err)

		assert.Equal(t, KSeFPending, inv.KSeFStatus)
		assert.Equal(t, "KSEF-2026-XYZ-001", inv.KSeFReference)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceSubmittedToKSeF, events[0].EventType())
	})

	t.Run("rejects submission of draft", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.MarkKSeFPending("KSEF-REF")
		assert.Error(t, err)
	})

	t.Run("rejects double submission", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		require.NoError(t, inv.MarkKSeFPending("KSEF-REF-1"))

		err := inv.MarkKSeFPending("KSEF-REF-2")
		assert.Error(t, err)
	})

	t.Run("allows resubmission after rejection", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		require.NoError(t, inv.MarkKSeFPending("KSEF-REF-1"))
		require.NoError(t, inv.ApplyKSeFStatus(KSeFRejected))

		err := inv.MarkKSeFPending("KSEF-REF-2")
		require.NoError(t, err)
		assert.Equal(t, KSeFPending, inv.KSeFStatus)
		assert.Equal(t, "KSEF-REF-2", inv.KSeFReference)
	})

	t.Run("records acceptance", func(t *testing.T) {
		inv := createIssuedInvoice(t)
		require.NoError(t, inv.MarkKSeFPending("KSEF-REF"))

		err := inv.ApplyKSeFStatus(KSeFAccepted)
		require.NoError(t, err)
		assert.Equal(t, KSeFAccepted, inv.KSeFStatus)
		assert.True(t, inv.KSeFStatus.IsTerminal())
	})

	t.Run("rejects status before submission", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.ApplyKSeFStatus(KSeFAccepted)
		assert.Error(t, err)
	})
}

// ============================================
// Overdue Tests
// ============================================

func TestInvoice_IsOverdue(t *testing.T) {
	inv := createIssuedInvoice(t)
	// issued 2026-01-20, 14 day term, due 2026-02-03

	t.Run("not overdue before due date", func(t *testing.T) {
		assert.False(t, inv.IsOverdue(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("not overdue on due date", func(t *testing.T) {
		assert.False(t, inv.IsOverdue(time.Date(2026, 2, 3, 23, 0, 0, 0, time.UTC)))
	})

	t.Run("overdue after due date", func(t *testing.T) {
		ref := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
		assert.True(t, inv.IsOverdue(ref))
		assert.Equal(t, 7, inv.DaysOverdue(ref))
	})

	t.Run("paid invoice is never overdue", func(t *testing.T) {
		paid := createIssuedInvoice(t)
		require.NoError(t, paid.MarkPaid(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)))

		assert.False(t, paid.IsOverdue(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 0, paid.DaysOverdue(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("draft is never overdue", func(t *testing.T) {
		draft := createTestInvoice(t, valueobject.PLN)
		assert.False(t, draft.IsOverdue(time.Now().AddDate(1, 0, 0)))
	})
}

// ============================================
// LinkOrder Tests
// ============================================

func TestInvoice_LinkOrder(t *testing.T) {
	t.Run("links draft to an order", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)
		orderID := uuid.New()

		err := inv.LinkOrder(orderID)
		require.NoError(t, err)

		require.NotNil(t, inv.OrderID)
		assert.Equal(t, orderID, *inv.OrderID)
	})

	t.Run("rejects nil order", func(t *testing.T) {
		inv := createTestInvoice(t, valueobject.PLN)

		err := inv.LinkOrder(uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects when not draft", func(t *testing.T) {
		inv := createIssuedInvoice(t)

		err := inv.LinkOrder(uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvoiceNotDraft)
	})
}

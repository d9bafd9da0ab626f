package invoicing

import (
	"context"
)

// KSeFStatus tracks the invoice's progress through the national
// e-invoicing system. The wire protocol lives behind the Gateway port;
// the domain only records the submission state machine.
type KSeFStatus string

const (
	KSeFNotSubmitted KSeFStatus = "NOT_SUBMITTED"
	KSeFPending      KSeFStatus = "PENDING"
	KSeFAccepted     KSeFStatus = "ACCEPTED"
	KSeFRejected     KSeFStatus = "REJECTED"
)

// IsValid checks if the status is valid
func (s KSeFStatus) IsValid() bool {
	switch s {
	case KSeFNotSubmitted, KSeFPending, KSeFAccepted, KSeFRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the submission reached a final state
func (s KSeFStatus) IsTerminal() bool {
	return s == KSeFAccepted || s == KSeFRejected
}

// KSeFSubmission is the gateway's view of a submitted invoice
type KSeFSubmission struct {
	ReferenceNumber string
	Status          KSeFStatus
	Message         string
}

// KSeFGateway is the port to the external e-invoicing bridge. Submission
// is a single attempt; transport failures surface as plain errors to the
// caller.
type KSeFGateway interface {
	// Submit sends an issued invoice and returns the gateway reference number
	Submit(ctx context.Context, invoice *Invoice) (string, error)

	// Status fetches the current processing state for a reference number
	Status(ctx context.Context, referenceNumber string) (KSeFSubmission, error)
}

package partner

import (
	"context"

	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// CompanyLookup resolves company identification data from the state
// REGON registry by NIP. The infrastructure client behind it talks to
// the GUS API and normalizes the upper-cased registry names; callers
// only see a record or an error.
type CompanyLookup interface {
	// Lookup returns the registry record for a NIP
	Lookup(ctx context.Context, nip valueobject.NIP) (CompanyRecord, error)
}

// CompanyRecord is the registry view of a company
type CompanyRecord struct {
	Name       string `json:"name"`
	NIP        string `json:"nip"`
	REGON      string `json:"regon"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

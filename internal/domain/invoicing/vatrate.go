package invoicing

import (
	"github.com/shopspring/decimal"
)

// VATRate is a Polish VAT rate in percent. The sentinel value -1 means
// the position is exempt ("zw."): it computes as 0% but is preserved
// as -1 in storage and over the wire so invoices can display the
// exemption marker.
type VATRate int

const (
	VATRate23     VATRate = 23
	VATRate8      VATRate = 8
	VATRate5      VATRate = 5
	VATRate0      VATRate = 0
	VATRateExempt VATRate = -1
)

// IsValid checks if the rate is one of the allowed values
func (r VATRate) IsValid() bool {
	switch r {
	case VATRate23, VATRate8, VATRate5, VATRate0, VATRateExempt:
		return true
	}
	return false
}

// IsExempt returns true for the "zw." sentinel
func (r VATRate) IsExempt() bool {
	return r == VATRateExempt
}

// Percent returns the rate used in computation. Exempt positions
// compute as zero.
func (r VATRate) Percent() decimal.Decimal {
	if r.IsExempt() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(r))
}

// Label returns the display form used on invoice printouts
func (r VATRate) Label() string {
	if r.IsExempt() {
		return "zw."
	}
	return r.Percent().String() + "%"
}

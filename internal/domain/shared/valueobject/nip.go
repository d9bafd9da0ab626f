package valueobject

import (
	"fmt"
	"strings"
)

// nipWeights are the checksum weights for the 10-digit Polish tax
// identifier (NIP).
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// NIP is a validated Polish tax identification number.
type NIP string

// NewNIP normalizes and validates a NIP. Separators ("-", " ") and a
// leading "PL" prefix are stripped before validation.
func NewNIP(raw string) (NIP, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "PL")
	s = strings.NewReplacer("-", "", " ", "").Replace(s)

	if len(s) != 10 {
		return "", fmt.Errorf("NIP must have 10 digits, got %d", len(s))
	}
	digits := make([]int, 10)
	for i, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("NIP must contain only digits")
		}
		digits[i] = int(r - '0')
	}

	sum := 0
	for i, w := range nipWeights {
		sum += digits[i] * w
	}
	control := sum % 11
	if control == 10 || control != digits[9] {
		return "", fmt.Errorf("invalid NIP checksum")
	}

	return NIP(s), nil
}

// MustNewNIP validates a NIP, panics on error
func MustNewNIP(raw string) NIP {
	n, err := NewNIP(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the bare 10-digit form
func (n NIP) String() string {
	return string(n)
}

// IsEmpty reports whether the NIP is unset
func (n NIP) IsEmpty() bool {
	return n == ""
}

// Formatted returns the conventional XXX-XXX-XX-XX display form
func (n NIP) Formatted() string {
	s := string(n)
	if len(s) != 10 {
		return s
	}
	return s[0:3] + "-" + s[3:6] + "-" + s[6:8] + "-" + s[8:10]
}

// IsValidNIP reports whether the raw string is a well-formed NIP.
func IsValidNIP(raw string) bool {
	_, err := NewNIP(raw)
	return err == nil
}

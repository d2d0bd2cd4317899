package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Identifier prefixes used across the ledger sheets.
const (
	CustomerIDPrefix = "CUST"
	OrderIDPrefix    = "ORD"
	PaymentIDPrefix  = "PAY"
	InvoiceIDPrefix  = "INV"
)

// NewID mints a prefixed, human-scannable identifier, e.g. "ORD-9F3A21C7".
// The random part is the first segment of a v4 UUID, uppercased.
func NewID(prefix string) string {
	segment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return prefix + "-" + strings.ToUpper(segment)
}

// ReferenceID derives a payment identifier from a gateway transaction
// reference, using its trailing characters. Not globally collision-free, but
// stable for a given reference so a re-verified transaction logs under the
// same identifier.
func ReferenceID(prefix, reference string) string {
	tail := reference
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return prefix + "-" + strings.ToUpper(tail)
}

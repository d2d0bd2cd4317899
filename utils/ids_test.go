package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID(OrderIDPrefix)

	assert.True(t, strings.HasPrefix(id, "ORD-"))
	random := strings.TrimPrefix(id, "ORD-")
	assert.Len(t, random, 8)
	assert.Equal(t, strings.ToUpper(random), random)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID(PaymentIDPrefix)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestReferenceID(t *testing.T) {
	assert.Equal(t, "PAY-3C4D5E", ReferenceID(PaymentIDPrefix, "trx_1a2b3c4d5e"))
	assert.Equal(t, "PAY-ABC", ReferenceID(PaymentIDPrefix, "abc"))
	assert.Equal(t, "PAY-", ReferenceID(PaymentIDPrefix, ""))

	// Stable: re-verifying the same reference yields the same identifier.
	assert.Equal(t,
		ReferenceID(PaymentIDPrefix, "trx_1a2b3c4d5e"),
		ReferenceID(PaymentIDPrefix, "trx_1a2b3c4d5e"))
}

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCustomer_CreatesNewCustomer(t *testing.T) {
	store := NewMockTabularStore()
	svc := NewCustomerService(store, testLogger())

	customerID, created, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "123", "Lagos")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.True(t, strings.HasPrefix(customerID, "CUST-"))
	assert.Equal(t, 1, store.RowCount(SheetCustomers))
}

func TestResolveCustomer_DeduplicatesByEmail(t *testing.T) {
	store := NewMockTabularStore()
	svc := NewCustomerService(store, testLogger())

	first, _, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "123", "Lagos")
	assert.NoError(t, err)

	// Same email, different name, phone and address: must resolve to the
	// existing customer and leave its row untouched.
	second, created, err := svc.ResolveCustomer(context.Background(), "Ada Lovelace", "a@x.com", "999", "Abuja")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.RowCount(SheetCustomers))
}

func TestResolveCustomer_DeduplicatesByPhone(t *testing.T) {
	store := NewMockTabularStore()
	svc := NewCustomerService(store, testLogger())

	first, _, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "123", "Lagos")
	assert.NoError(t, err)

	second, created, err := svc.ResolveCustomer(context.Background(), "Ada", "different@x.com", "123", "Lagos")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
}

func TestResolveCustomer_EmailTakesPrecedenceOverPhone(t *testing.T) {
	store := NewMockTabularStore()
	svc := NewCustomerService(store, testLogger())

	byEmail, _, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "111", "Lagos")
	assert.NoError(t, err)
	byPhone, _, err := svc.ResolveCustomer(context.Background(), "Grace", "g@x.com", "222", "Lagos")
	assert.NoError(t, err)

	// Input matches the first customer's email and the second customer's
	// phone; the email match must win.
	resolved, created, err := svc.ResolveCustomer(context.Background(), "Who", "a@x.com", "222", "Lagos")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, byEmail, resolved)
	assert.NotEqual(t, byPhone, resolved)
}

func TestResolveCustomer_DistinctContactsGetDistinctIDs(t *testing.T) {
	store := NewMockTabularStore()
	svc := NewCustomerService(store, testLogger())

	first, _, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "111", "Lagos")
	assert.NoError(t, err)
	second, created, err := svc.ResolveCustomer(context.Background(), "Grace", "g@x.com", "222", "Abuja")
	assert.NoError(t, err)

	assert.True(t, created)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.RowCount(SheetCustomers))
}

func TestResolveCustomer_StoreFailurePropagates(t *testing.T) {
	store := NewMockTabularStore()
	store.FailNext = "read"
	svc := NewCustomerService(store, testLogger())

	_, _, err := svc.ResolveCustomer(context.Background(), "Ada", "a@x.com", "123", "Lagos")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 0, store.RowCount(SheetCustomers))
}

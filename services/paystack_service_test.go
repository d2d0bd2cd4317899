package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPaystackService(serverURL string) *PaystackService {
	return &PaystackService{
		baseURL:    serverURL,
		secretKey:  "sk_test_secret",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     testLogger(),
	}
}

func TestVerifyTransaction_Success(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "ref_abc123",
				"amount": 300000,
				"channel": "card",
				"customer": {
					"first_name": "Ada",
					"last_name": "Lovelace",
					"email": "a@x.com"
				}
			}
		}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	tx, err := svc.VerifyTransaction(context.Background(), "ref_abc123")

	assert.NoError(t, err)
	assert.Equal(t, "/transaction/verify/ref_abc123", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "ref_abc123", tx.Reference)
	// 300000 kobo is 3000 naira.
	assert.Equal(t, float64(3000), tx.Amount)
	assert.Equal(t, "card", tx.Channel)
	assert.Equal(t, "Ada Lovelace", tx.PayerName)
	assert.Equal(t, "a@x.com", tx.Email)
}

func TestVerifyTransaction_MissingCustomerNameFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": true,
			"data": {"status": "success", "reference": "ref_1", "amount": 100, "channel": "bank", "customer": {}}
		}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	tx, err := svc.VerifyTransaction(context.Background(), "ref_1")

	assert.NoError(t, err)
	assert.Equal(t, "N/A", tx.PayerName)
}

func TestVerifyTransaction_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": true,
			"message": "Transaction declined",
			"data": {"status": "failed", "reference": "ref_bad"}
		}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyTransaction(context.Background(), "ref_bad")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyTransaction_ReferenceNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyTransaction(context.Background(), "ref_missing")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyTransaction_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyTransaction(context.Background(), "ref_abc")

	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyTransaction_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status": false, "message": "server error"}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyTransaction(context.Background(), "ref_abc")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "paystack", upstreamErr.Service)
}

func TestVerifyTransaction_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyTransaction(context.Background(), "ref_abc")

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

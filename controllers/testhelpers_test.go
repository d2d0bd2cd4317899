package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testMocks bundles the mocked external services a controller test runs
// against.
type testMocks struct {
	store     *services.MockTabularStore
	documents *services.MockDocumentStore
	mail      *services.MockMailService
	workspace *services.MockWorkspaceLog
	gateway   *fakeGateway
}

type fakeGateway struct {
	tx  *services.GatewayTransaction
	err error
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*services.GatewayTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

// setupTestRouter installs fresh mocks behind the service accessors and
// returns a router with the API routes registered, auth left out.
func setupTestRouter(t *testing.T) (*gin.Engine, *testMocks) {
	t.Helper()

	mocks := &testMocks{
		store:     services.NewMockTabularStore(),
		documents: services.NewMockDocumentStore(),
		mail:      services.NewMockMailService(),
		workspace: services.NewMockWorkspaceLog(),
		gateway:   &fakeGateway{},
	}
	mocks.store.SetAsMockForTesting()
	mocks.documents.SetAsMockForTesting()
	mocks.mail.SetAsMockForTesting()
	mocks.workspace.SetAsMockForTesting()
	services.SetPaystackService(mocks.gateway)

	Init(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/orders", CreateOrder)
		api.GET("/orders/:id", GetOrder)
		api.POST("/payments", RecordPayment)
		api.POST("/payments/verify", VerifyPayment)
		api.POST("/invoices", GenerateInvoice)
		api.GET("/invoices/:id/link", GetInvoiceLink)
		api.POST("/messages", SendMessage)
		api.GET("/activity", GetActivity)
		api.POST("/reconcile", RunReconciliation)
	}
	return router, mocks
}

// performRequest issues a request against the router and returns the recorder.
func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into a generic envelope map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

// errorCode digs the error code out of the envelope.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("Response has no error object: %s", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

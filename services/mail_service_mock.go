package services

import (
	"context"
	"fmt"
	"sync"
)

// SentMail records one delivery attempt made through the mock.
type SentMail struct {
	To        string
	Subject   string
	OrderID   string
	InvoiceID string
	PDFBytes  int
}

// MockMailService is a mock implementation of MailInterface for testing.
type MockMailService struct {
	sent []SentMail
	mu   sync.RWMutex

	// FailNext makes the next send fail once.
	FailNext bool
}

// NewMockMailService creates a new mock mail service.
func NewMockMailService() *MockMailService {
	return &MockMailService{}
}

// SetAsMockForTesting sets this mock as the global mail service instance.
func (m *MockMailService) SetAsMockForTesting() {
	SetMailService(m)
}

// SendInvoiceEmail records the invoice delivery attempt.
func (m *MockMailService) SendInvoiceEmail(ctx context.Context, to, customerName, invoiceID, orderID string, pdf []byte) error {
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{
		To:        to,
		Subject:   fmt.Sprintf("Your Invoice - %s", invoiceID),
		OrderID:   orderID,
		InvoiceID: invoiceID,
		PDFBytes:  len(pdf),
	})
	m.mu.Unlock()
	return nil
}

// SendContactMessage records the contact delivery attempt.
func (m *MockMailService) SendContactMessage(ctx context.Context, fromName, fromEmail, message string) error {
	if err := m.maybeFail(); err != nil {
		return err
	}
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{
		To:      "sales-inbox",
		Subject: fmt.Sprintf("New message from %s", fromName),
	})
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of the recorded deliveries.
func (m *MockMailService) Sent() []SentMail {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]SentMail(nil), m.sent...)
}

func (m *MockMailService) maybeFail() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return upstream("mail", fmt.Errorf("injected send failure"))
	}
	return nil
}

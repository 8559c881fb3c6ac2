package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
)

// MockBillingSource is a mock implementation of port.BillingSource.
type MockBillingSource struct {
	mock.Mock
}

func (m *MockBillingSource) FetchInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.InvoiceSnapshot, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSnapshot), args.Error(1)
}

func (m *MockBillingSource) ListInvoicesCreatedSince(ctx context.Context, since time.Time) ([]domain.InvoiceSnapshot, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSnapshot), args.Error(1)
}

func (m *MockBillingSource) FetchDocumentBinary(ctx context.Context, sourceID string, kind domain.DocumentKind) ([]byte, error) {
	args := m.Called(ctx, sourceID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

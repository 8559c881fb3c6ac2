package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
)

// MockDocumentVault is a mock implementation of port.DocumentVault.
type MockDocumentVault struct {
	mock.Mock
}

func (m *MockDocumentVault) EnsureFolder(invoiceNumber string) (string, error) {
	args := m.Called(invoiceNumber)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentVault) Save(invoiceNumber string, kind domain.DocumentKind, data []byte) (string, error) {
	args := m.Called(invoiceNumber, kind, data)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentVault) Read(relativePath string) ([]byte, error) {
	args := m.Called(relativePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentVault) Exists(relativePath string) bool {
	args := m.Called(relativePath)
	return args.Bool(0)
}

func (m *MockDocumentVault) DeleteInvoiceFolder(invoiceNumber string) error {
	args := m.Called(invoiceNumber)
	return args.Error(0)
}

func (m *MockDocumentVault) ListInvoiceFiles(invoiceNumber string) ([]domain.StoredFileInfo, error) {
	args := m.Called(invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredFileInfo), args.Error(1)
}

func (m *MockDocumentVault) CapacityStats() (*domain.CapacityStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacityStats), args.Error(1)
}

func (m *MockDocumentVault) UsageBreakdown(ctx context.Context) (*domain.UsageBreakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageBreakdown), args.Error(1)
}

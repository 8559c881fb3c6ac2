package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
)

// MockAuditLogRepo is a mock implementation of port.AuditLogRepository.
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepo) ListByInvoiceRef(ctx context.Context, invoiceRef string, offset, limit int) ([]domain.AuditEntry, int, error) {
	args := m.Called(ctx, invoiceRef, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Int(1), args.Error(2)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendApprovalNotification(ctx context.Context, toEmail, invoiceNumber string) error {
	args := m.Called(ctx, toEmail, invoiceNumber)
	return args.Error(0)
}

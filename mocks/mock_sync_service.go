package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
	"alazab/internal/service"
)

// MockSyncService is a mock implementation of service.SyncService.
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncOne(ctx context.Context, invoiceNumber string, force bool, actor *service.Actor) (*domain.SyncResult, error) {
	args := m.Called(ctx, invoiceNumber, force, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncResult), args.Error(1)
}

func (m *MockSyncService) SyncAllNewSince(ctx context.Context, since time.Time, actor *service.Actor) (*domain.BatchSyncResult, error) {
	args := m.Called(ctx, since, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchSyncResult), args.Error(1)
}

func (m *MockSyncService) StorageStatus(ctx context.Context) (*domain.StorageStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageStatus), args.Error(1)
}

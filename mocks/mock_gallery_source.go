package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
)

// MockGallerySource is a mock implementation of port.GallerySource.
type MockGallerySource struct {
	mock.Mock
}

func (m *MockGallerySource) FetchProjectImages(ctx context.Context, sourceProjectID string) ([]domain.GalleryImage, error) {
	args := m.Called(ctx, sourceProjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GalleryImage), args.Error(1)
}

package port

import (
	"context"

	"alazab/internal/domain"
)

// GallerySource abstracts the floor-plan service project imagery is
// pulled from. Failures are reported as domain.ErrGallerySourceFailed.
type GallerySource interface {
	FetchProjectImages(ctx context.Context, sourceProjectID string) ([]domain.GalleryImage, error)
}

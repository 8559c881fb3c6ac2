package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
	"alazab/internal/service"
	"alazab/mocks"
)

func TestProjectService_Create_DefaultsToActive(t *testing.T) {
	projectRepo := new(mocks.MockProjectRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := service.NewProjectService(projectRepo, nil, auditRepo)

	projectRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Status == "active" && string(p.Gallery) == "[]"
	})).Return(nil)

	project, err := svc.Create(context.Background(), service.CreateProjectInput{
		Name: "New Cairo Mall Extension",
	})

	assert.NoError(t, err)
	assert.Equal(t, "active", project.Status)
	projectRepo.AssertExpectations(t)
}

func TestProjectService_SyncGallery_StoresFetchedImages(t *testing.T) {
	projectRepo := new(mocks.MockProjectRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	gallery := new(mocks.MockGallerySource)
	svc := service.NewProjectService(projectRepo, gallery, auditRepo)

	id := uuid.New()
	projectRepo.On("GetByID", mock.Anything, id).
		Return(&domain.Project{ID: id, MagicplanID: "mp-5f2b9c"}, nil)
	// The external lookup uses the stored magicplan id, not the local one.
	gallery.On("FetchProjectImages", mock.Anything, "mp-5f2b9c").Return([]domain.GalleryImage{
		{ID: "img-1", Name: "ground-floor.png", Kind: "plan"},
	}, nil)
	projectRepo.On("UpdateGallery", mock.Anything, id, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	images, err := svc.SyncGallery(context.Background(), id, nil)

	assert.NoError(t, err)
	assert.Len(t, images, 1)
	projectRepo.AssertExpectations(t)
	gallery.AssertExpectations(t)
}

func TestProjectService_SyncGallery_NoSourceConfigured(t *testing.T) {
	projectRepo := new(mocks.MockProjectRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := service.NewProjectService(projectRepo, nil, auditRepo)

	images, err := svc.SyncGallery(context.Background(), uuid.New(), nil)

	assert.Nil(t, images)
	assert.ErrorIs(t, err, domain.ErrGallerySourceFailed)
}

func TestProjectService_SyncGallery_UnlinkedProjectRefused(t *testing.T) {
	projectRepo := new(mocks.MockProjectRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	gallery := new(mocks.MockGallerySource)
	svc := service.NewProjectService(projectRepo, gallery, auditRepo)

	id := uuid.New()
	projectRepo.On("GetByID", mock.Anything, id).Return(&domain.Project{ID: id}, nil)

	images, err := svc.SyncGallery(context.Background(), id, nil)

	assert.Nil(t, images)
	assert.ErrorIs(t, err, domain.ErrProjectNotLinked)
	gallery.AssertNotCalled(t, "FetchProjectImages", mock.Anything, mock.Anything)
}

func TestProjectService_SyncGallery_SourceFailure(t *testing.T) {
	projectRepo := new(mocks.MockProjectRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	gallery := new(mocks.MockGallerySource)
	svc := service.NewProjectService(projectRepo, gallery, auditRepo)

	id := uuid.New()
	projectRepo.On("GetByID", mock.Anything, id).
		Return(&domain.Project{ID: id, MagicplanID: "mp-5f2b9c"}, nil)
	gallery.On("FetchProjectImages", mock.Anything, "mp-5f2b9c").
		Return(nil, domain.ErrGallerySourceFailed)

	_, err := svc.SyncGallery(context.Background(), id, nil)

	assert.ErrorIs(t, err, domain.ErrGallerySourceFailed)
	projectRepo.AssertNotCalled(t, "UpdateGallery", mock.Anything, mock.Anything, mock.Anything)
}

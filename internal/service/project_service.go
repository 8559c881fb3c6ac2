package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alazab/internal/domain"
	"alazab/internal/port"
)

// CreateProjectInput is the DTO for new construction projects.
type CreateProjectInput struct {
	Name        string
	ClientName  string
	Location    string
	Status      string
	MagicplanID string
}

// ProjectService manages construction projects and their floor-plan
// galleries.
type ProjectService interface {
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	SyncGallery(ctx context.Context, id uuid.UUID, actor *Actor) ([]domain.GalleryImage, error)
}

type projectService struct {
	projectRepo port.ProjectRepository
	gallery     port.GallerySource
	auditRepo   port.AuditLogRepository
}

// NewProjectService creates a new ProjectService. gallery may be nil when
// no gallery source is configured.
func NewProjectService(
	projectRepo port.ProjectRepository,
	gallery port.GallerySource,
	auditRepo port.AuditLogRepository,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		gallery:     gallery,
		auditRepo:   auditRepo,
	}
}

func (s *projectService) List(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	return s.projectRepo.List(ctx, offset, limit)
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	status := input.Status
	if status == "" {
		status = "active"
	}
	project := &domain.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		ClientName:  input.ClientName,
		Location:    input.Location,
		Status:      status,
		MagicplanID: input.MagicplanID,
		Gallery:     json.RawMessage("[]"),
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// SyncGallery pulls the latest floor plans and photos from the gallery
// source and replaces the project's stored gallery with them.
func (s *projectService) SyncGallery(ctx context.Context, id uuid.UUID, actor *Actor) ([]domain.GalleryImage, error) {
	if s.gallery == nil {
		return nil, domain.ErrGallerySourceFailed
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The gallery lives at the external service under its own id, not ours.
	if project.MagicplanID == "" {
		return nil, domain.ErrProjectNotLinked
	}

	images, err := s.gallery.FetchProjectImages(ctx, project.MagicplanID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("projectService.SyncGallery: encoding gallery: %w", err)
	}
	if err := s.projectRepo.UpdateGallery(ctx, project.ID, payload); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, project, len(images))
	return images, nil
}

func (s *projectService) audit(ctx context.Context, actor *Actor, project *domain.Project, count int) {
	if s.auditRepo == nil {
		return
	}
	details, _ := json.Marshal(map[string]interface{}{
		"project_id": project.ID.String(),
		"images":     count,
	})
	entry := &domain.AuditEntry{
		ID:      uuid.New(),
		Action:  domain.AuditGallerySynced,
		Details: details,
	}
	if actor != nil {
		entry.UserID = &actor.ID
		entry.Username = actor.Username
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("projectService.audit: failed to write audit entry: %v", err)
	}
}

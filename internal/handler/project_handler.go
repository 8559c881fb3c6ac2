package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alazab/internal/domain"
	"alazab/internal/service"
)

// ProjectHandler handles construction project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/v1/projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Project,meta=PagMeta} "Projects"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	projects, total, err := h.projectService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	RespondPaginated(c, projects, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/projects/:id
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} Response{data=domain.Project} "Project"
// @Failure 404 {object} ErrorResponseBody "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, project)
}

// Create handles POST /api/v1/projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project details"
// @Success 201 {object} Response{data=domain.Project} "Created project"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), service.CreateProjectInput{
		Name:        req.Name,
		ClientName:  req.ClientName,
		Location:    req.Location,
		Status:      req.Status,
		MagicplanID: req.MagicplanID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, project)
}

// SyncGallery handles POST /api/v1/projects/:id/gallery/sync
// @Summary Sync the project gallery
// @Description Pull floor plans and photos from the gallery source and store them on the project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} Response{data=[]domain.GalleryImage} "Synced images"
// @Failure 404 {object} ErrorResponseBody "Project not found"
// @Failure 502 {object} ErrorResponseBody "Gallery source failed"
// @Security BearerAuth
// @Router /projects/{id}/gallery/sync [post]
func (h *ProjectHandler) SyncGallery(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.projectService.SyncGallery(c.Request.Context(), id, extractActor(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	if images == nil {
		images = []domain.GalleryImage{}
	}
	RespondOK(c, images)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alazab/internal/domain"
	"alazab/internal/service"
)

// ReviewHandler handles department review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Submit handles POST /api/v1/reviews
// @Summary Submit a verdict
// @Description Record an approve or reject verdict for the caller's department
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body SubmitReviewRequest true "Verdict details"
// @Success 201 {object} Response{data=domain.Review} "Recorded verdict"
// @Failure 400 {object} ErrorResponseBody "Missing signature or comments"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Duplicate verdict"
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_id and action are required")
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), service.SubmitReviewInput{
		DocumentID:   req.DocumentID,
		ReviewerID:   claims.UserID,
		ReviewerName: claims.FullName,
		Department:   claims.Department,
		Action:       domain.ReviewAction(req.Action),
		Comments:     req.Comments,
		Signature:    req.Signature,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, review)
}

// ListByDocument handles GET /api/v1/reviews/document/:documentId
// @Summary List verdicts for a document
// @Tags reviews
// @Produce json
// @Param documentId path string true "Invoice record ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Review} "Verdicts in submission order"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Security BearerAuth
// @Router /reviews/document/{documentId} [get]
func (h *ReviewHandler) ListByDocument(c *gin.Context) {
	documentID, ok := parseID(c, "documentId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByDocument(c.Request.Context(), documentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	RespondOK(c, reviews)
}

// Status handles GET /api/v1/reviews/status/:documentId
// @Summary Department status for a document
// @Description Latest verdict per department plus the all-approved flag
// @Tags reviews
// @Produce json
// @Param documentId path string true "Invoice record ID (UUID)"
// @Success 200 {object} Response{data=domain.ReviewStatusView} "Per-department status"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Security BearerAuth
// @Router /reviews/status/{documentId} [get]
func (h *ReviewHandler) Status(c *gin.Context) {
	documentID, ok := parseID(c, "documentId")
	if !ok {
		return
	}

	view, err := h.reviewService.DepartmentStatus(c.Request.Context(), documentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

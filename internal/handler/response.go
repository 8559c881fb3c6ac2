package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alazab/internal/domain"
	"alazab/internal/middleware"
	"alazab/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found"
	case errors.Is(err, domain.ErrSourceInvoiceNotFound):
		return http.StatusNotFound, "SOURCE_INVOICE_NOT_FOUND", "invoice not found in billing source"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE", "billing source is unreachable; try again later"
	case errors.Is(err, domain.ErrDocumentFileNotFound):
		return http.StatusNotFound, "DOCUMENT_FILE_NOT_FOUND", "no stored file for this document kind"
	case errors.Is(err, domain.ErrMalformedInvoiceNumber):
		return http.StatusBadRequest, "MALFORMED_INVOICE_NUMBER", "invoice number does not carry a valid year token"
	case errors.Is(err, domain.ErrAlreadySynced):
		return http.StatusConflict, "ALREADY_SYNCED", "invoice is already synced; use force to re-sync"
	case errors.Is(err, domain.ErrDuplicateReview):
		return http.StatusConflict, "DUPLICATE_REVIEW", "you have already submitted a verdict for this document"
	case errors.Is(err, domain.ErrInvalidReviewAction):
		return http.StatusBadRequest, "INVALID_ACTION", "action must be 'approve' or 'reject'"
	case errors.Is(err, domain.ErrInvalidDepartment):
		return http.StatusBadRequest, "INVALID_DEPARTMENT", "department must be engineering, accounting, or purchasing"
	case errors.Is(err, domain.ErrSignatureRequired):
		return http.StatusBadRequest, "SIGNATURE_REQUIRED", "a signature is required to approve"
	case errors.Is(err, domain.ErrCommentsRequired):
		return http.StatusBadRequest, "COMMENTS_REQUIRED", "comments are required to reject"
	case errors.Is(err, domain.ErrInvoiceSigned):
		return http.StatusConflict, "INVOICE_SIGNED", "a signed invoice is immutable"
	case errors.Is(err, domain.ErrGallerySourceFailed):
		return http.StatusBadGateway, "GALLERY_SOURCE_FAILED", "gallery source request failed"
	case errors.Is(err, domain.ErrProjectNotLinked):
		return http.StatusBadRequest, "PROJECT_NOT_LINKED", "project has no magicplan id"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// extractActor pulls the authenticated user out of the request context.
// Returns nil claims on unauthenticated routes.
func extractActor(c *gin.Context) *service.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	return &service.Actor{ID: claims.UserID, Username: claims.Username}
}

// requireClaims extracts claims or writes a 401. Returns ok=false when
// the response has already been written.
func requireClaims(c *gin.Context) (*service.Claims, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return nil, false
	}
	return claims, true
}

// parseID parses a UUID path parameter or writes a 400.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

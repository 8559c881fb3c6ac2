package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alazab/internal/domain"
	"alazab/internal/service"
)

// SyncHandler handles billing-source synchronization endpoints.
type SyncHandler struct {
	syncService service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncInvoice handles POST /api/v1/sync/invoice
// @Summary Sync one invoice from Daftra
// @Description Fetch an invoice and its PDFs from the billing source and upsert the local record
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncInvoiceRequest true "Invoice number and force flag"
// @Success 200 {object} Response{data=domain.SyncResult} "Sync outcome"
// @Failure 404 {object} ErrorResponseBody "Invoice not found in billing source"
// @Failure 409 {object} ErrorResponseBody "Already synced"
// @Failure 503 {object} ErrorResponseBody "Billing source unavailable"
// @Security BearerAuth
// @Router /sync/invoice [post]
func (h *SyncHandler) SyncInvoice(c *gin.Context) {
	var req SyncInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_number is required")
		return
	}

	result, err := h.syncService.SyncOne(c.Request.Context(), req.InvoiceNumber, req.Force, extractActor(c))
	if err != nil {
		// A failed stage still carries a result payload worth returning.
		if result != nil && !errors.Is(err, domain.ErrAlreadySynced) {
			status, code, _ := MapDomainError(err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    result,
				Error:   &APIError{Code: code, Message: result.Error},
			})
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// SyncBatch handles POST /api/v1/sync/batch
// @Summary Sync all new invoices from Daftra
// @Description Pull every invoice created at the billing source since the given date
// @Tags sync
// @Accept json
// @Produce json
// @Param request body SyncBatchRequest true "Start date (YYYY-MM-DD, default 30 days ago)"
// @Success 200 {object} Response{data=domain.BatchSyncResult} "Batch tally"
// @Failure 503 {object} ErrorResponseBody "Billing source unavailable"
// @Security BearerAuth
// @Router /sync/batch [post]
func (h *SyncHandler) SyncBatch(c *gin.Context) {
	// The body is optional; an absent since defaults to 30 days back.
	var req SyncBatchRequest
	_ = c.ShouldBindJSON(&req)

	since := time.Now().AddDate(0, 0, -30)
	if req.Since != "" {
		parsed, err := time.Parse("2006-01-02", req.Since)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "since must be YYYY-MM-DD")
			return
		}
		since = parsed
	}

	result, err := h.syncService.SyncAllNewSince(c.Request.Context(), since, extractActor(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// StorageStatus handles GET /api/v1/storage/status
// @Summary Storage health
// @Description Report disk capacity and per-category usage of the storage root
// @Tags storage
// @Produce json
// @Success 200 {object} Response{data=domain.StorageStatus} "Storage report"
// @Security BearerAuth
// @Router /storage/status [get]
func (h *SyncHandler) StorageStatus(c *gin.Context) {
	status, err := h.syncService.StorageStatus(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, status)
}

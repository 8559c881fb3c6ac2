package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"alazab/internal/domain"
	"alazab/internal/port"
	"alazab/internal/service"
)

// InvoiceHandler handles invoice record endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param project_id query string false "Filter by project ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "Invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	var filters port.InvoiceFilters
	if pidStr := c.Query("project_id"); pidStr != "" {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid project_id")
			return
		}
		filters.ProjectID = &pid
	}
	filters.Status = domain.InvoiceStatus(c.Query("status"))

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Invoice record with its reviews and linked project
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=service.InvoiceDetail} "Invoice detail"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice manually
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Created invoice"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_number is required")
		return
	}

	input := service.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		ProjectID:     req.ProjectID,
		ClientName:    req.ClientName,
		Notes:         req.Notes,
	}
	if req.Total != "" {
		total, err := decimal.NewFromString(req.Total)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "total must be a decimal number")
			return
		}
		input.Total = total
	}
	if req.InvoiceDate != "" {
		date, err := time.Parse("2006-01-02", req.InvoiceDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_date must be YYYY-MM-DD")
			return
		}
		input.InvoiceDate = &date
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input, extractActor(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, invoice)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update an invoice
// @Description Edit record fields; signed invoices are immutable
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.Invoice} "Updated invoice"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is signed"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	input := service.UpdateInvoiceInput{
		ProjectID:  req.ProjectID,
		ClientName: req.ClientName,
		Notes:      req.Notes,
	}
	if req.Total != nil {
		total, err := decimal.NewFromString(*req.Total)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "total must be a decimal number")
			return
		}
		input.Total = &total
	}
	if req.InvoiceDate != nil {
		date, err := time.Parse("2006-01-02", *req.InvoiceDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_date must be YYYY-MM-DD")
			return
		}
		input.InvoiceDate = &date
	}
	if req.Status != nil {
		status := domain.InvoiceStatus(*req.Status)
		input.Status = &status
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), id, input, extractActor(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Description Remove the record and its stored PDFs; signed invoices are immutable
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Deleted"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is signed"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id, extractActor(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "invoice deleted"})
}

// DownloadDocument handles GET /api/v1/invoices/:id/files/:kind
// @Summary Download a stored PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID (UUID)"
// @Param kind path string true "Document kind (tax, detailed, receipt)"
// @Success 200 {file} binary "PDF content"
// @Failure 404 {object} ErrorResponseBody "No stored file for this kind"
// @Security BearerAuth
// @Router /invoices/{id}/files/{kind} [get]
func (h *InvoiceHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	kind := domain.DocumentKind(c.Param("kind"))
	if kind != domain.DocumentKindTax && kind != domain.DocumentKindDetailed && kind != domain.DocumentKindReceipt {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be tax, detailed, or receipt")
		return
	}

	data, name, err := h.invoiceService.DownloadDocument(c.Request.Context(), id, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ListFiles handles GET /api/v1/invoices/:id/files
// @Summary List stored files for an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=[]domain.StoredFileInfo} "Files"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/files [get]
func (h *InvoiceHandler) ListFiles(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	files, err := h.invoiceService.ListFiles(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if files == nil {
		files = []domain.StoredFileInfo{}
	}
	RespondOK(c, files)
}

// AuditTrail handles GET /api/v1/invoices/:id/audit
// @Summary Audit trail for an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.AuditEntry,meta=PagMeta} "Audit entries"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/audit [get]
func (h *InvoiceHandler) AuditTrail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, total, err := h.invoiceService.AuditTrail(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

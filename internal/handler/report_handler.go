package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alazab/internal/domain"
	"alazab/internal/port"
	"alazab/internal/service"
	"alazab/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles report export endpoints.
type ReportHandler struct {
	invoiceService service.InvoiceService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(invoiceService service.InvoiceService) *ReportHandler {
	return &ReportHandler{invoiceService: invoiceService}
}

// exportPageSize bounds each repository page while walking the full set.
const exportPageSize = 100

// InvoiceRegister handles GET /api/v1/reports/invoices.xlsx
// @Summary Export the invoice register
// @Description Build an XLSX workbook of invoice records with optional filters
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param project_id query string false "Filter by project ID"
// @Param status query string false "Filter by status"
// @Success 200 {file} binary "XLSX workbook"
// @Security BearerAuth
// @Router /reports/invoices.xlsx [get]
func (h *ReportHandler) InvoiceRegister(c *gin.Context) {
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

	writer, err := xlsxexport.NewWriter()
	if err != nil {
		HandleError(c, err)
		return
	}

	offset := 0
	for {
		invoices, total, err := h.invoiceService.List(c.Request.Context(), filters, offset, exportPageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		if err := writer.WriteInvoices(invoices); err != nil {
			HandleError(c, err)
			return
		}
		offset += len(invoices)
		if offset >= total || len(invoices) == 0 {
			break
		}
	}

	var buf bytes.Buffer
	if err := writer.WriteTo(&buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-register-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

package daftra

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"alazab/internal/domain"
)

// listEnvelope is the paged invoice list payload returned by Daftra.
type listEnvelope struct {
	Data  []wireInvoice `json:"data"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
}

// detailEnvelope wraps a single invoice returned by the detail endpoint.
type detailEnvelope struct {
	Data wireInvoice `json:"data"`
}

// wireAttachment is one invoice attachment as reported by the vendor.
type wireAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// wireItem is one invoice line as reported by the vendor.
type wireItem struct {
	Description string          `json:"description"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// wireInvoice is the vendor-specific invoice shape.
type wireInvoice struct {
	ID            int64            `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   string           `json:"invoice_date"`
	DueDate       string           `json:"due_date"`
	ClientID      int64            `json:"client_id"`
	ClientName    string           `json:"client_name"`
	ClientTaxNum  string           `json:"client_tax_number"`
	ClientAddress string           `json:"client_address"`
	Items         []wireItem       `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
	Discount      decimal.Decimal  `json:"discount"`
	Total         decimal.Decimal  `json:"total"`
	Status        string           `json:"status"`
	Paid          bool             `json:"paid"`
	PaidAmount    decimal.Decimal  `json:"paid_amount"`
	Notes         string           `json:"notes"`
	Attachments   []wireAttachment `json:"attachments"`
}

const vendorDateLayout = "2006-01-02"

func parseVendorDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(vendorDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// toSnapshot translates the vendor shape into the canonical snapshot.
func (w *wireInvoice) toSnapshot() *domain.InvoiceSnapshot {
	items := make([]domain.SnapshotLineItem, 0, len(w.Items))
	for _, it := range w.Items {
		desc := it.Description
		if desc == "" {
			desc = it.Name
		}
		items = append(items, domain.SnapshotLineItem{
			Description: desc,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
		})
	}

	status := w.Status
	if status == "" {
		status = "draft"
	}

	return &domain.InvoiceSnapshot{
		SourceID:      formatSourceID(w.ID),
		InvoiceNumber: w.InvoiceNumber,
		Client: domain.SnapshotClient{
			ID:        formatSourceID(w.ClientID),
			Name:      w.ClientName,
			TaxNumber: w.ClientTaxNum,
			Address:   w.ClientAddress,
		},
		Items:      items,
		Subtotal:   w.Subtotal,
		TaxAmount:  w.TaxAmount,
		Discount:   w.Discount,
		Total:      w.Total,
		IssueDate:  parseVendorDate(w.InvoiceDate),
		DueDate:    parseVendorDate(w.DueDate),
		Status:     status,
		Paid:       w.Paid,
		PaidAmount: w.PaidAmount,
		Notes:      w.Notes,
	}
}

// findAttachment returns the first attachment whose name contains the
// given substring, case-insensitively.
func (w *wireInvoice) findAttachment(substr string) *wireAttachment {
	for i := range w.Attachments {
		if strings.Contains(strings.ToLower(w.Attachments[i].Name), strings.ToLower(substr)) {
			return &w.Attachments[i]
		}
	}
	return nil
}

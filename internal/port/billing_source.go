package port

import (
	"context"
	"time"

	"alazab/internal/domain"
)

// BillingSource abstracts the external billing system invoices and PDF
// artifacts are pulled from. Implementations perform no local side
// effects; transport failures and 5xx responses are reported as
// domain.ErrSourceUnavailable, a missing invoice as
// domain.ErrSourceInvoiceNotFound, and a missing optional attachment as
// domain.ErrAttachmentAbsent.
type BillingSource interface {
	FetchInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.InvoiceSnapshot, error)
	ListInvoicesCreatedSince(ctx context.Context, since time.Time) ([]domain.InvoiceSnapshot, error)
	FetchDocumentBinary(ctx context.Context, sourceInvoiceID string, kind domain.DocumentKind) ([]byte, error)
}

package port

import (
	"context"

	"alazab/internal/domain"
)

// DocumentVault is the storage layout manager for invoice PDFs. It maps
// (invoiceNumber, kind) to a deterministic relative path under a fixed
// storage root, partitioned by the year token of the invoice number.
// Save is idempotent: a second call with the same key overwrites the
// same physical file.
type DocumentVault interface {
	EnsureFolder(invoiceNumber string) (string, error)
	Save(invoiceNumber string, kind domain.DocumentKind, data []byte) (string, error)
	Read(relativePath string) ([]byte, error)
	Exists(relativePath string) bool
	DeleteInvoiceFolder(invoiceNumber string) error
	ListInvoiceFiles(invoiceNumber string) ([]domain.StoredFileInfo, error)
	CapacityStats() (*domain.CapacityStats, error)
	UsageBreakdown(ctx context.Context) (*domain.UsageBreakdown, error)
}

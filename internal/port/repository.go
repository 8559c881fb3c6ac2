package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"alazab/internal/domain"
)

// InvoiceFilters narrows invoice list queries.
type InvoiceFilters struct {
	ProjectID *uuid.UUID
	Status    domain.InvoiceStatus
}

// InvoiceRepository defines the contract for invoice record persistence.
// The store is assumed atomic at the single-record level only; callers
// serialize read-modify-write sequences themselves.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, filters InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	UpdateSyncState(ctx context.Context, id uuid.UUID, daftraID string, docs domain.DocumentPaths, syncedAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines the contract for review verdict persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByDocumentAndReviewer(ctx context.Context, documentID, reviewerID uuid.UUID) (*domain.Review, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error)
}

// AuditLogRepository defines the contract for the append-only audit log.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByInvoiceRef(ctx context.Context, invoiceRef string, offset, limit int) ([]domain.AuditEntry, int, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ProjectRepository defines the contract for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	UpdateGallery(ctx context.Context, id uuid.UUID, gallery []byte) error
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"alazab/internal/domain"
	"alazab/internal/port"
)

// CreateInvoiceInput is the DTO for manually created invoice records.
type CreateInvoiceInput struct {
	InvoiceNumber string
	ProjectID     *uuid.UUID
	ClientName    string
	Total         decimal.Decimal
	InvoiceDate   *time.Time
	Notes         string
}

// UpdateInvoiceInput is the DTO for invoice edits. Nil fields are left
// untouched.
type UpdateInvoiceInput struct {
	ProjectID   *uuid.UUID
	ClientName  *string
	Total       *decimal.Decimal
	InvoiceDate *time.Time
	Status      *domain.InvoiceStatus
	Notes       *string
}

// InvoiceDetail is an invoice with its reviews and, when linked, project.
type InvoiceDetail struct {
	domain.Invoice
	Project *domain.Project `json:"project,omitempty"`
	Reviews []domain.Review `json:"reviews"`
}

// InvoiceService manages invoice records outside the sync pipeline.
type InvoiceService interface {
	List(ctx context.Context, filters port.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceDetail, error)
	Create(ctx context.Context, input CreateInvoiceInput, actor *Actor) (*domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput, actor *Actor) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID, actor *Actor) error
	DownloadDocument(ctx context.Context, id uuid.UUID, kind domain.DocumentKind) ([]byte, string, error)
	ListFiles(ctx context.Context, id uuid.UUID) ([]domain.StoredFileInfo, error)
	AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	reviewRepo  port.ReviewRepository
	projectRepo port.ProjectRepository
	auditRepo   port.AuditLogRepository
	vault       port.DocumentVault
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	reviewRepo port.ReviewRepository,
	projectRepo port.ProjectRepository,
	auditRepo port.AuditLogRepository,
	vault port.DocumentVault,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		vault:       vault,
	}
}

func (s *invoiceService) List(ctx context.Context, filters port.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, filters, offset, limit)
}

// GetByID returns an invoice with its review verdicts and linked project
// embedded.
func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &InvoiceDetail{Invoice: *invoice}

	detail.Reviews, err = s.reviewRepo.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Reviews == nil {
		detail.Reviews = []domain.Review{}
	}

	if invoice.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *invoice.ProjectID)
		if err == nil {
			detail.Project = project
		} else if !errors.Is(err, domain.ErrProjectNotFound) {
			return nil, err
		}
	}
	return detail, nil
}

// Create records a manually entered invoice. Manual records start in
// pending and are not marked as synced from the billing source.
func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput, actor *Actor) (*domain.Invoice, error) {
	invoice := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: input.InvoiceNumber,
		ProjectID:     input.ProjectID,
		ClientName:    input.ClientName,
		Total:         input.Total,
		InvoiceDate:   input.InvoiceDate,
		Status:        domain.InvoiceStatusPending,
		Documents:     domain.DocumentPaths{},
		Notes:         input.Notes,
	}
	if actor != nil {
		invoice.CreatedBy = &actor.ID
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, domain.AuditInvoiceCreated, invoice.InvoiceNumber, nil)
	return invoice, nil
}

// Update edits a record. A signed invoice is immutable and refuses
// every edit.
func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput, actor *Actor) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceStatusSigned {
		return nil, domain.ErrInvoiceSigned
	}

	if input.ProjectID != nil {
		invoice.ProjectID = input.ProjectID
	}
	if input.ClientName != nil {
		invoice.ClientName = *input.ClientName
	}
	if input.Total != nil {
		invoice.Total = *input.Total
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = input.InvoiceDate
	}
	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, domain.AuditInvoiceUpdated, invoice.InvoiceNumber, nil)
	return invoice, nil
}

// Delete removes a record and its stored PDFs. Signed invoices cannot
// be deleted.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID, actor *Actor) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status == domain.InvoiceStatusSigned {
		return domain.ErrInvoiceSigned
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.vault.DeleteInvoiceFolder(invoice.InvoiceNumber); err != nil {
		log.Printf("invoiceService.Delete: removing folder for %s: %v", invoice.InvoiceNumber, err)
	}
	s.audit(ctx, actor, domain.AuditInvoiceDeleted, invoice.InvoiceNumber, nil)
	return nil
}

// DownloadDocument streams a stored PDF by kind. The second return value
// is the suggested download file name.
func (s *invoiceService) DownloadDocument(ctx context.Context, id uuid.UUID, kind domain.DocumentKind) ([]byte, string, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	relPath, ok := invoice.Documents[kind]
	if !ok || relPath == "" {
		return nil, "", domain.ErrDocumentFileNotFound
	}
	data, err := s.vault.Read(relPath)
	if err != nil {
		return nil, "", err
	}
	return data, downloadName(invoice.InvoiceNumber, kind), nil
}

func downloadName(invoiceNumber string, kind domain.DocumentKind) string {
	if kind == domain.DocumentKindTax {
		return invoiceNumber + ".pdf"
	}
	return invoiceNumber + "-" + string(kind) + ".pdf"
}

func (s *invoiceService) ListFiles(ctx context.Context, id uuid.UUID) ([]domain.StoredFileInfo, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.vault.ListInvoiceFiles(invoice.InvoiceNumber)
}

func (s *invoiceService) AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return s.auditRepo.ListByInvoiceRef(ctx, invoice.InvoiceNumber, offset, limit)
}

func (s *invoiceService) audit(ctx context.Context, actor *Actor, action domain.AuditAction, invoiceRef string, details map[string]string) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		Action:     action,
		InvoiceRef: invoiceRef,
	}
	if actor != nil {
		entry.UserID = &actor.ID
		entry.Username = actor.Username
	}
	if details != nil {
		entry.Details, _ = json.Marshal(details)
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("invoiceService.audit: failed to write audit entry for %s: %v", action, err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alazab/internal/domain"
	"alazab/internal/port"
)

// SubmitReviewInput is the DTO for review submissions.
type SubmitReviewInput struct {
	DocumentID   uuid.UUID
	ReviewerID   uuid.UUID
	ReviewerName string
	Department   domain.Department
	Action       domain.ReviewAction
	Comments     string
	Signature    string
}

// ReviewService records department verdicts and derives the invoice's
// approval status from them.
type ReviewService interface {
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Review, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error)
	DepartmentStatus(ctx context.Context, documentID uuid.UUID) (*domain.ReviewStatusView, error)
}

type reviewService struct {
	reviewRepo  port.ReviewRepository
	invoiceRepo port.InvoiceRepository
	auditRepo   port.AuditLogRepository
	email       port.EmailSender
	notifyAddr  string
	locks       *keyedMutex
}

// NewReviewService creates a new ReviewService. email may be nil when
// approval notifications are disabled.
func NewReviewService(
	reviewRepo port.ReviewRepository,
	invoiceRepo port.InvoiceRepository,
	auditRepo port.AuditLogRepository,
	email port.EmailSender,
	notifyAddr string,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		invoiceRepo: invoiceRepo,
		auditRepo:   auditRepo,
		email:       email,
		notifyAddr:  notifyAddr,
		locks:       newKeyedMutex(),
	}
}

// SubmitReview validates and persists one verdict, then recomputes the
// document's consensus. Idempotency is at the reviewer level: a second
// verdict from the same reviewer is refused, not merged.
func (s *reviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	switch input.Action {
	case domain.ReviewActionApprove:
		if strings.TrimSpace(input.Signature) == "" {
			return nil, domain.ErrSignatureRequired
		}
	case domain.ReviewActionReject:
		if strings.TrimSpace(input.Comments) == "" {
			return nil, domain.ErrCommentsRequired
		}
	default:
		return nil, domain.ErrInvalidReviewAction
	}
	if !domain.ValidDepartments[input.Department] {
		return nil, domain.ErrInvalidDepartment
	}

	unlock := s.locks.Lock(input.DocumentID.String())
	defer unlock()

	invoice, err := s.invoiceRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByDocumentAndReviewer(ctx, input.DocumentID, input.ReviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReview
	}

	status := domain.VerdictApproved
	if input.Action == domain.ReviewActionReject {
		status = domain.VerdictRejected
	}
	review := &domain.Review{
		ID:           uuid.New(),
		DocumentID:   input.DocumentID,
		ReviewerID:   input.ReviewerID,
		ReviewerName: input.ReviewerName,
		Department:   input.Department,
		Status:       status,
		Comments:     input.Comments,
		Signature:    input.Signature,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeConsensus(ctx, invoice); err != nil {
		return nil, fmt.Errorf("recomputing consensus for %s: %w", invoice.InvoiceNumber, err)
	}

	action := domain.AuditReviewApprove
	if status == domain.VerdictRejected {
		action = domain.AuditReviewReject
	}
	s.audit(ctx, &input, action, invoice.InvoiceNumber)

	return review, nil
}

// recomputeConsensus derives the invoice status from the recorded
// verdicts. The invoice transitions to approved only when the set of
// departments whose latest verdict is approved equals exactly the three
// required departments. A rejection by a single department does not
// auto-transition the invoice; it is surfaced through DepartmentStatus
// for manual handling. A first verdict moves a freshly synced invoice
// into under_review.
func (s *reviewService) recomputeConsensus(ctx context.Context, invoice *domain.Invoice) error {
	reviews, err := s.reviewRepo.ListByDocument(ctx, invoice.ID)
	if err != nil {
		return err
	}

	latest := latestByDepartment(reviews)
	approved := 0
	for _, dept := range domain.ReviewDepartments {
		if verdict, ok := latest[dept]; ok && verdict == domain.VerdictApproved {
			approved++
		}
	}

	// A signed record accepts review additions but its status never moves.
	if invoice.Status == domain.InvoiceStatusSigned {
		return nil
	}

	switch {
	case approved == len(domain.ReviewDepartments):
		if invoice.Status != domain.InvoiceStatusApproved {
			if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusApproved); err != nil {
				return err
			}
			invoice.Status = domain.InvoiceStatusApproved
			log.Printf("reviewService.recomputeConsensus: invoice %s fully approved", invoice.InvoiceNumber)
			s.notifyApproved(ctx, invoice.InvoiceNumber)
		}
	case len(reviews) > 0:
		if invoice.Status == domain.InvoiceStatusSynced || invoice.Status == domain.InvoiceStatusPending {
			if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusUnderReview); err != nil {
				return err
			}
			invoice.Status = domain.InvoiceStatusUnderReview
		}
	}
	return nil
}

// latestByDepartment reduces a chronologically ordered review list to
// the latest verdict per department.
func latestByDepartment(reviews []domain.Review) map[domain.Department]domain.VerdictStatus {
	latest := make(map[domain.Department]domain.VerdictStatus, len(domain.ReviewDepartments))
	for _, review := range reviews {
		latest[review.Department] = review.Status
	}
	return latest
}

// ListByDocument returns every verdict recorded for a document.
func (s *reviewService) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error) {
	return s.reviewRepo.ListByDocument(ctx, documentID)
}

// DepartmentStatus reports, per department, the department's latest
// verdict or "pending", plus the derived allApproved flag.
func (s *reviewService) DepartmentStatus(ctx context.Context, documentID uuid.UUID) (*domain.ReviewStatusView, error) {
	reviews, err := s.reviewRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	latest := latestByDepartment(reviews)
	verdictOrPending := func(dept domain.Department) string {
		if verdict, ok := latest[dept]; ok {
			return string(verdict)
		}
		return "pending"
	}

	view := &domain.ReviewStatusView{
		Engineering: verdictOrPending(domain.DepartmentEngineering),
		Accounting:  verdictOrPending(domain.DepartmentAccounting),
		Purchasing:  verdictOrPending(domain.DepartmentPurchasing),
	}
	view.AllApproved = view.Engineering == string(domain.VerdictApproved) &&
		view.Accounting == string(domain.VerdictApproved) &&
		view.Purchasing == string(domain.VerdictApproved)
	return view, nil
}

func (s *reviewService) notifyApproved(ctx context.Context, invoiceNumber string) {
	if s.email == nil || s.notifyAddr == "" {
		return
	}
	if err := s.email.SendApprovalNotification(ctx, s.notifyAddr, invoiceNumber); err != nil {
		log.Printf("reviewService.notifyApproved: notification for %s failed: %v", invoiceNumber, err)
	}
}

// audit records a review mutation. Failures are logged but never block
// business logic.
func (s *reviewService) audit(ctx context.Context, input *SubmitReviewInput, action domain.AuditAction, invoiceNumber string) {
	if s.auditRepo == nil {
		return
	}
	details, _ := json.Marshal(map[string]string{
		"document_id": input.DocumentID.String(),
	})
	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		UserID:     &input.ReviewerID,
		Username:   input.ReviewerName,
		Action:     action,
		InvoiceRef: invoiceNumber,
		Department: string(input.Department),
		Details:    details,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("reviewService.audit: failed to write audit entry for %s: %v", action, err)
	}
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
	"alazab/internal/service"
	"alazab/mocks"
)

func newReviewService(
	reviewRepo *mocks.MockReviewRepo,
	invoiceRepo *mocks.MockInvoiceRepo,
	auditRepo *mocks.MockAuditLogRepo,
	email *mocks.MockEmailSender,
) service.ReviewService {
	if email == nil {
		return service.NewReviewService(reviewRepo, invoiceRepo, auditRepo, nil, "")
	}
	return service.NewReviewService(reviewRepo, invoiceRepo, auditRepo, email, "finance@alazab.example")
}

func approveInput(documentID uuid.UUID, dept domain.Department) service.SubmitReviewInput {
	return service.SubmitReviewInput{
		DocumentID:   documentID,
		ReviewerID:   uuid.New(),
		ReviewerName: "Test Reviewer",
		Department:   dept,
		Action:       domain.ReviewActionApprove,
		Signature:    "data:image/png;base64,abc",
	}
}

func TestReviewService_SubmitReview_ApproveRequiresSignature(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	input := approveInput(uuid.New(), domain.DepartmentEngineering)
	input.Signature = "   "

	review, err := svc.SubmitReview(context.Background(), input)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_RejectRequiresComments(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	review, err := svc.SubmitReview(context.Background(), service.SubmitReviewInput{
		DocumentID: uuid.New(),
		ReviewerID: uuid.New(),
		Department: domain.DepartmentAccounting,
		Action:     domain.ReviewActionReject,
	})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrCommentsRequired)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_UnknownAction(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	_, err := svc.SubmitReview(context.Background(), service.SubmitReviewInput{
		DocumentID: uuid.New(),
		ReviewerID: uuid.New(),
		Department: domain.DepartmentAccounting,
		Action:     "escalate",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidReviewAction)
}

func TestReviewService_SubmitReview_InvalidDepartment(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	input := approveInput(uuid.New(), "legal")

	_, err := svc.SubmitReview(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidDepartment)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_DuplicateVerdictRefused(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	input := approveInput(documentID, domain.DepartmentEngineering)

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(&domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusUnderReview,
	}, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(&domain.Review{ID: uuid.New()}, nil)

	review, err := svc.SubmitReview(context.Background(), input)

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitReview_FirstVerdictMovesToUnderReview(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	input := approveInput(documentID, domain.DepartmentEngineering)
	invoice := &domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusSynced,
	}

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(invoice, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
	}, nil)
	invoiceRepo.On("UpdateStatus", mock.Anything, documentID, domain.InvoiceStatusUnderReview).
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.SubmitReview(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, domain.VerdictApproved, review.Status)
	invoiceRepo.AssertExpectations(t)
}

func TestReviewService_SubmitReview_TwoApprovalsDoNotApprove(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	input := approveInput(documentID, domain.DepartmentAccounting)
	invoice := &domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusUnderReview,
	}

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(invoice, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
		{Department: domain.DepartmentAccounting, Status: domain.VerdictApproved},
	}, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SubmitReview(context.Background(), input)

	assert.NoError(t, err)
	invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, documentID, domain.InvoiceStatusApproved)
}

func TestReviewService_SubmitReview_ThreeDepartmentsApprove(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	email := new(mocks.MockEmailSender)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, email)

	documentID := uuid.New()
	input := approveInput(documentID, domain.DepartmentPurchasing)
	invoice := &domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusUnderReview,
	}

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(invoice, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
		{Department: domain.DepartmentAccounting, Status: domain.VerdictApproved},
		{Department: domain.DepartmentPurchasing, Status: domain.VerdictApproved},
	}, nil)
	invoiceRepo.On("UpdateStatus", mock.Anything, documentID, domain.InvoiceStatusApproved).
		Return(nil)
	email.On("SendApprovalNotification", mock.Anything, "finance@alazab.example", "AZ-INV-2025-0142").
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.SubmitReview(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, review)
	invoiceRepo.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestReviewService_SubmitReview_RejectionDoesNotAutoReject(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	input := service.SubmitReviewInput{
		DocumentID:   documentID,
		ReviewerID:   uuid.New(),
		ReviewerName: "Test Reviewer",
		Department:   domain.DepartmentAccounting,
		Action:       domain.ReviewActionReject,
		Comments:     "Unit prices disagree with the contract",
	}
	invoice := &domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusUnderReview,
	}

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(invoice, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentAccounting, Status: domain.VerdictRejected},
	}, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.SubmitReview(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, review.Status)
	invoiceRepo.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, documentID, domain.InvoiceStatusRejected)
}

func TestReviewService_SubmitReview_SignedInvoiceStatusUntouched(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	input := approveInput(documentID, domain.DepartmentPurchasing)
	invoice := &domain.Invoice{
		ID:            documentID,
		InvoiceNumber: "AZ-INV-2025-0142",
		Status:        domain.InvoiceStatusSigned,
	}

	invoiceRepo.On("GetByID", mock.Anything, documentID).Return(invoice, nil)
	reviewRepo.On("GetByDocumentAndReviewer", mock.Anything, documentID, input.ReviewerID).
		Return(nil, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
		{Department: domain.DepartmentAccounting, Status: domain.VerdictApproved},
		{Department: domain.DepartmentPurchasing, Status: domain.VerdictApproved},
	}, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SubmitReview(context.Background(), input)

	assert.NoError(t, err)
	invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_DepartmentStatus_AllApproved(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
		{Department: domain.DepartmentAccounting, Status: domain.VerdictApproved},
		{Department: domain.DepartmentPurchasing, Status: domain.VerdictApproved},
	}, nil)

	view, err := svc.DepartmentStatus(context.Background(), documentID)

	assert.NoError(t, err)
	assert.True(t, view.AllApproved)
	assert.Equal(t, "approved", view.Engineering)
}

func TestReviewService_DepartmentStatus_PendingAndRejected(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	svc := newReviewService(reviewRepo, invoiceRepo, auditRepo, nil)

	documentID := uuid.New()
	reviewRepo.On("ListByDocument", mock.Anything, documentID).Return([]domain.Review{
		{Department: domain.DepartmentEngineering, Status: domain.VerdictApproved},
		{Department: domain.DepartmentAccounting, Status: domain.VerdictRejected},
	}, nil)

	view, err := svc.DepartmentStatus(context.Background(), documentID)

	assert.NoError(t, err)
	assert.False(t, view.AllApproved)
	assert.Equal(t, "approved", view.Engineering)
	assert.Equal(t, "rejected", view.Accounting)
	assert.Equal(t, "pending", view.Purchasing)
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"alazab/internal/config"
	"alazab/internal/domain"
	"alazab/internal/service"
	"alazab/mocks"
)

func newSyncService(
	invoiceRepo *mocks.MockInvoiceRepo,
	auditRepo *mocks.MockAuditLogRepo,
	source *mocks.MockBillingSource,
	vault *mocks.MockDocumentVault,
) service.SyncService {
	return service.NewSyncService(
		invoiceRepo, auditRepo, source, vault, nil, nil,
		&config.SyncConfig{PauseBetween: time.Millisecond},
	)
}

func snapshotFor(number, sourceID string) *domain.InvoiceSnapshot {
	issueDate := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	return &domain.InvoiceSnapshot{
		SourceID:      sourceID,
		InvoiceNumber: number,
		Client:        domain.SnapshotClient{ID: "77", Name: "Al-Noor Development Co"},
		Total:         decimal.RequireFromString("184250.00"),
		IssueDate:     &issueDate,
	}
}

func TestSyncService_SyncOne_RefusesAlreadySynced(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	existing := &domain.Invoice{
		InvoiceNumber:    "AZ-INV-2025-0142",
		SyncedFromDaftra: true,
		Status:           domain.InvoiceStatusSynced,
	}
	invoiceRepo.On("GetByNumber", mock.Anything, "AZ-INV-2025-0142").Return(existing, nil)

	result, err := svc.SyncOne(context.Background(), "AZ-INV-2025-0142", false, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAlreadySynced)
	source.AssertNotCalled(t, "FetchInvoiceByNumber", mock.Anything, mock.Anything)
	invoiceRepo.AssertExpectations(t)
}

func TestSyncService_SyncOne_ForceResyncsSyncedRecord(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	existing := &domain.Invoice{
		InvoiceNumber:    "AZ-INV-2025-0142",
		SyncedFromDaftra: true,
		Documents:        domain.DocumentPaths{domain.DocumentKindTax: "invoices/2025/AZ-INV-2025-0142/142.pdf"},
	}
	snapshot := snapshotFor("AZ-INV-2025-0142", "9001")

	invoiceRepo.On("GetByNumber", mock.Anything, "AZ-INV-2025-0142").Return(existing, nil)
	source.On("FetchInvoiceByNumber", mock.Anything, "AZ-INV-2025-0142").Return(snapshot, nil)
	vault.On("EnsureFolder", "AZ-INV-2025-0142").Return("/mnt/storage/invoices/2025/AZ-INV-2025-0142", nil)
	source.On("FetchDocumentBinary", mock.Anything, "9001", domain.DocumentKindDetailed).Return([]byte("pdf"), nil)
	source.On("FetchDocumentBinary", mock.Anything, "9001", domain.DocumentKindReceipt).Return([]byte("rcpt"), nil)
	vault.On("Save", "AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("pdf")).
		Return("invoices/2025/AZ-INV-2025-0142/142-detailed.pdf", nil)
	vault.On("Save", "AZ-INV-2025-0142", domain.DocumentKindReceipt, []byte("rcpt")).
		Return("invoices/2025/AZ-INV-2025-0142/142-receipt.pdf", nil)
	invoiceRepo.On("UpdateSyncState", mock.Anything, existing.ID, "9001",
		mock.MatchedBy(func(docs domain.DocumentPaths) bool {
			// Previously stored paths survive the merge.
			return len(docs) == 3 && docs[domain.DocumentKindTax] != ""
		}), mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SyncOne(context.Background(), "AZ-INV-2025-0142", true, nil)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.StageCompleted, result.Stage)
	assert.Len(t, result.Files, 2)
	invoiceRepo.AssertExpectations(t)
	vault.AssertExpectations(t)
}

func TestSyncService_SyncOne_SignedRecordRefusesForceResync(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	existing := &domain.Invoice{
		InvoiceNumber:    "AZ-INV-2025-0142",
		SyncedFromDaftra: true,
		Status:           domain.InvoiceStatusSigned,
	}
	invoiceRepo.On("GetByNumber", mock.Anything, "AZ-INV-2025-0142").Return(existing, nil)

	result, err := svc.SyncOne(context.Background(), "AZ-INV-2025-0142", true, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvoiceSigned)
	source.AssertNotCalled(t, "FetchInvoiceByNumber", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "UpdateSyncState",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncService_SyncOne_CreatesRecordWithAbsentReceipt(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	snapshot := snapshotFor("AZ-INV-2025-0142", "9001")

	invoiceRepo.On("GetByNumber", mock.Anything, "AZ-INV-2025-0142").
		Return(nil, domain.ErrInvoiceNotFound)
	source.On("FetchInvoiceByNumber", mock.Anything, "AZ-INV-2025-0142").Return(snapshot, nil)
	vault.On("EnsureFolder", "AZ-INV-2025-0142").Return("/mnt/storage/invoices/2025/AZ-INV-2025-0142", nil)
	source.On("FetchDocumentBinary", mock.Anything, "9001", domain.DocumentKindDetailed).Return([]byte("pdf"), nil)
	source.On("FetchDocumentBinary", mock.Anything, "9001", domain.DocumentKindReceipt).
		Return(nil, domain.ErrAttachmentAbsent)
	vault.On("Save", "AZ-INV-2025-0142", domain.DocumentKindDetailed, []byte("pdf")).
		Return("invoices/2025/AZ-INV-2025-0142/142-detailed.pdf", nil)
	invoiceRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.InvoiceNumber == "AZ-INV-2025-0142" &&
			inv.Status == domain.InvoiceStatusSynced &&
			inv.SyncedFromDaftra &&
			len(inv.Documents) == 1
	})).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SyncOne(context.Background(), "AZ-INV-2025-0142", false, nil)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Files, 1)
	assert.Equal(t, domain.DocumentKindDetailed, result.Files[0].Kind)
	assert.Equal(t, "Al-Noor Development Co", result.ClientName)
	invoiceRepo.AssertExpectations(t)
}

func TestSyncService_SyncOne_SourceNotFound(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	invoiceRepo.On("GetByNumber", mock.Anything, "AZ-INV-2025-9999").
		Return(nil, domain.ErrInvoiceNotFound)
	source.On("FetchInvoiceByNumber", mock.Anything, "AZ-INV-2025-9999").
		Return(nil, domain.ErrSourceInvoiceNotFound)

	result, err := svc.SyncOne(context.Background(), "AZ-INV-2025-9999", false, nil)

	assert.ErrorIs(t, err, domain.ErrSourceInvoiceNotFound)
	assert.False(t, result.Success)
	assert.Equal(t, domain.StageFetch, result.Stage)
	vault.AssertNotCalled(t, "EnsureFolder", mock.Anything)
}

func TestSyncService_SyncOne_MalformedNumberAbortsBeforeDownload(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	snapshot := snapshotFor("BADNUMBER", "9002")

	invoiceRepo.On("GetByNumber", mock.Anything, "BADNUMBER").Return(nil, domain.ErrInvoiceNotFound)
	source.On("FetchInvoiceByNumber", mock.Anything, "BADNUMBER").Return(snapshot, nil)
	vault.On("EnsureFolder", "BADNUMBER").Return("", domain.ErrMalformedInvoiceNumber)

	result, err := svc.SyncOne(context.Background(), "BADNUMBER", false, nil)

	assert.ErrorIs(t, err, domain.ErrMalformedInvoiceNumber)
	assert.Equal(t, domain.StageFolder, result.Stage)
	source.AssertNotCalled(t, "FetchDocumentBinary", mock.Anything, mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSyncService_SyncAllNewSince_OneFailureDoesNotStopBatch(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	numbers := []string{"AZ-INV-2025-0001", "AZ-INV-2025-0002", "AZ-INV-2025-0003"}
	snapshots := make([]domain.InvoiceSnapshot, 0, len(numbers))
	for i, n := range numbers {
		snapshots = append(snapshots, *snapshotFor(n, string(rune('a'+i))))
	}
	source.On("ListInvoicesCreatedSince", mock.Anything, since).Return(snapshots, nil)

	for i, n := range numbers {
		sourceID := string(rune('a' + i))
		invoiceRepo.On("GetByNumber", mock.Anything, n).Return(nil, domain.ErrInvoiceNotFound)
		if n == "AZ-INV-2025-0002" {
			source.On("FetchInvoiceByNumber", mock.Anything, n).
				Return(nil, domain.ErrSourceInvoiceNotFound)
			continue
		}
		source.On("FetchInvoiceByNumber", mock.Anything, n).Return(snapshotFor(n, sourceID), nil)
		vault.On("EnsureFolder", n).Return("/mnt/storage/invoices/2025/"+n, nil)
		source.On("FetchDocumentBinary", mock.Anything, sourceID, domain.DocumentKindDetailed).
			Return([]byte("pdf"), nil)
		source.On("FetchDocumentBinary", mock.Anything, sourceID, domain.DocumentKindReceipt).
			Return(nil, domain.ErrAttachmentAbsent)
		vault.On("Save", n, domain.DocumentKindDetailed, []byte("pdf")).
			Return("invoices/2025/"+n+"/1-detailed.pdf", nil)
		invoiceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	}
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	batch, err := svc.SyncAllNewSince(context.Background(), since, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, batch.Total)
	assert.Equal(t, 2, batch.Succeeded)
	assert.Equal(t, 1, batch.Failed)
	assert.Len(t, batch.Results, 3)
	assert.False(t, batch.Results[1].Success)
	assert.Equal(t, "AZ-INV-2025-0002", batch.Results[1].InvoiceNumber)
}

func TestSyncService_SyncAllNewSince_ListFailure(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	source.On("ListInvoicesCreatedSince", mock.Anything, since).
		Return(nil, domain.ErrSourceUnavailable)

	batch, err := svc.SyncAllNewSince(context.Background(), since, nil)

	assert.Nil(t, batch)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSyncService_StorageStatus_ReportsCapacityAndBreakdown(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	vault.On("CapacityStats").Return(&domain.CapacityStats{
		TotalBytes: 1000, UsedBytes: 400, AvailableBytes: 600, PercentUsed: 40,
	}, nil)
	vault.On("UsageBreakdown", mock.Anything).Return(&domain.UsageBreakdown{Invoices: 300}, nil)

	status, err := svc.StorageStatus(context.Background())

	assert.NoError(t, err)
	assert.True(t, status.Ready)
	assert.Equal(t, uint64(1000), status.Stats.TotalBytes)
	assert.Equal(t, int64(300), status.Breakdown.Invoices)
}

func TestSyncService_StorageStatus_VaultFailureReportsNotReady(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	source := new(mocks.MockBillingSource)
	vault := new(mocks.MockDocumentVault)
	svc := newSyncService(invoiceRepo, auditRepo, source, vault)

	vault.On("CapacityStats").Return(nil, errors.New("statfs failed"))

	status, err := svc.StorageStatus(context.Background())

	assert.NoError(t, err)
	assert.False(t, status.Ready)
	assert.NotEmpty(t, status.Error)
}

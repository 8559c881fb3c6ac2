package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"alazab/internal/config"
	"alazab/internal/domain"
	"alazab/internal/port"
)

// SyncService pulls invoices and their PDF documents from the billing
// source and reconciles them into the local record store.
type SyncService interface {
	SyncOne(ctx context.Context, invoiceNumber string, force bool, actor *Actor) (*domain.SyncResult, error)
	SyncAllNewSince(ctx context.Context, since time.Time, actor *Actor) (*domain.BatchSyncResult, error)
	StorageStatus(ctx context.Context) (*domain.StorageStatus, error)
}

// Actor identifies the user driving an operation, for audit entries.
type Actor struct {
	ID       uuid.UUID
	Username string
}

type syncService struct {
	invoiceRepo port.InvoiceRepository
	auditRepo   port.AuditLogRepository
	source      port.BillingSource
	vault       port.DocumentVault
	archive     port.ObjectStorage
	archiveCfg  *config.ArchiveConfig
	pause       time.Duration
	locks       *keyedMutex
}

// NewSyncService creates a new SyncService. archive may be nil when the
// off-site mirror is disabled.
func NewSyncService(
	invoiceRepo port.InvoiceRepository,
	auditRepo port.AuditLogRepository,
	source port.BillingSource,
	vault port.DocumentVault,
	archive port.ObjectStorage,
	archiveCfg *config.ArchiveConfig,
	syncCfg *config.SyncConfig,
) SyncService {
	pause := time.Second
	if syncCfg != nil && syncCfg.PauseBetween > 0 {
		pause = syncCfg.PauseBetween
	}
	return &syncService{
		invoiceRepo: invoiceRepo,
		auditRepo:   auditRepo,
		source:      source,
		vault:       vault,
		archive:     archive,
		archiveCfg:  archiveCfg,
		pause:       pause,
		locks:       newKeyedMutex(),
	}
}

// downloadOutcome carries the result of one per-kind download attempt.
type downloadOutcome struct {
	kind domain.DocumentKind
	doc  *domain.SavedDocument
	err  error
}

// SyncOne runs the full pipeline for a single invoice number:
// fetch snapshot, prepare folder, download each document kind, upsert
// the local record. A previously synced record is refused unless force
// is set.
func (s *syncService) SyncOne(ctx context.Context, invoiceNumber string, force bool, actor *Actor) (*domain.SyncResult, error) {
	unlock := s.locks.Lock(invoiceNumber)
	defer unlock()

	log.Printf("syncService.SyncOne: starting sync for %s", invoiceNumber)

	// Stage 1: resolve the existing local record.
	existing, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil && !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, fmt.Errorf("looking up invoice %s: %w", invoiceNumber, err)
	}
	// A signed record is immutable; not even a forced re-sync may touch it.
	if existing != nil && existing.Status == domain.InvoiceStatusSigned {
		return nil, domain.ErrInvoiceSigned
	}
	if existing != nil && existing.SyncedFromDaftra && !force {
		return nil, domain.ErrAlreadySynced
	}

	// Stage 2: fetch the canonical snapshot.
	snapshot, err := s.source.FetchInvoiceByNumber(ctx, invoiceNumber)
	if err != nil {
		return s.failure(invoiceNumber, domain.StageFetch, err), err
	}

	// Stage 3: ensure the storage folder exists. A malformed year token
	// aborts here, before any network download.
	if _, err := s.vault.EnsureFolder(invoiceNumber); err != nil {
		return s.failure(invoiceNumber, domain.StageFolder, err), err
	}

	// Stage 4: download each kind independently and concurrently. A
	// failure on one kind never aborts the others; all downloads join
	// before the record upsert runs.
	saved := s.downloadDocuments(ctx, snapshot, invoiceNumber)

	// Stage 5: idempotent upsert.
	record, err := s.upsert(ctx, existing, snapshot, saved, actor)
	if err != nil {
		return s.failure(invoiceNumber, domain.StageUpsert, err), err
	}

	s.audit(ctx, actor, domain.AuditSyncInvoice, invoiceNumber, map[string]interface{}{
		"files_count": len(saved),
		"source_id":   snapshot.SourceID,
	})

	result := &domain.SyncResult{
		Success:       true,
		InvoiceNumber: invoiceNumber,
		SourceID:      snapshot.SourceID,
		Files:         saved,
		ClientName:    snapshot.Client.Name,
		Total:         snapshot.Total,
		InvoiceDate:   snapshot.IssueDate,
		Stage:         domain.StageCompleted,
	}
	log.Printf("syncService.SyncOne: completed %s (%d files, record %s)",
		invoiceNumber, len(saved), record.ID)
	return result, nil
}

// downloadDocuments attempts every known document kind for the snapshot.
// The receipt is optional at the vendor; its absence is logged and
// skipped. The detailed invoice is the primary artifact, so its failure
// is reported loudly, but partial completion still proceeds.
func (s *syncService) downloadDocuments(ctx context.Context, snapshot *domain.InvoiceSnapshot, invoiceNumber string) []domain.SavedDocument {
	outcomes := make([]downloadOutcome, len(domain.SyncedDocumentKinds))

	var wg sync.WaitGroup
	for i, kind := range domain.SyncedDocumentKinds {
		wg.Add(1)
		go func(i int, kind domain.DocumentKind) {
			defer wg.Done()
			outcomes[i] = s.downloadOne(ctx, snapshot, invoiceNumber, kind)
		}(i, kind)
	}
	wg.Wait()

	saved := make([]domain.SavedDocument, 0, len(outcomes))
	for _, out := range outcomes {
		switch {
		case out.doc != nil:
			saved = append(saved, *out.doc)
		case errors.Is(out.err, domain.ErrAttachmentAbsent):
			log.Printf("syncService.downloadDocuments: no %s attachment for %s", out.kind, invoiceNumber)
		case out.err != nil:
			log.Printf("syncService.downloadDocuments: skipping %s for %s: %v", out.kind, invoiceNumber, out.err)
		}
	}
	return saved
}

func (s *syncService) downloadOne(ctx context.Context, snapshot *domain.InvoiceSnapshot, invoiceNumber string, kind domain.DocumentKind) downloadOutcome {
	data, err := s.source.FetchDocumentBinary(ctx, snapshot.SourceID, kind)
	if err != nil {
		return downloadOutcome{kind: kind, err: err}
	}

	relPath, err := s.vault.Save(invoiceNumber, kind, data)
	if err != nil {
		return downloadOutcome{kind: kind, err: err}
	}

	s.archiveMirror(ctx, relPath, data)

	return downloadOutcome{
		kind: kind,
		doc: &domain.SavedDocument{
			Kind: kind,
			Path: relPath,
			Size: int64(len(data)),
		},
	}
}

// archiveMirror uploads a saved document to the S3 archive when enabled.
// Failures are logged and never affect the sync outcome.
func (s *syncService) archiveMirror(ctx context.Context, relPath string, data []byte) {
	if s.archive == nil || s.archiveCfg == nil || !s.archiveCfg.Enabled {
		return
	}
	_, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveCfg.Bucket,
		Key:         path.Clean(relPath),
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("syncService.archiveMirror: upload of %s failed: %v", relPath, err)
	}
}

// upsert creates the record on first sync or merges new document paths
// into an existing record, new entries winning on key collision.
func (s *syncService) upsert(ctx context.Context, existing *domain.Invoice, snapshot *domain.InvoiceSnapshot, saved []domain.SavedDocument, actor *Actor) (*domain.Invoice, error) {
	now := time.Now().UTC()

	if existing != nil {
		docs := domain.DocumentPaths{}
		for k, v := range existing.Documents {
			docs[k] = v
		}
		for _, doc := range saved {
			docs[doc.Kind] = doc.Path
		}
		if err := s.invoiceRepo.UpdateSyncState(ctx, existing.ID, snapshot.SourceID, docs, now); err != nil {
			return nil, err
		}
		existing.DaftraInvoiceID = snapshot.SourceID
		existing.Documents = docs
		existing.SyncedFromDaftra = true
		existing.LastSyncedAt = &now
		return existing, nil
	}

	docs := domain.DocumentPaths{}
	for _, doc := range saved {
		docs[doc.Kind] = doc.Path
	}
	var createdBy *uuid.UUID
	if actor != nil {
		createdBy = &actor.ID
	}
	record := &domain.Invoice{
		ID:               uuid.New(),
		InvoiceNumber:    snapshot.InvoiceNumber,
		DaftraInvoiceID:  snapshot.SourceID,
		ClientName:       snapshot.Client.Name,
		Total:            snapshot.Total,
		InvoiceDate:      snapshot.IssueDate,
		Status:           domain.InvoiceStatusSynced,
		Documents:        docs,
		SyncedFromDaftra: true,
		LastSyncedAt:     &now,
		Notes:            snapshot.Notes,
		CreatedBy:        createdBy,
	}
	if err := s.invoiceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SyncAllNewSince lists snapshots created since the cursor and runs the
// single-invoice pipeline for each, sequentially and with a pause
// between items to respect the vendor's rate limits. One failed invoice
// never stops the batch; the tally reports every outcome.
func (s *syncService) SyncAllNewSince(ctx context.Context, since time.Time, actor *Actor) (*domain.BatchSyncResult, error) {
	snapshots, err := s.source.ListInvoicesCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("listing invoices since %s: %w", since.Format(time.RFC3339), err)
	}

	log.Printf("syncService.SyncAllNewSince: %d invoices to sync", len(snapshots))

	batch := &domain.BatchSyncResult{Results: make([]domain.SyncResult, 0, len(snapshots))}
	for i, snapshot := range snapshots {
		if i > 0 {
			select {
			case <-ctx.Done():
				return batch, ctx.Err()
			case <-time.After(s.pause):
			}
		}

		result, err := s.SyncOne(ctx, snapshot.InvoiceNumber, false, actor)
		if err != nil {
			if result == nil {
				result = s.failure(snapshot.InvoiceNumber, domain.StageLookup, err)
			}
			log.Printf("syncService.SyncAllNewSince: %s failed: %v", snapshot.InvoiceNumber, err)
		}
		batch.Results = append(batch.Results, *result)
		if result.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	batch.Total = len(batch.Results)

	s.audit(ctx, actor, domain.AuditSyncBatch, "", map[string]interface{}{
		"total":     batch.Total,
		"succeeded": batch.Succeeded,
		"failed":    batch.Failed,
	})
	return batch, nil
}

// StorageStatus reports volume readiness, capacity and per-category usage.
func (s *syncService) StorageStatus(ctx context.Context) (*domain.StorageStatus, error) {
	stats, err := s.vault.CapacityStats()
	if err != nil {
		return &domain.StorageStatus{Ready: false, Error: err.Error()}, nil
	}
	breakdown, err := s.vault.UsageBreakdown(ctx)
	if err != nil {
		return &domain.StorageStatus{Ready: false, Error: err.Error()}, nil
	}
	return &domain.StorageStatus{Ready: true, Stats: stats, Breakdown: breakdown}, nil
}

func (s *syncService) failure(invoiceNumber string, stage domain.SyncStage, err error) *domain.SyncResult {
	return &domain.SyncResult{
		Success:       false,
		InvoiceNumber: invoiceNumber,
		Files:         []domain.SavedDocument{},
		Stage:         stage,
		Error:         err.Error(),
	}
}

// audit records a sync mutation. Failures are logged but never block the
// pipeline.
func (s *syncService) audit(ctx context.Context, actor *Actor, action domain.AuditAction, invoiceRef string, details map[string]interface{}) {
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
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("syncService.audit: failed to write audit entry for %s: %v", action, err)
	}
}

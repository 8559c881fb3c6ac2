package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentPaths maps a document kind to the relative storage path of the
// saved PDF. Stored as a JSONB column.
type DocumentPaths map[DocumentKind]string

// Value implements driver.Valuer for JSONB storage.
func (p DocumentPaths) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage.
func (p *DocumentPaths) Scan(src interface{}) error {
	if src == nil {
		*p = DocumentPaths{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("DocumentPaths.Scan: unexpected type %T", src)
	}
	return json.Unmarshal(b, p)
}

// Invoice is the locally persisted invoice record. The sync pipeline owns
// Documents, SyncedFromDaftra and LastSyncedAt; the review engine owns
// Status once the record has been synced.
type Invoice struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	InvoiceNumber    string          `db:"invoice_number" json:"invoice_number"`
	DaftraInvoiceID  string          `db:"daftra_invoice_id" json:"daftra_invoice_id"`
	ProjectID        *uuid.UUID      `db:"project_id" json:"project_id"`
	ClientName       string          `db:"client_name" json:"client_name"`
	Total            decimal.Decimal `db:"total" json:"total"`
	InvoiceDate      *time.Time      `db:"invoice_date" json:"invoice_date"`
	Status           InvoiceStatus   `db:"status" json:"status"`
	Documents        DocumentPaths   `db:"documents" json:"documents"`
	SyncedFromDaftra bool            `db:"synced_from_daftra" json:"synced_from_daftra"`
	LastSyncedAt     *time.Time      `db:"last_synced_at" json:"last_synced_at"`
	Notes            string          `db:"notes" json:"notes"`
	CreatedBy        *uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Review is a single department verdict on an invoice document. At most one
// review may exist per (document, reviewer) pair.
type Review struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	DocumentID   uuid.UUID     `db:"document_id" json:"document_id"`
	ReviewerID   uuid.UUID     `db:"reviewer_id" json:"reviewer_id"`
	ReviewerName string        `db:"reviewer_name" json:"reviewer_name"`
	Department   Department    `db:"department" json:"department"`
	Status       VerdictStatus `db:"status" json:"status"`
	Comments     string        `db:"comments" json:"comments"`
	Signature    string        `db:"signature" json:"signature"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// ReviewStatusView reports the verdict of each department for a document.
type ReviewStatusView struct {
	Engineering string `json:"engineering"`
	Accounting  string `json:"accounting"`
	Purchasing  string `json:"purchasing"`
	AllApproved bool   `json:"all_approved"`
}

// AuditEntry records a sync or review mutation for traceability.
type AuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id"`
	Username   string          `db:"username" json:"username"`
	Action     AuditAction     `db:"action" json:"action"`
	InvoiceRef string          `db:"invoice_ref" json:"invoice_ref"`
	Department string          `db:"department" json:"department"`
	Details    json.RawMessage `db:"details" json:"details"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// User represents an authenticated reviewer or administrator.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Department   Department `db:"department" json:"department"`
	Role         UserRole   `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Project represents a construction project invoices are billed against.
type Project struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	ClientName  string          `db:"client_name" json:"client_name"`
	Location    string          `db:"location" json:"location"`
	Status      string          `db:"status" json:"status"`
	MagicplanID string          `db:"magicplan_id" json:"magicplan_id"`
	Gallery     json.RawMessage `db:"gallery" json:"gallery"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// SnapshotLineItem is one billed line of an invoice snapshot.
type SnapshotLineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// SnapshotClient holds the billing-system client fields of a snapshot.
type SnapshotClient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
	Address   string `json:"address"`
}

// InvoiceSnapshot is the canonical, transient shape of an invoice as
// fetched from the external billing source. It is never persisted as-is.
type InvoiceSnapshot struct {
	SourceID      string             `json:"source_id"`
	InvoiceNumber string             `json:"invoice_number"`
	Client        SnapshotClient     `json:"client"`
	Items         []SnapshotLineItem `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	IssueDate     *time.Time         `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date"`
	Status        string             `json:"status"`
	Paid          bool               `json:"paid"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	Notes         string             `json:"notes"`
}

// SavedDocument describes one PDF saved to local storage during a sync.
type SavedDocument struct {
	Kind DocumentKind `json:"kind"`
	Path string       `json:"path"`
	Size int64        `json:"size"`
}

// StoredFileInfo describes a file found under an invoice folder.
type StoredFileInfo struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// CapacityStats reports disk usage of the storage root.
type CapacityStats struct {
	TotalBytes     uint64  `json:"total_bytes"`
	UsedBytes      uint64  `json:"used_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	PercentUsed    float64 `json:"percent_used"`
}

// UsageBreakdown reports byte totals per top-level storage category.
type UsageBreakdown struct {
	Invoices int64 `json:"invoices"`
	Projects int64 `json:"projects"`
	Backups  int64 `json:"backups"`
	Temp     int64 `json:"temp"`
}

// StorageStatus is the combined storage health report.
type StorageStatus struct {
	Ready     bool            `json:"ready"`
	Stats     *CapacityStats  `json:"stats,omitempty"`
	Breakdown *UsageBreakdown `json:"breakdown,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// SyncResult is the per-invoice outcome of a sync attempt.
type SyncResult struct {
	Success       bool            `json:"success"`
	InvoiceNumber string          `json:"invoice_number"`
	SourceID      string          `json:"source_id,omitempty"`
	Files         []SavedDocument `json:"files"`
	ClientName    string          `json:"client_name,omitempty"`
	Total         decimal.Decimal `json:"total"`
	InvoiceDate   *time.Time      `json:"invoice_date,omitempty"`
	Stage         SyncStage       `json:"stage,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// BatchSyncResult is the full tally of a batch sync run.
type BatchSyncResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []SyncResult `json:"results"`
}

// GalleryImage is one floor-plan or photo pulled from the gallery source.
type GalleryImage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

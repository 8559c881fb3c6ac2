package domain

// InvoiceStatus represents the lifecycle of a local invoice record.
type InvoiceStatus string

const (
	InvoiceStatusPending     InvoiceStatus = "pending"
	InvoiceStatusUnderReview InvoiceStatus = "under_review"
	InvoiceStatusApproved    InvoiceStatus = "approved"
	InvoiceStatusSigned      InvoiceStatus = "signed"
	InvoiceStatusSynced      InvoiceStatus = "synced"
	InvoiceStatusRejected    InvoiceStatus = "rejected"
)

// Department is an approval authority over an invoice document.
type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentAccounting  Department = "accounting"
	DepartmentPurchasing  Department = "purchasing"
)

// ReviewDepartments lists the departments whose approval is required for
// consensus, in display order.
var ReviewDepartments = []Department{
	DepartmentEngineering,
	DepartmentAccounting,
	DepartmentPurchasing,
}

// ValidDepartments maps every department that may submit a verdict.
var ValidDepartments = map[Department]bool{
	DepartmentEngineering: true,
	DepartmentAccounting:  true,
	DepartmentPurchasing:  true,
}

// VerdictStatus is the outcome recorded by a single review.
type VerdictStatus string

const (
	VerdictApproved VerdictStatus = "approved"
	VerdictRejected VerdictStatus = "rejected"
)

// ReviewAction is the verb accepted by the review submission API.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// DocumentKind is a category of PDF artifact attached to one invoice.
type DocumentKind string

const (
	DocumentKindTax      DocumentKind = "tax"
	DocumentKindDetailed DocumentKind = "detailed"
	DocumentKindReceipt  DocumentKind = "receipt"
)

// SyncedDocumentKinds lists the kinds the sync pipeline attempts to pull
// for every invoice. The detailed invoice is the primary artifact; the
// receipt is optional on the vendor side.
var SyncedDocumentKinds = []DocumentKind{
	DocumentKindDetailed,
	DocumentKindReceipt,
}

// UserRole defines the authorization level of a user.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReviewer UserRole = "reviewer"
)

// SyncStage labels where in the pipeline a sync attempt failed.
type SyncStage string

const (
	StageLookup    SyncStage = "lookup"
	StageFetch     SyncStage = "fetch"
	StageFolder    SyncStage = "folder"
	StageDownload  SyncStage = "download"
	StageUpsert    SyncStage = "upsert"
	StageCompleted SyncStage = "completed"
)

// AuditAction identifies an audited mutation.
type AuditAction string

const (
	AuditSyncInvoice    AuditAction = "sync_invoice_from_daftra"
	AuditSyncBatch      AuditAction = "sync_all_invoices_from_daftra"
	AuditReviewApprove  AuditAction = "review_approve"
	AuditReviewReject   AuditAction = "review_reject"
	AuditInvoiceCreated AuditAction = "invoice_created"
	AuditInvoiceUpdated AuditAction = "invoice_updated"
	AuditInvoiceDeleted AuditAction = "invoice_deleted"
	AuditGallerySynced  AuditAction = "project_gallery_synced"
)

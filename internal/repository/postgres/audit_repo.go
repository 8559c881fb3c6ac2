package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"alazab/internal/domain"
	"alazab/internal/port"
)

type auditLogRepo struct {
	db *sqlx.DB
}

// NewAuditLogRepo creates a new PostgreSQL-backed AuditLogRepository.
func NewAuditLogRepo(db *sqlx.DB) port.AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, user_id, username, action, invoice_ref, department, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.Username, entry.Action,
		entry.InvoiceRef, entry.Department, entry.Details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditLogRepo.Create: %w", err)
	}
	return nil
}

func (r *auditLogRepo) ListByInvoiceRef(ctx context.Context, invoiceRef string, offset, limit int) ([]domain.AuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_log WHERE invoice_ref = $1", invoiceRef)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByInvoiceRef count: %w", err)
	}

	var entries []domain.AuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_log WHERE invoice_ref = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		invoiceRef, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByInvoiceRef: %w", err)
	}
	return entries, total, nil
}

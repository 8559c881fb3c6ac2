package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"alazab/internal/domain"
	"alazab/internal/port"
)

// Postgres unique_violation error code.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (
			id, document_id, reviewer_id, reviewer_name, department,
			status, comments, signature, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		review.ID, review.DocumentID, review.ReviewerID, review.ReviewerName, review.Department,
		review.Status, review.Comments, review.Signature, review.CreatedAt)
	if err != nil {
		// The unique index on (document_id, reviewer_id) backstops the
		// service-level duplicate check under concurrent submissions.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReview
		}
		return fmt.Errorf("reviewRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewRepo) GetByDocumentAndReviewer(ctx context.Context, documentID, reviewerID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	err := r.db.GetContext(ctx, &review,
		"SELECT * FROM reviews WHERE document_id = $1 AND reviewer_id = $2",
		documentID, reviewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reviewRepo.GetByDocumentAndReviewer: %w", err)
	}
	return &review, nil
}

func (r *reviewRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.SelectContext(ctx, &reviews,
		"SELECT * FROM reviews WHERE document_id = $1 ORDER BY created_at ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("reviewRepo.ListByDocument: %w", err)
	}
	return reviews, nil
}

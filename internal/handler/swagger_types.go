package handler

import (
	"time"

	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"eng.mahmoud"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// SyncInvoiceRequest represents the single-invoice sync request body.
type SyncInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number" binding:"required" example:"AZ-INV-2025-0142"`
	Force         bool   `json:"force" example:"false"`
}

// SyncBatchRequest represents the batch sync request body.
type SyncBatchRequest struct {
	Since string `json:"since" example:"2025-01-01"`
}

// SubmitReviewRequest represents the review submission request body.
type SubmitReviewRequest struct {
	DocumentID uuid.UUID `json:"document_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Action     string    `json:"action" binding:"required" example:"approve"`
	Comments   string    `json:"comments" example:"Quantities match the site survey"`
	Signature  string    `json:"signature" example:"data:image/png;base64,iVBOR..."`
}

// CreateInvoiceRequest represents the manual invoice creation request body.
type CreateInvoiceRequest struct {
	InvoiceNumber string     `json:"invoice_number" binding:"required" example:"AZ-INV-2025-0171"`
	ProjectID     *uuid.UUID `json:"project_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	ClientName    string     `json:"client_name" example:"Al-Noor Development Co"`
	Total         string     `json:"total" example:"184250.00"`
	InvoiceDate   string     `json:"invoice_date" example:"2025-03-18"`
	Notes         string     `json:"notes" example:"Phase 2 structural works"`
}

// UpdateInvoiceRequest represents the invoice update request body.
type UpdateInvoiceRequest struct {
	ProjectID   *uuid.UUID `json:"project_id"`
	ClientName  *string    `json:"client_name" example:"Al-Noor Development Co"`
	Total       *string    `json:"total" example:"184250.00"`
	InvoiceDate *string    `json:"invoice_date" example:"2025-03-18"`
	Status      *string    `json:"status" example:"signed"`
	Notes       *string    `json:"notes"`
}

// CreateProjectRequest represents the project creation request body.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required" example:"New Cairo Mall Extension"`
	ClientName  string `json:"client_name" example:"Al-Noor Development Co"`
	Location    string `json:"location" example:"New Cairo, Egypt"`
	Status      string `json:"status" example:"active"`
	MagicplanID string `json:"magicplan_id" example:"mp-5f2b9c"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

package noop

import (
	"context"
	"log"

	"alazab/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendApprovalNotification(_ context.Context, toEmail, invoiceNumber string) error {
	log.Printf("[NOOP EMAIL] Approval notification for invoice %s to %s", invoiceNumber, toEmail)
	return nil
}

package port

import "context"

// EmailSender delivers workflow notifications.
type EmailSender interface {
	SendApprovalNotification(ctx context.Context, toEmail, invoiceNumber string) error
}

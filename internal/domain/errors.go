package domain

import "errors"

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrSourceInvoiceNotFound  = errors.New("invoice not found in billing source")
	ErrSourceUnavailable      = errors.New("billing source unavailable")
	ErrAttachmentAbsent       = errors.New("document attachment absent at source")
	ErrMalformedInvoiceNumber = errors.New("invoice number has no valid year token")
	ErrAlreadySynced          = errors.New("invoice already synced from daftra")
	ErrDuplicateReview        = errors.New("reviewer already submitted a verdict for this document")
	ErrInvalidReviewAction    = errors.New("review action must be approve or reject")
	ErrInvalidDepartment      = errors.New("department is not a recognized review authority")
	ErrSignatureRequired      = errors.New("signature is required to approve")
	ErrCommentsRequired       = errors.New("comments are required to reject")
	ErrInvoiceSigned          = errors.New("signed invoice is immutable")
	ErrDocumentFileNotFound   = errors.New("no stored file for this document kind")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserInactive           = errors.New("user is inactive")
	ErrGallerySourceFailed    = errors.New("gallery source request failed")
	ErrProjectNotLinked       = errors.New("project has no magicplan id")
)

package models

import (
	"time"

	"github.com/google/uuid"
)

// Webhook event names emitted by the authoring service.
const (
	EventSubmissionCreated = "submission.created"
	EventSubmissionUpdated = "submission.updated"
	EventDocumentUploaded  = "document.uploaded"
	EventDocumentReversion = "document.reuploaded"
	EventDocumentDeleted   = "document.deleted"
)

type Webhook struct {
	ID        uuid.UUID `json:"id"`
	OrgID     string    `json:"org_id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Secret    string    `json:"secret,omitempty"` // returned only on creation
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookDelivery struct {
	ID             uuid.UUID  `json:"id"`
	WebhookID      uuid.UUID  `json:"webhook_id"`
	Event          string     `json:"event"`
	ResponseStatus int        `json:"response_status"`
	Attempts       int        `json:"attempts"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

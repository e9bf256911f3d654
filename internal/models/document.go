package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocStatusDraft       = "Draft"
	DocStatusUnderReview = "Under Review"
	DocStatusApproved    = "Approved"
)

// MaxDocumentTags caps the tag set of a document. Attempts to add past
// the cap are dropped silently, not treated as errors.
const MaxDocumentTags = 5

// UploadedBy identifies the uploader of a document version.
type UploadedBy struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OrgID        string `json:"orgId"`
	RoleID       string `json:"roleId,omitempty"`
	DepartmentID string `json:"departmentId,omitempty"`
}

// VersionEntry is one superseded version in a document's history.
type VersionEntry struct {
	Version    string    `json:"version"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
	FileSize   int64     `json:"fileSize,omitempty"`
}

// Document is a regulatory artifact: an uploaded file plus metadata,
// scoped to an organization and optionally linked to a submission
// section. The version chain is single-decimal: 1.0, 1.1, ... 1.9, 2.0.
type Document struct {
	ID             uuid.UUID      `json:"id"`
	OrgID          string         `json:"orgId"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Section        string         `json:"section"`
	Status         string         `json:"status"`
	Tags           []string       `json:"tags"`
	Description    string         `json:"description,omitempty"`
	CAPAID         string         `json:"capaId,omitempty"`
	Version        string         `json:"version"`
	UploadedBy     UploadedBy     `json:"uploadedBy"`
	UploadedAt     time.Time      `json:"uploadedAt"`
	LastUpdated    time.Time      `json:"last_updated"`
	FileURL        string         `json:"fileUrl"`
	FilePath       string         `json:"-"` // object-store key, not exposed
	FileSize       int64          `json:"fileSize,omitempty"`
	Content        string         `json:"content,omitempty"`
	VersionHistory []VersionEntry `json:"versionHistory"`
	IsDeleted      bool           `json:"is_deleted"`
}

func ValidDocumentStatus(s string) bool {
	switch s {
	case DocStatusDraft, DocStatusUnderReview, DocStatusApproved:
		return true
	}
	return false
}

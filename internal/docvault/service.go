// Package docvault manages the version chain of uploaded regulatory
// artifacts: first upload, re-upload with a version bump, metadata edits
// and soft deletion.
package docvault

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/storage"
)

// DefaultMaxUploadBytes caps a single artifact at 10MB.
const DefaultMaxUploadBytes = 10 << 20

// RejectionError is a policy rejection: oversized file, missing required
// metadata, unknown status. Reported like a validation error and raised
// before any storage or network call.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string { return e.Reason }

func reject(format string, args ...any) error {
	return &RejectionError{Reason: fmt.Sprintf(format, args...)}
}

type Service struct {
	repo      Repository
	store     storage.ObjectStore
	maxUpload int64
	now       func() time.Time
}

func NewService(repo Repository, store storage.ObjectStore, maxUpload int64) *Service {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Service{repo: repo, store: store, maxUpload: maxUpload, now: time.Now}
}

// UploadRequest carries the file and metadata of an upload or re-upload.
type UploadRequest struct {
	OrgID       string
	Name        string
	Type        string
	Section     string
	Status      string
	Tags        []string
	Description string
	CAPAID      string
	UploadedBy  models.UploadedBy

	FileName    string
	FileSize    int64
	ContentType string
	Data        io.Reader
}

func (s *Service) validate(req UploadRequest) error {
	if req.Data == nil {
		return reject("please select a file to upload")
	}
	if req.Name == "" || req.Type == "" || req.Section == "" {
		return reject("please fill in all required fields (name, type, section)")
	}
	if req.FileSize > s.maxUpload {
		return reject("file size exceeds %dMB limit", s.maxUpload>>20)
	}
	if req.Status != "" && !models.ValidDocumentStatus(req.Status) {
		return reject("status must be one of: Draft, Under Review, Approved")
	}
	return nil
}

// Upload creates a document at version "1.0" with an empty history.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*models.Document, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	id := uuid.New()
	path := fmt.Sprintf("%s/%s/%s", req.OrgID, id, req.FileName)

	if err := s.store.Put(ctx, path, req.Data, req.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.DocStatusDraft
	}

	doc := &models.Document{
		ID:             id,
		OrgID:          req.OrgID,
		Name:           req.Name,
		Type:           req.Type,
		Section:        req.Section,
		Status:         status,
		Tags:           ClipTags(req.Tags),
		Description:    req.Description,
		CAPAID:         req.CAPAID,
		Version:        "1.0",
		UploadedBy:     req.UploadedBy,
		UploadedAt:     now,
		LastUpdated:    now,
		FileURL:        s.store.PublicURL(path),
		FilePath:       path,
		FileSize:       req.FileSize,
		VersionHistory: []models.VersionEntry{},
	}

	if err := s.repo.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Reupload replaces a document's file, bumping the version by exactly
// 0.1 and appending the superseded version to the history. Metadata from
// the request replaces the descriptive fields as well.
func (s *Service) Reupload(ctx context.Context, id uuid.UUID, req UploadRequest) (*models.Document, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsDeleted {
		return nil, ErrNotFound
	}

	newVersion, err := BumpVersion(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("bump version of %s: %w", id, err)
	}
	if !VersionLess(doc.Version, newVersion) {
		return nil, fmt.Errorf("version did not advance: %s to %s", doc.Version, newVersion)
	}

	now := s.now()
	path := fmt.Sprintf("%s/%s/v%s/%s", doc.OrgID, id, newVersion, req.FileName)
	if err := s.store.Put(ctx, path, req.Data, req.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc.VersionHistory = append(doc.VersionHistory, models.VersionEntry{
		Version:    doc.Version,
		FileURL:    doc.FileURL,
		UploadedAt: doc.UploadedAt,
		FileSize:   doc.FileSize,
	})
	doc.Version = newVersion
	doc.Name = req.Name
	doc.Type = req.Type
	doc.Section = req.Section
	if req.Status != "" {
		doc.Status = req.Status
	}
	doc.Tags = ClipTags(req.Tags)
	doc.Description = req.Description
	doc.CAPAID = req.CAPAID
	doc.UploadedBy = req.UploadedBy
	doc.FileURL = s.store.PublicURL(path)
	doc.FilePath = path
	doc.FileSize = req.FileSize
	doc.UploadedAt = now
	doc.LastUpdated = now
	doc.Content = ""

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// MetadataUpdate carries the descriptive fields an edit may change. Nil
// pointers leave the field untouched.
type MetadataUpdate struct {
	Name        *string
	Type        *string
	Section     *string
	Status      *string
	Tags        *[]string
	Description *string
	CAPAID      *string
}

// EditMetadata updates descriptive fields only: the version and file
// reference never change, the last-updated timestamp always does.
func (s *Service) EditMetadata(ctx context.Context, id uuid.UUID, upd MetadataUpdate) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsDeleted {
		return nil, ErrNotFound
	}

	if upd.Status != nil && !models.ValidDocumentStatus(*upd.Status) {
		return nil, reject("status must be one of: Draft, Under Review, Approved")
	}

	if upd.Name != nil {
		doc.Name = *upd.Name
	}
	if upd.Type != nil {
		doc.Type = *upd.Type
	}
	if upd.Section != nil {
		doc.Section = *upd.Section
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	if upd.Tags != nil {
		doc.Tags = ClipTags(*upd.Tags)
	}
	if upd.Description != nil {
		doc.Description = *upd.Description
	}
	if upd.CAPAID != nil {
		doc.CAPAID = *upd.CAPAID
	}
	doc.LastUpdated = s.now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetContent stores extracted text on the record, leaving version and
// file reference alone. Used by the background extraction worker.
func (s *Service) SetContent(ctx context.Context, id uuid.UUID, content string) error {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	doc.Content = content
	doc.LastUpdated = s.now()
	return s.repo.Update(ctx, doc)
}

// SoftDelete flags the document as deleted. Version and history are left
// intact and the record stays readable by direct id.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.IsDeleted {
		return nil
	}
	doc.IsDeleted = true
	doc.LastUpdated = s.now()
	return s.repo.Update(ctx, doc)
}

// Get returns a document by id, soft-deleted ones included.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return s.repo.Get(ctx, id)
}

// List returns documents matching the filter, never soft-deleted ones.
func (s *Service) List(ctx context.Context, f Filter) ([]*models.Document, error) {
	return s.repo.List(ctx, f)
}

// ClipTags dedupes tags, drops empties and silently truncates to the
// five-tag cap. Exceeding the cap is a no-op, not an error.
func ClipTags(tags []string) []string {
	out := make([]string, 0, models.MaxDocumentTags)
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		if len(out) == models.MaxDocumentTags {
			break
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// AddTag appends one tag to a document. Past the cap, or for a
// duplicate, the tag set is returned unchanged and nothing is written.
func (s *Service) AddTag(ctx context.Context, id uuid.UUID, tag string) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsDeleted {
		return nil, ErrNotFound
	}

	tags := AddTag(doc.Tags, tag)
	if len(tags) == len(doc.Tags) {
		return doc, nil
	}
	doc.Tags = tags
	doc.LastUpdated = s.now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AddTag returns the tag set with tag appended, unchanged if the tag is
// empty, already present, or the cap is reached.
func AddTag(tags []string, tag string) []string {
	if tag == "" || len(tags) >= models.MaxDocumentTags {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

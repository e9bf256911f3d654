package docvault

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	docs map[uuid.UUID]*models.Document
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[uuid.UUID]*models.Document)}
}

func (r *memRepo) Insert(_ context.Context, doc *models.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, doc *models.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return ErrNotFound
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, f Filter) ([]*models.Document, error) {
	var out []*models.Document
	for _, doc := range r.docs {
		if doc.IsDeleted {
			continue
		}
		if f.Section != "" && doc.Section != f.Section {
			continue
		}
		if f.Status != "" && doc.Status != f.Status {
			continue
		}
		cp := *doc
		out = append(out, &cp)
	}
	return out, nil
}

// memStore is an in-memory ObjectStore.
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore { return &memStore{objects: make(map[string][]byte)} }

func (s *memStore) Put(_ context.Context, path string, data io.Reader, _ string) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.objects[path] = b
	return nil
}

func (s *memStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := s.objects[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(string(b))), nil
}

func (s *memStore) Remove(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

func (s *memStore) PublicURL(path string) string { return "https://files.example.com/" + path }

func newTestService() (*Service, *memRepo, *memStore) {
	repo := newMemRepo()
	store := newMemStore()
	return NewService(repo, store, DefaultMaxUploadBytes), repo, store
}

func uploadReq(name string) UploadRequest {
	return UploadRequest{
		OrgID:       "org-123",
		Name:        name,
		Type:        "IFU",
		Section:     "Labeling",
		Status:      models.DocStatusDraft,
		Tags:        []string{"labeling"},
		UploadedBy:  models.UploadedBy{ID: "u-1", Name: "Jordan", OrgID: "org-123"},
		FileName:    "ifu.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
		Data:        strings.NewReader("pdf bytes"),
	}
}

func TestUpload_CreatesVersionOne(t *testing.T) {
	svc, _, _ := newTestService()

	doc, err := svc.Upload(context.Background(), uploadReq("IFU v1"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", doc.Version)
	}
	if len(doc.VersionHistory) != 0 {
		t.Errorf("history should be empty on first upload, got %v", doc.VersionHistory)
	}
	if doc.FileURL == "" {
		t.Error("file URL should be set")
	}
}

func TestUpload_Rejections(t *testing.T) {
	svc, _, store := newTestService()

	req := uploadReq("too big")
	req.FileSize = DefaultMaxUploadBytes + 1
	if _, err := svc.Upload(context.Background(), req); err == nil {
		t.Error("oversized upload should be rejected")
	} else {
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Errorf("want RejectionError, got %T", err)
		}
	}

	req = uploadReq("no section")
	req.Section = ""
	if _, err := svc.Upload(context.Background(), req); err == nil {
		t.Error("missing section should be rejected")
	}

	req = uploadReq("bad status")
	req.Status = "Published"
	if _, err := svc.Upload(context.Background(), req); err == nil {
		t.Error("unknown status should be rejected")
	}

	// No blob may be stored by a rejected upload.
	if len(store.objects) != 0 {
		t.Errorf("rejections must happen before storage, found %d objects", len(store.objects))
	}
}

func TestReupload_BumpsVersionAndKeepsHistory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, uploadReq("IFU"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	firstURL := doc.FileURL
	firstAt := doc.UploadedAt

	req := uploadReq("IFU")
	req.Data = strings.NewReader("new pdf bytes")
	got, err := svc.Reupload(ctx, doc.ID, req)
	if err != nil {
		t.Fatalf("reupload: %v", err)
	}
	if got.Version != "1.1" {
		t.Errorf("version = %q, want 1.1", got.Version)
	}
	if len(got.VersionHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(got.VersionHistory))
	}
	entry := got.VersionHistory[0]
	if entry.Version != "1.0" || entry.FileURL != firstURL || !entry.UploadedAt.Equal(firstAt) {
		t.Errorf("history entry = %+v, want the superseded 1.0", entry)
	}
	if got.FileURL == firstURL {
		t.Error("file URL should point at the new blob")
	}
}

func TestReupload_ChainCoversAllPriorVersions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, uploadReq("IFU"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	for i := 0; i < 10; i++ {
		req := uploadReq("IFU")
		req.Data = strings.NewReader("bytes")
		doc, err = svc.Reupload(ctx, doc.ID, req)
		if err != nil {
			t.Fatalf("reupload %d: %v", i, err)
		}
	}

	if doc.Version != "2.0" {
		t.Errorf("after ten bumps version = %q, want 2.0", doc.Version)
	}
	if len(doc.VersionHistory) != 10 {
		t.Fatalf("history length = %d, want 10", len(doc.VersionHistory))
	}
	for _, entry := range doc.VersionHistory {
		if !VersionLess(entry.Version, doc.Version) {
			t.Errorf("history version %q not below current %q", entry.Version, doc.Version)
		}
	}
}

func TestReupload_UnknownTarget(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Reupload(context.Background(), uuid.New(), uploadReq("IFU"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestEditMetadata_LeavesVersionAndFileAlone(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, uploadReq("IFU"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	name := "IFU (final)"
	status := models.DocStatusUnderReview
	got, err := svc.EditMetadata(ctx, doc.ID, MetadataUpdate{Name: &name, Status: &status})
	if err != nil {
		t.Fatalf("edit metadata: %v", err)
	}
	if got.Name != name || got.Status != status {
		t.Errorf("metadata not applied: %+v", got)
	}
	if got.Version != doc.Version {
		t.Errorf("version changed on metadata edit: %q -> %q", doc.Version, got.Version)
	}
	if got.FileURL != doc.FileURL {
		t.Error("file reference changed on metadata edit")
	}
	if !got.LastUpdated.After(doc.LastUpdated) && !got.LastUpdated.Equal(doc.LastUpdated) {
		t.Error("last updated should be refreshed")
	}
}

func TestSoftDelete_ExcludedFromListingsButGettable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, uploadReq("IFU"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Upload(ctx, uploadReq("Label")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.SoftDelete(ctx, doc.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	docs, err := svc.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("listing should exclude the deleted document, got %d", len(docs))
	}

	got, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("direct get after soft delete: %v", err)
	}
	if !got.IsDeleted {
		t.Error("direct get should return the record flagged deleted")
	}
	if got.Version != doc.Version || len(got.VersionHistory) != len(doc.VersionHistory) {
		t.Error("soft delete must not alter version or history")
	}
}

func TestClipTags_CapAndDedupe(t *testing.T) {
	tags := ClipTags([]string{"a", "b", "a", "", "c", "d", "e", "f"})
	if len(tags) != models.MaxDocumentTags {
		t.Errorf("len = %d, want %d", len(tags), models.MaxDocumentTags)
	}
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		if tags[i] != want {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want)
		}
	}
}

func TestAddTag_NoOpPastCap(t *testing.T) {
	tags := []string{"a", "b", "c", "d", "e"}
	got := AddTag(tags, "f")
	if len(got) != 5 {
		t.Errorf("adding past the cap should be a no-op, got %v", got)
	}
	got = AddTag(tags, "a")
	if len(got) != 5 {
		t.Errorf("duplicate add should be a no-op, got %v", got)
	}
	got = AddTag([]string{"a"}, "b")
	if len(got) != 2 {
		t.Errorf("normal add failed, got %v", got)
	}
}

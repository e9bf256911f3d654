package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/queue"
)

// EventDispatcher fans a domain event out to matching webhook
// subscriptions. *webhook.Service implements it.
type EventDispatcher interface {
	Dispatch(ctx context.Context, orgID, event string, payload interface{}) error
}

type DocumentHandler struct {
	svc         *docvault.Service
	queueClient *queue.Client
	webhooks    EventDispatcher
	maxUpload   int64
}

func NewDocumentHandler(svc *docvault.Service, qc *queue.Client, wh EventDispatcher, maxUpload int64) *DocumentHandler {
	if maxUpload <= 0 {
		maxUpload = docvault.DefaultMaxUploadBytes
	}
	return &DocumentHandler{svc: svc, queueClient: qc, webhooks: wh, maxUpload: maxUpload}
}

func (h *DocumentHandler) uploadRequest(w http.ResponseWriter, r *http.Request) (docvault.UploadRequest, multipart.File, bool) {
	// Bound the whole form a little above the blob cap so metadata
	// still fits next to a maximal file.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return docvault.UploadRequest{}, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return docvault.UploadRequest{}, nil, false
	}

	var tags []string
	if raw := r.FormValue("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	return docvault.UploadRequest{
		OrgID:       r.FormValue("org_id"),
		Name:        r.FormValue("name"),
		Type:        r.FormValue("type"),
		Section:     r.FormValue("section"),
		Status:      r.FormValue("status"),
		Tags:        tags,
		Description: r.FormValue("description"),
		CAPAID:      r.FormValue("capa_id"),
		UploadedBy: models.UploadedBy{
			ID:   r.FormValue("uploaded_by_id"),
			Name: r.FormValue("uploaded_by_name"),
		},
		FileName:    header.Filename,
		FileSize:    header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}, file, true
}

func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	req, file, ok := h.uploadRequest(w, r)
	if !ok {
		return
	}
	defer file.Close()

	doc, err := h.svc.Upload(r.Context(), req)
	if err != nil {
		writeDocError(w, err)
		return
	}

	h.afterUpload(r, doc, models.EventDocumentUploaded)
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Reupload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	req, file, ok := h.uploadRequest(w, r)
	if !ok {
		return
	}
	defer file.Close()

	doc, err := h.svc.Reupload(r.Context(), id, req)
	if err != nil {
		writeDocError(w, err)
		return
	}

	h.afterUpload(r, doc, models.EventDocumentReversion)
	writeJSON(w, http.StatusOK, doc)
}

// afterUpload kicks off content extraction and notifies subscribers.
// Both are best-effort; the upload has already succeeded.
func (h *DocumentHandler) afterUpload(r *http.Request, doc *models.Document, event string) {
	if h.queueClient != nil {
		_ = h.queueClient.EnqueueContentExtract(queue.ContentExtractPayload{
			DocumentID: doc.ID.String(),
			OrgID:      doc.OrgID,
		})
	}
	if h.webhooks != nil {
		_ = h.webhooks.Dispatch(r.Context(), doc.OrgID, event, doc)
	}
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	docs, err := h.svc.List(r.Context(), docvault.Filter{
		OrgID:   q.Get("org_id"),
		Section: q.Get("section"),
		Status:  q.Get("status"),
		Type:    q.Get("type"),
		Search:  q.Get("search"),
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

type metadataPatch struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Section     *string   `json:"section"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	Description *string   `json:"description"`
	CAPAID      *string   `json:"capa_id"`
}

func (h *DocumentHandler) EditMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	var patch metadataPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	doc, err := h.svc.EditMetadata(r.Context(), id, docvault.MetadataUpdate{
		Name:        patch.Name,
		Type:        patch.Type,
		Section:     patch.Section,
		Status:      patch.Status,
		Tags:        patch.Tags,
		Description: patch.Description,
		CAPAID:      patch.CAPAID,
	})
	if err != nil {
		writeDocError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tag required"})
		return
	}

	doc, err := h.svc.AddTag(r.Context(), id, req.Tag)
	if err != nil {
		writeDocError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	if err := h.svc.SoftDelete(r.Context(), id); err != nil {
		writeDocError(w, err)
		return
	}

	if h.webhooks != nil {
		if doc, err := h.svc.Get(r.Context(), id); err == nil {
			_ = h.webhooks.Dispatch(r.Context(), doc.OrgID, models.EventDocumentDeleted, doc)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeDocError(w http.ResponseWriter, err error) {
	var rej *docvault.RejectionError
	switch {
	case errors.As(err, &rej):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": rej.Reason})
	case errors.Is(err, docvault.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/queue"
	"github.com/Sraju03/editor-sub000/internal/storage"
	"github.com/Sraju03/editor-sub000/pkg/textextract"
)

// ExtractWorker pulls a document's blob from storage, extracts its text
// and stores it on the record, then hands off to the assistant indexer.
type ExtractWorker struct {
	docs        *docvault.Service
	store       storage.ObjectStore
	queueClient *queue.Client
}

func NewExtractWorker(docs *docvault.Service, store storage.ObjectStore, qc *queue.Client) *ExtractWorker {
	return &ExtractWorker{docs: docs, store: store, queueClient: qc}
}

func (w *ExtractWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ContentExtractPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	slog.Info("extracting document content", "document_id", docID)

	doc, err := w.docs.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.IsDeleted {
		slog.Info("skipping extraction for deleted document", "document_id", docID)
		return nil
	}

	reader, err := w.store.Get(ctx, doc.FilePath)
	if err != nil {
		return fmt.Errorf("fetch blob: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read blob: %w", err)
	}

	ext := filepath.Ext(doc.FilePath)
	extracted, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), ext)
	if err != nil {
		// Unsupported formats are not retryable.
		slog.Warn("content extraction skipped", "document_id", docID, "ext", ext, "error", err)
		return nil
	}

	if err := w.docs.SetContent(ctx, docID, extracted.Content); err != nil {
		return fmt.Errorf("store content: %w", err)
	}

	if err := w.queueClient.EnqueueAssistantIndex(queue.AssistantIndexPayload{
		DocumentID: docID.String(),
		OrgID:      doc.OrgID,
	}); err != nil {
		slog.Error("failed to enqueue assistant index", "error", err)
	}

	slog.Info("document content extracted", "document_id", docID, "pages", extracted.Pages)
	return nil
}

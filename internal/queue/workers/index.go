package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Sraju03/editor-sub000/internal/assistant"
	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/queue"
)

// IndexWorker feeds extracted document text into the assistant index.
type IndexWorker struct {
	docs      *docvault.Service
	assistant *assistant.Service
}

func NewIndexWorker(docs *docvault.Service, asst *assistant.Service) *IndexWorker {
	return &IndexWorker{docs: docs, assistant: asst}
}

func (w *IndexWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.AssistantIndexPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	doc, err := w.docs.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.IsDeleted || doc.Content == "" {
		slog.Info("skipping index", "document_id", docID, "deleted", doc.IsDeleted)
		return nil
	}

	if err := w.assistant.IndexDocument(ctx, doc); err != nil {
		return fmt.Errorf("index document: %w", err)
	}
	return nil
}

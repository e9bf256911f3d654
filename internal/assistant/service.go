package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Sraju03/editor-sub000/internal/ai"
	"github.com/Sraju03/editor-sub000/internal/models"
)

// Service indexes extracted document text and answers questions about a
// workspace's submission material.
type Service struct {
	index Index
	gw    ai.Gateway
	model string
}

func NewService(index Index, gw ai.Gateway, model string) *Service {
	return &Service{index: index, gw: gw, model: model}
}

// IndexDocument embeds a document's extracted text and stores the
// passages, replacing any prior index entries for the document.
func (s *Service) IndexDocument(ctx context.Context, doc *models.Document) error {
	if doc.Content == "" {
		return errors.New("document has no extracted content")
	}

	if err := s.index.DeleteDocument(ctx, doc.OrgID, doc.ID); err != nil {
		return fmt.Errorf("clear old passages: %w", err)
	}

	texts := splitPassages(doc.Content)
	if len(texts) == 0 {
		return nil
	}

	emb, err := s.gw.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed passages: %w", err)
	}
	if len(emb.Vectors) != len(texts) {
		return fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(texts), len(emb.Vectors))
	}

	passages := make([]Passage, len(texts))
	for i, t := range texts {
		passages[i] = Passage{
			DocumentID: doc.ID,
			OrgID:      doc.OrgID,
			Section:    doc.Section,
			Seq:        i,
			Content:    t,
			Embedding:  emb.Vectors[i],
			Tokens:     estimateTokens(t),
		}
	}

	if err := s.index.Upsert(ctx, passages); err != nil {
		return fmt.Errorf("index passages: %w", err)
	}

	slog.Info("indexed document",
		"document_id", doc.ID,
		"section", doc.Section,
		"passages", len(passages),
	)
	return nil
}

// Search returns the passages most similar to the query.
func (s *Service) Search(ctx context.Context, orgID, query string, topK int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}

	emb, err := s.gw.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(emb.Vectors) == 0 {
		return nil, errors.New("empty query embedding")
	}

	return s.index.Search(ctx, emb.Vectors[0], SearchOptions{
		OrgID: orgID,
		TopK:  topK,
	})
}

// Answer retrieves the most relevant passages and asks the model to
// answer the question grounded on them.
func (s *Service) Answer(ctx context.Context, orgID, question string) (string, []Result, error) {
	results, err := s.Search(ctx, orgID, question, 6)
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return "No indexed submission material matches this question.", nil, nil
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] (%s) %s\n\n", i+1, r.Section, r.Content)
	}

	resp, err := s.gw.Complete(ctx, ai.Request{
		Model: s.model,
		Messages: []ai.Message{
			{Role: "system", Content: "You answer questions about an FDA 510(k) submission using only the provided excerpts. Cite excerpt numbers like [1]. If the excerpts do not contain the answer, say so."},
			{Role: "user", Content: fmt.Sprintf("Excerpts:\n\n%sQuestion: %s", b.String(), question)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", nil, fmt.Errorf("answer question: %w", err)
	}

	return strings.TrimSpace(resp.Content), results, nil
}

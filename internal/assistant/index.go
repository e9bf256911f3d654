package assistant

import (
	"context"

	"github.com/google/uuid"
)

// Passage is one indexed span of submission or document text.
type Passage struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	OrgID      string
	Section    string
	Seq        int
	Content    string
	Embedding  []float32
	Tokens     int
}

type SearchOptions struct {
	OrgID    string
	Section  string
	TopK     int
	MinScore float64
}

type Result struct {
	PassageID  uuid.UUID `json:"passage_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Section    string    `json:"section"`
	Content    string    `json:"content"`
	Score      float64   `json:"score"`
	Seq        int       `json:"seq"`
}

// Index stores passages and answers nearest-neighbor queries over them.
type Index interface {
	Upsert(ctx context.Context, passages []Passage) error
	Search(ctx context.Context, query []float32, opts SearchOptions) ([]Result, error)
	DeleteDocument(ctx context.Context, orgID string, documentID uuid.UUID) error
}

package docvault

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// ErrNotFound is returned for lookups of unknown document ids.
var ErrNotFound = errors.New("document not found")

// Filter narrows List results. Zero values match everything.
type Filter struct {
	OrgID   string
	Section string
	Status  string
	Type    string
	Search  string
}

// Repository persists document records. List never returns soft-deleted
// documents; Get does, so callers can still inspect a deleted record by
// direct id.
type Repository interface {
	Insert(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context, f Filter) ([]*models.Document, error)
}

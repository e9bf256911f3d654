package docvault

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// PostgresRepository stores documents in the documents table. The version
// history rides along as jsonb; filtering always excludes soft-deleted
// rows except on direct id lookup.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const docColumns = `id, org_id, name, type, section, status, tags, description, capa_id,
	version, uploaded_by, uploaded_at, last_updated, file_url, file_path, file_size,
	content, version_history, is_deleted`

func (r *PostgresRepository) Insert(ctx context.Context, doc *models.Document) error {
	uploadedBy, _ := json.Marshal(doc.UploadedBy)
	history, _ := json.Marshal(doc.VersionHistory)

	_, err := r.db.Exec(ctx,
		`INSERT INTO documents (`+docColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		doc.ID, doc.OrgID, doc.Name, doc.Type, doc.Section, doc.Status, doc.Tags,
		doc.Description, doc.CAPAID, doc.Version, uploadedBy, doc.UploadedAt,
		doc.LastUpdated, doc.FileURL, doc.FilePath, doc.FileSize, doc.Content, history, doc.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, doc *models.Document) error {
	uploadedBy, _ := json.Marshal(doc.UploadedBy)
	history, _ := json.Marshal(doc.VersionHistory)

	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET org_id=$2, name=$3, type=$4, section=$5, status=$6,
		 tags=$7, description=$8, capa_id=$9, version=$10, uploaded_by=$11,
		 uploaded_at=$12, last_updated=$13, file_url=$14, file_path=$15, file_size=$16,
		 content=$17, version_history=$18, is_deleted=$19
		 WHERE id=$1`,
		doc.ID, doc.OrgID, doc.Name, doc.Type, doc.Section, doc.Status, doc.Tags,
		doc.Description, doc.CAPAID, doc.Version, uploadedBy, doc.UploadedAt,
		doc.LastUpdated, doc.FileURL, doc.FilePath, doc.FileSize, doc.Content, history, doc.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	row := r.db.QueryRow(ctx, `SELECT `+docColumns+` FROM documents WHERE id=$1`, id)
	doc, err := scanDocument(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Document, error) {
	var (
		conds = []string{"NOT is_deleted"}
		args  []any
	)
	add := func(cond, value string) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.OrgID != "" {
		add("org_id = $%d", f.OrgID)
	}
	if f.Section != "" {
		add("section = $%d", f.Section)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE $%d))",
			n, n, n))
	}

	query := `SELECT ` + docColumns + ` FROM documents WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY uploaded_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc        models.Document
		uploadedBy []byte
		history    []byte
	)
	err := row.Scan(&doc.ID, &doc.OrgID, &doc.Name, &doc.Type, &doc.Section,
		&doc.Status, &doc.Tags, &doc.Description, &doc.CAPAID, &doc.Version,
		&uploadedBy, &doc.UploadedAt, &doc.LastUpdated, &doc.FileURL, &doc.FilePath,
		&doc.FileSize, &doc.Content, &history, &doc.IsDeleted)
	if err != nil {
		return nil, err
	}
	if len(uploadedBy) > 0 {
		if err := json.Unmarshal(uploadedBy, &doc.UploadedBy); err != nil {
			return nil, fmt.Errorf("decode uploaded_by: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &doc.VersionHistory); err != nil {
			return nil, fmt.Errorf("decode version_history: %w", err)
		}
	}
	return &doc, nil
}

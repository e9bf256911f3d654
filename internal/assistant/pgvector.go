package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type PgIndex struct {
	db *pgxpool.Pool
}

func NewPgIndex(db *pgxpool.Pool) *PgIndex {
	return &PgIndex{db: db}
}

func (s *PgIndex) Upsert(ctx context.Context, passages []Passage) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range passages {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		embedding := pgvector.NewVector(p.Embedding)

		_, err := tx.Exec(ctx,
			`INSERT INTO submission_passages (id, document_id, org_id, section, seq, content, embedding, token_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (document_id, seq) DO UPDATE
			 SET section = $4, content = $6, embedding = $7, token_count = $8`,
			id, p.DocumentID, p.OrgID, p.Section, p.Seq, p.Content, embedding, p.Tokens,
		)
		if err != nil {
			return fmt.Errorf("upsert passage %d: %w", p.Seq, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PgIndex) Search(ctx context.Context, query []float32, opts SearchOptions) ([]Result, error) {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}

	embedding := pgvector.NewVector(query)

	q := `SELECT id, document_id, section, content, seq,
	             1 - (embedding <=> $1) AS score
	      FROM submission_passages
	      WHERE org_id = $2`
	args := []any{embedding, opts.OrgID}
	if opts.Section != "" {
		q += " AND section = $3"
		args = append(args, opts.Section)
	}
	q += fmt.Sprintf(" ORDER BY embedding <=> $1 LIMIT %d", opts.TopK)

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("passage search: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.PassageID, &r.DocumentID, &r.Section, &r.Content, &r.Seq, &r.Score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if opts.MinScore > 0 && r.Score < opts.MinScore {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *PgIndex) DeleteDocument(ctx context.Context, orgID string, documentID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM submission_passages WHERE document_id = $1 AND org_id = $2",
		documentID, orgID,
	)
	return err
}

package assistant

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/ai"
	"github.com/Sraju03/editor-sub000/internal/models"
)

type memIndex struct {
	passages []Passage
	deleted  []uuid.UUID
	results  []Result
}

func (m *memIndex) Upsert(_ context.Context, ps []Passage) error {
	m.passages = append(m.passages, ps...)
	return nil
}

func (m *memIndex) Search(_ context.Context, _ []float32, _ SearchOptions) ([]Result, error) {
	return m.results, nil
}

func (m *memIndex) DeleteDocument(_ context.Context, _ string, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type stubGateway struct {
	answer string
}

func (g *stubGateway) Complete(_ context.Context, req ai.Request) (*ai.Completion, error) {
	return &ai.Completion{Content: g.answer}, nil
}

func (g *stubGateway) Embed(_ context.Context, input []string) (*ai.Embedding, error) {
	vectors := make([][]float32, len(input))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return &ai.Embedding{Vectors: vectors}, nil
}

func (g *stubGateway) Provider(string) (ai.Provider, error) { return nil, nil }
func (g *stubGateway) ListModels() []ai.ModelInfo           { return nil }

func TestIndexDocument_ReplacesAndNumbersPassages(t *testing.T) {
	idx := &memIndex{}
	svc := NewService(idx, &stubGateway{}, "gpt-4o-mini")

	doc := &models.Document{
		ID:      uuid.New(),
		OrgID:   "org-1",
		Section: "Device Description",
		Content: strings.Repeat("The device measures glucose in whole blood. ", 80),
	}

	if err := svc.IndexDocument(context.Background(), doc); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if len(idx.deleted) != 1 || idx.deleted[0] != doc.ID {
		t.Error("old passages should be cleared before reindexing")
	}
	if len(idx.passages) < 2 {
		t.Fatalf("long content should split into multiple passages, got %d", len(idx.passages))
	}
	for i, p := range idx.passages {
		if p.Seq != i {
			t.Errorf("passage %d has seq %d", i, p.Seq)
		}
		if p.Section != "Device Description" || p.OrgID != "org-1" {
			t.Errorf("passage %d metadata = %+v", i, p)
		}
		if p.Tokens < 1 {
			t.Errorf("passage %d has no token estimate", i)
		}
	}
}

func TestIndexDocument_RequiresContent(t *testing.T) {
	svc := NewService(&memIndex{}, &stubGateway{}, "gpt-4o-mini")
	err := svc.IndexDocument(context.Background(), &models.Document{ID: uuid.New()})
	if err == nil {
		t.Error("empty content should be rejected")
	}
}

func TestAnswer_NoMatches(t *testing.T) {
	svc := NewService(&memIndex{}, &stubGateway{answer: "unused"}, "gpt-4o-mini")

	answer, results, err := svc.Answer(context.Background(), "org-1", "What is the intended use?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v", results)
	}
	if !strings.Contains(answer, "No indexed submission material") {
		t.Errorf("answer = %q", answer)
	}
}

func TestAnswer_GroundsOnRetrievedPassages(t *testing.T) {
	idx := &memIndex{results: []Result{
		{Section: "Intended Use", Content: "For quantitative measurement of glucose.", Score: 0.9},
	}}
	svc := NewService(idx, &stubGateway{answer: "The device measures glucose [1]."}, "gpt-4o-mini")

	answer, results, err := svc.Answer(context.Background(), "org-1", "What does it measure?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	if answer != "The device measures glucose [1]." {
		t.Errorf("answer = %q", answer)
	}
}

func TestSplitPassages(t *testing.T) {
	if got := splitPassages("   \n\n  "); got != nil {
		t.Errorf("whitespace input should produce no passages, got %v", got)
	}

	short := "A single short paragraph."
	if got := splitPassages(short); len(got) != 1 || got[0] != short {
		t.Errorf("short input = %v", got)
	}

	long := strings.Repeat("Sentence about performance testing. ", 100)
	parts := splitPassages(long)
	if len(parts) < 2 {
		t.Fatalf("long input should split, got %d parts", len(parts))
	}
	for i, p := range parts {
		if utf8.RuneCountInString(p) > passageSize {
			t.Errorf("part %d exceeds the passage size: %d runes", i, utf8.RuneCountInString(p))
		}
	}
}

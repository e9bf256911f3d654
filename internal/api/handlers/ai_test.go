package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sraju03/editor-sub000/internal/ai"
)

type stubAIGateway struct {
	models []ai.ModelInfo
}

func (g *stubAIGateway) Complete(context.Context, ai.Request) (*ai.Completion, error) {
	return nil, errors.New("not implemented")
}

func (g *stubAIGateway) Embed(context.Context, []string) (*ai.Embedding, error) {
	return nil, errors.New("not implemented")
}

func (g *stubAIGateway) Provider(string) (ai.Provider, error) {
	return nil, errors.New("unknown provider")
}

func (g *stubAIGateway) ListModels() []ai.ModelInfo {
	return g.models
}

func TestAIModels_ListsConfiguredModels(t *testing.T) {
	gw := &stubAIGateway{models: []ai.ModelInfo{
		{Provider: "openai", Model: "gpt-4o-mini"},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514"},
	}}
	h := NewAIHandler(ai.NewDrafter(gw, "gpt-4o-mini"), gw)

	req := httptest.NewRequest(http.MethodGet, "/ai/models", nil)
	rec := httptest.NewRecorder()
	h.Models(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Models []ai.ModelInfo `json:"models"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Models) != 2 || resp.Models[0].Provider != "openai" {
		t.Errorf("models = %+v", resp.Models)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sraju03/editor-sub000/internal/assistant"
)

type AssistantHandler struct {
	svc *assistant.Service
}

func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

type assistantSearchRequest struct {
	OrgID string `json:"org_id"`
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

func (h *AssistantHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req assistantSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	results, err := h.svc.Search(r.Context(), req.OrgID, req.Query, req.TopK)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

type assistantAskRequest struct {
	OrgID    string `json:"org_id"`
	Question string `json:"question"`
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req assistantAskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	answer, sources, err := h.svc.Answer(r.Context(), req.OrgID, req.Question)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answer":  answer,
		"sources": sources,
	})
}

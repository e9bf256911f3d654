package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sraju03/editor-sub000/internal/ai"
)

type AIHandler struct {
	drafter *ai.Drafter
	gw      ai.Gateway
}

func NewAIHandler(drafter *ai.Drafter, gw ai.Gateway) *AIHandler {
	return &AIHandler{drafter: drafter, gw: gw}
}

// Models lists every model the configured providers serve.
func (h *AIHandler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.gw.ListModels()})
}

type intendedUseRequest struct {
	ProductCode         string `json:"product_code"`
	DeviceCategory      string `json:"device_category"`
	PredicateDeviceName string `json:"predicate_device_name,omitempty"`
}

func (h *AIHandler) IntendedUse(w http.ResponseWriter, r *http.Request) {
	var req intendedUseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	text, err := h.drafter.SuggestIntendedUse(r.Context(), req.ProductCode, req.DeviceCategory, req.PredicateDeviceName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"intended_use": text})
}

type predicateSuggestRequest struct {
	ProductCode string `json:"product_code"`
	Description string `json:"description,omitempty"`
}

func (h *AIHandler) PredicateSuggest(w http.ResponseWriter, r *http.Request) {
	var req predicateSuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	devices, err := h.drafter.SuggestPredicates(r.Context(), req.ProductCode, req.Description)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"devices": devices})
}

type sectionDraftRequest struct {
	Guideline    string `json:"guideline,omitempty"`
	SectionInput string `json:"section_input"`
}

func (h *AIHandler) SectionDraft(w http.ResponseWriter, r *http.Request) {
	var req sectionDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	text, err := h.drafter.DraftSection(r.Context(), req.Guideline, req.SectionInput)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

type rewriteRequest struct {
	Guideline    string `json:"guideline,omitempty"`
	SelectedText string `json:"selected_text"`
	Instruction  string `json:"instruction"`
}

func (h *AIHandler) Rewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	text, err := h.drafter.RewriteSelection(r.Context(), req.Guideline, req.SelectedText, req.Instruction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

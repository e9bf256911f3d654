package handlers

import (
	"errors"
	"net/http"

	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/gateway"
	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/readiness"
)

type ReadinessHandler struct {
	backend *gateway.Client
	docs    *docvault.Service
}

func NewReadinessHandler(backend *gateway.Client, docs *docvault.Service) *ReadinessHandler {
	return &ReadinessHandler{backend: backend, docs: docs}
}

type readinessReport struct {
	SubmissionID string                    `json:"submission_id"`
	Overall      int                       `json:"overall"`
	Status       string                    `json:"status"`
	Sections     []models.SectionReadiness `json:"sections"`
	RTAChecks    []readiness.RTACheck      `json:"rta_checks"`
	RTAScore     int                       `json:"rta_score"`
}

// Report scores every submission section from its attached documents
// plus the intended-use text, and runs the refuse-to-accept spot checks.
func (h *ReadinessHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subID := q.Get("submission_id")
	orgID := q.Get("org_id")
	if subID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "submission_id is required"})
		return
	}

	sub, err := h.backend.GetSubmission(r.Context(), subID)
	if err != nil {
		var server *gateway.ServerError
		if errors.As(err, &server) {
			writeJSON(w, server.Status, map[string]string{"error": server.Message})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	docs, err := h.docs.List(r.Context(), docvault.Filter{OrgID: orgID})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var sections []models.SectionReadiness
	sections = append(sections, readiness.Score(readiness.IntendedUseSection(sub)))
	for _, name := range readiness.SectionNames() {
		sections = append(sections, readiness.Score(readiness.SectionFromDocuments(name, docs)))
	}

	overall := 0
	if len(sections) > 0 {
		sum := 0
		for _, s := range sections {
			sum += s.FDAReadinessPercent
		}
		overall = sum / len(sections)
	}

	checks := readiness.SpotCheckIntendedUse(sub.IntendedUse)

	writeJSON(w, http.StatusOK, readinessReport{
		SubmissionID: subID,
		Overall:      overall,
		Status:       readiness.StatusLabel(overall),
		Sections:     sections,
		RTAChecks:    checks,
		RTAScore:     readiness.RTAScore(checks),
	})
}

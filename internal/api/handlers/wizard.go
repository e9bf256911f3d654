package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sraju03/editor-sub000/internal/gateway"
	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/validation"
	"github.com/Sraju03/editor-sub000/internal/wizard"
)

// WizardHandler exposes the intake wizard over HTTP. Each session owns
// one draft and its controller; sessions live in memory and die with
// the process, matching the draft's lifetime in the UI.
type WizardHandler struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*wizard.Controller
	backend  wizard.Backend
	events   EventDispatcher
}

func NewWizardHandler(backend wizard.Backend, events EventDispatcher) *WizardHandler {
	return &WizardHandler{
		sessions: make(map[uuid.UUID]*wizard.Controller),
		backend:  backend,
		events:   events,
	}
}

type createSessionRequest struct {
	SubmissionID string `json:"submission_id,omitempty"` // set for edit flow
}

func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
	}

	var ctrl *wizard.Controller
	if req.SubmissionID != "" {
		sub, err := h.getSubmission(r, req.SubmissionID)
		if err != nil {
			writeWizardError(w, err)
			return
		}
		ctrl = wizard.NewEdit(h.backend, sub)
	} else {
		ctrl = wizard.New(h.backend)
	}

	id := uuid.New()
	h.mu.Lock()
	h.sessions[id] = ctrl
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, h.state(id, ctrl))
}

// SubmissionGetter is the extra capability the edit flow needs from the
// backend. The gateway client provides it.
type SubmissionGetter interface {
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
}

func (h *WizardHandler) getSubmission(r *http.Request, id string) (*models.Submission, error) {
	getter, ok := h.backend.(SubmissionGetter)
	if !ok {
		return nil, errors.New("edit flow is not supported by this backend")
	}
	return getter.GetSubmission(r.Context(), id)
}

func (h *WizardHandler) controller(w http.ResponseWriter, r *http.Request) (uuid.UUID, *wizard.Controller, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return uuid.Nil, nil, false
	}

	h.mu.Lock()
	ctrl, ok := h.sessions[id]
	h.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return uuid.Nil, nil, false
	}
	return id, ctrl, true
}

type sessionState struct {
	SessionID string          `json:"session_id"`
	Step      int             `json:"step"`
	StepCount int             `json:"step_count"`
	Draft     models.Draft    `json:"draft"`
	Errors    map[string]bool `json:"errors"`
	Message   string          `json:"message,omitempty"`
	Busy      bool            `json:"busy"`
}

func (h *WizardHandler) state(id uuid.UUID, ctrl *wizard.Controller) sessionState {
	errs := ctrl.Errors()
	return sessionState{
		SessionID: id.String(),
		Step:      ctrl.Step(),
		StepCount: validation.StepCount,
		Draft:     ctrl.Draft(),
		Errors:    errs.Errors,
		Message:   errs.Message,
		Busy:      ctrl.Busy(),
	}
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

type fieldUpdate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Flag  *bool  `json:"flag,omitempty"`
}

type fieldsRequest struct {
	Fields []fieldUpdate `json:"fields"`
}

func (h *WizardHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req fieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	for _, f := range req.Fields {
		var err error
		if f.Flag != nil {
			err = ctrl.SetFlag(f.Key, *f.Flag)
		} else {
			err = ctrl.SetText(f.Key, f.Value)
		}
		if err != nil {
			writeWizardError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	if _, err := ctrl.Next(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := ctrl.Back(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	editing := ctrl.Editing()
	sub, err := ctrl.Submit(r.Context())
	if err != nil {
		writeWizardError(w, err)
		return
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	// Notify subscribers; the submission has already been persisted.
	if h.events != nil {
		event := models.EventSubmissionCreated
		if editing {
			event = models.EventSubmissionUpdated
		}
		_ = h.events.Dispatch(r.Context(), sub.SubmitterOrg, event, sub)
	}

	writeJSON(w, http.StatusCreated, sub)
}

func (h *WizardHandler) SelectProductCode(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var code models.ProductCode
	if err := json.NewDecoder(r.Body).Decode(&code); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctrl.SelectProductCode(code)
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) SelectPredicate(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var device models.PredicateDevice
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ctrl.SelectPredicate(device)
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) ToggleSection(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req struct {
		Section string `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Section == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "section required"})
		return
	}

	ctrl.ToggleSection(req.Section)
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) GenerateIntendedUse(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	if err := ctrl.GenerateIntendedUse(r.Context()); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.state(id, ctrl))
}

func (h *WizardHandler) SuggestPredicates(w http.ResponseWriter, r *http.Request) {
	_, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	devices, err := ctrl.SuggestPredicates(r.Context())
	if err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"devices": devices})
}

func (h *WizardHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	ctrl.Discard()
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

func writeWizardError(w http.ResponseWriter, err error) {
	var (
		policy  *wizard.PolicyError
		invalid *wizard.ValidationError
		server  *gateway.ServerError
	)
	switch {
	case errors.As(err, &policy):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": policy.Message})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  invalid.Result.Message,
			"fields": invalid.Result.Errors,
		})
	case errors.As(err, &server):
		writeJSON(w, server.Status, map[string]string{"error": server.Message})
	case errors.Is(err, wizard.ErrBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "another request for this draft is in flight"})
	case errors.Is(err, wizard.ErrDiscarded):
		writeJSON(w, http.StatusGone, map[string]string{"error": "session discarded"})
	case errors.Is(err, wizard.ErrNotLastStep):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "complete all steps before submitting"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Sraju03/editor-sub000/internal/models"
)

type fakeWizardBackend struct {
	created int
	updated int
}

func (f *fakeWizardBackend) ProductCodes(context.Context, int, int, string) ([]models.ProductCode, error) {
	return nil, nil
}

func (f *fakeWizardBackend) CreateSubmission(_ context.Context, sub *models.Submission) (*models.Submission, error) {
	f.created++
	out := *sub
	out.ID = "SUB-001"
	return &out, nil
}

func (f *fakeWizardBackend) UpdateSubmission(_ context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	f.updated++
	out := *sub
	out.ID = id
	return &out, nil
}

func (f *fakeWizardBackend) SuggestIntendedUse(context.Context, string, string, string) (string, error) {
	return "", nil
}

func (f *fakeWizardBackend) SuggestPredicates(context.Context, string, string) ([]models.PredicateDevice, error) {
	return nil, nil
}

func (f *fakeWizardBackend) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	return &models.Submission{
		ID:                  id,
		SubmissionTitle:     "Acme Analyzer Follow-up",
		SubmissionType:      models.SubmissionTypeTraditional,
		RegulatoryPathway:   models.PathwayFiveTenK,
		DeviceName:          "Acme Analyzer",
		ProductCode:         "NBW",
		RegulationNumber:    "862.1345",
		DeviceClass:         "II",
		PredicateDeviceName: "Beta Analyzer",
		PredicateK:          "K123456",
		IntendedUse:         "Quantitative measurement of glucose in whole blood.",
		ClinicalSetting:     "Point of care",
		TargetSpecimen:      "Whole blood",
		TargetMarket:        "US",
		SubmitterOrg:        "acme-devices",
		ContactName:         "Pat Doe",
		ContactEmail:        "pat@acme.example",
		ReviewerID:          "lead-1",
		InternalDeadline:    "2026-12-01",
	}, nil
}

type recordingDispatcher struct {
	orgs   []string
	events []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, orgID, event string, _ interface{}) error {
	d.orgs = append(d.orgs, orgID)
	d.events = append(d.events, event)
	return nil
}

func wizardRouter(h *WizardHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/wizard/sessions", h.Create)
	r.Route("/wizard/sessions/{id}", func(r chi.Router) {
		r.Post("/fields", h.SetFields)
		r.Post("/next", h.Next)
		r.Post("/submit", h.Submit)
	})
	return r
}

func postJSON(t *testing.T, r chi.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, r chi.Router, body interface{}) string {
	t.Helper()
	rec := postJSON(t, r, "/wizard/sessions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var state struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	return state.SessionID
}

func draftFields() map[string]interface{} {
	set := func(key, value string) map[string]string {
		return map[string]string{"key": key, "value": value}
	}
	return map[string]interface{}{
		"fields": []map[string]string{
			set(models.FieldSubmissionTitle, "Acme Glucose Monitor"),
			set(models.FieldSubmissionType, models.SubmissionTypeTraditional),
			set(models.FieldRegulatoryPathway, models.PathwayFiveTenK),
			set(models.FieldDeviceName, "Acme Glucose Monitor"),
			set(models.FieldProductCode, "NBW"),
			set(models.FieldRegulationNumber, "862.1345"),
			set(models.FieldDeviceClass, "II"),
			set(models.FieldPredicateDeviceName, "Beta Monitor"),
			set(models.FieldPredicateK, "K123456"),
			set(models.FieldIntendedUse, "Quantitative measurement of glucose in whole blood."),
			set(models.FieldClinicalSetting, "Point of care"),
			set(models.FieldTargetSpecimen, "Whole blood"),
			set(models.FieldTargetMarket, "US"),
			set(models.FieldSubmitterOrg, "acme-devices"),
			set(models.FieldContactName, "Pat Doe"),
			set(models.FieldContactEmail, "pat@acme.example"),
			set(models.FieldReviewerLead, "lead-1"),
			set(models.FieldInternalDeadline, "2026-12-01"),
		},
	}
}

func walkToLastStep(t *testing.T, r chi.Router, id string) {
	t.Helper()
	for i := 0; i < 4; i++ {
		rec := postJSON(t, r, "/wizard/sessions/"+id+"/next", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("next %d status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
	}
}

func TestWizardSubmit_DispatchesCreatedEvent(t *testing.T) {
	backend := &fakeWizardBackend{}
	events := &recordingDispatcher{}
	r := wizardRouter(NewWizardHandler(backend, events))

	id := createSession(t, r, nil)
	if rec := postJSON(t, r, "/wizard/sessions/"+id+"/fields", draftFields()); rec.Code != http.StatusOK {
		t.Fatalf("fields status = %d, body %s", rec.Code, rec.Body.String())
	}
	walkToLastStep(t, r, id)

	rec := postJSON(t, r, "/wizard/sessions/"+id+"/submit", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	if backend.created != 1 {
		t.Errorf("created calls = %d, want 1", backend.created)
	}
	if len(events.events) != 1 || events.events[0] != models.EventSubmissionCreated {
		t.Fatalf("events = %v, want [%s]", events.events, models.EventSubmissionCreated)
	}
	if events.orgs[0] != "acme-devices" {
		t.Errorf("event org = %q, want acme-devices", events.orgs[0])
	}
}

func TestWizardSubmit_DispatchesUpdatedEventForEdit(t *testing.T) {
	backend := &fakeWizardBackend{}
	events := &recordingDispatcher{}
	r := wizardRouter(NewWizardHandler(backend, events))

	id := createSession(t, r, map[string]string{"submission_id": "SUB-007"})
	walkToLastStep(t, r, id)

	rec := postJSON(t, r, "/wizard/sessions/"+id+"/submit", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	if backend.updated != 1 {
		t.Errorf("updated calls = %d, want 1", backend.updated)
	}
	if len(events.events) != 1 || events.events[0] != models.EventSubmissionUpdated {
		t.Fatalf("events = %v, want [%s]", events.events, models.EventSubmissionUpdated)
	}
}

func TestWizardSubmit_NoEventOnRejection(t *testing.T) {
	backend := &fakeWizardBackend{}
	events := &recordingDispatcher{}
	r := wizardRouter(NewWizardHandler(backend, events))

	id := createSession(t, r, nil)
	rec := postJSON(t, r, "/wizard/sessions/"+id+"/submit", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("submit status = %d, want 400", rec.Code)
	}
	if len(events.events) != 0 {
		t.Errorf("events = %v, want none", events.events)
	}
}

package wizard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sraju03/editor-sub000/internal/gateway"
	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/validation"
)

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	mu sync.Mutex

	createCalls int
	updateCalls int
	codeCalls   int32

	createErr error
	created   *models.Submission

	block chan struct{} // if set, CreateSubmission waits on it
}

func (f *fakeBackend) ProductCodes(_ context.Context, page, limit int, search string) ([]models.ProductCode, error) {
	atomic.AddInt32(&f.codeCalls, 1)
	return []models.ProductCode{{Code: "NBW", Name: "Glucose Meter", RegulationNumber: "862.1345"}}, nil
}

func (f *fakeBackend) CreateSubmission(_ context.Context, sub *models.Submission) (*models.Submission, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	out := *sub
	out.ID = "SUB-001"
	return &out, nil
}

func (f *fakeBackend) UpdateSubmission(_ context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	out := *sub
	out.ID = id
	return &out, nil
}

func (f *fakeBackend) SuggestIntendedUse(_ context.Context, productCode, deviceCategory, predicateName string) (string, error) {
	return "This device is intended for use by adults in a hospital setting for diagnosis of disease.", nil
}

func (f *fakeBackend) SuggestPredicates(_ context.Context, productCode, description string) ([]models.PredicateDevice, error) {
	return []models.PredicateDevice{{Name: "GlucoCheck Pro", KNumber: "K987654"}}, nil
}

func fillStep1(t *testing.T, c *Controller, subType string) {
	t.Helper()
	mustSet(t, c, models.FieldSubmissionTitle, "ACME Glucose Monitor 510(k)")
	mustSet(t, c, models.FieldSubmissionType, subType)
	mustSet(t, c, models.FieldRegulatoryPathway, "510k")
}

func fillStep2(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, models.FieldDeviceName, "ACME Glucose Monitor")
	mustSet(t, c, models.FieldProductCode, "NBW")
	mustSet(t, c, models.FieldDeviceClass, "class-ii")
	mustSet(t, c, models.FieldPredicateDeviceName, "GlucoCheck Pro")
	mustSet(t, c, models.FieldPredicateK, "K123456")
}

func fillStep3(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, models.FieldIntendedUse, "Quantitative measurement of glucose in whole blood.")
	mustSet(t, c, models.FieldClinicalSetting, "point-of-care")
	mustSet(t, c, models.FieldTargetSpecimen, "whole-blood")
	mustSet(t, c, models.FieldTargetMarket, "us")
}

func fillStep5(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, models.FieldSubmitterOrg, "ACME Diagnostics")
	mustSet(t, c, models.FieldContactName, "Jordan Smith")
	mustSet(t, c, models.FieldContactEmail, "jordan@acme.example.com")
	mustSet(t, c, models.FieldReviewerLead, "rev-001")
	mustSet(t, c, models.FieldInternalDeadline, "2026-03-01")
}

func mustSet(t *testing.T, c *Controller, key, value string) {
	t.Helper()
	if err := c.SetText(key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func mustNext(t *testing.T, c *Controller) {
	t.Helper()
	res, err := c.Next()
	if err != nil {
		t.Fatalf("next from step %d: %v", c.Step(), err)
	}
	if !res.OK() {
		t.Fatalf("next from step %d rejected: %q", c.Step(), res.Message)
	}
}

// walkToLastStep fills every step validly and advances to step 5.
func walkToLastStep(t *testing.T, c *Controller, subType string) {
	t.Helper()
	fillStep1(t, c, subType)
	mustNext(t, c)
	fillStep2(t, c)
	mustNext(t, c)
	fillStep3(t, c)
	mustNext(t, c)
	mustNext(t, c) // step 4 has no required fields
	fillStep5(t, c)
}

func TestNext_RejectsInvalidStepAndHoldsPosition(t *testing.T) {
	c := New(&fakeBackend{})
	fillStep1(t, c, "traditional")
	mustNext(t, c)

	// Step 2 with an empty device name.
	mustSet(t, c, models.FieldProductCode, "NBW")
	res, err := c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if res.OK() {
		t.Fatal("step 2 without a device name should be rejected")
	}
	if c.Step() != validation.StepDeviceInfo {
		t.Errorf("step = %d, want to stay at 2", c.Step())
	}
	if !c.Errors().Errors[models.FieldDeviceName] {
		t.Error("deviceName should be flagged")
	}
}

func TestNext_AdvancesAndClearsErrors(t *testing.T) {
	c := New(&fakeBackend{})

	res, err := c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if res.OK() {
		t.Fatal("empty step 1 should fail")
	}

	fillStep1(t, c, "traditional")
	mustNext(t, c)
	if c.Step() != validation.StepDeviceInfo {
		t.Errorf("step = %d, want 2", c.Step())
	}
	if len(c.Errors().Errors) != 0 {
		t.Errorf("errors should be cleared after a successful transition, got %v", c.Errors().Errors)
	}
}

func TestNext_NoOpPastLastStep(t *testing.T) {
	c := New(&fakeBackend{})
	walkToLastStep(t, c, "traditional")
	if c.Step() != validation.StepCount {
		t.Fatalf("step = %d, want %d", c.Step(), validation.StepCount)
	}
	mustNext(t, c)
	if c.Step() != validation.StepCount {
		t.Errorf("next past the last step moved to %d", c.Step())
	}
}

func TestBack_AlwaysPermittedAndClearsErrors(t *testing.T) {
	c := New(&fakeBackend{})
	fillStep1(t, c, "traditional")
	mustNext(t, c)

	// Provoke errors on step 2, then go back.
	if res, _ := c.Next(); res.OK() {
		t.Fatal("expected step 2 errors")
	}
	if err := c.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if c.Step() != validation.StepOverview {
		t.Errorf("step = %d, want 1", c.Step())
	}
	if len(c.Errors().Errors) != 0 {
		t.Error("back should clear the error set")
	}

	// No-op before step 1.
	if err := c.Back(); err != nil {
		t.Fatalf("back at step 1: %v", err)
	}
	if c.Step() != validation.StepOverview {
		t.Errorf("back below step 1 moved to %d", c.Step())
	}
}

func TestSetText_ClearsFieldError(t *testing.T) {
	c := New(&fakeBackend{})
	if res, _ := c.Next(); res.OK() {
		t.Fatal("expected step 1 errors")
	}
	if !c.Errors().Errors[models.FieldSubmissionTitle] {
		t.Fatal("title should be flagged")
	}

	mustSet(t, c, models.FieldSubmissionTitle, "A title")
	if c.Errors().Errors[models.FieldSubmissionTitle] {
		t.Error("typing into a field should clear its error")
	}
}

func TestSubmit_PolicyRejectsNonTraditional(t *testing.T) {
	backend := &fakeBackend{}
	c := New(backend)
	walkToLastStep(t, c, "special")

	_, err := c.Submit(context.Background())
	var pe *PolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("want PolicyError, got %v", err)
	}
	if pe.Message != MsgOnlyTraditional {
		t.Errorf("message = %q, want the traditional-only rejection", pe.Message)
	}
	if backend.createCalls != 0 {
		t.Error("policy rejection must not reach the network")
	}
	// State retained for correction.
	if c.Step() != validation.StepCount {
		t.Errorf("step = %d, want to stay at the last step", c.Step())
	}
	if c.Draft().SubmissionTitle == "" {
		t.Error("draft should be retained after a policy rejection")
	}

	// Correcting the type makes the same draft submittable.
	mustSet(t, c, models.FieldSubmissionType, "traditional")
	saved, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit after correction: %v", err)
	}
	if saved.ID != "SUB-001" {
		t.Errorf("id = %q, want SUB-001", saved.ID)
	}
}

func TestSubmit_ValidationFailureNeverReachesNetwork(t *testing.T) {
	backend := &fakeBackend{}
	c := New(backend)
	walkToLastStep(t, c, "traditional")
	mustSet(t, c, models.FieldInternalDeadline, "2026-02-30")

	_, err := c.Submit(context.Background())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if backend.createCalls != 0 {
		t.Error("validation failure must not reach the network")
	}
	if !c.Errors().Errors[models.FieldInternalDeadline] {
		t.Error("deadline should be flagged for correction")
	}
}

func TestSubmit_ClearsDraftOnSuccess(t *testing.T) {
	c := New(&fakeBackend{})
	walkToLastStep(t, c, "traditional")

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Draft().SubmissionTitle != "" {
		t.Error("draft should be cleared after a successful submit")
	}
}

func TestSubmit_ServerErrorSurfacedAndStateRetained(t *testing.T) {
	backend := &fakeBackend{
		createErr: &gateway.ServerError{Status: 400, Message: gateway.MsgDuplicateTitle},
	}
	c := New(backend)
	walkToLastStep(t, c, "traditional")

	_, err := c.Submit(context.Background())
	var se *gateway.ServerError
	if !errors.As(err, &se) {
		t.Fatalf("want ServerError, got %v", err)
	}
	if se.Message != gateway.MsgDuplicateTitle {
		t.Errorf("message = %q", se.Message)
	}
	if c.Draft().SubmissionTitle == "" {
		t.Error("draft should be retained after a server error")
	}
}

func TestSubmit_OnlyFromLastStep(t *testing.T) {
	c := New(&fakeBackend{})
	fillStep1(t, c, "traditional")

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrNotLastStep) {
		t.Errorf("want ErrNotLastStep, got %v", err)
	}
}

func TestSubmit_BusyGateBlocksReentrantTransitions(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	c := New(backend)
	walkToLastStep(t, c, "traditional")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := c.Submit(context.Background()); err != nil {
			t.Errorf("submit: %v", err)
		}
	}()

	// Wait until the submit goroutine is inside the backend call.
	for !c.Busy() {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Next(); !errors.Is(err, ErrBusy) {
		t.Errorf("Next during submit: want ErrBusy, got %v", err)
	}
	if err := c.Back(); !errors.Is(err, ErrBusy) {
		t.Errorf("Back during submit: want ErrBusy, got %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit: want ErrBusy, got %v", err)
	}

	close(backend.block)
	<-done
	if c.Busy() {
		t.Error("busy flag should clear after the call returns")
	}
}

func TestSubmit_DiscardedWhileInFlightDropsResponse(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	c := New(backend)
	walkToLastStep(t, c, "traditional")

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		errCh <- err
	}()
	for !c.Busy() {
		time.Sleep(time.Millisecond)
	}

	c.Discard()
	close(backend.block)

	if err := <-errCh; !errors.Is(err, ErrDiscarded) {
		t.Errorf("want ErrDiscarded for a response arriving after discard, got %v", err)
	}
}

func TestEdit_SubmitUpdatesExistingRecord(t *testing.T) {
	backend := &fakeBackend{}
	c := NewEdit(backend, &models.Submission{
		ID:                  "SUB-042",
		SubmissionTitle:     "ACME Glucose Monitor 510(k)",
		SubmissionType:      "traditional",
		RegulatoryPathway:   "510k",
		DeviceName:          "ACME Glucose Monitor",
		ProductCode:         "NBW",
		DeviceClass:         "class-ii",
		PredicateDeviceName: "GlucoCheck Pro",
		PredicateK:          "K123456",
		IntendedUse:         "Glucose measurement.",
		ClinicalSetting:     "point-of-care",
		TargetSpecimen:      "whole-blood",
		TargetMarket:        "us",
		SubmitterOrg:        "ACME",
		ContactName:         "Jordan",
		ContactEmail:        "jordan@acme.example.com",
		ReviewerID:          "rev-001",
		InternalDeadline:    "2026-03-01",
	})

	for i := 0; i < validation.StepCount-1; i++ {
		mustNext(t, c)
	}
	saved, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if backend.updateCalls != 1 || backend.createCalls != 0 {
		t.Errorf("edit flow should update, not create (updates=%d creates=%d)", backend.updateCalls, backend.createCalls)
	}
	if saved.ID != "SUB-042" {
		t.Errorf("id = %q, want SUB-042", saved.ID)
	}
}

func TestSelectProductCode_AutoFills(t *testing.T) {
	c := New(&fakeBackend{})
	c.SelectProductCode(models.ProductCode{Code: "NBW", RegulationNumber: "862.1345"})

	d := c.Draft()
	if d.ProductCode != "NBW" || d.DeviceClass != "class-ii" || d.RegulationNumber != "862.1345" {
		t.Errorf("draft after selection = %+v", d)
	}
}

func TestSelectPredicate_FillsPredicateFields(t *testing.T) {
	c := New(&fakeBackend{})
	c.SelectPredicate(models.PredicateDevice{Name: "GlucoCheck Pro", KNumber: "K987654"})

	d := c.Draft()
	if d.PredicateDeviceName != "GlucoCheck Pro" || d.PredicateK != "K987654" {
		t.Errorf("draft = %+v", d)
	}
	if d.DeviceName != "GlucoCheck Pro" {
		t.Error("empty device name should be filled from the predicate")
	}
}

func TestSearchProductCodes_DebouncesBursts(t *testing.T) {
	backend := &fakeBackend{}
	c := New(backend)

	var delivered int32
	for _, q := range []string{"g", "gl", "glu", "gluc"} {
		c.SearchProductCodes(context.Background(), q, func([]models.ProductCode, error) {
			atomic.AddInt32(&delivered, 1)
		})
	}

	time.Sleep(SearchDebounce + 150*time.Millisecond)
	if n := atomic.LoadInt32(&backend.codeCalls); n != 1 {
		t.Errorf("backend calls = %d, want 1 for a keystroke burst", n)
	}
	if n := atomic.LoadInt32(&delivered); n != 1 {
		t.Errorf("deliveries = %d, want 1", n)
	}
}

func TestSearchProductCodes_DiscardDropsPending(t *testing.T) {
	backend := &fakeBackend{}
	c := New(backend)

	c.SearchProductCodes(context.Background(), "glucose", func([]models.ProductCode, error) {
		t.Error("delivery after discard")
	})
	c.Discard()

	time.Sleep(SearchDebounce + 100*time.Millisecond)
}

func TestDiscard_BlocksFurtherActions(t *testing.T) {
	c := New(&fakeBackend{})
	c.Discard()

	if err := c.SetText(models.FieldSubmissionTitle, "x"); !errors.Is(err, ErrDiscarded) {
		t.Errorf("SetText after discard: %v", err)
	}
	if _, err := c.Next(); !errors.Is(err, ErrDiscarded) {
		t.Errorf("Next after discard: %v", err)
	}
}

// Package wizard drives the multi-step submission intake: an explicit
// draft owned by the controller, mutated only through named actions, with
// step transitions gated on the validation table. The same controller
// serves the create and the edit flow.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sraju03/editor-sub000/internal/models"
	"github.com/Sraju03/editor-sub000/internal/validation"
)

// Backend is the slice of the remote gateway the wizard consumes.
type Backend interface {
	ProductCodes(ctx context.Context, page, limit int, search string) ([]models.ProductCode, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error)
	SuggestIntendedUse(ctx context.Context, productCode, deviceCategory, predicateName string) (string, error)
	SuggestPredicates(ctx context.Context, productCode, description string) ([]models.PredicateDevice, error)
}

// MsgOnlyTraditional is the fixed policy rejection for non-traditional
// submission types. A product constraint, not a data error.
const MsgOnlyTraditional = "Only Traditional 510(k) submissions are supported at this time."

// PolicyError is a deliberate business-rule rejection, reported like a
// validation error and recoverable by changing the draft.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

// ValidationError reports a failing full-draft validation at submit.
// Field-scoped, local and recoverable; never sent to the network.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string { return e.Result.Message }

var (
	// ErrBusy rejects a transition while an async operation for this
	// draft is in flight.
	ErrBusy = errors.New("another operation is in progress")
	// ErrDiscarded rejects actions on a controller whose draft was
	// abandoned (navigation away).
	ErrDiscarded = errors.New("draft was discarded")
	// ErrNotLastStep rejects submit before the final step.
	ErrNotLastStep = errors.New("submit is only available on the final step")
)

// SearchDebounce is the quiet period applied to product-code search
// input before a lookup is issued.
const SearchDebounce = 300 * time.Millisecond

const productCodePageSize = 100

type Controller struct {
	mu      sync.Mutex
	backend Backend

	submissionID string // empty in the create flow
	draft        *models.Draft
	step         int
	errs         validation.Result

	busy      bool
	discarded bool
	searchGen int

	search *debouncer
}

// New starts a create-flow controller with an empty draft at step 1.
func New(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		draft:   &models.Draft{},
		step:    validation.StepOverview,
		errs:    validation.Result{Errors: map[string]bool{}},
		search:  newDebouncer(SearchDebounce),
	}
}

// NewEdit starts an edit-flow controller seeded from a persisted record.
func NewEdit(backend Backend, sub *models.Submission) *Controller {
	c := New(backend)
	c.submissionID = sub.ID
	c.draft = models.FromSubmission(sub)
	return c
}

// Editing reports whether Submit will update an existing record rather
// than create a new one.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissionID != ""
}

// Step reports the current wizard step, 1-based.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Draft returns a copy of the current draft for rendering.
func (c *Controller) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.draft
}

// Errors returns the current field-error set.
func (c *Controller) Errors() validation.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs
}

// Busy reports whether an async operation for this draft is in flight;
// the UI disables the triggering action while true.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// SetText assigns a string field and clears its standing error, so the
// user sees the highlight drop as they correct the value.
func (c *Controller) SetText(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discarded {
		return ErrDiscarded
	}
	if !c.draft.SetText(key, value) {
		return errors.New("unknown field: " + key)
	}
	delete(c.errs.Errors, key)
	return nil
}

// SetFlag assigns a boolean field.
func (c *Controller) SetFlag(key string, value bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discarded {
		return ErrDiscarded
	}
	if !c.draft.SetFlag(key, value) {
		return errors.New("unknown field: " + key)
	}
	delete(c.errs.Errors, key)
	return nil
}

// ToggleSection flips a completed-section marker on the draft.
func (c *Controller) ToggleSection(section string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.ToggleSection(section)
}

// SelectProductCode applies a product-code choice and auto-fills the
// device class and regulation number from the listing entry.
func (c *Controller) SelectProductCode(code models.ProductCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.ProductCode = code.Code
	c.draft.DeviceClass = "class-ii"
	c.draft.RegulationNumber = code.RegulationNumber
	delete(c.errs.Errors, models.FieldProductCode)
	delete(c.errs.Errors, models.FieldDeviceClass)
	delete(c.errs.Errors, models.FieldRegulationNumber)
}

// SelectPredicate applies a suggested predicate device to the draft.
func (c *Controller) SelectPredicate(device models.PredicateDevice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PredicateDeviceName = device.Name
	c.draft.PredicateK = device.KNumber
	if c.draft.DeviceName == "" {
		c.draft.DeviceName = device.Name
	}
	delete(c.errs.Errors, models.FieldPredicateDeviceName)
	delete(c.errs.Errors, models.FieldPredicateK)
}

// Next validates the current step and advances on success. A failing
// step leaves the state unchanged and records the error set for the UI.
func (c *Controller) Next() (validation.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discarded {
		return validation.Result{}, ErrDiscarded
	}
	if c.busy {
		return validation.Result{}, ErrBusy
	}

	res := validation.ValidateStep(c.step, c.draft)
	if !res.OK() {
		c.errs = res
		return res, nil
	}

	if c.step < validation.StepCount {
		c.step++
	}
	c.errs = validation.Result{Errors: map[string]bool{}}
	return c.errs, nil
}

// Back always succeeds: it decrements the step (no-op before step 1) and
// clears the error set without re-validating the step being left.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discarded {
		return ErrDiscarded
	}
	if c.busy {
		return ErrBusy
	}
	if c.step > validation.StepOverview {
		c.step--
	}
	c.errs = validation.Result{Errors: map[string]bool{}}
	return nil
}

// Submit runs full-draft validation and the traditional-only policy,
// then dispatches the assembled record. On success the draft is cleared
// and the persisted record returned. Validation and policy failures keep
// the draft intact for correction and never reach the network.
func (c *Controller) Submit(ctx context.Context) (*models.Submission, error) {
	c.mu.Lock()
	if c.discarded {
		c.mu.Unlock()
		return nil, ErrDiscarded
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.step != validation.StepCount {
		c.mu.Unlock()
		return nil, ErrNotLastStep
	}

	res := validation.ValidateAll(c.draft)
	if !res.OK() {
		c.errs = res
		c.mu.Unlock()
		return nil, &ValidationError{Result: res}
	}

	if c.draft.SubmissionType != models.SubmissionTypeTraditional {
		c.mu.Unlock()
		return nil, &PolicyError{Message: MsgOnlyTraditional}
	}

	record := c.draft.ToSubmission()
	id := c.submissionID
	c.busy = true
	c.mu.Unlock()

	var (
		saved *models.Submission
		err   error
	)
	if id == "" {
		saved, err = c.backend.CreateSubmission(ctx, record)
	} else {
		saved, err = c.backend.UpdateSubmission(ctx, id, record)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false

	// Stale-response guard: if the draft was abandoned while the call
	// was in flight, its outcome is dropped.
	if c.discarded {
		return nil, ErrDiscarded
	}
	if err != nil {
		return nil, err
	}

	c.draft = &models.Draft{}
	c.errs = validation.Result{Errors: map[string]bool{}}
	return saved, nil
}

// GenerateIntendedUse asks the backend to draft the intended-use text
// and stores the result on the draft. User-triggered, at most once per
// invocation; no automatic retry.
func (c *Controller) GenerateIntendedUse(ctx context.Context) error {
	c.mu.Lock()
	if c.discarded {
		c.mu.Unlock()
		return ErrDiscarded
	}
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.draft.ProductCode == "" || c.draft.DeviceName == "" {
		c.mu.Unlock()
		return &PolicyError{Message: "Select a product code and enter a device name first"}
	}
	productCode := c.draft.ProductCode
	deviceName := c.draft.DeviceName
	predicate := c.draft.PredicateDeviceName
	c.busy = true
	c.mu.Unlock()

	text, err := c.backend.SuggestIntendedUse(ctx, productCode, deviceName, predicate)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if c.discarded {
		return ErrDiscarded
	}
	if err != nil {
		return err
	}
	c.draft.IntendedUse = text
	delete(c.errs.Errors, models.FieldIntendedUse)
	return nil
}

// SuggestPredicates asks the backend for candidate predicate devices
// matching the current product code and search text.
func (c *Controller) SuggestPredicates(ctx context.Context) ([]models.PredicateDevice, error) {
	c.mu.Lock()
	if c.discarded {
		c.mu.Unlock()
		return nil, ErrDiscarded
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	if c.draft.ProductCode == "" {
		c.mu.Unlock()
		return nil, &PolicyError{Message: "Select a product code first"}
	}
	productCode := c.draft.ProductCode
	search := c.draft.PredicateSearch
	c.busy = true
	c.mu.Unlock()

	devices, err := c.backend.SuggestPredicates(ctx, productCode, search)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if c.discarded {
		return nil, ErrDiscarded
	}
	return devices, err
}

// SearchProductCodes records the search text and schedules a debounced
// page fetch. The callback runs off the event loop; results arriving
// after a newer search or after Discard are dropped.
func (c *Controller) SearchProductCodes(ctx context.Context, search string, deliver func([]models.ProductCode, error)) {
	c.mu.Lock()
	if c.discarded {
		c.mu.Unlock()
		return
	}
	c.draft.PredicateSearch = search
	c.draft.Page = 1
	c.searchGen++
	gen := c.searchGen
	c.mu.Unlock()

	c.search.Do(func() {
		codes, err := c.backend.ProductCodes(ctx, 1, productCodePageSize, search)

		c.mu.Lock()
		stale := c.discarded || gen != c.searchGen
		c.mu.Unlock()
		if stale {
			return
		}
		deliver(codes, err)
	})
}

// Discard abandons the draft: pending debounced searches are cancelled
// and any in-flight responses are dropped when they arrive.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discarded = true
	c.search.Stop()
	c.draft = &models.Draft{}
}

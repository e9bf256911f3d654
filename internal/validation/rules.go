// Package validation holds the declarative field-constraint table shared
// by the create and edit wizards, and the evaluator that applies it to a
// draft. Rules are declared once and consumed both per-step (navigation
// gating) and in aggregate (final submit).
package validation

import (
	"regexp"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// StepGlobal marks rules evaluated only by ValidateAll, on top of the
// union of all step rules: whole-record checks not tied to one screen.
const StepGlobal = 0

// Wizard steps.
const (
	StepOverview = iota + 1
	StepDeviceInfo
	StepIntendedUse
	StepScopeFlags
	StepReviewerInfo

	StepCount = StepReviewerInfo
)

type Kind int

const (
	Required Kind = iota
	RequiredIf
	Pattern
	MaxLength
	OneOf
	CalendarDate
)

// Constraint is one check on a field. When is an optional boolean field
// key gating the whole constraint: it only applies while draft.Flag(When)
// is true, evaluated against the current draft, not a snapshot.
type Constraint struct {
	Kind    Kind
	When    string
	Regexp  *regexp.Regexp
	Max     int
	Set     []string
	Message string
}

// Rule binds a field to its constraints within one wizard step.
type Rule struct {
	Step        int
	Field       string
	Label       string
	Constraints []Constraint
}

var (
	reKNumber    = regexp.MustCompile(`^K\d{6}$`)
	reRegulation = regexp.MustCompile(`^\d{3}\.\d{4}$`)
	reEmail      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reISODate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const (
	msgPredicateK = "Predicate 510(k) Number must be in the format KXXXXXX (e.g., K123456)"
	msgPreviousK  = "Previous 510(k) Number must be in the format KXXXXXX (e.g., K123456)"
	msgRegulation = "Regulation Number must be in the format XXX.XXXX (e.g., 862.1345)"
	msgEmail      = "Please provide a valid email address for Contact Email"
	msgDeadline   = "Please select a valid Internal Deadline (yyyy-mm-dd)"
	msgDeadlineBad = "Internal Deadline must be a valid date"
)

// table is the single source of validation truth. Order matters: missing
// fields are reported in declaration order.
var table = []Rule{
	// Step 1: Overview
	{StepOverview, models.FieldSubmissionTitle, "Submission Title", []Constraint{
		{Kind: Required},
		{Kind: MaxLength, Max: 200, Message: "Submission Title must be 200 characters or fewer"},
	}},
	{StepOverview, models.FieldSubmissionType, "Submission Type", []Constraint{
		{Kind: Required},
		{Kind: OneOf, Set: []string{models.SubmissionTypeTraditional, models.SubmissionTypeAbbreviated, models.SubmissionTypeSpecial},
			Message: "Submission Type must be one of: traditional, abbreviated, special"},
	}},
	{StepOverview, models.FieldRegulatoryPathway, "Regulatory Pathway", []Constraint{
		{Kind: Required},
		{Kind: OneOf, Set: []string{models.PathwayFiveTenK, models.PathwayDeNovo, models.PathwayPMA},
			Message: "Regulatory Pathway must be one of: 510k, de-novo, pma"},
	}},
	{StepOverview, models.FieldPreviousK, "Previous 510(k) Number", []Constraint{
		{Kind: RequiredIf, When: models.FieldIsFollowUp},
		{Kind: Pattern, When: models.FieldIsFollowUp, Regexp: reKNumber, Message: msgPreviousK},
	}},

	// Step 2: Device Info
	{StepDeviceInfo, models.FieldDeviceName, "Device Name", []Constraint{{Kind: Required}}},
	{StepDeviceInfo, models.FieldProductCode, "Product Code", []Constraint{{Kind: Required}}},
	{StepDeviceInfo, models.FieldRegulationNumber, "Regulation Number", []Constraint{
		{Kind: Pattern, Regexp: reRegulation, Message: msgRegulation},
	}},
	{StepDeviceInfo, models.FieldDeviceClass, "Device Class", []Constraint{{Kind: Required}}},
	{StepDeviceInfo, models.FieldPredicateDeviceName, "Predicate Device Name", []Constraint{{Kind: Required}}},
	{StepDeviceInfo, models.FieldPredicateK, "Predicate 510(k) Number", []Constraint{
		{Kind: Required},
		{Kind: Pattern, Regexp: reKNumber, Message: msgPredicateK},
	}},

	// Step 3: Intended Use
	{StepIntendedUse, models.FieldIntendedUse, "Intended Use", []Constraint{
		{Kind: Required},
		{Kind: MaxLength, Max: 10000, Message: "Intended Use must be 10000 characters or fewer"},
	}},
	{StepIntendedUse, models.FieldClinicalSetting, "Clinical Setting", []Constraint{{Kind: Required}}},
	{StepIntendedUse, models.FieldTargetSpecimen, "Target Specimen", []Constraint{{Kind: Required}}},
	{StepIntendedUse, models.FieldTargetMarket, "Target Market", []Constraint{{Kind: Required}}},

	// Step 4: Scope & Flags has no required fields.

	// Step 5: Reviewer Info
	{StepReviewerInfo, models.FieldSubmitterOrg, "Submitter Organization", []Constraint{{Kind: Required}}},
	{StepReviewerInfo, models.FieldContactName, "Contact Name", []Constraint{{Kind: Required}}},
	{StepReviewerInfo, models.FieldContactEmail, "Contact Email", []Constraint{
		{Kind: Required},
		{Kind: Pattern, Regexp: reEmail, Message: msgEmail},
	}},
	{StepReviewerInfo, models.FieldReviewerLead, "Reviewer Lead", []Constraint{{Kind: Required}}},
	{StepReviewerInfo, models.FieldInternalDeadline, "Internal Deadline", []Constraint{
		{Kind: Required},
		{Kind: Pattern, Regexp: reISODate, Message: msgDeadline},
	}},

	// Whole-record checks re-run at final submit.
	{StepGlobal, models.FieldInternalDeadline, "Internal Deadline", []Constraint{
		{Kind: CalendarDate, Message: msgDeadlineBad},
	}},
}

// StepRules returns the rules bound to one wizard step.
func StepRules(step int) []Rule {
	var out []Rule
	for _, r := range table {
		if r.Step == step {
			out = append(out, r)
		}
	}
	return out
}

// AllRules returns the whole table, step rules before global ones.
func AllRules() []Rule {
	out := make([]Rule, 0, len(table))
	for _, r := range table {
		if r.Step != StepGlobal {
			out = append(out, r)
		}
	}
	for _, r := range table {
		if r.Step == StepGlobal {
			out = append(out, r)
		}
	}
	return out
}

package models

import "time"

// Submission types accepted by the intake wizard. Only Traditional
// submissions make it past Submit; the other two are captured so the
// draft round-trips without data loss.
const (
	SubmissionTypeTraditional = "traditional"
	SubmissionTypeAbbreviated = "abbreviated"
	SubmissionTypeSpecial     = "special"
)

const (
	PathwayFiveTenK = "510k"
	PathwayDeNovo   = "de-novo"
	PathwayPMA      = "pma"
)

// Submission is the persisted unit of regulatory work. Field names follow
// the backend's wire format.
type Submission struct {
	ID                       string    `json:"id,omitempty"`
	SubmissionTitle          string    `json:"submission_title"`
	SubmissionType           string    `json:"submission_type"`
	RegulatoryPathway        string    `json:"regulatory_pathway"`
	IsFollowUp               bool      `json:"is_follow_up"`
	PreviousK                string    `json:"previous_k,omitempty"`
	DeviceName               string    `json:"device_name"`
	ProductCode              string    `json:"product_code"`
	RegulationNumber         string    `json:"regulation_number,omitempty"`
	DeviceClass              string    `json:"device_class"`
	PredicateDeviceName      string    `json:"predicate_device_name"`
	PredicateK               string    `json:"predicate_k"`
	IntendedUse              string    `json:"intended_use"`
	ClinicalSetting          string    `json:"clinical_setting"`
	TargetSpecimen           string    `json:"target_specimen"`
	TargetMarket             string    `json:"target_market"`
	IncludesClinicalTesting  bool      `json:"includes_clinical_testing"`
	IncludesSoftware         bool      `json:"includes_software"`
	IncludesSterilePackaging bool      `json:"includes_sterile_packaging"`
	MajorPredicateChanges    bool      `json:"major_predicate_changes"`
	ChecklistNotes           string    `json:"checklist_notes,omitempty"`
	SubmitterOrg             string    `json:"submitter_org"`
	ContactName              string    `json:"contact_name"`
	ContactEmail             string    `json:"contact_email"`
	ContactPhone             string    `json:"contact_phone,omitempty"`
	ReviewerID               string    `json:"reviewer_id"`
	InternalDeadline         string    `json:"internal_deadline"`
	ReviewerNotes            string    `json:"reviewer_notes,omitempty"`
	CompletedSections        []string  `json:"completed_sections,omitempty"`
	CreatedAt                time.Time `json:"created_at,omitempty"`
	UpdatedAt                time.Time `json:"updated_at,omitempty"`
}

// ProductCode is one entry of the FDA product classification listing
// served by the backend.
type ProductCode struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	RegulationNumber string `json:"regulation_number"`
}

// PredicateDevice is a cleared device suggested as an equivalence
// benchmark.
type PredicateDevice struct {
	Name          string  `json:"name"`
	KNumber       string  `json:"k_number"`
	Manufacturer  string  `json:"manufacturer,omitempty"`
	ClearanceDate string  `json:"clearance_date,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
}

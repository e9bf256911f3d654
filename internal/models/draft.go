package models

import "strings"

// Draft field keys. The wizard, the validation table and the HTTP surface
// all address draft fields by these names.
const (
	FieldSubmissionTitle          = "submissionTitle"
	FieldSubmissionType           = "submissionType"
	FieldRegulatoryPathway        = "regulatoryPathway"
	FieldIsFollowUp               = "isFollowUp"
	FieldPreviousK                = "previousK"
	FieldDeviceName               = "deviceName"
	FieldProductCode              = "productCode"
	FieldRegulationNumber         = "regulationNumber"
	FieldDeviceClass              = "deviceClass"
	FieldPredicateDeviceName      = "predicateDeviceName"
	FieldPredicateK               = "predicateK"
	FieldIntendedUse              = "intendedUse"
	FieldClinicalSetting          = "clinicalSetting"
	FieldTargetSpecimen           = "targetSpecimen"
	FieldTargetMarket             = "targetMarket"
	FieldIncludesClinicalTesting  = "includesClinicalTesting"
	FieldIncludesSoftware         = "includesSoftware"
	FieldIncludesSterilePackaging = "includesSterilePackaging"
	FieldMajorPredicateChanges    = "majorPredicateChanges"
	FieldChecklistNotes           = "checklistNotes"
	FieldSubmitterOrg             = "submitterOrg"
	FieldContactName              = "contactName"
	FieldContactEmail             = "contactEmail"
	FieldContactPhone             = "contactPhone"
	FieldReviewerLead             = "reviewerLead"
	FieldInternalDeadline         = "internalDeadline"
	FieldReviewerNotes            = "reviewerNotes"
)

// Draft is the in-progress, not-yet-committed view of a Submission plus
// transient UI state. It is owned by one wizard controller for the
// duration of an editing session and discarded on navigation away.
type Draft struct {
	SubmissionTitle          string `json:"submissionTitle"`
	SubmissionType           string `json:"submissionType"`
	RegulatoryPathway        string `json:"regulatoryPathway"`
	IsFollowUp               bool   `json:"isFollowUp"`
	PreviousK                string `json:"previousK"`
	DeviceName               string `json:"deviceName"`
	ProductCode              string `json:"productCode"`
	RegulationNumber         string `json:"regulationNumber"`
	DeviceClass              string `json:"deviceClass"`
	PredicateDeviceName      string `json:"predicateDeviceName"`
	PredicateK               string `json:"predicateK"`
	IntendedUse              string `json:"intendedUse"`
	ClinicalSetting          string `json:"clinicalSetting"`
	TargetSpecimen           string `json:"targetSpecimen"`
	TargetMarket             string `json:"targetMarket"`
	IncludesClinicalTesting  bool   `json:"includesClinicalTesting"`
	IncludesSoftware         bool   `json:"includesSoftware"`
	IncludesSterilePackaging bool   `json:"includesSterilePackaging"`
	MajorPredicateChanges    bool   `json:"majorPredicateChanges"`
	ChecklistNotes           string `json:"checklistNotes"`
	SubmitterOrg             string `json:"submitterOrg"`
	ContactName              string `json:"contactName"`
	ContactEmail             string `json:"contactEmail"`
	ContactPhone             string `json:"contactPhone"`
	ReviewerLead             string `json:"reviewerLead"`
	InternalDeadline         string `json:"internalDeadline"`
	ReviewerNotes            string `json:"reviewerNotes"`

	CompletedSections []string `json:"completedSections,omitempty"`

	// Transient UI state, never persisted.
	PredicateSearch string `json:"-"`
	Page            int    `json:"-"`
}

// Text returns the string value of a field key, or "" for unknown and
// boolean keys. Validation treats whitespace-only values as empty.
func (d *Draft) Text(key string) string {
	switch key {
	case FieldSubmissionTitle:
		return d.SubmissionTitle
	case FieldSubmissionType:
		return d.SubmissionType
	case FieldRegulatoryPathway:
		return d.RegulatoryPathway
	case FieldPreviousK:
		return d.PreviousK
	case FieldDeviceName:
		return d.DeviceName
	case FieldProductCode:
		return d.ProductCode
	case FieldRegulationNumber:
		return d.RegulationNumber
	case FieldDeviceClass:
		return d.DeviceClass
	case FieldPredicateDeviceName:
		return d.PredicateDeviceName
	case FieldPredicateK:
		return d.PredicateK
	case FieldIntendedUse:
		return d.IntendedUse
	case FieldClinicalSetting:
		return d.ClinicalSetting
	case FieldTargetSpecimen:
		return d.TargetSpecimen
	case FieldTargetMarket:
		return d.TargetMarket
	case FieldChecklistNotes:
		return d.ChecklistNotes
	case FieldSubmitterOrg:
		return d.SubmitterOrg
	case FieldContactName:
		return d.ContactName
	case FieldContactEmail:
		return d.ContactEmail
	case FieldContactPhone:
		return d.ContactPhone
	case FieldReviewerLead:
		return d.ReviewerLead
	case FieldInternalDeadline:
		return d.InternalDeadline
	case FieldReviewerNotes:
		return d.ReviewerNotes
	}
	return ""
}

// Flag returns the boolean value of a field key, false for unknown keys.
func (d *Draft) Flag(key string) bool {
	switch key {
	case FieldIsFollowUp:
		return d.IsFollowUp
	case FieldIncludesClinicalTesting:
		return d.IncludesClinicalTesting
	case FieldIncludesSoftware:
		return d.IncludesSoftware
	case FieldIncludesSterilePackaging:
		return d.IncludesSterilePackaging
	case FieldMajorPredicateChanges:
		return d.MajorPredicateChanges
	}
	return false
}

// SetText assigns a string field by key and reports whether the key was
// recognized.
func (d *Draft) SetText(key, value string) bool {
	switch key {
	case FieldSubmissionTitle:
		d.SubmissionTitle = value
	case FieldSubmissionType:
		d.SubmissionType = value
	case FieldRegulatoryPathway:
		d.RegulatoryPathway = value
	case FieldPreviousK:
		d.PreviousK = value
	case FieldDeviceName:
		d.DeviceName = value
	case FieldProductCode:
		d.ProductCode = value
	case FieldRegulationNumber:
		d.RegulationNumber = value
	case FieldDeviceClass:
		d.DeviceClass = value
	case FieldPredicateDeviceName:
		d.PredicateDeviceName = value
	case FieldPredicateK:
		d.PredicateK = value
	case FieldIntendedUse:
		d.IntendedUse = value
	case FieldClinicalSetting:
		d.ClinicalSetting = value
	case FieldTargetSpecimen:
		d.TargetSpecimen = value
	case FieldTargetMarket:
		d.TargetMarket = value
	case FieldChecklistNotes:
		d.ChecklistNotes = value
	case FieldSubmitterOrg:
		d.SubmitterOrg = value
	case FieldContactName:
		d.ContactName = value
	case FieldContactEmail:
		d.ContactEmail = value
	case FieldContactPhone:
		d.ContactPhone = value
	case FieldReviewerLead:
		d.ReviewerLead = value
	case FieldInternalDeadline:
		d.InternalDeadline = value
	case FieldReviewerNotes:
		d.ReviewerNotes = value
	default:
		return false
	}
	return true
}

// SetFlag assigns a boolean field by key and reports whether the key was
// recognized.
func (d *Draft) SetFlag(key string, value bool) bool {
	switch key {
	case FieldIsFollowUp:
		d.IsFollowUp = value
	case FieldIncludesClinicalTesting:
		d.IncludesClinicalTesting = value
	case FieldIncludesSoftware:
		d.IncludesSoftware = value
	case FieldIncludesSterilePackaging:
		d.IncludesSterilePackaging = value
	case FieldMajorPredicateChanges:
		d.MajorPredicateChanges = value
	default:
		return false
	}
	return true
}

// ToggleSection flips a section's membership in the completed set.
func (d *Draft) ToggleSection(section string) {
	for i, s := range d.CompletedSections {
		if s == section {
			d.CompletedSections = append(d.CompletedSections[:i], d.CompletedSections[i+1:]...)
			return
		}
	}
	d.CompletedSections = append(d.CompletedSections, section)
}

// ToSubmission assembles the wire-format record sent to the backend.
// The "21 CFR " prefix users paste into the regulation number is stripped,
// matching what the backend stores.
func (d *Draft) ToSubmission() *Submission {
	return &Submission{
		SubmissionTitle:          d.SubmissionTitle,
		SubmissionType:           d.SubmissionType,
		RegulatoryPathway:        d.RegulatoryPathway,
		IsFollowUp:               d.IsFollowUp,
		PreviousK:                d.PreviousK,
		DeviceName:               d.DeviceName,
		ProductCode:              d.ProductCode,
		RegulationNumber:         strings.TrimPrefix(d.RegulationNumber, "21 CFR "),
		DeviceClass:              d.DeviceClass,
		PredicateDeviceName:      d.PredicateDeviceName,
		PredicateK:               d.PredicateK,
		IntendedUse:              d.IntendedUse,
		ClinicalSetting:          d.ClinicalSetting,
		TargetSpecimen:           d.TargetSpecimen,
		TargetMarket:             d.TargetMarket,
		IncludesClinicalTesting:  d.IncludesClinicalTesting,
		IncludesSoftware:         d.IncludesSoftware,
		IncludesSterilePackaging: d.IncludesSterilePackaging,
		MajorPredicateChanges:    d.MajorPredicateChanges,
		ChecklistNotes:           d.ChecklistNotes,
		SubmitterOrg:             d.SubmitterOrg,
		ContactName:              d.ContactName,
		ContactEmail:             d.ContactEmail,
		ContactPhone:             d.ContactPhone,
		ReviewerID:               d.ReviewerLead,
		InternalDeadline:         d.InternalDeadline,
		ReviewerNotes:            d.ReviewerNotes,
		CompletedSections:        d.CompletedSections,
	}
}

// FromSubmission populates a draft from a persisted record, used by the
// edit flow to seed the wizard.
func FromSubmission(s *Submission) *Draft {
	return &Draft{
		SubmissionTitle:          s.SubmissionTitle,
		SubmissionType:           s.SubmissionType,
		RegulatoryPathway:        s.RegulatoryPathway,
		IsFollowUp:               s.IsFollowUp,
		PreviousK:                s.PreviousK,
		DeviceName:               s.DeviceName,
		ProductCode:              s.ProductCode,
		RegulationNumber:         s.RegulationNumber,
		DeviceClass:              s.DeviceClass,
		PredicateDeviceName:      s.PredicateDeviceName,
		PredicateK:               s.PredicateK,
		IntendedUse:              s.IntendedUse,
		ClinicalSetting:          s.ClinicalSetting,
		TargetSpecimen:           s.TargetSpecimen,
		TargetMarket:             s.TargetMarket,
		IncludesClinicalTesting:  s.IncludesClinicalTesting,
		IncludesSoftware:         s.IncludesSoftware,
		IncludesSterilePackaging: s.IncludesSterilePackaging,
		MajorPredicateChanges:    s.MajorPredicateChanges,
		ChecklistNotes:           s.ChecklistNotes,
		SubmitterOrg:             s.SubmitterOrg,
		ContactName:              s.ContactName,
		ContactEmail:             s.ContactEmail,
		ContactPhone:             s.ContactPhone,
		ReviewerLead:             s.ReviewerID,
		InternalDeadline:         s.InternalDeadline,
		ReviewerNotes:            s.ReviewerNotes,
		CompletedSections:        s.CompletedSections,
	}
}

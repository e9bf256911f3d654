package models

// Readiness status bands derived from the FDA-readiness percentage.
const (
	ReadinessComplete    = "Complete"
	ReadinessNeedsReview = "Needs Review"
	ReadinessMissing     = "Missing"
)

// SectionReadiness is the derived per-section readiness tuple. It is
// recomputed on demand from submission and document state, never stored.
type SectionReadiness struct {
	Section             string         `json:"section"`
	AuthoringPercent    int            `json:"authoringPercent"`
	FDAReadinessPercent int            `json:"fdaReadinessPercent"`
	Status              string         `json:"status"`
	Documents           DocumentCounts `json:"documents"`
}

// DocumentCounts summarizes a section's fixed file slots.
type DocumentCounts struct {
	Uploaded int `json:"uploaded"`
	Total    int `json:"total"`
}

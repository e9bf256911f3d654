// Package readiness derives the two section scores shown in the section
// header bar: authoring completeness (are the required artifacts there)
// and FDA readiness (are they there, attached and reviewed). Both are
// recomputed on demand from submission and document state; nothing here
// holds mutable state.
package readiness

import (
	"math"

	"github.com/Sraju03/editor-sub000/internal/models"
)

// Artifact is one required item of a section. Present drives the
// authoring score. The FDA score additionally demands an attachment
// and/or a stored review run where the artifact calls for one.
type Artifact struct {
	Label string

	Present bool

	// NeedsAttachment artifacts only count toward FDA readiness once a
	// file is attached, not merely recorded.
	NeedsAttachment bool
	Attached        bool

	// NeedsReview artifacts count once their AI-assisted review has been
	// run and stored.
	NeedsReview bool
	Reviewed    bool
}

// Section is the scorable state of one submission section.
type Section struct {
	Name      string
	Artifacts []Artifact

	// FileSlots are the section's fixed upload slots; true means a file
	// reference is present.
	FileSlots []bool
}

// score is round(100 * trues / total); 0 for an empty predicate set.
func score(flags []bool) int {
	if len(flags) == 0 {
		return 0
	}
	n := 0
	for _, ok := range flags {
		if ok {
			n++
		}
	}
	return int(math.Round(100 * float64(n) / float64(len(flags))))
}

// AuthoringCompleteness is the percentage of required artifacts present.
// No partial credit within a single artifact.
func AuthoringCompleteness(s Section) int {
	flags := make([]bool, len(s.Artifacts))
	for i, a := range s.Artifacts {
		flags[i] = a.Present
	}
	return score(flags)
}

// FDAReadiness applies the stricter predicate set: present, attached
// where an attachment is required, and reviewed where a review is
// required.
func FDAReadiness(s Section) int {
	flags := make([]bool, len(s.Artifacts))
	for i, a := range s.Artifacts {
		ok := a.Present
		if a.NeedsAttachment {
			ok = ok && a.Attached
		}
		if a.NeedsReview {
			ok = ok && a.Reviewed
		}
		flags[i] = ok
	}
	return score(flags)
}

// StatusLabel maps an FDA readiness percentage to its display band.
func StatusLabel(fdaPercent int) string {
	switch {
	case fdaPercent >= 90:
		return models.ReadinessComplete
	case fdaPercent >= 70:
		return models.ReadinessNeedsReview
	default:
		return models.ReadinessMissing
	}
}

// DocumentCounts summarizes the section's fixed file slots.
func DocumentCounts(s Section) models.DocumentCounts {
	uploaded := 0
	for _, filled := range s.FileSlots {
		if filled {
			uploaded++
		}
	}
	return models.DocumentCounts{Uploaded: uploaded, Total: len(s.FileSlots)}
}

// Score assembles the full derived tuple for a section.
func Score(s Section) models.SectionReadiness {
	fda := FDAReadiness(s)
	return models.SectionReadiness{
		Section:             s.Name,
		AuthoringPercent:    AuthoringCompleteness(s),
		FDAReadinessPercent: fda,
		Status:              StatusLabel(fda),
		Documents:           DocumentCounts(s),
	}
}

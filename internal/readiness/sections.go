package readiness

import "github.com/Sraju03/editor-sub000/internal/models"

// Submission sections and their fixed document slots, keyed by document
// type. The slot lists mirror the section authoring screens.
var sectionSlots = map[string][]string{
	"Device Description":         {"Device Specification", "Engineering Drawing", "Materials List"},
	"Substantial Equivalence":    {"Predicate Comparison", "Equivalence Rationale"},
	"Performance Testing":        {"Bench Test Report", "Test Protocol", "Summary Report"},
	"Software Documentation":     {"Software Description", "Hazard Analysis", "V&V Report"},
	"Biocompatibility":           {"Biocompatibility Report", "Material Certification"},
	"Sterilization & Shelf Life": {"Sterilization Validation", "Shelf Life Study"},
	"Clinical Performance":       {"Clinical Study Report", "Statistical Analysis"},
	"Labeling":                   {"IFU", "Primary Label", "Device Label"},
}

// SectionNames lists the known sections in submission order.
func SectionNames() []string {
	return []string{
		"Device Description",
		"Substantial Equivalence",
		"Performance Testing",
		"Software Documentation",
		"Biocompatibility",
		"Sterilization & Shelf Life",
		"Clinical Performance",
		"Labeling",
	}
}

// SectionFromDocuments builds the scorable state of a section from its
// document records. Soft-deleted documents must already be excluded by
// the caller (the repository's listings never include them).
func SectionFromDocuments(name string, docs []*models.Document) Section {
	slots, ok := sectionSlots[name]
	if !ok {
		slots = nil
	}

	byType := make(map[string]*models.Document, len(docs))
	for _, d := range docs {
		if d.Section != name {
			continue
		}
		if existing, dup := byType[d.Type]; !dup || d.UploadedAt.After(existing.UploadedAt) {
			byType[d.Type] = d
		}
	}

	s := Section{Name: name}
	for _, slot := range slots {
		doc := byType[slot]
		present := doc != nil
		attached := present && doc.FileURL != ""
		reviewed := present && doc.Status == models.DocStatusApproved
		s.Artifacts = append(s.Artifacts, Artifact{
			Label:           slot,
			Present:         present,
			NeedsAttachment: true,
			Attached:        attached,
			NeedsReview:     slot == "IFU",
			Reviewed:        reviewed,
		})
		s.FileSlots = append(s.FileSlots, attached)
	}
	return s
}

// IntendedUseSection scores the intended-use statement itself: the text
// being present drives authoring, the RTA spot checks drive FDA
// readiness.
func IntendedUseSection(sub *models.Submission) Section {
	present := sub != nil && sub.IntendedUse != ""
	s := Section{Name: "Intended Use"}
	s.Artifacts = append(s.Artifacts, Artifact{Label: "Intended Use Statement", Present: present})
	if present {
		for _, check := range SpotCheckIntendedUse(sub.IntendedUse) {
			s.Artifacts = append(s.Artifacts, Artifact{Label: "RTA: " + check.Name, Present: check.Passed})
		}
	} else {
		for _, name := range []string{"purpose", "population", "environment", "conditions"} {
			s.Artifacts = append(s.Artifacts, Artifact{Label: "RTA: " + name})
		}
	}
	return s
}

package readiness

import (
	"testing"
	"time"

	"github.com/Sraju03/editor-sub000/internal/models"
)

func TestAuthoringCompleteness_Bounds(t *testing.T) {
	all := Section{Artifacts: []Artifact{
		{Label: "a", Present: true},
		{Label: "b", Present: true},
		{Label: "c", Present: true},
	}}
	if got := AuthoringCompleteness(all); got != 100 {
		t.Errorf("all present = %d, want 100", got)
	}

	none := Section{Artifacts: []Artifact{
		{Label: "a"}, {Label: "b"}, {Label: "c"},
	}}
	if got := AuthoringCompleteness(none); got != 0 {
		t.Errorf("none present = %d, want 0", got)
	}
}

func TestAuthoringCompleteness_MonotonicAndIdempotent(t *testing.T) {
	s := Section{Artifacts: []Artifact{
		{Label: "a"}, {Label: "b"}, {Label: "c"}, {Label: "d"},
	}}

	prev := AuthoringCompleteness(s)
	for i := range s.Artifacts {
		s.Artifacts[i].Present = true
		got := AuthoringCompleteness(s)
		if got < prev {
			t.Fatalf("score dropped from %d to %d after adding an artifact", prev, got)
		}
		if again := AuthoringCompleteness(s); again != got {
			t.Fatalf("recomputation changed the score: %d then %d", got, again)
		}
		prev = got
	}
	if prev != 100 {
		t.Errorf("final score = %d, want 100", prev)
	}
}

func TestAuthoringCompleteness_Rounds(t *testing.T) {
	s := Section{Artifacts: []Artifact{
		{Present: true}, {Present: true}, {},
	}}
	// 2/3 -> 66.67 -> 67
	if got := AuthoringCompleteness(s); got != 67 {
		t.Errorf("2 of 3 = %d, want 67", got)
	}
}

func TestFDAReadiness_StricterThanAuthoring(t *testing.T) {
	s := Section{Artifacts: []Artifact{
		{Label: "ifu", Present: true, NeedsAttachment: true, Attached: false},
		{Label: "label", Present: true, NeedsAttachment: true, Attached: true},
	}}
	if auth := AuthoringCompleteness(s); auth != 100 {
		t.Fatalf("authoring = %d, want 100", auth)
	}
	if fda := FDAReadiness(s); fda != 50 {
		t.Errorf("fda = %d, want 50 (one artifact lacks its attachment)", fda)
	}
}

func TestFDAReadiness_ReviewRequirement(t *testing.T) {
	s := Section{Artifacts: []Artifact{
		{Label: "claims", Present: true, NeedsReview: true, Reviewed: false},
	}}
	if fda := FDAReadiness(s); fda != 0 {
		t.Errorf("unreviewed claims = %d, want 0", fda)
	}
	s.Artifacts[0].Reviewed = true
	if fda := FDAReadiness(s); fda != 100 {
		t.Errorf("reviewed claims = %d, want 100", fda)
	}
}

func TestStatusLabel_Bands(t *testing.T) {
	cases := []struct {
		percent int
		want    string
	}{
		{100, models.ReadinessComplete},
		{90, models.ReadinessComplete},
		{89, models.ReadinessNeedsReview},
		{70, models.ReadinessNeedsReview},
		{69, models.ReadinessMissing},
		{0, models.ReadinessMissing},
	}
	for _, c := range cases {
		if got := StatusLabel(c.percent); got != c.want {
			t.Errorf("StatusLabel(%d) = %q, want %q", c.percent, got, c.want)
		}
	}
}

func TestDocumentCounts(t *testing.T) {
	s := Section{FileSlots: []bool{true, false, true}}
	counts := DocumentCounts(s)
	if counts.Uploaded != 2 || counts.Total != 3 {
		t.Errorf("counts = %+v, want 2 of 3", counts)
	}
}

func TestSectionFromDocuments_LabelingSlots(t *testing.T) {
	now := time.Now()
	docs := []*models.Document{
		{Section: "Labeling", Type: "IFU", FileURL: "https://files/ifu.pdf", Status: models.DocStatusApproved, UploadedAt: now},
		{Section: "Labeling", Type: "Primary Label", FileURL: "https://files/label.pdf", Status: models.DocStatusDraft, UploadedAt: now},
		{Section: "Performance Testing", Type: "Bench Test Report", FileURL: "https://files/bench.pdf", UploadedAt: now},
	}

	s := SectionFromDocuments("Labeling", docs)
	counts := DocumentCounts(s)
	if counts.Uploaded != 2 || counts.Total != 3 {
		t.Errorf("labeling counts = %+v, want 2 of 3", counts)
	}
	if auth := AuthoringCompleteness(s); auth != 67 {
		t.Errorf("authoring = %d, want 67", auth)
	}
}

func TestSectionFromDocuments_PrefersNewestPerSlot(t *testing.T) {
	old := time.Now().Add(-time.Hour)
	now := time.Now()
	docs := []*models.Document{
		{Section: "Labeling", Type: "IFU", FileURL: "", Status: models.DocStatusDraft, UploadedAt: now},
		{Section: "Labeling", Type: "IFU", FileURL: "https://files/ifu-old.pdf", Status: models.DocStatusApproved, UploadedAt: old},
	}

	s := SectionFromDocuments("Labeling", docs)
	// The newer record has no attachment; the slot must reflect it.
	if s.FileSlots[0] {
		t.Error("slot should follow the newest upload, which has no file")
	}
}

func TestSpotCheckIntendedUse(t *testing.T) {
	text := "This device is intended for use by adults in a hospital setting for diagnosis of diabetes."
	checks := SpotCheckIntendedUse(text)
	for _, c := range checks {
		if !c.Passed {
			t.Errorf("check %q should pass for a complete statement", c.Name)
		}
	}
	if RTAScore(checks) != 100 {
		t.Errorf("RTA score = %d, want 100", RTAScore(checks))
	}

	checks = SpotCheckIntendedUse("A device.")
	if RTAScore(checks) != 0 {
		t.Errorf("RTA score for empty statement = %d, want 0", RTAScore(checks))
	}
}

func TestScore_FullTuple(t *testing.T) {
	s := Section{
		Name: "Labeling",
		Artifacts: []Artifact{
			{Present: true, NeedsAttachment: true, Attached: true},
			{Present: true, NeedsAttachment: true, Attached: true},
		},
		FileSlots: []bool{true, true},
	}
	r := Score(s)
	if r.AuthoringPercent != 100 || r.FDAReadinessPercent != 100 {
		t.Errorf("scores = %d/%d, want 100/100", r.AuthoringPercent, r.FDAReadinessPercent)
	}
	if r.Status != models.ReadinessComplete {
		t.Errorf("status = %q, want Complete", r.Status)
	}
}

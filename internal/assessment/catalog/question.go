// Package catalog composes the assessment questionnaire for an organization
// and resolves raw answers against it.
//
// A catalog is regenerated on every request from static templates: the base
// questions, the extension set of each declared sector, and one open-text
// question per custom sector. Question ids are stable so answers saved against
// one composition stay aligned with the next composition of the same profile.
package catalog

// Kind is the answer shape a question expects.
type Kind string

const (
	KindText   Kind = "text"
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// Bucket tags for questions that do not belong to a declared sector.
const (
	SectorBase   = "base"
	SectorCustom = "custom"
)

// CustomQuestionIDBase offsets synthesized custom-sector question ids so they
// never collide with base or sector ids.
const CustomQuestionIDBase = 9000

// Question is one immutable questionnaire entry.
type Question struct {
	ID               int      `json:"id"`
	Prompt           string   `json:"prompt"`
	Kind             Kind     `json:"kind"`
	Options          []string `json:"options,omitempty"`
	Sector           string   `json:"sector"`
	SectorLabel      string   `json:"sector_label,omitempty"`
	RequiresEvidence bool     `json:"requires_evidence"`
	EvidenceWhen     string   `json:"evidence_when,omitempty"`
	Description      string   `json:"description,omitempty"`
}

// NeedsEvidence reports whether the given answer obliges the organization to
// attach evidence for this question.
func (q Question) NeedsEvidence(a Answer) bool {
	if !q.RequiresEvidence {
		return false
	}
	if q.EvidenceWhen == "" {
		return a.IsAnswered()
	}
	return a.Normalized() == Normalize(q.EvidenceWhen)
}

// IsBase reports whether the question belongs to the fixed base set.
func (q Question) IsBase() bool {
	return q.Sector == SectorBase
}

// IsCustom reports whether the question was synthesized for a custom sector.
func (q Question) IsCustom() bool {
	return q.Sector == SectorCustom
}

// Catalog is an ordered question list.
type Catalog []Question

// Len returns the number of questions.
func (c Catalog) Len() int { return len(c) }

// IDs returns the question ids in catalog order.
func (c Catalog) IDs() []int {
	ids := make([]int, len(c))
	for i, q := range c {
		ids[i] = q.ID
	}
	return ids
}

// IndexOf returns the position of the question with the given id and sector, or -1.
func (c Catalog) IndexOf(sector string, questionID int) int {
	for i, q := range c {
		if q.Sector == sector && q.ID == questionID {
			return i
		}
	}
	return -1
}

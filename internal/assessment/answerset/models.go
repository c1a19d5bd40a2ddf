// Package answerset stores questionnaire submissions. Every save is a new
// record; the latest record per organization is the current one.
package answerset

import (
	"slices"
	"time"

	"adequa/internal/assessment/catalog"
	id "adequa/pkg/domain"
)

// AnswerSet is one submission, positionally aligned to the catalog it was
// answered against. QuestionIDs records that catalog.
type AnswerSet struct {
	ID             id.AnswerSetID    `json:"id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	SubmittedBy    id.UserID         `json:"submitted_by"`
	QuestionIDs    []int             `json:"question_ids"`
	Answers        []catalog.Answer  `json:"answers"`
	Complete       bool              `json:"complete"`
	Score          int               `json:"score"`
	Observations   string            `json:"observations,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (s *AnswerSet) Clone() *AnswerSet {
	if s == nil {
		return nil
	}
	c := *s
	c.QuestionIDs = slices.Clone(s.QuestionIDs)
	c.Answers = make([]catalog.Answer, len(s.Answers))
	for i, a := range s.Answers {
		c.Answers[i] = a
		c.Answers[i].Values = slices.Clone(a.Values)
	}
	return &c
}

// AlignTo maps the stored answers onto c by question id. Questions c has
// that the snapshot lacked are unanswered; answers to questions c no longer
// has are dropped.
func (s *AnswerSet) AlignTo(c catalog.Catalog) []catalog.Answer {
	out := make([]catalog.Answer, len(c))
	if s == nil {
		return out
	}
	if slices.Equal(s.QuestionIDs, c.IDs()) {
		copy(out, s.Answers)
		return out
	}

	byID := make(map[int]catalog.Answer, len(s.Answers))
	for i, qid := range s.QuestionIDs {
		if i < len(s.Answers) {
			byID[qid] = s.Answers[i]
		}
	}
	for i, q := range c {
		out[i] = byID[q.ID]
	}
	return out
}

// RawAnswers returns the answers in wire shape.
func (s *AnswerSet) RawAnswers() []any {
	out := make([]any, len(s.Answers))
	for i, a := range s.Answers {
		out[i] = a.Raw()
	}
	return out
}

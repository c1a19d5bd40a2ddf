package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	dErrors "adequa/pkg/domain-errors"
)

// AnswerKind discriminates the Answer union.
type AnswerKind string

const (
	Unanswered   AnswerKind = ""
	TextAnswer   AnswerKind = "text"
	SingleChoice AnswerKind = "single"
	MultiChoice  AnswerKind = "multi"
)

// Compliance answer values after normalization.
const (
	ValueYes     = "sim"
	ValuePartial = "parcial"
	ValueNo      = "não"
)

// negativeVocabulary holds every spelling accepted as a non-compliant answer.
var negativeVocabulary = map[string]struct{}{
	"não":     {},
	"nao":     {},
	"nao-sei": {},
	"não-sei": {},
	"não sei": {},
	"nao sei": {},
}

// Normalize lower-cases and trims an answer value.
func Normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// IsNegativeValue reports whether v is in the negative-response vocabulary.
func IsNegativeValue(v string) bool {
	_, ok := negativeVocabulary[Normalize(v)]
	return ok
}

// Answer is a tagged union over the accepted answer shapes. The zero value is
// an unanswered slot. Raw values are resolved once, in ParseAnswers.
type Answer struct {
	Kind   AnswerKind
	Value  string
	Values []string
}

// Text builds a free-text answer.
func Text(v string) Answer { return Answer{Kind: TextAnswer, Value: v} }

// Single builds a single-choice answer.
func Single(v string) Answer { return Answer{Kind: SingleChoice, Value: v} }

// Multi builds a multi-choice answer.
func Multi(vs ...string) Answer { return Answer{Kind: MultiChoice, Values: vs} }

// IsAnswered reports whether the slot carries a value.
func (a Answer) IsAnswered() bool {
	switch a.Kind {
	case TextAnswer, SingleChoice:
		return strings.TrimSpace(a.Value) != ""
	case MultiChoice:
		return len(a.Values) > 0
	default:
		return false
	}
}

// Normalized returns the normalized scalar value. Multi-choice and unanswered
// slots have no scalar value.
func (a Answer) Normalized() string {
	if a.Kind == TextAnswer || a.Kind == SingleChoice {
		return Normalize(a.Value)
	}
	return ""
}

// IsAffirmative reports full compliance.
func (a Answer) IsAffirmative() bool { return a.Normalized() == ValueYes }

// IsPartial reports partial compliance.
func (a Answer) IsPartial() bool { return a.Normalized() == ValuePartial }

// IsNegative reports an answer in the negative-response vocabulary.
func (a Answer) IsNegative() bool {
	if a.Kind != TextAnswer && a.Kind != SingleChoice {
		return false
	}
	return IsNegativeValue(a.Value)
}

// Raw returns the wire shape of the answer: nil, a string, or a string slice.
func (a Answer) Raw() any {
	switch a.Kind {
	case TextAnswer, SingleChoice:
		return a.Value
	case MultiChoice:
		return a.Values
	default:
		return nil
	}
}

type storedAnswer struct {
	Kind   AnswerKind `json:"kind,omitempty"`
	Value  string     `json:"value,omitempty"`
	Values []string   `json:"values,omitempty"`
}

// MarshalJSON keeps the discriminator so stored answers round-trip without the catalog.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedAnswer(a))
}

// UnmarshalJSON restores an answer written by MarshalJSON.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s storedAnswer
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Answer(s)
	return nil
}

// ParseAnswers resolves raw wire answers against the catalog they were given
// for. Each raw value must be null, a string, or an array of strings, and its
// shape must fit the question kind. A shorter list is padded with unanswered
// slots; a longer list is rejected.
func ParseAnswers(c Catalog, raw []json.RawMessage) ([]Answer, error) {
	if len(raw) > len(c) {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("received %d answers for a catalog of %d questions", len(raw), len(c)))
	}

	answers := make([]Answer, len(c))
	var problems []string
	for i, msg := range raw {
		a, err := resolve(c[i], msg)
		if err != nil {
			problems = append(problems, fmt.Sprintf("question %d: %s", c[i].ID, err.Error()))
			continue
		}
		answers[i] = a
	}
	if len(problems) > 0 {
		return nil, dErrors.NewWithDetails(dErrors.CodeValidation, "malformed answers", problems)
	}
	return answers, nil
}

func resolve(q Question, msg json.RawMessage) (Answer, error) {
	trimmed := strings.TrimSpace(string(msg))
	if trimmed == "" || trimmed == "null" {
		return Answer{}, nil
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return Answer{}, nil
		}
		switch q.Kind {
		case KindText:
			return Text(s), nil
		case KindSingle:
			return Single(s), nil
		case KindMulti:
			return Multi(s), nil
		}
	}

	var vs []string
	if err := json.Unmarshal(msg, &vs); err == nil {
		if q.Kind != KindMulti {
			return Answer{}, fmt.Errorf("expected a single value, got a list")
		}
		if len(vs) == 0 {
			return Answer{}, nil
		}
		return Multi(vs...), nil
	}

	return Answer{}, fmt.Errorf("answer must be a string or a list of strings")
}

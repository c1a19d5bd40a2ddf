package service

import (
	"encoding/json"
	"time"

	"adequa/internal/assessment/answerset"
	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/remediation"
	"adequa/internal/assessment/sector"
	id "adequa/pkg/domain"
)

// MaxObservationsLength caps the free-text observations of an answer set, in runes.
const MaxObservationsLength = 5000

// SaveAnswersRequest is one questionnaire submission. Answers are raw wire
// values (null, string or list of strings) aligned to the current catalog.
type SaveAnswersRequest struct {
	Answers      []json.RawMessage `json:"answers"`
	Complete     bool              `json:"complete"`
	Observations string            `json:"observations"`
	Mode         string            `json:"mode"`
}

// SaveAnswersResult is the saved set and the task derivation it triggered.
type SaveAnswersResult struct {
	AnswerSet *answerset.AnswerSet     `json:"answer_set"`
	Tasks     *remediation.ApplyResult `json:"tasks"`
}

// AnswersView is the current answer set aligned to the current catalog.
type AnswersView struct {
	AnswerSet *answerset.AnswerSet `json:"answer_set"`
	Catalog   catalog.Catalog      `json:"catalog"`
	Answers   []catalog.Answer     `json:"-"`
}

// Analysis is the score and per-sector breakdown of the current answers.
type Analysis struct {
	OrganizationID id.OrganizationID `json:"organization_id"`
	AnswerSetID    id.AnswerSetID    `json:"answer_set_id"`
	Score          int               `json:"score"`
	Complete       bool              `json:"complete"`
	Sectors        []sector.Result   `json:"sectors"`
	AnsweredAt     time.Time         `json:"answered_at"`
}

// EvidenceRequest describes an uploaded file to attach to a task.
type EvidenceRequest struct {
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	StorageKey string `json:"storage_key"`
}

// Package postgres persists answer sets in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"adequa/internal/assessment/answerset"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
	txcontext "adequa/pkg/platform/tx"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Latest(ctx context.Context, orgID id.OrganizationID) (*answerset.AnswerSet, error) {
	var (
		set         answerset.AnswerSet
		setID       uuid.UUID
		submittedBy uuid.UUID
		questionIDs pq.Int64Array
		answers     []byte
	)
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, submitted_by, question_ids, answers, complete, score, observations, created_at
		FROM answer_sets
		WHERE organization_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`, uuid.UUID(orgID)).Scan(&setID, &submittedBy, &questionIDs, &answers,
		&set.Complete, &set.Score, &set.Observations, &set.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest answer set: %w", err)
	}

	set.ID = id.AnswerSetID(setID)
	set.OrganizationID = orgID
	set.SubmittedBy = id.UserID(submittedBy)
	set.QuestionIDs = make([]int, len(questionIDs))
	for i, q := range questionIDs {
		set.QuestionIDs[i] = int(q)
	}
	if err := json.Unmarshal(answers, &set.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &set, nil
}

func (s *Store) Save(ctx context.Context, set *answerset.AnswerSet) error {
	answers, err := json.Marshal(set.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	questionIDs := make(pq.Int64Array, len(set.QuestionIDs))
	for i, q := range set.QuestionIDs {
		questionIDs[i] = int64(q)
	}
	_, err = txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO answer_sets (id, organization_id, submitted_by, question_ids, answers, complete, score, observations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(set.ID), uuid.UUID(set.OrganizationID), uuid.UUID(set.SubmittedBy), questionIDs, answers,
		set.Complete, set.Score, set.Observations, set.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert answer set: %w", err)
	}
	return nil
}

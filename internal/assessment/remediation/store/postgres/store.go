// Package postgres persists remediation tasks in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"adequa/internal/assessment/remediation"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
	txcontext "adequa/pkg/platform/tx"
)

// Store persists tasks in the remediation_tasks table.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed task store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunInTx runs fn in one database transaction. A transaction-scoped advisory
// lock on the organization serializes concurrent resets of the same tasks.
func (s *Store) RunInTx(ctx context.Context, orgID id.OrganizationID, fn func(ctx context.Context, store remediation.Store) error) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if _, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1))`, orgID.String()); err != nil {
			return fmt.Errorf("lock organization tasks: %w", err)
		}
		return fn(ctx, s)
	})
}

const taskColumns = `id, organization_id, template_key, title, description, category, sector,
	question_id, priority, status, steps, due_in_days, due_at, evidence, reviewer_comment,
	submitted_at, reviewed_at, created_at, updated_at`

func (s *Store) Create(ctx context.Context, t *remediation.Task) error {
	evidence, err := json.Marshal(t.Evidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	steps := t.Steps
	if steps == nil {
		steps = []string{}
	}
	_, err = txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO remediation_tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		uuid.UUID(t.ID), uuid.UUID(t.OrganizationID), t.TemplateKey, t.Title, t.Description,
		t.Category, t.Sector, t.QuestionID, string(t.Priority), string(t.Status),
		pq.Array(steps), t.DueInDays, t.DueAt, evidence, t.ReviewerComment,
		t.SubmittedAt, t.ReviewedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Store) ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*remediation.Task, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM remediation_tasks
		WHERE organization_id = $1
		ORDER BY created_at, seq
	`, uuid.UUID(orgID))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*remediation.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM remediation_tasks
		WHERE organization_id = $1 AND id = $2
		FOR UPDATE
	`, uuid.UUID(orgID), uuid.UUID(taskID))
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return t, err
}

func (s *Store) Update(ctx context.Context, t *remediation.Task) error {
	evidence, err := json.Marshal(t.Evidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE remediation_tasks
		SET status = $3, evidence = $4, reviewer_comment = $5,
		    submitted_at = $6, reviewed_at = $7, updated_at = $8
		WHERE organization_id = $1 AND id = $2
	`,
		uuid.UUID(t.OrganizationID), uuid.UUID(t.ID), string(t.Status), evidence,
		t.ReviewerComment, t.SubmittedAt, t.ReviewedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllByOrganization(ctx context.Context, orgID id.OrganizationID) (int, error) {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM remediation_tasks WHERE organization_id = $1`, uuid.UUID(orgID))
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *Store) CancelAllByOrganization(ctx context.Context, orgID id.OrganizationID, now time.Time) (int, error) {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE remediation_tasks
		SET status = $2, updated_at = $3
		WHERE organization_id = $1 AND status NOT IN ($4, $5, $2)
	`, uuid.UUID(orgID), string(remediation.StatusCancelled), now,
		string(remediation.StatusApproved), string(remediation.StatusCompleted))
	if err != nil {
		return 0, fmt.Errorf("cancel tasks: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*remediation.Task, error) {
	var (
		t                   remediation.Task
		taskID, orgID       uuid.UUID
		priority, status    string
		steps               []string
		evidence            []byte
		submitted, reviewed sql.NullTime
	)
	err := row.Scan(&taskID, &orgID, &t.TemplateKey, &t.Title, &t.Description, &t.Category,
		&t.Sector, &t.QuestionID, &priority, &status, pq.Array(&steps), &t.DueInDays, &t.DueAt,
		&evidence, &t.ReviewerComment, &submitted, &reviewed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.ID = id.TaskID(taskID)
	t.OrganizationID = id.OrganizationID(orgID)
	t.Priority = remediation.Priority(priority)
	t.Status = remediation.Status(status)
	t.Steps = steps
	if err := json.Unmarshal(evidence, &t.Evidence); err != nil {
		return nil, fmt.Errorf("unmarshal evidence: %w", err)
	}
	if t.Evidence == nil {
		t.Evidence = []remediation.EvidenceRef{}
	}
	if submitted.Valid {
		v := submitted.Time
		t.SubmittedAt = &v
	}
	if reviewed.Valid {
		v := reviewed.Time
		t.ReviewedAt = &v
	}
	return &t, nil
}

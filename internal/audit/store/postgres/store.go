// Package postgres persists audit records in PostgreSQL. The table is
// insert-only: no statement here updates or deletes a record.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adequa/internal/access"
	"adequa/internal/audit"
	id "adequa/pkg/domain"
	txcontext "adequa/pkg/platform/tx"
)

// Store implements audit.Store on the audit_records table.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, r audit.Record) error {
	var actor any
	if !r.ActorID.IsNil() {
		actor = uuid.UUID(r.ActorID)
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO audit_records (
			id, actor_id, action, category, resource_type, resource_id, details,
			previous_state, new_state, ip_address, user_agent, success, error_message,
			access_level, request_id, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		r.ID, actor, string(r.Action), string(r.Category), r.ResourceType, r.ResourceID,
		nullJSON(r.Details), nullJSON(r.PreviousState), nullJSON(r.NewState),
		r.IPAddress, r.UserAgent, r.Success, r.ErrorMessage, string(r.AccessLevel),
		r.RequestID, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (s *Store) QueryRange(ctx context.Context, start, end time.Time) ([]audit.Record, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, actor_id, action, category, resource_type, resource_id, details,
			previous_state, new_state, ip_address, user_agent, success, error_message,
			access_level, request_id, timestamp
		FROM audit_records
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	out := make([]audit.Record, 0)
	for rows.Next() {
		var (
			r                       audit.Record
			actor                   uuid.NullUUID
			action, category, level string
			details, prev, next     []byte
		)
		if err := rows.Scan(&r.ID, &actor, &action, &category, &r.ResourceType, &r.ResourceID,
			&details, &prev, &next, &r.IPAddress, &r.UserAgent, &r.Success, &r.ErrorMessage,
			&level, &r.RequestID, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if actor.Valid {
			r.ActorID = id.UserID(actor.UUID)
		}
		r.Action = audit.Action(action)
		r.Category = audit.Category(category)
		r.AccessLevel = access.Level(level)
		r.Details, r.PreviousState, r.NewState = details, prev, next
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return out, nil
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

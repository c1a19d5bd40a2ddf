package remediation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/platform/sentinel"
	"adequa/pkg/requestcontext"
)

// ApplyResult summarizes one derivation write.
type ApplyResult struct {
	Mode      Mode     `json:"mode"`
	Created   []*Task  `json:"created"`
	Skipped   []string `json:"skipped,omitempty"`
	Removed   int      `json:"removed"`
	Cancelled int      `json:"cancelled"`
}

// Engine writes derived tasks and drives task lifecycle transitions, always
// inside a per-organization transaction.
type Engine struct {
	store   Store
	tx      Transactor
	logger  *slog.Logger
	timeout time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTransactor overrides the transaction boundary.
func WithTransactor(tx Transactor) EngineOption {
	return func(e *Engine) { e.tx = tx }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithLockTimeout bounds how long an in-memory transaction may wait and run.
func WithLockTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.timeout = d }
}

// NewEngine builds an Engine over store. When store implements Transactor its
// transactions are used; otherwise mutations are serialized per organization.
func NewEngine(store Store, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, errors.New("task store is required")
	}
	e := &Engine{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.tx == nil {
		if tx, ok := store.(Transactor); ok {
			e.tx = tx
		} else {
			e.tx = newShardedTx(store, e.timeout)
		}
	}
	return e, nil
}

// Apply persists derived tasks for an organization according to mode.
// Removal and insertion happen in one transaction, so concurrent readers
// going through the Engine never observe an empty task list mid-reset.
func (e *Engine) Apply(ctx context.Context, orgID id.OrganizationID, derived []Task, mode Mode) (*ApplyResult, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	result := &ApplyResult{Mode: mode, Created: []*Task{}}

	err = e.tx.RunInTx(ctx, orgID, func(ctx context.Context, store Store) error {
		held := map[string]bool{}
		switch mode {
		case ModeReset:
			n, err := store.DeleteAllByOrganization(ctx, orgID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete existing tasks")
			}
			result.Removed = n
		case ModeResetCancel:
			n, err := store.CancelAllByOrganization(ctx, orgID, now)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel existing tasks")
			}
			result.Cancelled = n
		case ModeAppend:
			existing, err := store.ListByOrganization(ctx, orgID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list existing tasks")
			}
			for _, t := range existing {
				if t.Status.IsOpen() {
					held[t.TemplateKey] = true
				}
			}
		}

		for i := range derived {
			d := derived[i]
			if held[d.TemplateKey] {
				result.Skipped = append(result.Skipped, d.TemplateKey)
				continue
			}
			task := instantiate(d, orgID, now)
			if err := store.Create(ctx, task); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create task")
			}
			held[task.TemplateKey] = true
			result.Created = append(result.Created, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "remediation tasks applied",
		"organization_id", orgID.String(),
		"mode", string(mode),
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"removed", result.Removed,
		"cancelled", result.Cancelled,
	)
	return result, nil
}

func instantiate(d Task, orgID id.OrganizationID, now time.Time) *Task {
	task := d.Clone()
	task.ID = id.NewTaskID()
	task.OrganizationID = orgID
	task.Status = StatusPending
	task.CreatedAt = now
	task.UpdatedAt = now
	task.DueAt = now.AddDate(0, 0, task.DueInDays)
	if task.Evidence == nil {
		task.Evidence = []EvidenceRef{}
	}
	return task
}

// List returns an organization's tasks.
func (e *Engine) List(ctx context.Context, orgID id.OrganizationID) ([]*Task, error) {
	var tasks []*Task
	err := e.tx.RunInTx(ctx, orgID, func(ctx context.Context, store Store) error {
		var err error
		tasks, err = store.ListByOrganization(ctx, orgID)
		return err
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

// Transition loads a task, applies change and persists the result. change
// receives the transaction time and returns a domain error to abort.
// It returns the task before and after the change.
func (e *Engine) Transition(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, change func(t *Task, now time.Time) error) (before, after *Task, err error) {
	now := requestcontext.Now(ctx)
	err = e.tx.RunInTx(ctx, orgID, func(ctx context.Context, store Store) error {
		task, err := store.Get(ctx, orgID, taskID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "task not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load task")
		}
		before = task.Clone()
		if err := change(task, now); err != nil {
			return err
		}
		if err := store.Update(ctx, task); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update task")
		}
		after = task
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

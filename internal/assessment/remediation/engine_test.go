package remediation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/remediation"
	"adequa/internal/assessment/remediation/store/memory"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/requestcontext"
)

// EngineSuite covers task writes and transitions against the in-memory store.
//
// Justification: the modes differ only in what happens to existing tasks, so
// each test seeds a known task set and checks the resulting list.
type EngineSuite struct {
	suite.Suite
	store  *memory.Store
	engine *remediation.Engine
	org    id.OrganizationID
	ctx    context.Context
	now    time.Time
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.store = memory.New()
	engine, err := remediation.NewEngine(s.store)
	s.Require().NoError(err)
	s.engine = engine
	s.org = id.NewOrganizationID()
	s.now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *EngineSuite) derive(byID map[int]string) []remediation.Task {
	c := catalog.Base()
	answers := make([]catalog.Answer, len(c))
	for i, q := range c {
		if v, ok := byID[q.ID]; ok {
			answers[i] = catalog.Single(v)
		}
	}
	return remediation.Derive(c, answers)
}

func (s *EngineSuite) list() []*remediation.Task {
	tasks, err := s.engine.List(s.ctx, s.org)
	s.Require().NoError(err)
	return tasks
}

func titles(tasks []*remediation.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

// -----------------------------------------------------------------------------
// Apply
// -----------------------------------------------------------------------------

func (s *EngineSuite) TestApplyStampsTasks() {
	res, err := s.engine.Apply(s.ctx, s.org, s.derive(map[int]string{5: "não"}), remediation.ModeReset)
	s.Require().NoError(err)
	s.Require().Len(res.Created, 5)

	for _, t := range res.Created {
		s.False(t.ID.IsNil())
		s.Equal(s.org, t.OrganizationID)
		s.Equal(remediation.StatusPending, t.Status)
		s.Equal(s.now, t.CreatedAt)
		s.Equal(s.now.AddDate(0, 0, t.DueInDays), t.DueAt)
		s.NotNil(t.Evidence)
	}
}

func (s *EngineSuite) TestApplyRejectsMissingMode() {
	_, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.list())
}

func (s *EngineSuite) TestResetReplacesEverything() {
	_, err := s.engine.Apply(s.ctx, s.org, s.derive(map[int]string{5: "não", 6: "não"}), remediation.ModeReset)
	s.Require().NoError(err)

	res, err := s.engine.Apply(s.ctx, s.org, s.derive(map[int]string{5: "não"}), remediation.ModeReset)
	s.Require().NoError(err)
	s.Equal(6, res.Removed)
	s.Len(s.list(), 5)
}

func (s *EngineSuite) TestResetCancelKeepsHistory() {
	first, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeReset)
	s.Require().NoError(err)

	approved := first.Created[0].ID
	_, _, err = s.engine.Transition(s.ctx, s.org, approved, func(t *remediation.Task, now time.Time) error {
		t.Status = remediation.StatusApproved
		return nil
	})
	s.Require().NoError(err)

	res, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeResetCancel)
	s.Require().NoError(err)
	s.Equal(3, res.Cancelled)
	s.Len(res.Created, 4)

	counts := map[remediation.Status]int{}
	for _, t := range s.list() {
		counts[t.Status]++
	}
	s.Equal(map[remediation.Status]int{
		remediation.StatusApproved:  1,
		remediation.StatusCancelled: 3,
		remediation.StatusPending:   4,
	}, counts)
}

func (s *EngineSuite) TestAppendIsIdempotent() {
	derived := s.derive(map[int]string{5: "não", 8: "nao"})

	_, err := s.engine.Apply(s.ctx, s.org, derived, remediation.ModeAppend)
	s.Require().NoError(err)
	res, err := s.engine.Apply(s.ctx, s.org, derived, remediation.ModeAppend)
	s.Require().NoError(err)

	s.Empty(res.Created)
	s.Len(res.Skipped, 6)

	seen := map[string]bool{}
	for _, title := range titles(s.list()) {
		s.False(seen[title], "duplicate task %q", title)
		seen[title] = true
	}
	s.Len(seen, 6)
}

func (s *EngineSuite) TestAppendAddsOnlyNewTriggers() {
	_, err := s.engine.Apply(s.ctx, s.org, s.derive(map[int]string{5: "não"}), remediation.ModeAppend)
	s.Require().NoError(err)

	res, err := s.engine.Apply(s.ctx, s.org, s.derive(map[int]string{5: "não", 9: "não"}), remediation.ModeAppend)
	s.Require().NoError(err)
	s.Require().Len(res.Created, 1)
	s.Equal("vendor_management", res.Created[0].TemplateKey)
	s.Len(s.list(), 6)
}

func (s *EngineSuite) TestAppendReplacesCancelledTemplate() {
	_, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeReset)
	s.Require().NoError(err)
	_, err = s.engine.Apply(s.ctx, s.org, nil, remediation.ModeResetCancel)
	s.Require().NoError(err)

	res, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeAppend)
	s.Require().NoError(err)
	s.Len(res.Created, 4)
}

func (s *EngineSuite) TestConcurrentResetsNeverInterleave() {
	derived := s.derive(map[int]string{5: "não"})
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.engine.Apply(s.ctx, s.org, derived, remediation.ModeReset)
			s.NoError(err)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks, err := s.engine.List(s.ctx, s.org)
			s.NoError(err)
			if len(tasks) != 0 {
				s.Len(tasks, 5)
			}
		}()
	}
	wg.Wait()
	s.Len(s.list(), 5)
}

// -----------------------------------------------------------------------------
// Transition
// -----------------------------------------------------------------------------

func (s *EngineSuite) TestTransitionPersists() {
	res, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeReset)
	s.Require().NoError(err)
	taskID := res.Created[0].ID

	before, after, err := s.engine.Transition(s.ctx, s.org, taskID, func(t *remediation.Task, now time.Time) error {
		return t.Start(now)
	})
	s.Require().NoError(err)
	s.Equal(remediation.StatusPending, before.Status)
	s.Equal(remediation.StatusInProgress, after.Status)

	stored := s.list()[0]
	s.Equal(remediation.StatusInProgress, stored.Status)
}

func (s *EngineSuite) TestTransitionErrors() {
	res, err := s.engine.Apply(s.ctx, s.org, s.derive(nil), remediation.ModeReset)
	s.Require().NoError(err)

	s.Run("unknown task", func() {
		_, _, err := s.engine.Transition(s.ctx, s.org, id.NewTaskID(), func(*remediation.Task, time.Time) error { return nil })
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("task of another organization", func() {
		_, _, err := s.engine.Transition(s.ctx, id.NewOrganizationID(), res.Created[0].ID, func(*remediation.Task, time.Time) error { return nil })
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("domain error aborts without writing", func() {
		_, _, err := s.engine.Transition(s.ctx, s.org, res.Created[0].ID, func(t *remediation.Task, now time.Time) error {
			t.Status = remediation.StatusInReview
			return errors.New("boom")
		})
		s.Error(err)
		s.Equal(remediation.StatusPending, s.list()[0].Status)
	})
}

func (s *EngineSuite) TestNewEngineRequiresStore() {
	_, err := remediation.NewEngine(nil)
	s.Error(err)
}

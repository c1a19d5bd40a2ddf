package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"adequa/internal/access"
	answermemory "adequa/internal/assessment/answerset/store/memory"
	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/remediation"
	taskmemory "adequa/internal/assessment/remediation/store/memory"
	"adequa/internal/assessment/service"
	"adequa/internal/assessment/service/mocks"
	"adequa/internal/audit"
	"adequa/internal/audit/report"
	"adequa/internal/organization"
	orgmemory "adequa/internal/organization/store/memory"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/requestcontext"
)

// =============================================================================
// Assessment Service Test Suite
// =============================================================================
// Justification: the service is where access control, rate limiting, the
// domain operation and auditing meet. Stores and the task engine are real
// in-memory implementations so the tests exercise the whole flow; the limiter,
// auditor and reporter are mocked to pin the ordering and side effects.

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	limiter  *mocks.MockRateLimiter
	auditor  *mocks.MockAuditRecorder
	reporter *mocks.MockSecurityReporter
	profiles *orgmemory.Store
	answers  *answermemory.Store
	tasks    *taskmemory.Store
	svc      *service.Service

	mu     sync.Mutex
	events []audit.Event

	org   id.OrganizationID
	owner id.UserID
	other id.UserID
	admin id.UserID
	now   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.limiter = mocks.NewMockRateLimiter(s.ctrl)
	s.auditor = mocks.NewMockAuditRecorder(s.ctrl)
	s.reporter = mocks.NewMockSecurityReporter(s.ctrl)
	s.profiles = orgmemory.New()
	s.answers = answermemory.New()
	s.tasks = taskmemory.New()
	s.events = nil

	s.org = id.NewOrganizationID()
	s.owner = id.UserID(uuid.New())
	s.other = id.UserID(uuid.New())
	s.admin = id.UserID(uuid.New())
	s.now = time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

	s.auditor.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) audit.Outcome {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.events = append(s.events, e)
			return audit.Outcome{Status: audit.OutcomeRecorded}
		}).AnyTimes()

	engine, err := remediation.NewEngine(s.tasks)
	s.Require().NoError(err)

	s.svc, err = service.New(s.profiles, s.answers, engine, s.limiter, s.auditor,
		service.WithSecurityReporter(s.reporter),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) ctxAs(actor id.UserID, role string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	ctx = requestcontext.WithClientMetadata(ctx, "198.51.100.4", "Mozilla/5.0")
	return requestcontext.WithActor(ctx, actor, role)
}

func (s *ServiceSuite) ownerCtx() context.Context { return s.ctxAs(s.owner, "user") }
func (s *ServiceSuite) otherCtx() context.Context { return s.ctxAs(s.other, "user") }
func (s *ServiceSuite) adminCtx() context.Context { return s.ctxAs(s.admin, access.RoleAdmin) }

func (s *ServiceSuite) allowAll() {
	s.limiter.EXPECT().CheckOperation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ratelimitmodels.Result{Allowed: true, Limit: 100, Remaining: 99}, nil).AnyTimes()
}

func (s *ServiceSuite) seedProfile(sectors ...catalog.Sector) {
	s.Require().NoError(s.profiles.Save(context.Background(), &organization.Profile{
		OrganizationID: s.org,
		OwnerID:        s.owner,
		Sectors:        sectors,
		UpdatedAt:      s.now,
	}))
}

// rawAnswers builds a wire answer list for the base catalog.
func rawAnswers(byID map[int]any) []json.RawMessage {
	c := catalog.Base()
	out := make([]json.RawMessage, len(c))
	for i, q := range c {
		v, ok := byID[q.ID]
		if !ok {
			out[i] = json.RawMessage("null")
			continue
		}
		b, _ := json.Marshal(v)
		out[i] = b
	}
	return out
}

func allYes() map[int]any {
	m := map[int]any{}
	for q := catalog.QuestionPrivacyPolicy; q <= catalog.QuestionVendors; q++ {
		m[q] = "sim"
	}
	return m
}

func (s *ServiceSuite) eventsFor(action audit.Action) []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func templateKeys(tasks []*remediation.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.TemplateKey)
	}
	sort.Strings(out)
	return out
}

func (s *ServiceSuite) TestNew() {
	engine, err := remediation.NewEngine(taskmemory.New())
	s.Require().NoError(err)

	_, err = service.New(nil, s.answers, engine, s.limiter, s.auditor)
	s.ErrorContains(err, "profile store is required")
	_, err = service.New(s.profiles, s.answers, engine, nil, s.auditor)
	s.ErrorContains(err, "rate limiter is required")
	_, err = service.New(s.profiles, s.answers, engine, s.limiter, nil)
	s.ErrorContains(err, "audit recorder is required")
}

// -----------------------------------------------------------------------------
// Catalog
// -----------------------------------------------------------------------------

func (s *ServiceSuite) TestCatalog() {
	s.Run("unknown organization gets the base catalog", func() {
		c, err := s.svc.Catalog(s.otherCtx(), id.NewOrganizationID())
		s.Require().NoError(err)
		s.Equal(catalog.Base().IDs(), c.IDs())
	})

	s.Run("declared sectors extend the catalog", func() {
		s.seedProfile(catalog.SectorHealth)
		c, err := s.svc.Catalog(s.ownerCtx(), s.org)
		s.Require().NoError(err)
		s.Equal(catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}}).IDs(), c.IDs())
	})

	s.Run("another actor is denied and audited", func() {
		_, err := s.svc.Catalog(s.otherCtx(), s.org)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		denied := s.eventsFor(audit.ActionAccessDenied)
		s.Require().NotEmpty(denied)
		s.Equal(access.LevelDenied, denied[len(denied)-1].AccessLevel)
		s.Equal(string(audit.ActionCatalogViewed), denied[len(denied)-1].Details["attempted_action"])
	})
}

type failingProfiles struct{}

func (failingProfiles) Get(context.Context, id.OrganizationID) (*organization.Profile, error) {
	return nil, errors.New("connection reset")
}

func (failingProfiles) Save(context.Context, *organization.Profile) error {
	return errors.New("connection reset")
}

func (s *ServiceSuite) TestCatalogFallsBackOnProfileStoreFailure() {
	engine, err := remediation.NewEngine(s.tasks)
	s.Require().NoError(err)
	svc, err := service.New(failingProfiles{}, s.answers, engine, s.limiter, s.auditor)
	s.Require().NoError(err)

	c, err := svc.Catalog(s.ownerCtx(), s.org)
	s.Require().NoError(err)
	s.Equal(catalog.Base().IDs(), c.IDs())

	viewed := s.eventsFor(audit.ActionCatalogViewed)
	s.Require().Len(viewed, 1)
	s.Equal(true, viewed[0].Details["fallback"])
}

// -----------------------------------------------------------------------------
// Profile
// -----------------------------------------------------------------------------

func (s *ServiceSuite) TestUpdateProfile() {
	s.allowAll()

	s.Run("first update creates the profile with the caller as owner", func() {
		p, err := s.svc.UpdateProfile(s.ownerCtx(), s.org, organization.ProfileUpdate{
			Sectors:       []string{"saude", "marketing"},
			CustomSectors: []string{"Logística"},
			Size:          "small",
		})
		s.Require().NoError(err)
		s.Equal(s.owner, p.OwnerID)
		s.Equal([]catalog.Sector{catalog.SectorHealth, catalog.SectorMarketing}, p.Sectors)

		updated := s.eventsFor(audit.ActionProfileUpdated)
		s.Require().Len(updated, 1)
		s.True(updated[0].Success)
		s.Nil(updated[0].PreviousState)
	})

	s.Run("another user cannot take the organization over", func() {
		_, err := s.svc.UpdateProfile(s.otherCtx(), s.org, organization.ProfileUpdate{})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin update keeps the owner", func() {
		p, err := s.svc.UpdateProfile(s.adminCtx(), s.org, organization.ProfileUpdate{Sectors: []string{"financeiro"}})
		s.Require().NoError(err)
		s.Equal(s.owner, p.OwnerID)
		s.Equal(access.LevelAdmin, s.eventsFor(audit.ActionProfileUpdated)[1].AccessLevel)
	})

	s.Run("unknown sector is a validation error", func() {
		_, err := s.svc.UpdateProfile(s.ownerCtx(), s.org, organization.ProfileUpdate{Sectors: []string{"mineracao"}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		updated := s.eventsFor(audit.ActionProfileUpdated)
		s.False(updated[len(updated)-1].Success)
	})
}

func (s *ServiceSuite) TestUpdateProfileRateLimited() {
	reset := s.now.Add(time.Hour)
	s.limiter.EXPECT().CheckOperation(gomock.Any(), s.owner, ratelimitmodels.OperationUpdateProfile).
		Return(ratelimitmodels.Result{Allowed: false, Limit: 20, ResetAt: reset, RetryAfter: time.Hour}, nil)

	_, err := s.svc.UpdateProfile(s.ownerCtx(), s.org, organization.ProfileUpdate{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))

	var exceeded *ratelimitmodels.ExceededError
	s.Require().ErrorAs(err, &exceeded)
	s.Equal(reset, exceeded.Result.ResetAt)

	_, getErr := s.profiles.Get(context.Background(), s.org)
	s.Error(getErr, "rejected update must not create a profile")
}

// -----------------------------------------------------------------------------
// Answers and derivation
// -----------------------------------------------------------------------------

func (s *ServiceSuite) TestSaveAnswersDerivesTasks() {
	s.allowAll()
	s.seedProfile()

	answers := allYes()
	answers[catalog.QuestionDPO] = "não"

	res, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{
		Answers:  rawAnswers(answers),
		Complete: true,
		Mode:     string(remediation.ModeReset),
	})
	s.Require().NoError(err)

	s.Equal(80, res.AnswerSet.Score)
	s.Equal(s.owner, res.AnswerSet.SubmittedBy)
	s.Equal(catalog.Base().IDs(), res.AnswerSet.QuestionIDs)
	s.Equal([]string{"consent_management", "data_mapping", "data_subject_rights", "dpo", "privacy_policy"},
		templateKeys(res.Tasks.Created))

	saved := s.eventsFor(audit.ActionAnswersSaved)
	s.Require().Len(saved, 1)
	s.True(saved[0].Success)
	s.Equal(80, saved[0].Details["score"])
	s.Equal(access.LevelOwner, saved[0].AccessLevel)

	derived := s.eventsFor(audit.ActionTasksDerived)
	s.Require().Len(derived, 1)
	s.Equal(5, derived[0].Details["created"])
}

func (s *ServiceSuite) TestSaveAnswersAppendIsIdempotent() {
	s.allowAll()
	s.seedProfile()

	req := service.SaveAnswersRequest{Answers: rawAnswers(allYes()), Mode: string(remediation.ModeAppend)}
	first, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, req)
	s.Require().NoError(err)
	s.Len(first.Tasks.Created, 4)

	second, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, req)
	s.Require().NoError(err)
	s.Empty(second.Tasks.Created)
	s.Len(second.Tasks.Skipped, 4)

	tasks, err := s.svc.ListTasks(s.ownerCtx(), s.org)
	s.Require().NoError(err)
	s.Len(tasks, 4)
	s.Equal(2, s.answers.Count(s.org))
}

func (s *ServiceSuite) TestSaveAnswersValidation() {
	s.allowAll()
	s.seedProfile()

	s.Run("mode is required", func() {
		_, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{Answers: rawAnswers(allYes())})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("more answers than questions", func() {
		raw := append(rawAnswers(allYes()), json.RawMessage(`"sim"`))
		_, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{Answers: raw, Mode: "append"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("list for a single-choice question", func() {
		_, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{
			Answers: rawAnswers(map[int]any{catalog.QuestionDPO: []string{"sim"}}),
			Mode:    "append",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Equal(0, s.answers.Count(s.org))
	for _, e := range s.eventsFor(audit.ActionAnswersSaved) {
		s.False(e.Success)
	}
}

func (s *ServiceSuite) TestSaveAnswersDeniedBeforeRateLimit() {
	s.seedProfile()
	// No limiter expectation: a denied call must not consume the actor's quota.

	_, err := s.svc.SaveAnswers(s.otherCtx(), s.org, service.SaveAnswersRequest{
		Answers: rawAnswers(allYes()),
		Mode:    "reset",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Len(s.eventsFor(audit.ActionAccessDenied), 1)
}

func (s *ServiceSuite) TestSaveAnswersRateLimitedSavesNothing() {
	s.seedProfile()
	s.limiter.EXPECT().CheckOperation(gomock.Any(), s.owner, ratelimitmodels.OperationSaveAnswers).
		Return(ratelimitmodels.Result{Allowed: false, Limit: 10}, nil)

	_, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{
		Answers: rawAnswers(allYes()),
		Mode:    "reset",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
	s.Equal(0, s.answers.Count(s.org))
}

func (s *ServiceSuite) TestGetAnswersAndAnalysis() {
	s.allowAll()
	s.seedProfile(catalog.SectorHealth)

	_, err := s.svc.GetAnswers(s.ownerCtx(), s.org)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	c := catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}})
	raw := make([]json.RawMessage, c.Len())
	for i, q := range c {
		switch {
		case q.Kind == catalog.KindMulti:
			raw[i] = json.RawMessage("null")
		case q.Sector == string(catalog.SectorHealth):
			raw[i] = json.RawMessage(`"parcial"`)
		default:
			raw[i] = json.RawMessage(`"sim"`)
		}
	}
	_, err = s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{Answers: raw, Mode: "reset", Complete: true})
	s.Require().NoError(err)

	view, err := s.svc.GetAnswers(s.ownerCtx(), s.org)
	s.Require().NoError(err)
	s.Len(view.Answers, c.Len())
	s.Equal(c.IDs(), view.Catalog.IDs())

	analysis, err := s.svc.Analysis(s.adminCtx(), s.org)
	s.Require().NoError(err)
	s.True(analysis.Complete)
	s.Require().Len(analysis.Sectors, 2)
	s.Equal(catalog.SectorBase, analysis.Sectors[0].Sector)
	s.Equal(string(catalog.SectorHealth), analysis.Sectors[1].Sector)
	s.Equal(100, analysis.Sectors[0].Score)
	s.Equal(50, analysis.Sectors[1].Score)

	viewed := s.eventsFor(audit.ActionAnalysisViewed)
	s.Require().Len(viewed, 1)
	s.Equal(access.LevelAdmin, viewed[0].AccessLevel)
}

// -----------------------------------------------------------------------------
// Task lifecycle
// -----------------------------------------------------------------------------

func (s *ServiceSuite) firstTask() *remediation.Task {
	_, err := s.svc.SaveAnswers(s.ownerCtx(), s.org, service.SaveAnswersRequest{
		Answers: rawAnswers(allYes()),
		Mode:    "reset",
	})
	s.Require().NoError(err)
	tasks, err := s.svc.ListTasks(s.ownerCtx(), s.org)
	s.Require().NoError(err)
	s.Require().NotEmpty(tasks)
	return tasks[0]
}

func (s *ServiceSuite) TestTaskLifecycle() {
	s.allowAll()
	s.seedProfile()
	task := s.firstTask()

	started, err := s.svc.StartTask(s.ownerCtx(), s.org, task.ID)
	s.Require().NoError(err)
	s.Equal(remediation.StatusInProgress, started.Status)

	_, err = s.svc.SubmitTask(s.ownerCtx(), s.org, task.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation), "submission needs evidence")

	_, err = s.svc.AttachEvidence(s.ownerCtx(), s.org, task.ID, service.EvidenceRequest{
		FileName: "politica.exe", FileSize: 0, MimeType: "application/x-msdownload",
	})
	s.Require().Error(err)
	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeValidation, de.Code)
	s.Len(de.Details, 2)

	withEvidence, err := s.svc.AttachEvidence(s.ownerCtx(), s.org, task.ID, service.EvidenceRequest{
		FileName: "politica.pdf", FileSize: 2048, MimeType: "application/pdf", StorageKey: "org/politica.pdf",
	})
	s.Require().NoError(err)
	s.Require().Len(withEvidence.Evidence, 1)
	s.Equal(s.owner.String(), withEvidence.Evidence[0].AttachedBy)
	s.Equal(s.now, withEvidence.Evidence[0].AttachedAt)

	submitted, err := s.svc.SubmitTask(s.ownerCtx(), s.org, task.ID)
	s.Require().NoError(err)
	s.Equal(remediation.StatusInReview, submitted.Status)

	_, err = s.svc.ApproveTask(s.ownerCtx(), s.org, task.ID, "ok")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "owners cannot review their own work")

	_, err = s.svc.RejectTask(s.adminCtx(), s.org, task.ID, "  ")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	rejected, err := s.svc.RejectTask(s.adminCtx(), s.org, task.ID, "falta assinatura")
	s.Require().NoError(err)
	s.Equal(remediation.StatusRejected, rejected.Status)

	resumed, err := s.svc.ResumeTask(s.ownerCtx(), s.org, task.ID)
	s.Require().NoError(err)
	s.Equal(remediation.StatusInProgress, resumed.Status)

	_, err = s.svc.SubmitTask(s.ownerCtx(), s.org, task.ID)
	s.Require().NoError(err)
	approved, err := s.svc.ApproveTask(s.adminCtx(), s.org, task.ID, "aprovado")
	s.Require().NoError(err)
	s.Equal(remediation.StatusApproved, approved.Status)

	_, err = s.svc.StartTask(s.ownerCtx(), s.org, task.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

	approvals := s.eventsFor(audit.ActionTaskApproved)
	last := approvals[len(approvals)-1]
	s.True(last.Success)
	before, err := json.Marshal(last.PreviousState)
	s.Require().NoError(err)
	s.JSONEq(`{"status":"in_review","evidence_count":1}`, string(before))
}

func (s *ServiceSuite) TestTransitionUnknownTask() {
	s.allowAll()
	s.seedProfile()

	_, err := s.svc.StartTask(s.ownerCtx(), s.org, id.NewTaskID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestValidateDocument() {
	res := s.svc.ValidateDocument(s.ownerCtx(), service.EvidenceRequest{
		FileName: "foto.png", FileSize: 10, MimeType: "image/jpeg",
	})
	s.False(res.IsValid)
	s.Len(res.Errors, 1)

	validated := s.eventsFor(audit.ActionDocumentValidated)
	s.Require().Len(validated, 1)
	s.False(validated[0].Success)
}

// -----------------------------------------------------------------------------
// Security report
// -----------------------------------------------------------------------------

func (s *ServiceSuite) TestSecurityReport() {
	start, end := s.now.Add(-24*time.Hour), s.now

	s.Run("admins only", func() {
		_, err := s.svc.SecurityReport(s.ownerCtx(), start, end)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin gets the report", func() {
		s.allowAll()
		s.reporter.EXPECT().Generate(gomock.Any(), start, end).
			Return(&report.Report{Start: start, End: end, TotalActions: 12}, nil)

		rep, err := s.svc.SecurityReport(s.adminCtx(), start, end)
		s.Require().NoError(err)
		s.Equal(12, rep.TotalActions)

		generated := s.eventsFor(audit.ActionSecurityReport)
		s.Require().Len(generated, 1)
		s.Equal(12, generated[0].Details["total_actions"])
	})
}

package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"adequa/internal/access"
	"adequa/internal/assessment/answerset"
	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/remediation"
	"adequa/internal/assessment/scoring"
	"adequa/internal/assessment/sector"
	"adequa/internal/audit"
	"adequa/internal/organization"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/platform/sentinel"
	"adequa/pkg/requestcontext"
)

// Catalog returns the question catalog for the organization. It never fails
// on profile lookup: an unknown organization or a store error yields the
// base catalog. Access is checked only when a profile exists.
func (s *Service) Catalog(ctx context.Context, orgID id.OrganizationID) (_ catalog.Catalog, err error) {
	ctx, span := s.startSpan(ctx, "assessment.Catalog", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionCatalogViewed, resourceType: audit.ResourceOrganization, resourceID: orgID.String()}

	profile, lookupErr := s.loadProfile(ctx, orgID)
	if lookupErr != nil {
		s.metrics.IncrementCatalogFallbacks()
		s.logger.WarnContext(ctx, "profile lookup failed, serving base catalog",
			"organization_id", orgID.String(),
			"error", lookupErr,
		)
	}

	var level access.Level
	if profile != nil {
		d, err := s.evaluate(ctx, profile, t)
		if err != nil {
			return nil, err
		}
		level = d.Level
	}

	c := catalog.Compose(profile.CatalogProfile())

	s.auditor.Record(ctx, audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		ResourceID:   t.resourceID,
		Details: map[string]any{
			"questions": c.Len(),
			"fallback":  lookupErr != nil,
		},
		Success:     true,
		AccessLevel: level,
	})
	return c, nil
}

// UpdateProfile replaces the organization's declared structure. The first
// update of an organization creates its profile with the caller as owner.
func (s *Service) UpdateProfile(ctx context.Context, orgID id.OrganizationID, u organization.ProfileUpdate) (_ *organization.Profile, err error) {
	ctx, span := s.startSpan(ctx, "assessment.UpdateProfile", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionProfileUpdated, resourceType: audit.ResourceOrganization, resourceID: orgID.String()}
	actor := requestcontext.ActorID(ctx)

	previous, err := s.loadProfile(ctx, orgID)
	if err != nil {
		return nil, err
	}

	level := access.LevelOwner
	if previous != nil {
		d, err := s.evaluate(ctx, previous, t)
		if err != nil {
			return nil, err
		}
		level = d.Level
	} else if actor.IsNil() {
		return nil, s.deny(ctx, t)
	}

	if err := s.throttle(ctx, ratelimitmodels.OperationUpdateProfile); err != nil {
		return nil, err
	}

	event := audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		ResourceID:   t.resourceID,
		AccessLevel:  level,
	}

	sectors, custom, size, err := u.Normalize()
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}

	next := &organization.Profile{
		OrganizationID: orgID,
		OwnerID:        actor,
		Sectors:        sectors,
		CustomSectors:  custom,
		Size:           size,
		UpdatedAt:      requestcontext.Now(ctx),
	}
	if previous != nil {
		next.OwnerID = previous.OwnerID
	}

	if err := s.profiles.Save(ctx, next); err != nil {
		return nil, s.failed(ctx, event, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save organization profile"))
	}

	if previous != nil {
		event.PreviousState = previous
	}
	event.NewState = next
	event.Success = true
	s.auditor.Record(ctx, event)

	s.logger.InfoContext(ctx, "organization profile updated",
		"organization_id", orgID.String(),
		"sectors", len(next.Sectors),
		"custom_sectors", len(next.CustomSectors),
		"created", previous == nil,
	)
	return next, nil
}

// SaveAnswers stores a new answer set, recomputes the score and derives
// remediation tasks with the caller's explicit mode.
func (s *Service) SaveAnswers(ctx context.Context, orgID id.OrganizationID, req SaveAnswersRequest) (_ *SaveAnswersResult, err error) {
	ctx, span := s.startSpan(ctx, "assessment.SaveAnswers", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionAnswersSaved, resourceType: audit.ResourceAnswerSet}

	profile, decision, err := s.authorize(ctx, orgID, t)
	if err != nil {
		return nil, err
	}
	if err := s.throttle(ctx, ratelimitmodels.OperationSaveAnswers); err != nil {
		return nil, err
	}

	event := audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		AccessLevel:  decision.Level,
		Details:      map[string]any{"organization_id": orgID.String(), "mode": req.Mode},
	}

	mode, err := remediation.ParseMode(req.Mode)
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}
	if utf8.RuneCountInString(req.Observations) > MaxObservationsLength {
		return nil, s.failed(ctx, event, dErrors.New(dErrors.CodeValidation, "observations are too long"))
	}

	c := catalog.Compose(profile.CatalogProfile())
	answers, err := catalog.ParseAnswers(c, req.Answers)
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}

	set := &answerset.AnswerSet{
		ID:             id.NewAnswerSetID(),
		OrganizationID: orgID,
		SubmittedBy:    requestcontext.ActorID(ctx),
		QuestionIDs:    c.IDs(),
		Answers:        answers,
		Complete:       req.Complete,
		Score:          scoring.Score(answers, c.Len()),
		Observations:   req.Observations,
		CreatedAt:      requestcontext.Now(ctx),
	}
	event.ResourceID = set.ID.String()

	if err := s.answers.Save(ctx, set); err != nil {
		return nil, s.failed(ctx, event, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save answers"))
	}
	s.metrics.IncrementAnswerSetsSaved(set.Score)

	event.Success = true
	event.Details["score"] = set.Score
	event.Details["complete"] = set.Complete
	event.Details["questions"] = c.Len()
	s.auditor.Record(ctx, event)

	derived := s.library.Derive(c, answers)
	applied, err := s.tasks.Apply(ctx, orgID, derived, mode)
	if err != nil {
		return nil, s.failed(ctx, audit.Event{
			Action:       audit.ActionTasksDerived,
			ResourceType: audit.ResourceTask,
			AccessLevel:  decision.Level,
			Details:      map[string]any{"organization_id": orgID.String(), "mode": string(mode)},
		}, err)
	}
	s.metrics.AddTasksDerived(string(mode), len(applied.Created))

	s.auditor.Record(ctx, audit.Event{
		Action:       audit.ActionTasksDerived,
		ResourceType: audit.ResourceTask,
		AccessLevel:  decision.Level,
		Details: map[string]any{
			"organization_id": orgID.String(),
			"answer_set_id":   set.ID.String(),
			"mode":            string(mode),
			"created":         len(applied.Created),
			"skipped":         len(applied.Skipped),
			"removed":         applied.Removed,
			"cancelled":       applied.Cancelled,
		},
		Success: true,
	})

	return &SaveAnswersResult{AnswerSet: set, Tasks: applied}, nil
}

// GetAnswers returns the latest answer set aligned to the current catalog.
func (s *Service) GetAnswers(ctx context.Context, orgID id.OrganizationID) (_ *AnswersView, err error) {
	ctx, span := s.startSpan(ctx, "assessment.GetAnswers", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionAnswersViewed, resourceType: audit.ResourceAnswerSet}

	profile, set, err := s.loadProfileAndAnswers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	decision, err := s.evaluate(ctx, profile, t)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no answers saved for this organization")
	}

	c := catalog.Compose(profile.CatalogProfile())
	view := &AnswersView{AnswerSet: set, Catalog: c, Answers: set.AlignTo(c)}

	s.auditor.Record(ctx, audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		ResourceID:   set.ID.String(),
		Success:      true,
		AccessLevel:  decision.Level,
	})
	return view, nil
}

// Analysis scores the latest answers against the current catalog and breaks
// the result down per sector.
func (s *Service) Analysis(ctx context.Context, orgID id.OrganizationID) (_ *Analysis, err error) {
	ctx, span := s.startSpan(ctx, "assessment.Analysis", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionAnalysisViewed, resourceType: audit.ResourceAnswerSet}

	profile, set, err := s.loadProfileAndAnswers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	decision, err := s.evaluate(ctx, profile, t)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no answers saved for this organization")
	}

	c := catalog.Compose(profile.CatalogProfile())
	answers := set.AlignTo(c)
	results := sector.Analyze(c, answers)

	out := &Analysis{
		OrganizationID: orgID,
		AnswerSetID:    set.ID,
		Score:          scoring.Score(answers, c.Len()),
		Complete:       set.Complete,
		Sectors:        make([]sector.Result, 0, len(results)),
		AnsweredAt:     set.CreatedAt,
	}
	for _, k := range sector.Keys(results) {
		out.Sectors = append(out.Sectors, results[k])
	}

	s.auditor.Record(ctx, audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		ResourceID:   set.ID.String(),
		Details:      map[string]any{"score": out.Score, "sectors": len(out.Sectors)},
		Success:      true,
		AccessLevel:  decision.Level,
	})
	return out, nil
}

// loadProfileAndAnswers fetches the profile and the latest answer set
// concurrently. Either may be nil when it does not exist yet.
func (s *Service) loadProfileAndAnswers(ctx context.Context, orgID id.OrganizationID) (*organization.Profile, *answerset.AnswerSet, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		profile *organization.Profile
		set     *answerset.AnswerSet
	)
	g.Go(func() error {
		var err error
		profile, err = s.loadProfile(gctx, orgID)
		return err
	})
	g.Go(func() error {
		latest, err := s.answers.Latest(gctx, orgID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load answers")
		}
		set = latest
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, set, nil
}

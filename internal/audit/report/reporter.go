// Package report analyzes a window of audit records for suspicious activity.
// It only reads; generating a report twice over the same records yields the
// same report apart from GeneratedAt.
package report

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/mssola/useragent"

	"adequa/internal/audit"
	"adequa/internal/platform/config"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/requestcontext"
)

// Thresholds tune the suspicious-activity rules. A signal fires when a count
// strictly exceeds its threshold.
type Thresholds struct {
	BurstPerHour int
	AccessDenied int
	DistinctIPs  int
	TopActors    int
	FailureRatio float64
	DetectBots   bool
}

// DefaultThresholds returns the standard rule set.
func DefaultThresholds() Thresholds {
	return ThresholdsFromConfig(config.DefaultReport())
}

// ThresholdsFromConfig converts the configured report thresholds.
func ThresholdsFromConfig(c config.ReportConfig) Thresholds {
	return Thresholds{
		BurstPerHour: c.BurstThreshold,
		AccessDenied: c.AccessDeniedThreshold,
		DistinctIPs:  c.DistinctIPThreshold,
		TopActors:    c.TopActors,
		FailureRatio: c.FailureRatio,
		DetectBots:   c.DetectBots,
	}
}

// Reporter builds security reports from an audit store.
type Reporter struct {
	store      audit.Store
	thresholds Thresholds
	logger     *slog.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithThresholds overrides the default thresholds.
func WithThresholds(t Thresholds) Option {
	return func(r *Reporter) { r.thresholds = t }
}

// WithLogger sets the reporter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) { r.logger = logger }
}

// New creates a Reporter.
func New(store audit.Store, opts ...Option) (*Reporter, error) {
	if store == nil {
		return nil, errors.New("audit store is required")
	}
	r := &Reporter{store: store, thresholds: DefaultThresholds(), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Generate reads the records in [start, end) and analyzes them.
func (r *Reporter) Generate(ctx context.Context, start, end time.Time) (*Report, error) {
	if !end.After(start) {
		return nil, dErrors.New(dErrors.CodeValidation, "report end must be after start")
	}
	records, err := r.store.QueryRange(ctx, start, end)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit records")
	}

	rep := Analyze(records, r.thresholds)
	rep.Start, rep.End = start.UTC(), end.UTC()
	rep.GeneratedAt = requestcontext.Now(ctx).UTC()

	r.logger.InfoContext(ctx, "security report generated",
		"start", rep.Start,
		"end", rep.End,
		"total_actions", rep.TotalActions,
		"suspicious", len(rep.SuspiciousActivities),
	)
	return rep, nil
}

type actorStats struct {
	summary  ActorSummary
	ips      map[string]struct{}
	hours    map[time.Time]int
	bot      bool
	botAgent string
}

type patternKey struct {
	resourceType string
	action       string
}

// Analyze computes a report over records. It is a pure function of its input.
func Analyze(records []audit.Record, t Thresholds) *Report {
	rep := &Report{
		SuspiciousActivities: []SuspiciousActivity{},
		ActorSummaries:       []ActorSummary{},
		AccessPatterns:       []AccessPattern{},
		TopActors:            []ActorSummary{},
	}

	actors := map[string]*actorStats{}
	patterns := map[patternKey]*AccessPattern{}
	patternActors := map[patternKey]map[string]struct{}{}
	agents := map[string]bool{}

	for _, rec := range records {
		rep.TotalActions++
		failed := !rec.Success
		denied := rec.IsAccessDenied()
		if failed {
			rep.FailedActions++
		}
		if denied {
			rep.DeniedActions++
		}

		key := actorKey(rec)
		st, ok := actors[key]
		if !ok {
			st = &actorStats{
				summary: ActorSummary{ActorID: key, FirstSeen: rec.Timestamp},
				ips:     map[string]struct{}{},
				hours:   map[time.Time]int{},
			}
			actors[key] = st
		}
		st.summary.TotalActions++
		if failed {
			st.summary.FailedActions++
		}
		if denied {
			st.summary.DeniedActions++
		}
		if rec.IPAddress != "" {
			st.ips[rec.IPAddress] = struct{}{}
		}
		st.hours[rec.Timestamp.UTC().Truncate(time.Hour)]++
		if rec.Timestamp.Before(st.summary.FirstSeen) {
			st.summary.FirstSeen = rec.Timestamp
		}
		if rec.Timestamp.After(st.summary.LastSeen) {
			st.summary.LastSeen = rec.Timestamp
		}
		if t.DetectBots && rec.UserAgent != "" && !st.bot {
			bot, seen := agents[rec.UserAgent]
			if !seen {
				bot = useragent.New(rec.UserAgent).Bot()
				agents[rec.UserAgent] = bot
			}
			if bot {
				st.bot, st.botAgent = true, rec.UserAgent
			}
		}

		pk := patternKey{rec.ResourceType, string(rec.Action)}
		p, ok := patterns[pk]
		if !ok {
			p = &AccessPattern{ResourceType: rec.ResourceType, Action: string(rec.Action)}
			patterns[pk] = p
			patternActors[pk] = map[string]struct{}{}
		}
		p.Total++
		if failed {
			p.Failed++
		}
		patternActors[pk][key] = struct{}{}
	}

	if rep.TotalActions > 0 {
		rep.FailureRate = round2(float64(rep.FailedActions) / float64(rep.TotalActions))
	}

	for key, st := range actors {
		st.summary.IPAddresses = sortedKeys(st.ips)
		st.summary.DistinctIPs = len(st.ips)
		st.summary.SuccessRate = round2(float64(st.summary.TotalActions-st.summary.FailedActions) / float64(st.summary.TotalActions))
		rep.ActorSummaries = append(rep.ActorSummaries, st.summary)
		rep.SuspiciousActivities = append(rep.SuspiciousActivities, signalsFor(key, st, t)...)
	}

	slices.SortFunc(rep.ActorSummaries, func(a, b ActorSummary) int {
		if c := cmp.Compare(b.TotalActions, a.TotalActions); c != 0 {
			return c
		}
		return cmp.Compare(a.ActorID, b.ActorID)
	})
	slices.SortFunc(rep.SuspiciousActivities, compareSignals)

	topN := min(t.TopActors, len(rep.ActorSummaries))
	if topN > 0 {
		rep.TopActors = append(rep.TopActors, rep.ActorSummaries[:topN]...)
	}

	for pk, p := range patterns {
		p.UniqueActors = len(patternActors[pk])
		rep.AccessPatterns = append(rep.AccessPatterns, *p)
	}
	slices.SortFunc(rep.AccessPatterns, func(a, b AccessPattern) int {
		if c := cmp.Compare(a.ResourceType, b.ResourceType); c != 0 {
			return c
		}
		return cmp.Compare(a.Action, b.Action)
	})

	rep.Recommendations = recommend(rep, t)
	return rep
}

func signalsFor(key string, st *actorStats, t Thresholds) []SuspiciousActivity {
	var out []SuspiciousActivity
	for hour, n := range st.hours {
		if n > t.BurstPerHour {
			h := hour
			out = append(out, SuspiciousActivity{
				Type:        SignalHighActivity,
				ActorID:     key,
				Hour:        &h,
				Count:       n,
				Description: fmt.Sprintf("%d ações em uma hora (limite %d)", n, t.BurstPerHour),
			})
		}
	}
	if st.summary.DeniedActions > t.AccessDenied {
		out = append(out, SuspiciousActivity{
			Type:        SignalRepeatedAccessDenied,
			ActorID:     key,
			Count:       st.summary.DeniedActions,
			Description: fmt.Sprintf("%d acessos negados (limite %d)", st.summary.DeniedActions, t.AccessDenied),
		})
	}
	if len(st.ips) > t.DistinctIPs {
		out = append(out, SuspiciousActivity{
			Type:        SignalMultipleIPs,
			ActorID:     key,
			Count:       len(st.ips),
			Description: fmt.Sprintf("acesso a partir de %d endereços IP distintos (limite %d)", len(st.ips), t.DistinctIPs),
		})
	}
	if st.bot {
		out = append(out, SuspiciousActivity{
			Type:        SignalAutomatedClient,
			ActorID:     key,
			Count:       1,
			Description: "cliente automatizado identificado: " + st.botAgent,
		})
	}
	return out
}

func compareSignals(a, b SuspiciousActivity) int {
	if c := cmp.Compare(signalOrder[a.Type], signalOrder[b.Type]); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ActorID, b.ActorID); c != 0 {
		return c
	}
	switch {
	case a.Hour == nil || b.Hour == nil:
		return 0
	default:
		return a.Hour.Compare(*b.Hour)
	}
}

func recommend(rep *Report, t Thresholds) []string {
	var out []string
	if rep.TotalActions > 0 && rep.FailureRate > t.FailureRatio {
		out = append(out, fmt.Sprintf(
			"Taxa de falhas de %.0f%% acima do esperado: revise as validações de entrada e as mensagens de erro apresentadas aos usuários.",
			rep.FailureRate*100))
	}
	if len(rep.SuspiciousActivities) > 0 {
		out = append(out, "Investigue as atividades suspeitas listadas e considere bloquear temporariamente os atores envolvidos.")
	}
	if rep.DeniedActions > 0 {
		out = append(out, "Foram registradas tentativas de acesso negadas: revise as permissões concedidas e os vínculos entre usuários e organizações.")
	}
	if len(out) == 0 {
		out = append(out, "Nenhuma anomalia detectada no período analisado.")
	}
	return out
}

func actorKey(r audit.Record) string {
	if r.IsSystem() {
		return SystemActor
	}
	return r.ActorID.String()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

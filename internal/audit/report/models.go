package report

import "time"

// SignalType names a suspicious-activity rule.
type SignalType string

const (
	SignalHighActivity         SignalType = "high_activity"
	SignalRepeatedAccessDenied SignalType = "repeated_access_denied"
	SignalMultipleIPs          SignalType = "multiple_ips"
	SignalAutomatedClient      SignalType = "automated_client"
)

var signalOrder = map[SignalType]int{
	SignalHighActivity:         0,
	SignalRepeatedAccessDenied: 1,
	SignalMultipleIPs:          2,
	SignalAutomatedClient:      3,
}

// SystemActor labels records without a human actor.
const SystemActor = "system"

// SuspiciousActivity is one flagged signal.
type SuspiciousActivity struct {
	Type        SignalType `json:"type"`
	ActorID     string     `json:"actor_id"`
	Hour        *time.Time `json:"hour,omitempty"`
	Count       int        `json:"count"`
	Description string     `json:"description"`
}

// ActorSummary aggregates one actor's activity in the window.
type ActorSummary struct {
	ActorID       string    `json:"actor_id"`
	TotalActions  int       `json:"total_actions"`
	FailedActions int       `json:"failed_actions"`
	DeniedActions int       `json:"denied_actions"`
	SuccessRate   float64   `json:"success_rate"`
	DistinctIPs   int       `json:"distinct_ips"`
	IPAddresses   []string  `json:"ip_addresses"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
}

// AccessPattern aggregates one (resource type, action) pair.
type AccessPattern struct {
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
	Total        int    `json:"total"`
	Failed       int    `json:"failed"`
	UniqueActors int    `json:"unique_actors"`
}

// Report is the security analysis of one time window.
type Report struct {
	Start                time.Time            `json:"start"`
	End                  time.Time            `json:"end"`
	GeneratedAt          time.Time            `json:"generated_at"`
	TotalActions         int                  `json:"total_actions"`
	FailedActions        int                  `json:"failed_actions"`
	DeniedActions        int                  `json:"denied_actions"`
	FailureRate          float64              `json:"failure_rate"`
	SuspiciousActivities []SuspiciousActivity `json:"suspicious_activities"`
	ActorSummaries       []ActorSummary       `json:"actor_summaries"`
	AccessPatterns       []AccessPattern      `json:"access_patterns"`
	TopActors            []ActorSummary       `json:"top_actors"`
	Recommendations      []string             `json:"recommendations"`
}

// Signals returns the suspicious activities of one type.
func (r *Report) Signals(t SignalType) []SuspiciousActivity {
	var out []SuspiciousActivity
	for _, s := range r.SuspiciousActivities {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

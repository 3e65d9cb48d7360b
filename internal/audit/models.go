package audit

import (
	"time"

	id "subguard/pkg/domain"
)

// EventType names the security-relevant actions recorded in the audit trail.
type EventType string

const (
	EventSubdomainValidation EventType = "subdomain_validation"
	EventRateLimitViolation  EventType = "rate_limit_violation"
	EventSuspiciousInput     EventType = "suspicious_input"
	EventBlockedPattern      EventType = "blocked_pattern"
	EventHomographAttack     EventType = "homograph_attack"
	EventEnvironmentCreation EventType = "environment_creation"
	EventSSLVerification     EventType = "ssl_verification"
	EventSecureDeployment    EventType = "secure_deployment"
	EventDeployFailed        EventType = "deploy_failed"
	EventSubdomainRevocation EventType = "subdomain_revocation"
	EventInternalFault       EventType = "internal_fault"
)

// ThreatType classifies the anomaly an event records, when there is one.
type ThreatType string

const (
	ThreatRateLimitViolation ThreatType = "rate_limit_violation"
	ThreatXSSAttempt         ThreatType = "xss_attempt"
	ThreatSQLInjection       ThreatType = "sql_injection"
	ThreatPhishingAttempt    ThreatType = "phishing_attempt"
	ThreatSubdomainTakeover  ThreatType = "subdomain_takeover"
	ThreatSuspiciousActivity ThreatType = "suspicious_activity"
)

// Metadata is a bounded free-form bag attached to an event. Appends clamp it
// to MaxMetadataKeys entries and MaxMetadataValueLen bytes per value so a
// single event cannot balloon the trail.
type Metadata map[string]string

const (
	MaxMetadataKeys     = 16
	MaxMetadataValueLen = 256
)

// Event is an immutable record of a security-relevant decision or anomaly.
// Events are append-only: ordering is insertion order and entries are never
// mutated or deleted. Keep the type transport-agnostic so stores and sinks
// can fan out.
type Event struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Type        EventType         `json:"event_type"`
	Description string            `json:"description"`
	Severity    id.SecurityLevel  `json:"severity"`
	Client      id.ClientIdentity `json:"client,omitempty"`
	Subdomain   string            `json:"subdomain,omitempty"`
	ThreatType  ThreatType        `json:"threat_type,omitempty"`
	Metadata    Metadata          `json:"metadata,omitempty"`
}

// clampMetadata enforces the metadata bounds. Excess keys are dropped in map
// iteration order; oversize values are truncated.
func clampMetadata(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		if len(out) >= MaxMetadataKeys {
			break
		}
		if len(v) > MaxMetadataValueLen {
			v = v[:MaxMetadataValueLen]
		}
		out[k] = v
	}
	return out
}

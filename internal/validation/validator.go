// Package validation screens candidate subdomain names for hostile or
// reserved content before any registry state is touched.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"subguard/internal/audit"
	id "subguard/pkg/domain"
)

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Result is the outcome of a single validation pass. When Valid is false,
// Err carries the client-facing message and EventType/ThreatType describe
// what the audit trail should record (EventType empty for plain syntax
// failures, which are not audit-worthy).
type Result struct {
	Valid      bool
	Err        string
	Severity   id.SecurityLevel
	ThreatType audit.ThreatType
	EventType  audit.EventType
	Match      string
}

// Validator checks candidate names against a fixed set of rules. The zero
// value is not usable; construct with NewValidator.
type Validator struct {
	suspicious []string
	blocked    []string
	homographs []rune
}

// NewValidator creates a validator with the standard rule set.
func NewValidator() *Validator {
	return &Validator{
		suspicious: suspiciousTokens,
		blocked:    blockedWords,
		homographs: homographRunes,
	}
}

// Validate runs every gate against the raw candidate string. Gates
// short-circuit in a fixed order so a name failing several rules always
// reports the same one. Validation is pure: the caller records the audit
// event described by the result.
func (v *Validator) Validate(name string) Result {
	if len(name) < id.SubdomainMinLength || len(name) > id.SubdomainMaxLength {
		return Result{
			Err: fmt.Sprintf("subdomain must be between %d and %d characters",
				id.SubdomainMinLength, id.SubdomainMaxLength),
			Severity: id.LevelMedium,
		}
	}

	lowered := strings.ToLower(name)

	// Homographs before the charset gate: a Cyrillic lookalike fails the
	// ASCII pattern too, but reporting it as a syntax error would hide the
	// phishing signal from the audit trail.
	for _, r := range v.homographs {
		if strings.ContainsRune(lowered, r) {
			return Result{
				Err:        "subdomain contains suspicious characters",
				Severity:   id.LevelHigh,
				ThreatType: audit.ThreatPhishingAttempt,
				EventType:  audit.EventHomographAttack,
				Match:      string(r),
			}
		}
	}

	if !labelPattern.MatchString(name) {
		return Result{
			Err:      "subdomain must contain only lowercase letters, numbers, and hyphens",
			Severity: id.LevelMedium,
		}
	}

	for _, token := range v.suspicious {
		if strings.Contains(lowered, token) {
			return Result{
				Err:        "subdomain contains suspicious characters",
				Severity:   id.LevelHigh,
				ThreatType: audit.ThreatXSSAttempt,
				EventType:  audit.EventSuspiciousInput,
				Match:      token,
			}
		}
	}

	for _, word := range v.blocked {
		if strings.Contains(lowered, word) {
			return Result{
				Err:       "subdomain name contains blocked patterns",
				Severity:  id.LevelMedium,
				EventType: audit.EventBlockedPattern,
				Match:     word,
			}
		}
	}

	return Result{Valid: true}
}

// ThreatDetected reports whether the failure carries a threat signal rather
// than a plain policy or syntax problem.
func (r Result) ThreatDetected() bool {
	return r.ThreatType != ""
}

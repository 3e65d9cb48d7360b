package provisioning

import (
	id "subguard/pkg/domain"
)

// SecurityDecision is the admission verdict for one request. Level is always
// derived from Score; a detected threat always means the request is invalid.
type SecurityDecision struct {
	Valid           bool             `json:"valid"`
	Score           int              `json:"score"`
	Level           id.SecurityLevel `json:"level"`
	ThreatDetected  bool             `json:"threat_detected"`
	Recommendations []string         `json:"recommendations,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
}

// acceptedDecision builds the verdict for an admitted request.
func acceptedDecision(score int, recommendations []string) SecurityDecision {
	return SecurityDecision{
		Valid:           true,
		Score:           score,
		Level:           id.LevelForScore(score),
		Recommendations: recommendations,
	}
}

// rejectedDecision builds the verdict for a rejected request. The level is
// supplied by the failing gate rather than derived from a score.
func rejectedDecision(reason string, level id.SecurityLevel, threatDetected bool) SecurityDecision {
	return SecurityDecision{
		Level:           level,
		ThreatDetected:  threatDetected,
		RejectionReason: reason,
	}
}

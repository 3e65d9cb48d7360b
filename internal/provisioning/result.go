package provisioning

import (
	"time"

	"subguard/internal/certauth"
	"subguard/internal/deploy"
	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
)

// ProvisionRequest is one attempt to claim a subdomain.
type ProvisionRequest struct {
	ProjectID id.ProjectID
	Name      string
	Client    id.ClientIdentity
}

// ProvisionResult is the caller-facing outcome. Expected rejections (rate
// limit, validation, collision) come back here with Success=false; only
// internal faults surface as errors.
type ProvisionResult struct {
	Success         bool              `json:"success"`
	Subdomain       string            `json:"subdomain,omitempty"`
	FullURL         string            `json:"full_url,omitempty"`
	SecurityScore   int               `json:"security_score,omitempty"`
	SSLConfigured   bool              `json:"ssl_configured,omitempty"`
	SecurityHeaders map[string]string `json:"security_headers,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Error           string            `json:"error,omitempty"`
	SecurityLevel   id.SecurityLevel  `json:"security_level,omitempty"`
	ThreatDetected  bool              `json:"threat_detected,omitempty"`
	RetryAfter      int               `json:"retry_after,omitempty"`
	RejectionCode   dErrors.Code      `json:"rejection_code,omitempty"`
	IsolationToken  string            `json:"isolation_token,omitempty"`
	DeploymentInfo  *deploy.Result    `json:"deployment_info,omitempty"`
	Decision        SecurityDecision  `json:"decision"`
	State           State             `json:"state"`
}

// StatusResult describes one active subdomain for the status endpoint.
type StatusResult struct {
	Exists          bool                      `json:"exists"`
	Subdomain       string                    `json:"subdomain,omitempty"`
	FullURL         string                    `json:"full_url,omitempty"`
	CreatedAt       time.Time                 `json:"created_at,omitzero"`
	SecurityScore   int                       `json:"security_score,omitempty"`
	SecurityHeaders map[string]string         `json:"security_headers,omitempty"`
	SSLStatus       *certauth.SSLVerification `json:"ssl_status,omitempty"`
}

// Alert is one active security concern on the report.
type Alert struct {
	Type      string           `json:"type"`
	Severity  id.SecurityLevel `json:"severity"`
	Message   string           `json:"message"`
	Subdomain string           `json:"subdomain,omitempty"`
}

// SecurityReport summarizes the fleet of active subdomains.
type SecurityReport struct {
	TotalSubdomains      int      `json:"total_subdomains"`
	AverageSecurityScore float64  `json:"average_security_score"`
	SSLConfiguredCount   int      `json:"ssl_configured_count"`
	RecentDeployments    []string `json:"recent_deployments"`
	ActiveAlerts         []Alert  `json:"active_alerts"`
}

// RevokeResult reports a revocation outcome.
type RevokeResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Subdomain string `json:"subdomain"`
}

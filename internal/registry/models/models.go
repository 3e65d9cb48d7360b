// Package models defines the registry's persisted records.
package models

import (
	"time"

	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
)

// Default isolation limits applied to every provisioned environment.
const (
	DefaultMaxMemory      = "512MB"
	DefaultMaxCPU         = "50%"
	DefaultMaxConnections = 100
	DefaultTimeoutSeconds = 30
)

// ResourceLimits caps what a deployed environment may consume.
type ResourceLimits struct {
	MaxMemory      string `json:"max_memory"`
	MaxCPU         string `json:"max_cpu"`
	MaxConnections int    `json:"max_connections"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// DefaultResourceLimits returns the standard limits.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxMemory:      DefaultMaxMemory,
		MaxCPU:         DefaultMaxCPU,
		MaxConnections: DefaultMaxConnections,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Isolation describes the sandbox an environment runs in. The token itself is
// handed to the caller once and never stored; the registry keeps its
// fingerprint for audit metadata and a bcrypt hash for revocation checks.
type Isolation struct {
	Path             string         `json:"path"`
	TokenFingerprint string         `json:"token_fingerprint"`
	TokenHash        string         `json:"token_hash"`
	ResourceLimits   ResourceLimits `json:"resource_limits"`
}

// DeploymentRecord is one provisioned subdomain. Immutable once inserted;
// revocation removes the record entirely.
type DeploymentRecord struct {
	Subdomain       id.SubdomainName  `json:"subdomain"`
	ProjectID       id.ProjectID      `json:"project_id"`
	CreatedAt       time.Time         `json:"created_at"`
	SecurityScore   int               `json:"security_score"`
	SSLConfigured   bool              `json:"ssl_configured"`
	SecurityHeaders map[string]string `json:"security_headers"`
	Isolation       Isolation         `json:"isolation"`
}

// NewDeploymentRecord creates a record, enforcing invariants.
func NewDeploymentRecord(
	subdomain id.SubdomainName,
	projectID id.ProjectID,
	createdAt time.Time,
	securityScore int,
	sslConfigured bool,
	securityHeaders map[string]string,
	isolation Isolation,
) (*DeploymentRecord, error) {
	if subdomain.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "deployment record requires a subdomain")
	}
	if projectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "deployment record requires a project id")
	}
	if createdAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "deployment record requires a creation time")
	}
	if securityScore < 0 || securityScore > 100 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "security score must be in [0,100]")
	}
	return &DeploymentRecord{
		Subdomain:       subdomain,
		ProjectID:       projectID,
		CreatedAt:       createdAt,
		SecurityScore:   securityScore,
		SSLConfigured:   sslConfigured,
		SecurityHeaders: securityHeaders,
		Isolation:       isolation,
	}, nil
}

package provisioning

import (
	"context"

	"subguard/internal/audit"
	"subguard/internal/certauth"
	"subguard/internal/deploy"
	rlmodels "subguard/internal/ratelimit/models"
	id "subguard/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// RateLimiter gates provisioning attempts per client. The limiter records
// its own violation events; the pipeline only reads the verdict.
type RateLimiter interface {
	Allow(ctx context.Context, client id.ClientIdentity) (*rlmodels.RateLimitResult, error)
}

// CertificateAuthority supplies advisory SSL facts about the base domain.
type CertificateAuthority interface {
	VerifySSL(ctx context.Context, domain string) (*certauth.SSLVerification, error)
}

// DeploymentExecutor rolls out an admitted subdomain.
type DeploymentExecutor interface {
	Deploy(ctx context.Context, name id.SubdomainName, cfg deploy.Config) (*deploy.Result, error)
}

// AuditLog is the pipeline's view of the audit trail.
type AuditLog interface {
	Append(ctx context.Context, event audit.Event) error
	Recent(ctx context.Context, n int) ([]audit.Event, error)
}

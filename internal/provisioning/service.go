// Package provisioning runs the admission pipeline that takes a subdomain
// request from arrival to a registered, deployed environment.
package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"subguard/internal/audit"
	"subguard/internal/deploy"
	"subguard/internal/provisioning/metrics"
	regmodels "subguard/internal/registry/models"
	regports "subguard/internal/registry/ports"
	"subguard/internal/scoring"
	"subguard/internal/validation"
	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
	"subguard/pkg/requestcontext"
)

// DefaultRecentLimit bounds the recent-events slice on the report endpoints.
const DefaultRecentLimit = 10

// Service is the provisioning pipeline. Gates run in a fixed order and every
// transition into Rejected appends exactly one audit event before the caller
// sees the rejection.
type Service struct {
	limiter     RateLimiter
	validator   *validation.Validator
	registry    regports.Store
	auditLog    AuditLog
	ca          CertificateAuthority
	executor    DeploymentExecutor
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	baseDomain  string
	recentLimit int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithTracer overrides the OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tracer }
}

// WithRecentLimit sets how many recent events the report surfaces.
func WithRecentLimit(n int) ServiceOption {
	return func(s *Service) { s.recentLimit = n }
}

// NewService wires the pipeline to its gates and collaborators.
func NewService(
	limiter RateLimiter,
	validator *validation.Validator,
	registry regports.Store,
	auditLog AuditLog,
	ca CertificateAuthority,
	executor DeploymentExecutor,
	baseDomain string,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		limiter:     limiter,
		validator:   validator,
		registry:    registry,
		auditLog:    auditLog,
		ca:          ca,
		executor:    executor,
		logger:      slog.Default(),
		tracer:      otel.Tracer("subguard/provisioning"),
		baseDomain:  baseDomain,
		recentLimit: DefaultRecentLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provision runs one request through the pipeline. Expected rejections (rate
// limit, validation, collision, deploy failure) come back inside the result
// with Success=false; a non-nil error always means an internal fault.
func (s *Service) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Provision",
		trace.WithAttributes(attribute.String("subdomain.name", req.Name)))
	defer span.End()

	started := time.Now()
	now := requestcontext.Now(ctx)

	if req.Client.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "provisioning request requires a client identity")
	}
	if req.ProjectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "provisioning request requires a project id")
	}

	// Rate gate. The limiter appends its own violation event.
	rate, err := s.limiter.Allow(ctx, req.Client)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "rate limit check failed", err)
	}
	if !rate.Allowed {
		s.metrics.RecordProvision("rate_limited", time.Since(started))
		return &ProvisionResult{
			Subdomain:      req.Name,
			Error:          "rate limit exceeded, please try again later",
			SecurityLevel:  id.LevelCritical,
			ThreatDetected: true,
			RetryAfter:     rate.RetryAfter,
			RejectionCode:  dErrors.CodeRateLimited,
			Decision:       rejectedDecision("rate limit exceeded", id.LevelCritical, true),
			State:          StateRejected,
		}, nil
	}

	// Validation gate.
	verdict := s.validator.Validate(req.Name)
	if !verdict.Valid {
		if err := s.appendValidationRejection(ctx, req, verdict); err != nil {
			return nil, s.internalFault(ctx, span, req, "record validation rejection", err)
		}
		outcome := "validation_failed"
		if verdict.ThreatDetected() {
			outcome = "threat_detected"
		}
		s.metrics.RecordProvision(outcome, time.Since(started))
		code := dErrors.CodeValidation
		if verdict.ThreatDetected() {
			code = dErrors.CodeThreatDetected
		}
		return &ProvisionResult{
			Subdomain:      req.Name,
			Error:          verdict.Err,
			SecurityLevel:  verdict.Severity,
			ThreatDetected: verdict.ThreatDetected(),
			RejectionCode:  code,
			Decision:       rejectedDecision(verdict.Err, verdict.Severity, verdict.ThreatDetected()),
			State:          StateRejected,
		}, nil
	}

	name, err := id.ParseSubdomainName(req.Name)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "parse validated name", err)
	}

	// Collision pre-check. Advisory only: the authoritative answer is the
	// atomic insert below.
	exists, err := s.registry.Exists(ctx, name)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "registry lookup failed", err)
	}
	if exists {
		return s.rejectCollision(ctx, span, req, started)
	}

	// Scoring.
	score := scoring.Score(req.Name)
	recommendations := scoring.Recommendations(score)
	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventSubdomainValidation,
		Description: fmt.Sprintf("subdomain validation passed: %s", name),
		Severity:    id.LevelLow,
		Client:      req.Client,
		Subdomain:   name.String(),
		Metadata:    audit.Metadata{"security_score": fmt.Sprintf("%d", score)},
	}); err != nil {
		return nil, s.internalFault(ctx, span, req, "record validation outcome", err)
	}

	// Configuration: isolation sandbox, SSL intent, fixed header set.
	isolation, token, err := buildIsolation(req.ProjectID)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "build isolation environment", err)
	}
	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventEnvironmentCreation,
		Description: fmt.Sprintf("isolated environment created for project %s", req.ProjectID),
		Severity:    id.LevelLow,
		Client:      req.Client,
		Subdomain:   name.String(),
		Metadata: audit.Metadata{
			"isolated_path":     isolation.Path,
			"token_fingerprint": isolation.TokenFingerprint,
			"max_memory":        isolation.ResourceLimits.MaxMemory,
			"max_cpu":           isolation.ResourceLimits.MaxCPU,
		},
	}); err != nil {
		return nil, s.internalFault(ctx, span, req, "record environment creation", err)
	}

	sslVerification, err := s.ca.VerifySSL(ctx, s.baseDomain)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "ssl verification failed", err)
	}
	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventSSLVerification,
		Description: fmt.Sprintf("ssl verification for domain %s", s.baseDomain),
		Severity:    id.LevelForScore(sslVerification.Score),
		Client:      req.Client,
		Subdomain:   name.String(),
		Metadata: audit.Metadata{
			"ssl_score":  fmt.Sprintf("%d", sslVerification.Score),
			"ssl_secure": fmt.Sprintf("%t", sslVerification.Secure),
		},
	}); err != nil {
		return nil, s.internalFault(ctx, span, req, "record ssl verification", err)
	}

	sslConfig := synthesizeSSLConfig(name, s.baseDomain)
	headers := securityHeaders()

	// Registration. Insert is the atomic authority on uniqueness; a race
	// lost here is the same collision rejection as the pre-check.
	record, err := regmodels.NewDeploymentRecord(
		name, req.ProjectID, now, score, sslVerification.Secure, headers, isolation)
	if err != nil {
		return nil, s.internalFault(ctx, span, req, "build deployment record", err)
	}
	if err := s.registry.Insert(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return s.rejectCollision(ctx, span, req, started)
		}
		return nil, s.internalFault(ctx, span, req, "registry insert failed", err)
	}

	// Deployment. A failed rollout revokes the fresh registration so the
	// name does not stay claimed by a dead environment.
	deployment, err := s.executor.Deploy(ctx, name, deploy.Config{
		SSLProtocols:    sslConfig.SSLProtocols,
		CipherSuite:     sslConfig.CipherSuite,
		HSTS:            headers["Strict-Transport-Security"],
		SecurityHeaders: headers,
		Isolation:       isolation,
	})
	if err != nil {
		s.revokeAfterFailedDeploy(ctx, name)
		return nil, s.internalFault(ctx, span, req, "deployment executor failed", err)
	}
	if !deployment.Success {
		s.revokeAfterFailedDeploy(ctx, name)
		if err := s.auditLog.Append(ctx, audit.Event{
			Type:        audit.EventDeployFailed,
			Description: fmt.Sprintf("deployment failed for %s", name),
			Severity:    id.LevelHigh,
			Client:      req.Client,
			Subdomain:   name.String(),
			Metadata:    audit.Metadata{"issues": fmt.Sprintf("%v", deployment.Issues)},
		}); err != nil {
			return nil, s.internalFault(ctx, span, req, "record deploy failure", err)
		}
		s.metrics.RecordProvision("deploy_failed", time.Since(started))
		return &ProvisionResult{
			Subdomain:      name.String(),
			Error:          "deployment failed",
			SecurityLevel:  id.LevelHigh,
			RejectionCode:  dErrors.CodeInternal,
			DeploymentInfo: deployment,
			Decision:       rejectedDecision("deployment failed", id.LevelHigh, false),
			State:          StateRejected,
		}, nil
	}

	// Completion.
	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventSecureDeployment,
		Description: fmt.Sprintf("secure deployment completed: %s", name),
		Severity:    id.LevelLow,
		Client:      req.Client,
		Subdomain:   name.String(),
		Metadata: audit.Metadata{
			"project_id":     req.ProjectID.String(),
			"security_score": fmt.Sprintf("%d", score),
			"ssl_configured": fmt.Sprintf("%t", sslVerification.Secure),
		},
	}); err != nil {
		return nil, s.internalFault(ctx, span, req, "record deployment completion", err)
	}

	s.metrics.RecordProvision("completed", time.Since(started))
	s.logger.InfoContext(ctx, "subdomain provisioned",
		"subdomain", name.String(),
		"project_id", req.ProjectID.String(),
		"security_score", score,
	)

	return &ProvisionResult{
		Success:         true,
		Subdomain:       name.String(),
		FullURL:         s.fullURL(name),
		SecurityScore:   score,
		SSLConfigured:   sslVerification.Secure,
		SecurityHeaders: headers,
		Recommendations: recommendations,
		SecurityLevel:   id.LevelForScore(score),
		IsolationToken:  token,
		DeploymentInfo:  deployment,
		Decision:        acceptedDecision(score, recommendations),
		State:           StateCompleted,
	}, nil
}

// appendValidationRejection records the single audit event a validation
// rejection produces. Syntax failures without a dedicated event type are
// recorded as plain validation events.
func (s *Service) appendValidationRejection(ctx context.Context, req ProvisionRequest, verdict validation.Result) error {
	eventType := verdict.EventType
	description := fmt.Sprintf("subdomain validation rejected: %s", verdict.Err)
	if eventType == "" {
		eventType = audit.EventSubdomainValidation
	} else if verdict.Match != "" {
		description = fmt.Sprintf("%s: %q", verdict.Err, verdict.Match)
	}
	return s.auditLog.Append(ctx, audit.Event{
		Type:        eventType,
		Description: description,
		Severity:    verdict.Severity,
		Client:      req.Client,
		Subdomain:   req.Name,
		ThreatType:  verdict.ThreatType,
	})
}

func (s *Service) rejectCollision(ctx context.Context, span trace.Span, req ProvisionRequest, started time.Time) (*ProvisionResult, error) {
	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventSubdomainValidation,
		Description: fmt.Sprintf("subdomain name already registered: %s", req.Name),
		Severity:    id.LevelMedium,
		Client:      req.Client,
		Subdomain:   req.Name,
	}); err != nil {
		return nil, s.internalFault(ctx, span, req, "record name collision", err)
	}
	s.metrics.RecordProvision("name_collision", time.Since(started))
	return &ProvisionResult{
		Subdomain:     req.Name,
		Error:         "subdomain name is already in use, choose a different name",
		SecurityLevel: id.LevelMedium,
		RejectionCode: dErrors.CodeNameCollision,
		Decision:      rejectedDecision("name collision", id.LevelMedium, false),
		State:         StateRejected,
	}, nil
}

// revokeAfterFailedDeploy removes the registration a failed rollout left
// behind. Failure to revoke is logged, not fatal: the deploy failure is
// already the headline.
func (s *Service) revokeAfterFailedDeploy(ctx context.Context, name id.SubdomainName) {
	if err := s.registry.Remove(ctx, name); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke registration after deploy failure",
			"subdomain", name.String(), "error", err)
	}
}

// internalFault wraps an unexpected failure and makes a best-effort attempt
// to leave a trace of it on the audit trail.
func (s *Service) internalFault(ctx context.Context, span trace.Span, req ProvisionRequest, msg string, err error) error {
	span.RecordError(err)
	s.logger.ErrorContext(ctx, msg, "subdomain", req.Name, "error", err)

	faultEvent := audit.Event{
		Type:        audit.EventInternalFault,
		Description: fmt.Sprintf("%s: %v", msg, err),
		Severity:    id.LevelCritical,
		Client:      req.Client,
		Subdomain:   req.Name,
	}
	if auditErr := s.auditLog.Append(ctx, faultEvent); auditErr != nil {
		s.logger.ErrorContext(ctx, "failed to record internal fault", "error", auditErr)
	}

	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) fullURL(name id.SubdomainName) string {
	return fmt.Sprintf("https://%s.%s", name, s.baseDomain)
}

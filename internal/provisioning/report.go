package provisioning

import (
	"context"
	"errors"
	"fmt"

	"subguard/internal/audit"
	"subguard/internal/certauth"
	"subguard/internal/registry/secrets"
	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/sentinel"
)

// Revoke removes an active subdomain. The caller must present the isolation
// token issued at provisioning time. Revocation is destructive: the record is
// deleted, not archived, and the audit trail is the only remaining trace.
func (s *Service) Revoke(ctx context.Context, rawName, token string, client id.ClientIdentity) (*RevokeResult, error) {
	name, err := id.ParseSubdomainName(rawName)
	if err != nil {
		return nil, err
	}

	record, err := s.registry.Get(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "subdomain not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load subdomain")
	}
	if !secrets.Verify(record.Isolation.TokenHash, token) {
		s.logger.WarnContext(ctx, "revocation rejected: isolation token mismatch",
			"subdomain", name.String())
		return nil, dErrors.New(dErrors.CodeUnauthorized, "isolation token does not match")
	}

	if err := s.registry.Remove(ctx, name); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "subdomain not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "revoke subdomain")
	}

	if err := s.auditLog.Append(ctx, audit.Event{
		Type:        audit.EventSubdomainRevocation,
		Description: fmt.Sprintf("subdomain revoked: %s", name),
		Severity:    id.LevelMedium,
		Client:      client,
		Subdomain:   name.String(),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "record revocation")
	}

	s.metrics.RecordRevocation()
	s.logger.InfoContext(ctx, "subdomain revoked", "subdomain", name.String())

	return &RevokeResult{
		Success:   true,
		Message:   fmt.Sprintf("subdomain %s revoked successfully", name),
		Subdomain: name.String(),
	}, nil
}

// Status reports one active subdomain with a fresh advisory SSL check.
func (s *Service) Status(ctx context.Context, rawName string) (*StatusResult, error) {
	name, err := id.ParseSubdomainName(rawName)
	if err != nil {
		return nil, err
	}

	record, err := s.registry.Get(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &StatusResult{Exists: false}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load subdomain")
	}

	sslStatus, err := s.ca.VerifySSL(ctx, s.baseDomain)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "ssl verification failed")
	}

	return &StatusResult{
		Exists:          true,
		Subdomain:       record.Subdomain.String(),
		FullURL:         s.fullURL(record.Subdomain),
		CreatedAt:       record.CreatedAt,
		SecurityScore:   record.SecurityScore,
		SecurityHeaders: record.SecurityHeaders,
		SSLStatus:       sslStatus,
	}, nil
}

// Report summarizes the active fleet. Alerts flag every record scoring under
// 60 and any expiry warning from the certificate authority.
func (s *Service) Report(ctx context.Context) (*SecurityReport, error) {
	records, err := s.registry.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load registry records")
	}

	report := &SecurityReport{
		TotalSubdomains:   len(records),
		RecentDeployments: []string{},
		ActiveAlerts:      []Alert{},
	}

	totalScore := 0
	for _, record := range records {
		totalScore += record.SecurityScore
		if record.SSLConfigured {
			report.SSLConfiguredCount++
		}
		if record.SecurityScore < 60 {
			report.ActiveAlerts = append(report.ActiveAlerts, Alert{
				Type:      "low_security_score",
				Severity:  id.LevelMedium,
				Message:   fmt.Sprintf("subdomain %s has a low security score (%d)", record.Subdomain, record.SecurityScore),
				Subdomain: record.Subdomain.String(),
			})
		}
	}
	if len(records) > 0 {
		report.AverageSecurityScore = float64(totalScore) / float64(len(records))
	}

	// Last five registrations, oldest first.
	start := len(records) - 5
	if start < 0 {
		start = 0
	}
	for _, record := range records[start:] {
		report.RecentDeployments = append(report.RecentDeployments, record.Subdomain.String())
	}

	sslStatus, err := s.ca.VerifySSL(ctx, s.baseDomain)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "ssl verification failed")
	}
	if sslStatus.CertificateInfo.DaysUntilExpiry < certauth.ExpiryWarningDays {
		report.ActiveAlerts = append(report.ActiveAlerts, Alert{
			Type:     "ssl_expiration",
			Severity: id.LevelHigh,
			Message:  "SSL certificate expires soon",
		})
	}

	return report, nil
}

// RecentEvents exposes the tail of the audit trail for the admin surface.
func (s *Service) RecentEvents(ctx context.Context) ([]audit.Event, error) {
	return s.auditLog.Recent(ctx, s.recentLimit)
}

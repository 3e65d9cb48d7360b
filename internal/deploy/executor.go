// Package deploy is the deployment executor collaborator. It carries out the
// mechanical rollout of an already-admitted subdomain; all admission
// decisions happen upstream.
package deploy

import (
	"context"
	"fmt"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
)

// Config is everything the executor needs to roll out one subdomain.
type Config struct {
	SSLProtocols    []string
	CipherSuite     string
	HSTS            string
	SecurityHeaders map[string]string
	Isolation       models.Isolation
}

// Result reports what the rollout did. Steps lists completed phases in
// execution order; Issues is non-empty only when Success is false.
type Result struct {
	Success     bool              `json:"success"`
	Steps       []string          `json:"steps"`
	Issues      []string          `json:"issues,omitempty"`
	ScanResults map[string]string `json:"scan_results,omitempty"`
}

// Executor performs the rollout. This implementation simulates the external
// infrastructure calls; the step and scan shapes match what a real executor
// would report.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

var rolloutSteps = []string{
	"Validating security configuration",
	"Creating isolated environment",
	"Configuring SSL certificate",
	"Setting up security headers",
	"Deploying application",
	"Running security scans",
	"Activating subdomain",
}

// Deploy rolls out the subdomain with the given configuration and runs the
// post-deploy security scan.
func (e *Executor) Deploy(ctx context.Context, name id.SubdomainName, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cfg.SecurityHeaders) == 0 {
		return &Result{
			Success: false,
			Issues:  []string{"security headers missing from deployment config"},
		}, nil
	}

	scan := securityScan(name)
	var issues []string
	for check, result := range scan {
		if result != "passed" && result != "configured" {
			issues = append(issues, fmt.Sprintf("%s: %s", check, result))
		}
	}
	if len(issues) > 0 {
		return &Result{Success: false, Issues: issues, ScanResults: scan}, nil
	}

	return &Result{
		Success:     true,
		Steps:       rolloutSteps,
		ScanResults: scan,
	}, nil
}

// securityScan returns simulated post-deploy scan outcomes.
func securityScan(_ id.SubdomainName) map[string]string {
	return map[string]string{
		"vulnerability_scan": "passed",
		"ssl_verification":   "passed",
		"header_security":    "passed",
		"content_security":   "passed",
		"rate_limiting":      "configured",
		"isolation_check":    "passed",
	}
}

package provisioning

import (
	"fmt"

	"subguard/internal/registry/models"
	"subguard/internal/registry/secrets"
	id "subguard/pkg/domain"
)

// SSLConfig is the fixed TLS intent synthesized for every subdomain. Nothing
// here is negotiated per request; the wildcard certificate covers all names.
type SSLConfig struct {
	CertificateDomain string   `json:"certificate_domain"`
	Subdomain         string   `json:"subdomain"`
	FullDomain        string   `json:"full_domain"`
	SSLProtocols      []string `json:"ssl_protocols"`
	CipherSuite       string   `json:"cipher_suite"`
	HSTSEnabled       bool     `json:"hsts_enabled"`
	HSTSMaxAge        int      `json:"hsts_max_age"`
	IncludeSubdomains bool     `json:"include_subdomains"`
}

func synthesizeSSLConfig(name id.SubdomainName, baseDomain string) SSLConfig {
	return SSLConfig{
		CertificateDomain: "*." + baseDomain,
		Subdomain:         name.String(),
		FullDomain:        fmt.Sprintf("%s.%s", name, baseDomain),
		SSLProtocols:      []string{"TLSv1.2", "TLSv1.3"},
		CipherSuite:       "ECDHE-RSA-AES256-GCM-SHA384",
		HSTSEnabled:       true,
		HSTSMaxAge:        31536000,
		IncludeSubdomains: true,
	}
}

// securityHeaders returns the fixed header set applied to every deployment.
func securityHeaders() map[string]string {
	return map[string]string{
		"X-Frame-Options":                   "DENY",
		"X-Content-Type-Options":            "nosniff",
		"X-XSS-Protection":                  "1; mode=block",
		"Referrer-Policy":                   "strict-origin-when-cross-origin",
		"Content-Security-Policy":           "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:;",
		"Strict-Transport-Security":         "max-age=31536000; includeSubDomains; preload",
		"Permissions-Policy":                "geolocation=(), microphone=(), camera=()",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-Download-Options":                "noopen",
		"X-DNS-Prefetch-Control":            "off",
	}
}

// buildIsolation provisions the sandbox for a project. The returned token is
// shown to the caller once; the registry keeps its fingerprint and hash.
func buildIsolation(projectID id.ProjectID) (models.Isolation, string, error) {
	token, err := secrets.GenerateToken()
	if err != nil {
		return models.Isolation{}, "", err
	}
	hash, err := secrets.Hash(token)
	if err != nil {
		return models.Isolation{}, "", err
	}
	return models.Isolation{
		Path:             fmt.Sprintf("/deployments/%s/isolated/%s", projectID, projectID),
		TokenFingerprint: secrets.Fingerprint(token),
		TokenHash:        hash,
		ResourceLimits:   models.DefaultResourceLimits(),
	}, token, nil
}

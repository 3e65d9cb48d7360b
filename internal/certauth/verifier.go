// Package certauth is the certificate authority collaborator. The pipeline
// treats its answers as advisory input to the SSL configuration stage; it
// never blocks provisioning on its own.
package certauth

import (
	"context"
	"fmt"
)

// CertificateInfo describes the wildcard certificate covering a base domain.
type CertificateInfo struct {
	Valid           bool     `json:"valid"`
	DaysUntilExpiry int      `json:"days_until_expiry"`
	CipherStrength  int      `json:"cipher_strength"`
	SANValid        bool     `json:"san_valid"`
	WeakProtocols   []string `json:"weak_protocols"`
	Issuer          string   `json:"issuer"`
	Subject         string   `json:"subject"`
}

// SSLVerification is the advisory result handed to the pipeline.
type SSLVerification struct {
	Secure          bool            `json:"secure"`
	Score           int             `json:"score"`
	CertificateInfo CertificateInfo `json:"certificate_info"`
	Checks          map[string]bool `json:"checks"`
	Recommendations []string        `json:"recommendations"`
}

// ExpiryWarningDays is the renewal window. Certificates expiring within it
// raise an active alert on the security report.
const ExpiryWarningDays = 30

// Verifier answers SSL questions about the wildcard certificate. This
// implementation is simulated; it returns fixed facts in the shape a real
// authority integration would.
type Verifier struct{}

// NewVerifier creates a Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifySSL checks the wildcard certificate for a base domain. Five checks
// each contribute 20 points; secure means a score of at least 80.
func (v *Verifier) VerifySSL(_ context.Context, domain string) (*SSLVerification, error) {
	info := v.certificateInfo(domain)

	checks := map[string]bool{
		"certificate_valid": info.Valid,
		"not_expiring_soon": info.DaysUntilExpiry >= ExpiryWarningDays,
		"strong_cipher":     info.CipherStrength >= 128,
		"proper_san":        info.SANValid,
		"no_weak_protocols": len(info.WeakProtocols) == 0,
	}

	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	score := passed * 100 / len(checks)

	return &SSLVerification{
		Secure:          score >= 80,
		Score:           score,
		CertificateInfo: info,
		Checks:          checks,
		Recommendations: recommendations(checks),
	}, nil
}

// certificateInfo returns simulated certificate facts.
func (v *Verifier) certificateInfo(domain string) CertificateInfo {
	return CertificateInfo{
		Valid:           true,
		DaysUntilExpiry: 45,
		CipherStrength:  256,
		SANValid:        true,
		WeakProtocols:   nil,
		Issuer:          "Let's Encrypt",
		Subject:         fmt.Sprintf("*.%s", domain),
	}
}

func recommendations(checks map[string]bool) []string {
	var recs []string
	if !checks["certificate_valid"] {
		recs = append(recs, "SSL certificate is invalid or expired")
	}
	if !checks["not_expiring_soon"] {
		recs = append(recs, "SSL certificate expires soon - renewal needed")
	}
	if !checks["strong_cipher"] {
		recs = append(recs, "Weak cipher suite detected")
	}
	if !checks["proper_san"] {
		recs = append(recs, "Subject Alternative Name validation failed")
	}
	if !checks["no_weak_protocols"] {
		recs = append(recs, "Weak SSL/TLS protocols detected")
	}
	return recs
}

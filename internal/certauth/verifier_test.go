package certauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySSL(t *testing.T) {
	verification, err := NewVerifier().VerifySSL(context.Background(), "webai.studio")
	require.NoError(t, err)

	assert.True(t, verification.Secure)
	assert.Equal(t, 100, verification.Score)
	assert.Empty(t, verification.Recommendations)
	assert.Equal(t, "*.webai.studio", verification.CertificateInfo.Subject)
	assert.Len(t, verification.Checks, 5)
	for name, passed := range verification.Checks {
		assert.True(t, passed, name)
	}
}

func TestRecommendationsForFailedChecks(t *testing.T) {
	recs := recommendations(map[string]bool{
		"certificate_valid": true,
		"not_expiring_soon": false,
		"strong_cipher":     true,
		"proper_san":        true,
		"no_weak_protocols": false,
	})
	assert.Equal(t, []string{
		"SSL certificate expires soon - renewal needed",
		"Weak SSL/TLS protocols detected",
	}, recs)
}

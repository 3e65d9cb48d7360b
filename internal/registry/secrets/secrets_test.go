package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	first, err := GenerateToken()
	require.NoError(t, err)
	second, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("token"), Fingerprint("token"))
	assert.NotEqual(t, Fingerprint("token"), Fingerprint("other"))
	assert.Len(t, Fingerprint("token"), 16)
}

func TestHashAndVerify(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	hash, err := Hash(token)
	require.NoError(t, err)

	assert.True(t, Verify(hash, token))
	assert.False(t, Verify(hash, token+"x"))
}

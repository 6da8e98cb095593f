package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShareID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateShareID()
		assert.Len(t, id, 10)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(shareAlphabet, r))
		}
		assert.False(t, seen[id], "share id collision: %s", id)
		seen[id] = true
	}
}

func TestGenerateResetToken(t *testing.T) {
	token := GenerateResetToken()
	assert.Len(t, token, 64) // 32 bytes hex-encoded
	assert.NotEqual(t, token, GenerateResetToken())
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("shared-secret", "shared-secret"))
	assert.False(t, SecureCompare("shared-secret", "shared-secres"))
	assert.False(t, SecureCompare("shared-secret", "short"))
	assert.True(t, SecureCompare("", ""))
}

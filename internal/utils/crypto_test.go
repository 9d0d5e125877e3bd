// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	number, err := GenerateOrderNumber()
	require.NoError(t, err)

	matched := regexp.MustCompile(`^ORD-\d{14}-[0-9ABCDEFGHJKMNPQRSTVWXYZ]{8}$`).MatchString(number)
	assert.True(t, matched, "unexpected order number format: %s", number)
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number, err := GenerateOrderNumber()
		require.NoError(t, err)
		assert.False(t, seen[number], "duplicate order number: %s", number)
		seen[number] = true
	}
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	other, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

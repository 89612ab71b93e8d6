package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	b := NewWithCost(4)

	hash, err := b.HashPassword("changethis")
	require.NoError(t, err)
	assert.NotEqual(t, "changethis", hash)

	assert.NoError(t, b.ComparePassword(hash, "changethis"))
	assert.Error(t, b.ComparePassword(hash, "wrong-password"))

	assert.True(t, b.VerifyPassword(hash, "changethis"))
	assert.False(t, b.VerifyPassword(hash, "wrong-password"))
	assert.False(t, b.VerifyPassword("not-a-hash", "changethis"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("Secr3t!pass")
	require.NoError(t, err)

	assert.NotEqual(t, "Secr3t!pass", hashed)
	assert.True(t, CheckPassword(hashed, "Secr3t!pass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

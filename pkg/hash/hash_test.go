package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	Cost = bcrypt.MinCost

	h, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", h)

	assert.True(t, CheckPassword(h, "Secret123"))
	assert.False(t, CheckPassword(h, "secret123"))
	assert.False(t, CheckPassword("not-a-hash", "Secret123"))
}

func TestHashPassword_TooLong(t *testing.T) {
	Cost = bcrypt.MinCost

	_, err := HashPassword(string(make([]byte, MaxPasswordBytes+1)))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)

	_, err = HashPassword(string(make([]byte, MaxPasswordBytes)))
	assert.NoError(t, err)
}

package auth

import (
	"testing"

	"quizdeck/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, hasher.Check("secret123", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_DefaultCostWhenUnconfigured(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.True(t, hasher.Check("secret123", hash))
}

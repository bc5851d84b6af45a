package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSONOmitsCredentials(t *testing.T) {
	user := &User{
		ID:               uuid.New(),
		Email:            "alice@example.com",
		FullName:         "Alice Example",
		PasswordHash:     "bcrypt-hash",
		RefreshTokenHash: "sha256-hash",
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.NotContains(t, fields, "PasswordHash")
	assert.NotContains(t, fields, "RefreshTokenHash")
	assert.NotContains(t, fields, "passwordHash")
	assert.NotContains(t, fields, "refreshTokenHash")
	assert.Equal(t, "alice@example.com", fields["email"])
	assert.Equal(t, "Alice Example", fields["fullName"])
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "createdAt")
}

func TestUser_Sanitized(t *testing.T) {
	user := &User{
		ID:               uuid.New(),
		Email:            "alice@example.com",
		PasswordHash:     "bcrypt-hash",
		RefreshTokenHash: "sha256-hash",
	}

	clean := user.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.Empty(t, clean.RefreshTokenHash)
	assert.Equal(t, user.ID, clean.ID)
	assert.Equal(t, "bcrypt-hash", user.PasswordHash)
}

package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpras/golfku/pkg/utils"
)

func legacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func TestParsePasswordHashKinds(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   HashKind
	}{
		{"bcrypt 2a", "$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", HashStrong},
		{"bcrypt 2b", "$2b$12$abcdefghijklmnopqrstuv", HashStrong},
		{"bcrypt 2y", "$2y$10$abcdefghijklmnopqrstuv", HashStrong},
		{"bare hex digest", legacyDigest("fairway88"), HashLegacy},
		{"prefixed digest", "sha256:" + legacyDigest("fairway88"), HashLegacy},
		{"plaintext-looking", "not-a-hash", HashUnknown},
		{"short hex", "deadbeef", HashUnknown},
		{"empty", "", HashUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePasswordHash(tt.stored).Kind())
		})
	}
}

func TestVerifyStrongHash(t *testing.T) {
	hashed, err := utils.HashPassword("fairway88")
	require.NoError(t, err)

	ok, upgraded, err := ParsePasswordHash(hashed).VerifyAndMaybeUpgrade("fairway88")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, upgraded, "strong hashes should not be rewritten")

	ok, _, err = ParsePasswordHash(hashed).VerifyAndMaybeUpgrade("wrongpass1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyLegacyHashUpgrades(t *testing.T) {
	stored := legacyDigest("oldpass123")

	ok, upgraded, err := ParsePasswordHash(stored).VerifyAndMaybeUpgrade("oldpass123")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotEmpty(t, upgraded, "legacy match should produce a replacement hash")
	assert.Equal(t, HashStrong, ParsePasswordHash(upgraded).Kind())
	assert.True(t, utils.CheckPassword(upgraded, "oldpass123"))

	ok, upgraded, err = ParsePasswordHash(stored).VerifyAndMaybeUpgrade("wrongpass1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, upgraded)
}

func TestVerifyPrefixedLegacyHash(t *testing.T) {
	stored := "sha256:" + legacyDigest("oldpass123")

	ok, upgraded, err := ParsePasswordHash(stored).VerifyAndMaybeUpgrade("oldpass123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, upgraded)
}

func TestVerifyUnknownHashRejects(t *testing.T) {
	ok, upgraded, err := ParsePasswordHash("plaintext").VerifyAndMaybeUpgrade("plaintext")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, upgraded)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"valid", "fairway88", ""},
		{"too short", "abc1", "Password must be at least 8 characters long"},
		{"no letter", "12345678", "Password must contain at least one letter"},
		{"no digit", "fairways", "Password must contain at least one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validatePassword(tt.password))
		})
	}
}

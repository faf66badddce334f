package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/wpras/golfku/pkg/utils"
)

// HashKind discriminates the stored password hash scheme.
type HashKind int

const (
	HashUnknown HashKind = iota
	HashStrong           // bcrypt
	HashLegacy           // hex SHA-256, accounts predating the bcrypt migration
)

// PasswordHash is a stored credential tagged with its scheme.
type PasswordHash struct {
	kind  HashKind
	value string
}

// ParsePasswordHash classifies a stored hash string. Legacy hashes are
// either bare 64-char hex digests or prefixed with "sha256:".
func ParsePasswordHash(stored string) PasswordHash {
	switch {
	case strings.HasPrefix(stored, "$2a$"),
		strings.HasPrefix(stored, "$2b$"),
		strings.HasPrefix(stored, "$2y$"):
		return PasswordHash{kind: HashStrong, value: stored}
	case strings.HasPrefix(stored, "sha256:"):
		return PasswordHash{kind: HashLegacy, value: strings.TrimPrefix(stored, "sha256:")}
	case isHexDigest(stored):
		return PasswordHash{kind: HashLegacy, value: stored}
	}
	return PasswordHash{kind: HashUnknown, value: stored}
}

func isHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (h PasswordHash) Kind() HashKind { return h.kind }

// VerifyAndMaybeUpgrade checks the password against the stored hash.
// When a legacy hash matches, it also returns a replacement bcrypt hash
// so the caller can rewrite the stored credential.
func (h PasswordHash) VerifyAndMaybeUpgrade(password string) (bool, string, error) {
	switch h.kind {
	case HashStrong:
		return utils.CheckPassword(h.value, password), "", nil
	case HashLegacy:
		sum := sha256.Sum256([]byte(password))
		digest := hex.EncodeToString(sum[:])
		if subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(h.value))) != 1 {
			return false, "", nil
		}
		upgraded, err := utils.HashPassword(password)
		if err != nil {
			return true, "", err
		}
		return true, upgraded, nil
	}
	return false, "", nil
}

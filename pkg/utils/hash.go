package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 14

// dummyHash is a throwaway bcrypt digest compared against when a login
// targets an unknown email, so the request costs the same either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), bcryptCost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}

// DummyCompare burns a bcrypt comparison without revealing anything.
func DummyCompare(pass string) {
	bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(pass))
}

package auth

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// UnusableHash is a default-cost bcrypt hash of a random secret, compared against
// when no account matches so both login failures take the same time.
var UnusableHash = sync.OnceValue(func() string {
	h, err := HashPassword(uuid.NewString())
	if err != nil {
		panic(err)
	}
	return h
})

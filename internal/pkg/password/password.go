package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength and MaxLength bound accepted passwords (in characters)
	MinLength = 8
	MaxLength = 50
)

// Cost is the bcrypt cost used by Hash. Tests lower it to bcrypt.MinCost.
var Cost = DefaultCost

// dummyHash is compared against when no user matches a login so that an
// unknown email costs the same bcrypt work as a wrong password.
var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// Hash hashes a password using bcrypt. Every call draws a fresh random
// salt which is stored inside the returned hash.
func Hash(password string) (string, error) {
	return HashWithCost(password, Cost)
}

// HashWithCost is Hash with an explicit cost (used by tests and the seeder)
func HashWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyDummy burns one bcrypt comparison and always reports false
func VerifyDummy(password string) bool {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}

// ValidatePassword checks if password meets length requirements.
// bcrypt only reads the first 72 bytes, so longer inputs are refused too.
func ValidatePassword(password string) bool {
	n := len([]rune(password))
	if n < MinLength || n > MaxLength {
		return false
	}
	return len(password) <= 72
}

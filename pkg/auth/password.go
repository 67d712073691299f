package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances login latency against offline brute-force resistance.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. bcrypt's
// comparison does not short-circuit on the plaintext.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

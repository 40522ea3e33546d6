package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used for stored passwords.
const PasswordCost = 10

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

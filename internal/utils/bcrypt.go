package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the password with a per-hash random salt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash verifies password against a stored bcrypt hash by
// re-hashing with the stored salt parameters, never by decrypting.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package service

import (
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password with bcrypt after appending the
// server-side pepper.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password+pepper), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// checkPasswordHash verifies a password against a stored bcrypt hash using
// the same pepper the hash was created with.
func checkPasswordHash(password, pepper, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+pepper)) == nil
}

package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash (cost 10). The salt is
// generated per call and embedded in the output.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

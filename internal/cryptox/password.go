package cryptox

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is the bcrypt cost factor used unless configured
// otherwise. Cost 12 puts a single verification in the 100–300ms range on
// commodity hardware.
const DefaultHashCost = 12

// HashPassword hashes a password with bcrypt at the given cost. A fresh
// random salt is generated per call; salt and cost are embedded in the
// returned encoding.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a candidate password against a bcrypt hash.
// It returns false on mismatch and on any malformed hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package security

import "golang.org/x/crypto/bcrypt"

const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes a plain text password with bcrypt. A cost outside
// bcrypt's accepted range falls back to DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword re-hashes plain with the salt and cost stored in hash and
// compares the result.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

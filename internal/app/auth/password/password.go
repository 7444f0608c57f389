package password

import (
	"golang.org/x/crypto/bcrypt"

	customErrors "github.com/gomicroshop/auth-service/internal/domain/auth/errors"
)

// cost is fixed here; digests embed it, so changing it only affects new users.
const cost = 10

type Hasher struct{}

func NewHasher() Hasher { return Hasher{} }

func (Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return string(digest), nil
}

// Compare reports whether plain matches digest. A mismatch is not an error;
// only a malformed digest is.
func (Hasher) Compare(digest, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch err {
	case nil:
		return true, nil
	case bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, customErrors.WrapInternal(err, "compare password")
	}
}

package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/gomicroshop/auth-service/internal/domain/auth/errors"
	"github.com/gomicroshop/auth-service/internal/domain/auth/model"
)

// userClaims is the wire shape of a token: identity fields plus the
// registered temporal claims added at signing time.
type userClaims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with a single symmetric secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, customErrors.NewInvalidArgument("signing secret is empty")
	}
	if ttl <= 0 {
		return nil, customErrors.NewInvalidArgument("token ttl must be positive")
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

func (m *Manager) Sign(user model.PublicUser) (string, error) {
	now := time.Now()

	claims := userClaims{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign token")
	}
	return signed, nil
}

// Verify checks signature and expiry and hands back only the identity
// claims; sub/iat/exp/jti stay behind so a re-sign always mints fresh ones.
func (m *Manager) Verify(raw string) (model.PublicUser, error) {
	token, err := jwt.ParseWithClaims(raw, &userClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil {
		return model.PublicUser{}, customErrors.WrapInvalidToken(err)
	}
	if !token.Valid {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok {
		return model.PublicUser{}, customErrors.ErrInvalidToken
	}

	return model.PublicUser{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

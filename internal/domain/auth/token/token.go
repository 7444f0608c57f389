package token

import "github.com/gomicroshop/auth-service/internal/domain/auth/model"

// Manager signs identity claims into a time-bound token and verifies one back
// into claims. Registered temporal claims (iat, exp, jti) are the manager's
// own business; callers only see the identity fields.
type Manager interface {
	Sign(user model.PublicUser) (string, error)

	Verify(raw string) (model.PublicUser, error)
}

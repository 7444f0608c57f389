package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gomicroshop/auth-service/internal/adapters/transport/nats/dto"
	"github.com/gomicroshop/auth-service/internal/app/auth/password"
	customErrors "github.com/gomicroshop/auth-service/internal/domain/auth/errors"
	"github.com/gomicroshop/auth-service/internal/domain/auth/model"
	"github.com/gomicroshop/auth-service/internal/domain/auth/repo"
	"github.com/gomicroshop/auth-service/internal/domain/auth/token"
)

type authService struct {
	userRepo repo.UserRepo
	tokens   token.Manager
	hasher   password.Hasher
	v        *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.AuthResult, error)
	Login(context.Context, dto.LoginDTO) (model.AuthResult, error)
	VerifyToken(context.Context, dto.VerifyDTO) (model.AuthResult, error)
}

func New(
	ur repo.UserRepo,
	tm token.Manager,
	h password.Hasher,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokens: tm, hasher: h, v: v,
	}
}

func (a *authService) Register(ctx context.Context, dto dto.RegisterDTO) (model.AuthResult, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	_, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	case err == nil:
		return model.AuthResult{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := a.hasher.Hash(dto.Password)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.AuthResult{}, customErrors.ErrAlreadyExists
		}
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issueFor(user.Public())
}

func (a *authService) Login(ctx context.Context, dto dto.LoginDTO) (model.AuthResult, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, dto.Email)
	switch {
	// same error for unknown email and wrong password; callers must not be
	// able to probe which emails are registered
	case errors.Is(err, customErrors.ErrNotFound):
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Compare(user.PasswordHash, dto.Password)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	}

	return a.issueFor(user.Public())
}

// VerifyToken doubles as sliding renewal: every successful verify re-signs
// the identity claims with a fresh expiry. The raw string goes straight to
// the verifier; an empty or malformed token is a 401, not a 400.
func (a *authService) VerifyToken(ctx context.Context, dto dto.VerifyDTO) (model.AuthResult, error) {
	user, err := a.tokens.Verify(dto.Token)
	if err != nil {
		return model.AuthResult{}, err
	}

	return a.issueFor(user)
}

func (a *authService) issueFor(user model.PublicUser) (model.AuthResult, error) {
	signed, err := a.tokens.Sign(user)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "SignToken")
	}
	return model.AuthResult{User: user, Token: signed}, nil
}

package nats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/gomicroshop/auth-service/internal/adapters/transport/nats/dto"
	appsvc "github.com/gomicroshop/auth-service/internal/app/auth/service"
	customErrors "github.com/gomicroshop/auth-service/internal/domain/auth/errors"
	"github.com/gomicroshop/auth-service/internal/domain/auth/model"
)

// Subjects are the operation names callers address requests to.
const (
	SubjectRegister = "auth.register.user"
	SubjectLogin    = "auth.login.user"
	SubjectVerify   = "auth.verify.user"
)

// HandlerFunc turns a raw request payload into a raw reply payload. Every
// reply is JSON: either the operation result or a {status, message} rejection.
type HandlerFunc func(ctx context.Context, data []byte) []byte

type errorReply struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type Handler struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewHandler(svc appsvc.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes binds the three operation names to their handlers.
func (h *Handler) Routes() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		SubjectRegister: h.RegisterUser,
		SubjectLogin:    h.LoginUser,
		SubjectVerify:   h.VerifyUser,
	}
}

func (h *Handler) RegisterUser(ctx context.Context, data []byte) []byte {
	var body dto.RegisterDTO
	if err := decodeStrict(data, &body); err != nil {
		return h.fail(SubjectRegister, customErrors.NewInvalidArgument(err.Error()))
	}

	res, err := h.svc.Register(ctx, body)
	if err != nil {
		return h.fail(SubjectRegister, err)
	}
	return h.ok(SubjectRegister, res)
}

func (h *Handler) LoginUser(ctx context.Context, data []byte) []byte {
	var body dto.LoginDTO
	if err := decodeStrict(data, &body); err != nil {
		return h.fail(SubjectLogin, customErrors.NewInvalidArgument(err.Error()))
	}

	res, err := h.svc.Login(ctx, body)
	if err != nil {
		return h.fail(SubjectLogin, err)
	}
	return h.ok(SubjectLogin, res)
}

func (h *Handler) VerifyUser(ctx context.Context, data []byte) []byte {
	var body dto.VerifyDTO
	if err := decodeStrict(data, &body); err != nil {
		return h.fail(SubjectVerify, customErrors.NewInvalidArgument(err.Error()))
	}

	res, err := h.svc.VerifyToken(ctx, body)
	if err != nil {
		return h.fail(SubjectVerify, err)
	}
	return h.ok(SubjectVerify, res)
}

// decodeStrict rejects unknown fields and trailing data instead of silently
// dropping them.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after payload")
	}
	return nil
}

func (h *Handler) ok(subject string, res model.AuthResult) []byte {
	reply, err := json.Marshal(res)
	if err != nil {
		return h.fail(subject, customErrors.WrapInternal(err, "encode reply"))
	}
	h.log.Debug("request served", zap.String("subject", subject))
	return reply
}

func (h *Handler) fail(subject string, err error) []byte {
	status := mapStatus(err)
	h.log.Info("request rejected",
		zap.String("subject", subject),
		zap.Int("status", status),
		zap.Error(err),
	)

	reply, mErr := json.Marshal(errorReply{Status: status, Message: err.Error()})
	if mErr != nil {
		return []byte(`{"status":400,"message":"internal error"}`)
	}
	return reply
}

// mapStatus mirrors the statuses existing callers key on: 401 for token
// verification failures, 400 for everything else, internal faults included.
func mapStatus(err error) int {
	if customErrors.IsInvalidToken(err) {
		return 401
	}
	return 400
}

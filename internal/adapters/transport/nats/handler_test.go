package nats

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/gomicroshop/auth-service/internal/adapters/transport/nats/dto"
	authErrors "github.com/gomicroshop/auth-service/internal/domain/auth/errors"
	"github.com/gomicroshop/auth-service/internal/domain/auth/model"
)

/* ───────────────────────────── stub service ───────────────────────────── */

type stubSvc struct {
	registerErr error
	verifyErr   error
}

func okResult() model.AuthResult {
	return model.AuthResult{
		User:  model.PublicUser{ID: "u-1", Name: "Ana", Email: "a@x.com"},
		Token: "signed-token",
	}
}

func (s stubSvc) Register(context.Context, dto.RegisterDTO) (model.AuthResult, error) {
	if s.registerErr != nil {
		return model.AuthResult{}, s.registerErr
	}
	return okResult(), nil
}
func (s stubSvc) Login(context.Context, dto.LoginDTO) (model.AuthResult, error) {
	return okResult(), nil
}
func (s stubSvc) VerifyToken(context.Context, dto.VerifyDTO) (model.AuthResult, error) {
	if s.verifyErr != nil {
		return model.AuthResult{}, s.verifyErr
	}
	return okResult(), nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func decodeReply(t *testing.T, raw []byte) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("reply is not JSON: %v", err)
	}
	return m
}

func decodeError(t *testing.T, raw []byte) errorReply {
	t.Helper()
	var e errorReply
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("reply is not an error envelope: %v", err)
	}
	return e
}

/* ───────────────────────────── tests ───────────────────────────── */

func TestHandler_RegisterUser(t *testing.T) {
	h := NewHandler(stubSvc{}, zap.NewNop())

	reply := h.RegisterUser(context.Background(),
		[]byte(`{"name":"Ana","email":"a@x.com","password":"secret123"}`))

	m := decodeReply(t, reply)
	if _, ok := m["user"]; !ok {
		t.Fatalf("reply missing user: %s", reply)
	}
	if string(m["token"]) != `"signed-token"` {
		t.Fatalf("reply missing token: %s", reply)
	}
	// password digest must never appear on the wire
	if _, ok := m["password"]; ok {
		t.Fatal("reply leaks password field")
	}
}

func TestHandler_RejectsUnknownFields(t *testing.T) {
	h := NewHandler(stubSvc{}, zap.NewNop())

	reply := h.LoginUser(context.Background(),
		[]byte(`{"email":"a@x.com","password":"secret123","admin":true}`))

	e := decodeError(t, reply)
	if e.Status != 400 {
		t.Fatalf("want 400, got %d (%s)", e.Status, e.Message)
	}
}

func TestHandler_RejectsMalformedPayload(t *testing.T) {
	h := NewHandler(stubSvc{}, zap.NewNop())

	for _, raw := range []string{"", "not json", `{"email":1}`} {
		e := decodeError(t, h.LoginUser(context.Background(), []byte(raw)))
		if e.Status != 400 {
			t.Fatalf("payload %q: want 400, got %d", raw, e.Status)
		}
	}
}

func TestHandler_Register_AlreadyExists(t *testing.T) {
	h := NewHandler(stubSvc{registerErr: authErrors.ErrAlreadyExists}, zap.NewNop())

	reply := h.RegisterUser(context.Background(),
		[]byte(`{"name":"Ana","email":"a@x.com","password":"secret123"}`))

	e := decodeError(t, reply)
	if e.Status != 400 || e.Message != "user already exists" {
		t.Fatalf("unexpected rejection: %+v", e)
	}
}

func TestHandler_Verify_Unauthorized(t *testing.T) {
	h := NewHandler(stubSvc{
		verifyErr: authErrors.WrapInvalidToken(context.DeadlineExceeded),
	}, zap.NewNop())

	reply := h.VerifyUser(context.Background(), []byte(`{"token":"t"}`))

	e := decodeError(t, reply)
	if e.Status != 401 {
		t.Fatalf("want 401, got %d", e.Status)
	}
}

func TestMapStatus(t *testing.T) {
	if got := mapStatus(authErrors.ErrInvalidToken); got != 401 {
		t.Fatalf("invalid token should map to 401, got %d", got)
	}
	if got := mapStatus(authErrors.ErrInvalidCredentials); got != 400 {
		t.Fatalf("invalid credentials should map to 400, got %d", got)
	}
	// internal faults keep the baseline 400 mapping
	if got := mapStatus(authErrors.WrapInternal(context.DeadlineExceeded, "x")); got != 400 {
		t.Fatalf("internal errors should map to 400, got %d", got)
	}
}

func TestHandler_Routes(t *testing.T) {
	routes := NewHandler(stubSvc{}, zap.NewNop()).Routes()

	for _, subject := range []string{SubjectRegister, SubjectLogin, SubjectVerify} {
		if routes[subject] == nil {
			t.Fatalf("no route for %s", subject)
		}
	}
	if len(routes) != 3 {
		t.Fatalf("want exactly 3 routes, got %d", len(routes))
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/prono-scoreboard/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	token string
	err   error
	got   services.LoginInput
}

func (s *stubAuthService) Login(ctx context.Context, input services.LoginInput) (string, error) {
	s.got = input
	return s.token, s.err
}

func TestAuthHandler_Login(t *testing.T) {
	auth := &stubAuthService{token: "signed.jwt.token"}
	h := NewAuthHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"username":"admin","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body["token"])
	assert.Equal(t, services.LoginInput{Username: "admin", Password: "pw"}, auth.got)
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"empty body", ``, nil, http.StatusBadRequest},
		{"unknown field", `{"username":"admin","password":"pw","role":"admin"}`, nil, http.StatusBadRequest},
		{"missing password", `{"username":"admin"}`, nil, http.StatusBadRequest},
		{"bad credentials", `{"username":"admin","password":"nope"}`, services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"disabled", `{"username":"admin","password":"pw"}`, services.ErrAuthDisabled, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

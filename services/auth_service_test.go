package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService("admin", string(hash), "jwt-secret")

	tokenString, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, RoleAdmin, claims["role"])
	assert.Equal(t, "admin", claims["sub"])
	assert.InDelta(t, float64(time.Now().Add(adminTokenTTL).Unix()), claims["exp"], 5)
}

func TestAuthService_LoginRejected(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name    string
		svc     AuthService
		input   LoginInput
		wantErr error
	}{
		{"wrong password", NewAuthService("admin", string(hash), "k"), LoginInput{Username: "admin", Password: "nope"}, ErrAuthInvalidCredentials},
		{"wrong username", NewAuthService("admin", string(hash), "k"), LoginInput{Username: "root", Password: "s3cret"}, ErrAuthInvalidCredentials},
		{"no hash configured", NewAuthService("admin", "", "k"), LoginInput{Username: "admin", Password: "s3cret"}, ErrAuthDisabled},
		{"no secret configured", NewAuthService("admin", string(hash), ""), LoginInput{Username: "admin", Password: "s3cret"}, ErrAuthDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Login(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

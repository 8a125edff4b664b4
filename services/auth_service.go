package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/prono-scoreboard/utils"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrAuthDisabled           = errors.New("admin authentication is not configured")
)

const (
	RoleAdmin     = "admin"
	adminTokenTTL = 12 * time.Hour
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         []byte
	now               func() time.Time
}

// NewAuthService authenticates the single scoreboard administrator against a
// bcrypt hash. Login always fails when the hash or the secret is empty.
func NewAuthService(adminUsername, adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		now:               time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	if s.adminPasswordHash == "" || len(s.jwtSecret) == 0 {
		return "", ErrAuthDisabled
	}
	if input.Username != s.adminUsername || !utils.CheckPasswordHash(input.Password, s.adminPasswordHash) {
		return "", ErrAuthInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  input.Username,
		"role": RoleAdmin,
		"exp":  now.Add(adminTokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

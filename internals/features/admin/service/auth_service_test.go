package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fdp_backend/internals/configs"
)

func newAuth(t *testing.T, cfg configs.Auth) *AuthService {
	t.Helper()
	s := NewAuthService(cfg)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestLoginWithPlainPassword(t *testing.T) {
	s := newAuth(t, configs.Auth{JWTSecret: "k", AdminEmail: "admin@fdp.test", AdminPassword: "pw", TokenTTL: time.Hour})

	tok, err := s.Login("Admin@FDP.test", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !tok.ExpiresAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("expiresAt = %v", tok.ExpiresAt)
	}
	claims, err := s.ParseToken(tok.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "admin@fdp.test" || claims.Role != RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := s.Login("admin@fdp.test", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := s.Login("other@fdp.test", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong email: %v", err)
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := newAuth(t, configs.Auth{JWTSecret: "k", AdminEmail: "a@x.com", AdminPassword: "ignored", AdminHash: string(hash)})

	if _, err := s.Login("a@x.com", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := s.Login("a@x.com", "ignored"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("hash must win over plain password: %v", err)
	}
}

func TestLoginNotConfigured(t *testing.T) {
	s := newAuth(t, configs.Auth{AdminEmail: "a@x.com", AdminPassword: "pw"})
	if _, err := s.Login("a@x.com", "pw"); !errors.Is(err, ErrAuthNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	s := newAuth(t, configs.Auth{JWTSecret: "k", AdminEmail: "a@x.com", AdminPassword: "pw", TokenTTL: time.Minute})
	tok, err := s.Login("a@x.com", "pw")
	if err != nil {
		t.Fatal(err)
	}

	later := s.now().Add(2 * time.Minute)
	s.now = func() time.Time { return later }
	if _, err := s.ParseToken(tok.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired: %v", err)
	}

	other := newAuth(t, configs.Auth{JWTSecret: "different"})
	if _, err := other.ParseToken(tok.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("foreign secret: %v", err)
	}

	userTok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u", "role": "user", "exp": later.Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	_, err = s.ParseToken(userTok)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Errorf("non-admin role: %v", err)
	}
}

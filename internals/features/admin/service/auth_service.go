package service

import (
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fdp_backend/internals/configs"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	ErrAuthNotConfigured  = fiber.NewError(fiber.StatusServiceUnavailable, "Admin login is not configured")
	ErrTokenInvalid       = fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid token")
	ErrTokenExpired       = fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
)

type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Role        string    `json:"role"`
}

// Claims is the parsed view of an admin access token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// AuthService authenticates the single configured admin account.
type AuthService struct {
	cfg configs.Auth
	now func() time.Time
}

func NewAuthService(cfg configs.Auth) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// Login checks the credentials against ADMIN_PASSWORD_HASH (bcrypt) when set,
// otherwise against ADMIN_PASSWORD, and issues an HS256 token.
func (s *AuthService) Login(email, password string) (*Token, error) {
	if s.cfg.JWTSecret == "" || s.cfg.AdminEmail == "" || (s.cfg.AdminHash == "" && s.cfg.AdminPassword == "") {
		return nil, ErrAuthNotConfigured
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		log.Printf("[AUTH] ❌ login rejected for %q", email)
		return nil, ErrInvalidCredentials
	}

	if s.cfg.AdminHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminHash), []byte(password)); err != nil {
			log.Printf("[AUTH] ❌ login rejected for %q", email)
			return nil, ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
		log.Printf("[AUTH] ❌ login rejected for %q", email)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	exp := now.Add(s.ttl())
	claims := jwt.MapClaims{
		"sub":  s.cfg.AdminEmail,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTH] ✅ admin %s logged in", s.cfg.AdminEmail)
	return &Token{AccessToken: signed, ExpiresAt: exp.UTC(), Role: RoleAdmin}, nil
}

// ParseToken verifies the signature and expiry and requires role=admin.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, ErrAuthNotConfigured
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	expiresAt := time.Unix(int64(exp), 0)
	if !s.now().Before(expiresAt) {
		return nil, ErrTokenExpired
	}
	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden - admin only")
	}
	sub, _ := claims["sub"].(string)
	return &Claims{Subject: sub, Role: role, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.cfg.TokenTTL <= 0 {
		return 12 * time.Hour
	}
	return s.cfg.TokenTTL
}

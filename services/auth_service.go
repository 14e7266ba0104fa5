package services

import (
	"time"

	"vibe-todo/vibetodo/utils/token"

	"golang.org/x/crypto/bcrypt"
)

type Claims = token.Claims

type AuthServiceInterface interface {
	Enabled() bool
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

// AuthService guards the API with a single owner password. With an empty
// secret it is disabled and every request is let through.
type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
	passwordHash  string
}

func NewAuthService(jwtSecret string, jwtExpirationHours int, passwordHash string) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
		passwordHash:  passwordHash,
	}
}

func (s *AuthService) Enabled() bool {
	return len(s.jwtSecret) > 0
}

func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}
	if s.passwordHash == "" || s.ComparePasswords(s.passwordHash, password) != nil {
		return "", ErrInvalidCredentials
	}
	return token.GenerateToken(s.jwtSecret, s.jwtExpiration)
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface = NewAuthService("", 24, "")

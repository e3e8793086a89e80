package usecase

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Session tokens are long-lived: the barbero logs in once per device.
const sessionTokenTTL = 30 * 24 * time.Hour

// IProviderAuthUseCase implements the single-credential barbero role: one
// shared secret for the whole role, exchanged once for a session token that is
// presented on every barbero-only call.
type IProviderAuthUseCase interface {
	Login(secret string) (string, error)
	Validate(token string) error
}

type ProviderAuthUseCase struct {
	secret []byte
	jwtKey []byte
}

var _ IProviderAuthUseCase = (*ProviderAuthUseCase)(nil)

func NewProviderAuthUseCase(secret, jwtKey string) *ProviderAuthUseCase {
	return &ProviderAuthUseCase{secret: []byte(secret), jwtKey: []byte(jwtKey)}
}

// Login compares the supplied secret in constant time and issues a signed
// HS256 session token on match.
func (u *ProviderAuthUseCase) Login(secret string) (string, error) {
	if len(u.secret) == 0 {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(secret)), u.secret) != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "barbero",
		"iat": now.Unix(),
		"exp": now.Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtKey)
}

// Validate checks a session token previously issued by Login.
func (u *ProviderAuthUseCase) Validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != "barbero" {
		return ErrInvalidToken
	}
	return nil
}

package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "dashboard_session"
	subject    = "dashboard"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service guards the dashboard with a single shared password. A Service with
// no password hash is disabled and lets every request through.
type Service struct {
	passwordHash []byte
	issuer       string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewService(passwordHash, issuer string, secret []byte, ttl time.Duration) *Service {
	return &Service{
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		issuer:       issuer,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *Service) Enabled() bool {
	return s != nil && len(s.passwordHash) > 0
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) Login(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.signToken()
}

func (s *Service) signToken() (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *Service) ParseToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return errors.New("invalid token")
	}
	if claims.Issuer != s.issuer {
		return errors.New("invalid issuer")
	}
	if claims.Subject != subject {
		return errors.New("invalid subject")
	}
	return nil
}

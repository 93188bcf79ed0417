package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	purposeSession = "session"
	purposeCSRF    = "csrf"
)

type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	Purpose   string    `json:"purpose"`
	jwt.RegisteredClaims
}

// Service signs and verifies the anonymous session token (cookie) and the
// per-session anti-forgery token (X-CSRF-Token header). Both are HMAC tokens
// over the same secret; the purpose claim keeps them from being swapped.
type Service struct {
	secretKey       []byte
	sessionDuration time.Duration
	csrfDuration    time.Duration
}

func NewService(secretKey string, sessionDuration, csrfDuration time.Duration) *Service {
	return &Service{
		secretKey:       []byte(secretKey),
		sessionDuration: sessionDuration,
		csrfDuration:    csrfDuration,
	}
}

func (s *Service) GenerateSessionToken(sessionID uuid.UUID) (string, error) {
	return s.generate(sessionID, purposeSession, s.sessionDuration)
}

func (s *Service) GenerateCSRFToken(sessionID uuid.UUID) (string, error) {
	return s.generate(sessionID, purposeCSRF, s.csrfDuration)
}

func (s *Service) ValidateSessionToken(tokenString string) (uuid.UUID, error) {
	return s.validate(tokenString, purposeSession)
}

// ValidateCSRFToken checks the anti-forgery token and that it was minted for
// the given session.
func (s *Service) ValidateCSRFToken(tokenString string, sessionID uuid.UUID) error {
	tokenSession, err := s.validate(tokenString, purposeCSRF)
	if err != nil {
		return err
	}
	if tokenSession != sessionID {
		return ErrInvalidToken
	}
	return nil
}

func (s *Service) generate(sessionID uuid.UUID, purpose string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secretKey)
}

func (s *Service) validate(tokenString, purpose string) (uuid.UUID, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Purpose != purpose || claims.SessionID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.SessionID, nil
}

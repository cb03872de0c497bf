package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when a token cannot be parsed or its
	// signature does not match.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrUnsupportedAlgorithm is returned for non-HMAC signing algorithms.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
)

// JWTService issues and verifies signed, self-contained access tokens.
// The signing secret is fixed for the process lifetime; there is no
// rotation and no server-side session state.
type JWTService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewJWTService creates a JWT service with the given secret, signing
// algorithm identifier (an HMAC variant such as HS256) and token TTL.
func NewJWTService(secret, algorithm string, ttl time.Duration) (*JWTService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnsupportedAlgorithm
	}
	return &JWTService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a token for subject valid from now until now plus the
// configured TTL. The signature covers subject and both timestamps.
func (s *JWTService) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks signature and expiry against now and returns the token
// subject. It does not resolve the subject to an account.
func (s *JWTService) Verify(tokenString string, now time.Time) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talenthub/portal/pkg/iam/user"
	"github.com/talenthub/portal/pkg/kernel"
)

// Config holds the token signing settings
type Config struct {
	SecretKey string
	TokenTTL  time.Duration
	Issuer    string
}

// DefaultConfig returns sane development defaults
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
		Issuer:   "talenthub-portal",
	}
}

// Claims carried by portal access tokens
type Claims struct {
	Role user.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and validates portal access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenService(cfg Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
	}
}

// Generate issues a signed token for the given account
func (s *TokenService) Generate(userID kernel.UserID, role user.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token, returning its claims
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

package auth

import (
	"fmt"
	"log/slog"
	"time"

	"planets-api/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// Service issues and validates the HS256 tokens that back the auth cookie.
// The secret and expiration come from config at construction time.
type Service struct {
	secret     []byte
	expiration time.Duration
	logger     *slog.Logger
}

func NewService(cfg config.AuthConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service", "token_expiration", cfg.TokenExpiration)

	return &Service{
		secret:     []byte(cfg.JWTSecret),
		expiration: cfg.TokenExpiration,
		logger:     logger,
	}
}

func (s *Service) GenerateToken(username string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

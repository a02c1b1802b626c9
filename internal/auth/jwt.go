package auth

import (
	"fmt"
	"time"

	"stars-server/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	PlayerID int    `json:"player_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT secret must be at least 32 characters long")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

func (ti *TokenIssuer) Generate(playerID int, username, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		PlayerID: playerID,
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("player_%d", playerID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

func (ti *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func globalIssuer() (*TokenIssuer, error) {
	cfg := config.GlobalConfig
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
}

func GenerateJWT(playerID int, username, email, role string) (string, error) {
	issuer, err := globalIssuer()
	if err != nil {
		return "", fmt.Errorf("cannot generate JWT: %w", err)
	}
	return issuer.Generate(playerID, username, email, role)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	issuer, err := globalIssuer()
	if err != nil {
		return nil, fmt.Errorf("cannot validate JWT: %w", err)
	}
	return issuer.Validate(tokenString)
}

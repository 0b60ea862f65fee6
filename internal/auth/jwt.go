package auth

import (
	"errors"
	"strconv"
	"time"

	"menuplanner-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const (
	AccessTokenTTL  = 10 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

type JWTCustomClaims struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
	Type   TokenType       `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func GenerateToken(secret string, user *models.User, typ TokenType) (string, error) {
	ttl := AccessTokenTTL
	if typ == RefreshToken {
		ttl = RefreshTokenTTL
	}

	now := time.Now()
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateTokenPair(secret string, user *models.User) (TokenPair, error) {
	access, err := GenerateToken(secret, user, AccessToken)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := GenerateToken(secret, user, RefreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseToken validates signature, expiry and token type.
func ParseToken(secret, tokenStr string, want TokenType) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != want || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

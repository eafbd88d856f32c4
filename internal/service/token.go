package service

import (
	"errors"
	"strings"
	"time"

	"github.com/clickpath/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid 令牌无效
var ErrTokenInvalid = errors.New("token invalid")

// JWTClaims 管理端操作员令牌声明
type JWTClaims struct {
	Operator string   `json:"operator"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateJWT 签发操作员令牌
func GenerateJWT(cfg config.JWTConfig, operator string, roles []string) (string, time.Time, error) {
	operator = strings.TrimSpace(operator)
	if operator == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return "", time.Time{}, ErrTokenInvalid
	}
	hours := cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		Operator: operator,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    strings.TrimSpace(cfg.Issuer),
			Subject:   operator,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析并校验操作员令牌
func ParseJWT(cfg config.JWTConfig, tokenString string) (*JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer := strings.TrimSpace(cfg.Issuer); issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Operator) == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

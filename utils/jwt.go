package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims es la estructura de los datos que el servicio de auth guarda EN el token.
// El subject es el email del usuario.
type Claims struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
	Types  []string `json:"types"`
	jwt.RegisteredClaims
}

var (
	ErrEmptyToken   = errors.New("empty token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// HasRole indica si el token trae el rol pedido (USER, AGENT, ADMIN)
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// StripBearer quita el prefijo "Bearer " que el servicio de auth agrega al token
func StripBearer(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

// ParseClaims decodifica los claims del token emitido por el servicio de auth.
//
// Si tenemos el secret compartido verificamos la firma (HS512 en el backend).
// Si no, el upstream sigue siendo la autoridad: solo leemos los claims y
// controlamos la expiración para no mandar requests condenados a fallar.
func ParseClaims(tokenString, secret string) (*Claims, error) {
	tokenString = StripBearer(tokenString)
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	claims := &Claims{}

	if secret != "" {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, ErrExpiredToken
			}
			return nil, ErrInvalidToken
		}
		if !token.Valid {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/utils"
)

// SessionHeader es el header con el id de sesión del BFF
const SessionHeader = "X-Session-ID"

// Claves del contexto de gin
const (
	ContextSession = "session"
	ContextUserID  = "user_id"
	ContextRoles   = "roles"
	ContextClaims  = "claims"
)

// SessionResolver busca una sesión por id
type SessionResolver interface {
	Get(id string) (*stores.Session, bool)
}

// sessionID lee el id de X-Session-ID o, si no está, de "Authorization: Bearer <id>"
func sessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// resolve valida sesión y token; devuelve false si ya respondió con error
func resolve(c *gin.Context, sessions SessionResolver, jwtSecret string, required bool) bool {
	id := sessionID(c)
	if id == "" {
		if required {
			unauthorized(c, "session required")
			return false
		}
		return true
	}

	session, ok := sessions.Get(id)
	if !ok {
		if required {
			unauthorized(c, "session expired or invalid")
			return false
		}
		return true
	}

	// El token upstream puede vencer antes que la sesión
	claims, err := utils.ParseClaims(session.Token, jwtSecret)
	if err != nil {
		log.Debug().Err(err).Str("session_id", session.ID).Msg("Session token rejected")
		if !required {
			return true
		}
		if errors.Is(err, utils.ErrExpiredToken) {
			unauthorized(c, "token expired, please log in again")
		} else {
			unauthorized(c, "invalid token")
		}
		return false
	}

	userID := claims.UserID
	if userID == "" {
		userID = session.UserID
	}

	// Guardar la info del usuario en el contexto
	c.Set(ContextSession, session)
	c.Set(ContextUserID, userID)
	c.Set(ContextRoles, claims.Roles)
	c.Set(ContextClaims, claims)
	return true
}

// AuthMiddleware exige una sesión válida con un token upstream vigente
func AuthMiddleware(sessions SessionResolver, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolve(c, sessions, jwtSecret, true) {
			return
		}
		c.Next()
	}
}

// OptionalSessionMiddleware carga la sesión si viene una válida; nunca corta el request
func OptionalSessionMiddleware(sessions SessionResolver, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, sessions, jwtSecret, false)
		c.Next()
	}
}

// AdminMiddleware valida que el usuario sea ADMIN.
// Se usa DESPUÉS de AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextClaims)
		if !exists {
			unauthorized(c, "session required")
			return
		}

		claims := value.(*utils.Claims)
		if !claims.HasRole(string(domain.RoleAdmin)) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "forbidden",
				Message: "admin privileges required",
			})
			return
		}

		c.Next()
	}
}

// SessionFrom devuelve la sesión que dejó el middleware
func SessionFrom(c *gin.Context) (*stores.Session, bool) {
	value, exists := c.Get(ContextSession)
	if !exists {
		return nil, false
	}
	session, ok := value.(*stores.Session)
	return session, ok
}

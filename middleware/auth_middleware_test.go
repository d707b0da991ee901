package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/utils"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, userID string, roles []string, exp time.Time) string {
	t.Helper()
	claims := &utils.Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID + "@example.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newSessions(t *testing.T) *stores.SessionStore {
	t.Helper()
	sessions := stores.NewSessionStore(nil, nil, nil, time.Hour)
	t.Cleanup(sessions.Close)
	return sessions
}

func newRouter(sessions *stores.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/")
	protected.Use(AuthMiddleware(sessions, testSecret))
	protected.GET("/me", func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID), "session": session.ID})
	})
	protected.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/public", OptionalSessionMiddleware(sessions, testSecret), func(c *gin.Context) {
		_, ok := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"has_session": ok})
	})
	return r
}

func do(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_SessionHeader(t *testing.T) {
	sessions := newSessions(t)
	token := signToken(t, "u-1", []string{"USER"}, time.Now().Add(time.Hour))
	session := sessions.Create(token, domain.UserData{UserID: "u-1"})

	w := do(newRouter(sessions), "/me", map[string]string{SessionHeader: session.ID})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
}

func TestAuthMiddleware_BearerSessionID(t *testing.T) {
	sessions := newSessions(t)
	token := signToken(t, "u-2", []string{"USER"}, time.Now().Add(time.Hour))
	session := sessions.Create(token, domain.UserData{UserID: "u-2"})

	w := do(newRouter(sessions), "/me", map[string]string{"Authorization": "Bearer " + session.ID})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	sessions := newSessions(t)
	expired := sessions.Create(signToken(t, "u-3", []string{"USER"}, time.Now().Add(-time.Minute)), domain.UserData{UserID: "u-3"})
	r := newRouter(sessions)

	cases := []struct {
		name    string
		headers map[string]string
		message string
	}{
		{"sin sesión", nil, "session required"},
		{"sesión desconocida", map[string]string{SessionHeader: "nope"}, "session expired or invalid"},
		{"token vencido", map[string]string{SessionHeader: expired.ID}, "token expired"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, "/me", tc.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	sessions := newSessions(t)
	user := sessions.Create(signToken(t, "u-4", []string{"USER"}, time.Now().Add(time.Hour)), domain.UserData{UserID: "u-4"})
	admin := sessions.Create(signToken(t, "u-5", []string{"USER", "ADMIN"}, time.Now().Add(time.Hour)), domain.UserData{UserID: "u-5"})
	r := newRouter(sessions)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", map[string]string{SessionHeader: user.ID}).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", map[string]string{SessionHeader: admin.ID}).Code)
}

func TestOptionalSessionMiddleware(t *testing.T) {
	sessions := newSessions(t)
	session := sessions.Create(signToken(t, "u-6", []string{"USER"}, time.Now().Add(time.Hour)), domain.UserData{UserID: "u-6"})
	r := newRouter(sessions)

	assert.Contains(t, do(r, "/public", nil).Body.String(), `"has_session":false`)
	assert.Contains(t, do(r, "/public", map[string]string{SessionHeader: "unknown"}).Body.String(), `"has_session":false`)
	assert.Contains(t, do(r, "/public", map[string]string{SessionHeader: session.ID}).Body.String(), `"has_session":true`)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), SessionHeader)
}

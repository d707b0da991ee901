package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

func TestLogin_StripsBearerPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body dto.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "host@example.com", body.Email)

		writeJSON(w, http.StatusOK, dto.LoginResponse{Message: "Connexion réussie", UserID: "u-1", Token: "Bearer abc.def.ghi"})
	}))
	defer srv.Close()

	client := NewUsersClient(srv.URL+"/api", time.Second)
	resp, err := client.Login(context.Background(), dto.LoginRequest{Email: "host@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "abc.def.ghi", resp.Token)
	assert.Equal(t, "u-1", resp.UserID)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Bad credentials"})
	}))
	defer srv.Close()

	client := NewUsersClient(srv.URL, time.Second)
	_, err := client.Login(context.Background(), dto.LoginRequest{Email: "x@example.com", Password: "nope"})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Bad credentials", apiErr.Message)
}

func TestAgents_CRUD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/auth/users/admin/agents":
			writeJSON(w, http.StatusOK, []domain.Agent{{UserID: "a-1", Email: "a@example.com", Roles: []domain.Role{domain.RoleAgent}}})
		case r.Method == http.MethodPost && r.URL.Path == "/auth/users/admin/agents":
			var body dto.CreateAgentRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusCreated, domain.Agent{UserID: "a-2", Email: body.Email})
		case r.Method == http.MethodDelete && r.URL.Path == "/auth/users/admin/agents/a-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewUsersClient(srv.URL, time.Second)
	ctx := WithToken(context.Background(), "admin-token")

	agents, err := client.ListAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, agents, 1)

	created, err := client.CreateAgent(ctx, dto.CreateAgentRequest{Firstname: "B", Lastname: "C", Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a-2", created.UserID)

	require.NoError(t, client.DeleteAgent(ctx, "a-1"))
}

func TestPredictPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "apartment", body["type"])
		assert.EqualValues(t, 4, body["nb_of_guests"])

		writeJSON(w, http.StatusOK, map[string]float64{"suggested_price": 95, "yield_optimized_15": 109.25})
	}))
	defer srv.Close()

	client := NewPredictionClient(srv.URL, time.Second)
	resp, err := client.PredictPrice(context.Background(), dto.PredictionRequest{NbOfGuests: 4, Type: "apartment", Country: "France", City: "Paris"})
	require.NoError(t, err)

	assert.Equal(t, 95.0, resp.SuggestedPrice)
	assert.Equal(t, 109.25, resp.YieldOptimized15)
}

func TestAccountFlows_Endpoints(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/auth/users":
			var body dto.RegisterRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "new@example.com", body.Email)
			w.WriteHeader(http.StatusCreated)
		case "/auth/users/verify-otp":
			var body dto.VerifyOtpRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "123456", body.Code)
			w.WriteHeader(http.StatusOK)
		case "/auth/users/resend-otp":
			assert.Equal(t, "new@example.com", r.URL.Query().Get("email"))
			assert.Zero(t, r.ContentLength)
			w.WriteHeader(http.StatusOK)
		case "/auth/users/forgot-password":
			var body dto.EmailRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "new@example.com", body.Email)
			w.WriteHeader(http.StatusOK)
		case "/auth/users/reset-password":
			var body dto.ResetPasswordRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "n3wsecret", body.NewPassword)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewUsersClient(srv.URL, time.Second)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, dto.RegisterRequest{Firstname: "A", Lastname: "B", Email: "new@example.com", Password: "secret1"}))
	require.NoError(t, client.VerifyOtp(ctx, dto.VerifyOtpRequest{Email: "new@example.com", Code: "123456"}))
	require.NoError(t, client.ResendOtp(ctx, "new@example.com"))
	require.NoError(t, client.ForgotPassword(ctx, "new@example.com"))
	require.NoError(t, client.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "new@example.com", Code: "654321", NewPassword: "n3wsecret"}))

	assert.Len(t, calls, 5)
}

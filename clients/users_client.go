package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/utils"
)

// UsersClient define las operaciones contra el servicio de auth/usuarios
type UsersClient interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) error
	ResendOtp(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	GetUser(ctx context.Context, userID string) (*domain.UserData, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.UserData, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
}

type usersClient struct {
	restClient
}

func NewUsersClient(baseURL string, timeout time.Duration) UsersClient {
	return &usersClient{restClient: newRestClient(baseURL, timeout)}
}

// Login autentica contra el servicio de auth; el token se devuelve sin el prefijo "Bearer "
func (c *usersClient) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/users/login", nil, req, &resp); err != nil {
		return nil, err
	}
	resp.Token = utils.StripBearer(resp.Token)
	if resp.Token == "" {
		return nil, fmt.Errorf("login response without token")
	}
	return &resp, nil
}

// Register da de alta la cuenta; el servicio de auth manda el OTP por email
func (c *usersClient) Register(ctx context.Context, req dto.RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/users", nil, req, nil)
}

func (c *usersClient) VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/users/verify-otp", nil, req, nil)
}

// ResendOtp manda el email como query param, sin body
func (c *usersClient) ResendOtp(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/users/resend-otp", url.Values{"email": {email}}, nil, nil)
}

func (c *usersClient) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/users/forgot-password", nil, dto.EmailRequest{Email: email}, nil)
}

func (c *usersClient) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/users/reset-password", nil, req, nil)
}

func userPath(userID string) string {
	return "/auth/users/" + url.PathEscape(userID)
}

func (c *usersClient) GetUser(ctx context.Context, userID string) (*domain.UserData, error) {
	var user domain.UserData
	if err := c.doJSON(ctx, http.MethodGet, userPath(userID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *usersClient) UpdateUser(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.UserData, error) {
	var user domain.UserData
	if err := c.doJSON(ctx, http.MethodPut, userPath(userID), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *usersClient) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var agents []domain.Agent
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users/admin/agents", nil, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *usersClient) CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error) {
	var agent domain.Agent
	if err := c.doJSON(ctx, http.MethodPost, "/auth/users/admin/agents", nil, req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (c *usersClient) DeleteAgent(ctx context.Context, agentID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/auth/users/admin/agents/"+url.PathEscape(agentID), nil, nil, nil)
}

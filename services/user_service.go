package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// LoginResult es lo que queda de un login exitoso: token sin "Bearer " y perfil
type LoginResult struct {
	Token string
	User  domain.UserData
}

// UserService define las operaciones de usuarios contra el servicio de auth
type UserService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) error
	ResendOtp(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	GetProfile(ctx context.Context, userID string) (*domain.UserData, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.UserData, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
}

type userService struct {
	users clients.UsersClient
}

func NewUserService(users clients.UsersClient) UserService {
	return &userService{users: users}
}

// Login autentica y después carga el perfil con el token recién emitido
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error) {
	// 1. Validar el request
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	// 2. Autenticar contra el servicio de auth
	resp, err := s.users.Login(ctx, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpLogin, err)
	}

	// 3. Traer el perfil con el token nuevo
	user, err := s.users.GetUser(clients.WithToken(ctx, resp.Token), resp.UserID)
	if err != nil {
		return nil, upstreamError(apperrors.OpProfile, err)
	}

	log.Info().Str("user_id", user.UserID).Msg("User logged in")
	return &LoginResult{Token: resp.Token, User: *user}, nil
}

// Register da de alta la cuenta; queda pendiente de verificar el email con el OTP
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(req.Email) {
		return apperrors.NewValidationError("L'email est invalide")
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("Minimum 6 caractères")
	}

	if err := s.users.Register(ctx, req); err != nil {
		return upstreamError(apperrors.OpRegister, err)
	}
	log.Info().Str("email", req.Email).Msg("Account registered, waiting for OTP")
	return nil
}

func (s *userService) VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		return apperrors.NewValidationError("email and code are required")
	}
	return upstreamError(apperrors.OpVerifyOtp, s.users.VerifyOtp(ctx, req))
}

func (s *userService) ResendOtp(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email is required")
	}
	return upstreamError(apperrors.OpResendOtp, s.users.ResendOtp(ctx, email))
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email is required")
	}
	return upstreamError(apperrors.OpForgotPassword, s.users.ForgotPassword(ctx, email))
}

func (s *userService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		return apperrors.NewValidationError("email and code are required")
	}
	if len(req.NewPassword) < 6 {
		return apperrors.NewValidationError("Minimum 6 caractères")
	}
	return upstreamError(apperrors.OpResetPassword, s.users.ResetPassword(ctx, req))
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserData, error) {
	user, err := s.users.GetUser(ctx, userID)
	return user, upstreamError(apperrors.OpProfile, err)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.UserData, error) {
	user, err := s.users.UpdateUser(ctx, userID, req)
	return user, upstreamError(apperrors.OpProfile, err)
}

func (s *userService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	agents, err := s.users.ListAgents(ctx)
	return agents, upstreamError(apperrors.OpAgents, err)
}

// ValidateAgent aplica las reglas del formulario de alta de agentes
func ValidateAgent(req dto.CreateAgentRequest) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Firstname) == "" {
		errs["firstname"] = "Le prénom est requis"
	}
	if strings.TrimSpace(req.Lastname) == "" {
		errs["lastname"] = "Le nom est requis"
	}
	switch {
	case strings.TrimSpace(req.Email) == "":
		errs["email"] = "L'email est requis"
	case !emailPattern.MatchString(req.Email):
		errs["email"] = "L'email est invalide"
	}
	switch {
	case req.Password == "":
		errs["password"] = "Le mot de passe est requis"
	case len(req.Password) < 6:
		errs["password"] = "Minimum 6 caractères"
	}
	return errs
}

func (s *userService) CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error) {
	if errs := ValidateAgent(req); len(errs) > 0 {
		for _, field := range []string{"firstname", "lastname", "email", "password"} {
			if msg, ok := errs[field]; ok {
				return nil, apperrors.NewValidationError(msg)
			}
		}
	}

	agent, err := s.users.CreateAgent(ctx, req)
	if err != nil {
		return nil, upstreamError(apperrors.OpAgents, err)
	}
	log.Info().Str("agent_id", agent.UserID).Msg("Agent created")
	return agent, nil
}

func (s *userService) DeleteAgent(ctx context.Context, agentID string) error {
	if strings.TrimSpace(agentID) == "" {
		return apperrors.NewValidationError("agent ID is required")
	}
	return upstreamError(apperrors.OpAgents, s.users.DeleteAgent(ctx, agentID))
}

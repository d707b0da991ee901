package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/domain"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
)

// ============================================
// MOCKS
// ============================================
type mockUsersClient struct {
	loginErr   error
	tokenSeen  string
	agents     []domain.Agent
	created    []dto.CreateAgentRequest
	deletedIDs []string

	accountErr   error
	accountCalls []string
}

func (m *mockUsersClient) account(call string) error {
	m.accountCalls = append(m.accountCalls, call)
	return m.accountErr
}

func (m *mockUsersClient) Register(ctx context.Context, req dto.RegisterRequest) error {
	return m.account("register:" + req.Email)
}

func (m *mockUsersClient) VerifyOtp(ctx context.Context, req dto.VerifyOtpRequest) error {
	return m.account("verify:" + req.Code)
}

func (m *mockUsersClient) ResendOtp(ctx context.Context, email string) error {
	return m.account("resend:" + email)
}

func (m *mockUsersClient) ForgotPassword(ctx context.Context, email string) error {
	return m.account("forgot:" + email)
}

func (m *mockUsersClient) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	return m.account("reset:" + req.Email)
}

func (m *mockUsersClient) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return &dto.LoginResponse{Message: "ok", UserID: "u-1", Token: "jwt-token"}, nil
}

func (m *mockUsersClient) GetUser(ctx context.Context, userID string) (*domain.UserData, error) {
	m.tokenSeen = clients.TokenFrom(ctx)
	return &domain.UserData{UserID: userID, Email: "host@example.com", Roles: []domain.Role{domain.RoleUser}}, nil
}

func (m *mockUsersClient) UpdateUser(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.UserData, error) {
	return &domain.UserData{UserID: userID, Firstname: req.Firstname}, nil
}

func (m *mockUsersClient) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return m.agents, nil
}

func (m *mockUsersClient) CreateAgent(ctx context.Context, req dto.CreateAgentRequest) (*domain.Agent, error) {
	m.created = append(m.created, req)
	return &domain.Agent{UserID: "a-1", Email: req.Email}, nil
}

func (m *mockUsersClient) DeleteAgent(ctx context.Context, agentID string) error {
	m.deletedIDs = append(m.deletedIDs, agentID)
	return nil
}

type mockSavedSearchRepository struct {
	searches map[uint]*domain.SavedSearch
}

func newMockSavedSearchRepository() *mockSavedSearchRepository {
	return &mockSavedSearchRepository{searches: make(map[uint]*domain.SavedSearch)}
}

func (m *mockSavedSearchRepository) Create(s *domain.SavedSearch) error {
	// Simular auto-increment del ID
	s.ID = uint(len(m.searches) + 1)
	m.searches[s.ID] = s
	return nil
}

func (m *mockSavedSearchRepository) ListByUser(userID string) ([]domain.SavedSearch, error) {
	var out []domain.SavedSearch
	for _, s := range m.searches {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSavedSearchRepository) GetByID(userID string, id uint) (*domain.SavedSearch, error) {
	s, ok := m.searches[id]
	if !ok || s.UserID != userID {
		return nil, repositories.ErrSavedSearchNotFound
	}
	return s, nil
}

func (m *mockSavedSearchRepository) Delete(userID string, id uint) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.searches, id)
	return nil
}

// ============================================
// TESTS
// ============================================

// Test: el perfil se pide con el token recién emitido
func TestLogin_LoadsProfileWithNewToken(t *testing.T) {
	users := &mockUsersClient{}
	svc := NewUserService(users)

	result, err := svc.Login(context.Background(), dto.LoginRequest{Email: " host@example.com ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, "u-1", result.User.UserID)
	assert.Equal(t, "jwt-token", users.tokenSeen)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := &mockUsersClient{loginErr: &clients.APIError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}}
	svc := NewUserService(users)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, "Invalid email or password", apperrors.Message(err))

	_, err = svc.Login(context.Background(), dto.LoginRequest{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestRegister_ValidatesAndMapsDuplicateEmail(t *testing.T) {
	users := &mockUsersClient{}
	svc := NewUserService(users)

	err := svc.Register(context.Background(), dto.RegisterRequest{Email: "nope", Password: "secret1"})
	assert.Equal(t, "L'email est invalide", apperrors.Message(err))
	assert.Empty(t, users.accountCalls)

	require.NoError(t, svc.Register(context.Background(), dto.RegisterRequest{Firstname: "Ana", Lastname: "Ruiz", Email: " ana@rental.io ", Password: "secret1"}))
	assert.Equal(t, []string{"register:ana@rental.io"}, users.accountCalls)

	users.accountErr = &clients.APIError{StatusCode: http.StatusConflict, Message: "Email already used"}
	err = svc.Register(context.Background(), dto.RegisterRequest{Email: "ana@rental.io", Password: "secret1"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Equal(t, "Email already exists", apperrors.Message(err))
}

func TestPasswordReset_Flow(t *testing.T) {
	users := &mockUsersClient{}
	svc := NewUserService(users)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "ana@rental.io"))
	require.NoError(t, svc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@rental.io", Code: " 123456 ", NewPassword: "n3wsecret"}))
	assert.Equal(t, []string{"forgot:ana@rental.io", "reset:ana@rental.io"}, users.accountCalls)

	err := svc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@rental.io", Code: "1", NewPassword: "123"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	users.accountErr = &clients.APIError{StatusCode: http.StatusNotFound}
	err = svc.ForgotPassword(ctx, "ghost@rental.io")
	assert.Equal(t, "No account found with this email", apperrors.Message(err))

	users.accountErr = &clients.APIError{StatusCode: http.StatusBadRequest}
	err = svc.VerifyOtp(ctx, dto.VerifyOtpRequest{Email: "ana@rental.io", Code: "000000"})
	assert.Equal(t, "Invalid or expired OTP code", apperrors.Message(err))
}

func TestValidateAgent(t *testing.T) {
	errs := ValidateAgent(dto.CreateAgentRequest{Email: "not-an-email", Password: "123"})
	assert.Equal(t, map[string]string{
		"firstname": "Le prénom est requis",
		"lastname":  "Le nom est requis",
		"email":     "L'email est invalide",
		"password":  "Minimum 6 caractères",
	}, errs)

	assert.Empty(t, ValidateAgent(dto.CreateAgentRequest{
		Firstname: "Ana", Lastname: "Ruiz", Email: "ana@rental.io", Password: "secret1",
	}))
}

func TestCreateAgent_ValidationBeforeUpstream(t *testing.T) {
	users := &mockUsersClient{}
	svc := NewUserService(users)

	_, err := svc.CreateAgent(context.Background(), dto.CreateAgentRequest{Firstname: "Ana"})
	assert.Equal(t, "Le nom est requis", apperrors.Message(err))
	assert.Empty(t, users.created)

	agent, err := svc.CreateAgent(context.Background(), dto.CreateAgentRequest{
		Firstname: "Ana", Lastname: "Ruiz", Email: "ana@rental.io", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", agent.UserID)
}

func TestSavedSearch_CreateNormalizesQuery(t *testing.T) {
	svc := NewSavedSearchService(newMockSavedSearchRepository())

	saved, err := svc.Create("u-1", " Paris villas ", "?type=villa&city=Paris&page=3")
	require.NoError(t, err)
	assert.Equal(t, "Paris villas", saved.Name)
	assert.Equal(t, "city=Paris&type=VILLA", saved.Query)

	_, err = svc.Create("u-1", "bad", "price=cheap")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Create("u-1", "", "city=Paris")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSavedSearch_DeleteOnlyOwn(t *testing.T) {
	svc := NewSavedSearchService(newMockSavedSearchRepository())
	saved, err := svc.Create("u-1", "Lyon", "city=Lyon")
	require.NoError(t, err)

	err = svc.Delete("u-2", saved.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	require.NoError(t, svc.Delete("u-1", saved.ID))
	list, err := svc.List("u-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpstreamError_PassesThroughAppErrors(t *testing.T) {
	original := apperrors.NewConflictError("already there")
	assert.Same(t, original, upstreamError(apperrors.OpAgents, original))

	err := upstreamError(apperrors.OpPredict, errors.New("dial tcp: refused"))
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusOf(err))
	assert.Equal(t, "Price prediction unavailable", apperrors.Message(err))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/middleware"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
)

// AuthController abre y cierra sesiones del BFF. El login se delega al servicio de auth.
type AuthController struct {
	users    services.UserService
	sessions *stores.SessionStore
}

func NewAuthController(users services.UserService, sessions *stores.SessionStore) *AuthController {
	return &AuthController{users: users, sessions: sessions}
}

// Login maneja POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	// 1. Leer el JSON del body
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	// 2. Autenticar contra el servicio de auth y traer el perfil
	result, err := ctrl.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// 3. Abrir la sesión con el token upstream
	session := ctrl.sessions.Create(result.Token, result.User)

	c.JSON(http.StatusOK, dto.SessionResponse{
		SessionID: session.ID,
		Token:     result.Token,
		User:      result.User,
	})
}

// bindAndRun lee el body y corre una operación de cuenta que no abre sesión
func bindAndRun[T any](c *gin.Context, status int, message string, run func(req T) error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := run(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, dto.SuccessResponse{Message: message})
}

// Register maneja POST /api/auth/register; la cuenta queda esperando el OTP
func (ctrl *AuthController) Register(c *gin.Context) {
	bindAndRun(c, http.StatusCreated, "Account created, check your email for the verification code",
		func(req dto.RegisterRequest) error {
			return ctrl.users.Register(c.Request.Context(), req)
		})
}

// VerifyOtp maneja POST /api/auth/verify-otp
func (ctrl *AuthController) VerifyOtp(c *gin.Context) {
	bindAndRun(c, http.StatusOK, "Email verified, you can now log in",
		func(req dto.VerifyOtpRequest) error {
			return ctrl.users.VerifyOtp(c.Request.Context(), req)
		})
}

// ResendOtp maneja POST /api/auth/resend-otp
func (ctrl *AuthController) ResendOtp(c *gin.Context) {
	bindAndRun(c, http.StatusOK, "Verification code sent",
		func(req dto.EmailRequest) error {
			return ctrl.users.ResendOtp(c.Request.Context(), req.Email)
		})
}

// ForgotPassword maneja POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	bindAndRun(c, http.StatusOK, "Reset instructions sent",
		func(req dto.EmailRequest) error {
			return ctrl.users.ForgotPassword(c.Request.Context(), req.Email)
		})
}

// ResetPassword maneja POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	bindAndRun(c, http.StatusOK, "Password updated",
		func(req dto.ResetPasswordRequest) error {
			return ctrl.users.ResetPassword(c.Request.Context(), req)
		})
}

// Logout maneja POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	s, ok := middleware.SessionFrom(c)
	if ok {
		ctrl.sessions.Delete(s.ID)
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// HealthCheck maneja GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rental-web-bff",
	})
}

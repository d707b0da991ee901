package dto

import "github.com/appLSI/decentralized-rental-app-sub000/domain"

// LoginRequest representa el request para login (se reenvía tal cual al servicio de auth)
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse es lo que devuelve POST /auth/users/login.
// El token viene con el prefijo "Bearer ".
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Token   string `json:"token"`
}

// SessionResponse es la respuesta del login del BFF
type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	Token     string          `json:"token"`
	User      domain.UserData `json:"user"`
}

// RegisterRequest representa el request de alta de cuenta
type RegisterRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone,omitempty"`
}

// VerifyOtpRequest confirma el email con el código recibido
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// EmailRequest sirve para reenviar el OTP y para pedir el reseteo de password
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest cambia la password con el código enviado por email
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest representa el request para actualizar el perfil
// Todos los campos son opcionales
type UpdateProfileRequest struct {
	Firstname     string `json:"firstname,omitempty"`
	Lastname      string `json:"lastname,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Address       string `json:"address,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// CreateAgentRequest es el body de POST /auth/users/admin/agents
type CreateAgentRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone,omitempty"`
}

// ErrorResponse representa una respuesta de error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse representa una respuesta exitosa
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

package apperrors

import (
	"net/http"
	"strings"
)

// Operation identifica la llamada upstream que falló; el mismo status
// significa cosas distintas según la acción.
type Operation string

const (
	OpListProperties Operation = "list_properties"
	OpGetProperty    Operation = "get_property"
	OpSearch         Operation = "search"
	OpCreate         Operation = "create_property"
	OpUpdate         Operation = "update_property"
	OpDelete         Operation = "delete_property"
	OpSubmit         Operation = "submit_property"
	OpHide           Operation = "hide_property"
	OpShow           Operation = "show_property"
	OpUploadImages   Operation = "upload_images"
	OpValidate       Operation = "validate_property"
	OpReject         Operation = "reject_property"
	OpCatalog        Operation = "catalog"
	OpLogin          Operation = "login"
	OpProfile        Operation = "profile"
	OpAgents         Operation = "agents"
	OpPredict        Operation = "predict_price"

	OpCreateBooking Operation = "create_booking"
	OpCancelBooking Operation = "cancel_booking"
	OpGetBooking    Operation = "get_booking"
	OpBookings      Operation = "list_bookings"

	OpRegister       Operation = "register"
	OpVerifyOtp      Operation = "verify_otp"
	OpResendOtp      Operation = "resend_otp"
	OpForgotPassword Operation = "forgot_password"
	OpResetPassword  Operation = "reset_password"
)

var fallbackMessages = map[Operation]string{
	OpListProperties: "Failed to load properties",
	OpGetProperty:    "Failed to load property",
	OpSearch:         "Failed to search properties",
	OpCreate:         "Failed to create property",
	OpUpdate:         "Failed to update property",
	OpDelete:         "Failed to delete property",
	OpSubmit:         "Failed to submit property",
	OpHide:           "Failed to hide property",
	OpShow:           "Failed to show property",
	OpUploadImages:   "Failed to upload images",
	OpValidate:       "Failed to validate property",
	OpReject:         "Failed to reject property",
	OpCatalog:        "Failed to load characteristics",
	OpLogin:          "Invalid email or password",
	OpProfile:        "Failed to load profile",
	OpAgents:         "Failed to manage agents",
	OpPredict:        "Price prediction unavailable",
	OpCreateBooking:  "Failed to create booking",
	OpCancelBooking:  "Failed to cancel booking",
	OpGetBooking:     "Failed to fetch booking details",
	OpBookings:       "Failed to fetch your bookings",
	OpRegister:       "Registration failed",
	OpVerifyOtp:      "Invalid or expired OTP code",
	OpResendOtp:      "Failed to resend OTP",
	OpForgotPassword: "Failed to send reset instructions",
	OpResetPassword:  "Invalid or expired reset code",
}

var ownerOperations = map[Operation]bool{
	OpUpdate:       true,
	OpDelete:       true,
	OpSubmit:       true,
	OpUploadImages: true,
}

var propertyOperations = map[Operation]bool{
	OpGetProperty:  true,
	OpUpdate:       true,
	OpDelete:       true,
	OpSubmit:       true,
	OpHide:         true,
	OpShow:         true,
	OpUploadImages: true,
	OpValidate:     true,
	OpReject:       true,
}

// FromUpstream traduce una falla HTTP del upstream al mensaje que ve el usuario.
// serverMessage es el campo "message" del cuerpo de error, si vino.
func FromUpstream(op Operation, status int, serverMessage string, cause error) *AppError {
	switch {
	case status == http.StatusForbidden && op == OpCreate:
		return Wrap(ErrorTypeForbidden, "You must connect your wallet to create a property", cause)
	case status == http.StatusBadRequest && strings.Contains(serverMessage, "Description"):
		return Wrap(ErrorTypeValidation, "Description must be between 50 and 2000 characters", cause)
	case status == http.StatusForbidden && ownerOperations[op]:
		return Wrap(ErrorTypeForbidden, "You are not the owner of this property", cause)
	case status == http.StatusNotFound && propertyOperations[op]:
		return Wrap(ErrorTypeNotFound, "Property not found", cause)
	case status == http.StatusConflict && op == OpDelete:
		return Wrap(ErrorTypeConflict, "Cannot delete property with active bookings", cause)
	case status == http.StatusBadRequest && op == OpHide:
		return Wrap(ErrorTypeValidation, "Only ACTIVE properties can be hidden", cause)
	case status == http.StatusBadRequest && op == OpShow:
		return Wrap(ErrorTypeValidation, "Only HIDDEN properties can be shown", cause)

	// Reservas
	case status == http.StatusBadRequest && op == OpCreateBooking && strings.Contains(serverMessage, "Wallet Not Connected"):
		return Wrap(ErrorTypeValidation, "Please connect your MetaMask wallet before booking", cause)
	case status == http.StatusConflict && op == OpCreateBooking:
		return Wrap(ErrorTypeConflict, "Property not available for these dates", cause)
	case status == http.StatusForbidden && op == OpCancelBooking:
		return Wrap(ErrorTypeForbidden, "You are not authorized to cancel this booking", cause)
	case status == http.StatusForbidden && op == OpGetBooking:
		return Wrap(ErrorTypeForbidden, "You are not authorized to view this booking", cause)
	case status == http.StatusNotFound && (op == OpCancelBooking || op == OpGetBooking):
		return Wrap(ErrorTypeNotFound, "Booking not found", cause)

	// Cuenta
	case status == http.StatusForbidden && op == OpLogin:
		return Wrap(ErrorTypeForbidden, "Please verify your email before logging in", cause)
	case (status == http.StatusBadRequest || status == http.StatusConflict) && op == OpRegister:
		if strings.Contains(strings.ToLower(serverMessage), "email") {
			return Wrap(ErrorTypeConflict, "Email already exists", cause)
		}
		return Wrap(ErrorTypeValidation, "Invalid registration data", cause)
	case status == http.StatusNotFound && op == OpForgotPassword:
		return Wrap(ErrorTypeNotFound, "No account found with this email", cause)
	}

	message := serverMessage
	if message == "" {
		message = fallbackMessages[op]
	}
	if message == "" {
		message = "Unexpected error from upstream service"
	}

	switch {
	case status == http.StatusUnauthorized && op == OpLogin:
		return Wrap(ErrorTypeUnauthorized, fallbackMessages[OpLogin], cause)
	case status == http.StatusUnauthorized:
		return Wrap(ErrorTypeUnauthorized, message, cause)
	case status == http.StatusForbidden:
		return Wrap(ErrorTypeForbidden, message, cause)
	case status == http.StatusNotFound:
		return Wrap(ErrorTypeNotFound, message, cause)
	case status == http.StatusConflict:
		return Wrap(ErrorTypeConflict, message, cause)
	case status >= 400 && status < 500:
		return Wrap(ErrorTypeValidation, message, cause)
	default:
		return Wrap(ErrorTypeExternal, message, cause)
	}
}

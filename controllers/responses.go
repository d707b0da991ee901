package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/appLSI/decentralized-rental-app-sub000/apperrors"
	"github.com/appLSI/decentralized-rental-app-sub000/dto"
	"github.com/appLSI/decentralized-rental-app-sub000/middleware"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/wizard"
)

// ValidationErrorResponse agrega los errores por campo del formulario
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// UploadFailedResponse es el 502 de un envío que guardó el registro pero no las imágenes
type UploadFailedResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

// wizardStatus traduce los errores del wizard a status HTTP
func wizardStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, wizard.ErrStepIncomplete),
		errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrNotFinalStep),
		errors.Is(err, wizard.ErrImageIndex),
		errors.Is(err, wizard.ErrPredictionInputs):
		return http.StatusBadRequest, true
	case errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrSubmitInProgress),
		errors.Is(err, wizard.ErrNotEditable),
		errors.Is(err, wizard.ErrStalePrediction):
		return http.StatusConflict, true
	case errors.Is(err, wizard.ErrImageUploadFailed):
		return http.StatusBadGateway, true
	case errors.Is(err, wizard.ErrPredictionDisabled):
		return http.StatusServiceUnavailable, true
	}
	return 0, false
}

// errorCode arma el código corto: "not_found", "validation", ...
func errorCode(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return strings.ToLower(string(appErr.Type))
	}
	return "internal"
}

// respondError escribe cualquier error del BFF con el formato común
func respondError(c *gin.Context, err error) {
	// 1. Errores de validación del formulario: 400 con detalle por campo
	var fieldErrs wizard.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field] = fe.Message
		}
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:   "validation",
			Message: fieldErrs.Error(),
			Fields:  fields,
		})
		return
	}

	// 2. Registro guardado pero imágenes no: se devuelve el id para reintentar
	var uploadErr *wizard.UploadError
	if errors.As(err, &uploadErr) {
		log.Warn().Err(err).Str("property_id", uploadErr.PropertyID).Msg("Wizard image upload failed")
		c.JSON(http.StatusBadGateway, UploadFailedResponse{
			Error:      "wizard",
			Message:    wizard.ErrImageUploadFailed.Error() + ": " + apperrors.Message(uploadErr.Err),
			PropertyID: uploadErr.PropertyID,
		})
		return
	}

	// 3. Resto de errores del wizard
	if status, ok := wizardStatus(err); ok {
		c.JSON(status, dto.ErrorResponse{Error: "wizard", Message: err.Error()})
		return
	}

	// 4. Todo lo demás sale del AppError
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.JSON(status, dto.ErrorResponse{
		Error:   errorCode(err),
		Message: apperrors.Message(err),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation",
		Message: message,
	})
}

// session devuelve la sesión del middleware; sin ella responde 401
func session(c *gin.Context) (*stores.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthorized",
			Message: "session required",
		})
		return nil, false
	}
	return s, true
}

// intParam parsea un parámetro de ruta entero
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name+" parameter")
		return 0, false
	}
	return value, true
}

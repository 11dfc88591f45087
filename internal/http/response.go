package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auth-api/internal/metrics"
	"auth-api/internal/service"
)

type errorKind string

const (
	kindValidation         errorKind = "validation"
	kindConflict           errorKind = "conflict"
	kindNotFound           errorKind = "not_found"
	kindInvalidCredentials errorKind = "invalid_credentials"
	kindAlreadyVerified    errorKind = "already_verified"
	kindInvalidOTP         errorKind = "invalid_otp"
	kindExpiredOTP         errorKind = "expired_otp"
	kindUnauthenticated    errorKind = "unauthenticated"
	kindRateLimited        errorKind = "rate_limited"
	kindTransport          errorKind = "transport"
	kindStore              errorKind = "store"
)

const outcomeKey = "auth_outcome"

// apiError es la variante de fallo que se serializa en la respuesta.
type apiError struct {
	Kind    errorKind
	Message string
}

// Todos los resultados de negocio viajan con 200 y el flag success.
func statusFor(errorKind) int {
	return http.StatusOK
}

// classify traduce errores de servicio al tipo de fallo. El mensaje de
// campos faltantes depende de la operacion.
func classify(err error, missingMessage string) apiError {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return apiError{kindValidation, missingMessage}
	case errors.Is(err, service.ErrPasswordTooLong):
		return apiError{kindValidation, "Password must be at most 72 bytes long"}
	case errors.Is(err, service.ErrUserExists):
		return apiError{kindConflict, "User already exists"}
	case errors.Is(err, service.ErrUserNotFound):
		return apiError{kindNotFound, "User not found"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiError{kindInvalidCredentials, "Invalid password"}
	case errors.Is(err, service.ErrAlreadyVerified):
		return apiError{kindAlreadyVerified, "Account is already verified"}
	case errors.Is(err, service.ErrOTPInvalid):
		return apiError{kindInvalidOTP, "Invalid OTP"}
	case errors.Is(err, service.ErrOTPExpired):
		return apiError{kindExpiredOTP, "OTP has expired"}
	case errors.Is(err, service.ErrUnauthenticated):
		return apiError{kindUnauthenticated, "Not Authorized, Login Again"}
	case errors.Is(err, service.ErrRateLimited):
		return apiError{kindRateLimited, "Too many OTP requests, try again later"}
	case errors.Is(err, service.ErrEmailSendFailure):
		return apiError{kindTransport, "Could not send email, try again later"}
	default:
		return apiError{kindStore, "Something went wrong, try again later"}
	}
}

type responder struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func (r responder) ok(c *gin.Context, operation string, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	r.metrics.RecordOutcome(operation, "ok")
	c.Set(outcomeKey, "ok")
	c.JSON(http.StatusOK, payload)
}

func (r responder) fail(c *gin.Context, operation string, apiErr apiError) {
	r.metrics.RecordOutcome(operation, string(apiErr.Kind))
	c.Set(outcomeKey, string(apiErr.Kind))
	c.JSON(statusFor(apiErr.Kind), gin.H{
		"success": false,
		"message": apiErr.Message,
		"code":    apiErr.Kind,
	})
}

func (r responder) failErr(c *gin.Context, operation string, err error, missingMessage string) {
	apiErr := classify(err, missingMessage)
	if apiErr.Kind == kindStore || apiErr.Kind == kindTransport {
		r.logger.Error(operation+" failed", zap.Error(err))
	}
	r.fail(c, operation, apiErr)
}

package http

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auth-api/internal/metrics"
	"auth-api/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de /api/auth.
type AuthHandler struct {
	logger  *zap.Logger
	authSvc *service.AuthService
	cookie  CookieSettings
	resp    responder
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authSvc *service.AuthService, cookie CookieSettings, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		authSvc: authSvc,
		cookie:  cookie,
		resp:    responder{logger: logger, metrics: m},
	}
}

// flexString acepta "123456" o 123456 en el JSON.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (h *AuthHandler) bind(c *gin.Context, operation string, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid "+operation+" request", zap.Error(err))
		h.resp.fail(c, operation, apiError{kindValidation, "Invalid request body"})
		return false
	}
	return true
}

// Register maneja POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.bind(c, "register", &req) {
		return
	}

	res, err := h.authSvc.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.resp.failErr(c, "register", err, "Missing required fields")
		return
	}

	h.cookie.set(c, res.Token)
	message := "Registration successful"
	if !res.WelcomeEmailSent {
		message = "Registration successful, but the welcome email could not be sent"
	}
	h.resp.ok(c, "register", gin.H{
		"message":          message,
		"userId":           res.User.ID,
		"welcomeEmailSent": res.WelcomeEmailSent,
	})
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !h.bind(c, "login", &req) {
		return
	}

	sess, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apiErr := classify(err, "Email and password are required")
		if apiErr.Kind == kindNotFound {
			apiErr.Message = "Invalid email"
		}
		if apiErr.Kind == kindStore {
			h.logger.Error("login failed", zap.Error(err))
		}
		h.resp.fail(c, "login", apiErr)
		return
	}

	h.cookie.set(c, sess.Token)
	h.resp.ok(c, "login", gin.H{
		"message": "Login successful",
		"token":   sess.Token,
		"userId":  sess.User.ID,
	})
}

// Logout maneja POST /api/auth/logout. Siempre responde success.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authSvc.Logout(c.Request.Context(), tokenFromRequest(c, h.cookie.Name))
	h.cookie.clear(c)
	h.resp.ok(c, "logout", gin.H{"message": "Logout successful"})
}

// SendVerifyOTP maneja POST /api/auth/send-verify-otp.
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !h.bind(c, "send_verify_otp", &req) {
		return
	}
	if err := h.authSvc.SendVerifyOTP(c.Request.Context(), req.UserID); err != nil {
		h.resp.failErr(c, "send_verify_otp", err, "Missing Details")
		return
	}
	h.resp.ok(c, "send_verify_otp", gin.H{"message": "OTP sent to email"})
}

// VerifyEmail maneja POST /api/auth/verify-account.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		UserID string     `json:"userId"`
		OTP    flexString `json:"otp"`
	}
	if !h.bind(c, "verify_email", &req) {
		return
	}
	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.UserID, string(req.OTP)); err != nil {
		h.resp.failErr(c, "verify_email", err, "Missing Details")
		return
	}
	h.resp.ok(c, "verify_email", gin.H{"message": "Account verified successfully"})
}

// IsAuthenticated maneja GET /api/auth/is-auth; SessionGuard ya filtro el request.
func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	h.resp.ok(c, "is_authenticated", nil)
}

// SendResetOTP maneja POST /api/auth/send-reset-otp.
func (h *AuthHandler) SendResetOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !h.bind(c, "send_reset_otp", &req) {
		return
	}
	if err := h.authSvc.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		h.resp.failErr(c, "send_reset_otp", err, "Email is required")
		return
	}
	h.resp.ok(c, "send_reset_otp", gin.H{"message": "OTP sent to email"})
}

// ResetPassword maneja POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string     `json:"email"`
		OTP         flexString `json:"otp"`
		NewPassword string     `json:"newPassword"`
	}
	if !h.bind(c, "reset_password", &req) {
		return
	}
	err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, string(req.OTP), req.NewPassword)
	if err != nil {
		h.resp.failErr(c, "reset_password", err, "Email, OTP and new password are required")
		return
	}
	h.resp.ok(c, "reset_password", gin.H{"message": "Password reset successful"})
}

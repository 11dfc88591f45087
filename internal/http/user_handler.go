package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auth-api/internal/metrics"
	"auth-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	userSvc *service.UserService
	resp    responder
}

func NewUserHandler(logger *zap.Logger, userSvc *service.UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		resp:    responder{logger: logger, metrics: m},
	}
}

// GetUserData maneja GET /api/user/data.
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		h.resp.fail(c, "get_user_data", apiError{kindUnauthenticated, "Not Authorized, Login Again"})
		return
	}
	profile, err := h.userSvc.GetUserData(c.Request.Context(), userID)
	if err != nil {
		h.resp.failErr(c, "get_user_data", err, "Missing Details")
		return
	}
	h.resp.ok(c, "get_user_data", gin.H{"userData": profile})
}

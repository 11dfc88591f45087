package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"auth-api/internal/service"
)

const authUserIDKey = "auth_user_id"

// SessionGuard busca el token primero en la cookie y luego en Authorization,
// lo valida y deja el user id en el contexto de gin.
func SessionGuard(jwtSvc *service.JWTService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			abortUnauthenticated(c, "Not Authorized, Login Again")
			return
		}
		if jwtSvc == nil {
			abortUnauthenticated(c, "Token is not valid, Login Again")
			return
		}

		claims, err := jwtSvc.Parse(token)
		if err != nil {
			abortUnauthenticated(c, "Token is not valid, Login Again")
			return
		}

		c.Set(authUserIDKey, claims.UserID)
		c.Next()
	}
}

// GetAuthUserID obtiene el user id autenticado desde el contexto de gin.
func GetAuthUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(authUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.Set(outcomeKey, string(kindUnauthenticated))
	c.AbortWithStatusJSON(statusFor(kindUnauthenticated), gin.H{
		"success": false,
		"message": message,
		"code":    kindUnauthenticated,
	})
}

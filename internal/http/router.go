package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auth-api/internal/db"
	"auth-api/internal/metrics"
	"auth-api/internal/service"
)

// RouterDeps agrupa lo que necesita NewRouter.
type RouterDeps struct {
	Logger      *zap.Logger
	AuthH       *AuthHandler
	UserH       *UserHandler
	JWT         *service.JWTService
	CookieName  string
	CORSOrigins []string
	DB          db.Pinger
	Metrics     *metrics.Metrics
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(d.Logger), gin.Recovery(), corsMiddleware(d.CORSOrigins))
	if d.Metrics != nil {
		r.Use(metricsMiddleware(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})
	r.GET("/healthz", healthHandler(d.DB))

	guard := SessionGuard(d.JWT, d.CookieName)

	auth := r.Group("/api/auth")
	auth.POST("/register", d.AuthH.Register)
	auth.POST("/login", d.AuthH.Login)
	auth.POST("/logout", d.AuthH.Logout)
	auth.POST("/send-verify-otp", d.AuthH.SendVerifyOTP)
	auth.POST("/verify-account", d.AuthH.VerifyEmail)
	auth.GET("/is-auth", guard, d.AuthH.IsAuthenticated)
	auth.POST("/send-reset-otp", d.AuthH.SendResetOTP)
	auth.POST("/reset-password", d.AuthH.ResetPassword)

	user := r.Group("/api/user")
	user.GET("/data", guard, d.UserH.GetUserData)

	return r
}

func healthHandler(p db.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		if err := db.Ping(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if outcome := c.GetString(outcomeKey); outcome != "" {
			fields = append(fields, zap.String("outcome", outcome))
		}
		logger.Info("request", fields...)
	}
}

// metricsMiddleware usa la ruta registrada como label para no explotar cardinalidad.
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieSettings define como se entrega el token de sesion al navegador.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// NewCookieSettings: en produccion Secure + SameSite=None, si no SameSite=Strict.
func NewCookieSettings(name string, production bool, maxAge time.Duration) CookieSettings {
	if name == "" {
		name = "token"
	}
	return CookieSettings{Name: name, Secure: production, MaxAge: maxAge}
}

func (s CookieSettings) sameSite() http.SameSite {
	if s.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func (s CookieSettings) set(c *gin.Context, token string) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(s.Name, token, int(s.MaxAge.Seconds()), "/", "", s.Secure, true)
}

func (s CookieSettings) clear(c *gin.Context) {
	c.SetSameSite(s.sameSite())
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}

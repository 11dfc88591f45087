package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"auth-api/internal/service"
)

func guardedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionGuard(jwtSvc, "token"), func(c *gin.Context) {
		id, ok := GetAuthUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	return r
}

func TestSessionGuard_AllowsValidCookie(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)
	token, _, err := jwtSvc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := performRequest(guardedRouter(jwtSvc), http.MethodGet, "/protected", nil, withCookie("token", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["userId"] != "u1" {
		t.Fatalf("expected u1 in context, got %v", body)
	}
}

func TestSessionGuard_FallsBackToBearer(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)
	token, _, _ := jwtSvc.Issue("u1")

	rec := performRequest(guardedRouter(jwtSvc), http.MethodGet, "/protected", nil, withBearer(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGuard_CookieWinsOverHeader(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)
	token, _, _ := jwtSvc.Issue("u1")

	rec := performRequest(guardedRouter(jwtSvc), http.MethodGet, "/protected", nil,
		withCookie("token", token), withBearer("garbage"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGuard_RejectsMissingToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)

	rec := performRequest(guardedRouter(jwtSvc), http.MethodGet, "/protected", nil)
	body := decodeBody(t, rec)
	if body["success"] != false || body["message"] != "Not Authorized, Login Again" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSessionGuard_RejectsBadTokens(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour)
	forged, _, _ := service.NewJWTService("other-secret", time.Hour).Issue("u1")
	expired := signClaims(t, "secret", time.Now().Add(-time.Minute))

	cases := map[string]string{
		"forged":    forged,
		"expired":   expired,
		"malformed": "not.a.jwt",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := performRequest(guardedRouter(jwtSvc), http.MethodGet, "/protected", nil, withCookie("token", token))
			body := decodeBody(t, rec)
			if body["success"] != false || body["message"] != "Token is not valid, Login Again" {
				t.Fatalf("unexpected body %v", body)
			}
			if body["code"] != string(kindUnauthenticated) {
				t.Fatalf("expected unauthenticated code, got %v", body["code"])
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "bearer abc")

	if got := tokenFromRequest(c, "token"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}

	c.Request.Header.Set("Authorization", "Basic abc")
	if got := tokenFromRequest(c, "token"); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func signClaims(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := service.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			Issuer:    "auth-api",
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

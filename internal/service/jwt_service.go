package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL es la vida del token de sesion y de su cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// JWTService emite y valida tokens de sesion.
type JWTService struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	revoked RevokedTokenStore
	now     func() time.Time
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &JWTService{
		secret:  []byte(secret),
		ttl:     ttl,
		issuer:  "auth-api",
		revoked: NewMemoryRevokedTokenStore(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func NewJWTServiceWithStore(secret string, ttl time.Duration, store RevokedTokenStore) *JWTService {
	svc := NewJWTService(secret, ttl)
	if store != nil {
		svc.revoked = store
	}
	return svc
}

func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token para userID que vence ttl despues de emitido.
func (s *JWTService) Issue(userID string) (string, time.Time, error) {
	if len(s.secret) == 0 || strings.TrimSpace(userID) == "" {
		return "", time.Time{}, ErrJWTInvalid
	}
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse valida firma, expiracion y revocacion, y devuelve los claims.
func (s *JWTService) Parse(tokenString string) (Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return Claims{}, err
	}
	if claims.ID != "" && s.revoked != nil {
		// Si el store falla se acepta el token; el logout es best-effort.
		if revoked, err := s.revoked.IsRevoked(claims.ID); err == nil && revoked {
			return Claims{}, ErrJWTInvalid
		}
	}
	return claims, nil
}

// Revoke invalida el token hasta su expiracion natural.
func (s *JWTService) Revoke(tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	if claims.ID == "" || s.revoked == nil {
		return ErrJWTInvalid
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(claims.ID, ttl)
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(claims.UserID) == "" || claims.Subject != claims.UserID {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

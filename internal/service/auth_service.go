package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"auth-api/internal/domain"
	"auth-api/internal/email"
	"auth-api/internal/repository"
)

const defaultMailTimeout = 10 * time.Second

// AuthService coordina registro, login, verificacion de email y reset de password.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	hasher      PasswordHasher
	tokens      *JWTService
	emailSender email.Sender
	otpLimiter  OTPRateLimiter
	mailTimeout time.Duration
	now         func() time.Time
}

type AuthOption func(*AuthService)

// WithMailTimeout acota cada envio de correo dentro del request.
func WithMailTimeout(d time.Duration) AuthOption {
	return func(s *AuthService) {
		if d > 0 {
			s.mailTimeout = d
		}
	}
}

func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens *JWTService,
	emailSender email.Sender,
	otpLimiter OTPRateLimiter,
	opts ...AuthOption,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(DefaultHashCost)
	}
	if otpLimiter == nil {
		otpLimiter = NewOTPRateLimiter(otpTTL, 3)
	}
	s := &AuthService{
		logger:      logger,
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		emailSender: emailSender,
		otpLimiter:  otpLimiter,
		mailTimeout: defaultMailTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type RegisterResult struct {
	Session
	WelcomeEmailSent bool
}

// Register crea la cuenta y emite la sesion. El correo de bienvenida no
// revierte el registro: si falla se informa en WelcomeEmailSent.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	username := strings.TrimSpace(input.Username)
	emailAddr := normalizeEmail(input.Email)
	if username == "" || emailAddr == "" || input.Password == "" {
		return RegisterResult{}, ErrMissingFields
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return RegisterResult{}, ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return RegisterResult{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	now := s.now()
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return RegisterResult{}, ErrUserExists
		}
		return RegisterResult{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return RegisterResult{}, err
	}

	result := RegisterResult{
		Session: Session{User: user, Token: token, ExpiresAt: expiresAt},
	}
	if err := s.send(ctx, email.WelcomeMessage(user.Email, user.Username)); err != nil {
		s.logger.Warn("send welcome email failed", zap.Error(err), zap.String("user_id", user.ID))
	} else {
		result.WelcomeEmailSent = true
	}
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (Session, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return Session{}, ErrMissingFields
	}

	user, err := s.findByEmail(ctx, emailAddr)
	if err != nil {
		return Session{}, err
	}
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revoca el token si se presento uno valido. Nunca falla.
func (s *AuthService) Logout(_ context.Context, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	if err := s.tokens.Revoke(token); err != nil && !errors.Is(err, ErrJWTInvalid) && !errors.Is(err, ErrJWTExpired) {
		s.logger.Warn("revoke session token failed", zap.Error(err))
	}
}

func (s *AuthService) SendVerifyOTP(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrMissingFields
	}
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}
	if !s.otpLimiter.Allow(ctx, "verify:"+user.ID) {
		return ErrRateLimited
	}

	code, hash, err := s.newOTP()
	if err != nil {
		return err
	}
	user.SetVerifyOTP(hash, s.now().Add(otpTTL))
	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.send(ctx, email.VerificationOTPMessage(user.Email, user.Username, code, otpTTL)); err != nil {
		s.logger.Warn("send verification otp failed", zap.Error(err), zap.String("user_id", user.ID))
		return fmt.Errorf("%w: %v", ErrEmailSendFailure, err)
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, userID, code string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || code == "" {
		return ErrMissingFields
	}
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}
	if user.VerifyOTPExpireAt == nil || s.now().After(*user.VerifyOTPExpireAt) {
		return ErrOTPExpired
	}
	ok, err := s.hasher.Verify(code, user.VerifyOTPHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPInvalid
	}

	user.IsAccountVerified = true
	user.ClearVerifyOTP()
	user.UpdatedAt = s.now()
	return s.users.Save(ctx, user)
}

func (s *AuthService) SendResetOTP(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrMissingFields
	}
	user, err := s.findByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if !s.otpLimiter.Allow(ctx, "reset:"+user.Email) {
		return ErrRateLimited
	}

	code, hash, err := s.newOTP()
	if err != nil {
		return err
	}
	user.SetResetOTP(hash, s.now().Add(otpTTL))
	user.UpdatedAt = s.now()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.send(ctx, email.ResetOTPMessage(user.Email, code, otpTTL)); err != nil {
		s.logger.Warn("send reset otp failed", zap.Error(err), zap.String("user_id", user.ID))
		return fmt.Errorf("%w: %v", ErrEmailSendFailure, err)
	}
	return nil
}

// ResetPassword compara el OTP tal cual llega, antes de mirar la expiracion.
func (s *AuthService) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || code == "" || newPassword == "" {
		return ErrMissingFields
	}
	user, err := s.findByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.ResetOTPHash == "" {
		return ErrOTPInvalid
	}
	ok, err := s.hasher.Verify(code, user.ResetOTPHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPInvalid
	}
	if user.ResetOTPExpireAt == nil || s.now().After(*user.ResetOTPExpireAt) {
		return ErrOTPExpired
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.ClearResetOTP()
	user.UpdatedAt = s.now()
	return s.users.Save(ctx, user)
}

func (s *AuthService) findByEmail(ctx context.Context, emailAddr string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) findByID(ctx context.Context, userID string) (domain.User, error) {
	return findUserByID(ctx, s.users, userID)
}

func (s *AuthService) newOTP() (string, string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", "", err
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return "", "", err
	}
	return code, hash, nil
}

func (s *AuthService) send(ctx context.Context, msg email.Message) error {
	if s.emailSender == nil {
		return errors.New("email sender not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()
	return s.emailSender.Send(ctx, msg)
}

// findUserByID descarta ids que no son UUID antes de ir a la base.
func findUserByID(ctx context.Context, users repository.UserRepository, userID string) (domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.User{}, ErrUserNotFound
	}
	user, err := users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/crypto/bcrypt"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/infrastructure/google"
)

// Delivery retry policy for outbound email/SMS: transient SMTP and SNS
// failures are retried a fixed number of times with a constant delay.
const (
	deliveryRetries = 3
	deliveryDelay   = 2 * time.Second
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginResult is what every successful login path returns: a signed bearer
// token and the sanitized user record.
type LoginResult struct {
	Token string
	User  *domain.User
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	MasterLogin(ctx context.Context, req LoginRequest) (*LoginResult, error)
	RequestLoginCode(ctx context.Context, email string) error
	VerifyLoginCode(ctx context.Context, email, code string) (*LoginResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	Get(ctx context.Context, email, purpose string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email, purpose string) error
}

type tokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// GoogleVerifier validates a Google ID token. Exported so wiring code can
// pass an untyped nil when Google login is not configured.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type service struct {
	userRepo         userStore
	verificationRepo verificationStore
	tokens           tokenSigner
	mailer           mailer
	smsSender        smsSender
	googleVerifier   GoogleVerifier
	codeTTL          time.Duration
}

type ServiceDeps struct {
	UserRepo         userStore
	VerificationRepo verificationStore
	Tokens           tokenSigner
	Mailer           mailer
	SMSSender        smsSender
	GoogleVerifier   GoogleVerifier
	CodeTTL          time.Duration
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.CodeTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		userRepo:         deps.UserRepo,
		verificationRepo: deps.VerificationRepo,
		tokens:           deps.Tokens,
		mailer:           deps.Mailer,
		smsSender:        deps.SMSSender,
		googleVerifier:   deps.GoogleVerifier,
		codeTTL:          ttl,
	}
}

// errInvalidCredentials is returned for unknown email, wrong password and
// wrong-role master login alike, so a caller cannot probe which accounts exist.
func errInvalidCredentials() error {
	return fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials()
	}
	if u.Status != domain.StatusActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issue(ctx, u)
}

func (s *service) MasterLogin(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	result, err := s.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.User.Role != domain.RoleMaster {
		return nil, errInvalidCredentials()
	}
	return result, nil
}

func (s *service) RequestLoginCode(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// No code is generated or persisted for unknown emails.
		return fmt.Errorf("no account for this email: %w", domain.ErrNotFound)
	}
	if u.Status != domain.StatusActive {
		return fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}

	code, err := newLoginCode()
	if err != nil {
		return err
	}
	v := &domain.VerificationCode{
		Email:     u.Email,
		Purpose:   domain.PurposeLogin,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return err
	}

	// The code goes out of band only. It is never echoed in the response.
	body := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes()))
	if err := s.deliverEmail(ctx, u.Email, "Your login code", body); err != nil {
		return fmt.Errorf("deliver login code: %w", err)
	}
	if u.Phone != nil && s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, *u.Phone, body); err != nil {
			slog.Warn("sms copy of login code failed", "user_id", u.UserID, "err", err)
		}
	}
	return nil
}

func (s *service) VerifyLoginCode(ctx context.Context, email, code string) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("code not found or expired: %w", domain.ErrNotFound)
	}
	v, err := s.verificationRepo.Get(ctx, u.Email, domain.PurposeLogin)
	if err != nil {
		return nil, fmt.Errorf("code not found or expired: %w", domain.ErrNotFound)
	}
	if v.ExpiresAt < time.Now().Unix() {
		if err := s.verificationRepo.Delete(ctx, u.Email, domain.PurposeLogin); err != nil {
			slog.Warn("failed to delete expired login code", "email", u.Email, "err", err)
		}
		return nil, fmt.Errorf("code not found or expired: %w", domain.ErrNotFound)
	}
	if v.Code != code {
		// The stored code survives a mismatch so the user can retry within the TTL.
		return nil, fmt.Errorf("invalid code: %w", domain.ErrUnauthorized)
	}
	// Single use: consume before issuing the token.
	if err := s.verificationRepo.Delete(ctx, u.Email, domain.PurposeLogin); err != nil {
		slog.Warn("failed to delete consumed login code", "email", u.Email, "err", err)
	}
	if u.Status != domain.StatusActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issue(ctx, u)
}

func (s *service) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.googleVerifier == nil {
		return nil, fmt.Errorf("google login not configured: %w", domain.ErrBadRequest)
	}
	p, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !p.EmailVerified {
		return nil, errInvalidCredentials()
	}
	// Google sign-in does not provision accounts; the email must already exist.
	u, err := s.userRepo.GetByEmail(ctx, p.Email)
	if err != nil {
		return nil, errInvalidCredentials()
	}
	if u.Status != domain.StatusActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if u.GoogleSub == "" {
		if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
			"google_sub":    p.Sub,
			"auth_provider": "google",
		}); err != nil {
			slog.Warn("failed to link google account", "user_id", u.UserID, "err", err)
		}
	}
	return s.issue(ctx, u)
}

// issue signs a bearer token and stamps last_login. A failed stamp is logged,
// not surfaced: the login itself already succeeded.
func (s *service) issue(ctx context.Context, u *domain.User) (*LoginResult, error) {
	token, err := s.tokens.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{"last_login": now.Format(time.RFC3339)}); err != nil {
		slog.Warn("failed to update last_login", "user_id", u.UserID, "err", err)
	}
	u.LastLogin = &now
	return &LoginResult{Token: token, User: u}, nil
}

func (s *service) deliverEmail(ctx context.Context, to, subject, body string) error {
	b := retry.WithMaxRetries(deliveryRetries, retry.NewConstant(deliveryDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.mailer.SendEmail(to, subject, body); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// newLoginCode generates a 6-digit numeric code in [100000, 999999].
func newLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

package service

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/security"
)

const minPasswordLength = 6

type authService struct {
	userRepo     repository.AuthUserRepository
	codeRepo     repository.AuthCodeRepository
	profileRepo  repository.ProfileRepository
	tokenManager security.TokenManager
	emailSvc     EmailService
	publicURL    string
	codeTTL      time.Duration
	now          func() time.Time
}

func NewAuthService(
	userRepo repository.AuthUserRepository,
	codeRepo repository.AuthCodeRepository,
	profileRepo repository.ProfileRepository,
	tokenManager security.TokenManager,
	emailSvc EmailService,
	publicURL string,
	codeTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		profileRepo:  profileRepo,
		tokenManager: tokenManager,
		emailSvc:     emailSvc,
		publicURL:    strings.TrimRight(publicURL, "/"),
		codeTTL:      codeTTL,
		now:          time.Now,
	}
}

func validateSignUp(in SignUpInput) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil || addr.Name != "" {
		return "", domain.ValidationError{Field: "email", Msg: "please enter a valid email address"}
	}
	if in.Password != in.ConfirmPassword {
		return "", domain.ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
	}
	if len(in.Password) < minPasswordLength {
		return "", domain.ValidationError{Field: "password", Msg: fmt.Sprintf("password must be at least %d characters long", minPasswordLength)}
	}
	return strings.ToLower(addr.Address), nil
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*domain.AuthUser, error) {
	logger.EnterMethod(ctx, "authService.SignUp", "email", in.Email)

	email, err := validateSignUp(in)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.SignUp", err)
		return nil, err
	}
	accountType, err := normalizeAccountType(in.AccountType)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.SignUp", err)
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.SignUp", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.AuthUser{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleCustomer,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if domain.IsConflict(err) {
			err = domain.ConflictError{Resource: "user", Msg: "an account with this email already exists, please try signing in instead", Err: err}
		}
		logger.ExitMethodWithError(ctx, "authService.SignUp", err)
		return nil, err
	}

	profile := &domain.Profile{
		ID:          user.ID,
		FullName:    strings.TrimSpace(in.FullName),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Phone:       strings.TrimSpace(in.Phone),
		AccountType: accountType,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.discardUser(ctx, user.ID)
		logger.ExitMethodWithError(ctx, "authService.SignUp", err, "reason", "profile")
		return nil, err
	}

	code := &domain.AuthCode{
		Code:      uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().UTC().Add(s.codeTTL),
	}
	if err := s.codeRepo.Create(ctx, code); err != nil {
		s.discardUser(ctx, user.ID)
		logger.ExitMethodWithError(ctx, "authService.SignUp", err, "reason", "auth code")
		return nil, err
	}
	if err := s.emailSvc.SendSignUpConfirmation(ctx, user.Email, profile.FullName, s.callbackURL(code.Code, in.Next)); err != nil {
		logger.WarnContext(ctx, "Failed to send confirmation email", "user_id", user.ID, "error", err)
	}

	logger.ExitMethod(ctx, "authService.SignUp", "userID", user.ID)
	return user, nil
}

// callbackURL only forwards local paths as next.
func (s *authService) callbackURL(code, next string) string {
	q := url.Values{}
	q.Set("code", code)
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		q.Set("next", next)
	}
	return s.publicURL + "/auth/callback?" + q.Encode()
}

func (s *authService) ExchangeCodeForSession(ctx context.Context, code string) (*domain.Session, error) {
	logger.EnterMethod(ctx, "authService.ExchangeCodeForSession")

	if strings.TrimSpace(code) == "" {
		logger.ExitMethodWithError(ctx, "authService.ExchangeCodeForSession", domain.ErrInvalidAuthCode)
		return nil, domain.ErrInvalidAuthCode
	}
	now := s.now().UTC()
	ac, err := s.codeRepo.Consume(ctx, code, now)
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.ErrInvalidAuthCode
		}
		logger.ExitMethodWithError(ctx, "authService.ExchangeCodeForSession", err)
		return nil, err
	}
	if err := s.userRepo.MarkEmailConfirmed(ctx, ac.UserID, now); err != nil {
		logger.ExitMethodWithError(ctx, "authService.ExchangeCodeForSession", err)
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, ac.UserID)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.ExchangeCodeForSession", err)
		return nil, err
	}

	session, err := s.issueSession(user)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.ExchangeCodeForSession", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "authService.ExchangeCodeForSession", "userID", user.ID)
	return session, nil
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	logger.EnterMethod(ctx, "authService.SignInWithPassword", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.ErrInvalidCredentials
		}
		logger.ExitMethodWithError(ctx, "authService.SignInWithPassword", err)
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethodWithError(ctx, "authService.SignInWithPassword", domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Confirmed() {
		logger.ExitMethodWithError(ctx, "authService.SignInWithPassword", domain.ErrEmailNotConfirmed)
		return nil, domain.ErrEmailNotConfirmed
	}

	session, err := s.issueSession(user)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.SignInWithPassword", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "authService.SignInWithPassword", "userID", user.ID)
	return session, nil
}

// discardUser removes a half-created account so the email can sign up again.
func (s *authService) discardUser(ctx context.Context, userID string) {
	if err := s.userRepo.Delete(context.WithoutCancel(ctx), userID); err != nil {
		logger.ErrorContext(ctx, "Failed to remove incomplete account", "user_id", userID, "error", err)
	}
}

func (s *authService) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	logger.EnterMethod(ctx, "authService.RefreshSession")

	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		logger.ExitMethodWithError(ctx, "authService.RefreshSession", domain.AuthRequiredError{}, "tokenError", err)
		return nil, domain.AuthRequiredError{}
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.AuthRequiredError{}
		}
		logger.ExitMethodWithError(ctx, "authService.RefreshSession", err)
		return nil, err
	}
	if !user.Confirmed() {
		logger.ExitMethodWithError(ctx, "authService.RefreshSession", domain.ErrEmailNotConfirmed)
		return nil, domain.ErrEmailNotConfirmed
	}

	session, err := s.issueSession(user)
	if err != nil {
		logger.ExitMethodWithError(ctx, "authService.RefreshSession", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "authService.RefreshSession", "userID", user.ID)
	return session, nil
}

func (s *authService) issueSession(user *domain.AuthUser) (*domain.Session, error) {
	access, expiresAt, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &domain.Session{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) GetUser(ctx context.Context, accessToken string) (*domain.AuthUser, error) {
	claims, err := s.tokenManager.ValidateToken(accessToken)
	if err != nil {
		logger.DebugContext(ctx, "Rejected token", "error", err)
		return nil, domain.AuthRequiredError{}
	}
	if claims.Type != security.TokenTypeAccess {
		return nil, domain.AuthRequiredError{}
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.AuthRequiredError{}
		}
		return nil, err
	}
	return user, nil
}

// SignOut has nothing to revoke server side; tokens expire on their own and
// the caller drops its cookie.
func (s *authService) SignOut(ctx context.Context, accessToken string) error {
	if claims, err := s.tokenManager.ValidateToken(accessToken); err == nil {
		logger.InfoContext(ctx, "User signed out", "user_id", claims.UserID)
	}
	return nil
}

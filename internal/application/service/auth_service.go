package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/oauth"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	googleOAuth *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		googleOAuth: googleOAuth,
	}
}

// IsSessionActive reports whether the session behind a JTI is live.
// Implements the middleware SessionChecker interface.
func (s *AuthService) IsSessionActive(ctx context.Context, jti string) (bool, error) {
	session, err := s.sessionRepo.GetByJTI(ctx, jti)
	if err != nil {
		return false, err
	}
	if session == nil {
		// Tokens minted before session tracking still work.
		return true, nil
	}
	return session.Active && session.ExpiresAt.After(time.Now()), nil
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user, records a session, and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// issueTokens mints the token pair and records the login session
func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	user, err := s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	roles := make([]string, 0)
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	permissions := user.GetPermissions()

	accessToken, jti, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.FullName, roles, permissions)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		UserID:     user.ID,
		Role:       user.PrimaryRole(),
		JTI:        jti,
		Active:     true,
		LoginAt:    now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.jwtManager.AccessTokenExpiry()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the session behind the presented token
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return s.sessionRepo.Deactivate(ctx, jti)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Register creates a new customer account with the default user role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: hashedPassword,
		Provider: "local",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role, err := s.roleRepo.GetByName(ctx, "user"); err == nil && role != nil {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(ctx, user)
}

// GoogleAuthURL returns the Google consent URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// GoogleCallback completes the OAuth flow: it exchanges the code,
// provisions the account on first login, and issues tokens.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return nil, oauth.ErrOAuthNotConfigured
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		providerID := info.ID
		photo := info.Picture
		user = &entity.User{
			FullName:   info.FullName(),
			Email:      info.Email,
			Provider:   "google",
			ProviderID: &providerID,
			Photo:      &photo,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		if role, err := s.roleRepo.GetByName(ctx, "user"); err == nil && role != nil {
			if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
				return nil, err
			}
		}
	}

	return s.issueTokens(ctx, user)
}

// GoogleRedirectURLs returns the frontend URLs for OAuth redirects
func (s *AuthService) GoogleRedirectURLs() (success, failure string) {
	if s.googleOAuth == nil {
		return "", ""
	}
	return s.googleOAuth.GetFrontendSuccessURL(), s.googleOAuth.GetFrontendErrorURL()
}

// NewOAuthState generates an opaque state parameter
func NewOAuthState() string {
	return uuid.New().String()
}

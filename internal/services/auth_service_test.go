package services_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"finflow/internal/dto"
	"finflow/internal/models"
	"finflow/internal/repositories"
	"finflow/internal/repositories/repository_mocks"
	"finflow/internal/services"
	"finflow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl                 *gomock.Controller
	userRepo             *repository_mocks.MockUserRepositoryInterface
	refreshTokenRepo     *repository_mocks.MockRefreshTokenRepositoryInterface
	auditRepo            *repository_mocks.MockAuditLogRepositoryInterface
	blacklistedTokenRepo *repository_mocks.MockBlacklistedTokenRepositoryInterface
	passwordService      *service_mocks.MockPasswordServiceInterface
	tokenService         *service_mocks.MockTokenServiceInterface
	metrics              *service_mocks.MockMetricsRecorderInterface
	authService          services.AuthServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.refreshTokenRepo = repository_mocks.NewMockRefreshTokenRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.blacklistedTokenRepo = repository_mocks.NewMockBlacklistedTokenRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.authService = services.NewAuthService(s.userRepo, s.refreshTokenRepo, s.auditRepo, s.blacklistedTokenRepo, s.passwordService, s.tokenService, s.metrics, slog.Default())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_SuccessfulRegistration() {
	req := &dto.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "SecurePass123",
		Role:     models.RolePersonal,
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.userRepo.EXPECT().GetByUsername(req.Username).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword(req.Password).Return("hashed_password", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.NotNil(user)
	s.Equal(req.Email, user.Email)
	s.Equal(req.Username, user.Username)
	s.Equal(models.RolePersonal, user.Role)
	s.NotEmpty(user.PasswordHash)
	s.NotEqual(req.Password, user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestRegister_EmailAlreadyExists() {
	req := &dto.RegisterRequest{
		Username: "janesmith",
		Email:    "existing@example.com",
		Password: "SecurePass123",
		Role:     models.RolePersonal,
	}

	existingUser := &models.User{Email: req.Email}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(existingUser, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(services.ErrUserAlreadyExists, err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_UsernameTaken() {
	req := &dto.RegisterRequest{
		Username: "taken",
		Email:    "fresh@example.com",
		Password: "SecurePass123",
		Role:     models.RoleBusiness,
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, repositories.ErrUserNotFound).Times(1)
	s.userRepo.EXPECT().GetByUsername(req.Username).Return(&models.User{Username: req.Username}, nil).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")
	s.Equal(services.ErrUsernameTaken, err)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestLogin_SuccessfulLogin() {
	email := "test@example.com"
	password := "SecurePass123"
	userID := uuid.New()

	user := &models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: "hashed_password",
		Role:         models.RolePersonal,
	}

	s.userRepo.EXPECT().GetByEmail(email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword(password, user.PasswordHash).Return(true).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("access_token", time.Now().Add(time.Hour), nil).Times(1)
	s.tokenService.EXPECT().GenerateRefreshToken(userID).Return("refresh_token", time.Now().Add(7*24*time.Hour), nil).Times(1)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: email, Password: password}, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.NotNil(tokens)
	s.Equal("access_token", tokens.AccessToken)
	s.Equal("refresh_token", tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
	s.NotNil(user.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLogin_InvalidPassword() {
	email := "test@example.com"
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hashed_password",
	}

	s.userRepo.EXPECT().GetByEmail(email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("wrong", user.PasswordHash).Return(false).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: email, Password: "wrong"}, "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrInvalidCredentials, err)
	s.Nil(tokens)
	s.Equal(1, user.FailedLoginAttempts)
}

func (s *AuthServiceTestSuite) TestLogin_LockoutAfterMaxAttempts() {
	email := "test@example.com"
	user := &models.User{
		ID:                  uuid.New(),
		Email:               email,
		PasswordHash:        "hashed_password",
		FailedLoginAttempts: models.MaxFailedLoginAttempts - 1,
	}

	s.userRepo.EXPECT().GetByEmail(email).Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("wrong", user.PasswordHash).Return(false).Times(1)
	s.userRepo.EXPECT().UpdateFailedLoginAttempts(user).Return(nil).Times(1)
	// account_locked + failed_login audit entries
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: email, Password: "wrong"}, "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrInvalidCredentials, err)
	s.Nil(tokens)
	s.True(user.IsLocked())
}

func (s *AuthServiceTestSuite) TestLogin_AccountLocked() {
	email := "locked@example.com"
	now := time.Now()
	user := &models.User{
		ID:                  uuid.New(),
		Email:               email,
		PasswordHash:        "hashed_password",
		FailedLoginAttempts: models.MaxFailedLoginAttempts,
		LockedAt:            &now,
	}

	s.userRepo.EXPECT().GetByEmail(email).Return(user, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: email, Password: "whatever"}, "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrAccountLocked, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_UserNotFound() {
	s.userRepo.EXPECT().GetByEmail("ghost@example.com").Return(nil, repositories.ErrUserNotFound).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "x"}, "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrInvalidCredentials, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Success() {
	userID := uuid.New()
	refreshToken := "valid_refresh_token"
	claims := &models.CustomClaims{UserID: userID.String()}
	user := &models.User{ID: userID, Email: "test@example.com"}

	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	s.tokenService.EXPECT().ValidateRefreshToken(refreshToken).Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)
	s.userRepo.EXPECT().GetByID(userID).Return(user, nil).Times(1)
	s.refreshTokenRepo.EXPECT().Revoke(storedToken.ID).Return(nil).Times(1)
	s.tokenService.EXPECT().GenerateAccessToken(user).Return("new_access", time.Now().Add(time.Hour), nil).Times(1)
	s.tokenService.EXPECT().GenerateRefreshToken(userID).Return("new_refresh", time.Now().Add(7*24*time.Hour), nil).Times(1)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.RefreshTokens(refreshToken, "192.168.1.1", "Mozilla/5.0")

	s.NoError(err)
	s.Equal("new_access", tokens.AccessToken)
	s.Equal("new_refresh", tokens.RefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_InvalidToken() {
	s.tokenService.EXPECT().ValidateRefreshToken("garbage").Return(nil, services.ErrInvalidToken).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.RefreshTokens("garbage", "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrInvalidRefreshToken, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RevokedToken() {
	userID := uuid.New()
	refreshToken := "revoked_token"
	claims := &models.CustomClaims{UserID: userID.String()}
	revokedAt := time.Now().Add(-time.Minute)

	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}

	s.tokenService.EXPECT().ValidateRefreshToken(refreshToken).Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	tokens, err := s.authService.RefreshTokens(refreshToken, "192.168.1.1", "Mozilla/5.0")

	s.Equal(services.ErrInvalidRefreshToken, err)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogout_Success() {
	userID := uuid.New()
	claims := &models.CustomClaims{UserID: userID.String()}
	claims.ID = "token_jti"

	s.tokenService.EXPECT().ValidateAccessToken("access_token").Return(claims, nil).Times(1)
	s.tokenService.EXPECT().GetTokenExpiry("access_token").Return(time.Now().Add(time.Hour), nil).Times(1)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(token *models.BlacklistedToken) error {
		s.Equal("token_jti", token.JTI)
		s.Equal(userID, token.UserID)
		return nil
	}).Times(1)
	s.refreshTokenRepo.EXPECT().RevokeAllForUser(userID).Return(nil).Times(1)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	err := s.authService.Logout("access_token", "192.168.1.1", "Mozilla/5.0")
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestLogout_ExpiredTokenStillBlacklisted() {
	s.tokenService.EXPECT().ValidateAccessToken("expired_token").Return(nil, services.ErrExpiredToken).Times(1)
	s.tokenService.EXPECT().GetJTI("expired_token").Return("expired_jti", nil).Times(1)
	s.blacklistedTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(token *models.BlacklistedToken) error {
		s.Equal("expired_jti", token.JTI)
		return nil
	}).Times(1)

	err := s.authService.Logout("expired_token", "192.168.1.1", "Mozilla/5.0")
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestGetProfile_Success() {
	userID := uuid.New()
	user := &models.User{ID: userID, Email: "me@example.com", Username: "me"}

	s.userRepo.EXPECT().GetByID(userID).Return(user, nil).Times(1)

	got, err := s.authService.GetProfile(userID)
	s.NoError(err)
	s.Equal(user, got)
}

func (s *AuthServiceTestSuite) TestGetProfile_NotFound() {
	userID := uuid.New()

	s.userRepo.EXPECT().GetByID(userID).Return(nil, repositories.ErrUserNotFound).Times(1)

	got, err := s.authService.GetProfile(userID)
	s.Equal(services.ErrUserNotFound, err)
	s.Nil(got)
}

func (s *AuthServiceTestSuite) TestRegister_RepositoryError() {
	req := &dto.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "SecurePass123",
		Role:     models.RolePersonal,
	}

	s.userRepo.EXPECT().GetByEmail(req.Email).Return(nil, errors.New("connection refused")).Times(1)

	user, err := s.authService.Register(req, "192.168.1.1", "Mozilla/5.0")
	s.Error(err)
	s.Contains(err.Error(), "failed to check existing user")
	s.Nil(user)
}

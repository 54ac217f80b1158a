package service

import (
	"context"
	"errors"

	"college-qa/internal/dto"
	"college-qa/pkg/auth"
	"college-qa/pkg/config"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues tokens for the single configured administrator.
type AuthService struct {
	admin      config.AdminConfig
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(admin config.AdminConfig, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	if admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}
	return &AuthService{
		admin:      admin,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Enabled reports whether an admin password hash is configured.
func (s *AuthService) Enabled() bool {
	return s.admin.PasswordHash != ""
}

func (s *AuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Username != s.admin.Username || !auth.CheckPasswordHash(req.Password, s.admin.PasswordHash) {
		s.logger.Warn("Failed admin login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	return s.issue(s.admin.Username)
}

func (s *AuthService) RefreshToken(_ context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.Username != s.admin.Username || claims.Role != auth.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return s.issue(claims.Username)
}

func (s *AuthService) issue(username string) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(username, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(username, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		Username:     username,
	}, nil
}

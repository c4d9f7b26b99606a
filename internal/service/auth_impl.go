package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt-server/internal/config"
	"prompt-server/internal/interfaces"
	"prompt-server/internal/models"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo  interfaces.UserRepository
	tokenRepo interfaces.TokenRepository
	cfg       *config.Config
	logger    *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo interfaces.UserRepository, tokenRepo interfaces.TokenRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates a new user account.
func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	logFields := []zap.Field{zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if name == "" || password == "" {
		s.logger.Warn("Registration attempt with empty name or password", logFields...)
		return nil, models.ErrInvalidInput
	}

	hashedPassword, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, models.ErrEmailAlreadyExists) {
			s.logger.Error("Failed to create user via repository", append(logFields, zap.Error(err))...)
		}
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return user, nil
}

// Login authenticates a user and returns a fresh token pair.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login attempt", zap.String("email", email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("email", email))
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, s.cfg.PasswordPepper, user.PasswordHash) {
		s.logger.Warn("Login failed: invalid password", zap.String("email", email), zap.String("userID", user.ID.String()))
		return nil, models.ErrInvalidCredentials
	}

	td, err := s.createTokenPair(user.ID)
	if err != nil {
		s.logger.Error("Failed to create token pair", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, fmt.Errorf("failed to create token pair: %w", err)
	}

	if err := s.tokenRepo.SetToken(ctx, user.ID, td); err != nil {
		return nil, fmt.Errorf("failed to store token details: %w", err)
	}

	s.logger.Info("Login successful", zap.String("userID", user.ID.String()))
	return td, nil
}

// Logout revokes the caller's access token and, when the refresh token is
// supplied, its refresh counterpart.
func (s *authServiceImpl) Logout(ctx context.Context, accessUUID, refreshToken string) error {
	refreshUUID := ""
	if refreshToken != "" {
		// A malformed refresh token does not block logout of the access half.
		if claims, err := s.parseToken(refreshToken); err == nil && claims.TokenType == TokenTypeRefresh {
			refreshUUID = claims.ID
		}
	}

	deleted, err := s.tokenRepo.DeleteTokens(ctx, accessUUID, refreshUUID)
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	if deleted == 0 {
		return models.ErrTokenNotFound
	}
	s.logger.Info("Logout successful", zap.Int64("tokensRevoked", deleted))
	return nil
}

// Refresh rotates a refresh token: the old pair is revoked and a new pair
// is issued.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		s.logger.Warn("Refresh attempted with a non-refresh token", zap.String("tokenType", claims.TokenType))
		return nil, models.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetUserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			return nil, models.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if userID != claims.UserID {
		s.logger.Warn("Refresh token user mismatch", zap.String("claims", claims.UserID.String()), zap.String("stored", userID.String()))
		return nil, models.ErrTokenInvalid
	}

	if _, err := s.tokenRepo.DeleteTokens(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	td, err := s.createTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create token pair: %w", err)
	}
	if err := s.tokenRepo.SetToken(ctx, userID, td); err != nil {
		return nil, fmt.Errorf("failed to store token details: %w", err)
	}

	s.logger.Info("Tokens refreshed", zap.String("userID", userID.String()))
	return td, nil
}

// VerifyAccessToken validates an access token's signature, expiry and
// revocation state and returns its claims.
func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, models.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetUserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			return nil, models.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to look up access token: %w", err)
	}
	if userID != claims.UserID {
		return nil, models.ErrTokenInvalid
	}

	return claims, nil
}

// UpdatePassword re-hashes and stores a new password for the user.
func (s *authServiceImpl) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if newPassword == "" {
		return models.ErrInvalidInput
	}
	hashed, err := hashPassword(newPassword, s.cfg.PasswordPepper)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.userRepo.UpdateUser(ctx, userID, models.UserUpdate{Password: &hashed}); err != nil {
		return err
	}
	s.logger.Info("Password updated", zap.String("userID", userID.String()))
	return nil
}

func (s *authServiceImpl) createTokenPair(userID uuid.UUID) (*models.TokenDetails, error) {
	now := time.Now()
	td := &models.TokenDetails{
		AccessUUID:  uuid.NewString(),
		RefreshUUID: uuid.NewString(),
		AtExpires:   now.Add(s.cfg.AccessTokenTTL).Unix(),
		RtExpires:   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	accessClaims := &Claims{
		UserID:    userID,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.AccessUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.AtExpires, 0)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	td.AccessToken = accessToken

	refreshClaims := &Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.RefreshUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.RtExpires, 0)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	td.RefreshToken = refreshToken

	return td, nil
}

func (s *authServiceImpl) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

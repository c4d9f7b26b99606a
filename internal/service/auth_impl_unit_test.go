package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prompt-server/internal/config"
	"prompt-server/internal/interfaces/mocks"
	"prompt-server/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "mysecretpassword"
	pepper := "test-pepper-for-unit-tests"

	hashedPassword, err := hashPassword(password, pepper)
	require.NoError(t, err, "hashPassword should not return an error")
	require.NotEmpty(t, hashedPassword, "hashPassword should return a non-empty string")
	assert.NotEqual(t, password, hashedPassword, "Hashed password should not be equal to the original password")

	assert.True(t, checkPasswordHash(password, pepper, hashedPassword), "checkPasswordHash should return true for correct password and pepper")
	assert.False(t, checkPasswordHash("wrongpassword", pepper, hashedPassword), "checkPasswordHash should return false for incorrect password")
	assert.False(t, checkPasswordHash(password, "another-pepper", hashedPassword), "checkPasswordHash should return false for incorrect pepper")
	assert.False(t, checkPasswordHash(password, pepper, "not-a-bcrypt-hash"), "checkPasswordHash should return false for invalid hash format")

	hashedEmpty, err := hashPassword("", pepper)
	require.NoError(t, err, "hashPassword should handle empty password")
	assert.True(t, checkPasswordHash("", pepper, hashedEmpty), "checkPasswordHash should verify empty password")
	assert.False(t, checkPasswordHash("nonempty", pepper, hashedEmpty), "checkPasswordHash should not verify non-empty password against empty hash")
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		PasswordPepper:  "test-pepper",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestAuthService(t *testing.T) (AuthService, *mocks.MockUserRepository, *mocks.MockTokenRepository) {
	t.Helper()
	userRepo := mocks.NewMockUserRepository(t)
	tokenRepo := mocks.NewMockTokenRepository(t)
	svc := NewAuthService(userRepo, tokenRepo, testAuthConfig(), zap.NewNop())
	return svc, userRepo, tokenRepo
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)

	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "alice@example.com" &&
			u.Name == "Alice" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3cretpass"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = uuid.New()
	}).Return(nil)

	user, err := svc.Register(context.Background(), " Alice ", "  ALICE@Example.COM ", "s3cretpass")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, checkPasswordHash("s3cretpass", "test-pepper", user.PasswordHash))
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "Alice", "not-an-email", "s3cretpass")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "", "alice@example.com", "s3cretpass")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "Alice", "alice@example.com", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin_IssuesAndStoresTokenPair(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.MatchedBy(func(td *models.TokenDetails) bool {
		return td.AccessToken != "" && td.RefreshToken != "" && td.AccessUUID != td.RefreshUUID
	})).Return(nil)

	td, err := svc.Login(context.Background(), "Alice@Example.com", "s3cretpass")

	require.NoError(t, err)
	require.NotNil(t, td)
	assert.NotEqual(t, td.AccessToken, td.RefreshToken)

	// The issued access token must verify against the same service.
	tokenRepo.On("GetUserID", mock.Anything, td.AccessUUID).Return(user.ID, nil)
	claims, err := svc.VerifyAccessToken(context.Background(), td.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	hash, err := hashPassword("rightpassword", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	userRepo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrUserNotFound)

	_, errWrongPass := svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	_, errNoUser := svc.Login(context.Background(), "ghost@example.com", "whatever")

	assert.ErrorIs(t, errWrongPass, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, models.ErrInvalidCredentials)
}

func TestVerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.Anything).Return(nil)

	td, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), td.RefreshToken)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestVerifyAccessToken_RevokedTokenRejected(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.Anything).Return(nil)

	td, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	tokenRepo.On("GetUserID", mock.Anything, td.AccessUUID).Return(uuid.Nil, models.ErrTokenNotFound)

	_, err = svc.VerifyAccessToken(context.Background(), td.AccessToken)
	assert.ErrorIs(t, err, models.ErrTokenNotFound)
}

func TestVerifyAccessToken_MalformedToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.VerifyAccessToken(context.Background(), "definitely.not.a.jwt")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestRefresh_RotatesTokenPair(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.Anything).Return(nil)

	td, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	tokenRepo.On("GetUserID", mock.Anything, td.RefreshUUID).Return(user.ID, nil)
	tokenRepo.On("DeleteTokens", mock.Anything, td.RefreshUUID).Return(int64(1), nil)

	newTD, err := svc.Refresh(context.Background(), td.RefreshToken)

	require.NoError(t, err)
	assert.NotEqual(t, td.RefreshUUID, newTD.RefreshUUID, "refresh must rotate the refresh identifier")
	assert.NotEqual(t, td.AccessUUID, newTD.AccessUUID)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.Anything).Return(nil)

	td, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), td.AccessToken)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestLogout_RevokesBothTokenHalves(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService(t)
	hash, err := hashPassword("s3cretpass", "test-pepper")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}

	userRepo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	tokenRepo.On("SetToken", mock.Anything, user.ID, mock.Anything).Return(nil)

	td, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	tokenRepo.On("DeleteTokens", mock.Anything, td.AccessUUID, td.RefreshUUID).Return(int64(2), nil)

	require.NoError(t, svc.Logout(context.Background(), td.AccessUUID, td.RefreshToken))
	tokenRepo.AssertExpectations(t)
}

func TestLogout_MalformedRefreshTokenStillRevokesAccess(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService(t)
	accessUUID := uuid.NewString()

	tokenRepo.On("DeleteTokens", mock.Anything, accessUUID, "").Return(int64(1), nil)

	require.NoError(t, svc.Logout(context.Background(), accessUUID, "garbage-token"))
}

func TestLogout_AlreadyRevoked(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService(t)
	accessUUID := uuid.NewString()

	tokenRepo.On("DeleteTokens", mock.Anything, accessUUID, "").Return(int64(0), nil)

	err := svc.Logout(context.Background(), accessUUID, "")
	assert.ErrorIs(t, err, models.ErrTokenNotFound)
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"
)

// =====================
// Auth mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

type validatorStub struct{}

func (validatorStub) ValidateRegister(ctx context.Context, email, password string) error { return nil }
func (validatorStub) ValidateLogin(ctx context.Context, email, password string) error    { return nil }
func (validatorStub) ValidateRefresh(ctx context.Context, refreshToken, userAgent string) error {
	return nil
}
func (validatorStub) ValidateLogout(ctx context.Context) error { return nil }

type limiterStub struct{ allow bool }

func (l limiterStub) Allow(ctx context.Context, key string, window time.Duration, limit int64) (bool, error) {
	return l.allow, nil
}

func authConfig() config.Config {
	return config.Config{JWTSecret: "unit-test-secret"}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// =====================
// Login
// =====================

func TestAuthLogin_Success(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	user := &model.User{
		ID:           1,
		Email:        "agent@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         model.RoleUser,
		IsActive:     true,
	}

	users.On("FindByEmail", mock.Anything, "agent@example.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	rts.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.UserID == int64(1) && rt.TokenHash != "" && rt.ExpiresAt.After(time.Now())
	})).Return(nil)

	res, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "agent@example.com",
		Password: "password123",
	}, "ua-test", "127.0.0.1")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RefreshTokenPlain)
	assert.NotEmpty(t, res.CsrfTokenPlain)
	assert.Equal(t, "agent@example.com", res.Body.User.Email)

	// the access token must carry sub and role
	token, err := jwt.Parse(res.Body.Token.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("unit-test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "USER", claims["role"])

	rts.AssertExpectations(t)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	users.On("FindByEmail", mock.Anything, "agent@example.com").Return(&model.User{
		ID:           1,
		Email:        "agent@example.com",
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "agent@example.com",
		Password: "wrong",
	}, "ua", "ip")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthLogin_RateLimited(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: false})

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "agent@example.com",
		Password: "password123",
	}, "ua", "ip")
	assert.ErrorIs(t, err, usecase.ErrRateLimited)

	// credentials are never checked once the budget is exhausted
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthLogin_InactiveUser(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	users.On("FindByEmail", mock.Anything, "agent@example.com").Return(&model.User{
		ID:           1,
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "agent@example.com",
		Password: "password123",
	}, "ua", "ip")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

// =====================
// Refresh
// =====================

func TestAuthRefresh_ReplayedTokenDropsSessions(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	used := time.Now().Add(-time.Minute)
	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}, nil)
	rts.On("DeleteAllByUserID", mock.Anything, int64(1)).Return(nil)

	_, err := uc.Refresh(context.Background(), "some-refresh-token", "ua")
	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)

	rts.AssertExpectations(t)
}

func TestAuthRefresh_ExpiredTokenRejected(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-2",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	rts.On("DeleteByID", mock.Anything, "rt-2").Return(nil)

	_, err := uc.Refresh(context.Background(), "stale-refresh-token", "ua")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthRefresh_RotatesToken(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "rt-3",
		UserID:    1,
		UserAgent: "ua",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID:       1,
		Role:     model.RoleUser,
		IsActive: true,
	}, nil)
	rts.On("MarkUsed", mock.Anything, "rt-3", mock.Anything).Return(nil)
	rts.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.ID != "rt-3" && rt.UserID == int64(1)
	})).Return(nil)

	res, err := uc.Refresh(context.Background(), "valid-refresh-token", "ua")
	require.NoError(t, err)

	assert.NotEmpty(t, res.Body.AccessToken)
	assert.NotEmpty(t, res.RefreshTokenPlain)
	rts.AssertExpectations(t)
}

// =====================
// Register
// =====================

func TestAuthRegister_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	uc := usecase.NewAuthUsecase(authConfig(), users, rts, validatorStub{}, limiterStub{allow: true})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		if u.PasswordHash == "password123" || u.PasswordHash == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		Name:     "New Agent",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", out.User.Email)
	users.AssertExpectations(t)
}

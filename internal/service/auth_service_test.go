package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"openblog/internal/apperr"
	"openblog/internal/config"
	"openblog/internal/models"
)

func newAuthService(userRepo *MockUserRepository) AuthService {
	return NewAuthService(userRepo, &config.Config{
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешная регистрация с хешированием пароля", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("CheckUniqueness", ctx, "alice@example.com", "alice").
			Return(models.UniquenessReport{}, nil)
		userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			// в хранилище уходит только хэш
			return u.PasswordHash != "password123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
		})).Return(nil)

		user, err := svc.Register(ctx, RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		userRepo.AssertExpectations(t)
	})

	t.Run("Занятый email - конфликт без вставки", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("CheckUniqueness", ctx, "alice@example.com", "newuser").
			Return(models.UniquenessReport{EmailTaken: true}, nil)

		user, err := svc.Register(ctx, RegisterRequest{
			Email:    "alice@example.com",
			Username: "newuser",
			Password: "password123",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("Гонка: вставка проиграла уникальному индексу", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("CheckUniqueness", ctx, "alice@example.com", "alice").
			Return(models.UniquenessReport{}, nil)
		userRepo.On("CreateUser", ctx, mock.Anything).Return(apperr.ErrConflict)

		user, err := svc.Register(ctx, RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "password123",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.User{
		UserID:       "u1",
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: string(hash),
	}

	t.Run("Вход по email или username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetByIdentifier", ctx, "alice").Return(stored, nil)

		user, token, err := svc.Login(ctx, "alice", "password123")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, token)

		// из токена восстанавливается та же личность
		fromToken, err := svc.GetUserFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", fromToken.Username)
		assert.Equal(t, "alice@example.com", fromToken.Email)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetByIdentifier", ctx, "alice").Return(stored, nil)

		user, token, err := svc.Login(ctx, "alice", "wrongpassword")

		assert.Nil(t, user)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("Неизвестный идентификатор", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetByIdentifier", ctx, "ghost").Return(nil, apperr.ErrNotFound)

		user, token, err := svc.Login(ctx, "ghost", "password123")

		assert.Nil(t, user)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Новый пароль уходит в репозиторий хэшем", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("UpdatePassword", ctx, "alice", "alice@example.com",
			mock.MatchedBy(func(hash string) bool {
				return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")) == nil
			})).Return(nil)

		err := svc.ChangePassword(ctx, "alice", "alice@example.com", "newpassword")

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Пара username+email не совпала", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("UpdatePassword", ctx, "alice", "wrong@example.com", mock.Anything).
			Return(apperr.ErrNotFound)

		err := svc.ChangePassword(ctx, "alice", "wrong@example.com", "newpassword")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Run("Чужая подпись отвергается", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		other := NewAuthService(userRepo, &config.Config{
			JWTSecretKey:        "other-secret",
			AccessTokenDuration: time.Hour,
		})

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		require.NoError(t, err)

		stored := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: string(hash)}
		userRepo.On("GetByIdentifier", mock.Anything, "alice").Return(stored, nil)

		_, token, err := other.Login(context.Background(), "alice", "password123")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}

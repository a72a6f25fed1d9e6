package test

import (
	"context"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"openblog/internal/models"
	"openblog/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, caller string, limit, page int, author string) ([]models.Post, error) {
	args := m.Called(ctx, caller, limit, page, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ReadPost(ctx context.Context, postID, caller string) (*models.Post, error) {
	args := m.Called(ctx, postID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, caller string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, caller, postID string, req service.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, caller, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, caller, postID string) (bool, error) {
	args := m.Called(ctx, caller, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) AddAttachment(ctx context.Context, caller, postID, fileName string, file io.Reader, size int64) (*models.Attachment, error) {
	args := m.Called(ctx, caller, postID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attachment), args.Error(1)
}

func (m *MockPostService) DeleteAttachment(ctx context.Context, caller, postID, attachmentID string) error {
	args := m.Called(ctx, caller, postID, attachmentID)
	return args.Error(0)
}

func (m *MockPostService) GetAttachments(ctx context.Context, postID string) ([]models.Attachment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attachment), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) CheckUniqueness(ctx context.Context, email, username string) (models.UniquenessReport, error) {
	args := m.Called(ctx, email, username)
	return args.Get(0).(models.UniquenessReport), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, username, email, newPassword string) error {
	args := m.Called(ctx, username, email, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) GetUser(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

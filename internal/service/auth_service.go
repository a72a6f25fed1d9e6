package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"openblog/internal/apperr"
	"openblog/internal/config"
	"openblog/internal/models"
	"openblog/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	CheckUniqueness(ctx context.Context, email, username string) (models.UniquenessReport, error)
	Login(ctx context.Context, identifier, password string) (*models.User, string, error)
	ChangePassword(ctx context.Context, username, email, newPassword string) error
	GetUser(ctx context.Context, identifier string) (*models.User, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register проверяет уникальность email и username, хэширует пароль и
// создает пользователя. Проверка и вставка - это check-then-act с окном
// гонки, поэтому нарушение уникального индекса при вставке тоже
// отдается как конфликт.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	report, err := s.userRepo.CheckUniqueness(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}

	if report.EmailTaken && report.UsernameTaken {
		return nil, fmt.Errorf("email и имя пользователя уже заняты: %w", apperr.ErrConflict)
	}
	if report.EmailTaken {
		return nil, fmt.Errorf("email уже занят: %w", apperr.ErrConflict)
	}
	if report.UsernameTaken {
		return nil, fmt.Errorf("имя пользователя уже занято: %w", apperr.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}

	err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) CheckUniqueness(ctx context.Context, email, username string) (models.UniquenessReport, error) {
	return s.userRepo.CheckUniqueness(ctx, email, username)
}

// Login находит аккаунт по email или username, сверяет пароль и
// выдает access token
func (s *authService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, "", fmt.Errorf("неверный пароль: %w", apperr.ErrForbidden)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}

// ChangePassword меняет пароль по паре username+email текущего
// пользователя - единственный путь, которым меняется хэш учетных данных
func (s *authService) ChangePassword(ctx context.Context, username, email, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, username, email, string(hashedPassword))
}

func (s *authService) GetUser(ctx context.Context, identifier string) (*models.User, error) {
	return s.userRepo.GetByIdentifier(ctx, identifier)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	username, ok1 := claims["username"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("неверные данные в токене")
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}

	return user, nil
}

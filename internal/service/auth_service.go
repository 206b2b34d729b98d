package service

import (
	"context"
	"errors"
	"time"

	"github.com/phone-directory-api/internal/auth"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
)

// AuthService определяет интерфейс выдачи сессий и работы с учётными записями
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Login сверяет пароль с bcrypt-хэшем и выпускает сессионный токен.
// Неизвестное имя и неверный пароль дают одну и ту же ошибку, чтобы не
// раскрывать существование учётной записи.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := auth.Claims{
		UserID:           user.ID,
		Username:         user.Username,
		Role:             user.Role,
		DepartmentAccess: user.DepartmentAccess,
	}
	if user.EmployeeID != nil {
		claims.EmployeeID = *user.EmployeeID
	}

	token, err := auth.GenerateToken(s.secret, claims, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword меняет пароль текущего пользователя после проверки старого
func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Update(ctx, user)
}

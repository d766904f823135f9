package services

import (
	"context"
	"errors"

	"passauth/internal/apperrors"
	"passauth/internal/logger"
	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/utils"

	"go.uber.org/zap"
)

// errBadCredentials — одно сообщение на «нет аккаунта», «не подтверждён»
// и «неверный пароль»: наружу наличие аккаунта не раскрываем,
// различие остаётся только в логах.
var errBadCredentials = apperrors.Auth("неверные учётные данные или e-mail не подтверждён")

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	SetEmailVerified(ctx context.Context, id string, verified bool) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) (*models.User, error)
}

// RegisterUser валидирует вход, хеширует пароль и создаёт
// неподтверждённый аккаунт. Дубликат email — конфликт.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", repository.NormalizeEmail(email)))

	if err := ValidateRegistration(name, email, password); err != nil {
		logger.Log.Warn("Ошибка валидации при регистрации", zap.Error(err))
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, apperrors.Internal("internal error")
	}

	user, err := s.repo.CreateUser(ctx, name, email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			logger.Log.Warn("Email уже зарегистрирован", zap.String("email", repository.NormalizeEmail(email)))
			return nil, apperrors.Conflict("пользователь с таким email уже существует")
		}
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("user_id", user.ID))
	return user, nil
}

// VerifyLogin — проверка учётных данных на входе.
// Порядок: аккаунт → гейт подтверждения почты → хеш пароля.
func (s *AuthService) VerifyLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.Warn("Вход: пользователь не найден", zap.String("email", repository.NormalizeEmail(email)))
			return nil, errBadCredentials
		}
		logger.Log.Error("Вход: ошибка чтения пользователя", zap.Error(err))
		return nil, apperrors.Internal("internal error")
	}

	if !user.EmailVerified {
		logger.Log.Warn("Вход: e-mail не подтверждён", zap.String("user_id", user.ID))
		return nil, errBadCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Вход: неверный пароль", zap.String("user_id", user.ID))
		return nil, errBadCredentials
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("user_id", user.ID))
	return user, nil
}

// MarkVerified переводит аккаунт в подтверждённые.
// Идемпотентно, но в норме достижимо один раз — токен одноразовый.
func (s *AuthService) MarkVerified(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.SetEmailVerified(ctx, userID, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("E-mail подтверждён", zap.String("user_id", user.ID))
	return user, nil
}

// UpdatePassword заменяет хеш. Старый пароль не требуется:
// владение почтой уже доказано погашенным токеном.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, newPassword string) (*models.User, error) {
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля", zap.Error(err), zap.String("user_id", userID))
		return nil, apperrors.Internal("internal error")
	}

	user, err := s.repo.UpdateUserPassword(ctx, userID, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Пароль обновлён", zap.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, apperrors.Internal("internal error")
	}
	return user, nil
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, apperrors.Internal("internal error")
	}
	return user, nil
}

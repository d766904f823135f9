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

type PasswordService struct {
	users         UserRepo
	tokens        *TokenService
	resetTTLHours int
}

func NewPasswordService(users UserRepo, tokens *TokenService, resetTTLHours int) *PasswordService {
	return &PasswordService{
		users:         users,
		tokens:        tokens,
		resetTTLHours: resetTTLHours,
	}
}

// RequestReset выпускает токен сброса для аккаунта с таким e-mail.
// Этот поток сознательно раскрывает отсутствие аккаунта (NotFound) —
// в отличие от логина; поведение исходного продукта сохранено.
func (s *PasswordService) RequestReset(ctx context.Context, email string) (*models.User, *models.IssuedToken, error) {
	logger.Log.Info("Запрос на сброс пароля", zap.String("email", repository.NormalizeEmail(email)))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.Warn("Сброс: пользователь не найден", zap.String("email", repository.NormalizeEmail(email)))
			return nil, nil, apperrors.NotFound("пользователь с таким email не найден")
		}
		logger.Log.Error("Сброс: ошибка чтения пользователя", zap.Error(err))
		return nil, nil, apperrors.Internal("internal error")
	}

	issued, err := s.tokens.Issue(ctx, models.PurposeReset, user.ID, user.Email, s.resetTTLHours)
	if err != nil {
		return nil, nil, err
	}

	return user, issued, nil
}

// ResetPassword подтверждает токен и устанавливает новый пароль.
// Токен гасится до мутации аккаунта — единственный допустимый путь.
func (s *PasswordService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*models.User, error) {
	logger.Log.Info("Попытка сброса пароля по токену")

	if err := ValidateNewPassword(newPassword); err != nil {
		logger.Log.Warn("Сброс: новый пароль не проходит политику")
		return nil, err
	}

	token, err := s.tokens.Consume(ctx, models.PurposeReset, rawToken)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля", zap.Error(err), zap.String("user_id", token.UserID))
		return nil, apperrors.Internal("internal error")
	}

	user, err := s.users.UpdateUserPassword(ctx, token.UserID, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		logger.Log.Error("Ошибка обновления пароля", zap.Error(err), zap.String("user_id", token.UserID))
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Пароль успешно сброшен", zap.String("user_id", user.ID))
	return user, nil
}

// ChangePassword меняет пароль авторизованного пользователя по старому паролю.
func (s *PasswordService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*models.User, error) {
	logger.Log.Info("Смена пароля (авторизованный пользователь)", zap.String("user_id", userID))

	if err := ValidateNewPassword(newPassword); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("пользователь не найден")
		}
		return nil, apperrors.Internal("internal error")
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		logger.Log.Warn("Старый пароль не совпадает", zap.String("user_id", userID))
		return nil, apperrors.Auth("старый пароль неверен")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля", zap.Error(err), zap.String("user_id", userID))
		return nil, apperrors.Internal("internal error")
	}

	updated, err := s.users.UpdateUserPassword(ctx, userID, hashed)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля", zap.Error(err), zap.String("user_id", userID))
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Пароль успешно изменён", zap.String("user_id", userID))
	return updated, nil
}

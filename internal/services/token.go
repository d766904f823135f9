package services

import (
	"context"
	"errors"
	"time"

	"passauth/internal/apperrors"
	"passauth/internal/logger"
	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/utils"

	"go.uber.org/zap"
)

// errTokenInvalid — одно сообщение на «нет», «просрочен» и «битый»:
// снаружи эти случаи намеренно неразличимы.
var errTokenInvalid = apperrors.Token("неверный или просроченный токен")

type TokenRepo interface {
	Put(ctx context.Context, digest string, token *models.Token) error
	Resolve(ctx context.Context, purpose models.TokenPurpose, digest string) (*models.Token, error)
	Consume(ctx context.Context, purpose models.TokenPurpose, digest string) (*models.Token, error)
	Sweep(ctx context.Context) int
}

type TokenService struct {
	repo TokenRepo
}

func NewTokenService(repo TokenRepo) *TokenService {
	return &TokenService{repo: repo}
}

// Issue выпускает токен: сырое значение уходит вызывающему ровно один раз,
// в стор попадает только digest.
func (s *TokenService) Issue(ctx context.Context, purpose models.TokenPurpose, userID, email string, validityHours int) (*models.IssuedToken, error) {
	raw, err := utils.GenerateToken()
	if err != nil {
		logger.Log.Error("Ошибка генерации токена", zap.String("purpose", string(purpose)), zap.Error(err))
		return nil, apperrors.Internal("internal error")
	}

	token := &models.Token{
		UserID:    userID,
		Email:     email,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(time.Duration(validityHours) * time.Hour),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Put(ctx, utils.HashToken(raw), token); err != nil {
		logger.Log.Error("Ошибка сохранения токена", zap.String("purpose", string(purpose)), zap.Error(err))
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Токен выпущен",
		zap.String("purpose", string(purpose)),
		zap.String("user_id", userID),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return &models.IssuedToken{Raw: raw, ExpiresAt: token.ExpiresAt}, nil
}

// Resolve ищет токен, не гася его.
func (s *TokenService) Resolve(ctx context.Context, purpose models.TokenPurpose, raw string) (*models.Token, error) {
	token, err := s.repo.Resolve(ctx, purpose, utils.HashToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTokenInvalid
		}
		return nil, apperrors.Internal("internal error")
	}
	return token, nil
}

// Consume гасит токен: успех удаляет запись, повторное предъявление
// того же значения вернёт ту же ошибку, что и незнакомый токен.
func (s *TokenService) Consume(ctx context.Context, purpose models.TokenPurpose, raw string) (*models.Token, error) {
	token, err := s.repo.Consume(ctx, purpose, utils.HashToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.Warn("Предъявлен неизвестный или просроченный токен", zap.String("purpose", string(purpose)))
			return nil, errTokenInvalid
		}
		return nil, apperrors.Internal("internal error")
	}

	logger.Log.Info("Токен погашен",
		zap.String("purpose", string(purpose)),
		zap.String("user_id", token.UserID),
	)
	return token, nil
}

// Sweep — периодическая чистка просроченных записей.
func (s *TokenService) Sweep(ctx context.Context) {
	if removed := s.repo.Sweep(ctx); removed > 0 {
		logger.Log.Info("Просроченные токены удалены", zap.Int("removed", removed))
	}
}

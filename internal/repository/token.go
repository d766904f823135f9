package repository

import (
	"context"
	"sync"
	"time"

	"passauth/internal/models"
)

// TokenRepository — стор одноразовых токенов в памяти.
// Ключ — digest сырого токена, так что дамп стора не содержит
// пригодных к использованию значений. Карты на каждое назначение свои.
type TokenRepository struct {
	mu     sync.Mutex
	tokens map[models.TokenPurpose]map[string]*models.Token
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{
		tokens: map[models.TokenPurpose]map[string]*models.Token{
			models.PurposeVerification: {},
			models.PurposeReset:        {},
		},
	}
}

// Put вставляет токен под digest'ом. Коллизия digest'а
// молча перезаписывает старую запись — отдельно не обрабатывается.
func (r *TokenRepository) Put(_ context.Context, digest string, token *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token.Purpose][digest] = token
	return nil
}

// Resolve ищет токен по digest'у, не удаляя его.
// Просроченный токен удаляется прямо при поиске и снаружи
// неотличим от отсутствующего.
func (r *TokenRepository) Resolve(_ context.Context, purpose models.TokenPurpose, digest string) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookupLocked(purpose, digest, false)
}

// Consume — то же, что Resolve, но при успехе запись удаляется.
// Единственный путь перед мутацией аккаунта по токену.
func (r *TokenRepository) Consume(_ context.Context, purpose models.TokenPurpose, digest string) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookupLocked(purpose, digest, true)
}

func (r *TokenRepository) lookupLocked(purpose models.TokenPurpose, digest string, remove bool) (*models.Token, error) {
	byDigest := r.tokens[purpose]
	token, ok := byDigest[digest]
	if !ok {
		return nil, ErrNotFound
	}

	if time.Now().After(token.ExpiresAt) {
		delete(byDigest, digest)
		return nil, ErrNotFound
	}

	if remove {
		delete(byDigest, digest)
	}

	c := *token
	return &c, nil
}

// Sweep удаляет все просроченные записи обоих назначений.
// Для корректности не обязателен (ленивая проверка в Resolve/Consume),
// но ограничивает рост стора. Возвращает число удалённых.
func (r *TokenRepository) Sweep(_ context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, byDigest := range r.tokens {
		for digest, token := range byDigest {
			if now.After(token.ExpiresAt) {
				delete(byDigest, digest)
				removed++
			}
		}
	}
	return removed
}

// Count возвращает число активных записей по назначению (для отладки).
func (r *TokenRepository) Count(_ context.Context, purpose models.TokenPurpose) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens[purpose])
}

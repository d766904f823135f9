package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"passauth/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("запись не найдена")
	ErrEmailTaken = errors.New("email уже зарегистрирован")
)

// NormalizeEmail приводит e-mail к каноническому виду для сравнения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository — реестр аккаунтов в памяти.
// Карта сбрасывается при рестарте процесса, персистентности нет.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string // normalized email -> id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser атомарно проверяет уникальность email и вставляет запись.
// Хеширование пароля делается до вызова — под мьютексом только вставка.
func (r *UserRepository) CreateUser(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	norm := NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[norm]; exists {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         norm,
		PasswordHash:  passwordHash,
		EmailVerified: false,
		CreatedAt:     time.Now(),
	}

	r.byID[user.ID] = user
	r.byEmail[norm] = user.ID
	return cloneUser(user), nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) IsEmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byEmail[NormalizeEmail(email)]
	return exists, nil
}

// SetEmailVerified помечает аккаунт подтверждённым.
// Повторный вызов безвреден: флаг просто остаётся true.
func (r *UserRepository) SetEmailVerified(_ context.Context, id string, verified bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.EmailVerified = verified
	return cloneUser(user), nil
}

func (r *UserRepository) UpdateUserPassword(_ context.Context, id, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.PasswordHash = passwordHash
	return cloneUser(user), nil
}

func (r *UserRepository) CountUsers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// cloneUser — наружу уходит копия, чтобы вызывающий не мутировал стор.
func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

package repository

import (
	"context"
	"sync"
	"time"
)

type sessionEntry struct {
	UserID    string
	ExpiresAt time.Time
}

// SessionRepository — серверный реестр активных сессий.
// Logout удаляет запись, после чего подписанный токен сессии перестаёт
// приниматься, даже если срок подписи ещё не вышел.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry // sid -> entry
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]sessionEntry)}
}

func (r *SessionRepository) SaveSession(_ context.Context, sid, userID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sid] = sessionEntry{UserID: userID, ExpiresAt: time.Now().Add(ttl)}
	return nil
}

func (r *SessionRepository) IsSessionValid(_ context.Context, sid, userID string) (bool, error) {
	r.mu.RLock()
	entry, ok := r.sessions[sid]
	r.mu.RUnlock()

	if !ok || entry.UserID != userID {
		return false, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		r.mu.Lock()
		delete(r.sessions, sid)
		r.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (r *SessionRepository) DeleteSession(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sid)
	return nil
}

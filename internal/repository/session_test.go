package repository

import (
	"context"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	if err := repo.SaveSession(ctx, "sid-1", "user-1", time.Hour); err != nil {
		t.Fatalf("ошибка сохранения сессии: %v", err)
	}

	ok, _ := repo.IsSessionValid(ctx, "sid-1", "user-1")
	if !ok {
		t.Fatal("живая сессия признана невалидной")
	}

	// Чужой user_id с тем же sid не проходит
	ok, _ = repo.IsSessionValid(ctx, "sid-1", "user-2")
	if ok {
		t.Fatal("сессия прошла проверку с чужим user_id")
	}

	if err := repo.DeleteSession(ctx, "sid-1"); err != nil {
		t.Fatalf("ошибка удаления сессии: %v", err)
	}
	ok, _ = repo.IsSessionValid(ctx, "sid-1", "user-1")
	if ok {
		t.Fatal("удалённая сессия осталась валидной")
	}
}

func TestSessionExpired(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	_ = repo.SaveSession(ctx, "sid-1", "user-1", -time.Minute)

	ok, _ := repo.IsSessionValid(ctx, "sid-1", "user-1")
	if ok {
		t.Fatal("просроченная сессия признана валидной")
	}
}

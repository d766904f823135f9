package services

import (
	"context"
	"testing"

	"passauth/internal/apperrors"
	"passauth/internal/repository"
	"passauth/internal/utils"
)

func newPasswordFixture() (*PasswordService, *mockUserRepo) {
	users := newMockUserRepo()
	tokens := NewTokenService(repository.NewTokenRepository())
	return NewPasswordService(users, tokens, 1), users
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	service, _ := newPasswordFixture()

	// Этот поток сознательно раскрывает отсутствие аккаунта
	_, _, err := service.RequestReset(context.Background(), "nobody@example.com")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("ожидался NotFound, получили %v", err)
	}
}

func TestResetPassword_RoundTrip(t *testing.T) {
	service, users := newPasswordFixture()
	ctx := context.Background()

	hashed, _ := utils.HashPassword("OldSecret123!")
	user, _ := users.CreateUser(ctx, "Ада Лавлейс", "ada@example.com", hashed)

	_, issued, err := service.RequestReset(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}

	updated, err := service.ResetPassword(ctx, issued.Raw, "NewSecret456!")
	if err != nil {
		t.Fatalf("ошибка сброса пароля: %v", err)
	}
	if updated.ID != user.ID {
		t.Fatal("пароль сброшен не тому пользователю")
	}

	stored := users.users[user.ID]
	if utils.CheckPasswordHash("OldSecret123!", stored.PasswordHash) {
		t.Fatal("старый пароль всё ещё подходит")
	}
	if !utils.CheckPasswordHash("NewSecret456!", stored.PasswordHash) {
		t.Fatal("новый пароль не подходит")
	}

	// Токен одноразовый: повторный сброс тем же токеном не проходит
	if _, err := service.ResetPassword(ctx, issued.Raw, "Third789!x"); err == nil {
		t.Fatal("повторный сброс тем же токеном прошёл")
	}
}

func TestResetPassword_WeakPassword(t *testing.T) {
	service, users := newPasswordFixture()
	ctx := context.Background()

	hashed, _ := utils.HashPassword("OldSecret123!")
	_, _ = users.CreateUser(ctx, "Ада Лавлейс", "ada@example.com", hashed)

	_, issued, _ := service.RequestReset(ctx, "ada@example.com")

	// Политика проверяется до гашения: токен должен остаться живым
	_, err := service.ResetPassword(ctx, issued.Raw, "weak")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("ожидался Validation, получили %v", err)
	}
	if _, err := service.ResetPassword(ctx, issued.Raw, "NewSecret456!"); err != nil {
		t.Fatalf("токен сгорел на невалидном пароле: %v", err)
	}
}

func TestResetPassword_BadToken(t *testing.T) {
	service, _ := newPasswordFixture()

	_, err := service.ResetPassword(context.Background(), "ffffffff", "NewSecret456!")
	if apperrors.KindOf(err) != apperrors.KindToken {
		t.Fatalf("ожидался Token, получили %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	service, users := newPasswordFixture()
	ctx := context.Background()

	hashed, _ := utils.HashPassword("OldSecret123!")
	user, _ := users.CreateUser(ctx, "Ада Лавлейс", "ada@example.com", hashed)

	// Неверный старый пароль
	_, err := service.ChangePassword(ctx, user.ID, "Wrong123!", "NewSecret456!")
	if apperrors.KindOf(err) != apperrors.KindAuth {
		t.Fatalf("ожидался Auth, получили %v", err)
	}

	// Верный старый пароль
	if _, err := service.ChangePassword(ctx, user.ID, "OldSecret123!", "NewSecret456!"); err != nil {
		t.Fatalf("ошибка смены пароля: %v", err)
	}
	if !utils.CheckPasswordHash("NewSecret456!", users.users[user.ID].PasswordHash) {
		t.Fatal("новый пароль не подходит")
	}
}

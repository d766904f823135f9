package services

import (
	"context"
	"testing"

	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/utils"
)

// Полный жизненный цикл аккаунта на настоящих реестрах:
// регистрация, подтверждение почты, вход, сброс пароля.
func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()

	users := repository.NewUserRepository()
	auth := NewAuthService(users)
	tokens := NewTokenService(repository.NewTokenRepository())
	passwords := NewPasswordService(users, tokens, 1)

	// Регистрация: аккаунт создан, но не подтверждён
	user, err := auth.RegisterUser(ctx, "Ада Лавлейс", "ada@example.com", "MyStr0ng!Pass")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	if user.EmailVerified {
		t.Fatal("аккаунт подтверждён до гашения токена")
	}

	verifyToken, err := tokens.Issue(ctx, models.PurposeVerification, user.ID, user.Email, 24)
	if err != nil {
		t.Fatalf("ошибка выпуска токена подтверждения: %v", err)
	}

	// До подтверждения вход с верным паролем не проходит
	if _, err := auth.VerifyLogin(ctx, "ada@example.com", "MyStr0ng!Pass"); err == nil {
		t.Fatal("вход прошёл до подтверждения почты")
	}

	// Переход по ссылке: гашение токена и подтверждение
	consumed, err := tokens.Consume(ctx, models.PurposeVerification, verifyToken.Raw)
	if err != nil {
		t.Fatalf("ошибка гашения токена подтверждения: %v", err)
	}
	if _, err := auth.MarkVerified(ctx, consumed.UserID); err != nil {
		t.Fatalf("ошибка подтверждения аккаунта: %v", err)
	}

	// Повторный переход по той же ссылке не проходит
	if _, err := tokens.Consume(ctx, models.PurposeVerification, verifyToken.Raw); err == nil {
		t.Fatal("токен подтверждения погашен дважды")
	}

	// Теперь вход работает
	logged, err := auth.VerifyLogin(ctx, "ada@example.com", "MyStr0ng!Pass")
	if err != nil {
		t.Fatalf("вход после подтверждения не прошёл: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatal("вход вернул не того пользователя")
	}

	// Забытый пароль: запрос сброса и установка нового
	_, resetToken, err := passwords.RequestReset(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}
	if _, err := passwords.ResetPassword(ctx, resetToken.Raw, "Upd@ted456Pass"); err != nil {
		t.Fatalf("ошибка сброса пароля: %v", err)
	}

	// Старый пароль больше не подходит, новый работает
	if _, err := auth.VerifyLogin(ctx, "ada@example.com", "MyStr0ng!Pass"); err == nil {
		t.Fatal("старый пароль всё ещё подходит")
	}
	if _, err := auth.VerifyLogin(ctx, "ada@example.com", "Upd@ted456Pass"); err != nil {
		t.Fatalf("вход с новым паролем не прошёл: %v", err)
	}

	stored, _ := users.GetUserByID(ctx, user.ID)
	if !utils.CheckPasswordHash("Upd@ted456Pass", stored.PasswordHash) {
		t.Fatal("в сторе не хеш нового пароля")
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"passauth/internal/apperrors"
	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/utils"

	"github.com/google/uuid"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User // id -> user
	byEmail  map[string]string
	lastUser *models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) CreateUser(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	norm := repository.NormalizeEmail(email)
	if _, exists := m.byEmail[norm]; exists {
		return nil, repository.ErrEmailTaken
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        norm,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.byEmail[norm] = user.ID
	m.lastUser = user
	return user, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	id, ok := m.byEmail[repository.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.users[id], nil
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.byEmail[repository.NormalizeEmail(email)]
	return exists, nil
}

func (m *mockUserRepo) SetEmailVerified(_ context.Context, id string, verified bool) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.EmailVerified = verified
	return u, nil
}

func (m *mockUserRepo) UpdateUserPassword(_ context.Context, id, passwordHash string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return u, nil
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user, err := service.RegisterUser(context.Background(), "Ада Лавлейс", "ada@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if user.EmailVerified {
		t.Fatal("новый аккаунт не должен быть подтверждённым")
	}
	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "Secret123!" {
		t.Fatal("пароль сохранён в открытом виде")
	}
	if !utils.CheckPasswordHash("Secret123!", repo.lastUser.PasswordHash) {
		t.Fatal("сохранённый хеш не соответствует паролю")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)
	ctx := context.Background()

	if _, err := service.RegisterUser(ctx, "Ада Лавлейс", "ada@example.com", "Secret123!"); err != nil {
		t.Fatalf("первая регистрация не прошла: %v", err)
	}

	_, err := service.RegisterUser(ctx, "Ада Лавлейс", "ADA@example.com", "Another123!")
	if err == nil {
		t.Fatal("ожидался конфликт при повторной регистрации")
	}
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("ожидался Conflict, получили %v", err)
	}
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, err := service.RegisterUser(context.Background(), "А", "не-адрес", "short")
	if err == nil {
		t.Fatal("ожидалась ошибка валидации")
	}
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("ожидался Validation, получили %v", err)
	}
	if repo.lastUser != nil {
		t.Fatal("невалидный вход не должен создавать пользователя")
	}
}

func TestVerifyLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)
	ctx := context.Background()

	created, _ := service.RegisterUser(ctx, "Ада Лавлейс", "ada@example.com", "Secret123!")
	_, _ = repo.SetEmailVerified(ctx, created.ID, true)

	user, err := service.VerifyLogin(ctx, "ada@example.com", "Secret123!")
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if user.ID != created.ID {
		t.Fatal("вернулся не тот пользователь")
	}
}

// Три причины отказа дают одно и то же внешнее сообщение:
// наличие аккаунта и статус подтверждения не раскрываются.
func TestVerifyLogin_UniformFailure(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)
	ctx := context.Background()

	created, _ := service.RegisterUser(ctx, "Ада Лавлейс", "ada@example.com", "Secret123!")

	// 1. Аккаунт не существует
	_, errUnknown := service.VerifyLogin(ctx, "nobody@example.com", "Secret123!")
	// 2. Аккаунт не подтверждён (пароль верный)
	_, errUnverified := service.VerifyLogin(ctx, "ada@example.com", "Secret123!")

	_, _ = repo.SetEmailVerified(ctx, created.ID, true)
	// 3. Неверный пароль
	_, errBadPass := service.VerifyLogin(ctx, "ada@example.com", "Wrong123!")

	for i, err := range []error{errUnknown, errUnverified, errBadPass} {
		if err == nil {
			t.Fatalf("случай %d: ожидалась ошибка", i+1)
		}
		if apperrors.KindOf(err) != apperrors.KindAuth {
			t.Fatalf("случай %d: ожидался Auth, получили %v", i+1, err)
		}
	}

	if errUnknown.Error() != errUnverified.Error() || errUnverified.Error() != errBadPass.Error() {
		t.Fatal("внешние сообщения трёх отказов должны совпадать")
	}
}

func TestMarkVerified_Unknown(t *testing.T) {
	service := NewAuthService(newMockUserRepo())

	_, err := service.MarkVerified(context.Background(), "no-such-id")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("ожидался NotFound, получили %v", err)
	}
}

package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatal("хеш совпадает с паролем")
	}

	if !CheckPasswordHash("Secret123!", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("Secret123?", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	// bcrypt солёный: два хеша одного пароля не совпадают
	h1, _ := HashPassword("Secret123!")
	h2, _ := HashPassword("Secret123!")
	if h1 == h2 {
		t.Fatal("хеши одного пароля совпали")
	}
}

func TestCheckPasswordHash_Malformed(t *testing.T) {
	if CheckPasswordHash("Secret123!", "не-bcrypt-строка") {
		t.Fatal("битый хеш прошёл проверку")
	}
	if CheckPasswordHash("Secret123!", "") {
		t.Fatal("пустой хеш прошёл проверку")
	}
}

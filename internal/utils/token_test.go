package utils

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	if len(token) != 64 {
		t.Fatalf("ожидалось 64 hex-символа, получили %d", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("токен не hex: %v", err)
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("ошибка генерации токена: %v", err)
		}
		if seen[token] {
			t.Fatal("сгенерирован повторяющийся токен")
		}
		seen[token] = true
	}
}

func TestHashToken(t *testing.T) {
	d1 := HashToken("abc")
	d2 := HashToken("abc")
	if d1 != d2 {
		t.Fatal("digest недетерминирован")
	}
	if d1 == "abc" {
		t.Fatal("digest совпадает с исходным значением")
	}
	if d1 == HashToken("abd") {
		t.Fatal("разные токены дали один digest")
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "user-1", "sid-1", time.Hour)
	if err != nil {
		t.Fatalf("ошибка генерации токена сессии: %v", err)
	}

	userID, sid, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ошибка разбора токена сессии: %v", err)
	}
	if userID != "user-1" || sid != "sid-1" {
		t.Fatalf("claims не совпадают: %s / %s", userID, sid)
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _ := GenerateSessionToken("secret", "user-1", "sid-1", time.Hour)
	if _, _, err := ParseSessionToken("другой-секрет", token); err == nil {
		t.Fatal("токен с чужой подписью прошёл проверку")
	}
}

func TestSessionToken_Expired(t *testing.T) {
	token, _ := GenerateSessionToken("secret", "user-1", "sid-1", -time.Minute)
	if _, _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatal("просроченный токен сессии прошёл проверку")
	}
}

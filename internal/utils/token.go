package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// tokenBytes — 32 байта (256 бит энтропии), в hex получается 64 символа.
const tokenBytes = 32

// GenerateToken возвращает криптостойкий одноразовый токен.
func GenerateToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// HashToken — быстрый детерминированный digest для ключа стора.
// Не bcrypt: токен высокоэнтропийный, нужен быстрый поиск, а не защита от перебора.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

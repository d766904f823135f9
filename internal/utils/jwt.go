package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken создаёт подписанный JWT сессии (HS256).
// sid — серверный идентификатор сессии, по нему работает logout.
func GenerateSessionToken(secret, userID, sid string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"sid":     sid,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken валидирует подпись и возвращает user_id и sid.
func ParseSessionToken(secret, tokenString string) (userID, sid string, err error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid session token")
	}

	userID, ok1 := claims["user_id"].(string)
	sid, ok2 := claims["sid"].(string)
	if !ok1 || !ok2 {
		return "", "", errors.New("invalid session payload")
	}
	return userID, sid, nil
}

package models

import "time"

// TokenPurpose — назначение одноразового токена.
type TokenPurpose string

const (
	PurposeVerification TokenPurpose = "verification"
	PurposeReset        TokenPurpose = "reset"
)

// Token хранится в сторе только под digest'ом, сырое значение
// уходит в письмо и нигде не сохраняется.
type Token struct {
	UserID    string       `json:"user_id"`
	Email     string       `json:"email"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
}

// IssuedToken — то, что возвращается вызывающему при выпуске.
type IssuedToken struct {
	Raw       string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"passauth/internal/apperrors"
)

var (
	nameRegex    = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ ]+$`)
	emailRegex   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`\d`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePassword проверяет политику пароля: минимум 8 символов,
// заглавная, строчная, цифра и спецсимвол.
func ValidatePassword(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "пароль должен быть не короче 8 символов")
	}
	if !upperRegex.MatchString(password) {
		errs = append(errs, "пароль должен содержать заглавную букву")
	}
	if !lowerRegex.MatchString(password) {
		errs = append(errs, "пароль должен содержать строчную букву")
	}
	if !digitRegex.MatchString(password) {
		errs = append(errs, "пароль должен содержать цифру")
	}
	if !specialRegex.MatchString(password) {
		errs = append(errs, "пароль должен содержать спецсимвол")
	}

	return errs
}

// ValidateRegistration собирает все нарушения формата в одну ошибку.
func ValidateRegistration(name, email, password string) error {
	var errs []string

	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		errs = append(errs, "имя должно быть от 2 до 50 символов")
	} else if !nameRegex.MatchString(name) {
		errs = append(errs, "имя может содержать только буквы и пробелы")
	}

	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		errs = append(errs, "некорректный адрес электронной почты")
	}

	errs = append(errs, ValidatePassword(password)...)

	if len(errs) > 0 {
		return apperrors.Validation(strings.Join(errs, ", "))
	}
	return nil
}

// ValidateNewPassword — для сброса/смены пароля.
func ValidateNewPassword(password string) error {
	if errs := ValidatePassword(password); len(errs) > 0 {
		return apperrors.Validation(strings.Join(errs, ", "))
	}
	return nil
}

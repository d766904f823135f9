package apperrors

import (
	"errors"
	"net/http"
)

// Kind — классификация ошибок ядра вместо иерархии классов.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindValidation
	KindToken
	KindAuth
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Conflict(message string) *Error   { return New(KindConflict, message) }
func Validation(message string) *Error { return New(KindValidation, message) }
func Token(message string) *Error      { return New(KindToken, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Internal(message string) *Error   { return New(KindInternal, message) }

// KindOf возвращает Kind ошибки; всё неизвестное считается внутренней ошибкой.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus — маппинг Kind → HTTP-статус для хендлеров.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindToken:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsOperational — true для ожидаемых (пользовательских) ошибок.
// Внутренние сбои (хеширование и т.п.) — не операционные.
func IsOperational(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind != KindInternal
	}
	return false
}

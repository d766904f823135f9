package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(Conflict("x")) != KindConflict {
		t.Fatal("Conflict потерял Kind")
	}
	// Обёрнутая ошибка сохраняет классификацию
	wrapped := fmt.Errorf("оболочка: %w", Token("x"))
	if KindOf(wrapped) != KindToken {
		t.Fatal("Kind не виден через обёртку")
	}
	// Чужая ошибка считается внутренней
	if KindOf(errors.New("raw")) != KindInternal {
		t.Fatal("неизвестная ошибка должна быть Internal")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Conflict("x"), http.StatusConflict},
		{Validation("x"), http.StatusBadRequest},
		{Token("x"), http.StatusBadRequest},
		{Auth("x"), http.StatusUnauthorized},
		{NotFound("x"), http.StatusNotFound},
		{Internal("x"), http.StatusInternalServerError},
		{errors.New("raw"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("для %v ожидался статус %d, получили %d", tc.err, tc.want, got)
		}
	}
}

func TestIsOperational(t *testing.T) {
	if !IsOperational(Validation("x")) {
		t.Fatal("Validation должна быть операционной")
	}
	if IsOperational(Internal("x")) {
		t.Fatal("Internal не операционная")
	}
	if IsOperational(errors.New("raw")) {
		t.Fatal("чужая ошибка не операционная")
	}
}

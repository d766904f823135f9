package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"passauth/internal/apperrors"
	"passauth/internal/logger"
	"passauth/internal/models"
	"passauth/internal/repository"
	"passauth/internal/services"
	helpers "passauth/internal/utils/helpers"

	"go.uber.org/zap"
)

type EmailHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
}

func NewEmailHandler(authService *services.AuthService, tokenService *services.TokenService) *EmailHandler {
	return &EmailHandler{authService: authService, tokenService: tokenService}
}

// VerifyEmail godoc
// @Summary Подтвердить email
// @Description Гасит токен подтверждения из письма и помечает аккаунт подтверждённым.
// @Tags email
// @Produce html
// @Param token query string true "Токен подтверждения"
// @Success 200 {string} string "HTML-страница успеха"
// @Failure 400 {string} string "HTML-страница ошибки"
// @Router /api/verify-email [get]
func (h *EmailHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if token == "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, helpers.BuildVerifyErrorHTML("Токен отсутствует"))
		return
	}

	consumed, err := h.tokenService.Consume(r.Context(), models.PurposeVerification, token)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка подтверждения email", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, helpers.BuildVerifyErrorHTML("Неверный или просроченный токен."))
		return
	}

	if _, err := h.authService.MarkVerified(r.Context(), consumed.UserID); err != nil {
		logger.WithCtx(r.Context()).Warn("Не удалось подтвердить аккаунт", zap.Error(err), zap.String("user_id", consumed.UserID))
		w.WriteHeader(http.StatusBadRequest)
		var errMsg string
		switch apperrors.KindOf(err) {
		case apperrors.KindNotFound:
			errMsg = "Пользователь не найден."
		default:
			errMsg = "Внутренняя ошибка сервиса."
		}
		fmt.Fprint(w, helpers.BuildVerifyErrorHTML(errMsg))
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, helpers.BuildVerifySuccessHTML())
}

// ResendVerificationEmail godoc
// @Summary Повторная отправка письма для подтверждения e-mail
// @Tags email
// @Accept json
// @Produce json
// @Param input body map[string]string true "Email пользователя"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/resend-verification [post]
func (h *AuthHandler) ResendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		helpers.Error(w, http.StatusBadRequest, "Неверный формат запроса или пустой email")
		return
	}

	user, err := h.authService.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Пользователь не найден", zap.String("email_masked", maskEmail(req.Email)))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if user.EmailVerified {
		helpers.Error(w, http.StatusBadRequest, "E-mail уже подтверждён")
		return
	}

	norm := repository.NormalizeEmail(req.Email)
	h.resendMu.Lock()
	last, seen := h.lastResend[norm]
	if seen && time.Since(last) < 5*time.Minute {
		h.resendMu.Unlock()
		helpers.Error(w, http.StatusTooManyRequests, "Вы можете повторно запросить письмо через 5 минут")
		return
	}
	h.lastResend[norm] = time.Now()
	h.resendMu.Unlock()

	if err := h.SendVerificationEmail(r.Context(), user); err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Ошибка при отправке письма")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{
		"message": "Письмо с подтверждением отправлено повторно",
	})
}

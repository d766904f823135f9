package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"passauth/internal/apperrors"
	"passauth/internal/config"
	"passauth/internal/logger"
	"passauth/internal/middleware"
	"passauth/internal/services"
	helpers "passauth/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	svc *services.PasswordService
	cfg *config.Config
}

func NewPasswordHandler(svc *services.PasswordService, cfg *config.Config) *PasswordHandler {
	return &PasswordHandler{svc: svc, cfg: cfg}
}

type forgotReq struct {
	Email string `json:"email"`
}

// Forgot godoc
// @Summary Запрос восстановления пароля
// @Description Выпускает токен сброса и отправляет письмо со ссылкой. Отсутствие аккаунта в этом потоке раскрывается (404).
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotReq true "Email пользователя"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		log.Warn("Невалидный payload в Forgot")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user, issued, err := h.svc.RequestReset(r.Context(), req.Email)
	if err != nil {
		log.Warn("Сбой при запросе восстановления пароля", zap.String("email_masked", maskEmail(req.Email)), zap.Error(err))
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", h.cfg.BaseURL, issued.Raw)
	services.EmailQueue <- services.EmailJob{
		To:           []string{user.Email},
		Subject:      "Сброс пароля",
		Body:         helpers.BuildPasswordResetHTML(user.Name, link),
		IsHTML:       true,
		FallbackLink: link,
	}

	log.Info("Запрошено восстановление пароля", zap.String("email_masked", maskEmail(req.Email)))
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Письмо со ссылкой для сброса пароля отправлено"})
}

type resetReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Reset godoc
// @Summary Сброс пароля по токену
// @Description Гасит токен сброса и устанавливает новый пароль. Токен одноразовый.
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetReq true "Токен и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" || strings.TrimSpace(req.NewPassword) == "" {
		log.Warn("Невалидный payload в Reset")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if _, err := h.svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		// Ошибки токена/валидации — это 400
		log.Warn("Не удалось сбросить пароль по токену", zap.Error(err))
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	log.Info("Пароль успешно сброшен")
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Password has been reset."})
}

type changeReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Change godoc
// @Summary Смена пароля (авторизованный пользователь)
// @Description Смена пароля по старому паролю. Требуется активная сессия.
// @Tags password
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body changeReq true "Старый и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/password/change [post]
func (h *PasswordHandler) Change(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		log.Warn("Нет доступа для Change: отсутствует user_id")
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.OldPassword) == "" || strings.TrimSpace(req.NewPassword) == "" {
		log.Warn("Невалидный payload в Change", zap.String("user_id", userID))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if _, err := h.svc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		log.Warn("Не удалось сменить пароль", zap.String("user_id", userID), zap.Error(err))
		helpers.Error(w, apperrors.HTTPStatus(err), err.Error())
		return
	}

	log.Info("Пароль изменён", zap.String("user_id", userID))
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Password changed."})
}
